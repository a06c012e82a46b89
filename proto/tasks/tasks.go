// Package taskspb is the gRPC contract of the tasks service. Messages are
// protobuf well-known types: ids and labels travel as StringValue, tasks and
// task lists as Struct.
package taskspb

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "players.tasks.v1.TasksService"

const (
	PingMethod       = "/" + ServiceName + "/Ping"
	ListTasksMethod  = "/" + ServiceName + "/ListTasks"
	CreateTaskMethod = "/" + ServiceName + "/CreateTask"
	ToggleTaskMethod = "/" + ServiceName + "/ToggleTask"
	DeleteTaskMethod = "/" + ServiceName + "/DeleteTask"
)

// Task is the decoded form of a task Struct.
type Task struct {
	ID        string
	Task      string
	Completed bool
	CreatedAt time.Time
}

func (t Task) Struct() *structpb.Struct {
	created := ""
	if !t.CreatedAt.IsZero() {
		created = t.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":         structpb.NewStringValue(t.ID),
		"task":       structpb.NewStringValue(t.Task),
		"completed":  structpb.NewBoolValue(t.Completed),
		"created_at": structpb.NewStringValue(created),
	}}
}

func TaskFromStruct(s *structpb.Struct) Task {
	f := s.GetFields()
	t := Task{
		ID:        f["id"].GetStringValue(),
		Task:      f["task"].GetStringValue(),
		Completed: f["completed"].GetBoolValue(),
	}
	if raw := f["created_at"].GetStringValue(); raw != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			t.CreatedAt = ts
		}
	}
	return t
}

func TaskList(items []Task) *structpb.Struct {
	values := make([]*structpb.Value, 0, len(items))
	for _, it := range items {
		values = append(values, structpb.NewStructValue(it.Struct()))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"tasks": structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

func TaskListFromStruct(s *structpb.Struct) []Task {
	values := s.GetFields()["tasks"].GetListValue().GetValues()
	out := make([]Task, 0, len(values))
	for _, v := range values {
		out = append(out, TaskFromStruct(v.GetStructValue()))
	}
	return out
}

// ListFilter builds a ListTasks request. A nil completed lists everything.
func ListFilter(completed *bool) *structpb.Struct {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{}}
	if completed != nil {
		s.Fields["completed"] = structpb.NewBoolValue(*completed)
	}
	return s
}

// CompletedFilter reads the filter written by ListFilter.
func CompletedFilter(s *structpb.Struct) *bool {
	v, ok := s.GetFields()["completed"]
	if !ok {
		return nil
	}
	b := v.GetBoolValue()
	return &b
}

// ---- server

type TasksServiceServer interface {
	Ping(ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error)
	ListTasks(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	CreateTask(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	ToggleTask(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	DeleteTask(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error)
}

func RegisterTasksServiceServer(s grpc.ServiceRegistrar, srv TasksServiceServer) {
	s.RegisterService(&TasksServiceDesc, srv)
}

var TasksServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TasksServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler: unaryHandler(PingMethod, func(s TasksServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.Ping(ctx, in)
			}),
		},
		{
			MethodName: "ListTasks",
			Handler: unaryHandler(ListTasksMethod, func(s TasksServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.ListTasks(ctx, in)
			}),
		},
		{
			MethodName: "CreateTask",
			Handler: unaryHandler(CreateTaskMethod, func(s TasksServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.CreateTask(ctx, in)
			}),
		},
		{
			MethodName: "ToggleTask",
			Handler: unaryHandler(ToggleTaskMethod, func(s TasksServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.ToggleTask(ctx, in)
			}),
		},
		{
			MethodName: "DeleteTask",
			Handler: unaryHandler(DeleteTaskMethod, func(s TasksServiceServer, ctx context.Context, in *wrapperspb.StringValue) (any, error) {
				return s.DeleteTask(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "players/tasks/v1/tasks",
}

func unaryHandler[Req any](
	fullMethod string,
	call func(TasksServiceServer, context.Context, *Req) (any, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TasksServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(TasksServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ---- client

type TasksServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewTasksServiceClient(cc grpc.ClientConnInterface) *TasksServiceClient {
	return &TasksServiceClient{cc: cc}
}

func (c *TasksServiceClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TasksServiceClient) ListTasks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListTasksMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TasksServiceClient) CreateTask(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CreateTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TasksServiceClient) ToggleTask(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ToggleTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TasksServiceClient) DeleteTask(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteTaskMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
