package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"player-list/pkg/httpmw"
	taskspb "player-list/proto/tasks"
	apicore "player-list/web/core"
)

// GRPCClient talks to the tasks service over its gRPC contract.
type GRPCClient struct {
	log  *slog.Logger
	conn *grpc.ClientConn

	tasks *taskspb.TasksServiceClient
}

func NewGRPCClient(address string, log *slog.Logger, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("new grpc client for %s: %w", address, err)
	}

	return &GRPCClient{
		log:   log,
		conn:  conn,
		tasks: taskspb.NewTasksServiceClient(conn),
	}, nil
}

func (c *GRPCClient) Close() error { return c.conn.Close() }

// ---- Pinger

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.tasks.Ping(outgoing(ctx), &emptypb.Empty{})
	return mapGRPCErr(err)
}

// ---- Tasks

func (c *GRPCClient) ListTasks(ctx context.Context) ([]apicore.Task, error) {
	resp, err := c.tasks.ListTasks(outgoing(ctx), taskspb.ListFilter(nil))
	if err != nil {
		return nil, mapGRPCErr(err)
	}

	items := taskspb.TaskListFromStruct(resp)
	out := make([]apicore.Task, 0, len(items))
	for _, it := range items {
		out = append(out, taskFromPB(it))
	}
	return out, nil
}

func (c *GRPCClient) CreateTask(ctx context.Context, label string) (apicore.Task, error) {
	resp, err := c.tasks.CreateTask(outgoing(ctx), wrapperspb.String(label))
	if err != nil {
		return apicore.Task{}, mapGRPCErr(err)
	}
	return taskFromPB(taskspb.TaskFromStruct(resp)), nil
}

func (c *GRPCClient) ToggleTask(ctx context.Context, id string) (apicore.Task, error) {
	resp, err := c.tasks.ToggleTask(outgoing(ctx), wrapperspb.String(id))
	if err != nil {
		return apicore.Task{}, mapGRPCErr(err)
	}
	return taskFromPB(taskspb.TaskFromStruct(resp)), nil
}

func (c *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	_, err := c.tasks.DeleteTask(outgoing(ctx), wrapperspb.String(id))
	return mapGRPCErr(err)
}

var _ apicore.Tasks = (*GRPCClient)(nil)

// ---- helpers

// outgoing forwards the request id as gRPC metadata.
func outgoing(ctx context.Context) context.Context {
	if id := httpmw.RequestIDFrom(ctx); id != "" {
		return metadata.AppendToOutgoingContext(ctx, "x-request-id", id)
	}
	return ctx
}

func mapGRPCErr(err error) error {
	if err == nil {
		return nil
	}
	st := status.Convert(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", apicore.ErrBadArguments, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", apicore.ErrNotFound, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %s", apicore.ErrUnavailable, st.Message())
	default:
		return err
	}
}

func taskFromPB(t taskspb.Task) apicore.Task {
	return apicore.Task{
		ID:        t.ID,
		Task:      t.Task,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}
