package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"player-list/pkg/httpmw"
	taskspb "player-list/proto/tasks"
	"player-list/tasks/core"
)

// RequestIDKey is the metadata key carrying the caller's request id.
const RequestIDKey = "x-request-id"

type Service interface {
	Ping(ctx context.Context) error
	ListTasks(ctx context.Context, f core.ListTasksFilter) ([]core.Task, error)
	CreateTask(ctx context.Context, label string) (core.Task, error)
	ToggleTask(ctx context.Context, id string) (core.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

type Server struct {
	log     *slog.Logger
	service Service
}

func NewServer(log *slog.Logger, service Service) *Server {
	return &Server{log: log, service: service}
}

func (s *Server) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := s.service.Ping(ctx); err != nil {
		s.log.Warn("ping failed", "error", err)
		return nil, s.mapErr(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *Server) ListTasks(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := core.ListTasksFilter{Completed: taskspb.CompletedFilter(req)}

	items, err := s.service.ListTasks(ctx, f)
	if err != nil {
		return nil, s.mapErr(err)
	}

	out := make([]taskspb.Task, 0, len(items))
	for _, t := range items {
		out = append(out, taskToPB(t))
	}
	return taskspb.TaskList(out), nil
}

func (s *Server) CreateTask(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "empty request")
	}

	t, err := s.service.CreateTask(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapErr(err)
	}
	return taskToPB(t).Struct(), nil
}

func (s *Server) ToggleTask(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	t, err := s.service.ToggleTask(ctx, req.GetValue())
	if err != nil {
		return nil, s.mapErr(err)
	}
	return taskToPB(t).Struct(), nil
}

func (s *Server) DeleteTask(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "invalid id")
	}

	if err := s.service.DeleteTask(ctx, req.GetValue()); err != nil {
		return nil, s.mapErr(err)
	}
	return &emptypb.Empty{}, nil
}

var _ taskspb.TasksServiceServer = (*Server)(nil)

// Helpers

func taskToPB(t core.Task) taskspb.Task {
	return taskspb.Task{
		ID:        t.ID,
		Task:      t.Task,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt,
	}
}

func (s *Server) mapErr(err error) error {
	switch {
	case errors.Is(err, core.ErrTaskInvalidArgs):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, core.ErrTaskNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, core.ErrStoreUnavailable):
		return status.Error(codes.Unavailable, "store unavailable")
	default:
		s.log.Error("internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// UnaryLogger logs one line per call and carries the caller's request id into
// the handler context.
func UnaryLogger(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		var id string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDKey); len(v) > 0 && httpmw.ValidRequestID(v[0]) {
				id = v[0]
			}
		}
		if id != "" {
			ctx = httpmw.WithRequestID(ctx, id)
		}

		resp, err := handler(ctx, req)

		level := slog.LevelDebug
		if code := status.Code(err); code == codes.Internal || code == codes.Unavailable {
			level = slog.LevelWarn
		}
		log.Log(ctx, level, "grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
			"request_id", id,
		)
		return resp, err
	}
}
