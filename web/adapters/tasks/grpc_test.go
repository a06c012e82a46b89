package tasks

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"player-list/pkg/httpmw"
	taskspb "player-list/proto/tasks"
	apicore "player-list/web/core"
)

type fakeTasksServer struct {
	err       error
	tasks     []taskspb.Task
	requestID string
	lastArg   string
}

func (s *fakeTasksServer) record(ctx context.Context) {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get("x-request-id"); len(v) > 0 {
			s.requestID = v[0]
		}
	}
}

func (s *fakeTasksServer) Ping(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.record(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return &emptypb.Empty{}, nil
}

func (s *fakeTasksServer) ListTasks(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	s.record(ctx)
	if s.err != nil {
		return nil, s.err
	}
	return taskspb.TaskList(s.tasks), nil
}

func (s *fakeTasksServer) CreateTask(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.record(ctx)
	s.lastArg = in.GetValue()
	if s.err != nil {
		return nil, s.err
	}
	return taskspb.Task{ID: "t1", Task: in.GetValue()}.Struct(), nil
}

func (s *fakeTasksServer) ToggleTask(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	s.record(ctx)
	s.lastArg = in.GetValue()
	if s.err != nil {
		return nil, s.err
	}
	return taskspb.Task{ID: in.GetValue(), Task: "Alice", Completed: true}.Struct(), nil
}

func (s *fakeTasksServer) DeleteTask(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
	s.record(ctx)
	s.lastArg = in.GetValue()
	if s.err != nil {
		return nil, s.err
	}
	return &emptypb.Empty{}, nil
}

func newTestGRPCClient(t *testing.T, srv taskspb.TasksServiceServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	gs := grpc.NewServer()
	taskspb.RegisterTasksServiceServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()

	c, err := NewGRPCClient("passthrough:///bufnet", slog.New(slog.NewTextHandler(io.Discard, nil)),
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return lis.Dial()
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		gs.Stop()
		_ = lis.Close()
	})
	return c
}

func TestGRPCClient_RoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := &fakeTasksServer{tasks: []taskspb.Task{
		{ID: "a", Task: "Alice", CreatedAt: created},
		{ID: "b", Task: "Bob", Completed: true},
	}}
	c := newTestGRPCClient(t, srv)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	items, err := c.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, apicore.Task{ID: "a", Task: "Alice", CreatedAt: created}, items[0])
	assert.True(t, items[1].Completed)

	task, err := c.CreateTask(ctx, "Carol")
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
	assert.Equal(t, "Carol", task.Task)
	assert.Equal(t, "Carol", srv.lastArg)

	task, err = c.ToggleTask(ctx, "a")
	require.NoError(t, err)
	assert.True(t, task.Completed)
	assert.Equal(t, "a", srv.lastArg)

	require.NoError(t, c.DeleteTask(ctx, "b"))
	assert.Equal(t, "b", srv.lastArg)
}

func TestGRPCClient_EmptyListIsNonNil(t *testing.T) {
	c := newTestGRPCClient(t, &fakeTasksServer{})

	items, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGRPCClient_MapsStatusCodes(t *testing.T) {
	cases := []struct {
		code codes.Code
		want error
	}{
		{codes.InvalidArgument, apicore.ErrBadArguments},
		{codes.NotFound, apicore.ErrNotFound},
		{codes.Unavailable, apicore.ErrUnavailable},
		{codes.DeadlineExceeded, apicore.ErrUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			c := newTestGRPCClient(t, &fakeTasksServer{err: status.Error(tc.code, "boom")})

			_, err := c.ToggleTask(context.Background(), "x")
			assert.ErrorIs(t, err, tc.want)
		})
	}

	c := newTestGRPCClient(t, &fakeTasksServer{err: status.Error(codes.Internal, "boom")})
	err := c.DeleteTask(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apicore.ErrUnavailable)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestGRPCClient_ForwardsRequestID(t *testing.T) {
	srv := &fakeTasksServer{}
	c := newTestGRPCClient(t, srv)

	ctx := httpmw.WithRequestID(context.Background(), "req-42")
	require.NoError(t, c.Ping(ctx))
	assert.Equal(t, "req-42", srv.requestID)

	srv.requestID = ""
	require.NoError(t, c.Ping(context.Background()))
	assert.Empty(t, srv.requestID)
}
