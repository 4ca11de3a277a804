// Package mocknode runs an in-memory consensus/mirror node for tests. It
// serves every method of the embedded schema through a single unknown-service
// handler that decodes requests into dynamic messages and hands them to a
// scripted handler, so tests assert on exactly what went over the wire.
package mocknode

import (
	"context"
	"net"
	"strings"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/shamank/hiero-sdk-go/pkg/hapi"
)

const bufSize = 1024 * 1024

// Call records one decoded request the server saw.
type Call struct {
	Method  string
	Request *dynamicpb.Message
}

// Handler scripts the unary response for a method. Returning an error makes
// the server fail the RPC with that error.
type Handler func(method string, req *dynamicpb.Message) (proto.Message, error)

// StreamHandler scripts a server-streaming method: every returned message is
// sent before the stream closes cleanly.
type StreamHandler func(method string, req *dynamicpb.Message) ([]proto.Message, error)

// Server is a bufconn-backed gRPC server speaking the embedded schema.
type Server struct {
	lis *bufconn.Listener
	srv *grpc.Server

	mu      sync.Mutex
	calls   []Call
	handler Handler
	stream  StreamHandler
}

// Start spins up the server with the given unary handler.
func Start(handler Handler) *Server {
	s := &Server{lis: bufconn.Listen(bufSize), handler: handler}
	s.srv = grpc.NewServer(grpc.UnknownServiceHandler(s.route))
	go func() { _ = s.srv.Serve(s.lis) }()
	return s
}

// SetStreamHandler scripts server-streaming methods.
func (s *Server) SetStreamHandler(h StreamHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream = h
}

// Stop shuts the server down.
func (s *Server) Stop() { s.srv.Stop() }

// Calls returns a copy of every decoded request seen so far, in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many requests the server has seen.
func (s *Server) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// DialOption routes any dialed address over the in-memory listener. Hand it
// to client.Config.DialOptions together with passthrough node addresses so
// no name resolution happens.
func (s *Server) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
		return s.lis.Dial()
	})
}

// Dial opens a plain client connection to the server, for tests that talk to
// it without going through a Client.
func (s *Server) Dial() (*grpc.ClientConn, error) {
	return grpc.NewClient("passthrough://bufnet",
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		s.DialOption(),
	)
}

// route decodes any incoming RPC against the embedded schema and dispatches
// to the scripted handlers.
func (s *Server) route(_ interface{}, stream grpc.ServerStream) error {
	full, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "no method in stream")
	}
	name := full
	if i := strings.LastIndex(full, "/"); i >= 0 {
		name = full[i+1:]
	}
	_, md, err := hapi.FindMethod(name)
	if err != nil {
		return status.Errorf(codes.Unimplemented, "unknown method %s", full)
	}

	in := dynamicpb.NewMessage(md.Input())
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	s.mu.Lock()
	s.calls = append(s.calls, Call{Method: name, Request: in})
	unary := s.handler
	streaming := s.stream
	s.mu.Unlock()

	if md.IsStreamingServer() {
		if streaming == nil {
			return status.Errorf(codes.Unimplemented, "no stream handler for %s", full)
		}
		msgs, err := streaming(name, in)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			if err := stream.SendMsg(m); err != nil {
				return err
			}
		}
		return nil
	}

	resp, err := unary(name, in)
	if err != nil {
		return err
	}
	return stream.SendMsg(resp)
}
