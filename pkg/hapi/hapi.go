// Package hapi carries the wire schema the SDK speaks. The schema is an
// external, independently versioned artifact: the .proto subset is embedded
// and compiled at runtime (via protocompile) rather than generated into Go
// stubs, and requests/responses are built as dynamic messages over the
// compiled descriptors.
package hapi

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/linker"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Embedded schema sources, compiled together on first use.
var (
	//go:embed hapi.proto
	hapiProtoEmbedded string
	//go:embed mirror.proto
	mirrorProtoEmbedded string
)

var (
	compileOnce sync.Once
	compiled    linker.Files
	compileErr  error
)

// Files compiles the embedded schema on first call and returns the resulting
// descriptors. Subsequent calls return the cached result.
func Files() (linker.Files, error) {
	compileOnce.Do(func() {
		sources := map[string]string{
			"hapi.proto":   hapiProtoEmbedded,
			"mirror.proto": mirrorProtoEmbedded,
		}
		accessor := protocompile.SourceAccessorFromMap(sources)
		resolver := protocompile.WithStandardImports(&protocompile.SourceResolver{Accessor: accessor})
		compiler := protocompile.Compiler{
			Resolver:       resolver,
			SourceInfoMode: protocompile.SourceInfoStandard,
		}
		compiled, compileErr = compiler.Compile(context.Background(), "hapi.proto", "mirror.proto")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile embedded schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

func mustFiles() linker.Files {
	files, err := Files()
	if err != nil {
		// The schema ships with the SDK; failing to compile it is a build
		// defect, not a runtime condition callers can handle.
		panic(err)
	}
	return files
}

// FindMethod searches the compiled schema for a method with the given simple
// name (as declared in the .proto). Method names are unique across the
// embedded services.
func FindMethod(methodName string) (protoreflect.FileDescriptor, protoreflect.MethodDescriptor, error) {
	files, err := Files()
	if err != nil {
		return nil, nil, err
	}
	for _, file := range files {
		for i := 0; i < file.Services().Len(); i++ {
			service := file.Services().Get(i)
			method := service.Methods().ByName(protoreflect.Name(methodName))
			if method != nil {
				return file, method, nil
			}
		}
	}
	return nil, nil, fmt.Errorf("method %s not found in embedded schema", methodName)
}

// MethodPath returns the full gRPC method path ("/<package>.<Service>/<method>")
// for a simple method name.
func MethodPath(methodName string) (string, error) {
	fd, md, err := FindMethod(methodName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/%s.%s/%s", fd.Package(), md.Parent().Name(), methodName), nil
}

// MessageDescriptor looks up a message by simple name. Message names are
// unique across the embedded files.
func MessageDescriptor(name string) (protoreflect.MessageDescriptor, error) {
	files, err := Files()
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if md := file.Messages().ByName(protoreflect.Name(name)); md != nil {
			return md, nil
		}
	}
	return nil, fmt.Errorf("message %s not found in embedded schema", name)
}

// NewMessage creates an empty dynamic message of the named schema type.
// It panics if the name is not part of the embedded schema: message names are
// compile-time constants in this SDK, so a miss is a programming error.
func NewMessage(name string) *dynamicpb.Message {
	md, err := MessageDescriptor(name)
	if err != nil {
		panic(err)
	}
	return dynamicpb.NewMessage(md)
}

// Invoke performs a unary call of the named method over the given connection,
// returning the response as a dynamic message.
func Invoke(ctx context.Context, conn *grpc.ClientConn, methodName string, req proto.Message) (*dynamicpb.Message, error) {
	fd, md, err := FindMethod(methodName)
	if err != nil {
		return nil, err
	}
	out := dynamicpb.NewMessage(md.Output())
	full := fmt.Sprintf("/%s.%s/%s", fd.Package(), md.Parent().Name(), methodName)
	if err := conn.Invoke(ctx, full, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenServerStream starts a server-streaming call of the named method, sends
// the request, half-closes, and returns the stream together with the response
// message descriptor for decoding.
func OpenServerStream(ctx context.Context, conn *grpc.ClientConn, methodName string, req proto.Message) (grpc.ClientStream, protoreflect.MessageDescriptor, error) {
	fd, md, err := FindMethod(methodName)
	if err != nil {
		return nil, nil, err
	}
	full := fmt.Sprintf("/%s.%s/%s", fd.Package(), md.Parent().Name(), methodName)
	desc := &grpc.StreamDesc{StreamName: methodName, ServerStreams: true}
	stream, err := conn.NewStream(ctx, desc, full)
	if err != nil {
		return nil, nil, err
	}
	if err := stream.SendMsg(req); err != nil {
		return nil, nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, nil, err
	}
	return stream, md.Output(), nil
}
