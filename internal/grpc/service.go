package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "unitconv.v1.ConversionService"

// Full method names, as seen by interceptors
const (
	ExecuteMethod   = "/" + ServiceName + "/Execute"
	ListToolsMethod = "/" + ServiceName + "/ListTools"
)

// ConversionServiceServer is the server API of the conversion service.
//
// Messages are well-known protobuf types so no generated code is needed:
//
//	Execute(Struct{tool_id, params}) -> Struct{success, data, error}
//	ListTools(Empty)                 -> Struct{service, tools}
type ConversionServiceServer interface {
	Execute(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTools(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the conversion service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ConversionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Execute",
			Handler:    executeHandler,
		},
		{
			MethodName: "ListTools",
			Handler:    listToolsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "unitconv/v1/conversion.proto",
}

// RegisterConversionServiceServer registers srv on s
func RegisterConversionServiceServer(s grpc.ServiceRegistrar, srv ConversionServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func executeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversionServiceServer).Execute(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ExecuteMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversionServiceServer).Execute(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listToolsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ConversionServiceServer).ListTools(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ListToolsMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ConversionServiceServer).ListTools(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}
