package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName         = "paynow.v1.PayNow"
	EncodePayloadMethod = "/" + ServiceName + "/EncodePayload"
	DecodePayloadMethod = "/" + ServiceName + "/DecodePayload"
)

// PayNowServer exchanges google.protobuf.Struct messages so the service needs
// no generated stubs.
type PayNowServer interface {
	EncodePayload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DecodePayload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PayNowServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "EncodePayload", Handler: encodePayloadHandler},
		{MethodName: "DecodePayload", Handler: decodePayloadHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "paynow/v1/paynow.proto",
}

func Register(s grpc.ServiceRegistrar, srv PayNowServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func encodePayloadHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PayNowServer).EncodePayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: EncodePayloadMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PayNowServer).EncodePayload(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func decodePayloadHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PayNowServer).DecodePayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DecodePayloadMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PayNowServer).DecodePayload(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
