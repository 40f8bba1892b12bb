package v1

import (
	context "context"
	reflect "reflect"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
	proto "google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/runtime/protoimpl"
	descriptorpb "google.golang.org/protobuf/types/descriptorpb"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
)

const (
	// Verify that this generated file is compatible with the proto package it is being compiled against.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that this generated file is compatible with the protoimpl package it is being compiled against.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

// ReadValueRequest carries the node to read.
type ReadValueRequest struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	NodeName string `protobuf:"bytes,1,opt,name=node_name,json=nodeName,proto3" json:"node_name,omitempty"`
}

func (x *ReadValueRequest) Reset() {
	*x = ReadValueRequest{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[0]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *ReadValueRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ReadValueRequest) ProtoMessage() {}

func (x *ReadValueRequest) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[0]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *ReadValueRequest) GetNodeName() string {
	if x != nil {
		return x.NodeName
	}
	return ""
}

// ReadValueResponse carries the node value as text.
type ReadValueResponse struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	Value string `protobuf:"bytes,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (x *ReadValueResponse) Reset() {
	*x = ReadValueResponse{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[1]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *ReadValueResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ReadValueResponse) ProtoMessage() {}

func (x *ReadValueResponse) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[1]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *ReadValueResponse) GetValue() string {
	if x != nil {
		return x.Value
	}
	return ""
}

// SubscribeValueRequest names the primary node and the separator-joined
// associated nodes whose values accompany every notification.
type SubscribeValueRequest struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	NodeName       string `protobuf:"bytes,1,opt,name=node_name,json=nodeName,proto3" json:"node_name,omitempty"`
	ReturnedValues string `protobuf:"bytes,2,opt,name=returned_values,json=returnedValues,proto3" json:"returned_values,omitempty"`
}

func (x *SubscribeValueRequest) Reset() {
	*x = SubscribeValueRequest{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[2]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *SubscribeValueRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SubscribeValueRequest) ProtoMessage() {}

func (x *SubscribeValueRequest) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[2]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *SubscribeValueRequest) GetNodeName() string {
	if x != nil {
		return x.NodeName
	}
	return ""
}

func (x *SubscribeValueRequest) GetReturnedValues() string {
	if x != nil {
		return x.ReturnedValues
	}
	return ""
}

// SubscribeValueResponse is one message of a subscription stream. The first
// message carries the subscription id and an empty response; later messages
// carry the encoded payload.
type SubscribeValueResponse struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	SubscriptionId string `protobuf:"bytes,1,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
	Response       string `protobuf:"bytes,2,opt,name=response,proto3" json:"response,omitempty"`
}

func (x *SubscribeValueResponse) Reset() {
	*x = SubscribeValueResponse{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[3]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *SubscribeValueResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SubscribeValueResponse) ProtoMessage() {}

func (x *SubscribeValueResponse) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[3]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *SubscribeValueResponse) GetSubscriptionId() string {
	if x != nil {
		return x.SubscriptionId
	}
	return ""
}

func (x *SubscribeValueResponse) GetResponse() string {
	if x != nil {
		return x.Response
	}
	return ""
}

type UnsubscribeValueRequest struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	SubscriptionId string `protobuf:"bytes,1,opt,name=subscription_id,json=subscriptionId,proto3" json:"subscription_id,omitempty"`
}

func (x *UnsubscribeValueRequest) Reset() {
	*x = UnsubscribeValueRequest{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[4]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *UnsubscribeValueRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*UnsubscribeValueRequest) ProtoMessage() {}

func (x *UnsubscribeValueRequest) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[4]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *UnsubscribeValueRequest) GetSubscriptionId() string {
	if x != nil {
		return x.SubscriptionId
	}
	return ""
}

// WriteValueRequest carries the node, the value as text and the declared
// type family (int, double, bool or string).
type WriteValueRequest struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	NodeName string `protobuf:"bytes,1,opt,name=node_name,json=nodeName,proto3" json:"node_name,omitempty"`
	Value    string `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
	Type     string `protobuf:"bytes,3,opt,name=type,proto3" json:"type,omitempty"`
}

func (x *WriteValueRequest) Reset() {
	*x = WriteValueRequest{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[5]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *WriteValueRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*WriteValueRequest) ProtoMessage() {}

func (x *WriteValueRequest) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[5]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *WriteValueRequest) GetNodeName() string {
	if x != nil {
		return x.NodeName
	}
	return ""
}

func (x *WriteValueRequest) GetValue() string {
	if x != nil {
		return x.Value
	}
	return ""
}

func (x *WriteValueRequest) GetType() string {
	if x != nil {
		return x.Type
	}
	return ""
}

// WriteValueResponse carries the write status.
type WriteValueResponse struct {
	state         protoimpl.MessageState
	sizeCache     protoimpl.SizeCache
	unknownFields protoimpl.UnknownFields

	Response string `protobuf:"bytes,1,opt,name=response,proto3" json:"response,omitempty"`
}

func (x *WriteValueResponse) Reset() {
	*x = WriteValueResponse{}
	if protoimpl.UnsafeEnabled {
		mi := &file_gropc_v1_gateway_proto_msgTypes[6]
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		ms.StoreMessageInfo(mi)
	}
}

func (x *WriteValueResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*WriteValueResponse) ProtoMessage() {}

func (x *WriteValueResponse) ProtoReflect() protoreflect.Message {
	mi := &file_gropc_v1_gateway_proto_msgTypes[6]
	if protoimpl.UnsafeEnabled && x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

func (x *WriteValueResponse) GetResponse() string {
	if x != nil {
		return x.Response
	}
	return ""
}

var File_gropc_v1_gateway_proto protoreflect.FileDescriptor

var file_gropc_v1_gateway_proto_msgTypes = make([]protoimpl.MessageInfo, 7)
var file_gropc_v1_gateway_proto_goTypes = []interface{}{
	(*ReadValueRequest)(nil),        // 0: gropc.v1.ReadValueRequest
	(*ReadValueResponse)(nil),       // 1: gropc.v1.ReadValueResponse
	(*SubscribeValueRequest)(nil),   // 2: gropc.v1.SubscribeValueRequest
	(*SubscribeValueResponse)(nil),  // 3: gropc.v1.SubscribeValueResponse
	(*UnsubscribeValueRequest)(nil), // 4: gropc.v1.UnsubscribeValueRequest
	(*WriteValueRequest)(nil),       // 5: gropc.v1.WriteValueRequest
	(*WriteValueResponse)(nil),      // 6: gropc.v1.WriteValueResponse
	(*emptypb.Empty)(nil),           // 7: google.protobuf.Empty
}
var file_gropc_v1_gateway_proto_depIdxs = []int32{
	0, // 0: gropc.v1.GatewayService.ReadValue:input_type -> gropc.v1.ReadValueRequest
	2, // 1: gropc.v1.GatewayService.SubscribeValue:input_type -> gropc.v1.SubscribeValueRequest
	4, // 2: gropc.v1.GatewayService.UnsubscribeValue:input_type -> gropc.v1.UnsubscribeValueRequest
	5, // 3: gropc.v1.GatewayService.WriteValue:input_type -> gropc.v1.WriteValueRequest
	1, // 4: gropc.v1.GatewayService.ReadValue:output_type -> gropc.v1.ReadValueResponse
	3, // 5: gropc.v1.GatewayService.SubscribeValue:output_type -> gropc.v1.SubscribeValueResponse
	7, // 6: gropc.v1.GatewayService.UnsubscribeValue:output_type -> google.protobuf.Empty
	6, // 7: gropc.v1.GatewayService.WriteValue:output_type -> gropc.v1.WriteValueResponse
	4, // [4:8] is the sub-list for method output_type
	0, // [0:4] is the sub-list for method input_type
	0, // [0:0] is the sub-list for extension type_name
	0, // [0:0] is the sub-list for extension extendee
	0, // [0:0] is the sub-list for field type_name
}

func init() { file_gropc_v1_gateway_proto_init() }
func file_gropc_v1_gateway_proto_init() {
	if File_gropc_v1_gateway_proto != nil {
		return
	}
	str := func(name string, number int32) *descriptorpb.FieldDescriptorProto {
		return &descriptorpb.FieldDescriptorProto{
			Name:   proto.String(name),
			Number: proto.Int32(number),
			Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Type:   descriptorpb.FieldDescriptorProto_TYPE_STRING.Enum(),
		}
	}
	fd := &descriptorpb.FileDescriptorProto{
		Syntax:  proto.String("proto3"),
		Name:    proto.String("gropc/v1/gateway.proto"),
		Package: proto.String("gropc.v1"),
		Dependency: []string{
			"google/protobuf/empty.proto",
		},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/gropc-project/gropc-go/pkg/api/v1;v1"),
		},
		MessageType: []*descriptorpb.DescriptorProto{
			{Name: proto.String("ReadValueRequest"), Field: []*descriptorpb.FieldDescriptorProto{str("node_name", 1)}},
			{Name: proto.String("ReadValueResponse"), Field: []*descriptorpb.FieldDescriptorProto{str("value", 1)}},
			{Name: proto.String("SubscribeValueRequest"), Field: []*descriptorpb.FieldDescriptorProto{str("node_name", 1), str("returned_values", 2)}},
			{Name: proto.String("SubscribeValueResponse"), Field: []*descriptorpb.FieldDescriptorProto{str("subscription_id", 1), str("response", 2)}},
			{Name: proto.String("UnsubscribeValueRequest"), Field: []*descriptorpb.FieldDescriptorProto{str("subscription_id", 1)}},
			{Name: proto.String("WriteValueRequest"), Field: []*descriptorpb.FieldDescriptorProto{str("node_name", 1), str("value", 2), str("type", 3)}},
			{Name: proto.String("WriteValueResponse"), Field: []*descriptorpb.FieldDescriptorProto{str("response", 1)}},
		},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("GatewayService"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{Name: proto.String("ReadValue"), InputType: proto.String(".gropc.v1.ReadValueRequest"), OutputType: proto.String(".gropc.v1.ReadValueResponse")},
					{Name: proto.String("SubscribeValue"), InputType: proto.String(".gropc.v1.SubscribeValueRequest"), OutputType: proto.String(".gropc.v1.SubscribeValueResponse"), ServerStreaming: proto.Bool(true)},
					{Name: proto.String("UnsubscribeValue"), InputType: proto.String(".gropc.v1.UnsubscribeValueRequest"), OutputType: proto.String(".google.protobuf.Empty")},
					{Name: proto.String("WriteValue"), InputType: proto.String(".gropc.v1.WriteValueRequest"), OutputType: proto.String(".gropc.v1.WriteValueResponse")},
				},
			},
		},
	}

	rawDesc, err := proto.Marshal(fd)
	if err != nil {
		panic(err)
	}
	if !protoimpl.UnsafeEnabled {
		file_gropc_v1_gateway_proto_msgTypes[0].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*ReadValueRequest); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[1].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*ReadValueResponse); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[2].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*SubscribeValueRequest); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[3].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*SubscribeValueResponse); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[4].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*UnsubscribeValueRequest); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[5].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*WriteValueRequest); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
		file_gropc_v1_gateway_proto_msgTypes[6].Exporter = func(v interface{}, i int) interface{} {
			switch v := v.(*WriteValueResponse); i {
			case 0:
				return &v.state
			case 1:
				return &v.sizeCache
			case 2:
				return &v.unknownFields
			default:
				return nil
			}
		}
	}

	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: rawDesc,
			NumEnums:      0,
			NumMessages:   7,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_gropc_v1_gateway_proto_goTypes,
		DependencyIndexes: file_gropc_v1_gateway_proto_depIdxs,
		MessageInfos:      file_gropc_v1_gateway_proto_msgTypes,
	}.Build()

	File_gropc_v1_gateway_proto = out.File
	file_gropc_v1_gateway_proto_goTypes = nil
	file_gropc_v1_gateway_proto_depIdxs = nil
}

// gRPC client and server interfaces.

type GatewayServiceClient interface {
	ReadValue(ctx context.Context, in *ReadValueRequest, opts ...grpc.CallOption) (*ReadValueResponse, error)
	SubscribeValue(ctx context.Context, in *SubscribeValueRequest, opts ...grpc.CallOption) (GatewayService_SubscribeValueClient, error)
	UnsubscribeValue(ctx context.Context, in *UnsubscribeValueRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	WriteValue(ctx context.Context, in *WriteValueRequest, opts ...grpc.CallOption) (*WriteValueResponse, error)
}

type gatewayServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGatewayServiceClient(cc grpc.ClientConnInterface) GatewayServiceClient {
	return &gatewayServiceClient{cc}
}

func (c *gatewayServiceClient) ReadValue(ctx context.Context, in *ReadValueRequest, opts ...grpc.CallOption) (*ReadValueResponse, error) {
	out := new(ReadValueResponse)
	err := c.cc.Invoke(ctx, "/gropc.v1.GatewayService/ReadValue", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) SubscribeValue(ctx context.Context, in *SubscribeValueRequest, opts ...grpc.CallOption) (GatewayService_SubscribeValueClient, error) {
	stream, err := c.cc.NewStream(ctx, &GatewayService_ServiceDesc.Streams[0], "/gropc.v1.GatewayService/SubscribeValue", opts...)
	if err != nil {
		return nil, err
	}
	x := &gatewayServiceSubscribeValueClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type GatewayService_SubscribeValueClient interface {
	Recv() (*SubscribeValueResponse, error)
	grpc.ClientStream
}

type gatewayServiceSubscribeValueClient struct {
	grpc.ClientStream
}

func (x *gatewayServiceSubscribeValueClient) Recv() (*SubscribeValueResponse, error) {
	m := new(SubscribeValueResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *gatewayServiceClient) UnsubscribeValue(ctx context.Context, in *UnsubscribeValueRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	err := c.cc.Invoke(ctx, "/gropc.v1.GatewayService/UnsubscribeValue", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gatewayServiceClient) WriteValue(ctx context.Context, in *WriteValueRequest, opts ...grpc.CallOption) (*WriteValueResponse, error) {
	out := new(WriteValueResponse)
	err := c.cc.Invoke(ctx, "/gropc.v1.GatewayService/WriteValue", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type GatewayServiceServer interface {
	ReadValue(context.Context, *ReadValueRequest) (*ReadValueResponse, error)
	SubscribeValue(*SubscribeValueRequest, GatewayService_SubscribeValueServer) error
	UnsubscribeValue(context.Context, *UnsubscribeValueRequest) (*emptypb.Empty, error)
	WriteValue(context.Context, *WriteValueRequest) (*WriteValueResponse, error)
	mustEmbedUnimplementedGatewayServiceServer()
}

type UnimplementedGatewayServiceServer struct{}

func (UnimplementedGatewayServiceServer) ReadValue(context.Context, *ReadValueRequest) (*ReadValueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReadValue not implemented")
}
func (UnimplementedGatewayServiceServer) SubscribeValue(*SubscribeValueRequest, GatewayService_SubscribeValueServer) error {
	return status.Errorf(codes.Unimplemented, "method SubscribeValue not implemented")
}
func (UnimplementedGatewayServiceServer) UnsubscribeValue(context.Context, *UnsubscribeValueRequest) (*emptypb.Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UnsubscribeValue not implemented")
}
func (UnimplementedGatewayServiceServer) WriteValue(context.Context, *WriteValueRequest) (*WriteValueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method WriteValue not implemented")
}
func (UnimplementedGatewayServiceServer) mustEmbedUnimplementedGatewayServiceServer() {}

func RegisterGatewayServiceServer(s grpc.ServiceRegistrar, srv GatewayServiceServer) {
	s.RegisterService(&GatewayService_ServiceDesc, srv)
}

func _GatewayService_ReadValue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReadValueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).ReadValue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/gropc.v1.GatewayService/ReadValue",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GatewayServiceServer).ReadValue(ctx, req.(*ReadValueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_SubscribeValue_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(SubscribeValueRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(GatewayServiceServer).SubscribeValue(m, &gatewayServiceSubscribeValueServer{stream})
}

type GatewayService_SubscribeValueServer interface {
	Send(*SubscribeValueResponse) error
	grpc.ServerStream
}

type gatewayServiceSubscribeValueServer struct {
	grpc.ServerStream
}

func (x *gatewayServiceSubscribeValueServer) Send(m *SubscribeValueResponse) error {
	return x.ServerStream.SendMsg(m)
}

func _GatewayService_UnsubscribeValue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UnsubscribeValueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).UnsubscribeValue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/gropc.v1.GatewayService/UnsubscribeValue",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GatewayServiceServer).UnsubscribeValue(ctx, req.(*UnsubscribeValueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GatewayService_WriteValue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteValueRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GatewayServiceServer).WriteValue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/gropc.v1.GatewayService/WriteValue",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GatewayServiceServer).WriteValue(ctx, req.(*WriteValueRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var GatewayService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "gropc.v1.GatewayService",
	HandlerType: (*GatewayServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ReadValue", Handler: _GatewayService_ReadValue_Handler},
		{MethodName: "UnsubscribeValue", Handler: _GatewayService_UnsubscribeValue_Handler},
		{MethodName: "WriteValue", Handler: _GatewayService_WriteValue_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeValue",
			Handler:       _GatewayService_SubscribeValue_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "gropc/v1/gateway.proto",
}
