package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
)

func TestDescriptor(t *testing.T) {
	fd := File_gropc_v1_gateway_proto
	require.NotNil(t, fd)
	assert.Equal(t, "gropc.v1", string(fd.Package()))
	assert.Equal(t, 7, fd.Messages().Len())

	svc := fd.Services().ByName("GatewayService")
	require.NotNil(t, svc)
	sub := svc.Methods().ByName("SubscribeValue")
	require.NotNil(t, sub)
	assert.True(t, sub.IsStreamingServer())
	assert.False(t, sub.IsStreamingClient())
}

func TestMessageRoundTrip(t *testing.T) {
	in := &WriteValueRequest{NodeName: "ns=2;s=Speed", Value: "42", Type: "int"}
	data, err := proto.Marshal(in)
	require.NoError(t, err)

	out := &WriteValueRequest{}
	require.NoError(t, proto.Unmarshal(data, out))
	assert.True(t, proto.Equal(in, out))
	assert.Equal(t, "int", out.GetType())
}

func TestNilGetters(t *testing.T) {
	var r *SubscribeValueResponse
	assert.Equal(t, "", r.GetSubscriptionId())
	assert.Equal(t, "", r.GetResponse())
}
