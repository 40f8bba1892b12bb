package discovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayTXTRoundTrip(t *testing.T) {
	info := &GatewayInfo{
		Instance:   "line-3",
		Port:       50051,
		APIVersion: "1.0",
		Build:      "v1.2.0",
		Endpoint:   "opc.tcp://plc:4840",
		ReadOnly:   true,
	}

	strs := TXTRecordsToStrings(EncodeGatewayTXT(info))
	assert.Equal(t, []string{"api=1.0", "build=v1.2.0", "opc=opc.tcp://plc:4840", "ro=1"}, strs)

	decoded, err := DecodeGatewayTXT(StringsToTXTRecords(strs))
	require.NoError(t, err)
	assert.Equal(t, "1.0", decoded.APIVersion)
	assert.Equal(t, "v1.2.0", decoded.Build)
	assert.Equal(t, "opc.tcp://plc:4840", decoded.Endpoint)
	assert.True(t, decoded.ReadOnly)
}

func TestEncodeGatewayTXTOptionalFields(t *testing.T) {
	txt := EncodeGatewayTXT(&GatewayInfo{Instance: "gropc", APIVersion: "1.0"})
	assert.Equal(t, TXTRecordMap{TXTKeyAPIVersion: "1.0"}, txt)
}

func TestDecodeGatewayTXTErrors(t *testing.T) {
	tests := []struct {
		name string
		txt  TXTRecordMap
		want error
	}{
		{"missing api", TXTRecordMap{TXTKeyBuild: "dev"}, ErrMissingRequired},
		{"empty api", TXTRecordMap{TXTKeyAPIVersion: ""}, ErrMissingRequired},
		{"bad ro flag", TXTRecordMap{TXTKeyAPIVersion: "1.0", TXTKeyReadOnly: "yes"}, ErrInvalidTXTRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGatewayTXT(tt.txt)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStringsToTXTRecords(t *testing.T) {
	txt := StringsToTXTRecords([]string{"api=1.0", "opc=opc.tcp://h:4840/a=b", "flag", ""})
	assert.Equal(t, TXTRecordMap{
		"api":  "1.0",
		"opc":  "opc.tcp://h:4840/a=b",
		"flag": "",
	}, txt)
}

func TestGatewayInfoValidate(t *testing.T) {
	valid := &GatewayInfo{Instance: "gropc", APIVersion: "1.0"}
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, (&GatewayInfo{APIVersion: "1.0"}).Validate(), ErrMissingRequired)
	assert.ErrorIs(t, (&GatewayInfo{Instance: "gropc"}).Validate(), ErrMissingRequired)
	assert.ErrorIs(t, (&GatewayInfo{
		Instance:   strings.Repeat("x", MaxInstanceNameLen+1),
		APIVersion: "1.0",
	}).Validate(), ErrInstanceNameTooLong)
	assert.ErrorIs(t, (&GatewayInfo{
		Instance:   "gropc",
		APIVersion: "1.0",
		Endpoint:   "opc.tcp://" + strings.Repeat("h", MaxTXTRecordSize),
	}).Validate(), ErrTXTRecordTooLarge)
}

func TestGatewayServiceTarget(t *testing.T) {
	svc := &GatewayService{Host: "gw.local.", Port: 50051}
	assert.Equal(t, "gw.local.:50051", svc.Target())

	svc.Addresses = []string{"fe80::1", "192.168.1.5"}
	assert.Equal(t, "[fe80::1]:50051", svc.Target())
}

func TestAggregator(t *testing.T) {
	agg := newAggregator()
	text := []string{"api=1.0"}

	first := agg.add(ServiceEntry{Instance: "gw", Port: 50051, Text: text, Addrs: []string{"10.0.0.1"}})
	require.NotNil(t, first)
	assert.Equal(t, []string{"10.0.0.1"}, first.Addresses)

	// Same instance on a second interface only merges addresses.
	assert.Nil(t, agg.add(ServiceEntry{Instance: "gw", Port: 50051, Text: text, Addrs: []string{"10.0.0.1", "fd00::1"}}))
	assert.Equal(t, []string{"10.0.0.1", "fd00::1"}, first.Addresses)

	// Unusable TXT records are ignored.
	assert.Nil(t, agg.add(ServiceEntry{Instance: "other", Text: []string{"build=x"}}))

	agg.remove(ServiceEntry{Instance: "gw", Addrs: []string{"10.0.0.1"}})
	assert.Equal(t, []string{"fd00::1"}, first.Addresses)

	agg.remove(ServiceEntry{Instance: "gw", Addrs: []string{"fd00::1"}})
	again := agg.add(ServiceEntry{Instance: "gw", Port: 50051, Text: text, Addrs: []string{"10.0.0.2"}})
	require.NotNil(t, again, "service is reported again after it disappeared")
}

func TestMDNSAdvertiserRejectsInvalidInfo(t *testing.T) {
	a := NewMDNSAdvertiser(DefaultAdvertiserConfig())

	err := a.Advertise(t.Context(), &GatewayInfo{Instance: "gropc"})
	assert.ErrorIs(t, err, ErrMissingRequired)

	assert.ErrorIs(t, a.Update(&GatewayInfo{Instance: "gropc", APIVersion: "1.0"}), ErrNotAdvertising)
	assert.NoError(t, a.Stop())
	assert.NoError(t, a.Stop())
}
