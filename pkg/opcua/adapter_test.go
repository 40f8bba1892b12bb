package opcua

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gopcua/opcua/ua"

	"github.com/gropc-project/gropc-go/pkg/adapter"
)

func TestDataTypeOf(t *testing.T) {
	tests := []struct {
		id   ua.TypeID
		want adapter.DataType
	}{
		{ua.TypeIDBoolean, adapter.DataTypeBoolean},
		{ua.TypeIDInt16, adapter.DataTypeInt16},
		{ua.TypeIDUint32, adapter.DataTypeUInt32},
		{ua.TypeIDFloat, adapter.DataTypeFloat},
		{ua.TypeIDDouble, adapter.DataTypeDouble},
		{ua.TypeIDString, adapter.DataTypeString},
		{ua.TypeIDDateTime, adapter.DataTypeDateTime},
		{ua.TypeIDGUID, adapter.DataTypeUnknown},
	}
	for _, tt := range tests {
		if got := dataTypeOf(tt.id); got != tt.want {
			t.Errorf("dataTypeOf(%v) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestVariantRoundTrip(t *testing.T) {
	tests := []struct {
		typ  adapter.DataType
		text string
		want string
	}{
		{adapter.DataTypeBoolean, "true", "true"},
		{adapter.DataTypeSByte, "-8", "-8"},
		{adapter.DataTypeByte, "255", "255"},
		{adapter.DataTypeInt16, "-300", "-300"},
		{adapter.DataTypeUInt16, "65535", "65535"},
		{adapter.DataTypeInt32, "42", "42"},
		{adapter.DataTypeUInt32, "7", "7"},
		{adapter.DataTypeInt64, "-9000000000", "-9000000000"},
		{adapter.DataTypeUInt64, "9000000000", "9000000000"},
		{adapter.DataTypeFloat, "1.5", "1.5"},
		{adapter.DataTypeDouble, "3.25", "3.25"},
		{adapter.DataTypeString, "hello", "hello"},
		{adapter.DataTypeDateTime, "2024-05-01T10:00:00Z", "2024-05-01T10:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			v, err := toVariant(tt.text, tt.typ)
			if err != nil {
				t.Fatalf("toVariant() error = %v", err)
			}
			if got := dataTypeOf(v.Type()); got != tt.typ {
				t.Errorf("variant type = %v, want %v", got, tt.typ)
			}
			if got := variantText(v); got != tt.want {
				t.Errorf("variantText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToVariantRejects(t *testing.T) {
	tests := []struct {
		typ  adapter.DataType
		text string
	}{
		{adapter.DataTypeInt16, "70000"},
		{adapter.DataTypeByte, "-1"},
		{adapter.DataTypeBoolean, "maybe"},
		{adapter.DataTypeDouble, "abc"},
		{adapter.DataTypeUnknown, "1"},
	}
	for _, tt := range tests {
		if _, err := toVariant(tt.text, tt.typ); !errors.Is(err, adapter.ErrWriteRejected) {
			t.Errorf("toVariant(%q, %v) error = %v, want ErrWriteRejected", tt.text, tt.typ, err)
		}
	}
}

func TestVariantTextNil(t *testing.T) {
	if got := variantText(nil); got != "" {
		t.Errorf("variantText(nil) = %q", got)
	}
	v, err := ua.NewVariant(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if got := variantText(v); got != "2024-01-02T03:04:05Z" {
		t.Errorf("variantText(time) = %q", got)
	}
}

func TestDisconnectedAdapter(t *testing.T) {
	a := New(DefaultConfig("opc.tcp://localhost:4840"))
	ctx := context.Background()

	if _, err := a.Read(ctx, "ns=2;s=X"); !errors.Is(err, adapter.ErrDisconnected) {
		t.Errorf("Read() error = %v, want ErrDisconnected", err)
	}
	if err := a.Write(ctx, "ns=2;s=X", "1", adapter.DataTypeInt32); !errors.Is(err, adapter.ErrDisconnected) {
		t.Errorf("Write() error = %v, want ErrDisconnected", err)
	}
	if _, err := a.Subscribe(ctx, "ns=2;s=X", func(string) {}); !errors.Is(err, adapter.ErrDisconnected) {
		t.Errorf("Subscribe() error = %v, want ErrDisconnected", err)
	}
	if err := a.Unsubscribe(ctx, 1); !errors.Is(err, adapter.ErrUnknownHandle) {
		t.Errorf("Unsubscribe() error = %v, want ErrUnknownHandle", err)
	}
	if ok, err := a.IsValidNode(ctx, "ns=2;s=X"); ok || !errors.Is(err, adapter.ErrDisconnected) {
		t.Errorf("IsValidNode() = %v, %v, want false, ErrDisconnected", ok, err)
	}
	if err := a.Close(ctx); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("opc.tcp://plc:4840")
	if cfg.PublishInterval != time.Second {
		t.Errorf("PublishInterval = %v, want 1s", cfg.PublishInterval)
	}
	a := New(Config{Endpoint: "opc.tcp://plc:4840"})
	if a.config.RequestTimeout != DefaultRequestTimeout || a.config.QueueSize != DefaultQueueSize {
		t.Errorf("New() did not apply defaults: %+v", a.config)
	}
}
