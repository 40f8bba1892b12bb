package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinNames(t *testing.T) {
	s, err := JoinNames([]string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, "B"+Separator+"C", s)
	assert.Equal(t, []string{"B", "C"}, SplitNames(s))

	s, err = JoinNames(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)
	assert.Empty(t, SplitNames(s))
}

func TestJoinNamesRejectsSeparator(t *testing.T) {
	bad := "ns=1;s=a" + Separator + "b"
	_, err := JoinNames([]string{"ok", bad})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, bad, cfgErr.Node)

	_, err = JoinNames([]string{""})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "", cfgErr.Node)
}

func TestPayloadPrimaryOnly(t *testing.T) {
	p, err := EncodePayload("a|b", nil)
	require.NoError(t, err)
	assert.Equal(t, "a|b", p)

	v, assoc, err := DecodePayload[string](p, nil)
	require.NoError(t, err)
	assert.Equal(t, "a|b", v)
	assert.Empty(t, assoc)
}

func TestPayloadWithAssociated(t *testing.T) {
	p, err := EncodePayload("10", []string{"20", "30"})
	require.NoError(t, err)

	v, assoc, err := DecodePayload[int](p, []string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 10, v)
	assert.Equal(t, map[string]string{"B": "20", "C": "30"}, assoc)
}

func TestPayloadEmptyValues(t *testing.T) {
	p, err := EncodePayload("", []string{"", "x"})
	require.NoError(t, err)

	v, assoc, err := DecodePayload[string](p, []string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, "", v)
	assert.Equal(t, map[string]string{"B": "", "C": "x"}, assoc)
}

func TestPayloadAmbiguous(t *testing.T) {
	_, err := EncodePayload("1", []string{"x" + Separator + "y"})
	assert.ErrorIs(t, err, ErrAmbiguousPayload)

	_, err = EncodePayload("1"+Separator, []string{"2"})
	assert.ErrorIs(t, err, ErrAmbiguousPayload)

	_, _, err = DecodePayload[int]("1"+Separator+"2"+Separator+"3", []string{"B"})
	assert.ErrorIs(t, err, ErrAmbiguousPayload)

	_, _, err = DecodePayload[int]("1", []string{"B"})
	assert.ErrorIs(t, err, ErrAmbiguousPayload)
}

func TestPayloadDecodeFailure(t *testing.T) {
	_, _, err := DecodePayload[int]("x"+Separator+"2", []string{"B"})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestWriteStatus(t *testing.T) {
	assert.True(t, StatusOK.IsSuccess())
	assert.False(t, StatusWrongType.IsSuccess())
	assert.Equal(t, "UNKNOWN_TYPE", StatusUnknownType.String())
}
