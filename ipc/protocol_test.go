package ipc

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeFraming(t *testing.T) {
	var buf bytes.Buffer
	env, err := NewEnvelope(TypeAck, AckMessage{Status: "ok"})
	require.NoError(t, err)
	require.NoError(t, WriteEnvelope(&buf, env))

	var length uint32
	require.NoError(t, binary.Read(bytes.NewReader(buf.Bytes()[:4]), binary.LittleEndian, &length))
	assert.Equal(t, buf.Len()-4, int(length))

	got, err := ReadEnvelope(&buf)
	require.NoError(t, err)
	assert.Equal(t, TypeAck, got.Type)

	var ack AckMessage
	require.NoError(t, json.Unmarshal(got.Data, &ack))
	assert.Equal(t, "ok", ack.Status)
}

func TestReadEnvelopeRejectsBadLength(t *testing.T) {
	for _, length := range []uint32{0, maxMessageLength + 1} {
		var buf bytes.Buffer
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, length))
		_, err := ReadEnvelope(&buf)
		assert.Error(t, err, "length %d", length)
	}
}

func TestReadEnvelopeTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(50)))
	buf.WriteString(`{"type":"ack"}`)

	_, err := ReadEnvelope(&buf)
	assert.Error(t, err)
}
