package protocol

import (
	"encoding/json"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrtrack/vrtrack/internal/core/geometry"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := JSONCodec{}

	state := tracking.ControllerState{
		APIStatus:       tracking.StatusOK,
		ConnectionState: tracking.Connected,
		Orientation:     geometry.QuatIdent(),
		Touching:        true,
		TouchPos:        geometry.Vec2{0.25, 0.75},
		TouchDown:       true,
	}
	state.ButtonState[tracking.ButtonClick] = true

	data, err := codec.Encode(TypeControllerState, 7, state)
	require.NoError(t, err)

	env, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, TypeControllerState, env.Type)
	assert.Equal(t, uint64(7), env.Seq)
	assert.Equal(t, LayoutVersion, env.Version)

	var got tracking.ControllerState
	require.NoError(t, env.Unmarshal(&got))
	assert.Equal(t, state, got)
}

func TestCodecChecksumMismatch(t *testing.T) {
	codec := JSONCodec{}

	data, err := codec.Encode(TypeHeadPose, 1, tracking.IdentityPose())
	require.NoError(t, err)

	// Corrupt the payload but keep the envelope well-formed.
	var env Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	env.Payload = json.RawMessage(`{"tampered":true}`)
	corrupted, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = codec.Decode(corrupted)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestCodecLayoutVersionMismatch(t *testing.T) {
	codec := JSONCodec{}

	payload := json.RawMessage(`{}`)
	env := Envelope{
		Version:  LayoutVersion + 1,
		Type:     TypeHello,
		Checksum: xxhash.Sum64(payload),
		Payload:  payload,
	}
	data, err := json.Marshal(env)
	require.NoError(t, err)

	_, err = codec.Decode(data)
	assert.ErrorIs(t, err, ErrLayoutVersion)
}

func TestCodecRejectsGarbage(t *testing.T) {
	codec := JSONCodec{}

	_, err := codec.Decode([]byte("not json"))
	assert.ErrorIs(t, err, ErrInvalidMessage)

	// Well-formed JSON with no type is still invalid.
	payload := json.RawMessage(`{}`)
	env := Envelope{Version: LayoutVersion, Checksum: xxhash.Sum64(payload), Payload: payload}
	data, err := json.Marshal(env)
	require.NoError(t, err)
	_, err = codec.Decode(data)
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func BenchmarkCodecEncode(b *testing.B) {
	codec := JSONCodec{}
	state := tracking.ControllerState{ConnectionState: tracking.Connected}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Encode(TypeControllerState, uint64(i), state); err != nil {
			b.Fatal(err)
		}
	}
}
