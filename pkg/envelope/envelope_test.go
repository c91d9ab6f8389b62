package envelope

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/huffman"
	"github.com/provide-io/huffcrypt/pkg/operations"
	"github.com/provide-io/huffcrypt/pkg/pipeline"
)

const (
	testText = "sealed envelopes carry everything except the key 🔑"
	testKey  = "super-secret-key-123"
)

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "envelope_test",
		Level: hclog.Trace,
	})
}

func encodeTest(t *testing.T, opts ...pipeline.Option) (*pipeline.Codec, *pipeline.Result) {
	t.Helper()
	codec, err := pipeline.New(opts...)
	require.NoError(t, err)
	res, err := codec.Encode(testText, []byte(testKey))
	require.NoError(t, err)
	return codec, res
}

func TestSealOpen(t *testing.T) {
	codec, res := encodeTest(t, pipeline.WithLogger(testLogger()))

	for _, compression := range []uint8{
		operations.OP_NONE,
		operations.OP_GZIP,
		operations.OP_BZIP2,
		operations.OP_ZSTD,
		operations.OP_LZ4,
	} {
		t.Run(operations.GetName(compression), func(t *testing.T) {
			sealed, err := Seal(res, compression)
			require.NoError(t, err)
			assert.Equal(t, Magic, string(sealed[:4]))
			assert.Equal(t, compression, sealed[4])

			env, err := Parse(sealed)
			require.NoError(t, err)
			assert.Equal(t, CurrentVersion, env.Version)
			assert.Equal(t, compression, env.Compression)
			assert.Equal(t, res.CodeTable, env.CodeTable)
			assert.Equal(t, res.Padding, int(env.Padding))

			got, err := env.Open(codec, []byte(testKey))
			require.NoError(t, err)
			assert.Equal(t, testText, got)

			require.NoError(t, Verify(sealed, testLogger()))
		})
	}
}

func TestOtherTransports(t *testing.T) {
	codec, res := encodeTest(t, pipeline.WithTransport(operations.OP_BASE32))

	sealed, err := Seal(res, operations.OP_ZSTD)
	require.NoError(t, err)
	env, err := Parse(sealed)
	require.NoError(t, err)

	// The default codec follows the recorded chain.
	defaultCodec, err := pipeline.New()
	require.NoError(t, err)
	got, err := env.Open(defaultCodec, []byte(testKey))
	require.NoError(t, err)
	assert.Equal(t, testText, got)

	got, err = env.Open(codec, []byte(testKey))
	require.NoError(t, err)
	assert.Equal(t, testText, got)
}

func TestKeyNotStored(t *testing.T) {
	_, res := encodeTest(t)

	sealed, err := Seal(res, operations.OP_NONE)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(sealed, []byte(testKey)))

	env, err := Parse(sealed)
	require.NoError(t, err)
	assert.Empty(t, env.Result().Key)

	codec, err := pipeline.New()
	require.NoError(t, err)
	_, err = env.Open(codec, nil)
	assert.True(t, errors.Is(err, hxerr.ErrEmptyKey), "got %v", err)
}

func TestSealDeterministic(t *testing.T) {
	_, res := encodeTest(t)

	first, err := Seal(res, operations.OP_NONE)
	require.NoError(t, err)
	second, err := Seal(res, operations.OP_NONE)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSealErrors(t *testing.T) {
	_, res := encodeTest(t)

	_, err := Seal(res, operations.OP_BASE64)
	assert.Error(t, err, "transport is not a compression")

	_, err = Seal(res, 0x2F)
	assert.Error(t, err, "unregistered compression")

	bad := *res
	bad.Padding = 8
	_, err = Seal(&bad, operations.OP_NONE)
	assert.True(t, errors.Is(err, hxerr.ErrInvalidPadding), "got %v", err)
}

func TestParseInvalidMagic(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("HXC"),
		[]byte("HXC2\x00"),
		[]byte("PK\x03\x04\x00\x00"),
	} {
		_, err := Parse(data)
		assert.True(t, errors.Is(err, hxerr.ErrInvalidMagic), "%q: %v", data, err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	env := &Envelope{
		Version:   CurrentVersion + 1,
		CodeTable: huffman.CodeTable{'a': "0"},
	}
	var err error
	env.Digest, err = env.computeDigest()
	require.NoError(t, err)
	body, err := encMode.Marshal(env)
	require.NoError(t, err)

	data := append([]byte(Magic+"\x00"), body...)
	_, err = Parse(data)
	assert.True(t, errors.Is(err, hxerr.ErrUnsupportedVersion), "got %v", err)
}

func TestTamperedCiphertext(t *testing.T) {
	_, res := encodeTest(t)

	sealed, err := Seal(res, operations.OP_NONE)
	require.NoError(t, err)

	i := bytes.Index(sealed, []byte(res.Ciphertext))
	require.GreaterOrEqual(t, i, 0)
	if sealed[i] == 'A' {
		sealed[i] = 'B'
	} else {
		sealed[i] = 'A'
	}

	_, err = Parse(sealed)
	assert.True(t, errors.Is(err, hxerr.ErrDigestMismatch), "got %v", err)

	err = Verify(sealed, testLogger())
	assert.True(t, errors.Is(err, hxerr.ErrDigestMismatch), "got %v", err)
}

func TestCorruptCompressedBody(t *testing.T) {
	_, res := encodeTest(t)

	sealed, err := Seal(res, operations.OP_ZSTD)
	require.NoError(t, err)
	sealed = sealed[:headerSize+3]

	_, err = Parse(sealed)
	assert.Error(t, err)
	assert.Error(t, Verify(sealed, nil))
}

func TestDiagnose(t *testing.T) {
	_, res := encodeTest(t)

	sealed, err := Seal(res, operations.OP_LZ4)
	require.NoError(t, err)

	diag, err := Diagnose(sealed)
	require.NoError(t, err)
	assert.Contains(t, diag, res.Ciphertext)

	_, err = Diagnose([]byte("nope"))
	assert.True(t, errors.Is(err, hxerr.ErrInvalidMagic), "got %v", err)
}
