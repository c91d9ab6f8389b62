package pipeline

import (
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
	"github.com/provide-io/huffcrypt/pkg/huffman"
	"github.com/provide-io/huffcrypt/pkg/operations"
)

func testLogger() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "pipeline_test",
		Level: hclog.Trace,
	})
}

func randomText(rng *rand.Rand, alphabet []rune, n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(runes)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz ABC.,!?0123456789éñ日本🙂\n\t")

	texts := []string{
		"",
		"a",
		"aaaa",
		"hello world",
		"The quick brown fox jumps over the lazy dog",
		strings.Repeat("abc", 333),
	}
	for i := 0; i < 25; i++ {
		texts = append(texts, randomText(rng, alphabet, rng.Intn(2000)))
	}
	keys := [][]byte{[]byte("k"), []byte("secret"), {0x00}, {0xff, 0x00, 0x7f}}

	for _, text := range texts {
		for _, key := range keys {
			res, err := Encode(text, key)
			require.NoError(t, err)
			got, err := Decode(res.Ciphertext, key, res.CodeTable, res.Padding)
			require.NoError(t, err)
			require.Equal(t, text, got)
		}
	}
}

func TestRoundTripAllTransports(t *testing.T) {
	text := "transport encodings only change the outer text form"
	key := []byte("xyz")

	for _, id := range []uint8{operations.OP_BASE64, operations.OP_BASE64_URL, operations.OP_BASE32, operations.OP_HEX} {
		t.Run(operations.GetName(id), func(t *testing.T) {
			codec, err := New(WithTransport(id), WithLogger(testLogger()))
			require.NoError(t, err)
			assert.Equal(t, id, codec.Transport())

			res, err := codec.Encode(text, key)
			require.NoError(t, err)
			assert.Equal(t, []uint8{operations.OP_XOR, id}, operations.UnpackOperations(res.Operations))

			got, err := codec.Decode(res.Ciphertext, key, res.CodeTable, res.Padding)
			require.NoError(t, err)
			assert.Equal(t, text, got)

			// A default codec still decodes via the recorded chain.
			got, err = defaultCodec.DecodeResult(res, nil)
			require.NoError(t, err)
			assert.Equal(t, text, got)
		})
	}
}

func TestNewRejectsNonTransport(t *testing.T) {
	for _, id := range []uint8{operations.OP_XOR, operations.OP_ZSTD, operations.OP_NONE, 0x6F} {
		_, err := New(WithTransport(id))
		assert.Error(t, err, "transport 0x%02x", id)
	}
}

func TestEmptyText(t *testing.T) {
	res, err := Encode("", []byte("key"))
	require.NoError(t, err)
	assert.Empty(t, res.CodeTable)
	assert.Equal(t, 0, res.Padding)
	assert.Equal(t, "", res.Ciphertext)

	got, err := Decode("", []byte("key"), huffman.CodeTable{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSingleSymbol(t *testing.T) {
	res, err := Encode("aaaa", []byte{0x00})
	require.NoError(t, err)
	assert.Equal(t, huffman.CodeTable{'a': "0"}, res.CodeTable)
	assert.Equal(t, 4, res.Padding)
	// one zero byte, XOR with 0x00, base64
	assert.Equal(t, "AA==", res.Ciphertext)

	got, err := Decode(res.Ciphertext, []byte{0x00}, res.CodeTable, res.Padding)
	require.NoError(t, err)
	assert.Equal(t, "aaaa", got)
}

func TestDeterministic(t *testing.T) {
	text := "determinism matters for round-trip tests: ties everywhere abcdefgh"
	key := []byte("key")

	first, err := Encode(text, key)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Encode(text, key)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestErrors(t *testing.T) {
	res, err := Encode("hello world", []byte("key"))
	require.NoError(t, err)

	t.Run("empty key on encode", func(t *testing.T) {
		_, err := Encode("hello", nil)
		assert.True(t, errors.Is(err, hxerr.ErrEmptyKey), "got %v", err)
	})

	t.Run("empty key on decode", func(t *testing.T) {
		_, err := Decode(res.Ciphertext, []byte{}, res.CodeTable, res.Padding)
		assert.True(t, errors.Is(err, hxerr.ErrEmptyKey), "got %v", err)
	})

	t.Run("invalid padding", func(t *testing.T) {
		for _, padding := range []int{-1, 8} {
			_, err := Decode(res.Ciphertext, []byte("key"), res.CodeTable, padding)
			assert.True(t, errors.Is(err, hxerr.ErrInvalidPadding), "padding %d: %v", padding, err)
		}
	})

	t.Run("invalid padding beats malformed transport", func(t *testing.T) {
		_, err := Decode("%%%", []byte("key"), res.CodeTable, 9)
		assert.True(t, errors.Is(err, hxerr.ErrInvalidPadding), "got %v", err)
	})

	t.Run("malformed transport", func(t *testing.T) {
		_, err := Decode("not base64!", []byte("key"), res.CodeTable, res.Padding)
		assert.True(t, errors.Is(err, hxerr.ErrMalformedTransport), "got %v", err)
	})

	t.Run("invalid utf8", func(t *testing.T) {
		_, err := Encode("bad \xff text", []byte("key"))
		assert.True(t, errors.Is(err, hxerr.ErrInvalidText), "got %v", err)
	})
}

// A wrong key either fails to decode or yields different text; the cipher
// has no integrity check, so both outcomes are accepted.
func TestWrongKey(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz ")
	failures := 0

	for i := 0; i < 50; i++ {
		text := randomText(rng, alphabet, 200)
		res, err := Encode(text, []byte("right key"))
		require.NoError(t, err)

		got, err := Decode(res.Ciphertext, []byte("wrong key"), res.CodeTable, res.Padding)
		if err != nil {
			assert.True(t, errors.Is(err, hxerr.ErrUnknownSymbol), "got %v", err)
			failures++
			continue
		}
		assert.NotEqual(t, text, got)
	}

	assert.Greater(t, failures, 0, "wrong keys should usually fail to decode")
}

func TestResultJSON(t *testing.T) {
	res, err := Encode("abracadabra", []byte("k"))
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, name := range []string{"encoded_data", "key", "huffman_codes", "padding"} {
		assert.Contains(t, fields, name)
	}

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	got, err := defaultCodec.DecodeResult(&decoded, nil)
	require.NoError(t, err)
	assert.Equal(t, "abracadabra", got)
}

func TestDecodeResultRejectsChain(t *testing.T) {
	res, err := Encode("abc", []byte("k"))
	require.NoError(t, err)

	res.Operations, err = operations.PackOperations([]uint8{operations.OP_BASE64})
	require.NoError(t, err)
	_, err = defaultCodec.DecodeResult(res, nil)
	assert.Error(t, err)
}

func TestConcurrentUse(t *testing.T) {
	codec, err := New(WithTransport(operations.OP_HEX))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := strings.Repeat(string(rune('a'+i)), i+1) + "shared codec"
			res, err := codec.Encode(text, []byte{byte(i + 1)})
			if err != nil {
				errs <- err
				return
			}
			got, err := codec.Decode(res.Ciphertext, []byte{byte(i + 1)}, res.CodeTable, res.Padding)
			if err != nil {
				errs <- err
				return
			}
			if got != text {
				errs <- errors.New("mismatch for " + text)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRequestResponse(t *testing.T) {
	var req EncodeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"text":"hello huffman","key":"k3y"}`), &req))

	res, err := defaultCodec.HandleEncode(&req)
	require.NoError(t, err)
	assert.Equal(t, "k3y", res.Key)

	resp, err := defaultCodec.HandleDecode(res, nil)
	require.NoError(t, err)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"decoded_text":"hello huffman"}`, string(data))
}
