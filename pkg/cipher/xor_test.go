package cipher

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	hxerr "github.com/provide-io/huffcrypt/pkg/errors"
)

func TestXOREncodeKnown(t *testing.T) {
	got, err := XOREncode([]byte{0x00, 0xFF, 0x0F, 0xF0, 0xAA}, []byte{0x01, 0x02})
	if err != nil {
		t.Fatalf("XOREncode: %v", err)
	}
	want := []byte{0x01, 0xFD, 0x0E, 0xF2, 0xAB}
	if !bytes.Equal(got, want) {
		t.Errorf("XOREncode = %x, want %x", got, want)
	}
}

func TestXORSelfInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 100; i++ {
		data := make([]byte, rng.Intn(300))
		rng.Read(data)
		key := make([]byte, 1+rng.Intn(40))
		rng.Read(key)

		enc, err := XOREncode(data, key)
		if err != nil {
			t.Fatalf("XOREncode: %v", err)
		}
		if len(enc) != len(data) {
			t.Fatalf("length changed: %d -> %d", len(data), len(enc))
		}
		dec, err := XORDecode(enc, key)
		if err != nil {
			t.Fatalf("XORDecode: %v", err)
		}
		if !bytes.Equal(dec, data) {
			t.Fatalf("case %d: round trip mismatch", i)
		}
	}
}

func TestXOREmptyKey(t *testing.T) {
	for _, key := range [][]byte{nil, {}} {
		if _, err := XOREncode([]byte("data"), key); !errors.Is(err, hxerr.ErrEmptyKey) {
			t.Errorf("XOREncode with key %v = %v, want ErrEmptyKey", key, err)
		}
		if _, err := NewXORWriter(&bytes.Buffer{}, key); !errors.Is(err, hxerr.ErrEmptyKey) {
			t.Errorf("NewXORWriter with key %v = %v, want ErrEmptyKey", key, err)
		}
	}
}

func TestXORWriterMatchesXOREncode(t *testing.T) {
	data := []byte("chunked writes keep the key position across calls")
	key := []byte("secret")

	want, err := XOREncode(data, key)
	if err != nil {
		t.Fatalf("XOREncode: %v", err)
	}

	for _, chunk := range []int{1, 3, 5, 7, 64} {
		var buf bytes.Buffer
		w, err := NewXORWriter(&buf, key)
		if err != nil {
			t.Fatalf("NewXORWriter: %v", err)
		}
		for off := 0; off < len(data); off += chunk {
			end := off + chunk
			if end > len(data) {
				end = len(data)
			}
			if _, err := w.Write(data[off:end]); err != nil {
				t.Fatalf("Write: %v", err)
			}
		}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("chunk %d: got %x, want %x", chunk, buf.Bytes(), want)
		}
	}
}
