package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgoodman/depot/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestNewUTF8Reader_PlainUTF8(t *testing.T) {
	got := decode(t, []byte("sku,quantity\nWID-001,5\n"))
	assert.Equal(t, "sku,quantity\nWID-001,5\n", got)
}

func TestNewUTF8Reader_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("sku,quantity")...)
	assert.Equal(t, "sku,quantity", decode(t, input))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// "sku" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 's', 0, 'k', 0, 'u', 0}
	assert.Equal(t, "sku", decode(t, input))
}

func TestNewUTF8Reader_UTF16BE(t *testing.T) {
	input := []byte{0xFE, 0xFF, 0, 's', 0, 'k', 0, 'u'}
	assert.Equal(t, "sku", decode(t, input))
}

func TestNewUTF8Reader_Windows1252(t *testing.T) {
	// "Möbel" with 0xF6 for ö, as Excel on a German workstation writes it.
	input := []byte{'M', 0xF6, 'b', 'e', 'l'}
	assert.Equal(t, "Möbel", decode(t, input))
}

func TestNewUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
