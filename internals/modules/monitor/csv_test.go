package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSVPlainUTF8(t *testing.T) {
	out, err := decodeCSV([]byte("url,name\nhttps://example.com,Example\n"))
	require.NoError(t, err)
	assert.Equal(t, "url,name\nhttps://example.com,Example\n", out)
}

func TestDecodeCSVStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("url\nhttps://example.com\n")...)
	out, err := decodeCSV(data)
	require.NoError(t, err)
	assert.Equal(t, "url\nhttps://example.com\n", out)
}

func TestDecodeCSVFallsBackToWindows1251(t *testing.T) {
	// "Пример" encoded in Windows-1251
	data := []byte("url,name\nhttps://example.com,")
	data = append(data, 0xCF, 0xF0, 0xE8, 0xEC, 0xE5, 0xF0)
	data = append(data, '\n')

	out, err := decodeCSV(data)
	require.NoError(t, err)
	assert.Contains(t, out, "Пример")
}
