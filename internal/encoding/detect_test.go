package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"furnipay/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Ukrainian characters should pass through unchanged.
	input := "Дата;Сума;Платник\n01.03.2024;12500.00;Марушак\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1251(t *testing.T) {
	// Windows-1251 encoded "Дата;Сума\n".
	// In Windows-1251: Д = 0xC4, а = 0xE0, т = 0xF2, С = 0xD1, у = 0xF3, м = 0xEC
	cp1251Bytes := []byte{
		0xC4, 0xE0, 0xF2, 0xE0, ';',
		0xD1, 0xF3, 0xEC, 0xE0, '\n',
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(cp1251Bytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Дата;Сума\n", string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Дата;Сума\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Дата;Сума\n", string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	// UTF-16 LE with BOM for "Дата".
	input := []byte{
		0xFF, 0xFE, // BOM
		0x14, 0x04, // Д
		0x30, 0x04, // а
		0x42, 0x04, // т
		0x30, 0x04, // а
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Дата", string(got))
}
