package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_readsNonBlankLines(t *testing.T) {
	r := NewDirectReader(strings.NewReader("john sleeps\nmary runs\n"))

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "john sleeps", line)

	line, err = r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "mary runs", line)

	_, err = r.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func Test_DirectReader_skipsBlankLinesByDefault(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\n\n  \njohn sleeps\n"))

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "john sleeps", line)
}

func Test_DirectReader_AllowBlank_returnsEmptyLineAsIs(t *testing.T) {
	r := NewDirectReader(strings.NewReader("\njohn sleeps\n"))
	r.AllowBlank(true)

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "", line)
}

func Test_DirectReader_trimsSurroundingWhitespace(t *testing.T) {
	r := NewDirectReader(strings.NewReader("  john sleeps  \n"))

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "john sleeps", line)
}

func Test_DirectReader_Close_isNoop(t *testing.T) {
	r := NewDirectReader(strings.NewReader(""))
	assert.NoError(t, r.Close())
}

func Test_DirectReader_lastLineWithoutTrailingNewline(t *testing.T) {
	r := NewDirectReader(strings.NewReader("john sleeps"))

	line, err := r.ReadLine()
	assert.NoError(t, err)
	assert.Equal(t, "john sleeps", line)
}
