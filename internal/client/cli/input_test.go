package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := getSimpleText(reader, "Value", &out)

	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Value: ", out.String())
}

func TestGetSimpleText_PartialLineBeforeEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no newline"))

	got, err := getSimpleText(reader, "Value", &out)

	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := getSimpleText(reader, "Value", &out)

	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptDefault_EmptyInputKeepsDefault(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("\n"))

	got, err := promptDefault(reader, "Email", "ann@gesan.it", &out)

	require.NoError(t, err)
	assert.Equal(t, "ann@gesan.it", got)
	assert.Contains(t, out.String(), "[ann@gesan.it]")
}

func TestPromptDefault_InputOverridesDefault(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("bob@gesan.it\n"))

	got, err := promptDefault(reader, "Email", "ann@gesan.it", &out)

	require.NoError(t, err)
	assert.Equal(t, "bob@gesan.it", got)
}

func TestPromptDefault_NoDefaultPlainLabel(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("x\n"))

	_, err := promptDefault(reader, "Email", "", &out)

	require.NoError(t, err)
	assert.Equal(t, "Email: ", out.String())
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("secret123"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	pw, err := getPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, []byte("secret123"), pw)
	assert.Contains(t, out.String(), "Password: ")
}
