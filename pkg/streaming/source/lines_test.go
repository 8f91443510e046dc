package source

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLines(t *testing.T) {
	path := writeFile(t, "app.log", "INFO start\nERROR disk full\nINFO retry\nERROR disk full\n")

	errorsOnly, err := Lines(path).
		Filter(func(line string) bool { return strings.HasPrefix(line, "ERROR") }).
		Distinct().
		ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ERROR disk full"}, errorsOnly)
}

func TestLinesOpensPerEvaluation(t *testing.T) {
	path := writeFile(t, "data.txt", "a\nb\n")
	s := Lines(path)

	require.NoError(t, os.WriteFile(path, []byte("x\ny\nz"), 0o600))
	got, err := s.ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, got)
}

func TestLinesMissingFile(t *testing.T) {
	_, err := Lines(filepath.Join(t.TempDir(), "missing.txt")).Count(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, sferrors.ErrIO)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "IO_ERROR", sferrors.Code(err))

	var ioErr *sferrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "Open", ioErr.Operation)
}

func TestFromReader(t *testing.T) {
	got, err := FromReader(strings.NewReader("one\ntwo\r\nthree")).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestFromReaderLineTooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLineSize+1)
	_, err := FromReader(strings.NewReader("ok\n" + long)).ToSlice(context.Background())
	assert.ErrorIs(t, err, sferrors.ErrIO)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
