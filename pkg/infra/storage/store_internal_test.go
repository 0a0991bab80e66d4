package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
)

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return c.closeErr
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("unexpected EOF in archive")
}

func TestWriteEntry(t *testing.T) {
	t.Run("copies and closes", func(t *testing.T) {
		dst := &closeRecorder{}
		gt.NoError(t, writeEntry(dst, strings.NewReader("bits")))
		gt.String(t, dst.String()).Equal("bits")
		gt.Number(t, dst.closed).Equal(1)
	})

	t.Run("close failure is returned", func(t *testing.T) {
		dst := &closeRecorder{closeErr: errors.New("no space left on device")}
		err := writeEntry(dst, strings.NewReader("bits"))
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("failed to close file")
		gt.Number(t, dst.closed).Equal(1)
	})

	t.Run("copy failure still closes", func(t *testing.T) {
		dst := &closeRecorder{}
		err := writeEntry(dst, failingReader{})
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("failed to copy file content")
		gt.Number(t, dst.closed).Equal(1)
	})
}
