package vision

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeImage(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("not-really-an-image"), 0o644))
	return path
}

func TestExtractTextPNG(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(filepath.Join(dir, "debug"), quietLogger())

	text := e.ExtractText(context.Background(), writeImage(t, dir, "q.png"))
	assert.Equal(t, cannedCircleQuestion, text)
}

func TestExtractTextJPEG(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(filepath.Join(dir, "debug"), quietLogger())

	assert.Equal(t, cannedAlgebraQuestion, e.ExtractText(context.Background(), writeImage(t, dir, "q.jpg")))
	assert.Equal(t, cannedAlgebraQuestion, e.ExtractText(context.Background(), writeImage(t, dir, "q2.JPEG")))
}

func TestExtractTextOtherExtension(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(filepath.Join(dir, "debug"), quietLogger())

	text := e.ExtractText(context.Background(), writeImage(t, dir, "q.webp"))
	assert.Equal(t, cannedGenericQuestion, text)
}

func TestExtractTextKeepsDebugCopy(t *testing.T) {
	dir := t.TempDir()
	debugDir := filepath.Join(dir, "debug")
	e := NewExtractor(debugDir, quietLogger())

	e.ExtractText(context.Background(), writeImage(t, dir, "q.png"))

	entries, err := os.ReadDir(debugDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExtractTextUnreadableImageNeverFails(t *testing.T) {
	dir := t.TempDir()
	e := NewExtractor(filepath.Join(dir, "debug"), quietLogger())

	text := e.ExtractText(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Equal(t, extractionFailureText, text)
}
