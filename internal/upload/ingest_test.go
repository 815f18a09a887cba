package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/userhub/api/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, bytes.Repeat([]byte{0}, 1024)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0}, 64)...)
	gifBytes  = append([]byte("GIF89a"), bytes.Repeat([]byte{0}, 64)...)
	pdfBytes  = []byte("%PDF-1.4\n%some pdf content\n")
)

// fileHeader builds a *multipart.FileHeader the same way the handler
// receives one, by round-tripping through an HTTP request.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/user/uploadImage", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, fh, err := req.FormFile("image")
	require.NoError(t, err)
	return fh
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	in := NewIngestor(dir, 5*1024*1024)

	path, err := in.Save(fileHeader(t, "avatar.png", pngBytes), "image")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(path), "image-"))
	require.True(t, strings.HasSuffix(path, ".png"))

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, pngBytes, stored)
}

func TestSaveAllowsJPEGAndGIF(t *testing.T) {
	in := NewIngestor(t.TempDir(), 5*1024*1024)

	_, err := in.Save(fileHeader(t, "a.jpg", jpegBytes), "image")
	require.NoError(t, err)

	_, err = in.Save(fileHeader(t, "b.gif", gifBytes), "image")
	require.NoError(t, err)
}

func TestSaveRejectsPDFRegardlessOfSize(t *testing.T) {
	dir := t.TempDir()
	in := NewIngestor(dir, 5*1024*1024)

	_, err := in.Save(fileHeader(t, "doc.pdf", pdfBytes), "image")
	require.ErrorIs(t, err, ErrBadType)

	// nothing persisted
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSaveRejectsOversizedJPEG(t *testing.T) {
	in := NewIngestor(t.TempDir(), 5*1024*1024)

	big := append([]byte{0xff, 0xd8, 0xff, 0xe0}, bytes.Repeat([]byte{0}, 6*1024*1024)...)
	_, err := in.Save(fileHeader(t, "big.jpg", big), "image")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestSaveSniffsContentNotExtension(t *testing.T) {
	in := NewIngestor(t.TempDir(), 5*1024*1024)

	// a PDF wearing a .png extension is still a PDF
	_, err := in.Save(fileHeader(t, "sneaky.png", pdfBytes), "image")
	require.ErrorIs(t, err, ErrBadType)
}
