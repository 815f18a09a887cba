package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/userhub/api/pkg/logger"
)

// ErrTooLarge is returned when the uploaded file exceeds the configured
// size limit.
var ErrTooLarge = errors.New("file exceeds the upload size limit")

// ErrBadType is returned when the uploaded file is not a JPEG, PNG or GIF.
var ErrBadType = errors.New("invalid file type, only JPEG, PNG and GIF files are allowed")

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Ingestor persists uploaded profile images to a local directory after
// enforcing the type and size policy. The MIME type is sniffed from the
// file content, not taken from the client-supplied header.
type Ingestor struct {
	dir      string
	maxBytes int64
}

func NewIngestor(dir string, maxBytes int64) *Ingestor {
	return &Ingestor{dir: dir, maxBytes: maxBytes}
}

// Save validates fh against the policy and writes its content under the
// ingest directory as <field>-<unix millis><ext>. It returns the stored
// path. Files already written are not removed when the caller later
// fails; orphans are possible and only logged.
func (in *Ingestor) Save(fh *multipart.FileHeader, field string) (string, error) {
	if fh.Size > in.maxBytes {
		return "", ErrTooLarge
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("detect file type: %w", err)
	}
	if !isAllowed(mtype) {
		return "", ErrBadType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind uploaded file: %w", err)
	}

	if err := os.MkdirAll(in.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s-%d%s", field, time.Now().UnixMilli(), ext)
	path := filepath.Join(in.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	logger.L().Debug("image stored",
		zap.String("path", path),
		zap.String("type", mtype.String()),
		zap.Int64("size", fh.Size),
	)
	return path, nil
}

func isAllowed(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}
