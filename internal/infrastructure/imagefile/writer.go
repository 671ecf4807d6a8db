package imagefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"editor-verify/internal/application/port/output"
	"editor-verify/internal/domain/entity"

	"github.com/disintegration/imaging"
)

var _ output.ScreenshotWriter = (*Writer)(nil)

var ErrEmptyScreenshot = errors.New("screenshot has no data")

var encode = imaging.Encode

// Writer persists screenshots; the encoding follows the file extension.
type Writer struct {
	// MaxWidth downscales wider images keeping the aspect ratio. Zero keeps the original size.
	MaxWidth int
}

func NewWriter(maxWidth int) *Writer {
	return &Writer{MaxWidth: maxWidth}
}

func (w *Writer) Write(path string, shot *entity.Screenshot) (int64, error) {
	if shot == nil || len(shot.Data) == 0 {
		return 0, ErrEmptyScreenshot
	}

	img, err := imaging.Decode(bytes.NewReader(shot.Data))
	if err != nil {
		return 0, fmt.Errorf("image decode failed: %w", err)
	}

	if w.MaxWidth > 0 && img.Bounds().Dx() > w.MaxWidth {
		img = imaging.Resize(img, w.MaxWidth, 0, imaging.Lanczos)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("save screenshot %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create screenshot dir: %w", err)
	}

	// Кодируем во временный файл рядом, чтобы сбой не затёр прошлый скриншот.
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, img, format); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("encode screenshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("flush screenshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return 0, fmt.Errorf("chmod screenshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("save screenshot %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat screenshot: %w", err)
	}
	return info.Size(), nil
}
