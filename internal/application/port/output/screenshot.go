package output

import "editor-verify/internal/domain/entity"

type ScreenshotWriter interface {
	Write(path string, shot *entity.Screenshot) (int64, error)
}
