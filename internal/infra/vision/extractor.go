package vision

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Canned questions, keyed by file extension. This extractor is a
// stand-in for a real vision/OCR service; swapping one in only requires
// honoring the same never-fails contract.
const (
	cannedAlgebraQuestion = "Solve for x: 2x + 5 = 15"
	cannedCircleQuestion  = "Find the area and circumference of a circle with radius 7 cm"
	cannedGenericQuestion = "Explain the difference between speed and velocity"

	extractionFailureText = "I couldn't read the question from your photo. A teacher will take a look and get back to you."
)

// Extractor converts a photographed question into text.
type Extractor struct {
	debugDir string
	log      *logrus.Logger
}

func NewExtractor(debugDir string, log *logrus.Logger) *Extractor {
	return &Extractor{debugDir: debugDir, log: log}
}

// ExtractText returns the question text for an image. It never fails:
// when the image can't be read it returns a placeholder that tells the
// student a teacher will review the photo.
func (e *Extractor) ExtractText(ctx context.Context, imagePath string) string {
	if _, err := os.Stat(imagePath); err != nil {
		e.log.Errorf("Text extraction could not read image %s: %v", imagePath, err)
		return extractionFailureText
	}

	if err := e.keepDebugCopy(imagePath); err != nil {
		e.log.Warnf("Could not keep debug copy of %s: %v", imagePath, err)
	}

	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".jpg", ".jpeg":
		return cannedAlgebraQuestion
	case ".png":
		return cannedCircleQuestion
	default:
		return cannedGenericQuestion
	}
}

func (e *Extractor) keepDebugCopy(imagePath string) error {
	if err := os.MkdirAll(e.debugDir, 0o755); err != nil {
		return fmt.Errorf("create debug dir: %w", err)
	}

	src, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("open source image: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("extract_%d%s", time.Now().UnixNano(), filepath.Ext(imagePath))
	dst, err := os.Create(filepath.Join(e.debugDir, name))
	if err != nil {
		return fmt.Errorf("create debug copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	return nil
}
