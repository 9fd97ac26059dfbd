// Package submission holds the student's input for a single request: an
// optional question text and an optional photo of a problem.
package submission

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmpty is returned when a submission has neither text nor an image.
var ErrEmpty = errors.New("submission has no question text and no image")

// ErrUnsupportedImage is returned for files whose extension is not accepted.
var ErrUnsupportedImage = errors.New("unsupported image type (use .jpg, .jpeg or .png)")

// mimeTypes maps the accepted file extensions to their MIME types.
var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// AcceptedExtensions lists the image extensions offered by file pickers.
var AcceptedExtensions = []string{".jpg", ".jpeg", ".png"}

// Image is a student-supplied photo.
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Submission is one (text?, image?) pair forming a single request.
type Submission struct {
	Text  string
	Image *Image
}

// New builds a Submission. It does not validate.
func New(text string, img *Image) Submission {
	return Submission{Text: text, Image: img}
}

// HasText reports whether the question text is non-blank.
func (s Submission) HasText() bool {
	return strings.TrimSpace(s.Text) != ""
}

// HasImage reports whether an image with content is attached.
func (s Submission) HasImage() bool {
	return s.Image != nil && len(s.Image.Data) > 0
}

// Validate returns ErrEmpty unless the submission has text or an image.
func (s Submission) Validate() error {
	if !s.HasText() && !s.HasImage() {
		return ErrEmpty
	}
	return nil
}

// MIMETypeFor returns the MIME type for name based on its extension only.
func MIMETypeFor(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	mime, ok := mimeTypes[ext]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, ErrUnsupportedImage)
	}
	return mime, nil
}

// LoadImage reads an image file from disk.
func LoadImage(path string) (*Image, error) {
	mime, err := MIMETypeFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	return &Image{
		Name:     filepath.Base(path),
		MIMEType: mime,
		Data:     data,
	}, nil
}

// ImageFromBytes wraps uploaded bytes. An empty upload yields a nil image so
// that a blank file field counts as "no image".
func ImageFromBytes(name string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mime, err := MIMETypeFor(name)
	if err != nil {
		return nil, err
	}

	return &Image{
		Name:     name,
		MIMEType: mime,
		Data:     data,
	}, nil
}
