// Package storage receives uploaded images and writes them to disk under
// generated, collision-resistant names.
package storage

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrUnsupportedImage is returned when the uploaded file is not a PNG or a
// JPEG. The content is sniffed; the client-declared type is not trusted.
var ErrUnsupportedImage = errors.New("file must be a PNG or JPEG image")

// Subdirectories for user and post images, relative to the receiver root.
const (
	UserImages = "images/user"
	PostImages = "images/posts"
)

type Receiver struct {
	root string
}

func NewReceiver(root string) *Receiver {
	return &Receiver{root: root}
}

// Save sniffs the image type, writes the content into subdir and returns
// the generated filename.
func (rc *Receiver) Save(originalName string, content io.Reader, subdir string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading upload: %w", err)
	}
	head = head[:n]

	switch http.DetectContentType(head) {
	case "image/png", "image/jpeg":
	default:
		return "", ErrUnsupportedImage
	}

	dir := filepath.Join(rc.root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	name := generateFilename(originalName)

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(head); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	return name, nil
}

// generateFilename builds "<unix-millis>_<random 10000-19999><ext>",
// keeping the original extension.
func generateFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d_%d%s", time.Now().UnixMilli(), 10000+rand.IntN(10000), ext)
}
