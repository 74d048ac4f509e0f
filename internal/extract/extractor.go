// Package extract reduces uploaded résumé files to plain text.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file types that cannot be reduced to text.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// SupportedExtensions lists every extension ExtractBytes understands.
var SupportedExtensions = []string{".pdf", ".docx", ".txt", ".md"}

// Extractor extracts plain text from résumé files, restricted to an allow-list of extensions.
type Extractor struct {
	allowed map[string]struct{}
}

// NewExtractor returns an Extractor accepting the given extensions (case-insensitive, leading dot).
// With no extensions every supported format is accepted.
func NewExtractor(allowed ...string) *Extractor {
	if len(allowed) == 0 {
		allowed = SupportedExtensions
	}
	e := &Extractor{allowed: make(map[string]struct{}, len(allowed))}
	for _, ext := range allowed {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.allowed[ext] = struct{}{}
	}
	return e
}

// Allowed reports whether filename has an allowed extension.
func (e *Extractor) Allowed(filename string) bool {
	_, ok := e.allowed[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extract reads the file at path and returns its text content.
func (e *Extractor) Extract(path string) (string, error) {
	if !e.Allowed(path) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, filepath.Ext(path))
}

// ExtractFile extracts text from uploaded content, using filename to pick the format.
func (e *Extractor) ExtractFile(filename string, content []byte) (string, error) {
	if !e.Allowed(filename) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return e.ExtractBytes(content, filepath.Ext(filename))
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf"). The allow-list is not consulted.
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ".pdf":
		return extractPDF(content)
	case ".docx":
		return extractDOCX(content)
	case ".txt", ".md":
		return extractPlain(content)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
