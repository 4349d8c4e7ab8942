package pdfio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Extractor pulls raw text out of PDF files by shelling out to pdftotext.
// The rest of the system only ever sees the extracted string.
type Extractor struct {
	binary string
}

// NewExtractor resolves the pdftotext binary. An empty binary falls back to
// whatever is on PATH.
func NewExtractor(binary string) (*Extractor, error) {
	if binary == "" {
		binary = "pdftotext"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("pdftotext not found: %w", err)
	}
	return &Extractor{binary: path}, nil
}

// ExtractText converts the PDF at path to plain text on stdout.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, e.binary, "-layout", path, "-")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return string(out), nil
}
