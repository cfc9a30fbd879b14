// Package pdfsource extracts the first-page image from a PDF dispatch so it
// can be handed to the OCR enhancement loop, per spec.md §6 ("PDF: opaque
// bytes passed to OCR; first page only in the covered path").
package pdfsource

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	_ "golang.org/x/image/tiff"
)

// ErrNoImageOnFirstPage is returned when pdfcpu finds no raster image on
// page one of the PDF.
var ErrNoImageOnFirstPage = fmt.Errorf("pdfsource: no image found on first page")

// ExtractFirstPageImage decodes the first-page raster image out of PDF
// bytes, adapting pdfcpu's file-based api.ExtractImagesFile (the teacher's
// internal/pdf/pdf.go technique) to the byte-slice-oriented pipeline: the
// bytes are spooled to a temp file because pdfcpu's extraction API only
// operates on paths.
func ExtractFirstPageImage(pdfBytes []byte) (image.Image, error) {
	if len(pdfBytes) == 0 {
		return nil, fmt.Errorf("pdfsource: empty input")
	}

	srcDir, err := os.MkdirTemp("", "pdfsource-src-*")
	if err != nil {
		return nil, fmt.Errorf("pdfsource: creating temp source dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(srcDir) }()

	srcPath := filepath.Join(srcDir, "dispatch.pdf")
	if err := os.WriteFile(srcPath, pdfBytes, 0o600); err != nil {
		return nil, fmt.Errorf("pdfsource: writing temp PDF: %w", err)
	}

	outDir, err := os.MkdirTemp("", "pdfsource-out-*")
	if err != nil {
		return nil, fmt.Errorf("pdfsource: creating temp output dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(outDir) }()

	if err := api.ExtractImagesFile(srcPath, outDir, []string{"1"}, nil); err != nil {
		return nil, fmt.Errorf("pdfsource: extracting images: %w", err)
	}

	path, err := firstPageImagePath(outDir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfsource: reading extracted image: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pdfsource: decoding extracted image: %w", err)
	}
	return img, nil
}

// firstPageImagePath finds the lowest-indexed page_1_image_*.<ext> file
// pdfcpu wrote, matching the teacher's page_<num>_image_<idx>.<ext> naming
// convention.
func firstPageImagePath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("pdfsource: reading output dir: %w", err)
	}

	var best string
	var bestIdx = -1
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "page_1_image_") {
			continue
		}
		idx := imageIndex(name)
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			best = filepath.Join(dir, name)
		}
	}
	if best == "" {
		return "", ErrNoImageOnFirstPage
	}
	return best, nil
}

func imageIndex(filename string) int {
	parts := strings.Split(filename, "_")
	if len(parts) < 4 {
		return 0
	}
	ext := filepath.Ext(parts[3])
	n, err := strconv.Atoi(strings.TrimSuffix(parts[3], ext))
	if err != nil {
		return 0
	}
	return n
}
