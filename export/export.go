// Package export serializes a result path for download.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// FileName is the name of the exported artifact.
const FileName = "result.csv"

// MediaType is the content type of the exported artifact.
const MediaType = "text/csv"

// CSV returns path as comma-joined decimal integers with no trailing
// newline. An empty path yields empty content.
func CSV(path []int) []byte {
	var buf []byte
	for i, idx := range path {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(idx), 10)
	}
	return buf
}

// Write writes the CSV form of path to w.
func Write(w io.Writer, path []int) error {
	_, err := w.Write(CSV(path))
	return err
}

// WriteFile writes FileName into dir and returns its path.
func WriteFile(dir string, path []int) (string, error) {
	name := filepath.Join(dir, FileName)
	if err := os.WriteFile(name, CSV(path), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return name, nil
}

// ContentDisposition is the header value that makes browsers save the
// artifact as FileName.
func ContentDisposition() string {
	return `attachment; filename="` + FileName + `"`
}
