package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes the generated files to outputDir, creating it when
// needed. Files whose content is already up to date are left alone; the
// names of the files actually written are returned.
func WriteFiles(files []GeneratedFile, outputDir string) ([]string, error) {
	var written []string

	for _, file := range files {
		current, err := os.ReadFile(filepath.Join(outputDir, file.Filename))
		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := writeFile(outputDir, file.Filename, file.Content); err != nil {
			return written, err
		}

		written = append(written, file.Filename)
	}

	return written, nil
}

func writeFile(dir, name string, content []byte) error {
	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, name), content, filePerm)
	if err != nil {
		return fmt.Errorf("writing file %s: %w", name, err)
	}

	return nil
}

// debugName is the sidecar name for a source that failed to format. It
// keeps the .go extension for editors without colliding with real output.
func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
