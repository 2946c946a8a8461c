package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot writes the last composited frame as plain text to dir and returns the file path
func (r *Renderer) Screenshot(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	name := fmt.Sprintf("vi-lander-%s.txt", time.Now().UTC().Format("20060102-150405.000"))
	path := filepath.Join(dir, name)

	content := strings.Join(r.buf.Lines(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}
