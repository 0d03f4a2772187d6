package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrGraphvizUnavailable is returned when the dot binary cannot be found.
var ErrGraphvizUnavailable = errors.New("graphviz dot binary not found")

// Graphviz renders DOT sources to image files with the dot binary.
type Graphviz struct {
	path string
}

// NewGraphviz looks up dot on PATH. The result is usable even when dot is
// missing; check Available before rendering.
func NewGraphviz() *Graphviz {
	path, err := exec.LookPath("dot")
	if err != nil {
		return &Graphviz{}
	}
	return &Graphviz{path: path}
}

// Available reports whether the dot binary was found.
func (g *Graphviz) Available() bool {
	return g != nil && g.path != ""
}

// RenderFile writes dotSrc rendered in format (png, svg, pdf, ...) to
// outPath, creating the parent directory if needed.
func (g *Graphviz) RenderFile(ctx context.Context, dotSrc, outPath, format string) error {
	if !g.Available() {
		return ErrGraphvizUnavailable
	}
	if format == "" {
		format = "png"
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, g.path, "-T"+format, "-o", outPath)
	cmd.Stdin = strings.NewReader(dotSrc)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
