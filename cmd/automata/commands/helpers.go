package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	automaton "github.com/Hakley10/convert-and-minimize"
	"github.com/Hakley10/convert-and-minimize/internal/render"
	"github.com/Hakley10/convert-and-minimize/internal/store"
)

// openStore opens and migrates the configured database.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(store.Config{
		Path:         settings.Database.Path,
		MaxOpenConns: settings.Database.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	log.Debug().Str("path", settings.Database.Path).Msg("Opened store")
	return st, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// writeDiagram renders dfa to path. A .dot path, or a missing dot binary,
// writes the DOT source instead of an image.
func writeDiagram(ctx context.Context, path, name string, dfa automaton.DFA) (string, error) {
	if !filepath.IsAbs(path) && settings.Render.OutputDir != "" {
		path = filepath.Join(settings.Render.OutputDir, path)
	}
	src := render.DOT(name, dfa)

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	g := render.NewGraphviz()
	if ext == "dot" || !g.Available() {
		if ext != "dot" {
			path = strings.TrimSuffix(path, filepath.Ext(path)) + ".dot"
			log.Warn().Str("path", path).Msg("Graphviz not found, writing DOT source")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		return path, nil
	}

	format := ext
	if format == "" {
		format = settings.Render.Format
		path += "." + format
	}
	if err := g.RenderFile(ctx, src, path, format); err != nil {
		return "", err
	}
	return path, nil
}
