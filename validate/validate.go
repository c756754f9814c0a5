// Package validate checks the map configurations in a config directory. For
// each file it checks:
//   - JSON or YAML structure and known fields
//   - Dimensions, tile size, colors and camera limits
//   - The tile catalog the map refers to, against the catalog schema
//   - That an engine can be built for the map
//
// It backs the "pipeworks validate" command.
package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/config"
	"github.com/wricardo/mcp-training/pipeworks/game/engine"
)

// Result captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type Result struct {
	File   string
	Valid  bool
	Errors []string
}

const infoPrefix = "✓"

func (r *Result) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, infoPrefix+" "+fmt.Sprintf(format, args...))
}

// File loads and validates one map configuration. A relative catalog path is
// resolved against the file's directory.
func File(path string) Result {
	result := Result{
		File:   filepath.Base(path),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := config.Parse(data, filepath.Ext(path))
	if err != nil {
		result.fail("Invalid config: %v", err)
		return result
	}
	result.info("Map: %q %dx%d, tile size %g", cfg.Name, cfg.Width, cfg.Height, cfg.TileSize)

	cat := catalog.Default()
	if cfg.Catalog == "" {
		result.info("Catalog: built-in, %d tiles", cat.Len())
	} else {
		catPath := cfg.Catalog
		if !filepath.IsAbs(catPath) {
			catPath = filepath.Join(filepath.Dir(path), catPath)
		}
		cat, err = catalog.Load(catPath)
		if err != nil {
			result.fail("Catalog: %v", err)
			return result
		}
		result.info("Catalog: %s, %d tiles", cfg.Catalog, cat.Len())
	}

	base := cat.Brushes(catalog.LayerBase)
	overlay := cat.Brushes(catalog.LayerOverlay)
	if len(base) == 0 {
		result.fail("Catalog has no placeable base tiles")
	}
	if len(overlay) == 0 {
		result.fail("Catalog has no placeable overlay tiles")
	}
	if cfg.PipeColors.Normal == cfg.PipeColors.Engineering {
		result.info("Pipe colors: normal and engineering views share %v", cfg.PipeColors.Normal)
	}

	if _, err := engine.NewEngine(cfg, cat); err != nil {
		result.fail("Engine: %v", err)
		return result
	}
	if result.Valid {
		result.info("Engine: map builds with %d base and %d overlay brushes", len(base), len(overlay))
	}
	return result
}

// Dir validates every map configuration file directly inside dir, in name
// order. Subdirectories, such as catalog folders, are not descended into.
func Dir(dir string) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".json", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		results = append(results, File(filepath.Join(dir, name)))
	}
	return results, nil
}

// Report prints a concise report and returns whether every result is valid.
func Report(w io.Writer, results []Result) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Errors {
				fmt.Fprintln(w, "  "+info)
			}
			continue
		}

		fmt.Fprintln(w, "❌ INVALID")
		allValid = false
		for _, err := range result.Errors {
			if !strings.HasPrefix(err, infoPrefix) {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No configurations found")
	case allValid:
		fmt.Fprintln(w, "✅ All configurations are valid!")
	default:
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}
