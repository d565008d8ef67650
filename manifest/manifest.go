package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Caian/h1st/history"
	"github.com/Caian/h1st/internal/ctxlog"
)

// ErrUnknownFormat is returned by Load for an unsupported file extension.
var ErrUnknownFormat = errors.New("manifest: unknown format")

// Step is one recorded command.
type Step struct {
	Name    string
	Command string
	Inputs  []string
	Outputs []string

	// Source locates the step in its manifest ("file:line") when known.
	Source string
}

// Load reads the manifest at path, picking the decoder from its extension.
func Load(path string) ([]Step, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(src, path)
	case ".yaml", ".yml":
		return ParseYAML(src, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Apply pushes steps into g in order and stops at the first failure, which
// is wrapped with the step's position and name. Steps applied before the
// failure stay in the graph.
func Apply(ctx context.Context, g *history.Graph, steps []Step) error {
	if g == nil {
		return history.NullArgument("g")
	}
	logger := ctxlog.FromContext(ctx)

	for i, s := range steps {
		n, err := g.Push(s.Inputs, s.Command, s.Outputs)
		if err != nil {
			if s.Source != "" {
				return fmt.Errorf("manifest: step %d %q (%s): %w", i, s.Name, s.Source, err)
			}
			return fmt.Errorf("manifest: step %d %q: %w", i, s.Name, err)
		}
		logger.Debug("Step applied", "index", i, "name", s.Name, "id", n.ID(), "live", g.Len())
	}
	return nil
}

func stepName(name string, index int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("step[%d]", index)
}
