package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/Faneva385/svg-initiation/internal/document"
	"github.com/Faneva385/svg-initiation/internal/typeid"
)

// Result describes one exported chart.
type Result struct {
	Name string
	Path string
}

// Batch renders every chart of m into dir as <name>.svg at full progress,
// using up to opts.Workers goroutines. Unnamed charts get a generated
// name. Results are in manifest order.
func Batch(ctx context.Context, m *document.Manifest, dir string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	charts := m.Resolved()
	results := make([]Result, len(charts))
	for i, c := range charts {
		name := c.Name
		if name == "" {
			name = typeid.NewChartID()
		}
		results[i] = Result{
			Name: name,
			Path: filepath.Join(dir, sanitizeName(name)+".svg"),
		}
	}

	bar := newBar(opts.Progress, len(charts), "charts")
	defer bar.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, c := range charts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := c.Parse()
			if err != nil {
				return fmt.Errorf("chart %s: %w", results[i].Name, err)
			}
			chartOpts := opts
			chartOpts.ID = "piechart-" + sanitizeName(results[i].Name)
			if c.Size > 0 {
				chartOpts.Size = c.Size
			}
			if err := RenderFile(results[i].Path, a, 1, chartOpts); err != nil {
				return fmt.Errorf("chart %s: %w", results[i].Name, err)
			}
			bar.Add(1)
			opts.Logger.Debug("chart exported", "name", results[i].Name, "path", results[i].Path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	bar.Finish()

	opts.Logger.Info("batch exported", "dir", dir, "charts", len(results))
	return results, nil
}

func newBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
