package pipeline

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// WorkItem is one conversion: a single source file producing a single output
// file. Items never share output paths, so workers need no coordination
// beyond the concurrency limit.
type WorkItem struct {
	BrandID    string
	Type       string
	SourceFile string // path relative to the source root
	AssetID    string
	Format     string // target format token
	Width      int    // 0 means original/vector, no resize
	Height     int
	OutputFile string // path relative to the output root
}

// planType expands one (brand, assetType) source directory into work items
// according to the effective type settings.
func (p *Pipeline) planType(brandID, assetType string, sources []string, settings config.TypeConfig) []WorkItem {
	var items []WorkItem
	outDir := fmt.Sprintf("%s/brands/%s/%s", p.version, brandID, assetType)

	for _, name := range sources {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		assetID := strings.TrimSuffix(name, path.Ext(name))
		src := path.Join(brandID, assetType, name)

		if ext == "svg" {
			// Vector sources pass through minified; raster variants
			// of an SVG require a rasterizer seam we don't ship.
			items = append(items, WorkItem{
				BrandID:    brandID,
				Type:       assetType,
				SourceFile: src,
				AssetID:    assetID,
				Format:     "svg",
				OutputFile: fmt.Sprintf("%s/%s.svg", outDir, assetID),
			})
			continue
		}

		widths := targetWidths(settings)
		for _, w := range widths {
			for _, format := range settings.Formats {
				items = append(items, WorkItem{
					BrandID:    brandID,
					Type:       assetType,
					SourceFile: src,
					AssetID:    assetID,
					Format:     format,
					Width:      w.width,
					Height:     w.height,
					OutputFile: fmt.Sprintf("%s/%s-%d.%s", outDir, assetID, w.width, format),
				})
			}
		}
	}
	return items
}

type target struct {
	width  int
	height int
}

// targetWidths expands the configured sizes, appending 2x retina widths when
// requested. Duplicate widths collapse.
func targetWidths(settings config.TypeConfig) []target {
	seen := make(map[int]bool)
	var out []target
	add := func(w, h int) {
		if w > 0 && !seen[w] {
			seen[w] = true
			out = append(out, target{width: w, height: h})
		}
	}
	for _, s := range settings.Sizes {
		add(s.Width, s.Height)
	}
	if settings.GenerateRetina {
		for _, s := range settings.Sizes {
			add(s.Width*2, s.Height*2)
		}
	}
	return out
}

// runBatch executes one batch of work items with bounded parallelism and
// waits for all of them before returning. Individual conversion failures are
// downgraded to warnings; only context cancellation aborts the batch.
func (p *Pipeline) runBatch(ctx context.Context, items []WorkItem) error {
	if len(items) == 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.convert(item); err != nil {
				p.warnings.Addf(catalog.WarnConversion, "convert %s -> %s: %v", item.SourceFile, item.OutputFile, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// convert executes one work item end to end: read, transform, write.
func (p *Pipeline) convert(item WorkItem) error {
	data, err := p.src.ReadFile(item.SourceFile)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	var out []byte
	switch item.Format {
	case "svg":
		out, err = MinifySVG(data, p.cfg.SVG)
		if err != nil {
			return err
		}
	default:
		encoder, ok := LookupEncoder(item.Format)
		if !ok {
			return fmt.Errorf("no %s encoder registered", item.Format)
		}
		img, _, err := DecodeImage(data)
		if err != nil {
			return err
		}
		scaled := Scale(img, item.Width, item.Height)
		out, err = encoder.Encode(scaled, p.cfg.Quality(item.Format))
		if err != nil {
			return fmt.Errorf("encode %s: %w", item.Format, err)
		}
	}

	if p.dryRun {
		logger.Debug("Would write output", logger.String("file", item.OutputFile), logger.Int("bytes", len(out)))
		return nil
	}
	if err := p.out.WriteFile(item.OutputFile, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
