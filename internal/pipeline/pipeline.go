// Package pipeline turns a tree of source images into the generated asset
// set and its manifest: bounded-parallel conversion per brand, then
// single-threaded manifest assembly over the settled output tree.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/config"
	"github.com/brandkit/brandkit/pkg/logger"
)

// sourcePatterns matches the recognized source image extensions.
var sourcePatterns = []string{"*.svg", "*.png", "*.jpg", "*.jpeg"}

// ManifestFile is the name of the manifest document inside the output root.
const ManifestFile = "manifest.json"

// Pipeline owns one generation run.
type Pipeline struct {
	cfg         *config.Config
	src         *Walker
	out         *Walker
	version     string
	concurrency int
	dryRun      bool
	warnings    *catalog.Warnings
}

// Options tune a pipeline beyond the loaded configuration.
type Options struct {
	// Version overrides the configured version tag when non-empty.
	Version string
	// Concurrency overrides the configured limit when positive.
	Concurrency int
	DryRun      bool
}

// New builds a pipeline over the given source and output trees.
func New(cfg *config.Config, src, out *Walker, opts Options) *Pipeline {
	version := opts.Version
	if version == "" {
		version = cfg.Version
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Pipeline{
		cfg:         cfg,
		src:         src,
		out:         out,
		version:     version,
		concurrency: concurrency,
		dryRun:      opts.DryRun,
		warnings:    &catalog.Warnings{},
	}
}

// Warnings exposes the run's warning accumulator.
func (p *Pipeline) Warnings() *catalog.Warnings { return p.warnings }

// Version returns the effective version tag for this run.
func (p *Pipeline) Version() string { return p.version }

// Run executes the full pipeline: convert every brand's sources, then
// assemble and publish the manifest. Conversion and assembly are strictly
// sequenced; the assembler only ever reads a fully settled tree.
func (p *Pipeline) Run(ctx context.Context) (*catalog.Manifest, error) {
	brands, err := p.brandIDs()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	total := 0
	for _, brandID := range brands {
		items := p.planBrand(brandID)
		total += len(items)
		// One batch per brand, awaited fully before the next starts.
		if err := p.runBatch(ctx, items); err != nil {
			return nil, fmt.Errorf("conversion batch for brand %s: %w", brandID, err)
		}
	}
	logger.Info("Conversion finished",
		logger.Int("brands", len(brands)),
		logger.Int("items", total),
		logger.String("elapsed", time.Since(start).Round(time.Millisecond).String()))

	manifest, err := p.Assemble(time.Now())
	if err != nil {
		return nil, err
	}
	if p.dryRun {
		return manifest, nil
	}
	if err := p.WriteManifest(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

// brandIDs returns the brands to process: the configured set when present,
// otherwise every directory under the source root, in discovery order.
func (p *Pipeline) brandIDs() ([]string, error) {
	dirs, err := p.src.ListDirs(".")
	if err != nil {
		return nil, fmt.Errorf("list source brands: %w", err)
	}
	if len(p.cfg.Brands) == 0 {
		return dirs, nil
	}
	onDisk := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		onDisk[d] = true
	}
	var brands []string
	for _, d := range dirs {
		if _, configured := p.cfg.Brands[d]; configured {
			brands = append(brands, d)
		}
	}
	for id := range p.cfg.Brands {
		if !onDisk[id] {
			p.warnings.Addf(catalog.WarnSource, "configured brand %s has no source directory, skipping", id)
		}
	}
	return brands, nil
}

// planBrand expands every asset type of one brand into work items.
func (p *Pipeline) planBrand(brandID string) []WorkItem {
	var items []WorkItem
	for _, assetType := range catalog.CanonicalTypes {
		dir := fmt.Sprintf("%s/%s", brandID, assetType)
		if !p.src.Exists(dir) {
			continue
		}
		sources, err := p.src.ListMatching(dir, sourcePatterns)
		if err != nil {
			p.warnings.Addf(catalog.WarnSource, "brand %s: list %s sources: %v", brandID, assetType, err)
			continue
		}
		settings := p.cfg.TypeSettings(brandID, string(assetType))
		items = append(items, p.planType(brandID, string(assetType), sources, settings)...)
	}
	return items
}

// Assemble synthesizes the manifest from the current output tree. It is also
// used standalone by `brandkit manifest` to re-index without converting.
func (p *Pipeline) Assemble(now time.Time) (*catalog.Manifest, error) {
	assembler := catalog.NewAssembler(p.out, NewMetadataLoader(p.src), catalog.AssemblerConfig{
		Version:  p.version,
		BaseURLs: p.cfg.BaseURLs,
		Policy:   catalog.NewSizePolicy(p.cfg.KnownWidths()),
	}, p.warnings)
	return assembler.Assemble(now)
}

// WriteManifest publishes the manifest atomically: encode to a temp file in
// the output root, then rename over the final name. A failed run never
// leaves a partial manifest behind.
func (p *Pipeline) WriteManifest(m *catalog.Manifest) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	tmp := ManifestFile + ".tmp"
	if err := p.out.WriteFile(tmp, buf.Bytes()); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := p.out.Rename(tmp, ManifestFile); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}
	logger.Info("Manifest written", logger.String("file", ManifestFile), logger.Int("brands", len(m.Brands)))
	return nil
}
