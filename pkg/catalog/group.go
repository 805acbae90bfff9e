package catalog

import (
	"fmt"
	"sort"
)

// GroupConfig scopes one grouping pass to a single (brand, assetType)
// directory.
type GroupConfig struct {
	Version string
	BrandID string
	Type    AssetType
	Policy  SizePolicy
}

type assetBuilder struct {
	id      string
	formats map[string]bool
	sizes   map[int]bool
	// files keyed by (format, size) so duplicates collapse; the last file
	// seen in directory-listing order wins.
	files map[string]AssetFile
}

// GroupFiles folds a flat list of filenames from one (brand, assetType)
// directory into asset skeletons. Grouping is order-independent: any
// permutation of the same file set yields an equal result, because formats
// and sizes accumulate as sets and the materialized slices are sorted.
// Returned assets are sorted by id so repeated runs over unchanged input
// produce identical manifests.
func GroupFiles(files []string, cfg GroupConfig, warnings *Warnings) []Asset {
	builders := make(map[string]*assetBuilder)
	order := make([]string, 0)

	for _, name := range files {
		parsed, err := ParseFilename(name, cfg.Policy)
		if err != nil {
			if warnings != nil {
				warnings.Addf(WarnIntegrity, "brand %s/%s: %v, skipping", cfg.BrandID, cfg.Type, err)
			}
			continue
		}

		b, ok := builders[parsed.AssetID]
		if !ok {
			b = &assetBuilder{
				id:      parsed.AssetID,
				formats: make(map[string]bool),
				sizes:   make(map[int]bool),
				files:   make(map[string]AssetFile),
			}
			builders[parsed.AssetID] = b
			order = append(order, parsed.AssetID)
		}

		key := variantKey(parsed.Format, parsed.Size)
		if _, dup := b.files[key]; dup && warnings != nil {
			warnings.Addf(WarnIntegrity, "brand %s/%s: duplicate variant %s for asset %q, keeping last",
				cfg.BrandID, cfg.Type, key, parsed.AssetID)
		}
		b.formats[parsed.Format] = true
		if parsed.Size != nil {
			b.sizes[*parsed.Size] = true
		}
		b.files[key] = AssetFile{
			File:   name,
			Format: parsed.Format,
			Size:   parsed.Size,
			Path:   fmt.Sprintf("%s/brands/%s/%s/%s", cfg.Version, cfg.BrandID, cfg.Type, name),
		}
	}

	sort.Strings(order)
	assets := make([]Asset, 0, len(order))
	for _, id := range order {
		assets = append(assets, builders[id].materialize(cfg))
	}
	return assets
}

func (b *assetBuilder) materialize(cfg GroupConfig) Asset {
	sizes := make([]int, 0, len(b.sizes))
	for s := range b.sizes {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)

	formats := make([]string, 0, len(b.formats))
	for f := range b.formats {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	files := make([]AssetFile, 0, len(b.files))
	for _, f := range b.files {
		files = append(files, f)
	}
	// The file list is semantically unordered; sort it anyway so manifests
	// are byte-for-byte reproducible.
	sort.Slice(files, func(i, j int) bool {
		if files[i].Format != files[j].Format {
			return files[i].Format < files[j].Format
		}
		return sizeRank(files[i].Size) < sizeRank(files[j].Size)
	})

	name := TitleFromID(b.id)
	return Asset{
		ID:          b.id,
		Name:        name,
		DisplayName: name,
		Type:        cfg.Type,
		BasePath:    fmt.Sprintf("%s/brands/%s/%s/%s", cfg.Version, cfg.BrandID, cfg.Type, b.id),
		Sizes:       sizes,
		Formats:     formats,
		Files:       files,
	}
}

func variantKey(format string, size *int) string {
	if size == nil {
		return format
	}
	return fmt.Sprintf("%s-%d", format, *size)
}

// sizeRank orders nil (original/vector) before any concrete width.
func sizeRank(size *int) int {
	if size == nil {
		return -1
	}
	return *size
}
