package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// FileLister abstracts the generated-output tree. Implementations list
// directory entries in their natural on-disk order; the assembler preserves
// that order for brand discovery.
type FileLister interface {
	// ListDirs returns the names of subdirectories of dir.
	ListDirs(dir string) ([]string, error)
	// ListFiles returns the bare filenames in dir.
	ListFiles(dir string) ([]string, error)
}

// MetadataSource supplies the optional per-brand metadata document. A nil
// document (with nil error) means the brand has no metadata.
type MetadataSource interface {
	BrandMeta(brandID string) (*BrandMeta, error)
}

// NoMetadata is a MetadataSource with no documents at all.
type NoMetadata struct{}

// BrandMeta implements MetadataSource.
func (NoMetadata) BrandMeta(string) (*BrandMeta, error) { return nil, nil }

// AssemblerConfig describes what the assembler scans.
type AssemblerConfig struct {
	Version  string
	BaseURLs map[string]string
	// Brands optionally restricts assembly to the listed brand ids. Empty
	// means every brand directory discovered under {version}/brands.
	Brands []string
	Policy SizePolicy
}

// Assembler walks the generated output tree and synthesizes the manifest:
// brands in discovery order, asset types in canonical order with empty
// groups omitted, assets sorted by id. It reads a fully settled tree and
// must never run concurrently with an in-progress generation pass.
type Assembler struct {
	fsys     FileLister
	meta     MetadataSource
	cfg      AssemblerConfig
	warnings *Warnings
}

// NewAssembler builds an assembler over the given output tree. meta may be
// nil when no metadata documents exist.
func NewAssembler(fsys FileLister, meta MetadataSource, cfg AssemblerConfig, warnings *Warnings) *Assembler {
	if meta == nil {
		meta = NoMetadata{}
	}
	return &Assembler{fsys: fsys, meta: meta, cfg: cfg, warnings: warnings}
}

// Assemble synthesizes the complete manifest with the given generation
// timestamp.
func (a *Assembler) Assemble(now time.Time) (*Manifest, error) {
	brandsDir := fmt.Sprintf("%s/brands", a.cfg.Version)
	brandIDs := a.cfg.Brands
	if len(brandIDs) == 0 {
		discovered, err := a.fsys.ListDirs(brandsDir)
		if err != nil {
			// No output tree yet (first run, dry run) means an empty
			// manifest, not a failure.
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("list brand directories under %s: %w", brandsDir, err)
			}
			discovered = nil
		}
		brandIDs = discovered
	}

	manifest := &Manifest{
		Generated: now.UTC(),
		Version:   a.cfg.Version,
		BaseURLs:  a.cfg.BaseURLs,
		Brands:    make([]Brand, 0, len(brandIDs)),
	}

	for _, brandID := range brandIDs {
		brand, ok := a.assembleBrand(brandsDir, brandID)
		if ok {
			manifest.Brands = append(manifest.Brands, brand)
		}
	}
	return manifest, nil
}

func (a *Assembler) assembleBrand(brandsDir, brandID string) (Brand, bool) {
	meta, err := a.meta.BrandMeta(brandID)
	if err != nil {
		// Malformed metadata never aborts the run; the brand falls back
		// to filename-derived defaults.
		a.warnings.Addf(WarnConfig, "brand %s: metadata unusable (%v), using filename-derived defaults", brandID, err)
		meta = nil
	}

	brand := Brand{ID: brandID, Name: TitleFromID(brandID)}
	var brandOverride *BrandOverride
	if meta != nil {
		brandOverride = meta.Brand
	}
	brand = MergeBrand(brand, brandOverride)

	seen := make(map[AssetType]map[string]bool)
	for _, assetType := range CanonicalTypes {
		dir := fmt.Sprintf("%s/%s/%s", brandsDir, brandID, assetType)
		files, err := a.fsys.ListFiles(dir)
		if err != nil {
			// An absent type directory is an empty category, not a
			// problem worth reporting.
			if !errors.Is(err, fs.ErrNotExist) {
				a.warnings.Addf(WarnSource, "brand %s: cannot read %s directory: %v", brandID, assetType, err)
			}
			continue
		}
		if len(files) == 0 {
			continue
		}

		assets := GroupFiles(files, GroupConfig{
			Version: a.cfg.Version,
			BrandID: brandID,
			Type:    assetType,
			Policy:  a.cfg.Policy,
		}, a.warnings)
		if len(assets) == 0 {
			continue
		}

		ids := make(map[string]bool, len(assets))
		for i := range assets {
			ids[assets[i].ID] = true
			assets[i] = MergeAsset(assets[i], meta.Lookup(assetType, assets[i].ID))
		}
		seen[assetType] = ids

		brand.AssetTypes = append(brand.AssetTypes, AssetTypeGroup{Type: assetType, Assets: assets})
	}

	a.checkMetadataKeys(brandID, meta, seen)
	if len(brand.AssetTypes) == 0 {
		return Brand{}, false
	}
	return brand, true
}

// checkMetadataKeys warns about metadata entries that do not correspond to
// any discovered asset; they are otherwise ignored.
func (a *Assembler) checkMetadataKeys(brandID string, meta *BrandMeta, seen map[AssetType]map[string]bool) {
	if meta == nil {
		return
	}
	for assetType, byID := range meta.Assets {
		ids := seen[AssetType(assetType)]
		for id := range byID {
			if !ids[id] {
				a.warnings.Addf(WarnConfig, "brand %s: metadata entry %s/%s matches no discovered asset", brandID, assetType, id)
			}
		}
	}
}
