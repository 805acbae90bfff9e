// Package catalog implements the brand asset catalog: filename parsing,
// variant grouping, metadata merging, manifest assembly, and the query and
// resolution layers consumed by browsing clients.
package catalog

import (
	"encoding/json"
	"io"
	"time"
)

// AssetType is a category of assets within a brand.
type AssetType string

const (
	TypeLogos  AssetType = "logos"
	TypeIcons  AssetType = "icons"
	TypeImages AssetType = "images"
)

// CanonicalTypes is the fixed emission order for asset type groups within a
// brand. Empty groups are omitted from the manifest entirely.
var CanonicalTypes = []AssetType{TypeLogos, TypeIcons, TypeImages}

// Known file formats, in the alphabetical order they appear in Asset.Formats.
const (
	FormatAVIF = "avif"
	FormatJPG  = "jpg"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatWebP = "webp"
)

// KnownFormats is the set of recognized file extensions. Files with any other
// extension are ignored by the grouping engine.
var KnownFormats = map[string]bool{
	FormatAVIF: true,
	FormatJPG:  true,
	FormatPNG:  true,
	FormatSVG:  true,
	FormatWebP: true,
}

// Manifest is the root catalog document. It is regenerated wholesale on every
// pipeline run as a pure function of the generated file tree plus metadata.
type Manifest struct {
	Generated time.Time         `json:"generated"`
	Version   string            `json:"version"`
	BaseURLs  map[string]string `json:"baseUrls,omitempty"`
	// Brands are ordered by discovery on disk, not alphabetically.
	Brands []Brand `json:"brands"`
}

// Brand is a top-level namespace grouping related assets.
type Brand struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	DisplayName string           `json:"displayName"`
	Description string           `json:"description,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Aliases     []string         `json:"aliases,omitempty"`
	AssetTypes  []AssetTypeGroup `json:"assetTypes"`
}

// AssetTypeGroup holds every asset of one type within a brand. A group is
// only present when it contains at least one asset.
type AssetTypeGroup struct {
	Type   AssetType `json:"type"`
	Assets []Asset   `json:"assets"`
}

// Asset is one logical graphic, independent of how many size/format files
// realize it. ID is unique within its (brand, type) pair.
type Asset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Description string    `json:"description,omitempty"`
	Usage       string    `json:"usage,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Aliases     []string  `json:"aliases,omitempty"`
	SortKey     *int      `json:"sortKey,omitempty"`
	Type        AssetType `json:"type"`
	// BasePath is the root-relative prefix shared by all of the asset's
	// files, without size or format suffix.
	BasePath string `json:"basePath"`
	// Sizes holds the pixel widths actually generated, ascending and
	// unique. Empty for vector-only assets.
	Sizes []int `json:"sizes"`
	// Formats holds the format tokens present, sorted alphabetically.
	Formats []string `json:"formats"`
	// Files contains exactly one entry per generated (format, size)
	// combination.
	Files []AssetFile `json:"files"`
}

// AssetFile is one concrete generated file for a logical asset.
type AssetFile struct {
	File   string `json:"file"`
	Format string `json:"format"`
	// Size is the pixel width, or nil meaning original/vector with no
	// resize applied.
	Size *int `json:"size"`
	// Path is root-relative with forward slashes and no leading slash:
	// {version}/brands/{brandId}/{assetType}/{file}.
	Path string `json:"path"`
}

// HasFormat reports whether the asset carries at least one file of the given
// format.
func (a *Asset) HasFormat(format string) bool {
	for _, f := range a.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Display returns the effective display name of the brand.
func (b *Brand) Display() string {
	if b.DisplayName != "" {
		return b.DisplayName
	}
	return b.Name
}

// Display returns the effective display name of the asset.
func (a *Asset) Display() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Encode writes the manifest as indented JSON with a trailing newline. Field
// order is fixed by the struct definitions, so encoding the same manifest
// twice yields byte-identical output.
func (m *Manifest) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(m)
}

// DecodeManifest reads a manifest document from r.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
