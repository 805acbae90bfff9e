package catalog

// BrandMeta is the optional per-brand metadata document. All fields are
// partial overrides: absent means "no data", which is distinct from an empty
// string or slice and never defaulted away.
type BrandMeta struct {
	Brand *BrandOverride `json:"brand,omitempty" yaml:"brand" toml:"brand"`
	// Assets is keyed by asset type, then by asset id.
	Assets map[string]map[string]AssetOverride `json:"assets,omitempty" yaml:"assets" toml:"assets"`
}

// BrandOverride carries brand-level metadata overrides.
type BrandOverride struct {
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName" toml:"displayName"`
	Description string   `json:"description,omitempty" yaml:"description" toml:"description"`
	Tags        []string `json:"tags,omitempty" yaml:"tags" toml:"tags"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases" toml:"aliases"`
}

// AssetOverride carries asset-level metadata overrides.
type AssetOverride struct {
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName" toml:"displayName"`
	Description string   `json:"description,omitempty" yaml:"description" toml:"description"`
	Usage       string   `json:"usage,omitempty" yaml:"usage" toml:"usage"`
	Tags        []string `json:"tags,omitempty" yaml:"tags" toml:"tags"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases" toml:"aliases"`
	SortKey     *int     `json:"sortKey,omitempty" yaml:"sortKey" toml:"sortKey"`
}

// Lookup returns the override for (assetType, assetID), or nil when the
// document carries none.
func (m *BrandMeta) Lookup(assetType AssetType, assetID string) *AssetOverride {
	if m == nil || m.Assets == nil {
		return nil
	}
	byID, ok := m.Assets[string(assetType)]
	if !ok {
		return nil
	}
	o, ok := byID[assetID]
	if !ok {
		return nil
	}
	return &o
}

// MergeAsset overlays an optional metadata override onto a grouped asset
// skeleton. The merge is pure: metadata wins field-by-field when present and
// non-empty, the filename-derived default stands otherwise. Name is always
// filename-derived and never overridden; DisplayName falls back to Name.
func MergeAsset(base Asset, o *AssetOverride) Asset {
	base.DisplayName = base.Name
	if o == nil {
		return base
	}
	if o.DisplayName != "" {
		base.DisplayName = o.DisplayName
	}
	if o.Description != "" {
		base.Description = o.Description
	}
	if o.Usage != "" {
		base.Usage = o.Usage
	}
	if len(o.Tags) > 0 {
		base.Tags = o.Tags
	}
	if len(o.Aliases) > 0 {
		base.Aliases = o.Aliases
	}
	if o.SortKey != nil {
		key := *o.SortKey
		base.SortKey = &key
	}
	return base
}

// MergeBrand overlays brand-level metadata onto a brand skeleton, with the
// same policy as MergeAsset.
func MergeBrand(base Brand, o *BrandOverride) Brand {
	base.DisplayName = base.Name
	if o == nil {
		return base
	}
	if o.DisplayName != "" {
		base.DisplayName = o.DisplayName
	}
	if o.Description != "" {
		base.Description = o.Description
	}
	if len(o.Tags) > 0 {
		base.Tags = o.Tags
	}
	if len(o.Aliases) > 0 {
		base.Aliases = o.Aliases
	}
	return base
}
