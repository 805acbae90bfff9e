package catalog

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testManifest builds a small two-brand catalog. Brand order is deliberately
// not alphabetical: discovery order must survive indexing.
func testManifest() *Manifest {
	two := 2
	one := 1
	return &Manifest{
		Version: "v1",
		Brands: []Brand{
			{
				ID: "zenith", Name: "Zenith", DisplayName: "Zenith",
				AssetTypes: []AssetTypeGroup{
					{Type: TypeLogos, Assets: []Asset{
						{
							ID: "wordmark", Name: "Wordmark", DisplayName: "Wordmark", Type: TypeLogos,
							SortKey: &two,
							Formats: []string{"png", "svg"}, Sizes: []int{64},
							Files: []AssetFile{
								{File: "wordmark.svg", Format: "svg", Path: "v1/brands/zenith/logos/wordmark.svg"},
								{File: "wordmark-64.png", Format: "png", Size: intp(64), Path: "v1/brands/zenith/logos/wordmark-64.png"},
							},
						},
						{
							ID: "emblem", Name: "Emblem", DisplayName: "Emblem", Type: TypeLogos,
							SortKey: &one,
							Formats: []string{"svg"},
							Files: []AssetFile{
								{File: "emblem.svg", Format: "svg", Path: "v1/brands/zenith/logos/emblem.svg"},
							},
						},
						{
							ID: "banner", Name: "Banner", DisplayName: "Banner", Type: TypeLogos,
							Formats: []string{"webp"}, Sizes: []int{128},
							Files: []AssetFile{
								{File: "banner-128.webp", Format: "webp", Size: intp(128), Path: "v1/brands/zenith/logos/banner-128.webp"},
							},
						},
					}},
				},
			},
			{
				ID: "acme", Name: "Acme", DisplayName: "Acme",
				Tags: []string{"demo"},
				AssetTypes: []AssetTypeGroup{
					{Type: TypeLogos, Assets: []Asset{*testAsset()}},
					{Type: TypeIcons, Assets: []Asset{
						{
							ID: "gear", Name: "Gear", DisplayName: "Gear", Type: TypeIcons,
							Formats: []string{"png"}, Sizes: []int{32},
							Files: []AssetFile{
								{File: "gear-32.png", Format: "png", Size: intp(32), Path: "v1/brands/acme/icons/gear-32.png"},
							},
						},
					}},
				},
			},
		},
	}
}

func TestIndexFlattensAllAssets(t *testing.T) {
	idx := NewIndex(testManifest())
	assert.Equal(t, 5, idx.Len())
}

func TestSearchEmptyQueryReturnsAllSorted(t *testing.T) {
	idx := NewIndex(testManifest())
	results := idx.Search(Query{})
	require.Len(t, results, 5)

	// Acme sorts before Zenith by brand display name; within Zenith logos
	// sortKey ascending (emblem 1, wordmark 2) then missing keys last.
	ids := resultIDs(results)
	assert.Equal(t, []string{"gear", "logo", "emblem", "wordmark", "banner"}, ids)
}

func TestSearchShortQueryMatchesEverything(t *testing.T) {
	idx := NewIndex(testManifest())
	// Below the two-character minimum, the text predicate is skipped.
	assert.Len(t, idx.Search(Query{Text: "z"}), 5)
}

func TestSearchFuzzyTypo(t *testing.T) {
	idx := NewIndex(testManifest())
	// One-letter typo of the brand name still matches via edit distance.
	results := idx.Search(Query{Text: "Aome"})
	require.NotEmpty(t, results)
	for _, e := range results {
		assert.Equal(t, "acme", e.BrandID)
	}
}

func TestSearchTypeFilterExcludes(t *testing.T) {
	idx := NewIndex(testManifest())
	results := idx.Search(Query{Text: "logo", Types: []AssetType{TypeIcons}})
	assert.Empty(t, results)
}

func TestSearchFormatFilter(t *testing.T) {
	idx := NewIndex(testManifest())
	results := idx.Search(Query{Formats: []string{"webp"}})
	assert.Equal(t, []string{"logo", "banner"}, resultIDs(results))
}

func TestSearchSizeRange(t *testing.T) {
	idx := NewIndex(testManifest())

	// An asset passes when ANY of its sizes falls within the range.
	results := idx.Search(Query{MinSize: 33, MaxSize: 64})
	assert.Equal(t, []string{"logo", "wordmark"}, resultIDs(results))

	// Vector-only assets have no sizes and fail any active size filter.
	results = idx.Search(Query{MinSize: 1})
	for _, e := range results {
		assert.NotEmpty(t, e.Sizes)
	}
}

func TestSearchConjunctiveFilters(t *testing.T) {
	idx := NewIndex(testManifest())
	results := idx.Search(Query{
		BrandIDs: []string{"acme"},
		Types:    []AssetType{TypeLogos},
		Formats:  []string{"png"},
	})
	assert.Equal(t, []string{"logo"}, resultIDs(results))
}

// Sorting must be a deterministic total order: repeated searches yield
// identical output.
func TestSearchSortDeterminism(t *testing.T) {
	idx := NewIndex(testManifest())
	first := idx.Search(Query{})
	for i := 0; i < 5; i++ {
		again := idx.Search(Query{})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("search order not deterministic:\nfirst %v\nagain %v", resultIDs(first), resultIDs(again))
		}
	}
}

func TestMatchText(t *testing.T) {
	assert.Equal(t, 1.0, matchText("acme", "Acme Corporation"), "substring match scores 1")
	assert.Greater(t, matchText("aome", "acme"), 0.0, "one typo within tolerance")
	assert.Equal(t, 0.0, matchText("zebra", "acme"), "unrelated text scores 0")
	assert.Equal(t, 0.0, matchText("acme", ""), "empty field scores 0")
}

func resultIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
