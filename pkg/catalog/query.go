package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Entry is one asset flattened into the searchable index, carrying
// denormalized brand context alongside the asset itself.
type Entry struct {
	Asset
	BrandID      string   `json:"brandId"`
	BrandName    string   `json:"brandName"`
	BrandTags    []string `json:"brandTags,omitempty"`
	BrandAliases []string `json:"brandAliases,omitempty"`
}

// Query is a compound catalog query. All predicates are conjunctive. Zero
// values mean "no constraint": an empty Text skips relevance gating, empty
// sets skip their filter, and MinSize/MaxSize of 0 leave that bound open.
type Query struct {
	Text     string
	BrandIDs []string
	Types    []AssetType
	Formats  []string
	MinSize  int
	MaxSize  int
}

// Index is the searchable catalog built once from a loaded manifest. It is
// read-only after construction; reloading a manifest means building a new
// Index, never mutating this one.
type Index struct {
	entries  []Entry
	collator *collate.Collator
}

// NewIndex flattens every asset in the manifest into a searchable index.
func NewIndex(m *Manifest) *Index {
	idx := &Index{
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
	for _, brand := range m.Brands {
		for _, group := range brand.AssetTypes {
			for _, asset := range group.Assets {
				idx.entries = append(idx.entries, Entry{
					Asset:        asset,
					BrandID:      brand.ID,
					BrandName:    brand.Display(),
					BrandTags:    brand.Tags,
					BrandAliases: brand.Aliases,
				})
			}
		}
	}
	return idx
}

// Len returns the number of indexed assets.
func (idx *Index) Len() int { return len(idx.entries) }

// Search executes a compound query: fuzzy text relevance first (when the
// query text is long enough), then the conjunctive filters, then the total
// sort order. Results are deterministically ordered regardless of filters or
// insertion order.
func (idx *Index) Search(q Query) []Entry {
	results := make([]Entry, 0, len(idx.entries))
	for _, e := range idx.entries {
		if len(q.Text) >= MinQueryLength && idx.score(q.Text, &e) == 0 {
			continue
		}
		if !matchesFilters(&e, q) {
			continue
		}
		results = append(results, e)
	}
	idx.sortEntries(results)
	return results
}

// score computes the weighted relevance of query text against one entry.
// Weights are strictly decreasing from display name down to brand id, so a
// hit on a more prominent field always outranks the same hit further down.
func (idx *Index) score(text string, e *Entry) float64 {
	score := weightDisplayName * matchText(text, e.Display())
	score += weightName * matchText(text, e.Name)
	score += weightTags * matchList(text, e.Tags)
	score += weightAliases * matchList(text, e.Aliases)
	score += weightDescription * matchText(text, e.Description)
	score += weightUsage * matchText(text, e.Usage)
	score += weightBrandName * matchText(text, e.BrandName)
	score += weightBrandTags * matchList(text, e.BrandTags)
	score += weightBrandAliases * matchList(text, e.BrandAliases)
	score += weightType * matchText(text, string(e.Type))
	score += weightID * matchText(text, e.ID)
	score += weightBrandID * matchText(text, e.BrandID)
	return score
}

func matchesFilters(e *Entry, q Query) bool {
	if len(q.BrandIDs) > 0 && !containsString(q.BrandIDs, e.BrandID) {
		return false
	}
	if len(q.Types) > 0 && !containsType(q.Types, e.Type) {
		return false
	}
	if len(q.Formats) > 0 {
		any := false
		for _, f := range q.Formats {
			if e.HasFormat(f) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if q.MinSize > 0 || q.MaxSize > 0 {
		any := false
		for _, s := range e.Sizes {
			if (q.MinSize <= 0 || s >= q.MinSize) && (q.MaxSize <= 0 || s <= q.MaxSize) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// sortEntries applies the total order: brand display name (locale-aware),
// asset type, sortKey ascending with missing keys last, display name
// (locale-aware), then brand id and asset id as final tie-breaks so no two
// distinct entries ever compare equal.
func (idx *Index) sortEntries(entries []Entry) {
	c := idx.collator
	compare := func(a, b *Entry) int {
		if cmp := c.CompareString(a.BrandName, b.BrandName); cmp != 0 {
			return cmp
		}
		if a.Type != b.Type {
			if a.Type < b.Type {
				return -1
			}
			return 1
		}
		if cmp := compareSortKeys(a.SortKey, b.SortKey); cmp != 0 {
			return cmp
		}
		if cmp := c.CompareString(a.Display(), b.Display()); cmp != 0 {
			return cmp
		}
		if a.BrandID != b.BrandID {
			if a.BrandID < b.BrandID {
				return -1
			}
			return 1
		}
		if a.ID != b.ID {
			if a.ID < b.ID {
				return -1
			}
			return 1
		}
		return 0
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return compare(&entries[i], &entries[j]) < 0
	})
}

// compareSortKeys orders present keys ascending and treats a missing key as
// larger than any present value.
func compareSortKeys(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func containsType(haystack []AssetType, needle AssetType) bool {
	for _, t := range haystack {
		if t == needle {
			return true
		}
	}
	return false
}
