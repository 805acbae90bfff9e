package catalog

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParsedName is the result of parsing one generated filename.
type ParsedName struct {
	AssetID string
	// Size is nil when the filename carries no size suffix.
	Size   *int
	Format string
}

// SizePolicy controls how a trailing "-<digits>" run in a base name is
// interpreted. An asset id that itself ends in digits (icon-2024) is
// otherwise indistinguishable from a sized variant, so when KnownSizes is
// non-empty only digit runs matching a known generated width are treated as
// sizes; anything else stays part of the asset id. An empty policy treats
// every trailing digit run as a size.
type SizePolicy struct {
	KnownSizes map[int]bool
}

// AnySize is the permissive policy: every trailing digit run is a size.
var AnySize = SizePolicy{}

// NewSizePolicy builds a policy from a list of known pixel widths.
func NewSizePolicy(widths []int) SizePolicy {
	if len(widths) == 0 {
		return AnySize
	}
	known := make(map[int]bool, len(widths))
	for _, w := range widths {
		known[w] = true
	}
	return SizePolicy{KnownSizes: known}
}

func (p SizePolicy) accepts(width int) bool {
	if len(p.KnownSizes) == 0 {
		return true
	}
	return p.KnownSizes[width]
}

// ParseFilename parses a bare generated filename into its asset id, optional
// size, and format. Filenames with an unrecognized extension yield an error;
// callers are expected to warn and skip, not abort.
func ParseFilename(name string, policy SizePolicy) (ParsedName, error) {
	ext := path.Ext(name)
	if ext == "" {
		return ParsedName{}, fmt.Errorf("filename %q has no extension", name)
	}
	format := strings.ToLower(strings.TrimPrefix(ext, "."))
	if format == "jpeg" {
		format = FormatJPG
	}
	if !KnownFormats[format] {
		return ParsedName{}, fmt.Errorf("filename %q has unrecognized format %q", name, format)
	}

	base := strings.TrimSuffix(name, ext)
	if base == "" {
		return ParsedName{}, fmt.Errorf("filename %q has empty base name", name)
	}

	parsed := ParsedName{AssetID: base, Format: format}
	if idx := strings.LastIndex(base, "-"); idx > 0 && idx < len(base)-1 && isDigits(base[idx+1:]) {
		if width, err := strconv.Atoi(base[idx+1:]); err == nil && width > 0 && policy.accepts(width) {
			parsed.AssetID = base[:idx]
			parsed.Size = &width
		}
	}
	return parsed, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

var titleCaser = cases.Title(language.Und)

// TitleFromID derives a human-readable name from a kebab-case token:
// hyphens become spaces and each word is title-cased.
func TitleFromID(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "-", " "))
}
