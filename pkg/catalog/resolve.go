package catalog

import "errors"

// ErrNoVariant is returned when no file satisfies a resolution request.
// Requesting a format the asset does not carry is never satisfied by a file
// of some other format.
var ErrNoVariant = errors.New("no matching variant")

// FormatPreference is the fallback order applied when no format is
// requested: most compressed and most modern first, ending with the most
// universally supported raster format.
var FormatPreference = []string{FormatAVIF, FormatWebP, FormatSVG, FormatPNG, FormatJPG}

// ResolveRequest describes the desired variant. Nil Size means "no size
// preference"; an explicit size of 0 is not meaningful.
type ResolveRequest struct {
	Format string
	Size   *int
}

// Resolve selects the concrete file for a logical asset. Exact
// (format, size) match wins. With a format but no exact match, the
// original/vector file of that format is preferred, then the smallest
// available size. With no format, the first entry of FormatPreference
// present on the asset is chosen and size resolves by the same fallback.
func Resolve(a *Asset, req ResolveRequest) (*AssetFile, error) {
	if req.Format != "" {
		if !a.HasFormat(req.Format) {
			return nil, ErrNoVariant
		}
		return resolveWithin(a, req.Format, req.Size)
	}
	for _, format := range FormatPreference {
		if a.HasFormat(format) {
			return resolveWithin(a, format, req.Size)
		}
	}
	return nil, ErrNoVariant
}

// resolveWithin picks a file of the given format: exact size, then
// original (nil size), then smallest size.
func resolveWithin(a *Asset, format string, size *int) (*AssetFile, error) {
	var original *AssetFile
	var smallest *AssetFile
	for i := range a.Files {
		f := &a.Files[i]
		if f.Format != format {
			continue
		}
		if size != nil && f.Size != nil && *f.Size == *size {
			return f, nil
		}
		if size == nil && f.Size == nil {
			return f, nil
		}
		if f.Size == nil {
			original = f
			continue
		}
		if smallest == nil || *f.Size < *smallest.Size {
			smallest = f
		}
	}
	if original != nil {
		return original, nil
	}
	if smallest != nil {
		return smallest, nil
	}
	return nil, ErrNoVariant
}
