package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

// testAsset carries formats {svg, png, webp} and sizes {32, 64}: an svg
// original, pngs at both sizes, and one webp at 64.
func testAsset() *Asset {
	return &Asset{
		ID:      "logo",
		Name:    "Logo",
		Type:    TypeLogos,
		Sizes:   []int{32, 64},
		Formats: []string{"png", "svg", "webp"},
		Files: []AssetFile{
			{File: "logo.svg", Format: "svg", Size: nil, Path: "v1/brands/acme/logos/logo.svg"},
			{File: "logo-32.png", Format: "png", Size: intp(32), Path: "v1/brands/acme/logos/logo-32.png"},
			{File: "logo-64.png", Format: "png", Size: intp(64), Path: "v1/brands/acme/logos/logo-64.png"},
			{File: "logo-64.webp", Format: "webp", Size: intp(64), Path: "v1/brands/acme/logos/logo-64.webp"},
		},
	}
}

func TestResolveExactMatch(t *testing.T) {
	f, err := Resolve(testAsset(), ResolveRequest{Format: "png", Size: intp(64)})
	require.NoError(t, err)
	assert.Equal(t, "logo-64.png", f.File)
}

func TestResolveFormatFallsBackToSmallest(t *testing.T) {
	// No original png exists, so the smallest size wins.
	f, err := Resolve(testAsset(), ResolveRequest{Format: "png"})
	require.NoError(t, err)
	assert.Equal(t, "logo-32.png", f.File)
}

func TestResolveFormatPrefersOriginal(t *testing.T) {
	f, err := Resolve(testAsset(), ResolveRequest{Format: "svg"})
	require.NoError(t, err)
	assert.Equal(t, "logo.svg", f.File)
}

func TestResolveMissingFormat(t *testing.T) {
	_, err := Resolve(testAsset(), ResolveRequest{Format: "avif"})
	assert.True(t, errors.Is(err, ErrNoVariant), "absent format must be a miss, never a wrong file")
}

func TestResolveNoFormatUsesPreferenceOrder(t *testing.T) {
	// avif is absent, so webp (next in preference) wins; no original webp
	// exists, so its smallest size is chosen.
	f, err := Resolve(testAsset(), ResolveRequest{})
	require.NoError(t, err)
	assert.Equal(t, "logo-64.webp", f.File)
}

func TestResolveSizeMismatchFallsBack(t *testing.T) {
	// Requested size not generated for webp; smallest available wins.
	f, err := Resolve(testAsset(), ResolveRequest{Format: "webp", Size: intp(128)})
	require.NoError(t, err)
	assert.Equal(t, "logo-64.webp", f.File)
}

func TestResolveEmptyAsset(t *testing.T) {
	_, err := Resolve(&Asset{ID: "empty"}, ResolveRequest{})
	assert.True(t, errors.Is(err, ErrNoVariant))
}
