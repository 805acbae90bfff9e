package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func testManifest() *catalog.Manifest {
	return &catalog.Manifest{
		Generated: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Version:   "v1",
		Brands: []catalog.Brand{
			{
				ID: "acme", Name: "Acme", DisplayName: "ACME Corporation",
				AssetTypes: []catalog.AssetTypeGroup{
					{
						Type: catalog.TypeLogos,
						Assets: []catalog.Asset{
							{
								ID: "logo", Name: "Logo", DisplayName: "Primary Logo",
								Type:     catalog.TypeLogos,
								BasePath: "v1/brands/acme/logos/logo",
								Sizes:    []int{32, 64},
								Formats:  []string{"png", "svg"},
								Files: []catalog.AssetFile{
									{File: "logo.svg", Format: "svg", Path: "v1/brands/acme/logos/logo.svg"},
									{File: "logo-32.png", Format: "png", Size: intp(32), Path: "v1/brands/acme/logos/logo-32.png"},
									{File: "logo-64.png", Format: "png", Size: intp(64), Path: "v1/brands/acme/logos/logo-64.png"},
								},
							},
						},
					},
					{
						Type: catalog.TypeIcons,
						Assets: []catalog.Asset{
							{
								ID: "gear", Name: "Gear", DisplayName: "Gear",
								Type:     catalog.TypeIcons,
								BasePath: "v1/brands/acme/icons/gear",
								Sizes:    []int{32},
								Formats:  []string{"png"},
								Files: []catalog.AssetFile{
									{File: "gear-32.png", Format: "png", Size: intp(32), Path: "v1/brands/acme/icons/gear-32.png"},
								},
							},
						},
					},
				},
			},
		},
	}
}

func newTestServer(t *testing.T, loader Loader) *Server {
	t.Helper()
	s, err := New(NewCatalogState(testManifest()), "", loader)
	require.NoError(t, err)
	return s
}

func get(t *testing.T, s *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestManifestEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/api/manifest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	m, err := catalog.DecodeManifest(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "v1", m.Version)
	require.Len(t, m.Brands, 1)
}

func TestBrandsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/api/brands")
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		AssetCount  int    `json:"assetCount"`
	}
	decodeBody(t, rec, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, "acme", summaries[0].ID)
	assert.Equal(t, "ACME Corporation", summaries[0].DisplayName)
	assert.Equal(t, 2, summaries[0].AssetCount)
}

func TestSearchEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	var body struct {
		Count   int             `json:"count"`
		Results []catalog.Entry `json:"results"`
	}

	rec := get(t, s, "/api/search?q=logo")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "logo", body.Results[0].ID)

	rec = get(t, s, "/api/search?type=icons")
	decodeBody(t, rec, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "gear", body.Results[0].ID)

	rec = get(t, s, "/api/search?format=svg&minSize=16&maxSize=64")
	decodeBody(t, rec, &body)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "logo", body.Results[0].ID)
}

func TestSearchEndpointRejectsBadSize(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/api/search?minSize=banana")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolveEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	var file catalog.AssetFile
	rec := get(t, s, "/api/resolve/acme/logos/logo?format=png&size=64")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &file)
	assert.Equal(t, "logo-64.png", file.File)

	// No format requested: svg wins over png in the preference order.
	rec = get(t, s, "/api/resolve/acme/logos/logo")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &file)
	assert.Equal(t, "logo.svg", file.File)

	// Requested size absent: smallest available size of that format.
	rec = get(t, s, "/api/resolve/acme/logos/logo?format=png&size=128")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &file)
	assert.Equal(t, "logo-32.png", file.File)
}

func TestResolveEndpointMisses(t *testing.T) {
	s := newTestServer(t, nil)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/resolve/acme/logos/missing").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/resolve/ghost/logos/logo").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/resolve/acme/logos/logo?format=avif").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/resolve/acme/logos/logo?size=huge").Code)
}

func TestReloadSwapsState(t *testing.T) {
	reloaded := testManifest()
	reloaded.Version = "v2"
	s := newTestServer(t, func() (*catalog.Manifest, error) { return reloaded, nil })
	before := s.State()

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	after := s.State()
	assert.NotSame(t, before, after)
	assert.Equal(t, "v2", after.Manifest.Version)
}

func TestReloadFailureKeepsState(t *testing.T) {
	s := newTestServer(t, func() (*catalog.Manifest, error) { return nil, fmt.Errorf("disk gone") })
	before := s.State()

	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Same(t, before, s.State())
}

func TestReloadWithoutLoader(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/reload", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestReloadRejectsGet(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/api/reload")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestBrowsePage(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	html := rec.Body.String()
	assert.Contains(t, html, "Primary Logo")
	assert.Contains(t, html, "Gear")
	assert.Contains(t, html, "logo.svg", "svg preview path is rendered")
}

func TestBrowsePageFiltersByType(t *testing.T) {
	rec := get(t, newTestServer(t, nil), "/?type=icons")
	require.Equal(t, http.StatusOK, rec.Code)

	html := rec.Body.String()
	assert.Contains(t, html, "Gear")
	assert.NotContains(t, html, "Primary Logo")
}

func TestQueryFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/search?q=mark&brand=acme,zenith&type=logos,icons&format=png&minSize=16&maxSize=128", nil)
	q, err := queryFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "mark", q.Text)
	assert.Equal(t, []string{"acme", "zenith"}, q.BrandIDs)
	assert.Equal(t, []catalog.AssetType{catalog.TypeLogos, catalog.TypeIcons}, q.Types)
	assert.Equal(t, []string{"png"}, q.Formats)
	assert.Equal(t, 16, q.MinSize)
	assert.Equal(t, 128, q.MaxSize)
}
