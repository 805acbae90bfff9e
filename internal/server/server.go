// Package server exposes the asset catalog over HTTP: a JSON query API, the
// generated files themselves, and a server-rendered browse page.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/logger"
	"github.com/gorilla/mux"
)

// CatalogState is an immutable snapshot of a loaded manifest plus its search
// index. Handlers read whichever snapshot is current; a reload builds a new
// state and swaps the pointer, never mutating an existing one.
type CatalogState struct {
	Manifest *catalog.Manifest
	Index    *catalog.Index
	LoadedAt time.Time
}

// NewCatalogState indexes a manifest into a snapshot.
func NewCatalogState(m *catalog.Manifest) *CatalogState {
	return &CatalogState{
		Manifest: m,
		Index:    catalog.NewIndex(m),
		LoadedAt: time.Now(),
	}
}

// Loader re-reads the manifest from its backing store.
type Loader func() (*catalog.Manifest, error)

// Server serves the catalog API and static assets.
type Server struct {
	state    atomic.Pointer[CatalogState]
	loader   Loader
	assetDir string
	browse   *browsePage
}

// New builds a server around an initial catalog state. assetDir is the
// output tree served under /assets/; loader backs POST /api/reload.
func New(initial *CatalogState, assetDir string, loader Loader) (*Server, error) {
	browse, err := newBrowsePage()
	if err != nil {
		return nil, err
	}
	s := &Server{loader: loader, assetDir: assetDir, browse: browse}
	s.state.Store(initial)
	return s, nil
}

// State returns the current catalog snapshot.
func (s *Server) State() *CatalogState {
	return s.state.Load()
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleBrowse).Methods(http.MethodGet)
	r.HandleFunc("/api/manifest", s.handleManifest).Methods(http.MethodGet)
	r.HandleFunc("/api/brands", s.handleBrands).Methods(http.MethodGet)
	r.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/resolve/{brand}/{type}/{asset}", s.handleResolve).Methods(http.MethodGet)
	r.HandleFunc("/api/reload", s.handleReload).Methods(http.MethodPost)
	if s.assetDir != "" {
		r.PathPrefix("/assets/").Handler(
			http.StripPrefix("/assets/", http.FileServer(http.Dir(s.assetDir))))
	}
	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("Catalog server listening", logger.String("addr", addr))
	return srv.ListenAndServe()
}

func (s *Server) handleManifest(w http.ResponseWriter, _ *http.Request) {
	state := s.State()
	w.Header().Set("Content-Type", "application/json")
	if err := state.Manifest.Encode(w); err != nil {
		logger.Error("Failed to write manifest response", logger.Err(err))
	}
}

// brandSummary is the /api/brands projection.
type brandSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Tags        []string `json:"tags,omitempty"`
	AssetCount  int      `json:"assetCount"`
}

func (s *Server) handleBrands(w http.ResponseWriter, _ *http.Request) {
	state := s.State()
	summaries := make([]brandSummary, 0, len(state.Manifest.Brands))
	for _, b := range state.Manifest.Brands {
		count := 0
		for _, g := range b.AssetTypes {
			count += len(g.Assets)
		}
		summaries = append(summaries, brandSummary{
			ID:          b.ID,
			Name:        b.Name,
			DisplayName: b.Display(),
			Tags:        b.Tags,
			AssetCount:  count,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	results := s.State().Index.Search(q)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	state := s.State()

	asset := findAsset(state.Manifest, vars["brand"], catalog.AssetType(vars["type"]), vars["asset"])
	if asset == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "asset not found"})
		return
	}

	req := catalog.ResolveRequest{Format: r.URL.Query().Get("format")}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size must be an integer"})
			return
		}
		req.Size = &size
	}

	file, err := catalog.Resolve(asset, req)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no matching variant"})
		return
	}
	writeJSON(w, http.StatusOK, file)
}

func (s *Server) handleReload(w http.ResponseWriter, _ *http.Request) {
	if s.loader == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "no manifest loader configured"})
		return
	}
	m, err := s.loader()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("reload failed: %v", err)})
		return
	}
	s.state.Store(NewCatalogState(m))
	logger.Info("Catalog reloaded", logger.Int("brands", len(m.Brands)))
	writeJSON(w, http.StatusOK, map[string]interface{}{"brands": len(m.Brands)})
}

// queryFromRequest maps URL query parameters onto a catalog query.
// Multi-value filters accept comma-separated lists.
func queryFromRequest(r *http.Request) (catalog.Query, error) {
	params := r.URL.Query()
	q := catalog.Query{
		Text:     params.Get("q"),
		BrandIDs: splitList(params.Get("brand")),
		Formats:  splitList(params.Get("format")),
	}
	for _, t := range splitList(params.Get("type")) {
		q.Types = append(q.Types, catalog.AssetType(t))
	}
	var err error
	if q.MinSize, err = sizeParam(params.Get("minSize")); err != nil {
		return q, err
	}
	if q.MaxSize, err = sizeParam(params.Get("maxSize")); err != nil {
		return q, err
	}
	return q, nil
}

func sizeParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size parameter %q", raw)
	}
	return n, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func findAsset(m *catalog.Manifest, brandID string, assetType catalog.AssetType, assetID string) *catalog.Asset {
	for i := range m.Brands {
		if m.Brands[i].ID != brandID {
			continue
		}
		for j := range m.Brands[i].AssetTypes {
			group := &m.Brands[i].AssetTypes[j]
			if group.Type != assetType {
				continue
			}
			for k := range group.Assets {
				if group.Assets[k].ID == assetID {
					return &group.Assets[k]
				}
			}
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to write response", logger.Err(err))
	}
}
