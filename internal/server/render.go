package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/brandkit/brandkit/internal/assets"
	"github.com/brandkit/brandkit/pkg/catalog"
	"github.com/brandkit/brandkit/pkg/logger"
)

// browsePage renders the server-side catalog view from the embedded
// handlebars template.
type browsePage struct {
	tpl *raymond.Template
}

func newBrowsePage() (*browsePage, error) {
	src, err := assets.BrowseTemplate()
	if err != nil {
		return nil, fmt.Errorf("load browse template: %w", err)
	}
	tpl, err := raymond.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse browse template: %w", err)
	}
	return &browsePage{tpl: tpl}, nil
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	state := s.State()
	params := r.URL.Query()
	text := params.Get("q")
	brandFilter := params.Get("brand")
	typeFilter := params.Get("type")

	q := catalog.Query{Text: text}
	if brandFilter != "" {
		q.BrandIDs = []string{brandFilter}
	}
	if typeFilter != "" {
		q.Types = []catalog.AssetType{catalog.AssetType(typeFilter)}
	}
	results := state.Index.Search(q)

	rows := make([]map[string]interface{}, 0, len(results))
	for i := range results {
		rows = append(rows, browseRow(&results[i]))
	}

	brands := make([]map[string]interface{}, 0, len(state.Manifest.Brands))
	for _, b := range state.Manifest.Brands {
		brands = append(brands, map[string]interface{}{
			"id":       b.ID,
			"name":     b.Display(),
			"selected": b.ID == brandFilter,
		})
	}
	types := make([]map[string]interface{}, 0, len(catalog.CanonicalTypes))
	for _, t := range catalog.CanonicalTypes {
		types = append(types, map[string]interface{}{
			"id":       string(t),
			"selected": string(t) == typeFilter,
		})
	}

	html, err := s.browse.tpl.Exec(map[string]interface{}{
		"version": state.Manifest.Version,
		"query":   text,
		"brands":  brands,
		"types":   types,
		"results": rows,
	})
	if err != nil {
		logger.Error("Browse page render failed", logger.Err(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

// browseRow flattens one search result for the template: preview path (best
// browser-displayable variant) and best overall file per the resolution
// policy.
func browseRow(e *catalog.Entry) map[string]interface{} {
	row := map[string]interface{}{
		"brandName":   e.BrandName,
		"displayName": e.Display(),
		"type":        string(e.Type),
		"formats":     strings.Join(e.Formats, ", "),
		"sizes":       joinInts(e.Sizes),
	}
	if best, err := catalog.Resolve(&e.Asset, catalog.ResolveRequest{}); err == nil {
		row["bestPath"] = best.Path
	}
	// Browsers cannot render avif everywhere and jpg originals may be
	// huge; svg or png make dependable previews.
	for _, format := range []string{"svg", "png", "webp", "jpg"} {
		if preview, err := catalog.Resolve(&e.Asset, catalog.ResolveRequest{Format: format}); err == nil {
			row["previewPath"] = preview.Path
			break
		}
	}
	return row
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
