package pipeline

import (
	"strings"
	"testing"

	"github.com/brandkit/brandkit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<!-- Exported by some editor -->
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <metadata>editor junk</metadata>
  <title>Logo</title>
  <desc>The primary logo.</desc>
  <path d="M0 0h24v24H0z"/>
</svg>
`

func TestMinifySVGStripsJunk(t *testing.T) {
	out, err := MinifySVG([]byte(sampleSVG), config.SVGConfig{
		RemoveComments: true,
		RemoveMetadata: true,
		RemoveTitle:    true,
		RemoveDesc:     true,
	})
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "<!--")
	assert.NotContains(t, s, "<metadata>")
	assert.NotContains(t, s, "<title>")
	assert.NotContains(t, s, "<desc>")
	assert.Contains(t, s, `<path d="M0 0h24v24H0z"/>`)
	assert.Contains(t, s, `viewBox="0 0 24 24"`)
}

func TestMinifySVGKeepsConfiguredElements(t *testing.T) {
	out, err := MinifySVG([]byte(sampleSVG), config.SVGConfig{
		RemoveComments: true,
		RemoveMetadata: true,
	})
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "<title>Logo</title>")
	assert.Contains(t, s, "<desc>The primary logo.</desc>")
	assert.NotContains(t, s, "<metadata>")
}

func TestMinifySVGCollapsesWhitespace(t *testing.T) {
	out, err := MinifySVG([]byte(sampleSVG), config.SVGConfig{
		RemoveComments: true,
		RemoveMetadata: true,
		RemoveTitle:    true,
		RemoveDesc:     true,
	})
	require.NoError(t, err)
	assert.NotContains(t, strings.TrimSpace(string(out)), "\n")
}

func TestMinifySVGRejectsNonSVG(t *testing.T) {
	_, err := MinifySVG([]byte(`<html><body/></html>`), config.SVGConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an svg")
}

func TestMinifySVGRejectsMalformedXML(t *testing.T) {
	_, err := MinifySVG([]byte(`<svg><path`), config.SVGConfig{})
	assert.Error(t, err)
}
