// Package assets embeds static resources compiled into the binary: the JSON
// Schema used to validate brand metadata documents and the handlebars
// template behind the catalog browse page.
package assets

import (
	"embed"
)

//go:embed schemas/brand-metadata.schema.json
var BrandMetadataSchema []byte

//go:embed templates/browse.hbs
var browseTemplate embed.FS

// BrowseTemplate returns the handlebars source of the catalog browse page.
func BrowseTemplate() (string, error) {
	data, err := browseTemplate.ReadFile("templates/browse.hbs")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
