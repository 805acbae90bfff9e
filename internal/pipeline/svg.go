package pipeline

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/brandkit/brandkit/pkg/config"
)

// MinifySVG parses and re-emits an SVG document with comments, editor
// metadata, and inter-element whitespace stripped per the configured
// options. The output is a single-line document; geometry is untouched.
func MinifySVG(data []byte, opts config.SVGConfig) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return nil, fmt.Errorf("not an svg document")
	}

	stripTokens(&doc.Element, opts)

	doc.WriteSettings.CanonicalEndTags = false
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize svg: %w", err)
	}
	return out, nil
}

// stripTokens walks the element tree removing comments, whitespace-only
// character data, and the configured junk elements.
func stripTokens(el *etree.Element, opts config.SVGConfig) {
	kept := el.Child[:0]
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.Comment:
			if opts.RemoveComments {
				continue
			}
		case *etree.CharData:
			if t.IsWhitespace() {
				continue
			}
		case *etree.Element:
			if removableElement(t.Tag, opts) {
				continue
			}
			stripTokens(t, opts)
		}
		kept = append(kept, tok)
	}
	el.Child = kept
}

func removableElement(tag string, opts config.SVGConfig) bool {
	switch tag {
	case "metadata":
		return opts.RemoveMetadata
	case "title":
		return opts.RemoveTitle
	case "desc":
		return opts.RemoveDesc
	default:
		return false
	}
}
