// Package generator renders a parsed page description into an HTML document.
//
// Rendering is a single recursive walk. The document renderer writes the
// doctype and the <html> wrapper, the head renderer understands meta, link
// and title, and every body key is handed to the generic element renderer,
// which maps objects to nested elements, arrays to repeated siblings and
// scalars to escaped text leaves. Shapes it cannot use are skipped, so
// rendering never fails.
package generator

import (
	"bytes"

	"github.com/mcncl/jsonhtml/internal/config"
	"github.com/mcncl/jsonhtml/internal/models"
)

// attributesKey names the reserved member holding an element's attributes.
const attributesKey = "attributes"

// Generator is responsible for generating HTML from a parsed document
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance with default settings
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Generator{config: cfg}
}

// GenerateHTML renders a whole document. A root that is not an object renders
// as an empty <html> element.
func (g *Generator) GenerateHTML(doc models.Document) string {
	w := g.newWriter()
	g.writeDocument(w, doc.Root)
	return w.buf.String()
}

// RenderHead renders the children of a <head> element at level.
func (g *Generator) RenderHead(head *models.Node, level int) string {
	w := g.newWriter()
	g.writeHead(w, head, level)
	return w.buf.String()
}

// RenderBody renders a complete <body> element at level.
func (g *Generator) RenderBody(body *models.Node, level int) string {
	w := g.newWriter()
	g.writeBody(w, body, level)
	return w.buf.String()
}

// RenderElement renders value as one or more tag elements at level.
func (g *Generator) RenderElement(tag string, value *models.Node, level int) string {
	w := g.newWriter()
	g.writeElement(w, tag, value, level)
	return w.buf.String()
}

// writer accumulates indented output lines.
type writer struct {
	buf     bytes.Buffer
	width   int
	newline string
}

func (g *Generator) newWriter() *writer {
	return &writer{
		width:   g.config.IndentWidth,
		newline: g.config.NewlineString(),
	}
}

// line writes s on its own line, prefixed by level indents.
func (w *writer) line(level int, s string) {
	w.buf.WriteString(Indent(level, w.width))
	w.buf.WriteString(s)
	w.buf.WriteString(w.newline)
}

func (g *Generator) writeDocument(w *writer, root *models.Node) {
	if !root.IsObject() {
		root = models.NewObject()
	}

	if doctype, ok := root.Get("doctype"); ok && doctype.Text() == "html" {
		w.line(0, "<!DOCTYPE html>")
	}

	language := g.config.Language
	if lang, ok := root.Get("language"); ok && !lang.IsNull() {
		language = lang.Text()
	}
	w.line(0, `<html lang="`+g.attrValue(language)+`">`)

	if head, ok := root.Get("head"); ok {
		w.line(1, "<head>")
		g.writeHead(w, head, 2)
		w.line(1, "</head>")
	}

	if body, ok := root.Get("body"); ok {
		g.writeBody(w, body, 1)
	}

	w.line(0, "</html>")
}

func (g *Generator) writeHead(w *writer, head *models.Node, level int) {
	if !head.IsObject() {
		return
	}

	for _, member := range head.Members {
		switch member.Key {
		case "meta":
			if !member.Value.IsObject() {
				continue
			}
			for _, meta := range member.Value.Members {
				content := g.attrValue(meta.Value.Text())
				if meta.Key == "charset" {
					w.line(level, `<meta charset="`+content+`">`)
				} else {
					w.line(level, `<meta name="`+g.attrValue(meta.Key)+`" content="`+content+`">`)
				}
			}
		case "link":
			if !member.Value.IsArray() {
				continue
			}
			for _, link := range member.Value.Items {
				if !link.IsObject() {
					continue
				}
				attrs := make([]string, 0, len(link.Members))
				for _, attr := range link.Members {
					attrs = append(attrs, g.attribute(attr.Key, attr.Value.Text()))
				}
				w.line(level, "<link"+joinAttributes(attrs)+">")
			}
		case "title":
			w.line(level, "<title>"+Escape(member.Value.Text())+"</title>")
		}
	}
}

func (g *Generator) writeBody(w *writer, body *models.Node, level int) {
	attrs := ""
	if attributes, ok := body.Get(attributesKey); ok {
		attrs = g.attributeString(attributes)
	}

	w.line(level, "<body"+attrs+">")
	g.writeChildren(w, body, level+1)
	w.line(level, "</body>")
}

func (g *Generator) writeElement(w *writer, tag string, value *models.Node, level int) {
	switch {
	case value.IsObject():
		attrs := ""
		if attributes, ok := value.Get(attributesKey); ok {
			attrs = g.attributeString(attributes)
		}
		w.line(level, "<"+tag+attrs+">")
		g.writeChildren(w, value, level+1)
		w.line(level, "</"+tag+">")
	case value.IsArray():
		for _, item := range value.Items {
			g.writeElement(w, tag, item, level)
		}
	default:
		w.line(level, "<"+tag+">"+Escape(value.Text())+"</"+tag+">")
	}
}

// writeChildren renders every member of obj except the attributes block.
func (g *Generator) writeChildren(w *writer, obj *models.Node, level int) {
	if !obj.IsObject() {
		return
	}
	for _, member := range obj.Members {
		if member.Key == attributesKey {
			continue
		}
		g.writeElement(w, member.Key, member.Value, level)
	}
}
