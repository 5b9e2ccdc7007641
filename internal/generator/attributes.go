package generator

import (
	"strings"

	"github.com/mcncl/jsonhtml/internal/models"
)

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
	`'`, "&#39;",
)

// Escape encodes the five characters that are special in HTML text and
// attribute values.
func Escape(text string) string {
	return htmlEscaper.Replace(text)
}

// Indent returns level*width spaces.
func Indent(level, width int) string {
	if level <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*width)
}

// attrValue escapes an attribute value unless escaping is switched off.
func (g *Generator) attrValue(value string) string {
	if !g.config.EscapeAttributes {
		return value
	}
	return Escape(value)
}

func (g *Generator) attribute(name, value string) string {
	return name + `="` + g.attrValue(value) + `"`
}

// attributeString builds the attribute list of an opening tag from an
// attributes object, keeping member order. A style member holding an object
// is joined as prop:value pairs separated by semicolons. The result is empty
// or starts with a single space.
func (g *Generator) attributeString(attributes *models.Node) string {
	if !attributes.IsObject() {
		return ""
	}

	attrs := make([]string, 0, len(attributes.Members))
	for _, attr := range attributes.Members {
		if attr.Key == "style" {
			if !attr.Value.IsObject() {
				continue
			}
			attrs = append(attrs, g.attribute("style", g.styleString(attr.Value)))
			continue
		}
		attrs = append(attrs, g.attribute(attr.Key, attr.Value.Text()))
	}
	return joinAttributes(attrs)
}

func (g *Generator) styleString(style *models.Node) string {
	declarations := make([]string, 0, len(style.Members))
	for _, decl := range style.Members {
		declarations = append(declarations, g.config.StyleProperty(decl.Key)+":"+decl.Value.Text())
	}
	return strings.Join(declarations, ";")
}

func joinAttributes(attrs []string) string {
	if len(attrs) == 0 {
		return ""
	}
	return " " + strings.Join(attrs, " ")
}
