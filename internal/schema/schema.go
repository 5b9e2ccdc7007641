// Package schema checks a page description against the shape the renderer
// understands: a root object with optional doctype, language, head and body
// keys, a head holding meta/link/title, and body elements whose attributes
// blocks are objects. Mismatches are reported as issues and never stop a
// conversion.
package schema

import (
	"fmt"
	"strconv"

	"github.com/mcncl/jsonhtml/internal/models"
)

// Checker walks a document and collects shape issues
type Checker struct {
	issues []models.Issue
}

// NewChecker creates a new Checker
func NewChecker() *Checker {
	return &Checker{}
}

// Check returns every shape issue found in root, in document order
func Check(root *models.Node) []models.Issue {
	return NewChecker().Check(root)
}

// Check returns every shape issue found in root, in document order
func (c *Checker) Check(root *models.Node) []models.Issue {
	c.issues = nil

	if !root.IsObject() {
		c.addf("", "document root is %s, not an object; rendering an empty page", describe(root))
		return c.issues
	}

	for _, member := range root.Members {
		switch member.Key {
		case "doctype":
			c.checkDoctype(member.Value)
		case "language":
			if !member.Value.IsScalar() {
				c.addf("language", "expected a string, got %s", describe(member.Value))
			}
		case "head":
			c.checkHead(member.Value)
		case "body":
			c.checkBody(member.Value)
		default:
			c.addf(member.Key, "unrecognized top-level key; ignored")
		}
	}

	return c.issues
}

func (c *Checker) checkDoctype(doctype *models.Node) {
	if !doctype.IsScalar() || doctype.ScalarType != models.String {
		c.addf("doctype", "expected a string, got %s", describe(doctype))
		return
	}
	if doctype.Raw != "html" {
		c.addf("doctype", "%q is not \"html\"; no doctype line is written", doctype.Raw)
	}
}

func (c *Checker) checkHead(head *models.Node) {
	if !head.IsObject() {
		c.addf("head", "expected an object, got %s; head will be empty", describe(head))
		return
	}

	for _, member := range head.Members {
		path := join("head", member.Key)
		switch member.Key {
		case "meta":
			if !member.Value.IsObject() {
				c.addf(path, "expected an object of name/content pairs, got %s; skipped", describe(member.Value))
				continue
			}
			for _, meta := range member.Value.Members {
				if !meta.Value.IsScalar() {
					c.addf(join(path, meta.Key), "expected a scalar, got %s; written as JSON text", describe(meta.Value))
				}
			}
		case "link":
			if !member.Value.IsArray() {
				c.addf(path, "expected an array of attribute objects, got %s; skipped", describe(member.Value))
				continue
			}
			for i, link := range member.Value.Items {
				if !link.IsObject() {
					c.addf(index(path, i), "expected an object, got %s; skipped", describe(link))
				}
			}
		case "title":
			if !member.Value.IsScalar() {
				c.addf(path, "expected a string, got %s; written as JSON text", describe(member.Value))
			}
		default:
			c.addf(path, "unrecognized head element; ignored")
		}
	}
}

func (c *Checker) checkBody(body *models.Node) {
	if !body.IsObject() {
		c.addf("body", "expected an object, got %s; body will be empty", describe(body))
		return
	}
	c.checkElement("body", body)
}

func (c *Checker) checkElement(path string, node *models.Node) {
	switch {
	case node.IsObject():
		for _, member := range node.Members {
			if member.Key == "attributes" {
				c.checkAttributes(join(path, member.Key), member.Value)
				continue
			}
			c.checkElement(join(path, member.Key), member.Value)
		}
	case node.IsArray():
		for i, item := range node.Items {
			c.checkElement(index(path, i), item)
		}
	}
}

func (c *Checker) checkAttributes(path string, attributes *models.Node) {
	if !attributes.IsObject() {
		c.addf(path, "expected an object, got %s; ignored", describe(attributes))
		return
	}

	for _, attr := range attributes.Members {
		attrPath := join(path, attr.Key)
		if attr.Key == "style" {
			if !attr.Value.IsObject() {
				c.addf(attrPath, "expected an object of CSS properties, got %s; ignored", describe(attr.Value))
				continue
			}
			for _, decl := range attr.Value.Members {
				if !decl.Value.IsScalar() {
					c.addf(join(attrPath, decl.Key), "expected a scalar, got %s; written as JSON text", describe(decl.Value))
				}
			}
			continue
		}
		if !attr.Value.IsScalar() {
			c.addf(attrPath, "expected a scalar, got %s; written as JSON text", describe(attr.Value))
		}
	}
}

func (c *Checker) addf(path, format string, args ...interface{}) {
	c.issues = append(c.issues, models.Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

// describe names a node's shape for messages
func describe(n *models.Node) string {
	if n == nil {
		return "nothing"
	}
	if n.Kind != models.Scalar {
		return "an " + n.Kind.String()
	}
	switch n.ScalarType {
	case models.Number:
		return "a number"
	case models.Bool:
		return "a boolean"
	case models.Null:
		return "null"
	default:
		return "a string"
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
