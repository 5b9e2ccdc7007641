package formatter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mediaTypeHTML = "text/html"

var (
	minifier *minify.M
	once     sync.Once
)

// getMinifier returns a configured HTML minifier (singleton)
func getMinifier() *minify.M {
	once.Do(func() {
		minifier = minify.New()
		minifier.Add(mediaTypeHTML, &html.Minifier{
			KeepDocumentTags:    true,
			KeepEndTags:         true,
			KeepQuotes:          true,
			KeepDefaultAttrVals: true,
		})
	})
	return minifier
}

// Formatter post-processes rendered HTML before it is written out
type Formatter struct {
	minify bool
}

// NewFormatter creates a Formatter that leaves the indented layout intact
func NewFormatter() *Formatter {
	return &Formatter{}
}

// NewMinifyingFormatter creates a Formatter that strips insignificant whitespace
func NewMinifyingFormatter() *Formatter {
	return &Formatter{minify: true}
}

// Format returns the final form of a rendered document
func (f *Formatter) Format(document string) (string, error) {
	if strings.TrimSpace(document) == "" {
		return "", nil
	}

	if !f.minify {
		return document, nil
	}

	minified, err := getMinifier().String(mediaTypeHTML, document)
	if err != nil {
		return "", fmt.Errorf("failed to minify HTML: %w", err)
	}
	return minified + "\n", nil
}
