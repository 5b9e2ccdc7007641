package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mcncl/jsonhtml/internal/config"
	"github.com/mcncl/jsonhtml/internal/models"
	"github.com/mcncl/jsonhtml/internal/schema"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/language"
)

var (
	// elementNameRegex matches names usable as an HTML start tag
	elementNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	// attributeNameRegex rejects whitespace, quotes, '>', '/', '=' and controls
	attributeNameRegex = regexp.MustCompile(`^[^\s"'>/=\x00-\x1f\x7f]+$`)
)

// Report collects everything the analyzer noticed about a document
type Report struct {
	Issues []models.Issue
}

// HasIssues reports whether anything was found
func (r Report) HasIssues() bool {
	return len(r.Issues) > 0
}

// Strings returns each issue formatted as "path: message"
func (r Report) Strings() []string {
	result := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		result = append(result, issue.String())
	}
	return result
}

// Analyzer lints a parsed document. It never changes what gets rendered.
type Analyzer struct {
	// config holds configuration settings for analysis
	config *config.Config
	issues []models.Issue
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Analyzer{config: cfg}
}

// Analyze runs the shape checks and the content checks over doc.
func (a *Analyzer) Analyze(doc models.Document) Report {
	a.issues = schema.Check(doc.Root)

	if !doc.RootIsObject {
		return Report{Issues: a.issues}
	}
	root := doc.Root

	if lang, ok := root.Get("language"); ok && lang.IsScalar() && !lang.IsNull() {
		a.checkLanguage(lang.Text())
	}

	if head, ok := root.Get("head"); ok && head.IsObject() {
		if link, ok := head.Get("link"); ok && link.IsArray() {
			for i, item := range link.Items {
				if item.IsObject() {
					a.checkAttributeNames(fmt.Sprintf("head.link[%d]", i), item)
				}
			}
		}
	}

	if body, ok := root.Get("body"); ok && body.IsObject() {
		a.walkChildren("body", body)
	}

	return Report{Issues: a.issues}
}

func (a *Analyzer) checkLanguage(tag string) {
	if !a.config.Lint.LanguageTags {
		return
	}
	if _, err := language.Parse(tag); err != nil {
		a.addf("language", "%q is not a valid BCP 47 language tag", tag)
	}
}

// walkChildren visits every element member of obj
func (a *Analyzer) walkChildren(path string, obj *models.Node) {
	for _, member := range obj.Members {
		if member.Key == "attributes" {
			if member.Value.IsObject() {
				a.checkAttributeNames(path+".attributes", member.Value)
			}
			continue
		}
		a.walkElement(path+"."+member.Key, member.Key, member.Value)
	}
}

func (a *Analyzer) walkElement(path, tag string, value *models.Node) {
	// Array items share the tag; check the name once
	a.checkTag(path, tag)
	a.walkContent(path, value)
}

// walkContent descends into value. Nested arrays repeat the same tag, so
// they are followed to any depth.
func (a *Analyzer) walkContent(path string, value *models.Node) {
	switch {
	case value.IsArray():
		for i, item := range value.Items {
			a.walkContent(fmt.Sprintf("%s[%d]", path, i), item)
		}
	case value.IsObject():
		a.walkChildren(path, value)
	}
}

func (a *Analyzer) checkTag(path, tag string) {
	if !elementNameRegex.MatchString(tag) {
		a.addf(path, "%q is not a valid element name; the output will not be well-formed", tag)
		return
	}
	if !a.config.Lint.UnknownTags || a.config.Lint.TagAllowed(tag) {
		return
	}
	// Custom elements must contain a hyphen and are always accepted
	if strings.Contains(tag, "-") {
		return
	}
	if atom.Lookup([]byte(strings.ToLower(tag))) == 0 {
		a.addf(path, "<%s> is not a known HTML element", tag)
	}
}

func (a *Analyzer) checkAttributeNames(path string, attributes *models.Node) {
	for _, attr := range attributes.Members {
		if !attributeNameRegex.MatchString(attr.Key) {
			a.addf(path+"."+attr.Key, "%q is not a valid attribute name", attr.Key)
		}
	}
}

func (a *Analyzer) addf(path, format string, args ...interface{}) {
	a.issues = append(a.issues, models.Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}
