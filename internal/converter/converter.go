// Package converter ties parsing, rendering and formatting together. Convert
// is the text-in, text-out boundary; ConvertFile adds reading the JSON file
// and writing the HTML file next to it.
package converter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/jsonhtml/internal/analyzer"
	"github.com/mcncl/jsonhtml/internal/config"
	"github.com/mcncl/jsonhtml/internal/errors"
	"github.com/mcncl/jsonhtml/internal/formatter"
	"github.com/mcncl/jsonhtml/internal/generator"
	"github.com/mcncl/jsonhtml/internal/models"
	"github.com/mcncl/jsonhtml/internal/parser"
)

// Converter turns page descriptions into HTML documents. It holds no state
// between calls and may be used from several goroutines.
type Converter struct {
	config    *config.Config
	generator *generator.Generator
	formatter *formatter.Formatter
	warnings  io.Writer
}

// Option configures a Converter
type Option func(*Converter)

// WithWarnings sends lint warnings to w when linting is enabled
func WithWarnings(w io.Writer) Option {
	return func(c *Converter) {
		c.warnings = w
	}
}

// New creates a Converter for cfg; a nil cfg means defaults
func New(cfg *config.Config, opts ...Option) *Converter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	f := formatter.NewFormatter()
	if cfg.Output.Minify {
		f = formatter.NewMinifyingFormatter()
	}
	c := &Converter{
		config:    cfg,
		generator: generator.NewGeneratorWithConfig(cfg),
		formatter: f,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert renders jsonText with default settings
func Convert(jsonText string) (string, error) {
	return New(nil).Convert(jsonText)
}

// Convert renders jsonText as an HTML document. The only error a well-formed
// call can return is a parsing error for invalid JSON.
func (c *Converter) Convert(jsonText string) (string, error) {
	doc, err := parser.ParseString(jsonText)
	if err != nil {
		return "", err
	}
	return c.render(doc)
}

// Lint parses jsonText and reports problems without rendering
func (c *Converter) Lint(jsonText string) (analyzer.Report, error) {
	doc, err := parser.ParseString(jsonText)
	if err != nil {
		return analyzer.Report{}, err
	}
	return c.lint(doc), nil
}

// LintFile parses the JSON file at path and reports problems without rendering
func (c *Converter) LintFile(path string) (analyzer.Report, error) {
	doc, err := parser.ParseFile(path)
	if err != nil {
		return analyzer.Report{}, err
	}
	return c.lint(doc), nil
}

func (c *Converter) lint(doc models.Document) analyzer.Report {
	return analyzer.NewAnalyzerWithConfig(c.config).Analyze(doc)
}

// WriteWarnings prints one "warning: path: message" line per issue
func WriteWarnings(w io.Writer, report analyzer.Report) {
	for _, line := range report.Strings() {
		fmt.Fprintf(w, "warning: %s\n", line)
	}
}

// ConvertFile converts the JSON file at path and writes the result next to
// it, returning the path written
func (c *Converter) ConvertFile(path string) (string, error) {
	outPath := OutputPath(path, c.config.Output.Extension)
	if err := c.ConvertFileTo(path, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// ConvertFileTo converts the JSON file at inPath into outPath
func (c *Converter) ConvertFileTo(inPath, outPath string) error {
	doc, err := parser.ParseFile(inPath)
	if err != nil {
		return err
	}

	document, err := c.render(doc)
	if err != nil {
		return err
	}

	return WriteFile(outPath, document)
}

// ConvertReader converts JSON read from r and writes HTML to w
func (c *Converter) ConvertReader(r io.Reader, w io.Writer) error {
	doc, err := parser.Parse(r)
	if err != nil {
		return err
	}

	document, err := c.render(doc)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, document); err != nil {
		return errors.NewOutputError("failed to write HTML", err)
	}
	return nil
}

func (c *Converter) render(doc models.Document) (string, error) {
	if c.config.Lint.Enabled && c.warnings != nil {
		if report := c.lint(doc); report.HasIssues() {
			WriteWarnings(c.warnings, report)
		}
	}

	document := c.generator.GenerateHTML(doc)

	formatted, err := c.formatter.Format(document)
	if err != nil {
		return "", errors.NewFormatError("failed to format HTML", err)
	}

	if c.config.Dev.Debug {
		fmt.Fprintf(os.Stderr, "Rendered %d bytes of HTML (%d after formatting)\n", len(document), len(formatted))
	}
	return formatted, nil
}

// OutputPath replaces the extension of path with ext, appending ext when path
// has none
func OutputPath(path, ext string) string {
	current := filepath.Ext(path)
	return strings.TrimSuffix(path, current) + ext
}

// WriteFile writes document to path, reporting failures to close the file
func WriteFile(path, document string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create file '%s'", path), err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.NewOutputError(fmt.Sprintf("failed to close file '%s'", path), closeErr)
		}
	}()

	if _, err := io.WriteString(file, document); err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
	}
	return nil
}
