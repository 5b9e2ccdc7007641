package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonhtml/internal/analyzer"
	"github.com/mcncl/jsonhtml/internal/config"
	"github.com/mcncl/jsonhtml/internal/converter"
	"github.com/mcncl/jsonhtml/internal/errors"
	"github.com/mcncl/jsonhtml/internal/menu"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output HTML file. Defaults to the input path with an .html extension, or stdout for stdin." short:"o" type:"path"`
	Config      string `help:"Path to configuration file. Defaults to the nearest .jsonhtml.yml." short:"c" type:"path"`
	Language    string `help:"Default lang attribute when the document has no language." short:"l"`
	Minify      bool   `help:"Minify the generated HTML." short:"m"`
	Lint        bool   `help:"Report problems in the page description on stderr."`
	Check       bool   `help:"Only report problems in the page description; exit non-zero when any are found."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run the interactive menu." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonhtml"),
		kong.Description("A tool to convert JSON page descriptions to HTML"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}
	defaultToMenu(os.Args[1:])

	if CLI.Version {
		fmt.Printf("jsonhtml version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := run(&Context{Debug: cfg.Dev.Debug, Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonhtml --help\n")
		os.Exit(1)
	}
}

// defaultToMenu selects the interactive menu when no arguments were given.
// It must run after kong has parsed, since parsing resets every flag field.
func defaultToMenu(args []string) {
	if len(args) == 0 {
		CLI.Interactive = true
	}
}

// loadConfig reads the config file named on the command line, or the nearest
// one found, and applies flag overrides
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Language, CLI.Minify, CLI.Lint)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	cfg.Dev.Debug = cfg.Dev.Debug || CLI.Debug

	if cfg.Dev.Debug && configPath != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", configPath)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	conv := converter.New(ctx.Config, converter.WithWarnings(os.Stderr))

	if CLI.Interactive {
		return runMenu(conv, os.Stdin, os.Stdout)
	}

	if CLI.Check {
		return checkInput(conv)
	}

	if CLI.Input != "" {
		return convertFile(ctx, conv)
	}

	jsonData, err := readStdin()
	if err != nil {
		return err
	}

	document, err := conv.Convert(jsonData)
	if err != nil {
		return err
	}
	return writeOutput(ctx, document)
}

// readStdin reads piped JSON from stdin
func readStdin() (string, error) {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return "", errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped) and no input file was named
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	return string(jsonData), nil
}

// checkInput lints CLI.Input or stdin without writing any HTML
func checkInput(conv *converter.Converter) error {
	var (
		report analyzer.Report
		err    error
	)
	if CLI.Input != "" {
		report, err = conv.LintFile(CLI.Input)
	} else {
		var jsonData string
		if jsonData, err = readStdin(); err == nil {
			report, err = conv.Lint(jsonData)
		}
	}
	if err != nil {
		return err
	}

	converter.WriteWarnings(os.Stderr, report)
	if report.HasIssues() {
		return errors.NewInputError(fmt.Sprintf("found %d problem(s) in the page description", len(report.Issues)), errors.ErrLintIssues)
	}
	return nil
}

// runMenu drives the interactive menu, writing each converted file next to
// its input
func runMenu(conv *converter.Converter, in io.Reader, out io.Writer) error {
	return menu.New(in, out, conv.ConvertFile).Run()
}

// convertFile converts CLI.Input into CLI.Output, or next to the input
func convertFile(ctx *Context, conv *converter.Converter) error {
	outPath := CLI.Output
	if outPath == "" {
		outPath = converter.OutputPath(CLI.Input, ctx.Config.Output.Extension)
	}

	if ctx.Config.Dev.Verbose {
		fmt.Fprintf(os.Stderr, "Converting %s\n", CLI.Input)
	}
	if err := conv.ConvertFileTo(CLI.Input, outPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "HTML file '%s' was created successfully.\n", outPath)
	return nil
}

// writeOutput writes the document to CLI.Output or stdout
func writeOutput(ctx *Context, document string) error {
	if CLI.Output != "" {
		if err := converter.WriteFile(CLI.Output, document); err != nil {
			return err
		}
		if ctx.Debug || ctx.Config.Dev.Verbose {
			fmt.Fprintf(os.Stderr, "HTML written to %s\n", CLI.Output)
		}
		return nil
	}

	if _, err := io.WriteString(os.Stdout, document); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
