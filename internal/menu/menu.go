// Package menu implements the line-oriented interactive mode: a numbered
// menu offering to convert a named JSON file or to exit.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonhtml/internal/errors"
)

// Menu choices
const (
	ChoiceConvert = "1"
	ChoiceExit    = "2"
)

// ConvertFunc converts the JSON file at path and returns the path written
type ConvertFunc func(path string) (string, error)

// Menu drives the prompt loop
type Menu struct {
	scanner *bufio.Scanner
	out     io.Writer
	convert ConvertFunc
}

// New creates a Menu reading answers from in and printing to out
func New(in io.Reader, out io.Writer, convert ConvertFunc) *Menu {
	return &Menu{
		scanner: bufio.NewScanner(in),
		out:     out,
		convert: convert,
	}
}

// Run shows the menu until the user exits or input ends. Conversion failures
// are printed and the loop continues; only a failure to read input is
// returned.
func (m *Menu) Run() error {
	for {
		m.printf("Choose an option:\n")
		m.printf("%s. Convert JSON to HTML\n", ChoiceConvert)
		m.printf("%s. Exit\n", ChoiceExit)

		choice, ok := m.readLine()
		if !ok {
			return m.readErr()
		}

		switch choice {
		case ChoiceConvert:
			m.printf("Enter the JSON file name: ")
			name, ok := m.readLine()
			if !ok {
				return m.readErr()
			}
			m.convertFile(name)
		case ChoiceExit:
			m.printf("Exiting.\n")
			return nil
		default:
			m.printf("Invalid choice, try again.\n")
		}
	}
}

func (m *Menu) convertFile(name string) {
	if name == "" {
		m.printf("File name must not be empty.\n")
		return
	}
	if info, err := os.Stat(name); err != nil || info.IsDir() {
		m.printf("File %s does not exist.\n", name)
		return
	}

	outPath, err := m.convert(name)
	if err != nil {
		m.printf("Details: %s\n\n", errors.UserFriendlyError(err))
		return
	}
	m.printf("HTML file '%s' was created successfully.\n", outPath)
}

// readLine returns the next trimmed input line, or false at end of input
func (m *Menu) readLine() (string, bool) {
	if !m.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.scanner.Text()), true
}

func (m *Menu) readErr() error {
	if err := m.scanner.Err(); err != nil {
		return errors.NewInputError("failed to read menu input", err)
	}
	return nil
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
