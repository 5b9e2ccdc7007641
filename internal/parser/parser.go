package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/mcncl/jsonhtml/internal/errors" // Custom errors package
	"github.com/mcncl/jsonhtml/internal/models"
)

// MaxDepth bounds object/array nesting so hostile input cannot exhaust the
// renderer's stack.
const MaxDepth = 10000

// Parse converts JSON data from an io.Reader into a Document, keeping object
// members in source order.
func Parse(reader io.Reader) (models.Document, error) {
	decoder := jsontext.NewDecoder(reader)

	root, err := decodeValue(decoder, 0)
	if err != nil {
		return models.Document{}, err
	}

	// Only whitespace may follow the root value.
	if _, err := decoder.ReadToken(); err != io.EOF {
		if err == nil {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return models.Document{
		Root:         root,
		RootIsObject: root.IsObject(),
	}, nil
}

// decodeValue reads exactly one JSON value from the decoder.
func decodeValue(decoder *jsontext.Decoder, depth int) (*models.Node, error) {
	if depth > MaxDepth {
		return nil, errors.NewParsingError(
			fmt.Sprintf("nesting deeper than %d levels", MaxDepth),
			errors.ErrTooDeep,
		)
	}

	tok, err := decoder.ReadToken()
	if err != nil {
		if err == io.EOF && depth == 0 {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, syntaxError(decoder, err)
	}

	switch tok.Kind() {
	case '{':
		obj := models.NewObject()
		for decoder.PeekKind() != '}' {
			keyTok, err := decoder.ReadToken()
			if err != nil {
				return nil, syntaxError(decoder, err)
			}
			// The token is only valid until the next decoder call
			key := keyTok.String()
			value, err := decodeValue(decoder, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Members = append(obj.Members, models.Member{Key: key, Value: value})
		}
		if _, err := decoder.ReadToken(); err != nil {
			return nil, syntaxError(decoder, err)
		}
		return obj, nil
	case '[':
		arr := models.NewArray()
		for decoder.PeekKind() != ']' {
			item, err := decodeValue(decoder, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, item)
		}
		if _, err := decoder.ReadToken(); err != nil {
			return nil, syntaxError(decoder, err)
		}
		return arr, nil
	case '"':
		return models.NewString(tok.String()), nil
	case '0':
		return models.NewNumber(tok.String()), nil
	case 't', 'f':
		return models.NewBool(tok.Bool()), nil
	case 'n':
		return models.NewNull(), nil
	default:
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected token %q", tok.String()), errors.ErrInvalidJSON)
	}
}

// syntaxError maps a decoder error onto a parsing AppError.
func syntaxError(decoder *jsontext.Decoder, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	if err == io.EOF || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of JSON input at offset %d", decoder.InputOffset()),
			errors.ErrInvalidJSON,
		)
	}
	var syntacticErr *jsontext.SyntacticError
	if stderrors.As(err, &syntacticErr) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %v", decoder.InputOffset(), syntacticErr.Err),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewParsingError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
