package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an input payload.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrMissingField is returned when a record lacks a required field.
var ErrMissingField = errors.New("missing required field")

// FormatFromPath picks the payload format from a file extension.
// Anything that is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a complete session list from r and validates every record.
// An empty payload decodes to an empty list.
func Decode(r io.Reader, format Format) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Record{}, nil
	}

	var records []Record
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing yaml input: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing json input: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported input format %q", format)
	}

	if records == nil {
		records = []Record{}
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required fields of every record. The returned error
// names the first offending record by its zero-based input index.
func Validate(records []Record) error {
	validate := newValidator()
	for i := range records {
		if err := validate.Struct(&records[i]); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fields := make([]string, 0, len(verrs))
				for _, fe := range verrs {
					fields = append(fields, fe.Field())
				}
				return fmt.Errorf("record %d: %w: %s", i, ErrMissingField, strings.Join(fields, ", "))
			}
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
