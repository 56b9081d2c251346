package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"

	"github.com/nixlim/pokerlytics/internal/analytics"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatOTLP Format = "otlp"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatOTLP:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or otlp)", s)
	}
}

// Encode writes r to w in the given format, followed by a newline.
// meta is only used by FormatOTLP.
func Encode(w io.Writer, r *analytics.Result, format Format, pretty bool, meta Meta) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		if pretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		return nil

	case FormatOTLP:
		opts := protojson.MarshalOptions{}
		if pretty {
			opts.Multiline = true
			opts.Indent = "  "
		}
		data, err := opts.Marshal(BuildRequest(r, meta))
		if err != nil {
			return fmt.Errorf("encoding otlp request: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing otlp request: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
