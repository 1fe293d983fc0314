package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/compose-network/recordstore/internal/errs"
)

// Format is the on-disk serialization of a record.
type Format int

const (
	// Auto means "infer from the filename".
	Auto Format = iota
	YAML
	JSON
)

func (f Format) String() string {
	switch f {
	case Auto:
		return "auto"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// extensions maps lower-case filename extensions to formats.
var extensions = map[string]Format{
	".yaml": YAML,
	".yml":  YAML,
	".json": JSON,
}

// Extensions returns the filename extensions recognised for f.
func Extensions(f Format) []string {
	var out []string
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if extensions[ext] == f {
			out = append(out, ext)
		}
	}
	return out
}

// ParseFormat parses a format name such as "yaml", "yml" or "json".
// The empty string parses as Auto.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return Auto, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	default:
		return Auto, errs.New(errs.UnsupportedFormat, "parse format", fmt.Sprintf("unknown format %q, use yaml or json", name))
	}
}

// For resolves the format of filename. An explicit format always wins, even
// when the extension names a different one; otherwise the extension decides.
func For(filename string, explicit Format) (Format, error) {
	if explicit != Auto {
		if _, ok := codecs[explicit]; !ok {
			return Auto, errs.New(errs.UnsupportedFormat, "resolve format", fmt.Sprintf("unknown format %s", explicit)).WithPath(filename)
		}
		return explicit, nil
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return Auto, errs.New(errs.UnsupportedFormat, "resolve format",
		fmt.Sprintf("unsupported file extension %q, use .yaml, .yml or .json or pass a format", ext)).WithPath(filename)
}
