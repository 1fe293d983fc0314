package recordstore

import "github.com/compose-network/recordstore/internal/codec"

// Format selects YAML or JSON. FormatAuto infers it from the filename.
type Format = codec.Format

const (
	FormatAuto = codec.Auto
	FormatYAML = codec.YAML
	FormatJSON = codec.JSON
)

// ParseFormat parses "yaml", "yml" or "json", case-insensitively. The empty
// string yields FormatAuto.
func ParseFormat(name string) (Format, error) {
	return codec.ParseFormat(name)
}

// FormatFor returns the format used for filename, honouring explicit when it
// is not FormatAuto.
func FormatFor(filename string, explicit Format) (Format, error) {
	return codec.For(filename, explicit)
}
