package files

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/compose-network/recordstore"
	"github.com/compose-network/recordstore/internal/codec"
)

func printPaths(w io.Writer, store *recordstore.Store) error {
	_, err := fmt.Fprintf(w, "config: %s\ndata:   %s\n", store.ConfigDir(), store.DataDir())
	return err
}

// show prints filename in scope re-encoded as out. FormatAuto prints YAML.
func show(w io.Writer, store *recordstore.Store, scope recordstore.Scope, filename string, in, out recordstore.Format) error {
	tree, err := store.ReadTree(scope, filename, in)
	if err != nil {
		return err
	}
	if out == recordstore.FormatAuto {
		out = recordstore.FormatYAML
	}
	data, err := codec.EncodeTree(tree, out)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// convert re-encodes src as dst within scope and returns the new file's path.
// Both formats are resolved before anything is read.
func convert(store *recordstore.Store, scope recordstore.Scope, src, dst string, from, to recordstore.Format) (string, error) {
	if store.Path(scope, src) == store.Path(scope, dst) {
		return "", fmt.Errorf("source and destination are the same file: %s", store.Path(scope, src))
	}
	from, err := recordstore.FormatFor(src, from)
	if err != nil {
		return "", err
	}
	to, err = recordstore.FormatFor(dst, to)
	if err != nil {
		return "", err
	}
	slog.Debug("converting file", "scope", scope.String(), "src", src, "from", from.String(), "dst", dst, "to", to.String())

	tree, err := store.ReadTree(scope, src, from)
	if err != nil {
		return "", err
	}
	return store.WriteTree(scope, tree, dst, to)
}
