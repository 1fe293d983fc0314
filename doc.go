// Package recordstore persists structured records, plain Go structs, as YAML
// or JSON files in the platform's configuration and data directories.
//
// A Store is created once per application run:
//
//	store, err := recordstore.New("myapp")
//	if err != nil {
//		return err
//	}
//	path, err := store.SaveConfig(settings, "settings.yaml")
//	...
//	loaded, err := recordstore.Load[Settings](store, recordstore.ScopeConfig, "settings.yaml")
//
// Directories follow the XDG base directory specification on Unix-like
// systems ($XDG_CONFIG_HOME/myapp, $XDG_DATA_HOME/myapp) and the native
// locations on macOS and Windows. WithConfigDir and WithDataDir override them.
//
// Record fields are named by their `mapstructure` tag. Defaults come from
// `default` tags and from a SetDefaults method, and apply to every field a
// file leaves out. Keys in a file that match no field are ignored.
//
// The format follows the filename extension (.yaml, .yml or .json) unless one
// is passed explicitly, in which case the explicit format always wins.
//
// Filenames are joined to the scope directory as given; they are trusted
// input and are not sandboxed against "..".
package recordstore
