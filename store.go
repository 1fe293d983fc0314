package recordstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/compose-network/recordstore/internal/codec"
	"github.com/compose-network/recordstore/internal/envvars"
	"github.com/compose-network/recordstore/internal/errs"
	"github.com/compose-network/recordstore/internal/logger"
	"github.com/compose-network/recordstore/internal/paths"
	"github.com/compose-network/recordstore/internal/record"
	"github.com/spf13/afero"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Scope selects the directory a filename is resolved against.
type Scope int

const (
	ScopeConfig Scope = iota
	ScopeData
)

// ParseScope parses "config" or "data".
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "config":
		return ScopeConfig, nil
	case "data":
		return ScopeData, nil
	default:
		return 0, errs.New(errs.InvalidScope, "parse scope", fmt.Sprintf("unknown scope %q, use config or data", name))
	}
}

func (s Scope) String() string {
	switch s {
	case ScopeConfig:
		return "config"
	case ScopeData:
		return "data"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Store saves and loads records under an application's config and data
// directories.
//
// A Store holds no mutable state and caches nothing: every call reads or
// writes the filesystem. It does no locking either. Two concurrent saves of
// the same file are two whole-file overwrites and the last one wins; callers
// that share files across goroutines or processes must coordinate
// themselves.
type Store struct {
	appName   string
	configDir string
	dataDir   string
	fs        afero.Fs
	log       *slog.Logger

	envEnabled bool
	envPrefix  string
	envLookup  envvars.Lookup
}

// New resolves the application's directories, creating them when missing.
func New(appName string, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	resolver := &paths.Resolver{Provider: o.provider, Fs: o.fs}
	dirs, err := resolver.Resolve(appName, o.configDir, o.dataDir)
	if err != nil {
		return nil, err
	}

	log := o.logger
	if log == nil {
		log = logger.Named("recordstore")
	}
	prefix := o.envPrefix
	if o.envEnabled && prefix == "" {
		prefix = envvars.Prefix(appName)
	}

	s := &Store{
		appName:    appName,
		configDir:  dirs.Config,
		dataDir:    dirs.Data,
		fs:         o.fs,
		log:        log.With("app", appName),
		envEnabled: o.envEnabled,
		envPrefix:  prefix,
		envLookup:  o.envLookup,
	}
	s.log.Debug("store initialised", "config_dir", s.configDir, "data_dir", s.dataDir, "env_overrides", s.envEnabled)
	return s, nil
}

func (s *Store) AppName() string   { return s.appName }
func (s *Store) ConfigDir() string { return s.configDir }
func (s *Store) DataDir() string   { return s.dataDir }

// Dir returns the directory of scope.
func (s *Store) Dir(scope Scope) string {
	if scope == ScopeData {
		return s.dataDir
	}
	return s.configDir
}

// Path returns where filename lives in scope. The file need not exist.
func (s *Store) Path(scope Scope, filename string) string {
	return filepath.Join(s.Dir(scope), filename)
}

// Save writes v, a struct or non-nil pointer to one, to filename in scope and
// returns the file path. The record is fully encoded before the file is
// touched; an existing file is overwritten.
func (s *Store) Save(scope Scope, v any, filename string, format ...Format) (string, error) {
	op := "save " + scope.String()
	if err := checkScope(op, scope); err != nil {
		return "", err
	}
	if err := record.CheckValue(v); err != nil {
		return "", annotate(err, op, "", "")
	}

	path := s.Path(scope, filename)
	f, err := codec.For(filename, pick(format))
	if err != nil {
		return "", annotate(err, op, path, "")
	}
	data, err := codec.Encode(v, f)
	if err != nil {
		return "", annotate(err, op, path, f.String())
	}

	if err := s.write(op, path, f, data); err != nil {
		return "", err
	}

	s.log.Debug("record saved", "scope", scope.String(), "path", path, "format", f.String())
	return path, nil
}

// Load reads filename in scope into target, a non-nil pointer to a struct.
// Fields the file omits keep their declared defaults. A missing file fails
// with ErrNotFound unless environment overrides are enabled, in which case
// defaults and overrides alone are used.
func (s *Store) Load(scope Scope, target any, filename string, format ...Format) error {
	op := "load " + scope.String()
	if err := checkScope(op, scope); err != nil {
		return err
	}
	if err := record.CheckTarget(target); err != nil {
		return annotate(err, op, "", "")
	}

	path := s.Path(scope, filename)
	f, err := codec.For(filename, pick(format))
	if err != nil {
		return annotate(err, op, path, "")
	}

	tree, err := s.readTree(op, path, f, s.envEnabled)
	if err != nil {
		return err
	}
	if s.envEnabled {
		if tree, err = s.applyEnv(reflect.TypeOf(target), tree); err != nil {
			return annotate(err, op, path, f.String())
		}
	}
	if err := record.Populate(tree, target); err != nil {
		return annotate(err, op, path, f.String())
	}

	s.log.Debug("record loaded", "scope", scope.String(), "path", path, "format", f.String())
	return nil
}

// readTree reads and parses path. With allowMissing a missing file reads as
// an empty mapping.
func (s *Store) readTree(op, path string, f Format, allowMissing bool) (map[string]any, error) {
	data, err := afero.ReadFile(s.fs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if allowMissing {
			s.log.Debug("file missing, using defaults and environment", "path", path)
			return map[string]any{}, nil
		}
		return nil, errs.Wrap(errs.NotFound, op, err).WithPath(path).WithFormat(f.String())
	case err != nil:
		return nil, errs.Wrap(errs.IO, op, fmt.Errorf("failed to read file: %w", err)).WithPath(path).WithFormat(f.String())
	}

	tree, err := codec.ParseTree(data, f)
	if err != nil {
		return nil, annotate(err, op, path, f.String())
	}
	return tree, nil
}

func (s *Store) applyEnv(t reflect.Type, tree map[string]any) (map[string]any, error) {
	env, err := envvars.Load(t, s.envPrefix, s.envLookup)
	if err != nil {
		return nil, err
	}
	if len(env) == 0 {
		return tree, nil
	}
	return envvars.Overlay(t, tree, env)
}

// ReadTree parses filename in scope into a generic mapping without applying
// defaults or environment overrides.
func (s *Store) ReadTree(scope Scope, filename string, format ...Format) (map[string]any, error) {
	op := "read " + scope.String()
	if err := checkScope(op, scope); err != nil {
		return nil, err
	}
	path := s.Path(scope, filename)
	f, err := codec.For(filename, pick(format))
	if err != nil {
		return nil, annotate(err, op, path, "")
	}
	return s.readTree(op, path, f, false)
}

// WriteTree writes a generic mapping, as returned by ReadTree, to filename in
// scope and returns the file path.
func (s *Store) WriteTree(scope Scope, tree map[string]any, filename string, format ...Format) (string, error) {
	op := "write " + scope.String()
	if err := checkScope(op, scope); err != nil {
		return "", err
	}
	path := s.Path(scope, filename)
	f, err := codec.For(filename, pick(format))
	if err != nil {
		return "", annotate(err, op, path, "")
	}
	data, err := codec.EncodeTree(tree, f)
	if err != nil {
		return "", annotate(err, op, path, f.String())
	}
	if err := s.write(op, path, f, data); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Store) write(op, path string, f Format, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errs.Wrap(errs.DirectoryCreation, op, fmt.Errorf("failed to create directory: %w", err)).WithPath(filepath.Dir(path))
	}
	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return errs.Wrap(errs.IO, op, fmt.Errorf("failed to write file: %w", err)).WithPath(path).WithFormat(f.String())
	}
	s.log.Debug("file written", "path", path, "format", f.String(), "bytes", len(data))
	return nil
}

// Exists reports whether filename exists in scope. It never parses the file
// and reports false rather than failing.
func (s *Store) Exists(scope Scope, filename string) bool {
	ok, err := afero.Exists(s.fs, s.Path(scope, filename))
	return ok && err == nil
}

func (s *Store) SaveConfig(v any, filename string, format ...Format) (string, error) {
	return s.Save(ScopeConfig, v, filename, format...)
}

func (s *Store) LoadConfig(target any, filename string, format ...Format) error {
	return s.Load(ScopeConfig, target, filename, format...)
}

func (s *Store) SaveData(v any, filename string, format ...Format) (string, error) {
	return s.Save(ScopeData, v, filename, format...)
}

func (s *Store) LoadData(target any, filename string, format ...Format) error {
	return s.Load(ScopeData, target, filename, format...)
}

func (s *Store) ConfigFileExists(filename string) bool {
	return s.Exists(ScopeConfig, filename)
}

func (s *Store) DataFileExists(filename string) bool {
	return s.Exists(ScopeData, filename)
}

// Load reads filename in scope into a new T, which must be a struct or a
// pointer to one. The type is checked before the file is read.
func Load[T any](s *Store, scope Scope, filename string, format ...Format) (T, error) {
	var zero T
	target, result, err := codec.NewTarget[T]()
	if err != nil {
		return zero, annotate(err, "load "+scope.String(), "", "")
	}
	if err := s.Load(scope, target, filename, format...); err != nil {
		return zero, err
	}
	return result(), nil
}

func checkScope(op string, scope Scope) error {
	if scope != ScopeConfig && scope != ScopeData {
		return errs.New(errs.InvalidScope, op, fmt.Sprintf("unknown %s", scope))
	}
	return nil
}

// pick returns the first explicit format, or FormatAuto.
func pick(format []Format) Format {
	if len(format) == 0 {
		return FormatAuto
	}
	return format[0]
}

// annotate fills in the operation, path and format of an *Error that does
// not carry them yet.
func annotate(err error, op, path, format string) error {
	var e *errs.Error
	if !errors.As(err, &e) {
		return err
	}
	e.Op = op
	if e.Path == "" {
		e.Path = path
	}
	if e.Format == "" {
		e.Format = format
	}
	return err
}
