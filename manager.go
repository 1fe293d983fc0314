package recordstore

const (
	// DefaultConfigFile is the filename a config Manager uses when none is given.
	DefaultConfigFile = "config.yaml"
	// DefaultDataFile is the filename a data Manager uses when none is given.
	DefaultDataFile = "data.yaml"
)

// Manager is a view of a Store bound to one scope and a default filename.
// An empty filename argument means the default.
type Manager struct {
	store       *Store
	scope       Scope
	defaultFile string
}

// NewConfigManager creates a Store for appName and returns its config view.
func NewConfigManager(appName string, opts ...Option) (*Manager, error) {
	s, err := New(appName, opts...)
	if err != nil {
		return nil, err
	}
	return s.Config(), nil
}

// NewDataManager creates a Store for appName and returns its data view.
func NewDataManager(appName string, opts ...Option) (*Manager, error) {
	s, err := New(appName, opts...)
	if err != nil {
		return nil, err
	}
	return s.Data(), nil
}

// Config returns a Manager for the config scope, defaulting to config.yaml.
func (s *Store) Config() *Manager {
	return &Manager{store: s, scope: ScopeConfig, defaultFile: DefaultConfigFile}
}

// Data returns a Manager for the data scope, defaulting to data.yaml.
func (s *Store) Data() *Manager {
	return &Manager{store: s, scope: ScopeData, defaultFile: DefaultDataFile}
}

// WithDefaultFile returns a copy of m using filename as its default.
func (m *Manager) WithDefaultFile(filename string) *Manager {
	c := *m
	c.defaultFile = filename
	return &c
}

func (m *Manager) Store() *Store       { return m.store }
func (m *Manager) Scope() Scope        { return m.scope }
func (m *Manager) Dir() string         { return m.store.Dir(m.scope) }
func (m *Manager) DefaultFile() string { return m.defaultFile }

func (m *Manager) filename(name string) string {
	if name == "" {
		return m.defaultFile
	}
	return name
}

// Save writes v to filename, or to the default file, and returns its path.
func (m *Manager) Save(v any, filename string, format ...Format) (string, error) {
	return m.store.Save(m.scope, v, m.filename(filename), format...)
}

// Load reads filename, or the default file, into target.
func (m *Manager) Load(target any, filename string, format ...Format) error {
	return m.store.Load(m.scope, target, m.filename(filename), format...)
}

// Exists reports whether filename, or the default file, exists.
func (m *Manager) Exists(filename string) bool {
	return m.store.Exists(m.scope, m.filename(filename))
}

// Path returns the path of filename, or of the default file.
func (m *Manager) Path(filename string) string {
	return m.store.Path(m.scope, m.filename(filename))
}

// Get reads filename, or the manager's default file, into a new T.
func Get[T any](m *Manager, filename string, format ...Format) (T, error) {
	return Load[T](m.store, m.scope, m.filename(filename), format...)
}
