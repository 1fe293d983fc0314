package recordstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type appSettings struct {
	Theme          string `mapstructure:"theme" default:"dark"`
	FontSize       int    `mapstructure:"font_size" default:"12"`
	AutoSave       bool   `mapstructure:"auto_save" default:"true"`
	MaxRecentFiles int    `mapstructure:"max_recent_files" default:"10"`
}

type databaseConfig struct {
	Host     string `mapstructure:"host" default:"localhost"`
	Port     int    `mapstructure:"port" default:"5432"`
	Database string `mapstructure:"database" default:"myapp"`
}

type serviceConfig struct {
	AppName  string            `mapstructure:"app_name" default:"MyApp"`
	Debug    bool              `mapstructure:"debug"`
	Database databaseConfig    `mapstructure:"database"`
	Replica  *databaseConfig   `mapstructure:"replica"`
	APIKey   string            `mapstructure:"api_key" env:"SECRET_API_KEY"`
	Timeout  time.Duration     `mapstructure:"timeout" default:"15s"`
	Tags     []string          `mapstructure:"tags"`
	Limits   map[string]int    `mapstructure:"limits"`
	Labels   map[string]string `mapstructure:"labels"`
	Ratio    float64           `mapstructure:"ratio"`
}

type userData struct {
	Username string   `mapstructure:"username" default:"user"`
	Email    string   `mapstructure:"email" default:"user@example.com"`
	Score    int      `mapstructure:"score"`
	Recent   []string `mapstructure:"recent"`
}

type fixedProvider struct{}

func (fixedProvider) ConfigDir(appName string) string { return filepath.Join("/xdg/config", appName) }
func (fixedProvider) DataDir(appName string) string   { return filepath.Join("/xdg/data", appName) }

func newMemStore(t *testing.T, opts ...Option) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	base := []Option{WithFs(fs), WithConfigDir("/cfg"), WithDataDir("/data"), WithEnvLookup(noEnv)}
	s, err := New("testapp", append(base, opts...)...)
	require.NoError(t, err)
	return s, fs
}

func noEnv(string) (string, bool) { return "", false }

func envOf(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestNewWithDirectoryOverrides(t *testing.T) {
	root := t.TempDir()
	configDir := filepath.Join(root, "nested", "config")
	dataDir := filepath.Join(root, "nested", "data")

	s, err := New("testapp", WithConfigDir(configDir), WithDataDir(dataDir), WithProvider(fixedProvider{}))
	require.NoError(t, err)

	assert.Equal(t, "testapp", s.AppName())
	assert.Equal(t, configDir, s.ConfigDir())
	assert.Equal(t, dataDir, s.DataDir())
	assert.DirExists(t, configDir)
	assert.DirExists(t, dataDir)
}

func TestNewUsesProvider(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := New("testapp", WithFs(fs), WithProvider(fixedProvider{}))
	require.NoError(t, err)

	assert.Equal(t, "/xdg/config/testapp", s.ConfigDir())
	assert.Equal(t, "/xdg/data/testapp", s.DataDir())
	for _, dir := range []string{s.ConfigDir(), s.DataDir()} {
		ok, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}
}

func TestNewEmptyAppName(t *testing.T) {
	_, err := New("", WithFs(afero.NewMemMapFs()))
	assert.ErrorIs(t, err, ErrInvalidAppName)
}

func TestNewDirectoryCreationError(t *testing.T) {
	_, err := New("testapp", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())), WithConfigDir("/cfg"), WithDataDir("/data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryCreation)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "/cfg", e.Path)
}

func TestRoundTrip(t *testing.T) {
	in := serviceConfig{
		AppName:  "svc",
		Debug:    true,
		Database: databaseConfig{Host: "db.internal", Port: 6543, Database: "prod"},
		Replica:  &databaseConfig{Host: "replica", Port: 1, Database: "ro"},
		APIKey:   "k",
		Timeout:  2 * time.Minute,
		Tags:     []string{"a", "b"},
		Limits:   map[string]int{"cpu": 2, "mem": 512},
		Labels:   map[string]string{"team": "core"},
		Ratio:    0.75,
	}

	for _, filename := range []string{"svc.yaml", "svc.yml", "svc.json"} {
		t.Run(filename, func(t *testing.T) {
			s, _ := newMemStore(t)

			_, err := s.SaveConfig(in, filename)
			require.NoError(t, err)

			out, err := Load[serviceConfig](s, ScopeConfig, filename)
			require.NoError(t, err)
			if diff := cmp.Diff(in, out); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSaveReturnsPathAndWritesFormat(t *testing.T) {
	s, fs := newMemStore(t)

	path, err := s.SaveConfig(appSettings{Theme: "light", FontSize: 14}, "settings.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/cfg/settings.yaml", path)

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	var asYAML map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &asYAML))
	assert.Equal(t, "light", asYAML["theme"])

	path, err = s.SaveData(appSettings{Theme: "light"}, "settings.json")
	require.NoError(t, err)
	assert.Equal(t, "/data/settings.json", path)

	raw, err = afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw), string(raw))
}

func TestSaveOverwrites(t *testing.T) {
	s, _ := newMemStore(t)

	_, err := s.SaveConfig(appSettings{Theme: "first"}, "settings.yaml")
	require.NoError(t, err)
	_, err = s.SaveConfig(appSettings{Theme: "second"}, "settings.yaml")
	require.NoError(t, err)

	var got appSettings
	require.NoError(t, s.LoadConfig(&got, "settings.yaml"))
	assert.Equal(t, "second", got.Theme)
}

func TestFormatInference(t *testing.T) {
	s, fs := newMemStore(t)

	_, err := s.SaveConfig(appSettings{}, "config.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "config.txt")
	assert.False(t, s.ConfigFileExists("config.txt"))

	path, err := s.SaveConfig(appSettings{Theme: "txt"}, "config.txt", FormatYAML)
	require.NoError(t, err)
	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "theme: txt")

	var got appSettings
	err = s.LoadConfig(&got, "config.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	require.NoError(t, s.LoadConfig(&got, "config.txt", FormatYAML))
	assert.Equal(t, "txt", got.Theme)
}

func TestExplicitFormatOverridesExtension(t *testing.T) {
	s, fs := newMemStore(t)

	path, err := s.SaveConfig(appSettings{Theme: "yaml-in-json"}, "x.json", FormatYAML)
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.False(t, json.Valid(raw))
	assert.Contains(t, string(raw), "theme: yaml-in-json")

	var got appSettings
	require.NoError(t, s.LoadConfig(&got, "x.json", FormatYAML))
	assert.Equal(t, "yaml-in-json", got.Theme)
}

func TestScopeIsolation(t *testing.T) {
	s, fs := newMemStore(t)

	configPath, err := s.SaveConfig(appSettings{Theme: "config"}, "f.json")
	require.NoError(t, err)
	assert.True(t, s.ConfigFileExists("f.json"))
	assert.False(t, s.DataFileExists("f.json"))

	dataPath, err := s.SaveData(appSettings{Theme: "data"}, "f.json")
	require.NoError(t, err)
	assert.NotEqual(t, configPath, dataPath)
	assert.True(t, s.DataFileExists("f.json"))

	for path, theme := range map[string]string{configPath: "config", dataPath: "data"} {
		raw, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), theme)
	}

	var cfg, data appSettings
	require.NoError(t, s.LoadConfig(&cfg, "f.json"))
	require.NoError(t, s.LoadData(&data, "f.json"))
	assert.Equal(t, "config", cfg.Theme)
	assert.Equal(t, "data", data.Theme)
}

func TestSaveRejectsNonRecords(t *testing.T) {
	s, _ := newMemStore(t)

	for name, v := range map[string]any{
		"int":         42,
		"map":         map[string]any{"theme": "dark"},
		"nil":         nil,
		"nil pointer": (*appSettings)(nil),
		"string":      "text",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.SaveConfig(v, "bad.yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.False(t, s.ConfigFileExists("bad.yaml"))
		})
	}
}

func TestLoadRejectsNonRecordBeforeFileAccess(t *testing.T) {
	s, _ := newMemStore(t)

	var m map[string]any
	err := s.LoadConfig(&m, "missing.yaml")
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.False(t, errors.Is(err, ErrNotFound))

	err = s.LoadConfig(appSettings{}, "missing.yaml")
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Load[int](s, ScopeConfig, "missing.yaml")
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestLoadMissingFile(t *testing.T) {
	s, _ := newMemStore(t)

	var got appSettings
	err := s.LoadConfig(&got, "missing.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "/cfg/missing.yaml")
}

func TestLoadMalformedFile(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/data/broken.json", []byte(`{"username": `), 0o644))

	var got userData
	err := s.LoadData(&got, "broken.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "/data/broken.json", e.Path)
	assert.Equal(t, "json", e.Format)
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/partial.yaml", []byte("theme: light\n"), 0o644))

	got, err := Load[appSettings](s, ScopeConfig, "partial.yaml")
	require.NoError(t, err)
	assert.Equal(t, appSettings{Theme: "light", FontSize: 12, AutoSave: true, MaxRecentFiles: 10}, got)
}

func TestLoadEmptyYAMLFile(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/empty.yaml", nil, 0o644))

	got, err := Load[*appSettings](s, ScopeConfig, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, &appSettings{Theme: "dark", FontSize: 12, AutoSave: true, MaxRecentFiles: 10}, got)
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	s, fs := newMemStore(t)
	doc := `{"username": "alice", "score": 3, "legacy_field": [1, 2], "extra": {"nested": true}}`
	require.NoError(t, afero.WriteFile(fs, "/data/user.json", []byte(doc), 0o644))

	got, err := Load[userData](s, ScopeData, "user.json")
	require.NoError(t, err)
	assert.Equal(t, userData{Username: "alice", Email: "user@example.com", Score: 3}, got)
}

func TestLoadNativeNumberConversion(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/svc.json", []byte(`{"ratio": 2, "database": {"port": 7000}}`), 0o644))

	got, err := Load[serviceConfig](s, ScopeConfig, "svc.json")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Ratio)
	assert.Equal(t, 7000, got.Database.Port)
}

func TestLoadTypeMismatchIsSerializationError(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/bad.yaml", []byte("font_size: huge\n"), 0o644))

	_, err := Load[appSettings](s, ScopeConfig, "bad.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Contains(t, err.Error(), "/cfg/bad.yaml")
}

func TestSaveEncodeFailureWritesNothing(t *testing.T) {
	type withFunc struct {
		Name string `mapstructure:"name"`
		Hook func() `mapstructure:"hook"`
	}
	s, _ := newMemStore(t)

	_, err := s.SaveData(withFunc{Name: "x", Hook: func() {}}, "hook.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSerialization)
	assert.False(t, s.DataFileExists("hook.json"))
}

func TestSaveCreatesSubdirectories(t *testing.T) {
	s, fs := newMemStore(t)

	path, err := s.SaveData(userData{Username: "bob"}, "users/bob.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/data/users/bob.yaml", path)

	ok, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, s.DataFileExists("users/bob.yaml"))
}

func TestSaveWriteFailure(t *testing.T) {
	root := t.TempDir()
	s, err := New("testapp", WithConfigDir(filepath.Join(root, "cfg")), WithDataDir(filepath.Join(root, "data")))
	require.NoError(t, err)

	// A directory where the file should go makes the write itself fail.
	require.NoError(t, os.MkdirAll(s.Path(ScopeConfig, "settings.yaml"), 0o755))

	_, err = s.SaveConfig(appSettings{}, "settings.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
}

func TestExistsNeverFails(t *testing.T) {
	s, fs := newMemStore(t)

	assert.False(t, s.ConfigFileExists("missing.yaml"))
	assert.False(t, s.DataFileExists("missing.yaml"))

	require.NoError(t, afero.WriteFile(fs, "/cfg/garbage.yaml", []byte(":::: not yaml"), 0o644))
	assert.True(t, s.ConfigFileExists("garbage.yaml"))
}

func TestInvalidScope(t *testing.T) {
	s, _ := newMemStore(t)

	_, err := s.Save(Scope(7), appSettings{}, "x.yaml")
	assert.ErrorIs(t, err, ErrInvalidScope)

	var got appSettings
	assert.ErrorIs(t, s.Load(Scope(7), &got, "x.yaml"), ErrInvalidScope)
}

func TestPath(t *testing.T) {
	s, _ := newMemStore(t)
	assert.Equal(t, "/cfg/a.yaml", s.Path(ScopeConfig, "a.yaml"))
	assert.Equal(t, "/data/b.json", s.Path(ScopeData, "b.json"))
	assert.Equal(t, "/cfg", s.Dir(ScopeConfig))
	assert.Equal(t, "/data", s.Dir(ScopeData))
}

func TestStoreLogsOperations(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, _ := newMemStore(t, WithLogger(log))

	_, err := s.SaveConfig(appSettings{}, "settings.yaml")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"record saved"`)
	assert.Contains(t, out, `"path":"/cfg/settings.yaml"`)
	assert.Contains(t, out, `"app":"testapp"`)
}

func TestEnvOverridesDisabledByDefault(t *testing.T) {
	s, _ := newMemStore(t, WithEnvLookup(envOf(map[string]string{"TESTAPP_THEME": "from-env"})))

	_, err := s.SaveConfig(appSettings{Theme: "from-file"}, "test.yaml")
	require.NoError(t, err)

	got, err := Load[appSettings](s, ScopeConfig, "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-file", got.Theme)
}

func TestEnvOverridesTakePrecedence(t *testing.T) {
	env := envOf(map[string]string{
		"TESTAPP_THEME":     "from-env",
		"TESTAPP_FONT_SIZE": "99",
	})
	s, _ := newMemStore(t, WithEnvVars(), WithEnvLookup(env))

	_, err := s.SaveConfig(appSettings{Theme: "from-file", FontSize: 42, MaxRecentFiles: 3}, "test.yaml")
	require.NoError(t, err)

	got, err := Load[appSettings](s, ScopeConfig, "test.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got.Theme)
	assert.Equal(t, 99, got.FontSize)
	assert.Equal(t, 3, got.MaxRecentFiles)
}

func TestEnvOverridesNestedAndCustomNames(t *testing.T) {
	env := envOf(map[string]string{
		"TESTAPP_DATABASE_HOST":  "db.example.com",
		"TESTAPP_APP_NAME":       "from-env",
		"TESTAPP_SECRET_API_KEY": "s3cr3t",
		"TESTAPP_TAGS":           `["x", "y"]`,
		"TESTAPP_TIMEOUT":        "1m",
	})
	s, _ := newMemStore(t, WithEnvVars(), WithEnvLookup(env))

	_, err := s.SaveConfig(serviceConfig{AppName: "from-file", Database: databaseConfig{Host: "localhost", Port: 5432}}, "svc.yaml")
	require.NoError(t, err)

	got, err := Load[serviceConfig](s, ScopeConfig, "svc.yaml")
	require.NoError(t, err)
	assert.Equal(t, "db.example.com", got.Database.Host)
	assert.Equal(t, 5432, got.Database.Port)
	assert.Equal(t, "from-env", got.AppName)
	assert.Equal(t, "s3cr3t", got.APIKey)
	assert.Equal(t, []string{"x", "y"}, got.Tags)
	assert.Equal(t, time.Minute, got.Timeout)
}

func TestEnvOverridesInstantiateNilNestedRecord(t *testing.T) {
	env := envOf(map[string]string{
		"TESTAPP_REPLICA_HOST": "replica.example.com",
		"TESTAPP_DEBUG":        "on",
	})
	s, _ := newMemStore(t, WithEnvVars(), WithEnvLookup(env))

	_, err := s.SaveConfig(serviceConfig{}, "svc.yaml")
	require.NoError(t, err)

	got, err := Load[serviceConfig](s, ScopeConfig, "svc.yaml")
	require.NoError(t, err)
	require.NotNil(t, got.Replica)
	assert.Equal(t, databaseConfig{Host: "replica.example.com", Port: 5432, Database: "myapp"}, *got.Replica)
	assert.True(t, got.Debug)
}

func TestEnvOverridesWithoutFile(t *testing.T) {
	s, _ := newMemStore(t, WithEnvVars(), WithEnvLookup(envOf(map[string]string{"TESTAPP_THEME": "from-env"})))

	got, err := Load[appSettings](s, ScopeConfig, "nonexistent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "from-env", got.Theme)
	assert.Equal(t, 12, got.FontSize)
}

func TestEnvOverridesCustomPrefix(t *testing.T) {
	s, _ := newMemStore(t, WithEnvPrefix("CUSTOM_"), WithEnvLookup(envOf(map[string]string{
		"CUSTOM_THEME":  "custom",
		"TESTAPP_THEME": "ignored",
	})))

	got, err := Load[appSettings](s, ScopeConfig, "nonexistent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "custom", got.Theme)
}

func TestEnvOverridesConversionError(t *testing.T) {
	s, _ := newMemStore(t, WithEnvVars(), WithEnvLookup(envOf(map[string]string{"TESTAPP_FONT_SIZE": "big"})))

	_, err := Load[appSettings](s, ScopeConfig, "nonexistent.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvVar)
	assert.True(t, strings.Contains(err.Error(), "TESTAPP_FONT_SIZE"), err.Error())
}

func TestEnvPrefix(t *testing.T) {
	assert.Equal(t, "DOCKER_CAPTAIN_", EnvPrefix("docker-captain"))
}

func TestParseScope(t *testing.T) {
	for name, want := range map[string]Scope{"config": ScopeConfig, "DATA": ScopeData, " data ": ScopeData} {
		got, err := ParseScope(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseScope("cache")
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestReadTreeWriteTree(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/in.yaml", []byte("theme: light\nextra:\n  - 1\n  - 2\n"), 0o644))

	tree, err := s.ReadTree(ScopeConfig, "in.yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "light", "extra": []any{1, 2}}, tree)

	path, err := s.WriteTree(ScopeData, tree, "out.json")
	require.NoError(t, err)
	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme": "light", "extra": [1, 2]}`, string(raw))

	// No defaults are applied to raw trees.
	back, err := s.ReadTree(ScopeData, "out.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "light", "extra": []any{int64(1), int64(2)}}, back)

	_, err = s.ReadTree(ScopeConfig, "missing.yaml")
	assert.ErrorIs(t, err, ErrNotFound)
}

type teamConfig struct {
	Name   string            `mapstructure:"name"`
	Labels map[string]string `mapstructure:"labels"`
}

func (c *teamConfig) SetDefaults() {
	c.Labels = map[string]string{"env": "dev", "team": "core"}
}

func TestRoundTripKeepsSavedMapOverDefaults(t *testing.T) {
	in := teamConfig{Name: "svc", Labels: map[string]string{"owner": "alice"}}

	for _, filename := range []string{"team.yaml", "team.json"} {
		t.Run(filename, func(t *testing.T) {
			s, _ := newMemStore(t)

			_, err := s.SaveConfig(in, filename)
			require.NoError(t, err)

			out, err := Load[teamConfig](s, ScopeConfig, filename)
			require.NoError(t, err)
			if diff := cmp.Diff(in, out); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingMapUsesDefault(t *testing.T) {
	s, fs := newMemStore(t)
	require.NoError(t, afero.WriteFile(fs, "/cfg/team.yaml", []byte("name: svc\n"), 0o644))

	out, err := Load[teamConfig](s, ScopeConfig, "team.yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "dev", "team": "core"}, out.Labels)
}

type counters struct {
	Big    uint64 `mapstructure:"big"`
	Signed int64  `mapstructure:"signed"`
}

func TestRoundTripLargeUnsignedIntegers(t *testing.T) {
	in := counters{Big: math.MaxUint64, Signed: math.MinInt64}

	for _, filename := range []string{"counters.yaml", "counters.json"} {
		t.Run(filename, func(t *testing.T) {
			s, _ := newMemStore(t)

			_, err := s.SaveData(in, filename)
			require.NoError(t, err)

			out, err := Load[counters](s, ScopeData, filename)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("settings.YML", FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("settings.yaml", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = FormatFor("settings.ini", FormatAuto)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
