package demo

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/compose-network/recordstore"
	"github.com/spf13/afero"
)

const rule = "------------------------------------------------------------"

// run saves and reloads the sample records through store, printing each step
// to w. fs must be the filesystem store was opened on. env stands in for the
// process environment in the overrides step.
func run(w io.Writer, fs afero.Fs, store *recordstore.Store, env map[string]string) error {
	p := &printer{w: w}
	cfg, data := store.Config(), store.Data()

	p.line("Config directory: %s", store.ConfigDir())
	p.line("Data directory:   %s", store.DataDir())
	p.line("")

	p.section("1. Working with YAML configuration")
	appConfig := AppConfig{Theme: "light", FontSize: 14, AutoSave: false}
	configPath, err := cfg.Save(appConfig, "settings.yaml")
	if err != nil {
		return err
	}
	loadedConfig, err := recordstore.Get[AppConfig](cfg, "settings.yaml")
	if err != nil {
		return err
	}
	p.line("Saved to:      %s", configPath)
	p.line("Loaded config: %+v", loadedConfig)
	p.line("")

	p.section("2. Working with JSON data")
	user := UserData{
		Username:    "john_doe",
		Email:       "john@example.com",
		Preferences: map[string]any{"notifications": true, "language": "en"},
	}
	dataPath, err := data.Save(user, "user.json")
	if err != nil {
		return err
	}
	loadedUser, err := recordstore.Get[UserData](data, "user.json")
	if err != nil {
		return err
	}
	p.line("Saved to:    %s", dataPath)
	p.line("Loaded data: %+v", loadedUser)
	p.line("")

	p.section("3. Checking file existence")
	p.line("settings.yaml exists: %t", cfg.Exists("settings.yaml"))
	p.line("user.json exists:     %t", data.Exists("user.json"))
	p.line("missing.yaml exists:  %t", cfg.Exists("missing.yaml"))
	p.line("")

	p.section("4. File contents")
	for _, path := range []string{configPath, dataPath} {
		raw, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		p.line("%s:\n%s", path, raw)
	}

	p.section("5. Environment variable overrides")
	envStore, err := recordstore.New(store.AppName(),
		recordstore.WithFs(fs),
		recordstore.WithConfigDir(store.ConfigDir()),
		recordstore.WithDataDir(store.DataDir()),
		recordstore.WithEnvVars(),
		recordstore.WithEnvLookup(func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}),
	)
	if err != nil {
		return err
	}
	defaults := AppConfigWithDatabase{
		AppName:  "MyApp",
		Database: DatabaseConfig{Host: "localhost", Port: 5432, Database: "myapp", Username: "user"},
		APIKey:   "default-key",
	}
	if _, err := envStore.SaveConfig(defaults, "app_config.yaml"); err != nil {
		return err
	}
	merged, err := recordstore.Get[AppConfigWithDatabase](envStore.Config(), "app_config.yaml")
	if err != nil {
		return err
	}
	prefix := recordstore.EnvPrefix(store.AppName())
	p.line("app_name:          %s (from file)", merged.AppName)
	p.line("debug:             %t (from env: %sDEBUG)", merged.Debug, prefix)
	p.line("database.host:     %s (from env: %sDATABASE_HOST)", merged.Database.Host, prefix)
	p.line("database.port:     %d (from env: %sDATABASE_PORT)", merged.Database.Port, prefix)
	p.line("database.database: %s (from file)", merged.Database.Database)
	p.line("api_key:           %s (from env: %sSECRET_API_KEY)", merged.APIKey, prefix)

	slog.Debug("demo completed", "config_dir", store.ConfigDir(), "data_dir", store.DataDir())
	return p.err
}

// SampleEnv returns the override variables the demo feeds to the env step.
func SampleEnv(appName string) map[string]string {
	prefix := recordstore.EnvPrefix(appName)
	return map[string]string{
		prefix + "DATABASE_HOST":  "prod.example.com",
		prefix + "DATABASE_PORT":  "3306",
		prefix + "DEBUG":          "true",
		prefix + "SECRET_API_KEY": "secret-key-from-env",
	}
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(title string) {
	p.line("%s", title)
	p.line("%s", rule)
}
