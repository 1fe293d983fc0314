package demo

type (
	AppConfig struct {
		Theme          string `mapstructure:"theme" default:"dark"`
		FontSize       int    `mapstructure:"font_size" default:"12"`
		AutoSave       bool   `mapstructure:"auto_save" default:"true"`
		MaxRecentFiles int    `mapstructure:"max_recent_files" default:"10"`
	}

	DatabaseConfig struct {
		Host     string `mapstructure:"host" default:"localhost"`
		Port     int    `mapstructure:"port" default:"5432"`
		Database string `mapstructure:"database" default:"myapp"`
		Username string `mapstructure:"username" default:"user"`
	}

	AppConfigWithDatabase struct {
		AppName  string         `mapstructure:"app_name" default:"MyApp"`
		Debug    bool           `mapstructure:"debug"`
		Database DatabaseConfig `mapstructure:"database"`
		APIKey   string         `mapstructure:"api_key" env:"SECRET_API_KEY"`
	}

	UserData struct {
		Username    string         `mapstructure:"username" default:"user"`
		Email       string         `mapstructure:"email" default:"user@example.com"`
		Preferences map[string]any `mapstructure:"preferences"`
	}
)
