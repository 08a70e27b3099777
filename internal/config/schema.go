package config

// Config holds daihon configuration.
// Stored at: ~/.daihon/config.yaml
type Config struct {
	Providers map[string]ProviderCfg `mapstructure:"providers" yaml:"providers"`
	Defaults  DefaultsCfg            `mapstructure:"defaults" yaml:"defaults"`
	Sheets    SheetsCfg              `mapstructure:"sheets" yaml:"sheets"`
	Layout    LayoutCfg              `mapstructure:"layout" yaml:"layout"`
}

// ProviderCfg configures a drafting provider.
type ProviderCfg struct {
	Model       string  `mapstructure:"model" yaml:"model"`             // Model name
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`         // API key (supports ${ENV_VAR} syntax)
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"` // Sampling temperature
	Enabled     bool    `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections.
type DefaultsCfg struct {
	Provider string `mapstructure:"provider" yaml:"provider"` // Default drafting provider, "none" disables drafting
	Template string `mapstructure:"template" yaml:"template"` // Default narrative template
}

// SheetsCfg configures the spreadsheet backend.
type SheetsCfg struct {
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"` // Service-account JSON path
	SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`     // Default target, id or URL
}

// LayoutCfg configures the table layout engine.
type LayoutCfg struct {
	StartMinute int `mapstructure:"start_minute" yaml:"start_minute"` // First row's clock minute
	StartSecond int `mapstructure:"start_second" yaml:"start_second"` // First row's clock second
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Providers: map[string]ProviderCfg{
			"gemini": {
				Model:       "gemini-2.0-flash",
				APIKey:      "${GEMINI_API_KEY}",
				Temperature: 0.3,
				Enabled:     true,
			},
			"openai": {
				Model:       "gpt-4o-mini",
				APIKey:      "${OPENAI_API_KEY}",
				Temperature: 0.3,
				Enabled:     false,
			},
		},
		Defaults: DefaultsCfg{
			Provider: "gemini",
			Template: "flow",
		},
		Sheets: SheetsCfg{},
		Layout: LayoutCfg{
			StartMinute: 5,
			StartSecond: 30,
		},
	}
}

// ResolveAPIKey returns the resolved API key for a provider, expanding any
// ${ENV_VAR} reference.
func (c *Config) ResolveAPIKey(name string) string {
	p, ok := c.Providers[name]
	if !ok {
		return ""
	}
	return ResolveEnvVars(p.APIKey)
}
