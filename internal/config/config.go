package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Env             string `mapstructure:"ENV"`
	Port            string `mapstructure:"PORT"`
	AdminKey        string `mapstructure:"ADMIN_KEY"`
	CORSAllowed     string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	SolverBaseURL   string `mapstructure:"SOLVER_BASE_URL"`
	RosterEndpoint  string `mapstructure:"ROSTER_ENDPOINT"`
	SolverTimeoutMS int    `mapstructure:"ROSTER_REQUEST_TIMEOUT_MS"`
	StatePath       string `mapstructure:"STATE_PATH"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	SaveDebounceMS  int    `mapstructure:"SAVE_DEBOUNCE_MS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("ROSTER_ENDPOINT", "/generate_roster")
	v.SetDefault("ROSTER_REQUEST_TIMEOUT_MS", 150000)
	v.SetDefault("STATE_PATH", "scheduler-state.json")
	v.SetDefault("SAVE_DEBOUNCE_MS", 300)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
