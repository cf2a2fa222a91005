package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log      LogConfig
	Academic AcademicConfig
	Export   ExportConfig
	Metrics  MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// AcademicConfig identifies the term the timetable is being built for.
type AcademicConfig struct {
	Year     string
	Semester string
}

// ExportConfig controls where and in which formats timetables are written.
type ExportConfig struct {
	Directory string
	Formats   []string
}

// MetricsConfig toggles Prometheus instrumentation.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Academic = AcademicConfig{
		Year:     v.GetString("ACADEMIC_YEAR"),
		Semester: v.GetString("SEMESTER"),
	}

	cfg.Export = ExportConfig{
		Directory: v.GetString("EXPORT_DIR"),
		Formats:   splitAndTrim(v.GetString("EXPORT_FORMATS")),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("ENABLE_METRICS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("ACADEMIC_YEAR", "2025/26")
	v.SetDefault("SEMESTER", "1")
	v.SetDefault("EXPORT_DIR", "exports")
	v.SetDefault("EXPORT_FORMATS", "csv")
	v.SetDefault("ENABLE_METRICS", false)
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
