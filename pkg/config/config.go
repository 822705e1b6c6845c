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

// DefaultMaxCredits is the registration credit cap applied when the
// configured value is missing or unparseable.
const DefaultMaxCredits = 18

type Config struct {
	Env       string
	Port      int
	APIPrefix string
	AppName   string

	Folders      FolderConfig
	Registration RegistrationConfig
	CORS         CORSConfig
	Log          LogConfig
}

// FolderConfig locates the flat-file data directories.
type FolderConfig struct {
	Data   string
	Export string
	Backup string
}

// RegistrationConfig tunes the enrollment workflow.
type RegistrationConfig struct {
	MaxCreditsPerSemester int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")
	cfg.AppName = v.GetString("APP_NAME")

	cfg.Folders = FolderConfig{
		Data:   v.GetString("DATA_FOLDER"),
		Export: v.GetString("EXPORT_FOLDER"),
		Backup: v.GetString("BACKUP_FOLDER"),
	}

	cfg.Registration = RegistrationConfig{
		MaxCreditsPerSemester: intOrDefault(v, "MAX_CREDITS_PER_SEMESTER", DefaultMaxCredits),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")
	v.SetDefault("APP_NAME", "Campus Course & Records Manager")

	v.SetDefault("DATA_FOLDER", "./data")
	v.SetDefault("EXPORT_FOLDER", "./exports")
	v.SetDefault("BACKUP_FOLDER", "./backups")

	v.SetDefault("MAX_CREDITS_PER_SEMESTER", DefaultMaxCredits)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func intOrDefault(v *viper.Viper, key string, fallback int) int {
	value := v.GetInt(key)
	if value <= 0 {
		return fallback
	}
	return value
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
