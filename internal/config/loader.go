package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	_ "time/tzdata" // timezone validation must not depend on the host

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var (
	// ErrMissingKeys is returned when the config file lacks a required key.
	ErrMissingKeys = errors.New("missing required config keys")
	// ErrInvalid wraps value constraint violations.
	ErrInvalid = errors.New("invalid config")
)

// EnvPrefix prefixes every environment override, e.g. GHOST_TIMEZONE.
const EnvPrefix = "GHOST"

var validate = newValidator()

// newValidator registers "singleline", which rejects values spanning more
// than one line. Retraction matches a single trailing line.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

// setDefaults registers every runtime default with v. Registering them also
// makes the keys visible to AutomaticEnv during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault("history_file", d.HistoryFile)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("work_dir", d.WorkDir)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("token_env", d.TokenEnv)
	v.SetDefault("undo_probability", d.UndoProbability)
	v.SetDefault("pause_min_seconds", d.PauseMinSeconds)
	v.SetDefault("pause_max_seconds", d.PauseMaxSeconds)
	v.SetDefault("max_attempts", d.MaxAttempts)
	v.SetDefault("clone_retries", d.CloneRetries)
	v.SetDefault("git_user_name", d.GitUserName)
	v.SetDefault("git_user_email", d.GitUserEmail)
	v.SetDefault("cleanup_message", d.CleanupMessage)
	v.SetDefault("verbose", d.Verbose)
}

// LoadWithPrecedence assembles a Config by merging sources in order of
// increasing priority:
//
//  1. Built-in defaults
//  2. Config file at path (DefaultFile when empty; it must exist)
//  3. GHOST_* environment variables
//  4. CLI overrides, keyed by config key (e.g. "history_file")
//
// Missing required keys and constraint violations are errors.
func LoadWithPrecedence(path string, cliOverrides map[string]any) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if missing := missingKeys(v); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingKeys, strings.Join(missing, ", "))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range cliOverrides {
		v.Set(key, value)
	}

	cfg := NewDefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = path

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	for i, b := range cfg.Schedule.Blocks {
		cfg.Schedule.Blocks[i] = b.Normalize()
	}
	return cfg, nil
}

func missingKeys(v *viper.Viper) []string {
	var missing []string
	for _, key := range RequiredKeys {
		if !v.InConfig(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Validate checks cfg against its struct constraints.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
