package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to flag names to form their environment fallback,
// e.g. --redis-addr reads FLOWSERVE_REDIS_ADDR.
const EnvPrefix = "FLOWSERVE"

var validate = validator.New()

// Config holds the options shared by every command.
type Config struct {
	GraphPath     string
	RedisAddr     string `validate:"omitempty,hostname_port"`
	RedisPassword string
	RedisDB       int    `validate:"min=0"`
	RedisKey      string `validate:"required_with=RedisAddr"`
	RedisChannel  string `validate:"required_with=RedisAddr"`
	LogLevel      string `validate:"omitempty,oneof=debug info warn error"`
	LogFormat     string `validate:"omitempty,oneof=text json"`
	MaxWaves      int    `validate:"min=0"`
}

// ServeConfig holds the options of the serve command.
type ServeConfig struct {
	Addr            string        `validate:"required,hostname_port"`
	MetricsAddr     string        `validate:"omitempty,hostname_port"`
	MaxBodyBytes    int64         `validate:"min=0"`
	ShutdownTimeout time.Duration `validate:"min=0"`
	Watch           bool
	CORS            bool
}

// Validate checks a configuration struct against its tags.
func Validate(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadEnvFile loads variables from a dotenv file without overriding the
// environment. A missing file is only an error when required is set.
func LoadEnvFile(path string, required bool) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// BindEnv fills every flag the user did not set from its environment fallback.
func BindEnv(flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		if v, ok := os.LookupEnv(EnvName(f.Name)); ok {
			if err := flags.Set(f.Name, v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", EnvName(f.Name), err))
			}
		}
	})
	return errors.Join(errs...)
}

// EnvName returns the environment variable backing a flag.
func EnvName(flag string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}
