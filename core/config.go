package core

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "ACADEMIA"

type (
	// Config is built once at start-up and must be treated as read-only afterwards.
	Config struct {
		AppName      string         `mapstructure:"app_name" validate:"required"`
		Env          string         `mapstructure:"env"`
		Build        string         `mapstructure:"build"`
		Debug        bool           `mapstructure:"debug"`
		TestMode     bool           `mapstructure:"test_mode"`
		SecretKey    string         `mapstructure:"secret_key" validate:"required"`
		RollbarToken string         `mapstructure:"rollbar_token"`
		Server       ServerConfig   `mapstructure:"server"`
		Auth         AuthConfig     `mapstructure:"auth"`
		Database     DatabaseConfig `mapstructure:"database"`
	}

	ServerConfig struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port" validate:"min=0,max=65535"`
		DebugHost       string        `mapstructure:"debug_host"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
		AllowOrigins    []string      `mapstructure:"allow_origins"`
	}

	AuthConfig struct {
		TokenTTL time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
		HashCost int           `mapstructure:"hash_cost" validate:"bcryptcost"`
	}

	DatabaseConfig struct {
		Engine        string `mapstructure:"engine" validate:"oneof=postgres memory"`
		Host          string `mapstructure:"host"`
		Port          int    `mapstructure:"port"`
		User          string `mapstructure:"user"`
		Password      string `mapstructure:"password"`
		AdminUser     string `mapstructure:"admin_user"`
		AdminPassword string `mapstructure:"admin_password"`
		Name          string `mapstructure:"name" validate:"required_if=Engine postgres"`
		DisableTLS    bool   `mapstructure:"disable_tls"`
	}
)

// Address is the API listen address.
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed with ACADEMIA_ (eg. ACADEMIA_SERVER_PORT);
// JWT_SECRET, PORT and SALT_ROUNDS are honoured as aliases.
func NewConfig() (*Config, error) {
	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	v := viper.New()
	setDefaults(v, env)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range map[string][]string{
		"secret_key":     {"JWT_SECRET"},
		"server.port":    {"PORT"},
		"auth.hash_cost": {"SALT_ROUNDS"},
	} {
		names := append([]string{key, envName(key)}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return nil, errors.Wrapf(err, "binding env for %s", key)
		}
	}

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	conf.Env = env

	if err := NewValidator().Struct(conf); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return conf, nil
}

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("app_name", "Academia")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", env == "DEV")
	v.SetDefault("test_mode", env == "TEST")
	v.SetDefault("secret_key", "")
	v.SetDefault("rollbar_token", "")

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.debug_host", "localhost:4000")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("auth.hash_cost", 10)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "academia")
	v.SetDefault("database.password", "")
	v.SetDefault("database.admin_user", "")
	v.SetDefault("database.admin_password", "")
	v.SetDefault("database.name", "academia")
	v.SetDefault("database.disable_tls", env == "DEV" || env == "TEST")
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
