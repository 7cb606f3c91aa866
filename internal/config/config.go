// Package config loads server and client settings from flags, environment,
// .env files and an optional YAML config file.
//
// Precedence, highest first: command-line flags, RECORDSYNC_* environment
// variables (including those loaded from .env files), config file, defaults.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix префикс переменных окружения: RECORDSYNC_ADDR, RECORDSYNC_LOG_LEVEL и т.д.
const EnvPrefix = "RECORDSYNC"

// Ключи конфигурации
const (
	KeyAddr             = "addr"
	KeyDB               = "db"
	KeyOpTimeout        = "op_timeout"
	KeyWorkers          = "workers"
	KeyShutdownTimeout  = "shutdown_timeout"
	KeyMaxBodyBytes     = "max_body_bytes"
	KeyRateLimitRequest = "rate_limit.requests"
	KeyRateLimitWindow  = "rate_limit.window"
	KeyTrustedProxies   = "rate_limit.trusted_proxies"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"

	KeyServer  = "server"
	KeyTimeout = "timeout"
	KeyOutput  = "output"
)

// ErrInvalidConfig returned when a loaded value fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Log настройки логирования
type Log struct {
	Level  string
	Format string // text | json
}

// RateLimit ограничение запросов на клиента; Requests == 0 отключает лимит.
// X-Forwarded-For и X-Real-IP учитываются только от адресов из TrustedProxies.
type RateLimit struct {
	TrustedProxies []netip.Prefix
	Requests       int
	Window         time.Duration
}

// Server настройки сервера синхронизации
type Server struct {
	Log             Log
	Addr            string
	DB              string
	RateLimit       RateLimit
	OpTimeout       time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
	Workers         int
}

// Client настройки CLI клиента
type Client struct {
	Log     Log
	Server  string
	DB      string
	Output  string // table | json | yaml
	Timeout time.Duration
}

// New creates a viper instance reading RECORDSYNC_* variables, .env files
// from the working directory and, if configFile is set, that YAML file.
func New(configFile string) (*viper.Viper, error) {
	// .env.local переопределяет .env; уже заданные переменные окружения не трогаются
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	return v, nil
}

// BindFlags binds config keys to command flags. bindings maps key → flag name.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("flag %q for key %q is not defined", name, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// SetServerDefaults registers server defaults on v
func SetServerDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyDB, "recordsync.db")
	v.SetDefault(KeyOpTimeout, 5*time.Second)
	v.SetDefault(KeyWorkers, 8)
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)
	v.SetDefault(KeyMaxBodyBytes, int64(10<<20))
	v.SetDefault(KeyRateLimitRequest, 0)
	v.SetDefault(KeyRateLimitWindow, time.Minute)
	v.SetDefault(KeyTrustedProxies, []string{})
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// SetClientDefaults registers client defaults on v
func SetClientDefaults(v *viper.Viper) {
	v.SetDefault(KeyServer, "http://localhost:8080")
	v.SetDefault(KeyDB, "recordsync-client.db")
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyOutput, "table")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
}

// LoadServer reads and validates server settings
func LoadServer(v *viper.Viper) (*Server, error) {
	cfg := &Server{
		Addr:            v.GetString(KeyAddr),
		DB:              v.GetString(KeyDB),
		OpTimeout:       v.GetDuration(KeyOpTimeout),
		Workers:         v.GetInt(KeyWorkers),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
		MaxBodyBytes:    v.GetInt64(KeyMaxBodyBytes),
		RateLimit: RateLimit{
			Requests: v.GetInt(KeyRateLimitRequest),
			Window:   v.GetDuration(KeyRateLimitWindow),
		},
		Log: loadLog(v),
	}

	var errs []error
	if cfg.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyAddr))
	}
	if cfg.DB == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyDB))
	}
	if cfg.OpTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyOpTimeout))
	}
	if cfg.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyWorkers))
	}
	if cfg.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyMaxBodyBytes))
	}
	if cfg.RateLimit.Requests < 0 || (cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window <= 0) {
		errs = append(errs, fmt.Errorf("%w: rate_limit requires requests >= 0 and a positive window", ErrInvalidConfig))
	}
	proxies, err := ParsePrefixes(v.GetStringSlice(KeyTrustedProxies))
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyTrustedProxies, err))
	}
	cfg.RateLimit.TrustedProxies = proxies
	errs = append(errs, validateLog(cfg.Log))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadClient reads and validates client settings
func LoadClient(v *viper.Viper) (*Client, error) {
	cfg := &Client{
		Server:  strings.TrimRight(v.GetString(KeyServer), "/"),
		DB:      v.GetString(KeyDB),
		Timeout: v.GetDuration(KeyTimeout),
		Output:  strings.ToLower(v.GetString(KeyOutput)),
		Log:     loadLog(v),
	}

	var errs []error
	if cfg.Server == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyServer))
	}
	if cfg.DB == "" {
		errs = append(errs, fmt.Errorf("%w: %s is empty", ErrInvalidConfig, KeyDB))
	}
	if cfg.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyTimeout))
	}
	switch cfg.Output {
	case "table", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("%w: %s must be table, json or yaml, got %q", ErrInvalidConfig, KeyOutput, cfg.Output))
	}
	errs = append(errs, validateLog(cfg.Log))

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadLog(v *viper.Viper) Log {
	return Log{
		Level:  strings.ToLower(v.GetString(KeyLogLevel)),
		Format: strings.ToLower(v.GetString(KeyLogFormat)),
	}
}

func validateLog(l Log) error {
	var errs []error
	if _, err := ParseLevel(l.Level); err != nil {
		errs = append(errs, err)
	}
	if l.Format != "text" && l.Format != "json" {
		errs = append(errs, fmt.Errorf("%w: %s must be text or json, got %q", ErrInvalidConfig, KeyLogFormat, l.Format))
	}
	return errors.Join(errs...)
}

// ParsePrefixes parses CIDR blocks or bare addresses. Entries may also be
// comma separated, as they arrive from a single environment variable.
// Returns nil for an empty list.
func ParsePrefixes(list []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range list {
		for _, raw := range strings.Split(item, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}

			if strings.Contains(raw, "/") {
				prefix, err := netip.ParsePrefix(raw)
				if err != nil {
					return nil, err
				}
				prefixes = append(prefixes, prefix.Masked())
				continue
			}

			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, err
			}
			addr = addr.Unmap()
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
		}
	}
	return prefixes, nil
}
