// Package config provides configuration related utilities.
//
// Order of loading configuration:
//  1. Config file (YAML, JSON supported)
//  2. Flags
//  3. Environment variables
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"
)

// Default values for config.
const (
	defaultHost                   = "0.0.0.0"
	defaultPort                   = "8080"
	defaultLogPath                = "logs/app.log"
	defaultMaxLogSizeMB           = 5
	defaultMaxLogBackups          = 10
	defaultMaxLogFileLifetimeDays = 14
	defaultSessionCookieName      = "Authorization"
)

// DefaultAddress is the default address to start the server
// and to return shortened URLs with.
var DefaultAddress = fmt.Sprintf("%s:%s", defaultHost, defaultPort)

type (
	// Config represents an application configuration.
	Config struct {
		// The data source name (DSN) for connecting to the database.
		// When empty, an in-memory storage is used instead.
		DSN string `yaml:"dsn" env:"DATABASE_DSN"`
		// Subconfigs.
		Server  Server  `yaml:"http_server"`
		Session Session `yaml:"session"`
		Logger  Logger  `yaml:"logger"`
		// Bcrypt work factor for password hashing.
		BcryptCost int `yaml:"bcrypt_cost"`
		// TLSEnabled determines whether the server
		// will be started in the TLS mode.
		TLSEnabled Enabled `yaml:"enable_https" env:"ENABLE_HTTPS"`
	}
	// Server is the configuration of the HTTP server.
	Server struct {
		// Address to run the server.
		RunAddress *NetAddress `yaml:"server_address" env:"SERVER_ADDRESS"`
		// Address to return short URLs with.
		ReturnAddress *NetAddress `yaml:"return_address" env:"BASE_URL"`
		// Read header timeout.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
	}
	// Session is the configuration of the session tokens issued on login.
	Session struct {
		// Token signing key. The application secret.
		SigningKey string `yaml:"signing_key" env:"SESSION_SIGNING_KEY"`
		// Token expiration.
		Expiration time.Duration `yaml:"expiration" env:"SESSION_EXPIRATION" env-default:"24h"`
		// Name of the cookie carrying the token.
		CookieName string `yaml:"cookie_name"`
	}
	// Logger is the configuration of the application's logger.
	Logger struct {
		// Path to store log files.
		Path string `yaml:"log_path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
)

// Interface implementation guards.
var (
	_ flag.Value      = (*NetAddress)(nil)
	_ cleanenv.Setter = (*NetAddress)(nil)
	_ flag.Value      = (*Enabled)(nil)
	_ cleanenv.Setter = (*Enabled)(nil)
)

// NetAddress represents a network address with a host and a port.
type NetAddress string

// NewNetAddress returns a pointer to a new NetAddress
// with the default host and port.
func NewNetAddress() *NetAddress {
	a := NetAddress(DefaultAddress)
	return &a
}

// String returns a string representation of the NetAddress
// in the form "host:port".
func (a *NetAddress) String() string {
	return string(*a)
}

// Set sets the host and port of the NetAddress from a string
// in the form "host:port".
func (a *NetAddress) Set(s string) error {
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")

	hp := strings.Split(s, ":")

	if len(hp) != 2 {
		return errors.New("need address in a form host:port")
	}

	if _, err := strconv.Atoi(hp[1]); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	if hp[0] != "" {
		*a = NetAddress(fmt.Sprintf("%s:%s", hp[0], hp[1]))
		return nil
	}

	*a = NetAddress(fmt.Sprintf("%s:%s", defaultHost, hp[1]))
	return nil
}

// SetValue implements cleanenv value setter.
func (a *NetAddress) SetValue(s string) error {
	return a.Set(s)
}

// Enabled implements a general setter for boolean values.
type Enabled bool

// Set sets Enabled value from string.
func (e *Enabled) Set(s string) error {
	trueValues := []string{
		"true", "1", "t", "T", "TRUE", "True",
	}
	falseValues := []string{
		"false", "0", "f", "F", "FALSE", "False",
	}
	switch {
	case slices.Contains(trueValues, s):
		*e = true
	case slices.Contains(falseValues, s):
		*e = false
	default:
		msg := fmt.Sprintf(
			"invalid value: %q; need boolean value in form: true: %q false: %q",
			s,
			strings.Join(trueValues, "\", \""),
			strings.Join(falseValues, "\", \""),
		)
		return errors.New(msg)
	}
	return nil
}

// SetValue implements cleanenv value setter.
func (e *Enabled) SetValue(s string) error {
	return e.Set(s)
}

// String returns a string representation of the Enabled value.
func (e *Enabled) String() string {
	return fmt.Sprintf("%v", *e)
}

// MustLoad returns an application configuration which is populated
// from the given configuration file, flags and environment variables.
func MustLoad() *Config {
	var cfg Config
	// Setup default values.
	cfg.Server.RunAddress = NewNetAddress()
	cfg.Server.ReturnAddress = NewNetAddress()
	cfg.Session.CookieName = defaultSessionCookieName
	cfg.Logger.Path = defaultLogPath
	cfg.Logger.MaxSizeMB = defaultMaxLogSizeMB
	cfg.Logger.MaxBackups = defaultMaxLogBackups
	cfg.Logger.MaxAgeDays = defaultMaxLogFileLifetimeDays
	cfg.BcryptCost = bcrypt.DefaultCost

	// Configuration file path.
	configPath, set := os.LookupEnv("CONFIG")

	if set {
		// Check if file exists.
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("config file does not exist: %v", err)
		}

		// Load from config file.
		file, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %v", err)
		}

		// Support different file extensions.
		ext := filepath.Ext(configPath)
		switch ext {
		case ".yaml", ".yml":
			if err = cleanenv.ParseYAML(file, &cfg); err != nil {
				log.Fatalf("failed to parse config file: %v", err)
			}
		case ".json":
			if err = cleanenv.ParseJSON(file, &cfg); err != nil {
				log.Fatalf("failed to parse config file: %v", err)
			}
		default:
			log.Fatalf("unsupported configuration file extension: %q", ext)
		}
	}

	// Read given flags. If not provided use file values.
	flag.Var(cfg.Server.RunAddress, "a", "server start address in form host:port")
	flag.Var(cfg.Server.ReturnAddress, "b", "server return address in form host:port")
	flag.Var(&cfg.TLSEnabled, "s", "run the server in TLS mode")
	flag.StringVar(&cfg.DSN, "d", cfg.DSN, "server data source name")
	flag.StringVar(&cfg.Logger.Level, "l", cfg.Logger.Level, "logging level")
	flag.Parse()

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}

// NewForTest returns application configuration for testing.
func NewForTest() *Config {
	return &Config{
		DSN: "",
		Server: Server{
			RunAddress:      NewNetAddress(),
			ReturnAddress:   NewNetAddress(),
			Timeout:         5 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Session: Session{
			SigningKey: "test",
			Expiration: 10 * time.Minute,
			CookieName: defaultSessionCookieName,
		},
		BcryptCost: bcrypt.MinCost,
	}
}
