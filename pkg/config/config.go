package config

import (
	"encoding/json"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/infotraining/quote_syncer/pkg/xerror"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Listing is a stock listed on startup.
type Listing struct {
	Symbol string  `json:"symbol" yaml:"symbol" toml:"symbol"`
	Price  float64 `json:"price" yaml:"price" toml:"price"`
}

type Config struct {
	Host string `json:"host" yaml:"host" toml:"host"`
	Port int    `json:"port" yaml:"port" toml:"port"`

	DbType     string `json:"db_type" yaml:"db_type" toml:"db_type"`
	DbDir      string `json:"db_dir" yaml:"db_dir" toml:"db_dir"`
	DbHost     string `json:"db_host" yaml:"db_host" toml:"db_host"`
	DbPort     int    `json:"db_port" yaml:"db_port" toml:"db_port"`
	DbUser     string `json:"db_user" yaml:"db_user" toml:"db_user"`
	DbPassword string `json:"db_password" yaml:"db_password" toml:"db_password"`

	LogLevel        string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFilename     string `json:"log_filename" yaml:"log_filename" toml:"log_filename"`
	LogAlsoToStderr bool   `json:"log_also_to_stderr" yaml:"log_also_to_stderr" toml:"log_also_to_stderr"`

	Listings []Listing `json:"listings" yaml:"listings" toml:"listings"`
}

func Default() Config {
	return Config{
		Host:     "127.0.0.1",
		Port:     9190,
		DbType:   "sqlite3",
		DbDir:    "quote.db",
		DbHost:   "127.0.0.1",
		DbPort:   3306,
		DbUser:   "root",
		LogLevel: "info",
	}
}

// Load reads a configuration file on top of Default, based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, xerror.New(xerror.Config, "empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, xerror.Wrapf(err, xerror.Config, "read config %s failed", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		return cfg, xerror.Errorf(xerror.Config, "unsupported config extension: %s", ext)
	}
	if err != nil {
		return cfg, xerror.Wrapf(err, xerror.Config, "parse config %s failed", path)
	}
	return cfg, nil
}

// RegisterFlags binds the command line flags to c's fields, using the
// current field values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Host, "host", c.Host, "syncer host")
	fs.IntVar(&c.Port, "port", c.Port, "syncer port")

	fs.StringVar(&c.DbType, "db_type", c.DbType, "quote db type: sqlite3, mysql or postgresql")
	fs.StringVar(&c.DbDir, "db_dir", c.DbDir, "sqlite3 db file")
	fs.StringVar(&c.DbHost, "db_host", c.DbHost, "quote db host")
	fs.IntVar(&c.DbPort, "db_port", c.DbPort, "quote db port")
	fs.StringVar(&c.DbUser, "db_user", c.DbUser, "quote db user")
	fs.StringVar(&c.DbPassword, "db_password", c.DbPassword, "quote db password")

	fs.StringVar(&c.LogLevel, "log_level", c.LogLevel, "log level")
	fs.StringVar(&c.LogFilename, "log_filename", c.LogFilename, "log filename")
	fs.BoolVar(&c.LogAlsoToStderr, "log_also_to_stderr", c.LogAlsoToStderr, "log also to stderr")
}

// Overlay copies into c every field whose flag was set explicitly on fs.
// from must be the Config the flags of fs were registered on.
func (c *Config) Overlay(fs *flag.FlagSet, from *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			c.Host = from.Host
		case "port":
			c.Port = from.Port
		case "db_type":
			c.DbType = from.DbType
		case "db_dir":
			c.DbDir = from.DbDir
		case "db_host":
			c.DbHost = from.DbHost
		case "db_port":
			c.DbPort = from.DbPort
		case "db_user":
			c.DbUser = from.DbUser
		case "db_password":
			c.DbPassword = from.DbPassword
		case "log_level":
			c.LogLevel = from.LogLevel
		case "log_filename":
			c.LogFilename = from.LogFilename
		case "log_also_to_stderr":
			c.LogAlsoToStderr = from.LogAlsoToStderr
		}
	})
}

func (c *Config) Valid() error {
	switch c.DbType {
	case "sqlite3":
		if c.DbDir == "" {
			return xerror.New(xerror.Config, "db_dir is empty")
		}
	case "mysql", "postgresql":
		if c.DbPort <= 0 || c.DbPort > 65535 {
			return xerror.Errorf(xerror.Config, "db_port is invalid: %d", c.DbPort)
		}
	default:
		return xerror.Errorf(xerror.Config, "unknown db_type: %s", c.DbType)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return xerror.Errorf(xerror.Config, "port is invalid: %d", c.Port)
	}

	seen := make(map[string]struct{}, len(c.Listings))
	for _, l := range c.Listings {
		if l.Symbol == "" {
			return xerror.New(xerror.Config, "listing symbol is empty")
		}
		if _, ok := seen[l.Symbol]; ok {
			return xerror.Errorf(xerror.Config, "listing %s is duplicated", l.Symbol)
		}
		seen[l.Symbol] = struct{}{}
		if l.Price <= 0 || math.IsInf(l.Price, 0) || math.IsNaN(l.Price) {
			return xerror.Errorf(xerror.Config, "listing %s has invalid price %v", l.Symbol, l.Price)
		}
	}
	return nil
}
