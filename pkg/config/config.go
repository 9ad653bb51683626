// Package config loads verifier settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. INSTALLCHECK_SERVICE.
const EnvPrefix = "INSTALLCHECK"

// Limit is one expected row of a process's limit table.
type Limit struct {
	Name  string `mapstructure:"name" json:"name" yaml:"name"`
	Value string `mapstructure:"value" json:"value" yaml:"value"`
}

// Config holds what the verifier expects of an installed package and how it
// runs its checks.
type Config struct {
	Service        string        `mapstructure:"service"`
	Process        string        `mapstructure:"process"`
	PackagePattern string        `mapstructure:"packagePattern"`
	CompassCommand string        `mapstructure:"compassCommand"`
	BaselineFiles  []string      `mapstructure:"baselineFiles"`
	RemovedFiles   []string      `mapstructure:"removedFiles"`
	Limits         []Limit       `mapstructure:"limits"`
	SkipPhases     []string      `mapstructure:"skipPhases"`
	CommandTimeout time.Duration `mapstructure:"commandTimeout"`
	ProcRoot       string        `mapstructure:"procRoot"`
}

// DefaultLimits are the ulimits the server package configures for its service.
var DefaultLimits = []Limit{
	{Name: "Max file size", Value: "unlimited"},
	{Name: "Max cpu time", Value: "unlimited"},
	{Name: "Max address space", Value: "unlimited"},
	{Name: "Max open files", Value: "64000"},
	{Name: "Max resident set", Value: "unlimited"},
	{Name: "Max processes", Value: "64000"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service", "mongod")
	v.SetDefault("process", "mongod")
	v.SetDefault("packagePattern", "mongodb.*server")
	v.SetDefault("compassCommand", "install_compass")
	v.SetDefault("baselineFiles", []string{
		"/etc/mongod.conf",
		"/usr/bin/mongod",
		"/var/log/mongodb/mongod.log",
	})
	v.SetDefault("removedFiles", []string{
		"/lib/systemd/system/mongod.service",
		"/usr/bin/mongod",
	})
	v.SetDefault("limits", DefaultLimits)
	v.SetDefault("skipPhases", []string{})
	v.SetDefault("commandTimeout", 2*time.Minute)
	v.SetDefault("procRoot", "/proc")
}

// LoadConfig reads configuration from an optional file (yaml, json or toml,
// by extension) and INSTALLCHECK_* environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %q: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Service == "" {
		errs = append(errs, errors.New("service must not be empty"))
	}
	if c.Process == "" {
		errs = append(errs, errors.New("process must not be empty"))
	}
	if c.PackagePattern == "" {
		errs = append(errs, errors.New("packagePattern must not be empty"))
	}
	if c.CommandTimeout <= 0 {
		errs = append(errs, fmt.Errorf("commandTimeout must be positive, got %s", c.CommandTimeout))
	}
	for i, l := range c.Limits {
		if l.Name == "" || l.Value == "" {
			errs = append(errs, fmt.Errorf("limits[%d] needs both name and value", i))
		}
	}
	return errors.Join(errs...)
}
