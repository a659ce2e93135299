package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"fpcheck/internal/report"
	"fpcheck/pkg/models"
)

// EnvPrefix prefixes every environment override, e.g. FPCHECK_RESULTS_DIR.
const EnvPrefix = "fpcheck"

// Config holds all fpcheck configuration.
type Config struct {
	// ResultsDir is scanned for baseline output files.
	ResultsDir string `yaml:"results_dir" split_words:"true"`

	// MaxFileBytes is the size ceiling above which a comparison is skipped.
	MaxFileBytes int64 `yaml:"max_file_bytes" split_words:"true"`

	// ReportPath enables the JSON lines run report when set.
	ReportPath string `yaml:"report_path" split_words:"true"`

	Report  ReportConfig  `yaml:"report"`
	Naming  NamingConfig  `yaml:"naming"`
	Logging LoggingConfig `yaml:"logging"`
}

// ReportConfig bounds the console difference listings.
type ReportConfig struct {
	ExampleThreshold int `yaml:"example_threshold" split_words:"true"`
	MaxExamples      int `yaml:"max_examples" split_words:"true"`
}

// NamingConfig describes how file groups are derived from file names.
type NamingConfig struct {
	Separator string       `yaml:"separator"`
	Baseline  RoleConfig   `yaml:"baseline" ignored:"true"`
	Roles     []RoleConfig `yaml:"roles" ignored:"true"`
}

// RoleConfig describes one implementation's output files.
type RoleConfig struct {
	Name   string `yaml:"name"`
	Label  string `yaml:"label"`
	Marker string `yaml:"marker"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the settings of the reference toolchain: Python
// baseline outputs compared with the original and PFP implementations.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir:   models.DefaultResultsDir,
		MaxFileBytes: models.DefaultMaxFileBytes,
		Report: ReportConfig{
			ExampleThreshold: report.DefaultExampleThreshold,
			MaxExamples:      report.DefaultMaxExamples,
		},
		Naming: NamingConfig{
			Separator: "_",
			Baseline:  RoleConfig{Name: "PY", Label: "Python", Marker: "py"},
			Roles: []RoleConfig{
				{Name: "ORG", Label: "Original", Marker: "org"},
				{Name: "PFP", Label: "PFP", Marker: "pfp"},
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from a YAML file, then applies .env and
// environment overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
		if err == nil {
			if err := cfg.decode(data); err != nil {
				return nil, errors.Wrapf(err, "failed to parse config %s", path)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals YAML over the defaults. a baseline block replaces the
// default baseline as a whole, so unset fields dont leak through from it
func (c *Config) decode(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}

	var raw struct {
		Naming struct {
			Baseline *RoleConfig `yaml:"baseline"`
		} `yaml:"naming"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Naming.Baseline != nil {
		c.Naming.Baseline = *raw.Naming.Baseline
	}
	return nil
}

// applyEnvOverrides loads .env when present and lets FPCHECK_* variables
// override file values. Unset variables leave fields untouched.
func (c *Config) applyEnvOverrides() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to load .env")
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Wrap(err, "failed to apply environment overrides")
	}
	return nil
}

// Validate checks the configuration for values the validator cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ResultsDir) == "" {
		return errors.New("results_dir must not be empty")
	}
	if c.MaxFileBytes <= 0 {
		return errors.Errorf("max_file_bytes must be positive, got %d", c.MaxFileBytes)
	}
	if c.Report.ExampleThreshold < 0 {
		return errors.Errorf("report.example_threshold must not be negative, got %d", c.Report.ExampleThreshold)
	}
	if c.Report.MaxExamples <= 0 {
		return errors.Errorf("report.max_examples must be positive, got %d", c.Report.MaxExamples)
	}
	if len(c.Naming.Roles) == 0 {
		return errors.New("naming.roles must list at least one comparison role")
	}

	all := append([]RoleConfig{c.Naming.Baseline}, c.Naming.Roles...)
	for _, r := range all {
		if r.Name == "" || r.Marker == "" {
			return errors.Errorf("role %+v needs a name and a marker", r)
		}
		if strings.ContainsAny(r.Marker, `/\`) {
			return errors.Errorf("role %s: marker %q must not contain path separators", r.Name, r.Marker)
		}
	}
	if dup := lo.FindDuplicates(lo.Map(all, func(r RoleConfig, _ int) string { return r.Name })); len(dup) > 0 {
		return errors.Errorf("duplicate role names: %s", strings.Join(dup, ", "))
	}
	if dup := lo.FindDuplicates(lo.Map(all, func(r RoleConfig, _ int) string { return r.Marker })); len(dup) > 0 {
		return errors.Errorf("duplicate role markers: %s", strings.Join(dup, ", "))
	}
	return nil
}

// BaselineRole returns the baseline role as a model value.
func (c *Config) BaselineRole() models.Role {
	return c.Naming.Baseline.role()
}

// ComparisonRoles returns the comparison roles in configured order.
func (c *Config) ComparisonRoles() []models.Role {
	return lo.Map(c.Naming.Roles, func(r RoleConfig, _ int) models.Role { return r.role() })
}

func (r RoleConfig) role() models.Role {
	label := r.Label
	if label == "" {
		label = r.Name
	}
	return models.Role{Name: r.Name, Label: label, Marker: r.Marker}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config %s", path)
	}
	return nil
}
