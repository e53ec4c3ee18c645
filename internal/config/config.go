// Package config loads the shopkit.json project configuration: store
// latencies, checkout rates, session storage, media storage, and the
// inspector address. Environment variables prefixed SHOPKIT_ override
// file values.
package config

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopkit-dev/shopkit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "shopkit.json"

	// DefaultAuthLatencyMS is the simulated auth delay in milliseconds.
	DefaultAuthLatencyMS = 1000

	// DefaultPaymentLatencyMS is the simulated payment delay in milliseconds.
	DefaultPaymentLatencyMS = 2000

	// DefaultTaxRate is the checkout tax rate.
	DefaultTaxRate = 0.10

	// DefaultShippingFee is the flat shipping fee.
	DefaultShippingFee = 5.99

	// DefaultInspectorAddr is the inspector listen address.
	DefaultInspectorAddr = "127.0.0.1:8990"
)

// Config represents the complete shopkit.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// AuthLatencyMS is the simulated login/register delay in milliseconds.
	AuthLatencyMS int `json:"authLatencyMs,omitempty"`

	// PaymentLatencyMS is the simulated payment delay in milliseconds.
	PaymentLatencyMS int `json:"paymentLatencyMs,omitempty"`

	// TaxRate is the checkout tax rate (e.g. 0.10 for 10%). A pointer
	// so an explicit 0 is distinguishable from unset.
	TaxRate *float64 `json:"taxRate,omitempty"`

	// ShippingFee is the flat shipping fee charged on non-empty carts.
	// A pointer so an explicit 0 is distinguishable from unset.
	ShippingFee *float64 `json:"shippingFee,omitempty"`

	// Storage contains session storage configuration.
	Storage StorageConfig `json:"storage,omitempty"`

	// Media contains media storage configuration.
	Media MediaConfig `json:"media,omitempty"`

	// Inspector contains development inspector configuration.
	Inspector InspectorConfig `json:"inspector,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StorageConfig selects and configures the session storage backend.
type StorageConfig struct {
	// Kind is the backend: "memory", "file", or "redis".
	Kind string `json:"kind,omitempty"`

	// Path is the file path for the "file" backend.
	Path string `json:"path,omitempty"`

	// RedisAddr is the address for the "redis" backend.
	RedisAddr string `json:"redisAddr,omitempty"`

	// RedisKey is the key for the "redis" backend.
	RedisKey string `json:"redisKey,omitempty"`
}

// MediaConfig selects and configures the media storage backend.
type MediaConfig struct {
	// Kind is the backend: "disk" or "s3".
	Kind string `json:"kind,omitempty"`

	// Dir is the directory for the "disk" backend.
	Dir string `json:"dir,omitempty"`

	// Bucket is the bucket name for the "s3" backend.
	Bucket string `json:"bucket,omitempty"`
}

// InspectorConfig configures the development inspector.
type InspectorConfig struct {
	// Enabled starts the inspector alongside the stores.
	Enabled bool `json:"enabled,omitempty"`

	// Addr is the inspector listen address.
	Addr string `json:"addr,omitempty"`
}

// New returns a configuration with all defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory.
// It looks for shopkit.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E001").
				WithDetail("No shopkit.json found in " + filepath.Dir(path))
		}
		return nil, errors.New("E002").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E002").
			WithDetail("Failed to parse shopkit.json: " + err.Error())
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromWorkingDir loads shopkit.json from the current directory,
// falling back to defaults when the file does not exist.
func LoadFromWorkingDir() (*Config, error) {
	cfg, err := Load(".")
	if err != nil {
		var se *errors.ShopkitError
		if stderrors.As(err, &se) && se.Code == "E001" {
			cfg = New()
			cfg.ApplyEnv()
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E002").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E002").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// AuthLatency returns the simulated auth delay as a duration.
func (c *Config) AuthLatency() time.Duration {
	return time.Duration(c.AuthLatencyMS) * time.Millisecond
}

// PaymentLatency returns the simulated payment delay as a duration.
func (c *Config) PaymentLatency() time.Duration {
	return time.Duration(c.PaymentLatencyMS) * time.Millisecond
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.AuthLatencyMS == 0 {
		c.AuthLatencyMS = DefaultAuthLatencyMS
	}
	if c.PaymentLatencyMS == 0 {
		c.PaymentLatencyMS = DefaultPaymentLatencyMS
	}
	if c.TaxRate == nil {
		rate := DefaultTaxRate
		c.TaxRate = &rate
	}
	if c.ShippingFee == nil {
		fee := DefaultShippingFee
		c.ShippingFee = &fee
	}
	if c.Storage.Kind == "" {
		c.Storage.Kind = "memory"
	}
	if c.Media.Kind == "" {
		c.Media.Kind = "disk"
	}
	if c.Inspector.Addr == "" {
		c.Inspector.Addr = DefaultInspectorAddr
	}
}

// ApplyEnv overrides configuration from SHOPKIT_* environment
// variables. Unparseable values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SHOPKIT_AUTH_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AuthLatencyMS = n
		}
	}
	if v := os.Getenv("SHOPKIT_PAYMENT_LATENCY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PaymentLatencyMS = n
		}
	}
	if v := os.Getenv("SHOPKIT_TAX_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.TaxRate = &f
		}
	}
	if v := os.Getenv("SHOPKIT_SHIPPING_FEE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.ShippingFee = &f
		}
	}
	if v := os.Getenv("SHOPKIT_STORAGE_KIND"); v != "" {
		c.Storage.Kind = v
	}
	if v := os.Getenv("SHOPKIT_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("SHOPKIT_REDIS_ADDR"); v != "" {
		c.Storage.RedisAddr = v
	}
	if v := os.Getenv("SHOPKIT_INSPECTOR_ADDR"); v != "" {
		c.Inspector.Addr = v
	}
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.AuthLatencyMS < 0 {
		return errors.New("E003").WithDetail("authLatencyMs must not be negative")
	}
	if c.PaymentLatencyMS < 0 {
		return errors.New("E003").WithDetail("paymentLatencyMs must not be negative")
	}
	if c.TaxRate != nil && (*c.TaxRate < 0 || *c.TaxRate >= 1) {
		return errors.New("E003").WithDetail("taxRate must be in [0, 1)")
	}
	if c.ShippingFee != nil && *c.ShippingFee < 0 {
		return errors.New("E003").WithDetail("shippingFee must not be negative")
	}
	switch c.Storage.Kind {
	case "memory", "file", "redis":
	default:
		return errors.New("E003").WithDetail("storage.kind must be memory, file, or redis")
	}
	switch c.Media.Kind {
	case "disk", "s3":
	default:
		return errors.New("E003").WithDetail("media.kind must be disk or s3")
	}
	if c.Storage.Kind == "file" && c.Storage.Path == "" {
		return errors.New("E003").WithDetail("storage.path is required for the file backend")
	}
	if c.Storage.Kind == "redis" && c.Storage.RedisAddr == "" {
		return errors.New("E003").WithDetail("storage.redisAddr is required for the redis backend")
	}
	return nil
}

// Exists reports whether a shopkit.json is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
