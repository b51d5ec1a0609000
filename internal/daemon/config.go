// Package daemon manages the forgeflow daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/forgeflow/forgeflow/internal/domain"
	"github.com/forgeflow/forgeflow/internal/scheduler"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	CORSOrigin string `toml:"cors_origin"`
}

// SchedulerConfig controls batch admission quotas.
type SchedulerConfig struct {
	GlobalCap    int `toml:"global_cap"`
	CPUQuota     int `toml:"cpu_quota"`
	MemoryQuota  int `toml:"memory_quota"`
	IOQuota      int `toml:"io_quota"`
	NetworkQuota int `toml:"network_quota"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	sched := scheduler.DefaultConfig()
	return Config{
		API: APIConfig{
			Host:       "127.0.0.1",
			Port:       8425,
			CORSOrigin: "*",
		},
		Scheduler: SchedulerConfig{
			GlobalCap:    sched.GlobalCap,
			CPUQuota:     sched.Quotas[domain.ResourceCPU],
			MemoryQuota:  sched.Quotas[domain.ResourceMemory],
			IOQuota:      sched.Quotas[domain.ResourceIO],
			NetworkQuota: sched.Quotas[domain.ResourceNetwork],
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(forgeflowHome(), "forgeflow.log"),
		},
	}
}

// SchedulerOptions converts the daemon config into a scheduler.Config.
func (c Config) SchedulerOptions() scheduler.Config {
	cfg := scheduler.DefaultConfig()
	if c.Scheduler.GlobalCap > 0 {
		cfg.GlobalCap = c.Scheduler.GlobalCap
	}
	cfg.Quotas = scheduler.Quotas{
		domain.ResourceCPU:     c.Scheduler.CPUQuota,
		domain.ResourceMemory:  c.Scheduler.MemoryQuota,
		domain.ResourceIO:      c.Scheduler.IOQuota,
		domain.ResourceNetwork: c.Scheduler.NetworkQuota,
	}
	return cfg
}

// Validate rejects configurations the scheduler cannot honor. A zero quota
// is allowed — it starves that category and the report surfaces it — but
// negative values and a non-positive cap are configuration mistakes.
func (c Config) Validate() error {
	if c.Scheduler.GlobalCap < 1 {
		return fmt.Errorf("scheduler.global_cap %d: %w", c.Scheduler.GlobalCap, domain.ErrInvalidCap)
	}
	quotas := map[string]int{
		"cpu_quota":     c.Scheduler.CPUQuota,
		"memory_quota":  c.Scheduler.MemoryQuota,
		"io_quota":      c.Scheduler.IOQuota,
		"network_quota": c.Scheduler.NetworkQuota,
	}
	for name, q := range quotas {
		if q < 0 {
			return fmt.Errorf("scheduler.%s %d: %w", name, q, domain.ErrInvalidQuota)
		}
	}
	return nil
}

// LoadConfig reads config from ~/.forgeflow/config.toml, falling back to
// defaults when the file does not exist.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(forgeflowHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.forgeflow/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(forgeflowHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// forgeflowHome returns the forgeflow data directory.
func forgeflowHome() string {
	if env := os.Getenv("FORGEFLOW_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".forgeflow")
}
