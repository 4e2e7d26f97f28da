package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Redis      RedisConfig      `yaml:"redis"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
	// CartTTLHours bounds how long an abandoned cart snapshot is kept.
	CartTTLHours int `yaml:"cart_ttl_hours"`
}

type CatalogConfig struct {
	// Source selects the catalog/order storage backend: "postgres" or "memory".
	Source string `yaml:"source"`
}

type SimulationConfig struct {
	// NetworkDelayMS is the fixed latency the in-memory catalog applies to
	// every lookup, standing in for real network I/O.
	NetworkDelayMS int `yaml:"network_delay_ms"`
}

// Load reads a YAML config file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: 3000},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "maestro",
			Database: "maestro",
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			User: "guest",
		},
		Redis: RedisConfig{
			Addr:         "localhost:6379",
			CartTTLHours: 168,
		},
		Catalog:    CatalogConfig{Source: "memory"},
		Simulation: SimulationConfig{NetworkDelayMS: 500},
	}
}

func (c *Config) validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTP.Port)
	}
	if c.Catalog.Source != "memory" && c.Catalog.Source != "postgres" {
		return fmt.Errorf("invalid catalog source: %q", c.Catalog.Source)
	}
	if c.Simulation.NetworkDelayMS < 0 {
		return fmt.Errorf("network delay must not be negative")
	}
	return nil
}
