package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/odestep/internal/runner"
)

const (
	DefaultStep       = 0.01
	DefaultSteps      = 1000
	DefaultIterations = 1
)

type Config struct {
	Problem    string  `yaml:"problem"`
	Method     string  `yaml:"method"`
	Step       float64 `yaml:"step"`
	Steps      int     `yaml:"steps"`
	Iterations int     `yaml:"iterations"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:    "polyexp",
		Method:     "rk4",
		Step:       DefaultStep,
		Steps:      DefaultSteps,
		Iterations: DefaultIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Spec() runner.Spec {
	return runner.Spec{
		Problem:    c.Problem,
		Method:     c.Method,
		H:          c.Step,
		Steps:      c.Steps,
		Iterations: c.Iterations,
	}
}
