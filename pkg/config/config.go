package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RPC   RPCConfig   `yaml:"rpc"`
	Bench BenchConfig `yaml:"bench"`
}

type RPCConfig struct {
	URL         string `yaml:"url"`         // JSON RPC endpoint (e.g. https://api.mainnet-beta.solana.com)
	Concurrency int    `yaml:"concurrency"` // max in-flight block fetches
}

type BenchConfig struct {
	SetSize    int `yaml:"set_size"`
	Iterations int `yaml:"iterations"`
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		RPC: RPCConfig{
			URL:         "https://api.mainnet-beta.solana.com",
			Concurrency: 3,
		},
		Bench: BenchConfig{
			SetSize:    1_000_000,
			Iterations: 20,
		},
	}

	if configPath == "" {
		for _, p := range []string{"configs/slotbench.yaml", "slotbench.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.RPC.URL == "" {
		cfg.RPC.URL = "https://api.mainnet-beta.solana.com"
	}
	if cfg.RPC.Concurrency <= 0 {
		cfg.RPC.Concurrency = 3
	}
	if cfg.Bench.SetSize <= 0 {
		cfg.Bench.SetSize = 1_000_000
	}
	if cfg.Bench.Iterations <= 0 {
		cfg.Bench.Iterations = 20
	}
}
