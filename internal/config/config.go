package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Source struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	App struct {
		Port int `yaml:"port"`
	} `yaml:"app"`

	Scrape struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerSec     float64 `yaml:"rate_per_sec"`
		Burst          int     `yaml:"burst"`
	} `yaml:"scrape"`

	Sources struct {
		JobsGe Source `yaml:"jobs_ge"`
		HrGe   Source `yaml:"hr_ge"`
	} `yaml:"sources"`
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 8080
	cfg.Scrape.TimeoutSeconds = 15
	cfg.Scrape.RatePerSec = 2
	cfg.Scrape.Burst = 4
	cfg.Sources.JobsGe.Enabled = true
	cfg.Sources.HrGe.Enabled = true
	return cfg
}

// Load reads path on top of the defaults, so a partial file only overrides
// what it names.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
