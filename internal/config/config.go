// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		CSVPath        string `yaml:"csv_path" json:"csv_path"`
		PerCategory    int    `yaml:"per_category" json:"per_category"`
		RefreshSeconds int    `yaml:"refresh_seconds" json:"refresh_seconds"` // 0 disables periodic reload
	} `yaml:"catalog" json:"catalog"`

	Enrich struct {
		Enabled        bool    `yaml:"enabled" json:"enabled"`
		ReqPerSec      float64 `yaml:"req_per_sec" json:"req_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
		MaxConcurrent  int     `yaml:"max_concurrent" json:"max_concurrent"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	} `yaml:"enrich" json:"enrich"`

	API struct {
		RatePerSec float64 `yaml:"rate_per_sec" json:"rate_per_sec"` // 0 disables throttling
		Burst      int     `yaml:"burst" json:"burst"`
	} `yaml:"api" json:"api"`

	Tags struct {
		Aliases map[string]string `yaml:"aliases" json:"aliases"`
	} `yaml:"tags" json:"tags"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
