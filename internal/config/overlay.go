// internal/config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type tagsFile struct {
	Tags struct {
		Aliases map[string]string `yaml:"aliases"`
	} `yaml:"tags"`
}

// OverlayTagAliases merges style-tag aliases from an optional side file
// (tags.yml next to the user config) over the main config's aliases.
func OverlayTagAliases(cfg *Config, tagsPath string) error {
	b, err := os.ReadFile(tagsPath)
	if err != nil {
		// Missing tags file should not kill startup
		return nil
	}

	var tf tagsFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return err
	}

	if len(tf.Tags.Aliases) == 0 {
		return nil
	}
	if cfg.Tags.Aliases == nil {
		cfg.Tags.Aliases = make(map[string]string, len(tf.Tags.Aliases))
	}
	for k, v := range tf.Tags.Aliases {
		cfg.Tags.Aliases[k] = v
	}
	return nil
}
