package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule is one entry of a rule file: a pattern expression to match and an
// optional rewrite expression. Language selects the target-language profile
// used for both sides; it defaults to Go when empty.
type Rule struct {
	Name     string `yaml:"name"`
	Language string `yaml:"language,omitempty"`
	Match    string `yaml:"match"`
	Rewrite  string `yaml:"rewrite,omitempty"`
}

// Config is the on-disk shape of a rule file.
type Config struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads and decodes a YAML rule file.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}
	return cfg.Rules, nil
}
