package config

import (
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Dicklesworthstone/sysmoni/internal/errors"
)

// LoadFile reads a YAML config over the defaults. Durations use Go syntax
// ("1s", "500ms"). Missing fields keep their default.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperrors.NewConfigError("reading config: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, apperrors.NewConfigError("parsing config: %v", err)
	}
	return cfg, nil
}
