// Package config loads roller settings from the environment and provides the
// fatal-exit helper shared by the command entry points.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable the roller reads.
const EnvPrefix = "ROLLER_"

// ParseEnv loads configuration from ROLLER_-prefixed environment variables.
// Struct tags name the variable without the prefix.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
