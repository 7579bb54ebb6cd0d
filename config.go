package main

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	envPrefix         = "TAILPURGE_"
	defaultConfigPath = ".tailpurge.yaml"
)

func configPath() string {
	if p := os.Getenv(envPrefix + "CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

// loadConfig fills c from the YAML file at path, if there is one, and then
// from TAILPURGE_* environment variables. Flags are parsed afterwards and
// take precedence over both.
func loadConfig(c *config, path string) error {
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.WithMessagef(err, "loading config file %s", path)
		}
	}

	// TAILPURGE_NO_GITIGNORE -> no-gitignore
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)),
			"_", "-",
		)
	}), nil)
	if err != nil {
		return errors.WithMessage(err, "loading environment")
	}

	return errors.WithStack(k.Unmarshal("", c))
}
