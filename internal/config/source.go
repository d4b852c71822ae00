package config

import (
	"e2esource/source/e2etest"
)

// LoadSourceConfig delegates to the e2e-test source loader while centralizing
// loader entrypoints under internal/config.
func LoadSourceConfig(path string) (e2etest.Config, error) {
	return e2etest.LoadConfig(path)
}
