package e2etest

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "E2ESOURCE__"
	keyThrowAfterN    = "throw_after_n_records"
	keySchemaVersion  = "schema_version"
	supportedSchemaV1 = "v1"
)

type Config struct {
	ThrowAfterNRecords int64 `koanf:"throw_after_n_records"`
}

// ---------------------------------------------------------------------------
// Loader
// ---------------------------------------------------------------------------

// LoadConfig merges the config file (YAML or JSON, if present) with env-vars
// (prefix `E2ESOURCE__`, delimiter `__`).
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("e2e-test config %s: %w", path, err)
		}
	}
	sv := k.String(keySchemaVersion)
	if sv != "" && sv != supportedSchemaV1 {
		return Config{}, fmt.Errorf("e2e-test schema_version %q not supported (want %s)", sv, supportedSchemaV1)
	}

	_ = k.Load(env.Provider(envPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)

	return fromKoanf(k)
}

func fromKoanf(k *koanf.Koanf) (Config, error) {
	if !k.Exists(keyThrowAfterN) {
		return Config{}, &ConfigError{Field: keyThrowAfterN, Reason: "required"}
	}
	n, err := toCount(k.Get(keyThrowAfterN))
	if err != nil {
		return Config{}, &ConfigError{Field: keyThrowAfterN, Reason: err.Error()}
	}
	return Config{ThrowAfterNRecords: n}, nil
}

// toCount accepts the shapes the parsers produce for a number: ints from
// YAML/JSON files, floats from JSON-ish input, strings from env-vars.
func toCount(v any) (int64, error) {
	var n int64
	switch t := v.(type) {
	case int:
		n = int64(t)
	case int64:
		n = t
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("%d out of range", t)
		}
		n = int64(t)
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
		if t != math.Trunc(t) || t >= math.MaxInt64 || t < math.MinInt64 {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		n = int64(t)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", t)
		}
		n = i
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}
