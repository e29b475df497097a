// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the standard locations.
const FileName = "fglob.yaml"

// EnvVar overrides the config file location.
const EnvVar = "FGLOB_CFG"

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

func init() {
	_, _ = Load()
}

// Load reads the config file into Config. An explicit cfgFilePath wins over
// FGLOB_CFG, which wins over the standard locations.
func Load(cfgFilePath ...string) (Type, error) {
	var path string
	var err error
	if len(cfgFilePath) > 0 && cfgFilePath[0] != "" {
		path = cfgFilePath[0]
	} else if path, err = getConfigPath(); err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// get resolves a dotted key. Inside a namespace the namespaced key is tried
// before the bare key, so match.output shadows output for "fglob match".
func (cfg *Type) get(kspec string) (any, error) {
	if len(cfg.Data) == 0 && cfg.Source != "" {
		_, _ = Load(cfg.Source)
	}

	candidates := []string{kspec}
	if cfg.Namespace != "" {
		candidates = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidates {
		if v, ok := dig(Config.Data, strings.Split(key, ".")); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no valid path found among: %v", candidates)
}

func dig(node any, keys []string) (any, bool) {
	for _, k := range keys {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		if node, ok = m[k]; !ok {
			return nil, false
		}
	}
	return node, true
}

func ensureLoaded() {
	if len(Config.Data) == 0 {
		_, _ = Load()
	}
}

// lookup resolves key and converts it with conv. A missing key yields the
// single default when one is given.
func lookup[T any](key string, defaults []T, kind string, conv func(any) (T, bool)) (T, error) {
	ensureLoaded()

	var zero T
	val, err := Config.get(key)
	if err != nil {
		if len(defaults) == 1 {
			return defaults[0], nil
		}
		return zero, err
	}

	v, ok := conv(val)
	if !ok {
		return zero, fmt.Errorf("%s: value is not a %s", key, kind)
	}
	return v, nil
}

func GetString(key string, defaultValue ...string) (string, error) {
	return lookup(key, defaultValue, "string", func(v any) (string, bool) {
		s, ok := v.(string)
		return s, ok
	})
}

// GetInt accepts any YAML number; floats are truncated.
func GetInt(key string, defaultValue ...int) (int, error) {
	return lookup(key, defaultValue, "int", func(v any) (int, bool) {
		switch n := v.(type) {
		case int:
			return n, true
		case int64:
			return int(n), true
		case float64:
			return int(n), true
		}
		return 0, false
	})
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	return lookup(key, defaultValue, "bool", func(v any) (bool, bool) {
		b, ok := v.(bool)
		return b, ok
	})
}

// GetStringSlice returns a list value. A scalar string is returned as a one
// element slice. Sets (see main) are stored this way.
func GetStringSlice(key string) ([]string, error) {
	return lookup(key, nil, "list of strings", func(v any) ([]string, bool) {
		switch l := v.(type) {
		case string:
			return []string{l}, true
		case []interface{}:
			out := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, s)
			}
			return out, true
		}
		return nil, false
	})
}

func getConfigPath() (string, error) {
	if env := os.Getenv(EnvVar); env != "" {
		fileInfo, err := os.Stat(env)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", env)
		}
		if fileInfo.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvVar, env)
		}
		log.Debugf("using config file: %s", env)
		return env, nil
	}

	for _, env := range []string{"XDG_CONFIG_HOME", "APPDATA", "HOME"} {
		dir := os.Getenv(env)
		if dir == "" {
			continue
		}
		file := filepath.Join(dir, FileName)
		if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
