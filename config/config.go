package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/activecm/wafreport/util"
	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
)

//Version is filled at compile time with the git version of wafreport
//Version is filled by "git describe --abbrev=0 --tags"
var Version = "undefined"

//ExactVersion is filled by "git describe --always --long --dirty --tags"
var ExactVersion = "undefined"

// userConfigPath and globalConfigPath are searched when no --config is given
const userConfigPath = "~/.wafreport/config.yaml"
const globalConfigPath = "/etc/wafreport/config.yaml"

// envFile is loaded into the environment before the config is expanded
const envFile = ".env"

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// ErrConfigNotFound is returned when an explicitly requested config file is missing
var ErrConfigNotFound = errors.New("config file not found")

// LoadConfig initializes a Config struct with values read from the config
// file at cfgPath. An empty cfgPath searches the user and global locations
// and falls back to the built in defaults when neither exists.
func LoadConfig(cfgPath string) (*Config, error) {
	// a missing .env file is fine, the environment is used as is
	_ = godotenv.Load(envFile)

	config := &Config{}
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	path, err := findConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	config.S.Path = path

	if path != "" {
		cfgFile, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := parseStaticConfig(cfgFile, &config.S); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		expandConfig(reflect.ValueOf(&config.S).Elem())
		config.S.Version = Version
		config.S.ExactVersion = ExactVersion
	}

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}
	return config, nil
}

// findConfig returns the config file to load, or "" when defaults should be used
func findConfig(cfgPath string) (string, error) {
	if cfgPath != "" {
		if !util.Exists(cfgPath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, cfgPath)
		}
		return cfgPath, nil
	}
	for _, candidate := range []string{util.ExpandHome(userConfigPath), globalConfigPath} {
		if util.Exists(candidate) && !util.IsDir(candidate) {
			return candidate, nil
		}
	}
	return "", nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		if !f.CanSet() {
			continue
		}
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
