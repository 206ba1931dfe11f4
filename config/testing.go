package config

import (
	"github.com/creasty/defaults"
)

const testConfig = `
UserConfig:
    UpdateCheckFrequency: 14
LogConfig:
    LogLevel: 3
    LogPath: null
    LogToFile: false
Locale:
    Timezone: UTC
    Language: en
`

// LoadTestingConfig loads the hard coded testing config
func LoadTestingConfig() (*Config, error) {
	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig([]byte(testConfig), &config.S); err != nil {
		return nil, err
	}

	config.S.Version = "v0.0.0+testing"
	config.S.ExactVersion = "v0.0.0+testing"

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}
