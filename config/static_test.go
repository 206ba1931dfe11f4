package config

import (
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticConfigParserTestConfig = `
UserConfig:
    UpdateCheckFrequency: 7
LogConfig:
    LogLevel: 3
    LogPath: /var/lib/wafreport/logs
    LogToFile: true
Input:
    MetaFile: /data/export/meta.csv
    EventsFile: /data/export/events.csv.gz
    RulesFile: /data/export/rules.csv
    ProtectorsFile: /data/export/protectors.csv
Report:
    TemplateFile: /etc/wafreport/template.html
    OutputFile: /tmp/report.pdf
    Format: pdf
    TopN: 5
    DateFormat: 2006-01-02
    Theme: dark
    UserAgentDelimiter: ","
    PDFFont: /usr/share/fonts/DejaVuSans.ttf
Locale:
    Timezone: UTC
    Language: en
`

var testConfigFullExp = StaticCfg{
	UserConfig: UserCfgStaticCfg{
		UpdateCheckFrequency: 7,
	},
	Log: LogStaticCfg{
		LogLevel:  3,
		LogPath:   "/var/lib/wafreport/logs",
		LogToFile: true,
	},
	Input: InputStaticCfg{
		MetaFile:       "/data/export/meta.csv",
		EventsFile:     "/data/export/events.csv.gz",
		RulesFile:      "/data/export/rules.csv",
		ProtectorsFile: "/data/export/protectors.csv",
	},
	Report: ReportStaticCfg{
		TemplateFile: "/etc/wafreport/template.html",
		OutputFile:   "/tmp/report.pdf",
		Format:       "pdf",
		TopN:         5,
		DateFormat:   "2006-01-02",
		Theme:        "dark",
		UADelimiter:  ",",
		PDFFont:      "/usr/share/fonts/DejaVuSans.ttf",
	},
	Locale: LocaleStaticCfg{
		Timezone: "UTC",
		Language: "en",
	},
}

// TestParseStaticConfig ensures that a yaml config
// string is correctly converted into a StaticCfg struct.
func TestParseStaticConfig(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(staticConfigParserTestConfig), config)

	// We are not testing the version setting ensure they are equal
	testConfigFullExp.Version = config.Version
	testConfigFullExp.ExactVersion = config.ExactVersion

	assert.Nil(t, err)
	assert.Equal(t, testConfigFullExp, *config)
}

// TestParseStaticConfigDefaults ensures that values missing from the
// yaml document keep their defaults.
func TestParseStaticConfigDefaults(t *testing.T) {
	config := &StaticCfg{}
	require.NoError(t, defaults.Set(config))
	require.NoError(t, parseStaticConfig([]byte("Report:\n    TopN: 3\n"), config))

	assert.Equal(t, 3, config.Report.TopN)
	assert.Equal(t, "report.html", config.Report.OutputFile)
	assert.Equal(t, "html", config.Report.Format)
	assert.Equal(t, ";", config.Report.UADelimiter)
	assert.Equal(t, "events.csv", config.Input.EventsFile)
	assert.Equal(t, "Europe/Moscow", config.Locale.Timezone)
	assert.Equal(t, "ru", config.Locale.Language)
	assert.Equal(t, 14, config.UserConfig.UpdateCheckFrequency)
	assert.Equal(t, 2, config.Log.LogLevel)
}

// TestFilePathCleaning ensures that paths specified
// in a config file are cleaned up correctly.
func TestFilePathCleaning(t *testing.T) {
	testConfig := `
LogConfig:
    LogPath: /var/lib/wafreport/incorrect/./../logs/
Input:
    EventsFile: ./export/../export/events.csv
`
	testConfigExp := StaticCfg{
		Log: LogStaticCfg{
			LogPath: "/var/lib/wafreport/logs",
		},
		Input: InputStaticCfg{
			EventsFile: "export/events.csv",
		},
	}
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(testConfig), config)

	// We are not testing the version setting ensure they are equal
	testConfigExp.Version = config.Version
	testConfigExp.ExactVersion = config.ExactVersion

	assert.Nil(t, err)
	assert.Equal(t, testConfigExp, *config)
}
