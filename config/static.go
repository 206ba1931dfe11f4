package config

import (
	"path/filepath"
	"reflect"

	"github.com/activecm/wafreport/util"
	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		UserConfig   UserCfgStaticCfg `yaml:"UserConfig"`
		Log          LogStaticCfg     `yaml:"LogConfig"`
		Input        InputStaticCfg   `yaml:"Input"`
		Report       ReportStaticCfg  `yaml:"Report"`
		Locale       LocaleStaticCfg  `yaml:"Locale"`
		Path         string           `yaml:"-"`
		Version      string           `yaml:"-"`
		ExactVersion string           `yaml:"-"`
	}

	//UserCfgStaticCfg contains other user configurable options
	UserCfgStaticCfg struct {
		UpdateCheckFrequency int `yaml:"UpdateCheckFrequency" default:"14"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"2"`
		LogPath   string `yaml:"LogPath" default:"/var/lib/wafreport/logs"`
		LogToFile bool   `yaml:"LogToFile" default:"false"`
	}

	//InputStaticCfg names the export files read when no flag overrides them
	InputStaticCfg struct {
		MetaFile       string `yaml:"MetaFile" default:"meta.csv"`
		EventsFile     string `yaml:"EventsFile" default:"events.csv"`
		RulesFile      string `yaml:"RulesFile" default:"rules.csv"`
		ProtectorsFile string `yaml:"ProtectorsFile" default:"protectors.csv"`
	}

	//ReportStaticCfg controls the rendered report
	ReportStaticCfg struct {
		TemplateFile string `yaml:"TemplateFile"`
		OutputFile   string `yaml:"OutputFile" default:"report.html"`
		Format       string `yaml:"Format" default:"html"`
		TopN         int    `yaml:"TopN" default:"10"`
		DateFormat   string `yaml:"DateFormat" default:"02.01.2006"`
		Theme        string `yaml:"Theme" default:"severity"`
		UADelimiter  string `yaml:"UserAgentDelimiter" default:";"`
		PDFFont      string `yaml:"PDFFont"`
	}

	//LocaleStaticCfg controls the timezone and the language of the report
	LocaleStaticCfg struct {
		Timezone string `yaml:"Timezone" default:"Europe/Moscow"`
		Language string `yaml:"Language" default:"ru"`
	}
)

// parseStaticConfig parses the yaml document in cfgFile over the values
// already held by config.
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	err := yaml.Unmarshal(cfgFile, config)
	if err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	// clean all filepaths
	config.Log.LogPath = cleanPath(config.Log.LogPath)
	config.Input.MetaFile = cleanPath(config.Input.MetaFile)
	config.Input.EventsFile = cleanPath(config.Input.EventsFile)
	config.Input.RulesFile = cleanPath(config.Input.RulesFile)
	config.Input.ProtectorsFile = cleanPath(config.Input.ProtectorsFile)
	config.Report.TemplateFile = cleanPath(config.Report.TemplateFile)
	config.Report.OutputFile = cleanPath(config.Report.OutputFile)
	config.Report.PDFFont = cleanPath(config.Report.PDFFont)

	// grab the version constants set by the build process
	config.Version = Version
	config.ExactVersion = ExactVersion

	return nil
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(util.ExpandHome(path))
}
