package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/activecm/wafreport/util"
	"github.com/blang/semver"
	"golang.org/x/text/language"
)

// Formats lists the report formats the renderer can produce
var Formats = []string{"html", "pdf"}

type (
	//RunningCfg holds configuration options that are parsed at run time
	RunningCfg struct {
		Locale  LocaleRunningCfg
		Report  ReportRunningCfg
		Version semver.Version
	}

	//LocaleRunningCfg holds the parsed timezone and language
	LocaleRunningCfg struct {
		Location *time.Location
		Language language.Tag
	}

	//ReportRunningCfg holds the validated report settings
	ReportRunningCfg struct {
		Format    string
		Delimiter rune
	}
)

// initRunningConfig uses data in the static config initialize
// the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	var err error

	running.Locale.Location, err = time.LoadLocation(static.Locale.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", static.Locale.Timezone, err)
	}

	running.Locale.Language, err = language.Parse(static.Locale.Language)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", static.Locale.Language, err)
	}

	running.Report.Format = strings.ToLower(strings.TrimSpace(static.Report.Format))
	if !util.StringInSlice(running.Report.Format, Formats) {
		return fmt.Errorf("invalid report format %q, expected one of %s",
			static.Report.Format, strings.Join(Formats, ", "))
	}

	delim := []rune(static.Report.UADelimiter)
	if len(delim) != 1 {
		return fmt.Errorf("the user agent delimiter must be a single character, got %q", static.Report.UADelimiter)
	}
	running.Report.Delimiter = delim[0]

	// an untagged development build parses as 0.0.0
	running.Version, err = semver.ParseTolerant(static.Version)
	if err != nil {
		running.Version = semver.Version{}
	}
	return nil
}
