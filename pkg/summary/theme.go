package summary

import (
	"strings"

	"github.com/activecm/wafreport/pkg/record"
)

//Theme holds one chart color per severity tag
type Theme struct {
	Name   string `json:"name"`
	Info   string `json:"info"`
	Low    string `json:"low"`
	Medium string `json:"medium"`
	High   string `json:"high"`
}

var (
	// SeverityTheme is the default palette
	SeverityTheme = Theme{Name: "severity", Info: "#DDDDDD", Low: "#2196F3", Medium: "#FF9800", High: "#F44336"}
	// DarkTheme suits dark dashboards
	DarkTheme = Theme{Name: "dark", Info: "#a9a9a9", Low: "#70dbed", Medium: "#eab839", High: "#890f02"}
	// CorpTheme follows the corporate palette
	CorpTheme = Theme{Name: "corp", Info: "#CCCCCC", Low: "#483B4C", Medium: "#FFC502", High: "#C20000"}
)

// Palette is the qualitative palette of the pie charts
var Palette = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
}

// ThemeByName looks a theme up by name, falling back to SeverityTheme
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DarkTheme.Name:
		return DarkTheme
	case CorpTheme.Name:
		return CorpTheme
	}
	return SeverityTheme
}

// Color returns the color of a severity
func (t Theme) Color(sev record.Severity) string {
	switch sev {
	case record.SeverityLow:
		return t.Low
	case record.SeverityMedium:
		return t.Medium
	case record.SeverityHigh:
		return t.High
	}
	return t.Info
}

// TagColor returns the color of a ranking tag such as HIGH or INFO
func (t Theme) TagColor(tag string) string {
	sev, err := record.ParseSeverity(tag)
	if err != nil {
		return t.Info
	}
	return t.Color(sev)
}
