package record

import (
	"fmt"
	"strings"
)

//Severity is the ordinal classification of a security event: info < low < medium < high
type Severity int

const (
	//SeverityInfo is informational
	SeverityInfo Severity = iota
	//SeverityLow is a low severity event
	SeverityLow
	//SeverityMedium is a medium severity event
	SeverityMedium
	//SeverityHigh is a high severity event
	SeverityHigh
)

// Severities lists every severity from the least to the most severe
var Severities = []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh}

var severityNames = [...]string{"info", "low", "medium", "high"}

// ParseSeverity converts the textual severity of an export into a Severity
func ParseSeverity(text string) (Severity, error) {
	norm := strings.ToLower(strings.TrimSpace(text))
	for i, name := range severityNames {
		if name == norm {
			return Severity(i), nil
		}
	}
	return SeverityInfo, fmt.Errorf("unknown severity %q", text)
}

// Valid reports whether s is one of the four known severities
func (s Severity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityHigh
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// Tag is the upper case name used to pick chart colors (INFO, LOW, ...)
func (s Severity) Tag() string {
	return strings.ToUpper(s.String())
}

// MarshalText implements encoding.TextMarshaler
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

//SeverityCounts holds one tally per severity
type SeverityCounts struct {
	Info   int `json:"info"`
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Add increments the tally of the given severity. Unknown severities are ignored,
// callers validate before counting.
func (c *SeverityCounts) Add(s Severity) {
	switch s {
	case SeverityInfo:
		c.Info++
	case SeverityLow:
		c.Low++
	case SeverityMedium:
		c.Medium++
	case SeverityHigh:
		c.High++
	}
}

// Get returns the tally of the given severity
func (c SeverityCounts) Get(s Severity) int {
	switch s {
	case SeverityInfo:
		return c.Info
	case SeverityLow:
		return c.Low
	case SeverityMedium:
		return c.Medium
	case SeverityHigh:
		return c.High
	}
	return 0
}

// Total sums all four tallies
func (c SeverityCounts) Total() int {
	return c.Info + c.Low + c.Medium + c.High
}
