package record

import (
	"strconv"
	"strings"
)

//Mode is the action a protection rule takes
type Mode string

const (
	ModeBlockRequest  Mode = "block_request"
	ModeBlockIP       Mode = "block_ip"
	ModeBlockSession  Mode = "block_session"
	ModeSanitize      Mode = "sanitize"
	ModeMonitoring    Mode = "monitoring"
	ModeCount         Mode = "count"
	ModeUnknown       Mode = "unknown"
	ModeNotApplicable Mode = "n/a"
)

// Modes lists the modes the firewall is known to export
var Modes = []Mode{
	ModeBlockRequest, ModeBlockIP, ModeBlockSession, ModeSanitize,
	ModeMonitoring, ModeCount, ModeUnknown, ModeNotApplicable,
}

// ParseMode normalizes the textual mode of a rule. Modes the firewall added
// after this list was written are kept verbatim so they still reach the report.
func ParseMode(text string) Mode {
	return Mode(strings.TrimSpace(text))
}

// Known reports whether m is one of Modes
func (m Mode) Known() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

func (m Mode) String() string {
	return string(m)
}

// ParseBool is the single boolean policy for the textual flags of the export.
// An empty value is false, the strconv spellings (True, false, 1, F, ...) are
// accepted and anything else is an error.
func ParseBool(text string) (bool, error) {
	norm := strings.TrimSpace(text)
	if norm == "" {
		return false, nil
	}
	return strconv.ParseBool(norm)
}
