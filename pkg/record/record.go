package record

import (
	"strings"
	"time"
)

type (
	//RunMeta describes the reporting window of one firewall export
	RunMeta struct {
		WebApp     string    `json:"webapp"`
		Start      time.Time `json:"start"`
		End        time.Time `json:"end"`
		RangeHours int       `json:"range_hours"`
	}

	//SecurityEvent is a single firewall detection. It is the unit of all aggregation.
	SecurityEvent struct {
		EventID         string    `json:"event_id"`
		Severity        Severity  `json:"severity"`
		Timestamp       time.Time `json:"timestamp"`
		ClientIP        string    `json:"client_ip"`
		ClientCountry   string    `json:"client_country"`
		ClientBrowser   string    `json:"client_browser"`
		ClientUserAgent string    `json:"client_useragent"`
	}

	//ProtectionRule is a configured protection behavior owned by one protector
	ProtectionRule struct {
		ProtectorID string `json:"protector_id"`
		Mode        Mode   `json:"mode"`
		Enabled     bool   `json:"enabled"`
		// DisplayMode is the localized label for Mode, filled in by the builder
		DisplayMode string `json:"display_mode"`
		// Attributes holds the export columns that have no typed field
		Attributes map[string]string `json:"attributes,omitempty"`
	}

	//Protector is a named protection module
	Protector struct {
		ID      string `json:"id"`
		Enabled bool   `json:"enabled"`
	}
)

// Attr returns the named export column of the rule or an empty string
func (r ProtectionRule) Attr(name string) string {
	return r.Attributes[name]
}

// NormalizeID makes protector nicknames safe to use as template identifiers
func NormalizeID(id string) string {
	return strings.Replace(strings.TrimSpace(id), "-", "_", -1)
}

// Validate checks the invariants of the run metadata
func (m RunMeta) Validate() error {
	if m.RangeHours < 0 {
		return &MalformedError{Kind: "meta", Field: "range", Reason: "negative range"}
	}
	if !m.Start.IsZero() && !m.End.IsZero() && m.End.Before(m.Start) {
		return &MalformedError{Kind: "meta", Field: "end_date", Reason: "end date is before start date"}
	}
	return nil
}

// ValidateEvents makes sure every event carries a known severity and a timestamp.
// The row numbers in the returned error are 1-based positions in the slice.
func ValidateEvents(events []SecurityEvent) error {
	for i, evt := range events {
		if !evt.Severity.Valid() {
			return &MalformedError{Kind: "event", Row: i + 1, Field: "severity", Value: evt.Severity.String(), Reason: "unknown severity"}
		}
		if evt.Timestamp.IsZero() {
			return &MalformedError{Kind: "event", Row: i + 1, Field: "timestamp", Reason: "missing timestamp"}
		}
	}
	return nil
}
