package summary

import (
	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/record"
)

//UserAgentStat is how often one user agent triggered one event type
type UserAgentStat struct {
	EventID   string `json:"EVENT_ID"`
	UserAgent string `json:"CLIENT_USERAGENT"`
	Count     int    `json:"count"`
}

// UserAgentHeader names the columns of the exported user agent table
var UserAgentHeader = []string{"EVENT_ID", "CLIENT_USERAGENT", "count"}

// UserAgents enumerates every (event id, user agent) group with its size,
// ordered by event id and then user agent
func UserAgents(events []record.SecurityEvent) []UserAgentStat {
	pairs := make([]ranking.KeyPair, len(events))
	for i, evt := range events {
		pairs[i] = ranking.KeyPair{First: evt.EventID, Second: evt.ClientUserAgent}
	}

	freq := ranking.PairFrequency(pairs)
	stats := make([]UserAgentStat, len(freq))
	for i, f := range freq {
		stats[i] = UserAgentStat{EventID: f.First, UserAgent: f.Second, Count: f.Count}
	}
	return stats
}
