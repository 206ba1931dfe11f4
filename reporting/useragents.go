package reporting

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/activecm/wafreport/pkg/summary"
)

// WriteUserAgents writes the user agent table as delimited text with a header
// row. An empty table produces no output at all.
func WriteUserAgents(w io.Writer, stats []summary.UserAgentStat, delim rune) error {
	if len(stats) == 0 {
		return nil
	}
	out := csv.NewWriter(w)
	out.Comma = delim

	if err := out.Write(summary.UserAgentHeader); err != nil {
		return err
	}
	for _, s := range stats {
		if err := out.Write([]string{s.EventID, s.UserAgent, strconv.Itoa(s.Count)}); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}

// WriteUserAgentsFile writes the user agent table to path
func WriteUserAgentsFile(path string, stats []summary.UserAgentStat, delim rune) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteUserAgents(f, stats, delim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
