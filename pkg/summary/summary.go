// Package summary consolidates the record collections of one export into the
// Context consumed by the renderers.
package summary

import (
	"sync"
	"time"

	"github.com/activecm/wafreport/pkg/locale"
	"github.com/activecm/wafreport/pkg/protector"
	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/pkg/timeline"
)

// DefaultTopN is the size of every ranking before the Others entry
const DefaultTopN = 10

// DefaultDateFormat renders report dates as dd.mm.yyyy
const DefaultDateFormat = "02.01.2006"

type (
	//Options tune the builder. The zero value is usable.
	Options struct {
		TopN       int
		DateFormat string
		Theme      Theme
		Localizer  locale.Localizer
		// ReportID and GeneratedAt are stamped into the context verbatim
		ReportID    string
		GeneratedAt time.Time
	}

	//Context is everything the report template needs
	Context struct {
		ReportID    string         `json:"report_id"`
		GeneratedAt time.Time      `json:"generated_at"`
		WebApp      string         `json:"webapp"`
		StartDate   string         `json:"start_date"`
		EndDate     string         `json:"end_date"`
		Meta        record.RunMeta `json:"meta"`

		Counts      record.SeverityCounts `json:"counts"`
		TotalEvents int                   `json:"total_events"`
		BucketCount int                   `json:"bucket_count"`
		Timeline    []timeline.Bucket     `json:"timeline"`

		EventTypes  ranking.List `json:"event_types"`
		AttackerIPs ranking.List `json:"attacker_ips"`
		Countries   ranking.List `json:"countries"`
		Browsers    ranking.List `json:"browsers"`

		Protectors       protector.Table `json:"protectors"`
		ProtectorIDs     []string        `json:"protector_ids"`
		ProtectorEnabled map[string]bool `json:"protector_enabled"`

		SeverityLabels map[string]string `json:"severity_labels"`
		Texts          map[string]string `json:"texts"`
		Theme          Theme             `json:"theme"`
		Charts         Charts            `json:"charts"`
	}
)

// Build runs one aggregation pass over the collections. It does no I/O and
// never mutates its inputs. The only error is a malformed event.
func Build(meta record.RunMeta, events []record.SecurityEvent, rules []record.ProtectionRule,
	protectors []record.Protector, opts Options) (*Context, error) {

	if err := record.ValidateEvents(events); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)

	ctx := &Context{
		ReportID:    opts.ReportID,
		GeneratedAt: opts.GeneratedAt,
		WebApp:      meta.WebApp,
		StartDate:   formatDate(meta.Start, opts.DateFormat),
		EndDate:     formatDate(meta.End, opts.DateFormat),
		Meta:        meta,
		Counts:      Tally(events),
		TotalEvents: len(events),
		BucketCount: timeline.BucketCount(meta.RangeHours),
		Theme:       opts.Theme,
	}

	// the bucketing and the rankings are independent of each other
	var wg sync.WaitGroup
	var bucketErr error
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	run(func() {
		ctx.Timeline, bucketErr = timeline.BucketizeWindow(events, ctx.BucketCount, meta.Start, meta.End)
	})
	run(func() { ctx.EventTypes = RankEventTypes(events, opts.TopN) })
	run(func() { ctx.AttackerIPs = ranking.Rank(field(events, clientIP), opts.TopN) })
	run(func() { ctx.Countries = ranking.Rank(ranking.NonEmpty(field(events, clientCountry)), opts.TopN) })
	run(func() { ctx.Browsers = ranking.Rank(ranking.NonEmpty(field(events, clientBrowser)), opts.TopN) })
	wg.Wait()
	if bucketErr != nil {
		return nil, bucketErr
	}

	ctx.Protectors = protector.Resolve(protectors, Localize(rules, opts.Localizer))
	ctx.ProtectorIDs = protector.EnabledIDs(protectors)
	ctx.ProtectorEnabled = protector.States(protectors)

	ctx.SeverityLabels = make(map[string]string, len(record.Severities))
	for _, sev := range record.Severities {
		ctx.SeverityLabels[sev.String()] = opts.Localizer.SeverityLabel(sev)
	}
	ctx.Texts = make(map[string]string, len(locale.TextKeys))
	for _, key := range locale.TextKeys {
		ctx.Texts[key] = opts.Localizer.Text(key)
	}
	ctx.Charts = NewCharts(ctx)
	return ctx, nil
}

// Tally counts the events of every severity straight from the collection
func Tally(events []record.SecurityEvent) record.SeverityCounts {
	var counts record.SeverityCounts
	for _, evt := range events {
		counts.Add(evt.Severity)
	}
	return counts
}

// RankEventTypes ranks event ids tagged with the severity they were first seen with
func RankEventTypes(events []record.SecurityEvent, n int) ranking.List {
	pairs := make([]ranking.Pair, len(events))
	for i, evt := range events {
		pairs[i] = ranking.Pair{Key: evt.EventID, Tag: evt.Severity.Tag()}
	}
	return ranking.RankTagged(pairs, n)
}

// Localize returns a copy of the rules with DisplayMode filled in
func Localize(rules []record.ProtectionRule, loc locale.Localizer) []record.ProtectionRule {
	out := make([]record.ProtectionRule, len(rules))
	for i, r := range rules {
		r.DisplayMode = loc.ModeLabel(r.Mode)
		out[i] = r
	}
	return out
}

// RulesFor returns the enabled rules of an enabled protector, nil otherwise
func (c *Context) RulesFor(id string) []record.ProtectionRule {
	return c.Protectors[id]
}

// Enabled reports whether the protector is enabled
func (c *Context) Enabled(id string) bool {
	return c.ProtectorEnabled[id]
}

func withDefaults(opts Options) Options {
	if opts.TopN == 0 {
		opts.TopN = DefaultTopN
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	if opts.Theme.Name == "" {
		opts.Theme = SeverityTheme
	}
	if opts.Localizer == nil {
		opts.Localizer = locale.Identity{}
	}
	return opts
}

func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

func clientIP(evt record.SecurityEvent) string      { return evt.ClientIP }
func clientCountry(evt record.SecurityEvent) string { return evt.ClientCountry }
func clientBrowser(evt record.SecurityEvent) string { return evt.ClientBrowser }

func field(events []record.SecurityEvent, get func(record.SecurityEvent) string) []string {
	out := make([]string, len(events))
	for i, evt := range events {
		out[i] = get(evt)
	}
	return out
}
