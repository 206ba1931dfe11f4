package summary

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/activecm/wafreport/pkg/locale"
	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/pkg/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var msk = time.FixedZone("MSK", 3*60*60)

var testMeta = record.RunMeta{
	WebApp:     "shop.example.com",
	Start:      time.Date(2021, 3, 1, 0, 0, 0, 0, msk),
	End:        time.Date(2021, 3, 1, 1, 0, 0, 0, msk),
	RangeHours: 1,
}

func testEvent(id string, sev record.Severity, minute int, ip string) record.SecurityEvent {
	return record.SecurityEvent{
		EventID:         id,
		Severity:        sev,
		Timestamp:       testMeta.Start.Add(time.Duration(minute) * time.Minute),
		ClientIP:        ip,
		ClientUserAgent: "curl/7.68.0",
	}
}

func TestBuildScenario(t *testing.T) {
	events := []record.SecurityEvent{
		testEvent("sqli", record.SeverityHigh, 1, "10.0.0.1"),
		testEvent("sqli", record.SeverityHigh, 2, "10.0.0.1"),
		testEvent("xss", record.SeverityHigh, 3, "10.0.0.2"),
		testEvent("scanner", record.SeverityLow, 4, "10.0.0.3"),
		testEvent("scanner", record.SeverityLow, 5, "10.0.0.3"),
	}

	ctx, err := Build(testMeta, events, nil, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, record.SeverityCounts{High: 3, Low: 2}, ctx.Counts)
	assert.Equal(t, 24, ctx.BucketCount)
	assert.Len(t, ctx.Timeline, 24)
	assert.Equal(t, len(events), ctx.Counts.Total())
	assert.Equal(t, ctx.Counts, timeline.Totals(ctx.Timeline), "histogram agrees with the direct tally")

	assert.Equal(t, "shop.example.com", ctx.WebApp)
	assert.Equal(t, "01.03.2021", ctx.StartDate)
	assert.Equal(t, "01.03.2021", ctx.EndDate)

	require.Len(t, ctx.EventTypes, 3)
	assert.Equal(t, ranking.Entry{Label: "sqli", Count: 2, Tag: "HIGH"}, ctx.EventTypes[0])
	assert.Equal(t, ranking.Entry{Label: "scanner", Count: 2, Tag: "LOW"}, ctx.EventTypes[1])
	assert.Empty(t, ctx.Countries, "empty countries are never ranked")
	assert.Empty(t, ctx.Browsers)
	assert.Len(t, ctx.AttackerIPs, 3)
}

func TestBuildCrossChecks(t *testing.T) {
	var events []record.SecurityEvent
	for i := 0; i < 300; i++ {
		evt := testEvent(fmt.Sprintf("rule-%d", i%17), record.Severities[i%4], i, fmt.Sprintf("192.168.0.%d", i%23))
		if i%3 == 0 {
			evt.ClientCountry = fmt.Sprintf("country-%d", i%13)
			evt.ClientBrowser = fmt.Sprintf("browser-%d", i%5)
		}
		events = append(events, evt)
	}
	meta := testMeta
	meta.RangeHours = 8

	ctx, err := Build(meta, events, nil, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, 32, ctx.BucketCount)
	assert.Equal(t, len(events), ctx.Counts.Total())
	for _, sev := range record.Severities {
		sum := 0
		for _, c := range timeline.Counts(ctx.Timeline, sev) {
			sum += c
		}
		assert.Equal(t, ctx.Counts.Get(sev), sum, sev.String())
	}

	for name, list := range map[string]ranking.List{
		"event types": ctx.EventTypes, "ips": ctx.AttackerIPs,
	} {
		require.Len(t, list, DefaultTopN+1, name)
		assert.Equal(t, ranking.OthersLabel, list[DefaultTopN].Label, name)
		assert.Equal(t, len(events), list.Total(), name)
	}
	assert.Equal(t, ranking.OthersTag, ctx.EventTypes[DefaultTopN].Tag)

	assert.Equal(t, 100, ctx.Countries.Total(), "only events with a country are ranked")
	assert.Len(t, ctx.Browsers, 5)
	assert.False(t, ctx.Browsers.Truncated())
}

func TestBuildNoEvents(t *testing.T) {
	ctx, err := Build(testMeta, nil, nil, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, record.SeverityCounts{}, ctx.Counts)
	require.Len(t, ctx.Timeline, 24)
	assert.True(t, ctx.Timeline[0].Start.Equal(testMeta.Start), "the empty timeline spans the declared window")
	assert.Empty(t, ctx.EventTypes)
	require.Len(t, ctx.Charts.Dynamics.Series, 4)
	for _, s := range ctx.Charts.Dynamics.Series {
		assert.Equal(t, make([]int, 24), s.Y)
	}
}

func TestBuildRejectsUnknownSeverity(t *testing.T) {
	events := []record.SecurityEvent{testEvent("x", record.Severity(42), 0, "1.1.1.1")}
	_, err := Build(testMeta, events, nil, nil, Options{})
	assert.True(t, errors.Is(err, record.ErrMalformedRecord))
}

func TestBuildProtectors(t *testing.T) {
	protectors := []record.Protector{
		{ID: "A", Enabled: true},
		{ID: "B", Enabled: false},
	}
	rules := []record.ProtectionRule{
		{ProtectorID: "A", Mode: record.ModeBlockRequest, Enabled: true},
		{ProtectorID: "A", Mode: record.ModeBlockIP, Enabled: false},
		{ProtectorID: "A", Mode: record.ModeCount, Enabled: true},
		{ProtectorID: "B", Mode: record.ModeCount, Enabled: true},
	}

	ctx, err := Build(testMeta, nil, rules, protectors, Options{Localizer: locale.New(language.Russian)})
	require.NoError(t, err)

	require.Len(t, ctx.Protectors, 1)
	got := ctx.RulesFor("A")
	require.Len(t, got, 2)
	assert.Equal(t, "Блокировка запроса", got[0].DisplayMode)
	assert.Equal(t, "Отправка в коррелятор", got[1].DisplayMode)
	assert.Nil(t, ctx.RulesFor("B"))
	assert.True(t, ctx.Enabled("A"))
	assert.False(t, ctx.Enabled("B"))
	assert.Equal(t, []string{"A"}, ctx.ProtectorIDs)
	assert.Equal(t, "", rules[0].DisplayMode, "input rules are not modified")
	assert.Equal(t, "Высокий", ctx.SeverityLabels["high"])
	assert.Equal(t, "Динамика атак", ctx.Texts["dynamics"])
}

func TestBuildOptions(t *testing.T) {
	now := time.Date(2021, 3, 2, 12, 0, 0, 0, time.UTC)
	var events []record.SecurityEvent
	for i := 0; i < 6; i++ {
		events = append(events, testEvent("e", record.SeverityMedium, i, fmt.Sprintf("10.1.1.%d", i)))
	}
	ctx, err := Build(testMeta, events, nil, nil, Options{
		TopN:        3,
		DateFormat:  "2006-01-02",
		Theme:       DarkTheme,
		ReportID:    "abc",
		GeneratedAt: now,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", ctx.ReportID)
	assert.Equal(t, now, ctx.GeneratedAt)
	assert.Equal(t, "2021-03-01", ctx.StartDate)
	assert.Len(t, ctx.AttackerIPs, 4)
	assert.Equal(t, 3, ctx.AttackerIPs[3].Count)
	assert.Equal(t, DarkTheme.Medium, ctx.Charts.Dynamics.Series[2].Color)
	assert.Equal(t, []string{DarkTheme.Medium}, ctx.Charts.EventTypes.Colors)
}

func TestUserAgents(t *testing.T) {
	events := []record.SecurityEvent{
		{EventID: "xss", ClientUserAgent: "Mozilla/5.0"},
		{EventID: "sqli", ClientUserAgent: "sqlmap/1.4"},
		{EventID: "sqli", ClientUserAgent: "sqlmap/1.4"},
		{EventID: "sqli", ClientUserAgent: "Mozilla/5.0"},
	}
	assert.Equal(t, []UserAgentStat{
		{EventID: "sqli", UserAgent: "Mozilla/5.0", Count: 1},
		{EventID: "sqli", UserAgent: "sqlmap/1.4", Count: 2},
		{EventID: "xss", UserAgent: "Mozilla/5.0", Count: 1},
	}, UserAgents(events))
	assert.Empty(t, UserAgents(nil))
}

func TestThemeByName(t *testing.T) {
	assert.Equal(t, DarkTheme, ThemeByName("DARK"))
	assert.Equal(t, CorpTheme, ThemeByName("corp"))
	assert.Equal(t, SeverityTheme, ThemeByName("neon"))
	assert.Equal(t, SeverityTheme.Info, SeverityTheme.TagColor("Others"))
	assert.Equal(t, SeverityTheme.High, SeverityTheme.TagColor("HIGH"))
}

func TestRankEventTypesFirstSeenSeverity(t *testing.T) {
	events := []record.SecurityEvent{
		testEvent("sqli", record.SeverityMedium, 0, "10.0.0.1"),
		testEvent("sqli", record.SeverityHigh, 1, "10.0.0.1"),
		testEvent("sqli", record.SeverityHigh, 2, "10.0.0.1"),
	}
	assert.Equal(t, ranking.List{{Label: "sqli", Count: 3, Tag: "MEDIUM"}}, RankEventTypes(events, DefaultTopN))
}
