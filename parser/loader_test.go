package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testMetaCSV = "webapp,start_date,end_date,range\n" +
		"shop.example.com,2021-03-01 00:00:00+03:00,2021-03-02 00:00:00+03:00,24\n"
	testEventsCSV = "EVENT_ID,EVENT_SEVERITY,TIMESTAMP,CLIENT_IP,CLIENT_COUNTRY_NAME,CLIENT_BROWSER,CLIENT_USERAGENT\n" +
		"sqli,high,2021-03-01T09:15:00Z,203.0.113.5,Netherlands,Firefox,Mozilla/5.0\n" +
		"xss,Low,2021-03-01T12:30:00.250+03:00,not-an-ip,,,curl/7.68.0\n"
	testProtectorsCSV = "nickname,enabled\n" +
		"web-main,True\n" +
		"api,\n"
	testRulesCSV = "protector,mode,enabled,description\n" +
		"web-main,block_request,True,SQL injection\n" +
		"web-main,count,false,\n"
)

func writeExport(t *testing.T, meta, events, protectors, rules string) Paths {
	dir := t.TempDir()
	paths := Paths{
		Meta:       filepath.Join(dir, "meta.csv"),
		Events:     filepath.Join(dir, "events.csv"),
		Protectors: filepath.Join(dir, "protectors.csv"),
		Rules:      filepath.Join(dir, "rules.csv"),
	}
	require.NoError(t, os.WriteFile(paths.Meta, []byte(meta), 0644))
	require.NoError(t, os.WriteFile(paths.Events, []byte(events), 0644))
	require.NoError(t, os.WriteFile(paths.Protectors, []byte(protectors), 0644))
	require.NoError(t, os.WriteFile(paths.Rules, []byte(rules), 0644))
	return paths
}

func newTestLoader(t *testing.T) (*Loader, *time.Location) {
	res := resources.InitTestResources(t)
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	res.Config.R.Locale.Location = loc
	return NewLoader(res).Quiet(), loc
}

func TestLoad(t *testing.T) {
	loader, loc := newTestLoader(t)
	paths := writeExport(t, testMetaCSV, testEventsCSV, testProtectorsCSV, testRulesCSV)

	data, err := loader.Load(paths)
	require.NoError(t, err)

	assert.Equal(t, "shop.example.com", data.Meta.WebApp)
	assert.Equal(t, 24, data.Meta.RangeHours)
	assert.True(t, data.Meta.Start.Equal(time.Date(2021, 3, 1, 0, 0, 0, 0, loc)))

	require.Len(t, data.Events, 2)
	first := data.Events[0]
	assert.Equal(t, "sqli", first.EventID)
	assert.Equal(t, record.SeverityHigh, first.Severity)
	assert.Equal(t, "12:15", first.Timestamp.Format("15:04"), "timestamps are moved into the report timezone")
	assert.Equal(t, loc, first.Timestamp.Location())
	assert.Equal(t, "Netherlands", first.ClientCountry)
	assert.Equal(t, "Firefox", first.ClientBrowser)

	second := data.Events[1]
	assert.Equal(t, record.SeverityLow, second.Severity)
	assert.Equal(t, "", second.ClientCountry)
	assert.Equal(t, 250*time.Millisecond, time.Duration(second.Timestamp.Nanosecond()))

	assert.Equal(t, []record.Protector{
		{ID: "web_main", Enabled: true},
		{ID: "api", Enabled: false},
	}, data.Protectors)

	require.Len(t, data.Rules, 2)
	assert.Equal(t, "web_main", data.Rules[0].ProtectorID)
	assert.Equal(t, record.ModeBlockRequest, data.Rules[0].Mode)
	assert.True(t, data.Rules[0].Enabled)
	assert.Equal(t, "SQL injection", data.Rules[0].Attr("description"))
	assert.False(t, data.Rules[1].Enabled)
}

func TestLoadMalformed(t *testing.T) {
	testCases := []struct {
		meta, events, protectors, rules string
		field                           string
		msg                             string
	}{
		{
			"webapp,start_date,end_date,range\n", testEventsCSV, testProtectorsCSV, testRulesCSV,
			"", "a meta file without rows",
		},
		{
			"webapp,start_date,end_date,range\nx,yesterday,2021-03-02 00:00:00+03:00,1\n", testEventsCSV, testProtectorsCSV, testRulesCSV,
			"start_date", "an unreadable meta date",
		},
		{
			"webapp,start_date,end_date,range\nx,2021-03-01 00:00:00+03:00,2021-03-02 00:00:00+03:00,one\n", testEventsCSV, testProtectorsCSV, testRulesCSV,
			"range", "a range which is not a number",
		},
		{
			testMetaCSV, "EVENT_ID,EVENT_SEVERITY,TIMESTAMP,CLIENT_IP\nsqli,critical,2021-03-01T09:15:00Z,1.1.1.1\n", testProtectorsCSV, testRulesCSV,
			"EVENT_SEVERITY", "an unknown severity",
		},
		{
			testMetaCSV, "EVENT_ID,EVENT_SEVERITY,TIMESTAMP,CLIENT_IP\nsqli,high,,1.1.1.1\n", testProtectorsCSV, testRulesCSV,
			"TIMESTAMP", "a missing timestamp",
		},
		{
			testMetaCSV, testEventsCSV, "nickname,enabled\nweb,maybe\n", testRulesCSV,
			"enabled", "an unreadable protector flag",
		},
		{
			testMetaCSV, testEventsCSV, testProtectorsCSV, "protector,mode,enabled\nweb,,True\n",
			"mode", "an empty rule mode",
		},
		{
			testMetaCSV, testEventsCSV, testProtectorsCSV, "protector,enabled\nweb,True\n",
			"mode", "a missing rule column",
		},
	}

	for _, test := range testCases {
		loader, _ := newTestLoader(t)
		paths := writeExport(t, test.meta, test.events, test.protectors, test.rules)
		data, err := loader.Load(paths)
		assert.Nil(t, data, test.msg)
		require.True(t, errors.Is(err, record.ErrMalformedRecord), test.msg)

		var malformed *record.MalformedError
		require.True(t, errors.As(err, &malformed), test.msg)
		assert.Equal(t, test.field, malformed.Field, test.msg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader, _ := newTestLoader(t)
	paths := writeExport(t, testMetaCSV, testEventsCSV, testProtectorsCSV, testRulesCSV)
	paths.Rules = filepath.Join(filepath.Dir(paths.Rules), "nope.csv")

	_, err := loader.Load(paths)
	require.Error(t, err)
	assert.False(t, errors.Is(err, record.ErrMalformedRecord))
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoadNoEvents(t *testing.T) {
	loader, _ := newTestLoader(t)
	paths := writeExport(t, testMetaCSV, "EVENT_ID,EVENT_SEVERITY,TIMESTAMP,CLIENT_IP\n", testProtectorsCSV, testRulesCSV)

	data, err := loader.Load(paths)
	require.NoError(t, err)
	assert.Empty(t, data.Events)
	assert.Len(t, data.Rules, 2)
}
