package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/activecm/wafreport/pkg/locale"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/pkg/summary"
	jsoniter "github.com/json-iterator/go"
	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

var testStart = time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)

func testContext(t *testing.T, lang language.Tag) *summary.Context {
	t.Helper()
	meta := record.RunMeta{
		WebApp:     "shop.example.com",
		Start:      testStart,
		End:        testStart.Add(2 * time.Hour),
		RangeHours: 2,
	}
	var events []record.SecurityEvent
	for i := 0; i < 40; i++ {
		events = append(events, record.SecurityEvent{
			EventID:         fmt.Sprintf("rule_%d", i%7),
			Severity:        record.Severities[i%4],
			Timestamp:       testStart.Add(time.Duration(i*3) * time.Minute),
			ClientIP:        fmt.Sprintf("203.0.113.%d", i%13),
			ClientCountry:   "Netherlands",
			ClientUserAgent: "sqlmap/1.4",
		})
	}
	events[0].EventID = "<script>alert(1)</script>"

	protectors := []record.Protector{{ID: "waf_core", Enabled: true}, {ID: "bot_guard", Enabled: true}}
	rules := []record.ProtectionRule{
		{ProtectorID: "waf_core", Mode: record.ModeBlockRequest, Enabled: true, Attributes: map[string]string{"threshold": "5"}},
		{ProtectorID: "waf_core", Mode: record.ModeCount, Enabled: false},
	}

	ctx, err := summary.Build(meta, events, rules, protectors, summary.Options{
		Localizer:   locale.New(lang),
		ReportID:    "3f1c2d4e",
		GeneratedAt: testStart.Add(48 * time.Hour),
	})
	require.NoError(t, err)
	return ctx
}

func TestRenderHTML(t *testing.T) {
	ctx := testContext(t, language.English)
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, ctx, ""))
	out := buf.String()

	assert.Contains(t, out, "shop.example.com")
	assert.Contains(t, out, "3f1c2d4e")
	assert.Contains(t, out, "01.03.2021")
	assert.Contains(t, out, "<svg", "charts are inlined")
	assert.Contains(t, out, "203.0.113.0")
	assert.Contains(t, out, "Netherlands")
	assert.Contains(t, out, "threshold: 5")
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, out, ctx.Texts["no_rules"], "bot_guard has no rules")
	assert.Contains(t, out, ctx.Theme.High)
}

func TestRenderHTMLRussian(t *testing.T) {
	ctx := testContext(t, language.Russian)
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, ctx, ""))
	assert.Contains(t, buf.String(), "Динамика атак")
	assert.Contains(t, buf.String(), "Блокировка запроса")
}

func TestRenderHTMLNoEvents(t *testing.T) {
	ctx, err := summary.Build(record.RunMeta{Start: testStart, End: testStart.Add(time.Hour), RangeHours: 1},
		nil, nil, nil, summary.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, ctx, ""))
	assert.Contains(t, buf.String(), ctx.Texts["no_events"])
}

func TestRenderHTMLCustomTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{ upper .WebApp }} {{ percent 1 4 }}`), 0644))

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, testContext(t, language.English), path))
	assert.Equal(t, "SHOP.EXAMPLE.COM 25.0%", buf.String())

	require.NoError(t, os.WriteFile(path, []byte(`{{ .WebApp `), 0644))
	assert.Error(t, RenderHTML(&buf, testContext(t, language.English), path))

	assert.Error(t, RenderHTML(&buf, testContext(t, language.English), filepath.Join(dir, "missing.html")))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", percent(3, 0))
	assert.Equal(t, "33.3%", percent(1, 3))
	assert.Equal(t, "100.0%", percent(7, 7))
}

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	ctx := testContext(t, language.English)

	html := filepath.Join(dir, "report.html")
	require.NoError(t, WriteReport(ctx, Options{OutputFile: html, Format: "HTML"}))
	data, err := os.ReadFile(html)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))

	err = WriteReport(ctx, Options{OutputFile: filepath.Join(dir, "r.docx"), Format: "docx"})
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	err = WriteReport(ctx, Options{OutputFile: filepath.Join(dir, "nope", "r.html"), Format: "html"})
	assert.Error(t, err, "the output directory has to exist")
}

func TestRenderPDF(t *testing.T) {
	pdfCompression = false
	defer func() { pdfCompression = true }()

	ctx := testContext(t, language.English)
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, ctx, ""))

	raw := buf.Bytes()
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
	assert.True(t, bytes.Contains(raw, []byte("shop.example.com")))
	assert.True(t, bytes.Contains(raw, []byte("Request blocking")))

	reader := bytes.NewReader(raw)
	require.NoError(t, pdfapi.Validate(reader, nil))
	_, err := reader.Seek(0, 0)
	require.NoError(t, err)
	pages, err := pdfapi.PageCount(reader, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pages, 1)
}

func TestRenderPDFMissingFont(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(&buf, testContext(t, language.English), filepath.Join(t.TempDir(), "missing.ttf"))
	assert.Error(t, err)
}

func TestHexRGB(t *testing.T) {
	cases := []struct {
		msg     string
		in      string
		r, g, b int
	}{
		{"red", "#F44336", 0xF4, 0x43, 0x36},
		{"no hash", "2196f3", 0x21, 0x96, 0xF3},
		{"short", "#FFF", 128, 128, 128},
		{"garbage", "#ZZZZZZ", 128, 128, 128},
	}
	for _, c := range cases {
		r, g, b := hexRGB(c.in)
		assert.Equal(t, []int{c.r, c.g, c.b}, []int{r, g, b}, c.msg)
	}
}

func TestWriteUserAgents(t *testing.T) {
	stats := []summary.UserAgentStat{
		{EventID: "sqli", UserAgent: "Mozilla/5.0 (X11; Linux)", Count: 2},
		{EventID: "xss", UserAgent: "curl/7.68.0", Count: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteUserAgents(&buf, stats, ';'))
	assert.Equal(t, "EVENT_ID;CLIENT_USERAGENT;count\n"+
		"sqli;\"Mozilla/5.0 (X11; Linux)\";2\n"+
		"xss;curl/7.68.0;1\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteUserAgents(&buf, nil, ';'))
	assert.Empty(t, buf.String())

	path := filepath.Join(t.TempDir(), "ua.csv")
	require.NoError(t, WriteUserAgentsFile(path, stats, ','))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "EVENT_ID,CLIENT_USERAGENT,count\n"))
}

func TestWriteJSONFile(t *testing.T) {
	ctx := testContext(t, language.English)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSONFile(path, ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(data, &decoded))
	assert.Equal(t, "shop.example.com", decoded["webapp"])
	assert.Equal(t, float64(40), decoded["total_events"])
	assert.Contains(t, decoded, "charts")
}
