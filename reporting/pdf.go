package reporting

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/summary"
	"github.com/activecm/wafreport/util"
	gofpdf "github.com/go-pdf/fpdf"
)

const (
	pdfFamily     = "Helvetica"
	pdfFontFamily = "report"
	pdfLineH      = 6.0
	pdfChartH     = 60.0
	pdfBarH       = 5.0
)

// pdfCompression deflates the page streams
var pdfCompression = true

type pdfReport struct {
	pdf    *gofpdf.Fpdf
	ctx    *summary.Context
	family string
	tr     func(string) string
	width  float64
}

// RenderPDF lays the context out as an A4 document. Without fontFile the core
// Helvetica font is used, which only covers Western European text.
func RenderPDF(w io.Writer, ctx *summary.Context, fontFile string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCompression(pdfCompression)
	if !ctx.GeneratedAt.IsZero() {
		pdf.SetCreationDate(ctx.GeneratedAt)
	}

	r := &pdfReport{pdf: pdf, ctx: ctx, family: pdfFamily}
	if fontFile != "" {
		pdf.AddUTF8Font(pdfFontFamily, "", fontFile)
		pdf.AddUTF8Font(pdfFontFamily, "B", fontFile)
		r.family = pdfFontFamily
		r.tr = func(s string) string { return s }
	} else {
		r.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	r.width = pageW - left - right

	pdf.SetTitle(ctx.Texts["title"], true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		r.font("", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, r.tr(fmt.Sprintf("%s  %s - %s  %d", ctx.WebApp, ctx.StartDate, ctx.EndDate, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	r.header()
	r.severities()
	r.dynamics()
	r.eventTypes()
	r.ranking(ctx.Texts["attacker_ips"], ctx.Texts["ip"], ctx.AttackerIPs, ctx.Charts.AttackerIPs)
	r.ranking(ctx.Texts["countries"], ctx.Texts["country"], ctx.Countries, ctx.Charts.Countries)
	r.ranking(ctx.Texts["browsers"], ctx.Texts["browser"], ctx.Browsers, ctx.Charts.Browsers)
	r.protectors()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("could not render pdf: %w", err)
	}
	return pdf.Output(w)
}

func (r *pdfReport) font(style string, size float64) {
	r.pdf.SetFont(r.family, style, size)
}

func (r *pdfReport) text(key string) string {
	return r.tr(r.ctx.Texts[key])
}

// ensure starts a new page unless h more millimeters fit on the current one
func (r *pdfReport) ensure(h float64) {
	_, pageH := r.pdf.GetPageSize()
	_, _, _, bottom := r.pdf.GetMargins()
	if r.pdf.GetY()+h > pageH-bottom {
		r.pdf.AddPage()
	}
}

func (r *pdfReport) section(title string) {
	r.ensure(20)
	r.pdf.Ln(4)
	r.font("B", 13)
	r.pdf.SetTextColor(30, 41, 59)
	r.pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
	r.pdf.SetTextColor(40, 40, 40)
}

func (r *pdfReport) header() {
	pdf := r.pdf
	r.font("B", 18)
	pdf.CellFormat(0, 10, r.text("title"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := [][2]string{
		{r.text("webapp"), r.tr(r.ctx.WebApp)},
		{r.text("period"), r.tr(r.ctx.StartDate + " - " + r.ctx.EndDate)},
	}
	if !r.ctx.GeneratedAt.IsZero() {
		rows = append(rows, [2]string{r.text("generated"), r.ctx.GeneratedAt.Format("02.01.2006 15:04")})
	}
	if r.ctx.ReportID != "" {
		rows = append(rows, [2]string{r.text("report_id"), r.ctx.ReportID})
	}
	for _, row := range rows {
		r.font("B", 10)
		pdf.CellFormat(45, pdfLineH, row[0], "1", 0, "L", false, 0, "")
		r.font("", 10)
		pdf.CellFormat(r.width-45, pdfLineH, row[1], "1", 1, "L", false, 0, "")
	}
}

func (r *pdfReport) severities() {
	pdf := r.pdf
	r.section(r.text("severity_summary"))

	theme := r.ctx.Theme
	cells := []struct {
		label, color string
		count        int
	}{
		{r.ctx.SeverityLabels["high"], theme.High, r.ctx.Counts.High},
		{r.ctx.SeverityLabels["medium"], theme.Medium, r.ctx.Counts.Medium},
		{r.ctx.SeverityLabels["low"], theme.Low, r.ctx.Counts.Low},
		{r.ctx.SeverityLabels["info"], theme.Info, r.ctx.Counts.Info},
		{r.ctx.Texts["total"], "#FFFFFF", r.ctx.TotalEvents},
	}
	cellW := r.width / float64(len(cells))

	r.font("B", 10)
	for _, c := range cells {
		r.fill(c.color)
		pdf.CellFormat(cellW, pdfLineH+1, r.tr(c.label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	r.font("", 10)
	for _, c := range cells {
		pdf.CellFormat(cellW, pdfLineH+1, strconv.Itoa(c.count), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	if r.ctx.TotalEvents == 0 {
		pdf.Ln(2)
		r.font("", 10)
		pdf.MultiCell(0, pdfLineH, r.text("no_events"), "", "L", false)
	}
}

func (r *pdfReport) dynamics() {
	pdf := r.pdf
	chart := r.ctx.Charts.Dynamics
	r.section(r.text("dynamics"))
	r.ensure(pdfChartH + 20)

	maxY := 0
	for _, s := range chart.Series {
		for _, v := range s.Y {
			maxY = util.Max(maxY, v)
		}
	}
	top := niceMax(maxY)

	left, _, _, _ := pdf.GetMargins()
	x0 := left + 12
	y0 := pdf.GetY()
	plotW := r.width - 12
	yOf := func(v int) float64 { return y0 + pdfChartH - pdfChartH*float64(v)/float64(top) }

	r.font("", 7)
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetLineWidth(0.1)
	for i := 0; i <= axisTicks; i++ {
		v := top * i / axisTicks
		y := yOf(v)
		pdf.Line(x0, y, x0+plotW, y)
		pdf.Text(left, y+1, strconv.Itoa(v))
	}

	n := len(chart.X)
	xOf := func(i int) float64 {
		if n < 2 {
			return x0 + plotW/2
		}
		return x0 + plotW*float64(i)/float64(n-1)
	}
	for i := 0; i < n; i += util.Max(1, n/timeTicks) {
		pdf.Text(xOf(i)-6, y0+pdfChartH+4, chart.X[i].Format(chartTimeFormat))
	}

	pdf.SetLineWidth(0.4)
	for _, s := range chart.Series {
		r.draw(s.Color)
		for i := 1; i < len(s.Y); i++ {
			pdf.Line(xOf(i-1), yOf(s.Y[i-1]), xOf(i), yOf(s.Y[i]))
		}
	}
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)

	// legend
	pdf.SetY(y0 + pdfChartH + 7)
	pdf.SetX(x0)
	r.font("", 8)
	for _, s := range chart.Series {
		r.fill(s.Color)
		pdf.CellFormat(3, 3, "", "", 0, "", true, 0, "")
		pdf.CellFormat(25, 3, " "+r.tr(r.ctx.SeverityLabels[s.Name]), "", 0, "L", false, 0, "")
	}
	pdf.Ln(6)
}

func (r *pdfReport) eventTypes() {
	pdf := r.pdf
	r.section(r.text("event_types"))

	list := r.ctx.EventTypes
	if len(list) == 0 {
		return
	}
	labelW, countW := 55.0, 20.0
	barW := r.width - labelW - countW
	maxCount := 1
	for _, e := range list {
		maxCount = util.Max(maxCount, e.Count)
	}

	r.font("", 9)
	for _, e := range list {
		r.ensure(pdfBarH + 1)
		y := pdf.GetY()
		pdf.CellFormat(labelW, pdfBarH, r.tr(truncate(e.Label, 32)), "", 0, "L", false, 0, "")
		r.fill(r.ctx.Theme.TagColor(e.Tag))
		pdf.Rect(pdf.GetX(), y+0.5, barW*float64(e.Count)/float64(maxCount), pdfBarH-1, "F")
		pdf.SetX(pdf.GetX() + barW)
		pdf.CellFormat(countW, pdfBarH, strconv.Itoa(e.Count), "", 1, "R", false, 0, "")
	}
}

// ranking writes the table of a ranking, every row carries a bar of its share
func (r *pdfReport) ranking(title, column string, list ranking.List, chart summary.PieChart) {
	if len(list) == 0 {
		return
	}
	pdf := r.pdf
	r.section(r.tr(title))

	labelW, countW, pctW := 70.0, 22.0, 20.0
	barW := r.width - labelW - countW - pctW
	total := list.Total()

	r.font("B", 9)
	pdf.SetFillColor(30, 41, 59)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(labelW, pdfLineH, r.tr(column), "1", 0, "L", true, 0, "")
	pdf.CellFormat(countW, pdfLineH, r.text("events"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(pctW, pdfLineH, "%", "1", 0, "R", true, 0, "")
	pdf.CellFormat(barW, pdfLineH, "", "1", 1, "", true, 0, "")
	pdf.SetTextColor(40, 40, 40)

	r.font("", 9)
	for i, e := range list {
		r.ensure(pdfLineH)
		y := pdf.GetY()
		pdf.CellFormat(labelW, pdfLineH, r.tr(truncate(e.Label, 40)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(countW, pdfLineH, strconv.Itoa(e.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(pctW, pdfLineH, percent(e.Count, total), "1", 0, "R", false, 0, "")
		x := pdf.GetX()
		pdf.CellFormat(barW, pdfLineH, "", "1", 1, "", false, 0, "")
		if total > 0 && i < len(chart.Colors) {
			r.fill(chart.Colors[i])
			pdf.Rect(x+1, y+1, (barW-2)*float64(e.Count)/float64(total), pdfLineH-2, "F")
		}
	}
}

func (r *pdfReport) protectors() {
	pdf := r.pdf
	r.section(r.text("protectors"))

	for _, id := range r.ctx.ProtectorIDs {
		r.ensure(3 * pdfLineH)
		r.font("B", 10)
		pdf.CellFormat(0, pdfLineH, r.tr(r.ctx.Texts["protector"]+": "+id), "", 1, "L", false, 0, "")

		rules := r.ctx.RulesFor(id)
		r.font("", 9)
		if len(rules) == 0 {
			pdf.MultiCell(0, pdfLineH, r.text("no_rules"), "", "L", false)
			continue
		}
		for _, rule := range rules {
			r.ensure(pdfLineH)
			pdf.CellFormat(60, pdfLineH, r.tr(rule.DisplayMode), "1", 0, "L", false, 0, "")
			pdf.MultiCell(0, pdfLineH, r.tr(attributes(rule.Attributes)), "1", "L", false)
		}
		pdf.Ln(2)
	}
}

// attributes joins the non-empty attributes sorted by name
func attributes(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k, v := range attrs {
		if v != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + attrs[k]
	}
	return strings.Join(parts, "; ")
}

func (r *pdfReport) fill(hex string) {
	red, green, blue := hexRGB(hex)
	r.pdf.SetFillColor(red, green, blue)
}

func (r *pdfReport) draw(hex string) {
	red, green, blue := hexRGB(hex)
	r.pdf.SetDrawColor(red, green, blue)
}

// hexRGB decodes #RRGGBB, anything else is gray
func hexRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 128, 128, 128
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 128, 128, 128
	}
	return int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)
}
