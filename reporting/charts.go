package reporting

import (
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/activecm/wafreport/pkg/summary"
)

const (
	chartWidth   = 1000
	chartHeight  = 360
	chartMarginL = 48
	chartMarginR = 16
	chartMarginT = 16
	chartMarginB = 56
	pieSize      = 260
	axisTicks    = 4
	timeTicks    = 6
)

// chartTimeFormat labels the time axis of the dynamics chart
const chartTimeFormat = "02.01 15:04"

// lineChartSVG draws every series of the chart as a filled line over a shared time axis
func lineChartSVG(chart summary.LineChart) template.HTML {
	n := len(chart.X)
	if n == 0 {
		return ""
	}

	maxY := 0
	for _, s := range chart.Series {
		for _, y := range s.Y {
			if y > maxY {
				maxY = y
			}
		}
	}

	plotW := float64(chartWidth - chartMarginL - chartMarginR)
	plotH := float64(chartHeight - chartMarginT - chartMarginB)
	xAt := func(i int) float64 {
		if n == 1 {
			return chartMarginL + plotW/2
		}
		return chartMarginL + plotW*float64(i)/float64(n-1)
	}
	yAt := func(v int) float64 {
		return chartMarginT + plotH - plotH*float64(v)/float64(niceMax(maxY))
	}

	var b strings.Builder
	openSVG(&b, chartWidth, chartHeight, "chart chart-line")
	drawValueAxis(&b, maxY, plotW, plotH)

	baseline := yAt(0)
	for _, s := range chart.Series {
		points := make([]string, len(s.Y))
		for i, y := range s.Y {
			points[i] = fmt.Sprintf("%.1f,%.1f", xAt(i), yAt(y))
		}
		area := fmt.Sprintf("%.1f,%.1f %s %.1f,%.1f", xAt(0), baseline, strings.Join(points, " "), xAt(len(s.Y)-1), baseline)
		fmt.Fprintf(&b, `<polygon points="%s" fill="%s" fill-opacity="0.25" stroke="none"/>`, area, attr(s.Color))
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2.5"/>`, strings.Join(points, " "), attr(s.Color))
	}

	step := int(math.Ceil(float64(n) / timeTicks))
	for i := 0; i < n; i += step {
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" class="tick">%s</text>`,
			xAt(i), chartHeight-chartMarginB+18, chart.X[i].Format(chartTimeFormat))
	}

	legendX := chartMarginL
	for _, s := range chart.Series {
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="12" height="12" fill="%s"/>`, legendX, chartHeight-18, attr(s.Color))
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="legend">%s</text>`, legendX+16, chartHeight-8, attr(s.Name))
		legendX += 110
	}

	b.WriteString("</svg>")
	return template.HTML(b.String())
}

// barChartSVG draws one labelled bar per entry
func barChartSVG(chart summary.BarChart) template.HTML {
	n := len(chart.X)
	if n == 0 {
		return ""
	}

	maxY := 0
	for _, y := range chart.Y {
		if y > maxY {
			maxY = y
		}
	}

	plotW := float64(chartWidth - chartMarginL - chartMarginR)
	plotH := float64(chartHeight - chartMarginT - chartMarginB)
	slot := plotW / float64(n)
	barW := slot * 0.7

	var b strings.Builder
	openSVG(&b, chartWidth, chartHeight, "chart chart-bar")
	drawValueAxis(&b, maxY, plotW, plotH)

	for i, y := range chart.Y {
		h := plotH * float64(y) / float64(niceMax(maxY))
		x := chartMarginL + slot*float64(i) + (slot-barW)/2
		top := chartMarginT + plotH - h
		color := ""
		if i < len(chart.Colors) {
			color = chart.Colors[i]
		}
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`, x, top, barW, h, attr(color))
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" class="value">%d</text>`, x+barW/2, top-4, y)
		fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" class="tick">%s</text>`,
			x+barW/2, chartHeight-chartMarginB+18, attr(truncate(chart.X[i], 18)))
	}

	b.WriteString("</svg>")
	return template.HTML(b.String())
}

// pieChartSVG draws a donut with one slice per entry
func pieChartSVG(chart summary.PieChart) template.HTML {
	total := 0
	for _, v := range chart.Values {
		total += v
	}
	if total == 0 {
		return ""
	}

	const r = pieSize/2 - 4
	const inner = r * 0.45
	cx, cy := float64(pieSize/2), float64(pieSize/2)

	var b strings.Builder
	openSVG(&b, pieSize, pieSize, "chart chart-pie")

	angle := -math.Pi / 2
	for i, v := range chart.Values {
		if v == 0 {
			continue
		}
		color := ""
		if i < len(chart.Colors) {
			color = chart.Colors[i]
		}
		if v == total {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`, cx, cy, float64(r), attr(color))
			break
		}

		sweep := 2 * math.Pi * float64(v) / float64(total)
		end := angle + sweep
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		fmt.Fprintf(&b, `<path d="M %.2f %.2f A %d %d 0 %d 1 %.2f %.2f L %.2f %.2f Z" fill="%s"><title>%s: %d</title></path>`,
			cx+r*math.Cos(angle), cy+r*math.Sin(angle), r, r, large,
			cx+r*math.Cos(end), cy+r*math.Sin(end), cx, cy, attr(color),
			attr(labelAt(chart.Labels, i)), v)
		angle = end
	}
	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#FFFFFF"/>`, cx, cy, inner)

	b.WriteString("</svg>")
	return template.HTML(b.String())
}

func openSVG(b *strings.Builder, w, h int, class string) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" class="%s" viewBox="0 0 %d %d" width="100%%" preserveAspectRatio="xMidYMid meet">`, class, w, h)
}

// drawValueAxis draws the horizontal grid lines of a chart with a value axis
func drawValueAxis(b *strings.Builder, maxY int, plotW, plotH float64) {
	top := niceMax(maxY)
	for i := 0; i <= axisTicks; i++ {
		v := top * i / axisTicks
		y := chartMarginT + plotH - plotH*float64(i)/axisTicks
		fmt.Fprintf(b, `<line x1="%d" y1="%.1f" x2="%.1f" y2="%.1f" class="grid"/>`, chartMarginL, y, chartMarginL+plotW, y)
		fmt.Fprintf(b, `<text x="%d" y="%.1f" text-anchor="end" class="tick">%d</text>`, chartMarginL-6, y+4, v)
	}
}

// niceMax rounds the largest value up so the axis ticks are whole numbers
func niceMax(v int) int {
	if v < axisTicks {
		return axisTicks
	}
	if v%axisTicks == 0 {
		return v
	}
	return v + axisTicks - v%axisTicks
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// attr escapes text for use inside svg markup
func attr(s string) string {
	return template.HTMLEscapeString(s)
}
