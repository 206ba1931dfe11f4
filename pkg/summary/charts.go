package summary

import (
	"time"

	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/pkg/timeline"
)

type (
	//Charts bundles the inputs of every chart in the report
	Charts struct {
		Dynamics    LineChart `json:"dynamics"`
		EventTypes  BarChart  `json:"event_types"`
		AttackerIPs PieChart  `json:"attacker_ips"`
		Countries   PieChart  `json:"countries"`
		Browsers    PieChart  `json:"browsers"`
	}

	//LineChart is a multi series chart over time
	LineChart struct {
		X      []time.Time  `json:"x"`
		Series []LineSeries `json:"series"`
	}

	//LineSeries is one named series of a LineChart
	LineSeries struct {
		Name  string `json:"name"`
		Color string `json:"color"`
		Y     []int  `json:"y"`
	}

	//BarChart is a categorical chart with one color per bar
	BarChart struct {
		X      []string `json:"x"`
		Y      []int    `json:"y"`
		Colors []string `json:"colors"`
	}

	//PieChart is a share chart
	PieChart struct {
		Labels []string `json:"labels"`
		Values []int    `json:"values"`
		Colors []string `json:"colors"`
	}
)

// NewCharts derives the chart inputs from an assembled context
func NewCharts(ctx *Context) Charts {
	return Charts{
		Dynamics:    DynamicsChart(ctx.Timeline, ctx.Theme),
		EventTypes:  EventTypesChart(ctx.EventTypes, ctx.Theme),
		AttackerIPs: SharesChart(ctx.AttackerIPs),
		Countries:   SharesChart(ctx.Countries),
		Browsers:    SharesChart(ctx.Browsers),
	}
}

// DynamicsChart has one series per severity, every series is present even when all zero
func DynamicsChart(buckets []timeline.Bucket, theme Theme) LineChart {
	chart := LineChart{X: timeline.Starts(buckets)}
	for _, sev := range record.Severities {
		chart.Series = append(chart.Series, LineSeries{
			Name:  sev.String(),
			Color: theme.Color(sev),
			Y:     timeline.Counts(buckets, sev),
		})
	}
	return chart
}

// EventTypesChart colors every bar by the severity tag of its entry
func EventTypesChart(list ranking.List, theme Theme) BarChart {
	chart := BarChart{X: list.Labels(), Y: list.Counts()}
	for _, tag := range list.Tags() {
		chart.Colors = append(chart.Colors, theme.TagColor(tag))
	}
	return chart
}

// SharesChart cycles the qualitative palette over the entries
func SharesChart(list ranking.List) PieChart {
	chart := PieChart{Labels: list.Labels(), Values: list.Counts()}
	for i := range list {
		chart.Colors = append(chart.Colors, Palette[i%len(Palette)])
	}
	return chart
}
