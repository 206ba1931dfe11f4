package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/activecm/wafreport/pkg/ranking"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/pkg/summary"
	"github.com/activecm/wafreport/resources"
	"github.com/activecm/wafreport/util"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "show-summary",
		Usage: "Print the severity totals and rankings of a firewall export",
		Flags: append([]cli.Flag{
			configFlag,
			humanFlag,
			delimFlag,
			limitFlag,
			quietFlag,
		}, inputFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			data, err := loadDataset(res, inputPaths(c, res), c.Bool("quiet"))
			if err != nil {
				res.Log.Error(err)
				return cli.NewExitError(err.Error(), -1)
			}

			ctx, err := buildContext(res, data, c.Int("limit"))
			if err != nil {
				res.Log.Error(err)
				return cli.NewExitError(err.Error(), -1)
			}

			if c.Bool("human-readable") {
				showSummaryHuman(os.Stdout, ctx)
				return nil
			}
			showSummary(os.Stdout, ctx, c.String("delimiter"))
			return nil
		},
	}
	bootstrapCommands(command)
}

// summaryTable is one titled table of the summary output
type summaryTable struct {
	title  string
	header []string
	rows   [][]string
}

// summaryTables lays the context out as the tables both output styles print
func summaryTables(ctx *summary.Context) []summaryTable {
	severities := summaryTable{title: ctx.Texts["severity_summary"]}
	for _, sev := range record.Severities {
		severities.header = append(severities.header, ctx.SeverityLabels[sev.String()])
	}
	severities.header = append(severities.header, ctx.Texts["total"])
	var counts []string
	for _, sev := range record.Severities {
		counts = append(counts, i(ctx.Counts.Get(sev)))
	}
	severities.rows = [][]string{append(counts, i(ctx.TotalEvents))}

	events := ctx.Texts["events"]
	eventTypes := rankingTable(ctx.Texts["event_types"], []string{ctx.Texts["event_type"], events, "%"}, ctx.EventTypes,
		func(e ranking.Entry) []string { return nil })
	ips := rankingTable(ctx.Texts["attacker_ips"], []string{ctx.Texts["ip"], events, "%", "Scope"}, ctx.AttackerIPs,
		func(e ranking.Entry) []string {
			if e.Others {
				return []string{""}
			}
			return []string{util.AddressScope(e.Label)}
		})
	countries := rankingTable(ctx.Texts["countries"], []string{ctx.Texts["country"], events, "%"}, ctx.Countries,
		func(e ranking.Entry) []string { return nil })
	browsers := rankingTable(ctx.Texts["browsers"], []string{ctx.Texts["browser"], events, "%"}, ctx.Browsers,
		func(e ranking.Entry) []string { return nil })

	return []summaryTable{severities, eventTypes, ips, countries, browsers}
}

func rankingTable(title string, header []string, list ranking.List, extra func(ranking.Entry) []string) summaryTable {
	table := summaryTable{title: title, header: header}
	total := list.Total()
	for _, e := range list {
		pct := "0.0"
		if total > 0 {
			pct = f(100 * float64(e.Count) / float64(total))
		}
		row := append([]string{e.Label, i(e.Count), pct}, extra(e)...)
		table.rows = append(table.rows, row)
	}
	return table
}

func showSummary(w io.Writer, ctx *summary.Context, delim string) {
	for _, table := range summaryTables(ctx) {
		fmt.Fprintln(w, "#", table.title)
		fmt.Fprintln(w, strings.Join(table.header, delim))
		for _, row := range table.rows {
			fmt.Fprintln(w, strings.Join(row, delim))
		}
	}
}

func showSummaryHuman(w io.Writer, ctx *summary.Context) {
	fmt.Fprintf(w, "%s: %s - %s\n", ctx.WebApp, ctx.StartDate, ctx.EndDate)
	for _, t := range summaryTables(ctx) {
		if len(t.rows) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", t.title)
		table := tablewriter.NewWriter(w)
		table.SetColWidth(100)
		table.SetHeader(t.header)
		table.AppendBulk(t.rows)
		table.Render()
	}
}

// helper functions for formatting floats and integers
func f(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

func i(i int) string {
	return strconv.Itoa(i)
}
