package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/activecm/wafreport/pkg/summary"
	"github.com/activecm/wafreport/reporting"
	"github.com/activecm/wafreport/resources"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "show-useragents",
		Usage: "Print how often every user agent triggered every event type",
		Flags: append([]cli.Flag{
			configFlag,
			humanFlag,
			delimFlag,
			cli.BoolFlag{
				Name:  "most-used, u",
				Usage: "Sort the rows from most used to least used instead of by event type.",
			},
			quietFlag,
		}, inputFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			data, err := loadDataset(res, inputPaths(c, res), c.Bool("quiet"))
			if err != nil {
				res.Log.Error(err)
				return cli.NewExitError(err.Error(), -1)
			}

			stats := summary.UserAgents(data.Events)
			if len(stats) == 0 {
				return cli.NewExitError("No events were found", -1)
			}
			if c.Bool("most-used") {
				sortByUse(stats)
			}

			if c.Bool("human-readable") {
				showAgentsHuman(os.Stdout, stats)
				return nil
			}

			delim := res.Config.R.Report.Delimiter
			if c.IsSet("delimiter") {
				r, size := utf8.DecodeRuneInString(c.String("delimiter"))
				if size == 0 || size != len(c.String("delimiter")) {
					return cli.NewExitError("The delimiter has to be a single character", -1)
				}
				delim = r
			}
			if err := reporting.WriteUserAgents(os.Stdout, stats, delim); err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

// sortByUse orders the stats by descending count, keeping the event type order on ties
func sortByUse(stats []summary.UserAgentStat) {
	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].Count > stats[b].Count
	})
}

func showAgentsHuman(w io.Writer, stats []summary.UserAgentStat) {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(100)
	table.SetHeader(summary.UserAgentHeader)
	for _, s := range stats {
		table.Append([]string{s.EventID, s.UserAgent, i(s.Count)})
	}
	table.Render()
	fmt.Fprintf(w, "%d user agents\n", len(stats))
}
