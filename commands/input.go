package commands

import (
	"time"

	"github.com/activecm/wafreport/parser"
	"github.com/activecm/wafreport/pkg/locale"
	"github.com/activecm/wafreport/pkg/protector"
	"github.com/activecm/wafreport/pkg/summary"
	"github.com/activecm/wafreport/resources"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// inputPaths starts from the configured file names and applies the path flags
func inputPaths(c *cli.Context, res *resources.Resources) parser.Paths {
	paths := parser.DefaultPaths(res)
	overrides := []struct {
		flag string
		path *string
	}{
		{"meta", &paths.Meta},
		{"events", &paths.Events},
		{"rules", &paths.Rules},
		{"protectors", &paths.Protectors},
	}
	for _, o := range overrides {
		if v := c.String(o.flag); v != "" {
			*o.path = v
		}
	}
	return paths
}

// loadDataset reads the export named by paths, progress bars are drawn unless quiet
func loadDataset(res *resources.Resources, paths parser.Paths, quiet bool) (*parser.Dataset, error) {
	loader := parser.NewLoader(res)
	if quiet {
		loader.Quiet()
	}
	data, err := loader.Load(paths)
	if err != nil {
		return nil, err
	}

	for _, rule := range protector.Orphans(data.Protectors, data.Rules) {
		res.Log.WithFields(log.Fields{
			"protector": rule.ProtectorID,
			"mode":      rule.Mode,
		}).Debug("rule references an unknown protector")
	}
	return data, nil
}

// buildContext aggregates the dataset with the configured report settings.
// A topN of zero uses the configured TopN.
func buildContext(res *resources.Resources, data *parser.Dataset, topN int) (*summary.Context, error) {
	if topN == 0 {
		topN = res.Config.S.Report.TopN
	}
	return summary.Build(data.Meta, data.Events, data.Rules, data.Protectors, summary.Options{
		TopN:        topN,
		DateFormat:  res.Config.S.Report.DateFormat,
		Theme:       summary.ThemeByName(res.Config.S.Report.Theme),
		Localizer:   locale.New(res.Config.R.Locale.Language),
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now().In(res.Config.R.Locale.Location),
	})
}
