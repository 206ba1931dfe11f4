package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/activecm/wafreport/config"
	"github.com/activecm/wafreport/parser"
	"github.com/activecm/wafreport/pkg/summary"
	"github.com/activecm/wafreport/reporting"
	"github.com/activecm/wafreport/resources"
	"github.com/activecm/wafreport/util"
	log "github.com/sirupsen/logrus"
	"github.com/skratchdot/open-golang/open"
	"github.com/urfave/cli"
)

type reportRequest struct {
	paths    parser.Paths
	opts     reporting.Options
	uaFile   string
	jsonFile string
	quiet    bool
}

func init() {
	command := cli.Command{
		Name:  "report",
		Usage: "Render a report of a firewall export",
		UsageText: "wafreport report [command-options]\n\n" +
			"Export files that are not given on the command line are taken from the Input section of the config.",
		Flags: append([]cli.Flag{
			configFlag,
			cli.StringFlag{
				Name:  "template, t",
				Usage: "Render the report with the html template `TEMPLATE` instead of the built in one",
			},
			cli.StringFlag{
				Name:  "output, o",
				Usage: "Write the report to `FILE`",
			},
			cli.StringFlag{
				Name:  "format",
				Usage: "Render the report as `FORMAT` (html or pdf)",
			},
			cli.StringFlag{
				Name:  "ua-csv-file",
				Usage: "Also write the user agent table to `FILE`",
			},
			cli.StringFlag{
				Name:  "json-file",
				Usage: "Also dump the report data as json to `FILE`",
			},
			cli.BoolFlag{
				Name:  "open",
				Usage: "Open the report once it is written",
			},
			quietFlag,
		}, inputFlags...),
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))

			req, err := newReportRequest(c, res)
			if err != nil {
				return cli.NewExitError(err.Error(), -1)
			}

			if err := makeReport(res, req); err != nil {
				res.Log.Error(err)
				return cli.NewExitError(err.Error(), -1)
			}

			if c.Bool("open") {
				if err := open.Run(req.opts.OutputFile); err != nil {
					res.Log.WithField("file", req.opts.OutputFile).Warn(err)
				}
			}
			return nil
		},
	}
	bootstrapCommands(command)
}

// newReportRequest merges the command line flags over the configuration
func newReportRequest(c *cli.Context, res *resources.Resources) (reportRequest, error) {
	cfg := res.Config
	req := reportRequest{
		paths: inputPaths(c, res),
		opts: reporting.Options{
			TemplateFile: cfg.S.Report.TemplateFile,
			OutputFile:   cfg.S.Report.OutputFile,
			Format:       cfg.R.Report.Format,
			PDFFont:      cfg.S.Report.PDFFont,
		},
		uaFile:   c.String("ua-csv-file"),
		jsonFile: c.String("json-file"),
		quiet:    c.Bool("quiet"),
	}

	if tmpl := c.String("template"); tmpl != "" {
		req.opts.TemplateFile = tmpl
	}
	if format := c.String("format"); format != "" {
		format = strings.ToLower(strings.TrimSpace(format))
		if !util.StringInSlice(format, config.Formats) {
			return req, fmt.Errorf("unsupported report format %q, use one of %s", format, strings.Join(config.Formats, ", "))
		}
		req.opts.Format = format
	}

	if output := c.String("output"); output != "" {
		req.opts.OutputFile = output
	} else {
		req.opts.OutputFile = withFormatExt(req.opts.OutputFile, req.opts.Format)
	}
	return req, nil
}

// withFormatExt swaps a configured .html output name for .pdf when a pdf is requested
func withFormatExt(path, format string) string {
	if format == reporting.FormatPDF && strings.EqualFold(filepath.Ext(path), ".html") {
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".pdf"
	}
	return path
}

// makeReport loads the export and writes every requested output
func makeReport(res *resources.Resources, req reportRequest) error {
	if req.opts.TemplateFile != "" && !util.Exists(req.opts.TemplateFile) {
		return fmt.Errorf("template %s does not exist", req.opts.TemplateFile)
	}

	fmt.Println("\t[-] Loading firewall export ...")
	data, err := loadDataset(res, req.paths, req.quiet)
	if err != nil {
		return err
	}

	fmt.Println("\t[-] Aggregating", len(data.Events), "events ...")
	ctx, err := buildContext(res, data, 0)
	if err != nil {
		return err
	}

	if req.opts.Format == reporting.FormatPDF && req.opts.PDFFont == "" {
		if base, _ := res.Config.R.Locale.Language.Base(); base.String() != "en" {
			fmt.Println("\t[!] No PDFFont is configured, text outside of Latin-1 will not render in the pdf")
			res.Log.WithField("language", res.Config.R.Locale.Language.String()).Warn("pdf rendered with the core font")
		}
	}

	if err := reporting.WriteReport(ctx, req.opts); err != nil {
		return err
	}
	res.Log.WithFields(log.Fields{
		"file":      req.opts.OutputFile,
		"format":    req.opts.Format,
		"report_id": ctx.ReportID,
		"events":    ctx.TotalEvents,
	}).Info("report written")
	fmt.Println("\t[+] Report written to", req.opts.OutputFile)

	if req.uaFile != "" {
		if err := reporting.WriteUserAgentsFile(req.uaFile, summary.UserAgents(data.Events), res.Config.R.Report.Delimiter); err != nil {
			return fmt.Errorf("could not write user agents: %w", err)
		}
		fmt.Println("\t[+] User agents written to", req.uaFile)
	}

	if req.jsonFile != "" {
		if err := reporting.WriteJSONFile(req.jsonFile, ctx); err != nil {
			return fmt.Errorf("could not write json: %w", err)
		}
		fmt.Println("\t[+] Report data written to", req.jsonFile)
	}
	return nil
}
