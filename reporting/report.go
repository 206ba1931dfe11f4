package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/activecm/wafreport/pkg/summary"
	htmlTempl "github.com/activecm/wafreport/reporting/templates"
	"github.com/activecm/wafreport/util"
)

// The formats WriteReport can produce
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// ErrUnknownFormat is returned for a report format other than html or pdf
var ErrUnknownFormat = errors.New("unknown report format")

//Options controls where and how a report is written
type Options struct {
	// TemplateFile replaces the built in html template when set
	TemplateFile string
	OutputFile   string
	Format       string
	// PDFFont is a TrueType font with the glyphs of the report language
	PDFFont string
}

// WriteReport renders the context into opts.OutputFile. The file is only
// replaced once rendering has succeeded.
func WriteReport(ctx *summary.Context, opts Options) error {
	var buf bytes.Buffer
	var err error

	switch strings.ToLower(opts.Format) {
	case "", FormatHTML:
		err = RenderHTML(&buf, ctx, opts.TemplateFile)
	case FormatPDF:
		err = RenderPDF(&buf, ctx, opts.PDFFont)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, opts.Format)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(opts.OutputFile); !util.IsDir(dir) {
		return fmt.Errorf("output directory %s does not exist", dir)
	}
	return os.WriteFile(opts.OutputFile, buf.Bytes(), 0644)
}

// RenderHTML executes the template at templateFile, or the built in report
// when templateFile is empty, with the context as its data
func RenderHTML(w io.Writer, ctx *summary.Context, templateFile string) error {
	name := "report.html"
	text := htmlTempl.ReportTempl

	if templateFile != "" {
		contents, err := os.ReadFile(templateFile)
		if err != nil {
			return fmt.Errorf("could not read template: %w", err)
		}
		name = filepath.Base(templateFile)
		text = string(contents)
	}

	out, err := template.New(name).Funcs(FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("could not parse template %s: %w", name, err)
	}
	return out.Execute(w, ctx)
}

// FuncMap returns the sprig functions together with the chart helpers
// available to report templates
func FuncMap() template.FuncMap {
	funcs := sprig.FuncMap()
	funcs["style"] = func() template.CSS { return template.CSS(htmlTempl.CSStempl) }
	funcs["lineChart"] = lineChartSVG
	funcs["barChart"] = barChartSVG
	funcs["pieChart"] = pieChartSVG
	funcs["tagColor"] = func(theme summary.Theme, tag string) string { return theme.TagColor(tag) }
	funcs["percent"] = percent
	return funcs
}

// percent formats part as a share of total with one decimal
func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(total))
}
