package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/activecm/wafreport/parser/files"
	pt "github.com/activecm/wafreport/parser/parsetypes"
	"github.com/activecm/wafreport/pkg/record"
	"github.com/activecm/wafreport/resources"
	"github.com/activecm/wafreport/util"
	log "github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb"
	"github.com/vbauerster/mpb/decor"
)

type (
	//Paths names the four files of one firewall export
	Paths struct {
		Meta       string
		Events     string
		Rules      string
		Protectors string
	}

	//Dataset holds the typed records of one firewall export
	Dataset struct {
		Meta       record.RunMeta
		Events     []record.SecurityEvent
		Rules      []record.ProtectionRule
		Protectors []record.Protector
	}

	//Loader reads firewall exports from the file system
	Loader struct {
		log      *log.Logger
		location *time.Location
		progress io.Writer
	}
)

//NewLoader creates a loader which reads timestamps into the configured timezone
func NewLoader(res *resources.Resources) *Loader {
	return &Loader{
		log:      res.Log,
		location: res.Config.R.Locale.Location,
		progress: os.Stdout,
	}
}

//Quiet disables the progress bars
func (l *Loader) Quiet() *Loader {
	l.progress = io.Discard
	return l
}

//DefaultPaths returns the file names configured in the Input section
func DefaultPaths(res *resources.Resources) Paths {
	return Paths{
		Meta:       res.Config.S.Input.MetaFile,
		Events:     res.Config.S.Input.EventsFile,
		Rules:      res.Config.S.Input.RulesFile,
		Protectors: res.Config.S.Input.ProtectorsFile,
	}
}

//Load reads and converts every file of the export. The first malformed record
//fails the whole load.
func (l *Loader) Load(paths Paths) (*Dataset, error) {
	start := time.Now()
	data := &Dataset{}

	metaRows, err := l.read(paths.Meta, pt.Meta)
	if err != nil {
		return nil, err
	}
	data.Meta, err = l.convertMeta(metaRows)
	if err != nil {
		return nil, err
	}

	eventRows, err := l.read(paths.Events, pt.Event)
	if err != nil {
		return nil, err
	}
	protectorRows, err := l.read(paths.Protectors, pt.Protector)
	if err != nil {
		return nil, err
	}
	ruleRows, err := l.read(paths.Rules, pt.Rule)
	if err != nil {
		return nil, err
	}

	p := mpb.New(mpb.WithWidth(20), mpb.WithOutput(l.progress))

	data.Events = make([]record.SecurityEvent, 0, len(eventRows))
	invalidIPs := 0
	err = convertRows(p, "\t[-] Reading events:", eventRows, func(i int, row pt.Row) error {
		evt, err := l.convertEvent(i, row.(*pt.EventRow))
		if err != nil {
			return err
		}
		if !util.IsIP(evt.ClientIP) {
			invalidIPs++
		}
		data.Events = append(data.Events, evt)
		return nil
	})

	if err == nil {
		data.Protectors = make([]record.Protector, 0, len(protectorRows))
		err = convertRows(p, "\t[-] Reading protectors:", protectorRows, func(i int, row pt.Row) error {
			prot, err := convertProtector(i, row.(*pt.ProtectorRow))
			data.Protectors = append(data.Protectors, prot)
			return err
		})
	}

	if err == nil {
		data.Rules = make([]record.ProtectionRule, 0, len(ruleRows))
		err = convertRows(p, "\t[-] Reading rules:", ruleRows, func(i int, row pt.Row) error {
			rule, err := convertRule(i, row.(*pt.RuleRow))
			data.Rules = append(data.Rules, rule)
			return err
		})
	}
	p.Wait()

	if err != nil {
		return nil, err
	}

	if invalidIPs > 0 {
		l.log.WithField("events", invalidIPs).Debug("events with a client address which is not an IP")
	}

	l.log.WithFields(log.Fields{
		"webapp":     data.Meta.WebApp,
		"events":     len(data.Events),
		"rules":      len(data.Rules),
		"protectors": len(data.Protectors),
		"total_time": time.Since(start).String(),
	}).Info("Finished reading the export")

	return data, nil
}

func (l *Loader) read(path string, kind string) ([]pt.Row, error) {
	if !util.Exists(path) {
		return nil, fmt.Errorf("%s file %s does not exist", kind, path)
	}
	return files.ReadRows(path, pt.NewRowFactory(kind), l.log)
}

// convertRows runs convert over every row behind a progress bar. The bar is
// always driven to completion so the progress container can be waited on.
func convertRows(p *mpb.Progress, name string, rows []pt.Row, convert func(int, pt.Row) error) error {
	if len(rows) == 0 {
		return nil
	}

	bar := p.AddBar(int64(len(rows)),
		mpb.PrependDecorators(
			decor.Name(name, decor.WC{W: 30, C: decor.DidentRight}),
			decor.CountersNoUnit(" %d / %d ", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	for i, row := range rows {
		if err := convert(i, row); err != nil {
			bar.IncrBy(len(rows) - i)
			return err
		}
		bar.IncrBy(1)
	}
	return nil
}

// convertMeta uses the first line of meta.csv, later lines are ignored
func (l *Loader) convertMeta(rows []pt.Row) (record.RunMeta, error) {
	var meta record.RunMeta
	if len(rows) == 0 {
		return meta, &record.MalformedError{Kind: pt.Meta, Reason: "no meta row"}
	}
	if len(rows) > 1 {
		l.log.WithField("rows", len(rows)).Warn("meta.csv has more than one row, only the first is used")
	}
	row := rows[0].(*pt.MetaRow)

	var err error
	meta.WebApp = strings.TrimSpace(row.WebApp)
	meta.Start, err = ParseTimestamp(row.StartDate, l.location)
	if err != nil {
		return meta, &record.MalformedError{Kind: pt.Meta, Row: 1, Field: "start_date", Value: row.StartDate, Err: err}
	}
	meta.End, err = ParseTimestamp(row.EndDate, l.location)
	if err != nil {
		return meta, &record.MalformedError{Kind: pt.Meta, Row: 1, Field: "end_date", Value: row.EndDate, Err: err}
	}
	meta.RangeHours, err = strconv.Atoi(strings.TrimSpace(row.Range))
	if err != nil {
		return meta, &record.MalformedError{Kind: pt.Meta, Row: 1, Field: "range", Value: row.Range, Reason: "not a whole number of hours"}
	}
	return meta, meta.Validate()
}

func (l *Loader) convertEvent(i int, row *pt.EventRow) (record.SecurityEvent, error) {
	evt := record.SecurityEvent{
		EventID:         strings.TrimSpace(row.EventID),
		ClientIP:        strings.TrimSpace(row.ClientIP),
		ClientCountry:   strings.TrimSpace(row.ClientCountry),
		ClientBrowser:   strings.TrimSpace(row.ClientBrowser),
		ClientUserAgent: row.ClientUserAgent,
	}
	if evt.EventID == "" {
		return evt, &record.MalformedError{Kind: pt.Event, Row: i + 1, Field: "EVENT_ID", Reason: "empty event id"}
	}

	var err error
	evt.Severity, err = record.ParseSeverity(row.Severity)
	if err != nil {
		return evt, &record.MalformedError{Kind: pt.Event, Row: i + 1, Field: "EVENT_SEVERITY", Value: row.Severity, Reason: "unknown severity"}
	}
	evt.Timestamp, err = ParseTimestamp(row.Timestamp, l.location)
	if err != nil {
		return evt, &record.MalformedError{Kind: pt.Event, Row: i + 1, Field: "TIMESTAMP", Value: row.Timestamp, Err: err}
	}
	return evt, nil
}

func convertProtector(i int, row *pt.ProtectorRow) (record.Protector, error) {
	prot := record.Protector{ID: record.NormalizeID(row.Nickname)}
	if prot.ID == "" {
		return prot, &record.MalformedError{Kind: pt.Protector, Row: i + 1, Field: "nickname", Reason: "empty nickname"}
	}

	var err error
	prot.Enabled, err = record.ParseBool(row.Enabled)
	if err != nil {
		return prot, &record.MalformedError{Kind: pt.Protector, Row: i + 1, Field: "enabled", Value: row.Enabled, Err: err}
	}
	return prot, nil
}

func convertRule(i int, row *pt.RuleRow) (record.ProtectionRule, error) {
	rule := record.ProtectionRule{
		ProtectorID: record.NormalizeID(row.Protector),
		Mode:        record.ParseMode(row.Mode),
		Attributes:  row.Extra,
	}
	if rule.ProtectorID == "" {
		return rule, &record.MalformedError{Kind: pt.Rule, Row: i + 1, Field: "protector", Reason: "empty protector"}
	}
	if rule.Mode == "" {
		return rule, &record.MalformedError{Kind: pt.Rule, Row: i + 1, Field: "mode", Reason: "empty mode"}
	}

	var err error
	rule.Enabled, err = record.ParseBool(row.Enabled)
	if err != nil {
		return rule, &record.MalformedError{Kind: pt.Rule, Row: i + 1, Field: "enabled", Value: row.Enabled, Err: err}
	}
	return rule, nil
}
