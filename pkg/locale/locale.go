// Package locale provides the display labels of the report in the configured language.
package locale

import (
	"sort"

	"github.com/activecm/wafreport/pkg/record"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//Localizer turns report values into display labels
type Localizer interface {
	ModeLabel(mode record.Mode) string
	SeverityLabel(sev record.Severity) string
	Text(key string) string
}

type translation struct {
	en string
	ru string
}

var modeLabels = map[record.Mode]translation{
	record.ModeBlockRequest:  {"Request blocking", "Блокировка запроса"},
	record.ModeBlockIP:       {"IP address blocking", "Блокировка IP-адреса"},
	record.ModeBlockSession:  {"Session blocking", "Блокировка сессии"},
	record.ModeSanitize:      {"Sanitization", "Санитизация"},
	record.ModeMonitoring:    {"Monitoring", "Мониторинг"},
	record.ModeCount:         {"Sent to correlator", "Отправка в коррелятор"},
	record.ModeUnknown:       {"Unknown mode", "Неизвестный режим"},
	record.ModeNotApplicable: {"Ignored (no action)", "Игнорируется (нет действий)"},
}

var severityLabels = map[record.Severity]translation{
	record.SeverityInfo:   {"info", "информационный"},
	record.SeverityLow:    {"low", "низкий"},
	record.SeverityMedium: {"medium", "средний"},
	record.SeverityHigh:   {"high", "высокий"},
}

// The headings and captions of the report
var reportTexts = map[string]translation{
	"title":            {"Web application firewall report", "Отчет о работе межсетевого экрана уровня веб-приложений"},
	"webapp":           {"Web application", "Веб-приложение"},
	"period":           {"Reporting period", "Отчетный период"},
	"generated":        {"Generated", "Сформирован"},
	"report_id":        {"Report ID", "Идентификатор отчета"},
	"severity_summary": {"Attacks by severity", "Атаки по уровню опасности"},
	"total":            {"Total", "Всего"},
	"dynamics":         {"Attack dynamics", "Динамика атак"},
	"event_types":      {"Top attacks by type", "ТОП-10 атак по типам"},
	"attacker_ips":     {"Top attacker IP addresses", "ТОП-10 IP-адресов атакующих"},
	"countries":        {"Top attacker countries", "ТОП-10 стран атакующих"},
	"browsers":         {"Top attacker browsers", "ТОП-10 браузеров атакующих"},
	"ip":               {"IP address", "IP-адрес"},
	"country":          {"Country", "Страна"},
	"browser":          {"Browser", "Браузер"},
	"event_type":       {"Attack type", "Тип атаки"},
	"events":           {"Events", "Количество событий"},
	"protectors":       {"Protectors and rules", "Защитные модули и правила"},
	"protector":        {"Protector", "Защитный модуль"},
	"mode":             {"Mode", "Режим"},
	"disabled":         {"Disabled", "Отключен"},
	"no_rules":         {"No enabled rules", "Нет включенных правил"},
	"no_events":        {"No events in the reporting period", "Событий за отчетный период нет"},
}

// TextKeys lists every report text in a stable order
var TextKeys = sortedKeys(reportTexts)

var defaultCatalog = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for mode, label := range modeLabels {
		key := modeKey(mode)
		b.SetString(language.English, key, label.en)
		b.SetString(language.Russian, key, label.ru)
	}
	for sev, label := range severityLabels {
		key := severityKey(sev)
		b.SetString(language.English, key, label.en)
		b.SetString(language.Russian, key, label.ru)
	}
	for key, label := range reportTexts {
		b.SetString(language.English, textKey(key), label.en)
		b.SetString(language.Russian, textKey(key), label.ru)
	}
	return b
}

func textKey(key string) string {
	return "text." + key
}

func sortedKeys(m map[string]translation) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func modeKey(mode record.Mode) string {
	return "mode." + string(mode)
}

func severityKey(sev record.Severity) string {
	return "severity." + sev.String()
}

//Catalog is the Localizer backed by the built in message catalog
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
	title   cases.Caser
}

// New returns a Catalog for the given language. Languages without
// translations fall back to English.
func New(tag language.Tag) *Catalog {
	resolved := Resolve(tag)
	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(resolved, message.Catalog(defaultCatalog)),
		title:   cases.Title(resolved),
	}
}

// Resolve matches the tag against the translated languages and returns the
// closest one, English when nothing matches
func Resolve(tag language.Tag) language.Tag {
	supported := defaultCatalog.Languages()
	_, idx, conf := language.NewMatcher(supported).Match(tag)
	if conf == language.No {
		return language.English
	}
	return supported[idx]
}

// Tag returns the requested language
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// ModeLabel returns the translated mode. Modes missing from the catalog are shown as is.
func (c *Catalog) ModeLabel(mode record.Mode) string {
	if _, ok := modeLabels[mode]; !ok {
		return string(mode)
	}
	return c.printer.Sprintf(modeKey(mode))
}

// SeverityLabel returns the translated severity in title case
func (c *Catalog) SeverityLabel(sev record.Severity) string {
	if _, ok := severityLabels[sev]; !ok {
		return sev.String()
	}
	return c.title.String(c.printer.Sprintf(severityKey(sev)))
}

// Text returns a heading of the report. Unknown keys are returned as is.
func (c *Catalog) Text(key string) string {
	if _, ok := reportTexts[key]; !ok {
		return key
	}
	return c.printer.Sprintf(textKey(key))
}

//Identity is a Localizer that shows raw values
type Identity struct{}

// ModeLabel returns the mode verbatim
func (Identity) ModeLabel(mode record.Mode) string { return string(mode) }

// SeverityLabel returns the severity name verbatim
func (Identity) SeverityLabel(sev record.Severity) string { return sev.String() }

// Text returns the English heading
func (Identity) Text(key string) string {
	if label, ok := reportTexts[key]; ok {
		return label.en
	}
	return key
}
