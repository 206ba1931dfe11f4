package parsetypes

// Row holds one line of a firewall export file. Every field tagged with
// csv is filled from the column of the same name. Fields tagged
// required:"true" must be present in the header.
type Row interface {
	Kind() string
}

// ExtraColumns is implemented by rows which keep the columns they have no
// field for
type ExtraColumns interface {
	SetExtra(name, value string)
}

// The kinds of export files
const (
	Meta      = "meta"
	Event     = "event"
	Rule      = "rule"
	Protector = "protector"
)

//NewRowFactory creates a new Row based on the kind of export file
func NewRowFactory(kind string) func() Row {
	switch kind {
	case Meta:
		return func() Row {
			return &MetaRow{}
		}
	case Event:
		return func() Row {
			return &EventRow{}
		}
	case Rule:
		return func() Row {
			return &RuleRow{}
		}
	case Protector:
		return func() Row {
			return &ProtectorRow{}
		}
	}
	return nil
}

type (
	//MetaRow is a line of meta.csv
	MetaRow struct {
		WebApp    string `csv:"webapp" required:"true"`
		StartDate string `csv:"start_date" required:"true"`
		EndDate   string `csv:"end_date" required:"true"`
		Range     string `csv:"range" required:"true"`
	}

	//EventRow is a line of events.csv
	EventRow struct {
		EventID         string `csv:"EVENT_ID" required:"true"`
		Severity        string `csv:"EVENT_SEVERITY" required:"true"`
		Timestamp       string `csv:"TIMESTAMP" required:"true"`
		ClientIP        string `csv:"CLIENT_IP" required:"true"`
		ClientCountry   string `csv:"CLIENT_COUNTRY_NAME"`
		ClientBrowser   string `csv:"CLIENT_BROWSER"`
		ClientUserAgent string `csv:"CLIENT_USERAGENT"`
	}

	//RuleRow is a line of rules.csv
	RuleRow struct {
		Protector string `csv:"protector" required:"true"`
		Mode      string `csv:"mode" required:"true"`
		Enabled   string `csv:"enabled" required:"true"`
		Extra     map[string]string
	}

	//ProtectorRow is a line of protectors.csv
	ProtectorRow struct {
		Nickname string `csv:"nickname" required:"true"`
		Enabled  string `csv:"enabled" required:"true"`
	}
)

// Kind identifies the export file
func (*MetaRow) Kind() string { return Meta }

// Kind identifies the export file
func (*EventRow) Kind() string { return Event }

// Kind identifies the export file
func (*RuleRow) Kind() string { return Rule }

// Kind identifies the export file
func (*ProtectorRow) Kind() string { return Protector }

// SetExtra keeps a rule column which has no typed field
func (r *RuleRow) SetExtra(name, value string) {
	if r.Extra == nil {
		r.Extra = make(map[string]string)
	}
	r.Extra[name] = value
}
