package files

//CSVHeader contains the column names of an export file
type CSVHeader struct {
	Names []string // Names of columns, trimmed
	Path  string   // File the header was read from
}

//HeaderIndexMap maps the indexes of the columns in the CSVHeader to the respective
//indexes in the parsetypes.Row structs
type HeaderIndexMap struct {
	NthColumnExistsInParseType []bool
	NthColumnParseTypeOffset   []int
}
