package files

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	pt "github.com/activecm/wafreport/parser/parsetypes"
	"github.com/activecm/wafreport/pkg/record"

	log "github.com/sirupsen/logrus"
)

// utf8BOM is written by spreadsheet programs at the start of exported files
const utf8BOM = "\ufeff"

// GetFileReader returns a reader over the decompressed contents of an export file,
// a function to close the underlying stream and any associated processors, as well
// as any error that may occur while creating the reader
func GetFileReader(fileHandle *os.File) (reader io.Reader, closer func() error, err error) {
	// by default just close out the underlying file handle
	closer = fileHandle.Close

	if strings.HasSuffix(fileHandle.Name(), ".gz") {
		return newGzipReader(fileHandle)
	}
	return fileHandle, closer, nil
}

//newGzipReader returns an un-gzipped byte stream given a gzip compressed byte stream,
//a function to close both streams, and any err that may occur when opening the stream.
func newGzipReader(fileHandle io.ReadCloser) (reader io.Reader, closer func() error, err error) {
	// by default just close out the underlying file handle
	closer = fileHandle.Close

	gzipReader, err := gzip.NewReader(fileHandle)
	if err != nil {
		return nil, closer, err
	}

	closer = func() error {
		errGzip := gzipReader.Close()
		errFile := fileHandle.Close()
		if errGzip != nil && errFile != nil {
			return fmt.Errorf("%s; %s", errGzip.Error(), errFile.Error())
		}
		if errGzip != nil {
			return errGzip
		}
		return errFile
	}
	return gzipReader, closer, nil
}

// ReadRows reads every data line of the export file at path into a Row made by
// rowFactory. Columns are located through the header line. The returned error is
// a *record.MalformedError when the file contents cannot be mapped.
func ReadRows(path string, rowFactory func() pt.Row, logger *log.Logger) ([]pt.Row, error) {
	fileHandle, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	reader, closeReader, err := GetFileReader(fileHandle)
	if err != nil {
		closeReader()
		return nil, err
	}

	rows, err := ParseRows(reader, path, rowFactory, logger)
	closeErr := closeReader()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, closeErr)
	}
	return rows, nil
}

// ParseRows reads csv text from reader. See ReadRows.
func ParseRows(reader io.Reader, path string, rowFactory func() pt.Row, logger *log.Logger) ([]pt.Row, error) {
	kind := rowFactory().Kind()

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	names, err := csvReader.Read()
	if err == io.EOF {
		return nil, &record.MalformedError{Kind: kind, Reason: "missing header line in " + path}
	}
	if err != nil {
		return nil, &record.MalformedError{Kind: kind, Reason: "unreadable header line", Err: err}
	}
	header := newCSVHeader(names, path)

	indexMap, err := MapHeaderToParseType(header, rowFactory, logger)
	if err != nil {
		return nil, err
	}

	var rows []pt.Row
	for {
		fields, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &record.MalformedError{Kind: kind, Row: len(rows) + 1, Reason: "unreadable line", Err: err}
		}
		rows = append(rows, ParseCSVLine(fields, header, indexMap, rowFactory))
	}
	return rows, nil
}

func newCSVHeader(names []string, path string) *CSVHeader {
	header := &CSVHeader{Names: make([]string, len(names)), Path: path}
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		header.Names[i] = strings.TrimSpace(name)
	}
	return header
}

// MapHeaderToParseType matches the header columns against the csv tags of the
// rows made by rowFactory. A required column missing from the header is an error.
func MapHeaderToParseType(header *CSVHeader, rowFactory func() pt.Row, logger *log.Logger) (HeaderIndexMap, error) {
	row := rowFactory()
	structType := reflect.TypeOf(row).Elem()
	_, keepsExtras := row.(pt.ExtraColumns)

	indexMap := HeaderIndexMap{
		NthColumnExistsInParseType: make([]bool, len(header.Names)),
		NthColumnParseTypeOffset:   make([]int, len(header.Names)),
	}

	// parseTypeFields maps from column names to the field offsets as defined by the
	// row struct tags
	parseTypeFields := make(map[string]int)
	var required []string

	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)
		columnName := structField.Tag.Get("csv")

		//If this field is not associated with a column, skip it
		if len(columnName) == 0 {
			continue
		}
		if structField.Type.Kind() != reflect.String {
			return indexMap, fmt.Errorf("csv field %s of %s is not a string", structField.Name, structType.Name())
		}

		parseTypeFields[columnName] = i
		if structField.Tag.Get("required") == "true" {
			required = append(required, columnName)
		}
	}

	seen := make(map[string]bool, len(header.Names))
	for index, name := range header.Names {
		seen[name] = true
		offset, ok := parseTypeFields[name]
		if !ok {
			if !keepsExtras {
				//an unmatched column is not a fatal error, so we report it and move on
				logger.WithFields(log.Fields{
					"file":   header.Path,
					"column": name,
				}).Info("the export contains a column with no candidate in the data structure")
			}
			continue
		}

		indexMap.NthColumnExistsInParseType[index] = true
		indexMap.NthColumnParseTypeOffset[index] = offset
	}

	for _, name := range required {
		if !seen[name] {
			return indexMap, &record.MalformedError{Kind: row.Kind(), Field: name, Reason: "missing column in " + header.Path}
		}
	}

	return indexMap, nil
}

//ParseCSVLine creates a new Row from the fields of one csv line. Fields beyond
//the header are ignored and missing trailing fields are left empty.
func ParseCSVLine(fields []string, header *CSVHeader, fieldMap HeaderIndexMap, rowFactory func() pt.Row) pt.Row {
	dat := rowFactory()
	data := reflect.ValueOf(dat).Elem()
	extras, keepsExtras := dat.(pt.ExtraColumns)

	for i, value := range fields {
		if i >= len(header.Names) {
			break
		}
		if fieldMap.NthColumnExistsInParseType[i] {
			data.Field(fieldMap.NthColumnParseTypeOffset[i]).SetString(value)
		} else if keepsExtras && header.Names[i] != "" {
			extras.SetExtra(header.Names[i], value)
		}
	}
	return dat
}
