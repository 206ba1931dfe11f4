package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is matched by every MalformedError through errors.Is
var ErrMalformedRecord = errors.New("malformed record")

//MalformedError reports a required field that is missing or could not be parsed.
//A single MalformedError fails the whole batch.
type MalformedError struct {
	Kind   string // meta, event, rule or protector
	Row    int    // 1-based data row, 0 when the problem is the header
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	var b strings.Builder
	b.WriteString(ErrMalformedRecord.Error())
	if e.Kind != "" {
		fmt.Fprintf(&b, ": %s", e.Kind)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " row %d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %s", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (%q)", e.Value)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err.Error())
	}
	return b.String()
}

// Is makes errors.Is(err, ErrMalformedRecord) hold
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
