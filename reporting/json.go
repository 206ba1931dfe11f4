package reporting

import (
	"os"

	"github.com/activecm/wafreport/pkg/summary"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalContext encodes the report context as indented JSON
func MarshalContext(ctx *summary.Context) ([]byte, error) {
	return json.MarshalIndent(ctx, "", "  ")
}

// WriteJSONFile dumps the report context to path
func WriteJSONFile(path string, ctx *summary.Context) error {
	data, err := MarshalContext(ctx)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
