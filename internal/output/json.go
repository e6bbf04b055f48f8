package output

import (
	"fmt"

	"github.com/goccy/go-json"
)

// JSONFormatter serializes the projection result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report Report) ([]byte, error) {
	if report.Result == nil {
		return nil, fmt.Errorf("no projection to format")
	}
	return json.MarshalIndent(report.Result, "", "  ")
}
