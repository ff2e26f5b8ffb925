package report

import (
	"encoding/json"
	"io"

	"github.com/ftcdoctor/logdoctor/internal/diagnosis"
	"github.com/ftcdoctor/logdoctor/internal/parser"
)

// Analysis is the machine-readable envelope for one analyzed log: the verdict
// plus enough provenance to tell reports apart in a batch.
type Analysis struct {
	Name        string                      `json:"name,omitempty"`
	RecordCount int                         `json:"record_count"`
	Result      *diagnosis.DiagnosticResult `json:"result"`
}

// NewAnalysis builds the envelope for a parsed record set and its verdict.
func NewAnalysis(name string, records []parser.LogRecord, result *diagnosis.DiagnosticResult) *Analysis {
	return &Analysis{Name: name, RecordCount: len(records), Result: result}
}

// WriteJSON writes the envelope as indented JSON.
func (a *Analysis) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// WriteRecordsJSON dumps the raw record stream as indented JSON, for users who
// want the parsed data without a verdict attached.
func WriteRecordsJSON(w io.Writer, records []parser.LogRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
