package importer

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Outputs is the dictionary of named output variables handed back to the
// host tool.
type Outputs struct {
	ResultCode         int            `json:"ws1_resultcode"`
	Stderr             string         `json:"ws1_stderr"`
	RunID              string         `json:"ws1_run_id"`
	AppID              string         `json:"ws1_app_id,omitempty"`
	ImportedNew        bool           `json:"ws1_imported_new"`
	AssignmentsChanged bool           `json:"ws1_app_assignments_changed"`
	Pruned             bool           `json:"ws1_pruned"`
	ConsoleURL         string         `json:"ws1_console_url,omitempty"`
	Summary            *SummaryResult `json:"ws1_importer_summary_result,omitempty"`
}

// SummaryResult is the report block downstream processors pick up.
type SummaryResult struct {
	SummaryText  string            `json:"summary_text"`
	ReportFields []string          `json:"report_fields"`
	Data         map[string]string `json:"data"`
}

// Write encodes the outputs for the host tool.
func (o *Outputs) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(o); err != nil {
		return errors.Wrap(err, "encoding output variables")
	}
	return nil
}
