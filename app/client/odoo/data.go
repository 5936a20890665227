package odoo

import "fmt"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// QueryResult is the generic envelope returned by every data operation.
// Callers outside this package only look at Status, RecordCount and whether
// Data is non-empty; record fields pass through untouched.
type QueryResult struct {
	Status      string           `json:"status"`
	RecordCount int              `json:"record_count"`
	Data        []map[string]any `json:"data,omitempty"`
	Message     string           `json:"message,omitempty"`
	ErrorType   string           `json:"error_type,omitempty"`
	FullError   string           `json:"full_error,omitempty"`
	Traceback   string           `json:"traceback,omitempty"`
}

func successResult(records []map[string]any) *QueryResult {
	return &QueryResult{
		Status:      StatusSuccess,
		RecordCount: len(records),
		Data:        records,
	}
}

func errorResult(err error) *QueryResult {
	return &QueryResult{
		Status:    StatusError,
		Message:   err.Error(),
		ErrorType: fmt.Sprintf("%T", err),
		FullError: fmt.Sprintf("%+v", err),
	}
}

func errorResultf(format string, args ...any) *QueryResult {
	return &QueryResult{
		Status:  StatusError,
		Message: fmt.Sprintf(format, args...),
	}
}

func coerceRecords(raw any) []map[string]any {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}

	return records
}
