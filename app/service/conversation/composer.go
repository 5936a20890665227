package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"odoosense/app/client/llm"
	"odoosense/app/client/odoo"

	_ "embed"
)

//go:embed conversational_prompt.txt
var conversationalPromptTemplate string

//go:embed data_prompt.txt
var dataPromptTemplate string

const noRecordsMessage = "No records found in the system. Please check if records exist in the Odoo web interface."

type Composer struct {
	completer    llm.Completer
	recentWindow int
}

func NewComposer(completer llm.Completer, recentWindow int) *Composer {
	return &Composer{
		completer:    completer,
		recentWindow: recentWindow,
	}
}

// Compose builds the prompt for a routed query, calls the completion
// service and records the exchange. The returned string is always
// renderable: completion failures come back as a user-facing message plus
// a non-nil error for logging. On failure the user turn is still appended
// (the query and its data were real) but no assistant turn is fabricated.
func (c *Composer) Compose(ctx context.Context, query string, result *odoo.QueryResult, state *State) (string, error) {
	transcript := formatTranscript(state.RecentContext(c.recentWindow))

	var prompt string
	if result == nil {
		prompt = renderTemplate(conversationalPromptTemplate, map[string]string{
			"conversation_context": transcript,
			"query":                query,
		})
	} else {
		prompt = renderTemplate(dataPromptTemplate, map[string]string{
			"conversation_context": transcript,
			"data_status":          FormatDataStatus(result),
			"data":                 serializeData(result),
			"query":                query,
		})
	}

	text, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		state.AddMessage(RoleUser, query, result)
		return fmt.Sprintf("An error occurred while processing your query: %s", err),
			fmt.Errorf("completion failed: %w", err)
	}

	state.AddMessage(RoleUser, query, result)
	state.AddMessage(RoleAssistant, text, nil)

	return text, nil
}

// FormatDataStatus maps a query result onto a human-readable status line.
// Total over the three cases (error, empty, non-empty); absent diagnostic
// fields render as "N/A".
func FormatDataStatus(result *odoo.QueryResult) string {
	if result.Status == odoo.StatusError {
		return fmt.Sprintf(`Error occurred:
Error Message: %s
Error Type: %s
Full Error: %s
Traceback: %s
`,
			orDefault(result.Message, "Unknown error"),
			orDefault(result.ErrorType, "N/A"),
			orDefault(result.FullError, "N/A"),
			orDefault(result.Traceback, "N/A"),
		)
	}

	if len(result.Data) == 0 {
		return noRecordsMessage
	}

	return fmt.Sprintf("Found %d records", result.RecordCount)
}

func formatTranscript(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}

	var b strings.Builder
	for _, turn := range turns {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}

	return strings.TrimRight(b.String(), "\n")
}

func serializeData(result *odoo.QueryResult) string {
	if len(result.Data) == 0 {
		return "None"
	}

	data, err := json.MarshalIndent(result.Data, "", "  ")
	if err != nil {
		return "None"
	}

	return string(data)
}

func renderTemplate(template string, values map[string]string) string {
	for key, value := range values {
		template = strings.ReplaceAll(template, "{"+key+"}", value)
	}

	return template
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
