package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"odoosense/app/client/odoo"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestFormatDataStatusEmpty(t *testing.T) {
	t.Parallel()

	status := FormatDataStatus(&odoo.QueryResult{Status: odoo.StatusSuccess, RecordCount: 0})
	if status != noRecordsMessage {
		t.Fatalf("unexpected status: %q", status)
	}
}

func TestFormatDataStatusError(t *testing.T) {
	t.Parallel()

	status := FormatDataStatus(&odoo.QueryResult{Status: odoo.StatusError, Message: "connection refused"})
	if !strings.Contains(status, "connection refused") {
		t.Fatalf("error message not included verbatim: %q", status)
	}
	if !strings.Contains(status, "Traceback: N/A") {
		t.Fatalf("absent diagnostic fields must render as N/A: %q", status)
	}
	if !strings.Contains(status, "Error Type: N/A") {
		t.Fatalf("absent error type must render as N/A: %q", status)
	}
}

func TestFormatDataStatusFound(t *testing.T) {
	t.Parallel()

	status := FormatDataStatus(&odoo.QueryResult{
		Status:      odoo.StatusSuccess,
		RecordCount: 3,
		Data:        []map[string]any{{"a": 1}, {"a": 2}, {"a": 3}},
	})
	if status != "Found 3 records" {
		t.Fatalf("unexpected status: %q", status)
	}
}

func TestComposeConversational(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "Hi! How can I help?"}
	composer := NewComposer(completer, 5)
	state := NewState(10)

	reply, err := composer.Compose(context.Background(), "hello", nil, state)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if reply != "Hi! How can I help?" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(completer.prompts) != 1 {
		t.Fatalf("expected one completion call, got %d", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "conversational query") {
		t.Fatalf("conversational template not used: %q", prompt)
	}
	if strings.Contains(prompt, "Data Status:") {
		t.Fatalf("conversational prompt must not carry a data block: %q", prompt)
	}

	if state.Len() != 2 {
		t.Fatalf("expected two turns appended, got %d", state.Len())
	}
	turns := state.RecentContext(2)
	if turns[0].Role != RoleUser || turns[0].Content != "hello" {
		t.Fatalf("unexpected user turn: %+v", turns[0])
	}
	if turns[1].Role != RoleAssistant || turns[1].Content != reply {
		t.Fatalf("unexpected assistant turn: %+v", turns[1])
	}
}

func TestComposeDataPrompt(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "There are 2 sales orders."}
	composer := NewComposer(completer, 5)
	state := NewState(10)

	result := &odoo.QueryResult{
		Status:      odoo.StatusSuccess,
		RecordCount: 2,
		Data: []map[string]any{
			{"name": "S00001", "amount_total": 150.5},
			{"name": "S00002", "amount_total": 99.0},
		},
	}

	if _, err := composer.Compose(context.Background(), "show sales", result, state); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "Data Status: Found 2 records") {
		t.Fatalf("status line missing: %q", prompt)
	}
	if !strings.Contains(prompt, "S00001") {
		t.Fatalf("serialized records missing: %q", prompt)
	}

	turns := state.RecentContext(2)
	if turns[0].AttachedData != result {
		t.Fatalf("user turn must carry the query result")
	}
	if turns[1].AttachedData != nil {
		t.Fatalf("assistant turn must not carry data")
	}
}

func TestComposeEmbedsTranscript(t *testing.T) {
	t.Parallel()

	completer := &fakeCompleter{reply: "ok"}
	composer := NewComposer(completer, 5)
	state := NewState(10)
	state.AddMessage(RoleUser, "earlier question", nil)
	state.AddMessage(RoleAssistant, "earlier answer", nil)

	if _, err := composer.Compose(context.Background(), "hello again", nil, state); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	prompt := completer.prompts[0]
	if !strings.Contains(prompt, "user: earlier question") {
		t.Fatalf("transcript missing user line: %q", prompt)
	}
	if !strings.Contains(prompt, "assistant: earlier answer") {
		t.Fatalf("transcript missing assistant line: %q", prompt)
	}
}

func TestComposeCompletionFailure(t *testing.T) {
	t.Parallel()

	failure := errors.New("credential rejected")
	completer := &fakeCompleter{err: failure}
	composer := NewComposer(completer, 5)
	state := NewState(10)

	result := &odoo.QueryResult{Status: odoo.StatusSuccess, RecordCount: 1, Data: []map[string]any{{"a": 1}}}

	reply, err := composer.Compose(context.Background(), "show sales", result, state)
	if !errors.Is(err, failure) {
		t.Fatalf("expected completion failure, got %v", err)
	}
	if !strings.Contains(reply, "credential rejected") {
		t.Fatalf("failure reason missing from user-facing reply: %q", reply)
	}

	// The user turn is recorded with its data, no assistant turn is
	// fabricated.
	if state.Len() != 1 {
		t.Fatalf("expected exactly the user turn, got %d turns", state.Len())
	}
	turn := state.RecentContext(1)[0]
	if turn.Role != RoleUser || turn.AttachedData != result {
		t.Fatalf("unexpected recorded turn: %+v", turn)
	}
}
