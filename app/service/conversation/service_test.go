package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"odoosense/app/client/odoo"
	"odoosense/app/config"
)

type fakeDataService struct {
	result       *odoo.QueryResult
	err          error
	invoked      []string
	installHints []string
}

func (f *fakeDataService) Invoke(_ context.Context, operationID string) (*odoo.QueryResult, error) {
	f.invoked = append(f.invoked, operationID)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeDataService) InstallChain(hint string) *odoo.QueryResult {
	f.installHints = append(f.installHints, hint)
	return f.result
}

func testConfig() *config.Config {
	return &config.Config{
		History: config.History{MaxTurns: 20, RecentWindow: 5},
	}
}

func TestProcessQueryConversational(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{}
	completer := &fakeCompleter{reply: "Hello!"}
	svc := NewWith(testConfig(), dataSvc, completer)

	reply, err := svc.ProcessQuery(context.Background(), "hello")
	if err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}
	if reply != "Hello!" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(dataSvc.invoked) != 0 || len(dataSvc.installHints) != 0 {
		t.Fatalf("data service must not be touched for conversational queries")
	}
	if svc.state.Len() != 2 {
		t.Fatalf("expected two turns recorded, got %d", svc.state.Len())
	}
}

func TestProcessQueryInvokesSelectedOperation(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{
		result: &odoo.QueryResult{Status: odoo.StatusSuccess, RecordCount: 1, Data: []map[string]any{{"name": "S00001"}}},
	}
	completer := &fakeCompleter{reply: "One sales order."}
	svc := NewWith(testConfig(), dataSvc, completer)

	if _, err := svc.ProcessQuery(context.Background(), "Show me recent sales orders"); err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}

	if len(dataSvc.invoked) != 1 || dataSvc.invoked[0] != odoo.OpSales {
		t.Fatalf("expected one sales invocation, got %v", dataSvc.invoked)
	}

	operationID, ok := svc.LastOperation()
	if !ok || operationID != odoo.OpSales {
		t.Fatalf("LastOperation() = %q, %v", operationID, ok)
	}
}

func TestProcessQueryInstallWithoutHint(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{}
	completer := &fakeCompleter{reply: "Which module?"}
	svc := NewWith(testConfig(), dataSvc, completer)

	if _, err := svc.ProcessQuery(context.Background(), "install the accounting module"); err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}

	if len(dataSvc.installHints) != 0 {
		t.Fatalf("install chain must not run without a hint")
	}
	if !strings.Contains(completer.prompts[0], "Please specify which module to install") {
		t.Fatalf("missing-hint error not surfaced in prompt: %q", completer.prompts[0])
	}
}

func TestProcessQueryInstallWithHint(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{
		result: &odoo.QueryResult{Status: odoo.StatusSuccess, Message: "inventory modules installed successfully"},
	}
	completer := &fakeCompleter{reply: "Installed."}
	svc := NewWith(testConfig(), dataSvc, completer)

	if _, err := svc.ProcessQuery(context.Background(), "install inventory"); err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}

	if len(dataSvc.installHints) != 1 || dataSvc.installHints[0] != "inventory" {
		t.Fatalf("expected inventory install chain, got %v", dataSvc.installHints)
	}
	if len(dataSvc.invoked) != 0 {
		t.Fatalf("catalog operations must not run for install requests")
	}
}

func TestProcessQueryCompletionFailureKeepsSessionUsable(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{
		result: &odoo.QueryResult{Status: odoo.StatusSuccess, RecordCount: 0},
	}
	completer := &fakeCompleter{err: errors.New("service unavailable")}
	svc := NewWith(testConfig(), dataSvc, completer)

	reply, err := svc.ProcessQuery(context.Background(), "show sales")
	if err == nil {
		t.Fatalf("expected completion failure to be reported")
	}
	if !strings.Contains(reply, "service unavailable") {
		t.Fatalf("failure reason missing from reply: %q", reply)
	}

	// The next turn must work once the completer recovers.
	completer.err = nil
	completer.reply = "back online"

	reply, err = svc.ProcessQuery(context.Background(), "show sales")
	if err != nil {
		t.Fatalf("ProcessQuery() after recovery error = %v", err)
	}
	if reply != "back online" {
		t.Fatalf("unexpected reply after recovery: %q", reply)
	}
}

func TestProcessQueryDataServiceErrorBecomesErrorResult(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{err: errors.New("unknown operation")}
	completer := &fakeCompleter{reply: "Something went wrong upstream."}
	svc := NewWith(testConfig(), dataSvc, completer)

	if _, err := svc.ProcessQuery(context.Background(), "show sales"); err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}

	if !strings.Contains(completer.prompts[0], "unknown operation") {
		t.Fatalf("data service failure not surfaced in prompt: %q", completer.prompts[0])
	}
}

func TestResetClearsScratchContext(t *testing.T) {
	t.Parallel()

	dataSvc := &fakeDataService{
		result: &odoo.QueryResult{Status: odoo.StatusSuccess, RecordCount: 0},
	}
	svc := NewWith(testConfig(), dataSvc, &fakeCompleter{reply: "ok"})

	if _, err := svc.ProcessQuery(context.Background(), "show sales"); err != nil {
		t.Fatalf("ProcessQuery() error = %v", err)
	}
	if _, ok := svc.LastOperation(); !ok {
		t.Fatalf("expected last operation recorded")
	}

	svc.Reset()

	if _, ok := svc.LastOperation(); ok {
		t.Fatalf("scratch context not cleared")
	}
}
