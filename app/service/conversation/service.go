package conversation

import (
	"context"
	"log/slog"

	"odoosense/app/client/llm"
	"odoosense/app/client/odoo"
	"odoosense/app/config"

	"github.com/samber/do"
)

const contextKeyLastOperation = "last_operation"

// DataService executes a catalog operation against the remote business-data
// system. *odoo.Client satisfies it; tests substitute fakes.
type DataService interface {
	Invoke(ctx context.Context, operationID string) (*odoo.QueryResult, error)
	InstallChain(hint string) *odoo.QueryResult
}

type Service struct {
	cfg      *config.Config
	dataSvc  DataService
	composer *Composer
	state    *State
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewWith(
		cfg,
		do.MustInvoke[*odoo.Client](di),
		do.MustInvoke[llm.Completer](di),
	), nil
}

// NewWith wires the service from explicit capability handles.
func NewWith(cfg *config.Config, dataSvc DataService, completer llm.Completer) *Service {
	return &Service{
		cfg:      cfg,
		dataSvc:  dataSvc,
		composer: NewComposer(completer, cfg.History.RecentWindow),
		state:    NewState(cfg.History.MaxTurns),
	}
}

// ProcessQuery runs one full route/retrieve/compose cycle. The returned
// string is always renderable; a non-nil error only signals that the
// completion call failed and was already translated for the user.
func (s *Service) ProcessQuery(ctx context.Context, query string) (string, error) {
	decision := Route(query)

	var result *odoo.QueryResult

	switch decision.Kind {
	case KindConversational:
		// No retrieval; the composer builds the conversational prompt.

	case KindInstall:
		if decision.ModuleHint == "" {
			result = &odoo.QueryResult{
				Status:  odoo.StatusError,
				Message: "Please specify which module to install",
			}
			break
		}

		slog.Info("Installing module chain", "hint", decision.ModuleHint)
		result = s.dataSvc.InstallChain(decision.ModuleHint)

	case KindData:
		r, err := s.dataSvc.Invoke(ctx, decision.OperationID)
		if err != nil {
			result = &odoo.QueryResult{
				Status:  odoo.StatusError,
				Message: err.Error(),
			}
		} else {
			result = r
		}

		s.state.SetContext(contextKeyLastOperation, decision.OperationID)
	}

	return s.composer.Compose(ctx, query, result, s.state)
}

// LastOperation reports the most recent data operation of this session.
func (s *Service) LastOperation() (string, bool) {
	value, ok := s.state.GetContext(contextKeyLastOperation)
	if !ok {
		return "", false
	}

	operationID, ok := value.(string)

	return operationID, ok
}

// Reset clears the scratch context, keeping the turn log intact.
func (s *Service) Reset() {
	s.state.ClearContext()
}

func (s *Service) Close() error {
	return nil
}
