package engine

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"odoosense/app/client/odoo"
	"odoosense/app/config"
	"odoosense/app/service/conversation"
	"odoosense/app/service/queue"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

var quitWords = []string{"quit", "exit", "q"}

type Service struct {
	cfg             *config.Config
	odooClient      *odoo.Client
	conversationSvc *conversation.Service
	queueSvc        *queue.Service
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		odooClient:      do.MustInvoke[*odoo.Client](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		queueSvc:        do.MustInvoke[*queue.Service](di),
	}, nil
}

// Run drives the interactive loop until the user quits or the context is
// cancelled. Each query is fully processed before the next is read.
func (s *Service) Run(ctx context.Context) {
	s.printWelcome()

	go s.readInput()

	for {
		fmt.Println("\nEnter your query (or 'quit' to exit):")

		select {
		case <-ctx.Done():
			return
		case line, ok := <-s.queueSvc.Channel():
			if !ok {
				return
			}

			if done := s.handleLine(ctx, line); done {
				return
			}
		}
	}
}

func (s *Service) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		fmt.Println("Please enter a valid query.")
		return false
	}

	if pie.Contains(quitWords, strings.ToLower(line)) {
		fmt.Println("Goodbye!")
		return true
	}

	switch strings.ToLower(line) {
	case "inspect":
		fmt.Println(s.odooClient.InspectionReport())
		return false
	case "clear":
		s.conversationSvc.Reset()
		fmt.Println("Conversation context cleared.")
		return false
	}

	start := time.Now()

	reply, err := s.conversationSvc.ProcessQuery(ctx, line)
	if err != nil {
		slog.Warn("ProcessQuery error", "query", line, "error", err)
	}

	slog.Info("Processed query",
		"query", line,
		"duration", time.Since(start))

	fmt.Println("\nResponse:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println(reply)

	return false
}

func (s *Service) readInput() {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("> ")
	for scanner.Scan() {
		s.queueSvc.Add(scanner.Text())
		fmt.Print("> ")
	}

	// stdin closed, end the session
	s.queueSvc.Add("quit")
}

func (s *Service) printWelcome() {
	fmt.Println("\nWelcome to Odoo AI Assistant!")
	fmt.Println("You can ask about:")
	fmt.Println("- Manufacturing Orders (production, mo)")
	fmt.Println("- Sales Orders (sales, so)")
	fmt.Println("- Purchase Orders (purchase, po)")
	fmt.Println("- Inventory Status (stock, inventory)")
	fmt.Println("- Customer Invoices (invoice, payment)")
	fmt.Println("- Vendor Bills (bill, supplier invoice)")
}
