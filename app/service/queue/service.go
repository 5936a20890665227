package queue

import (
	"log/slog"

	"github.com/samber/do"
)

const bufferSize = 16

var _ do.Shutdownable = (*Service)(nil)

// Service buffers raw input lines between the stdin reader and the engine.
// The engine drains it one query at a time, so there is never more than one
// turn in flight.
type Service struct {
	queue chan string
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		queue: make(chan string, bufferSize),
	}, nil
}

func (s *Service) Add(line string) {
	defer func() {
		if r := recover(); r != nil {

		}
	}()

	select {
	case s.queue <- line:
	default:
		slog.Warn("input queue is full")
	}
}

func (s *Service) Channel() <-chan string {
	return s.queue
}

func (s *Service) Shutdown() error {
	close(s.queue)

	return nil
}
