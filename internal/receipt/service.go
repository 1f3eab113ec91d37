package receipt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/receipt-processor/internal/metrics"
)

// ErrInvalidReceipt is returned when a submitted receipt fails validation
var ErrInvalidReceipt = errors.New("receipt is invalid")

// IDGenerator generates unique IDs for receipts
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator generates random (version 4) UUIDs
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles receipt operations
type Service struct {
	db          DB
	metrics     *metrics.Metrics
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source.
// m may be nil.
func NewService(db DB, m *metrics.Metrics) *Service {
	return &Service{
		db:          db,
		metrics:     m,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, m *metrics.Metrics, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		metrics:     m,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ProcessReceipt validates a raw JSON receipt, scores it, and stores the score.
// It returns the generated receipt ID.
func (s *Service) ProcessReceipt(body []byte) (string, error) {
	start := time.Now()

	receipt, ok := ParseReceipt(body)
	if !ok {
		s.metrics.IncrementRejected()
		return "", ErrInvalidReceipt
	}

	record := &ScoreRecord{
		ID:        s.idGenerator.Generate(),
		Points:    s.Score(receipt),
		CreatedAt: s.timeSource.Now(),
	}
	if err := s.db.SaveScore(record); err != nil {
		return "", fmt.Errorf("saving score: %w", err)
	}

	s.metrics.ObserveProcessed(record.Points, start)
	slog.Debug("Processed receipt", "id", record.ID, "retailer", receipt.Retailer, "points", record.Points)
	return record.ID, nil
}

// Score computes the points for a receipt without storing them
func (s *Service) Score(r Receipt) int {
	return Points(r)
}

// GetPoints returns the points stored for a receipt ID
func (s *Service) GetPoints(id string) (int, error) {
	record, err := s.db.GetScore(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.ObserveLookup(metrics.LookupNotFound)
		} else {
			s.metrics.ObserveLookup(metrics.LookupError)
		}
		return 0, fmt.Errorf("getting score: %w", err)
	}
	s.metrics.ObserveLookup(metrics.LookupFound)
	return record.Points, nil
}
