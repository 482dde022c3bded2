package operations

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scabridge/scabridge/internal/journal"
	"github.com/scabridge/scabridge/internal/notification"
	"github.com/scabridge/scabridge/internal/sca"
)

// ErrUnknownOperation indicates no pending operation exists for the given id.
var ErrUnknownOperation = errors.New("operations: unknown operation")

// pendingOp is a sensitive operation that reached OTP_SENT and awaits the
// customer's code. Flows hold live state and therefore stay in memory.
type pendingOp struct {
	flow      *sca.OperationFlow
	label     string
	amount    float64
	reference string
	createdAt time.Time
}

// Ticket is what the caller gets back after an operation flow dispatched its
// OTP: the handle to confirm with and the channel the code went to.
type Ticket struct {
	OperationID  string
	Action       string
	ChannelPhone string
}

// Service tracks pending sensitive operations, drives their OTP confirmation
// and records outcomes in the journal.
type Service struct {
	mu       sync.Mutex
	pending  map[string]pendingOp
	journal  journal.Journal
	notifier notification.Notifier
}

// NewService constructs the operations service.
func NewService(j journal.Journal, notifier notification.Notifier) *Service {
	return &Service{pending: make(map[string]pendingOp), journal: j, notifier: notifier}
}

// Track registers a flow that has dispatched its OTP and returns the ticket
// the caller will confirm with.
func (s *Service) Track(flow *sca.OperationFlow, label string, amount float64, reference string) Ticket {
	id := uuid.NewString()

	s.mu.Lock()
	s.pending[id] = pendingOp{
		flow:      flow,
		label:     label,
		amount:    amount,
		reference: reference,
		createdAt: time.Now().UTC(),
	}
	s.mu.Unlock()

	if s.notifier != nil {
		_ = s.notifier.Send(context.Background(), notification.Message{
			Kind:        notification.KindOTPSent,
			Destination: flow.Channel().Phone,
			Body:        label,
		})
	}

	return Ticket{
		OperationID:  id,
		Action:       flow.Action().Wire(),
		ChannelPhone: flow.Channel().Phone,
	}
}

// Confirm submits the received OTP code for a pending operation and journals
// the outcome. The pending entry is removed on any terminal outcome; a
// transport failure keeps it pending so the caller may resubmit the code.
func (s *Service) Confirm(ctx context.Context, operationID, code string) (journal.Entry, error) {
	s.mu.Lock()
	op, ok := s.pending[operationID]
	s.mu.Unlock()
	if !ok {
		return journal.Entry{}, ErrUnknownOperation
	}

	confirmErr := op.flow.Confirm(ctx, code)

	status := journal.StatusConfirmed
	switch {
	case confirmErr == nil:
		status = journal.StatusConfirmed
	case errors.Is(confirmErr, sca.ErrOTPRejected):
		status = journal.StatusRejected
	default:
		return journal.Entry{}, confirmErr
	}

	s.mu.Lock()
	delete(s.pending, operationID)
	s.mu.Unlock()

	entry, err := s.journal.Record(ctx, journal.Entry{
		ID:        operationID,
		Action:    op.flow.Action().Wire(),
		Reference: op.reference,
		Label:     op.label,
		Amount:    op.amount,
		Status:    status,
	})
	if err != nil {
		return journal.Entry{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindOperationSettled,
			Destination: op.flow.Channel().Phone,
			Body:        entry.Action + " " + status,
		})
	}

	if confirmErr != nil {
		return entry, confirmErr
	}
	return entry, nil
}

// List returns the most recent journal entries.
func (s *Service) List(ctx context.Context, limit int) ([]journal.Entry, error) {
	return s.journal.List(ctx, limit)
}

// PendingCount reports how many operations await confirmation.
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
