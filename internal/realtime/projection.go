package realtime

import (
	"sync"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/ledger"
	"juntaai-backend/internal/money"
)

// Projection overlays locally staged payment decisions on top of the last
// authoritative summary, so a decision shows up immediately instead of
// waiting a full round trip through the store and the change feed. Staged
// decisions are dropped as soon as an authoritative reload confirms them,
// or explicitly reverted when the write fails.
type Projection struct {
	mu       sync.Mutex
	summary  *ledger.Summary
	overlays map[string]domain.PaymentStatus
}

// View is a summary with its locally staged decisions applied.
type View struct {
	Summary *ledger.Summary `json:"summary"`
	// PendingLocalWrites lists payment IDs decided locally but not yet
	// reflected in an authoritative reload.
	PendingLocalWrites []string `json:"pending_local_writes,omitempty"`
}

func NewProjection() *Projection {
	return &Projection{overlays: make(map[string]domain.PaymentStatus)}
}

// ApplyAuthoritative replaces the base summary. Overlays whose payment is no
// longer pending in the new summary have been absorbed by the store and are
// discarded; the rest are re-applied on top.
func (p *Projection) ApplyAuthoritative(s *ledger.Summary) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.summary = s
	pending := make(map[string]struct{}, len(s.Pending))
	for _, pay := range s.Pending {
		pending[pay.ID] = struct{}{}
	}
	for id := range p.overlays {
		if _, still := pending[id]; !still {
			delete(p.overlays, id)
		}
	}
	return p.view()
}

// StageDecision marks a pending payment as decided locally. Unknown payment
// IDs and non-terminal statuses are ignored.
func (p *Projection) StageDecision(paymentID string, status domain.PaymentStatus) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	if status.Terminal() {
		p.overlays[paymentID] = status
	}
	return p.view()
}

// Revert drops a staged decision, restoring the payment to its
// authoritative pending state.
func (p *Projection) Revert(paymentID string) View {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.overlays, paymentID)
	return p.view()
}

// Current returns the present view without changing any state.
func (p *Projection) Current() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.view()
}

// view rebuilds the overlayed summary. Caller holds p.mu.
func (p *Projection) view() View {
	if p.summary == nil {
		return View{}
	}
	if len(p.overlays) == 0 {
		return View{Summary: p.summary}
	}

	s := *p.summary
	s.Pending = nil
	s.Settled = append([]domain.Payment(nil), p.summary.Settled...)

	v := View{}
	confirmedByUser := make(map[string]money.Cents)
	for _, pay := range p.summary.Pending {
		status, staged := p.overlays[pay.ID]
		if !staged {
			s.Pending = append(s.Pending, pay)
			continue
		}
		pay.Status = status
		s.Settled = append([]domain.Payment{pay}, s.Settled...)
		v.PendingLocalWrites = append(v.PendingLocalWrites, pay.ID)
		if status == domain.PaymentStatusConfirmed {
			s.ConfirmedTotal += pay.Amount
			s.Balance += pay.Amount
			confirmedByUser[pay.UserID] += pay.Amount
		}
	}
	if s.Group != nil && s.Group.TotalGoal > 0 {
		s.ProgressPct = 100 * float64(s.ConfirmedTotal) / float64(s.Group.TotalGoal)
	}
	if len(confirmedByUser) > 0 {
		s.Members = append([]ledger.MemberSummary(nil), p.summary.Members...)
		for i := range s.Members {
			add, ok := confirmedByUser[s.Members[i].UserID]
			if !ok {
				continue
			}
			s.Members[i].ConfirmedTotal += add
			if s.Members[i].IndividualGoal > 0 {
				s.Members[i].ProgressPct = 100 * float64(s.Members[i].ConfirmedTotal) / float64(s.Members[i].IndividualGoal)
				s.Members[i].GoalMet = s.Members[i].ConfirmedTotal >= s.Members[i].IndividualGoal
			}
		}
	}

	v.Summary = &s
	return v
}
