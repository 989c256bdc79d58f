// Package ledger derives balances and progress from a group snapshot.
//
// Everything here is pure computation: the engine never touches the store
// and never mutates its inputs. Only CONFIRMED payments count toward any
// monetary aggregate; PENDING and REJECTED rows are excluded everywhere.
package ledger

import (
	"sort"

	"juntaai-backend/internal/domain"
	"juntaai-backend/internal/money"
)

// Snapshot is the full set of a group's rows as read from the store in one
// reload. The engine recomputes every derived value from scratch on each
// snapshot rather than patching deltas into previous results.
type Snapshot struct {
	Group    *domain.Group
	Members  []domain.Member
	Payments []domain.Payment
	Expenses []domain.Expense
}

// MemberSummary is one member's derived progress.
type MemberSummary struct {
	UserID         string      `json:"user_id"`
	Profile        *domain.Profile `json:"profile,omitempty"`
	IndividualGoal money.Cents `json:"individual_goal"`
	ConfirmedTotal money.Cents `json:"confirmed_total"`
	// ProgressPct is the true percentage against the individual goal,
	// deliberately not clamped to 100. Zero when no goal is set.
	ProgressPct float64 `json:"progress_pct"`
	GoalMet     bool    `json:"goal_met"`
	IsOwner     bool    `json:"is_owner"`
}

// Summary holds every value the presentation derives from a group.
type Summary struct {
	Group          *domain.Group    `json:"group"`
	ConfirmedTotal money.Cents      `json:"confirmed_total"`
	ExpenseTotal   money.Cents      `json:"expense_total"`
	Balance        money.Cents      `json:"balance"`
	// ProgressPct may exceed 100 on overshoot. Clamping the progress bar
	// is a presentation concern, not a ledger one.
	ProgressPct float64          `json:"progress_pct"`
	Members     []MemberSummary  `json:"members"`
	// Pending is the approval queue, newest first.
	Pending []domain.Payment `json:"pending"`
	// Settled is the decided payment history, newest first.
	Settled  []domain.Payment `json:"settled"`
	Expenses []domain.Expense `json:"expenses"`
}

// Compute derives all aggregates for one snapshot.
func Compute(snap Snapshot) Summary {
	s := Summary{Group: snap.Group}

	confirmedByUser := make(map[string]money.Cents)
	for _, p := range snap.Payments {
		switch p.Status {
		case domain.PaymentStatusConfirmed:
			s.ConfirmedTotal += p.Amount
			confirmedByUser[p.UserID] += p.Amount
			s.Settled = append(s.Settled, p)
		case domain.PaymentStatusRejected:
			s.Settled = append(s.Settled, p)
		case domain.PaymentStatusPending:
			s.Pending = append(s.Pending, p)
		}
	}
	for _, e := range snap.Expenses {
		s.ExpenseTotal += e.Amount
	}
	s.Balance = s.ConfirmedTotal - s.ExpenseTotal
	if snap.Group != nil && snap.Group.TotalGoal > 0 {
		s.ProgressPct = 100 * float64(s.ConfirmedTotal) / float64(snap.Group.TotalGoal)
	}

	for _, m := range snap.Members {
		ms := MemberSummary{
			UserID:         m.UserID,
			Profile:        m.Profile,
			IndividualGoal: m.IndividualGoal,
			ConfirmedTotal: confirmedByUser[m.UserID],
		}
		if m.IndividualGoal > 0 {
			ms.ProgressPct = 100 * float64(ms.ConfirmedTotal) / float64(m.IndividualGoal)
			// Goal is met at total >= goal, not strictly greater.
			ms.GoalMet = ms.ConfirmedTotal >= m.IndividualGoal
		}
		if snap.Group != nil {
			ms.IsOwner = snap.Group.IsOwner(m.UserID)
		}
		s.Members = append(s.Members, ms)
	}

	sortNewestFirst(s.Pending)
	sortNewestFirst(s.Settled)
	s.Expenses = append(s.Expenses, snap.Expenses...)
	sort.SliceStable(s.Expenses, func(i, j int) bool {
		return s.Expenses[i].CreatedAt > s.Expenses[j].CreatedAt
	})

	return s
}

func sortNewestFirst(ps []domain.Payment) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].CreatedAt > ps[j].CreatedAt
	})
}
