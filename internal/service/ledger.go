package service

import (
	"context"

	"juntaai-backend/internal/ledger"
	"juntaai-backend/internal/repository"

	"golang.org/x/sync/errgroup"
)

type ledgerService struct {
	groupRepo   repository.GroupRepository
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
	expenseRepo repository.ExpenseRepository
}

func NewLedgerService(
	groupRepo repository.GroupRepository,
	memberRepo repository.MemberRepository,
	paymentRepo repository.PaymentRepository,
	expenseRepo repository.ExpenseRepository,
) LedgerService {
	return &ledgerService{
		groupRepo:   groupRepo,
		memberRepo:  memberRepo,
		paymentRepo: paymentRepo,
		expenseRepo: expenseRepo,
	}
}

// LoadSnapshot issues the four reads concurrently. A failed read fails the
// whole snapshot: an unreadable payments list must never be treated as
// "zero payments" for balance purposes.
func (s *ledgerService) LoadSnapshot(ctx context.Context, groupID string) (*ledger.Snapshot, error) {
	var snap ledger.Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		group, err := s.groupRepo.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		snap.Group = group
		return nil
	})
	g.Go(func() error {
		members, err := s.memberRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		snap.Members = members
		return nil
	})
	g.Go(func() error {
		payments, err := s.paymentRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		snap.Payments = payments
		return nil
	})
	g.Go(func() error {
		expenses, err := s.expenseRepo.ListByGroup(ctx, groupID)
		if err != nil {
			return err
		}
		snap.Expenses = expenses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *ledgerService) GetSummary(ctx context.Context, groupID string) (*ledger.Summary, error) {
	snap, err := s.LoadSnapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}
	summary := ledger.Compute(*snap)
	return &summary, nil
}
