/*
closing.go - Month closing lifecycle

Closing a month freezes its transactions: every transaction mutation
checks the closing state for the row's calendar month (see
transactions.go). A month may only close when its checklist has no
error-level items; warnings do not block.
*/
package ledger

import (
	"context"
	"fmt"
)

// CloseMonth locks a "YYYY-MM" month after verifying its checklist.
// Closing an already-closed month refreshes ClosedAt and is not an
// error.
func (s *Service) CloseMonth(ctx context.Context, yearMonth string) (MonthClosing, error) {
	items, err := s.MonthChecklist(ctx, yearMonth)
	if err != nil {
		return MonthClosing{}, err
	}
	for _, item := range items {
		if item.Status == CheckError {
			return MonthClosing{}, fmt.Errorf("%s: %w", item.Label, ErrChecklistErrors)
		}
	}

	now := s.now()
	mc, err := s.store.GetMonthClosing(ctx, yearMonth)
	if err != nil {
		return MonthClosing{}, err
	}
	if mc == nil {
		mc = &MonthClosing{
			ID:        s.newID(),
			YearMonth: yearMonth,
			CreatedAt: now,
		}
	}
	mc.Status = ClosingClosed
	mc.ClosedAt = &now
	mc.UpdatedAt = now
	if err := s.store.SaveMonthClosing(ctx, *mc); err != nil {
		return MonthClosing{}, err
	}
	return *mc, nil
}

// ReopenMonth lifts the lock. Reopening a month that was never closed
// is a NotFound.
func (s *Service) ReopenMonth(ctx context.Context, yearMonth string) (MonthClosing, error) {
	mc, err := s.store.GetMonthClosing(ctx, yearMonth)
	if err != nil {
		return MonthClosing{}, err
	}
	if mc == nil {
		return MonthClosing{}, &NotFoundError{Kind: "month closing", ID: yearMonth}
	}
	mc.Status = ClosingOpen
	mc.ClosedAt = nil
	mc.UpdatedAt = s.now()
	if err := s.store.SaveMonthClosing(ctx, *mc); err != nil {
		return MonthClosing{}, err
	}
	return *mc, nil
}

// IsMonthClosed reports the lock state of a "YYYY-MM" month.
func (s *Service) IsMonthClosed(ctx context.Context, yearMonth string) (bool, error) {
	mc, err := s.store.GetMonthClosing(ctx, yearMonth)
	if err != nil {
		return false, err
	}
	return mc != nil && mc.Status == ClosingClosed, nil
}
