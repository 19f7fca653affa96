/*
transactions.go - Transaction ledger operations

Transactions are the only hard-deletable entity. Every mutation here
consults the month-closing state for the transaction's calendar month
and rejects edits when the month is fechado.

Status transitions are one-directional: provisao becomes real through
ConfirmProvision, which stamps the effective date. A real transaction
is never reverted to provisao.
*/
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionInput struct {
	Type        TransactionType
	Status      TransactionStatus
	Date        time.Time
	Description string
	Amount      decimal.Decimal

	CompanyID         string
	CategoryID        string
	ServiceProviderID string
	BankAccountID     string
	CreditCardID      string

	DestinationBankAccountID string
}

type TransactionPatch struct {
	Type        *TransactionType
	Status      *TransactionStatus
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal

	CompanyID         *string
	CategoryID        *string
	ServiceProviderID *string
	BankAccountID     *string
	CreditCardID      *string

	DestinationBankAccountID *string
}

// monthLock returns a MonthClosedError when the calendar month of t is
// closed. Months never touched by a closing record are open.
func (s *Service) monthLock(ctx context.Context, t time.Time) error {
	ym := YearMonthOf(t)
	mc, err := s.store.GetMonthClosing(ctx, ym)
	if err != nil {
		return err
	}
	if mc != nil && mc.Status == ClosingClosed {
		return &MonthClosedError{YearMonth: ym}
	}
	return nil
}

func (s *Service) validateTransaction(in TransactionInput) error {
	if in.Description == "" {
		return missing("description")
	}
	if in.Date.IsZero() {
		return missing("date")
	}
	if !in.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if in.Status != StatusReal && in.Status != StatusProvision {
		return &ValidationError{Field: "status", Message: "must be real or provisao"}
	}
	switch in.Type {
	case TypeIncome, TypeExpense:
		if in.CompanyID == "" {
			return missing("companyId")
		}
	case TypeTransfer:
		if in.BankAccountID == "" {
			return missing("bankAccountId")
		}
		if in.DestinationBankAccountID == "" {
			return missing("destinationBankAccountId")
		}
		if in.DestinationBankAccountID == in.BankAccountID {
			return &ValidationError{Field: "destinationBankAccountId", Message: "must differ from source account"}
		}
	default:
		return &ValidationError{Field: "type", Message: "must be income, expense or transfer"}
	}
	return nil
}

// AddTransaction validates and appends a single ledger row. Transfers
// never carry a company or category; those fields are cleared rather
// than rejected, matching the entry flow.
func (s *Service) AddTransaction(ctx context.Context, in TransactionInput) (Transaction, error) {
	if err := s.validateTransaction(in); err != nil {
		return Transaction{}, err
	}
	if err := s.monthLock(ctx, in.Date); err != nil {
		return Transaction{}, err
	}
	if in.Type == TypeTransfer {
		in.CompanyID = ""
		in.CategoryID = ""
	}
	now := s.now()
	t := Transaction{
		ID:                       s.newID(),
		Type:                     in.Type,
		Status:                   in.Status,
		Date:                     in.Date,
		Description:              in.Description,
		Amount:                   in.Amount,
		CompanyID:                in.CompanyID,
		CategoryID:               in.CategoryID,
		ServiceProviderID:        in.ServiceProviderID,
		BankAccountID:            in.BankAccountID,
		CreditCardID:             in.CreditCardID,
		DestinationBankAccountID: in.DestinationBankAccountID,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.store.SaveTransaction(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) (Transaction, error) {
	t, err := s.Transaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	// The lock applies to the month the row currently sits in AND to
	// the month it would move to.
	if err := s.monthLock(ctx, t.Date); err != nil {
		return Transaction{}, err
	}
	if patch.Date != nil {
		if err := s.monthLock(ctx, *patch.Date); err != nil {
			return Transaction{}, err
		}
		t.Date = *patch.Date
	}
	if patch.Status != nil {
		if t.Status == StatusReal && *patch.Status == StatusProvision {
			return Transaction{}, &ValidationError{Field: "status", Message: "real transactions cannot revert to provisao"}
		}
		t.Status = *patch.Status
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return Transaction{}, missing("description")
		}
		t.Description = *patch.Description
	}
	if patch.Amount != nil {
		if !patch.Amount.IsPositive() {
			return Transaction{}, &ValidationError{Field: "amount", Message: "must be positive"}
		}
		t.Amount = *patch.Amount
	}
	if patch.CompanyID != nil {
		t.CompanyID = *patch.CompanyID
	}
	if patch.CategoryID != nil {
		t.CategoryID = *patch.CategoryID
	}
	if patch.ServiceProviderID != nil {
		t.ServiceProviderID = *patch.ServiceProviderID
	}
	if patch.BankAccountID != nil {
		t.BankAccountID = *patch.BankAccountID
	}
	if patch.CreditCardID != nil {
		t.CreditCardID = *patch.CreditCardID
	}
	if patch.DestinationBankAccountID != nil {
		t.DestinationBankAccountID = *patch.DestinationBankAccountID
	}
	t.UpdatedAt = s.now()
	if err := s.store.SaveTransaction(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// DeleteTransaction hard-removes a row. There is no cascade; a deleted
// installment leaves its purchase group short, which the audit checker
// reports.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	t, err := s.Transaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.monthLock(ctx, t.Date); err != nil {
		return err
	}
	return s.store.DeleteTransaction(ctx, id)
}

// ConfirmProvision flips a provisao transaction to real, stamping the
// effective date. Confirming an already-real row is rejected.
func (s *Service) ConfirmProvision(ctx context.Context, id string, effectiveDate time.Time) (Transaction, error) {
	t, err := s.Transaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if t.Status != StatusProvision {
		return Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotProvision)
	}
	if err := s.monthLock(ctx, t.Date); err != nil {
		return Transaction{}, err
	}
	t.Status = StatusReal
	t.EffectiveDate = &effectiveDate
	t.UpdatedAt = s.now()
	if err := s.store.SaveTransaction(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// RecordAdjustment maps a signed amount onto an income (positive) or
// expense (negative) row with a marked description, as the manual
// adjustment entry flow does.
func (s *Service) RecordAdjustment(ctx context.Context, companyID, bankAccountID, description string, date time.Time, amount decimal.Decimal) (Transaction, error) {
	typ := TypeIncome
	if amount.IsNegative() {
		typ = TypeExpense
	}
	return s.AddTransaction(ctx, TransactionInput{
		Type:          typ,
		Status:        StatusReal,
		Date:          date,
		Description:   "[AJUSTE] " + description,
		Amount:        amount.Abs(),
		CompanyID:     companyID,
		BankAccountID: bankAccountID,
	})
}
