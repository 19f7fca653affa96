/*
balance.go - Balance engine

PURPOSE:
  Derives every monetary aggregate by folding over the transaction
  collection. Nothing here is cached: each call recomputes from the
  current store snapshot, which keeps the figures trivially consistent
  at the expense of an O(n) scan per query. At single-user scale
  (thousands of rows) that cost is acceptable; anyone adapting this to
  larger datasets should maintain running balances on mutation and
  keep this fold as the correctness reference.

FOLD RULES:
  - Only status=real transactions move a bank account balance;
    provisions count solely into the projected summary figure.
  - A transfer debits its source account and credits its destination,
    netting to zero in the global summary.
  - Company balance matches transactions by CompanyID directly, not by
    account membership. A row's BankAccountID need not belong to one
    of the company's accounts; this looseness is deliberate and kept.
*/
package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

// BankAccountBalance folds real transactions over the account's
// initial balance. Archived accounts still resolve.
func (s *Service) BankAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	account, err := s.BankAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.InitialBalance
	for _, t := range txs {
		if t.Status != StatusReal {
			continue
		}
		if t.BankAccountID == accountID {
			switch t.Type {
			case TypeIncome:
				balance = balance.Add(t.Amount)
			case TypeExpense, TypeTransfer:
				balance = balance.Sub(t.Amount)
			}
		}
		if t.DestinationBankAccountID == accountID && t.Type == TypeTransfer {
			balance = balance.Add(t.Amount)
		}
	}
	return balance, nil
}

// CompanyBalance sums initial balances of the company's accounts plus
// real income minus real expense matched by CompanyID.
func (s *Service) CompanyBalance(ctx context.Context, companyID string) (decimal.Decimal, error) {
	if _, err := s.Company(ctx, companyID); err != nil {
		return decimal.Zero, err
	}
	accounts, err := s.store.ListBankAccounts(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, a := range accounts {
		if a.CompanyID == companyID {
			balance = balance.Add(a.InitialBalance)
		}
	}
	for _, t := range txs {
		if t.Status != StatusReal || t.CompanyID != companyID {
			continue
		}
		switch t.Type {
		case TypeIncome:
			balance = balance.Add(t.Amount)
		case TypeExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}

// GlobalSummary computes the dashboard aggregates, optionally
// restricted to an inclusive date range on Transaction.Date.
//
// RealBalance counts only real income/expense over the sum of all
// accounts' initial balances; ProjectedBalance counts every status.
// TotalIncome/TotalExpenses report real sums only, TotalTransfers all
// statuses, PendingProvisions the provisao row count in range.
func (s *Service) GlobalSummary(ctx context.Context, rng *Period) (Summary, error) {
	accounts, err := s.store.ListBankAccounts(ctx)
	if err != nil {
		return Summary{}, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return Summary{}, err
	}

	initial := decimal.Zero
	for _, a := range accounts {
		initial = initial.Add(a.InitialBalance)
	}

	var (
		realIncome       = decimal.Zero
		realExpenses     = decimal.Zero
		projIncome       = decimal.Zero
		projExpenses     = decimal.Zero
		transfers        = decimal.Zero
		pendingProvision = 0
	)
	for _, t := range txs {
		if rng != nil && !rng.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case TypeIncome:
			projIncome = projIncome.Add(t.Amount)
			if t.Status == StatusReal {
				realIncome = realIncome.Add(t.Amount)
			}
		case TypeExpense:
			projExpenses = projExpenses.Add(t.Amount)
			if t.Status == StatusReal {
				realExpenses = realExpenses.Add(t.Amount)
			}
		case TypeTransfer:
			transfers = transfers.Add(t.Amount)
		}
		if t.Status == StatusProvision {
			pendingProvision++
		}
	}

	return Summary{
		RealBalance:       initial.Add(realIncome).Sub(realExpenses),
		ProjectedBalance:  initial.Add(projIncome).Sub(projExpenses),
		TotalIncome:       realIncome,
		TotalExpenses:     realExpenses,
		TotalTransfers:    transfers,
		PendingProvisions: pendingProvision,
	}, nil
}

// CreditCardInvoice returns the card's transactions whose Date falls
// within the given "YYYY-MM" month. The filter uses the transaction
// date, not the installment due date or the card's closing-day cycle;
// this mirrors how invoices were always presented.
func (s *Service) CreditCardInvoice(ctx context.Context, cardID, yearMonth string) ([]Transaction, error) {
	if _, err := s.CreditCard(ctx, cardID); err != nil {
		return nil, err
	}
	period, err := MonthPeriod(yearMonth)
	if err != nil {
		return nil, &ValidationError{Field: "month", Message: "must be YYYY-MM"}
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var invoice []Transaction
	for _, t := range txs {
		if t.CreditCardID == cardID && period.Contains(t.Date) {
			invoice = append(invoice, t)
		}
	}
	return invoice, nil
}
