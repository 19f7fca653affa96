/*
installments.go - Card purchase installment expander

A card purchase of N installments expands into N expense rows sharing
one PurchaseID. The total splits into equal 2-decimal shares with the
LAST installment absorbing the rounding remainder, so the group always
sums back to the original amount. Due dates advance one calendar month
per step from the purchase date.

The batch is appended through Store.SaveTransactions so the group is
never partially written.
*/
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CardPurchaseInput struct {
	Description string
	Date        time.Time
	Amount      decimal.Decimal
	Status      TransactionStatus

	CreditCardID      string
	CompanyID         string
	CategoryID        string
	ServiceProviderID string

	Installments int
}

// RecordCardPurchase expands a card purchase into its installment rows
// and appends them atomically. Installments=1 degenerates to a single
// expense carrying 1/1 installment metadata.
func (s *Service) RecordCardPurchase(ctx context.Context, in CardPurchaseInput) ([]Transaction, error) {
	if in.CreditCardID == "" {
		return nil, missing("creditCardId")
	}
	if in.Installments < 1 {
		return nil, &ValidationError{Field: "installments", Message: "must be at least 1"}
	}
	if in.Status == "" {
		in.Status = StatusReal
	}
	base := TransactionInput{
		Type:              TypeExpense,
		Status:            in.Status,
		Date:              in.Date,
		Description:       in.Description,
		Amount:            in.Amount,
		CompanyID:         in.CompanyID,
		CategoryID:        in.CategoryID,
		ServiceProviderID: in.ServiceProviderID,
		CreditCardID:      in.CreditCardID,
	}
	if err := s.validateTransaction(base); err != nil {
		return nil, err
	}
	if err := s.monthLock(ctx, in.Date); err != nil {
		return nil, err
	}

	shares := splitEqual(in.Amount, in.Installments)
	purchaseID := s.newID()
	now := s.now()

	txs := make([]Transaction, 0, in.Installments)
	for i := 1; i <= in.Installments; i++ {
		due := AddMonthsClamped(in.Date, i-1)
		txs = append(txs, Transaction{
			ID:                 s.newID(),
			Type:               TypeExpense,
			Status:             in.Status,
			Date:               in.Date,
			Description:        in.Description,
			Amount:             shares[i-1],
			CompanyID:          in.CompanyID,
			CategoryID:         in.CategoryID,
			ServiceProviderID:  in.ServiceProviderID,
			CreditCardID:       in.CreditCardID,
			PurchaseID:         purchaseID,
			InstallmentNumber:  i,
			TotalInstallments:  in.Installments,
			InstallmentDueDate: &due,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	if err := s.store.SaveTransactions(ctx, txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// splitEqual divides total into n shares rounded to 2 decimal places.
// The last share absorbs the remainder: shares always sum to total.
func splitEqual(total decimal.Decimal, n int) []decimal.Decimal {
	share := total.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	shares := make([]decimal.Decimal, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		shares[i] = share
		running = running.Add(share)
	}
	shares[n-1] = total.Sub(running)
	return shares
}
