/*
guard.go - Deletability guard

Pure predicates answering "would a hard delete of this entity orphan
anything?". They never block archival; callers use the answer for
messaging only. An entity is deletable iff no transaction, no invoice
payment and (for companies) no bank account references it.
*/
package ledger

import "context"

func (s *Service) CanDeleteCompany(ctx context.Context, id string) (bool, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if t.CompanyID == id {
			return false, nil
		}
	}
	accounts, err := s.store.ListBankAccounts(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.CompanyID == id {
			return false, nil
		}
	}
	payments, err := s.store.ListInvoicePayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.PayingCompanyID == id {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) CanDeleteCreditCard(ctx context.Context, id string) (bool, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if t.CreditCardID == id {
			return false, nil
		}
	}
	payments, err := s.store.ListInvoicePayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.CreditCardID == id {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) CanDeleteBankAccount(ctx context.Context, id string) (bool, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if t.BankAccountID == id || t.DestinationBankAccountID == id {
			return false, nil
		}
	}
	payments, err := s.store.ListInvoicePayments(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.BankAccountID == id {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) CanDeleteCategory(ctx context.Context, id string) (bool, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if t.CategoryID == id {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) CanDeleteServiceProvider(ctx context.Context, id string) (bool, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if t.ServiceProviderID == id {
			return false, nil
		}
	}
	return true, nil
}
