/*
service.go - Ledger operations over the Store

PURPOSE:
  The Service is the single entry point for every mutation and query.
  It stamps identity and timestamps on creation, validates input
  before touching the store, and enforces the month-closing lock on
  transaction mutations.

CONSTRUCTION:
  One Service is constructed at startup and passed by reference to all
  consumers. There is no package-level state; tests construct isolated
  instances with a fixed clock.
*/
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service exposes the ledger operations, balance engine, deletability
// guard and audit checker over a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a Service using the wall clock.
func NewService(store Store) *Service {
	return NewServiceAt(store, time.Now)
}

// NewServiceAt creates a Service with an explicit clock. Tests use this
// to pin "now" for stale-provision and timestamp assertions.
func NewServiceAt(store Store, clock func() time.Time) *Service {
	return &Service{store: store, now: clock}
}

// Store returns the underlying store. The api seed loader uses it to
// reset collections.
func (s *Service) Store() Store { return s.store }

func (s *Service) newID() string { return uuid.NewString() }

// =============================================================================
// QUERIES - list-all-of-kind and get-by-id
// =============================================================================

func (s *Service) Companies(ctx context.Context) ([]Company, error) {
	return s.store.ListCompanies(ctx)
}

func (s *Service) Company(ctx context.Context, id string) (Company, error) {
	c, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return Company{}, err
	}
	if c == nil {
		return Company{}, &NotFoundError{Kind: "company", ID: id}
	}
	return *c, nil
}

func (s *Service) CreditCards(ctx context.Context) ([]CreditCard, error) {
	return s.store.ListCreditCards(ctx)
}

func (s *Service) CreditCard(ctx context.Context, id string) (CreditCard, error) {
	c, err := s.store.GetCreditCard(ctx, id)
	if err != nil {
		return CreditCard{}, err
	}
	if c == nil {
		return CreditCard{}, &NotFoundError{Kind: "credit card", ID: id}
	}
	return *c, nil
}

func (s *Service) BankAccounts(ctx context.Context) ([]BankAccount, error) {
	return s.store.ListBankAccounts(ctx)
}

func (s *Service) BankAccount(ctx context.Context, id string) (BankAccount, error) {
	a, err := s.store.GetBankAccount(ctx, id)
	if err != nil {
		return BankAccount{}, err
	}
	if a == nil {
		return BankAccount{}, &NotFoundError{Kind: "bank account", ID: id}
	}
	return *a, nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) Category(ctx context.Context, id string) (Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if c == nil {
		return Category{}, &NotFoundError{Kind: "category", ID: id}
	}
	return *c, nil
}

func (s *Service) ServiceProviders(ctx context.Context) ([]ServiceProvider, error) {
	return s.store.ListServiceProviders(ctx)
}

func (s *Service) ServiceProvider(ctx context.Context, id string) (ServiceProvider, error) {
	p, err := s.store.GetServiceProvider(ctx, id)
	if err != nil {
		return ServiceProvider{}, err
	}
	if p == nil {
		return ServiceProvider{}, &NotFoundError{Kind: "service provider", ID: id}
	}
	return *p, nil
}

func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *Service) Transaction(ctx context.Context, id string) (Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return Transaction{}, err
	}
	if t == nil {
		return Transaction{}, &NotFoundError{Kind: "transaction", ID: id}
	}
	return *t, nil
}

func (s *Service) InvoicePayments(ctx context.Context) ([]InvoicePayment, error) {
	return s.store.ListInvoicePayments(ctx)
}

func (s *Service) MonthClosings(ctx context.Context) ([]MonthClosing, error) {
	return s.store.ListMonthClosings(ctx)
}
