/*
store.go - Persistence boundary for entity collections

PURPOSE:
  Defines the interface between the ledger engine and storage. The
  Store holds one collection per entity kind, keyed by id. Different
  implementations can use SQLite or in-memory storage; the engine
  recomputes all derived values by folding over List results, so a
  Store never holds balances.

CONTRACT:
  - Save* is an upsert: insert when the id is new, replace otherwise.
  - Get* returns (nil, nil) when the id does not exist; the service
    layer maps that to ErrNotFound.
  - SaveTransactions appends a batch atomically: either all rows are
    written or none are (installment groups rely on this).
  - DeleteTransaction is the only hard removal; every other entity
    kind is archived via a status flip.

IMPLEMENTATIONS:
  - ledger/store/memory.go: in-memory, for tests and the dev server
  - store/sqlite/sqlite.go: SQLite-backed, one table per kind
*/
package ledger

import "context"

// Store is the serialization boundary for all entity collections.
type Store interface {
	SaveCompany(ctx context.Context, c Company) error
	GetCompany(ctx context.Context, id string) (*Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)

	SaveCreditCard(ctx context.Context, c CreditCard) error
	GetCreditCard(ctx context.Context, id string) (*CreditCard, error)
	ListCreditCards(ctx context.Context) ([]CreditCard, error)

	SaveBankAccount(ctx context.Context, a BankAccount) error
	GetBankAccount(ctx context.Context, id string) (*BankAccount, error)
	ListBankAccounts(ctx context.Context) ([]BankAccount, error)

	SaveCategory(ctx context.Context, c Category) error
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)

	SaveServiceProvider(ctx context.Context, p ServiceProvider) error
	GetServiceProvider(ctx context.Context, id string) (*ServiceProvider, error)
	ListServiceProviders(ctx context.Context) ([]ServiceProvider, error)

	SaveTransaction(ctx context.Context, t Transaction) error
	// SaveTransactions writes a batch atomically. Used by the
	// installment expander so a purchase group is never partial.
	SaveTransactions(ctx context.Context, ts []Transaction) error
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	ListTransactions(ctx context.Context) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	SaveInvoicePayment(ctx context.Context, p InvoicePayment) error
	ListInvoicePayments(ctx context.Context) ([]InvoicePayment, error)

	SaveMonthClosing(ctx context.Context, m MonthClosing) error
	// GetMonthClosing looks up by "YYYY-MM"; (nil, nil) when the month
	// has never been touched (an untouched month is open).
	GetMonthClosing(ctx context.Context, yearMonth string) (*MonthClosing, error)
	ListMonthClosings(ctx context.Context) ([]MonthClosing, error)

	// Reset clears every collection. Used when loading seed data.
	Reset(ctx context.Context) error
}
