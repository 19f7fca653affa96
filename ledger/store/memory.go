// Package store provides the in-memory ledger.Store implementation.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/verto/fincontrol/ledger"
)

// =============================================================================
// MEMORY STORE - holds every collection in maps keyed by id
// =============================================================================

// Memory is a thread-safe in-memory Store for tests and the dev server.
type Memory struct {
	mu sync.RWMutex

	companies       map[string]ledger.Company
	creditCards     map[string]ledger.CreditCard
	bankAccounts    map[string]ledger.BankAccount
	categories      map[string]ledger.Category
	providers       map[string]ledger.ServiceProvider
	transactions    map[string]ledger.Transaction
	invoicePayments map[string]ledger.InvoicePayment
	monthClosings   map[string]ledger.MonthClosing // keyed by YearMonth
}

func NewMemory() *Memory {
	m := &Memory{}
	m.reset()
	return m
}

func (m *Memory) reset() {
	m.companies = make(map[string]ledger.Company)
	m.creditCards = make(map[string]ledger.CreditCard)
	m.bankAccounts = make(map[string]ledger.BankAccount)
	m.categories = make(map[string]ledger.Category)
	m.providers = make(map[string]ledger.ServiceProvider)
	m.transactions = make(map[string]ledger.Transaction)
	m.invoicePayments = make(map[string]ledger.InvoicePayment)
	m.monthClosings = make(map[string]ledger.MonthClosing)
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
	return nil
}

// =============================================================================
// COMPANIES
// =============================================================================

func (m *Memory) SaveCompany(_ context.Context, c ledger.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.ID] = c
	return nil
}

func (m *Memory) GetCompany(_ context.Context, id string) (*ledger.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) ListCompanies(_ context.Context) ([]ledger.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, c)
	}
	sortByCreation(out, func(c ledger.Company) creationKey { return creationKey{c.CreatedAt.UnixNano(), c.ID} })
	return out, nil
}

// =============================================================================
// CREDIT CARDS
// =============================================================================

func (m *Memory) SaveCreditCard(_ context.Context, c ledger.CreditCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creditCards[c.ID] = c
	return nil
}

func (m *Memory) GetCreditCard(_ context.Context, id string) (*ledger.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.creditCards[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) ListCreditCards(_ context.Context) ([]ledger.CreditCard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.CreditCard, 0, len(m.creditCards))
	for _, c := range m.creditCards {
		out = append(out, c)
	}
	sortByCreation(out, func(c ledger.CreditCard) creationKey { return creationKey{c.CreatedAt.UnixNano(), c.ID} })
	return out, nil
}

// =============================================================================
// BANK ACCOUNTS
// =============================================================================

func (m *Memory) SaveBankAccount(_ context.Context, a ledger.BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bankAccounts[a.ID] = a
	return nil
}

func (m *Memory) GetBankAccount(_ context.Context, id string) (*ledger.BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.bankAccounts[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (m *Memory) ListBankAccounts(_ context.Context) ([]ledger.BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.BankAccount, 0, len(m.bankAccounts))
	for _, a := range m.bankAccounts {
		out = append(out, a)
	}
	sortByCreation(out, func(a ledger.BankAccount) creationKey { return creationKey{a.CreatedAt.UnixNano(), a.ID} })
	return out, nil
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (m *Memory) SaveCategory(_ context.Context, c ledger.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
	return nil
}

func (m *Memory) GetCategory(_ context.Context, id string) (*ledger.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) ListCategories(_ context.Context) ([]ledger.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Category, 0, len(m.categories))
	for _, c := range m.categories {
		out = append(out, c)
	}
	sortByCreation(out, func(c ledger.Category) creationKey { return creationKey{c.CreatedAt.UnixNano(), c.ID} })
	return out, nil
}

// =============================================================================
// SERVICE PROVIDERS
// =============================================================================

func (m *Memory) SaveServiceProvider(_ context.Context, p ledger.ServiceProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[p.ID] = p
	return nil
}

func (m *Memory) GetServiceProvider(_ context.Context, id string) (*ledger.ServiceProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.providers[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) ListServiceProviders(_ context.Context) ([]ledger.ServiceProvider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.ServiceProvider, 0, len(m.providers))
	for _, p := range m.providers {
		out = append(out, p)
	}
	sortByCreation(out, func(p ledger.ServiceProvider) creationKey { return creationKey{p.CreatedAt.UnixNano(), p.ID} })
	return out, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func (m *Memory) SaveTransaction(_ context.Context, t ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[t.ID] = t
	return nil
}

// SaveTransactions is atomic by construction: the map writes happen
// under one lock and nothing here can fail partway.
func (m *Memory) SaveTransactions(_ context.Context, ts []ledger.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range ts {
		m.transactions[t.ID] = t
	}
	return nil
}

func (m *Memory) GetTransaction(_ context.Context, id string) (*ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *Memory) ListTransactions(_ context.Context) ([]ledger.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, t)
	}
	// Chronological, ties broken by creation then id.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) DeleteTransaction(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.transactions, id)
	return nil
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

func (m *Memory) SaveInvoicePayment(_ context.Context, p ledger.InvoicePayment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoicePayments[p.ID] = p
	return nil
}

func (m *Memory) ListInvoicePayments(_ context.Context) ([]ledger.InvoicePayment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.InvoicePayment, 0, len(m.invoicePayments))
	for _, p := range m.invoicePayments {
		out = append(out, p)
	}
	sortByCreation(out, func(p ledger.InvoicePayment) creationKey { return creationKey{p.CreatedAt.UnixNano(), p.ID} })
	return out, nil
}

// =============================================================================
// MONTH CLOSINGS
// =============================================================================

func (m *Memory) SaveMonthClosing(_ context.Context, mc ledger.MonthClosing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.monthClosings[mc.YearMonth] = mc
	return nil
}

func (m *Memory) GetMonthClosing(_ context.Context, yearMonth string) (*ledger.MonthClosing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mc, ok := m.monthClosings[yearMonth]; ok {
		return &mc, nil
	}
	return nil, nil
}

func (m *Memory) ListMonthClosings(_ context.Context) ([]ledger.MonthClosing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.MonthClosing, 0, len(m.monthClosings))
	for _, mc := range m.monthClosings {
		out = append(out, mc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth < out[j].YearMonth })
	return out, nil
}

// =============================================================================
// SORTING HELPERS
// =============================================================================

type creationKey struct {
	createdAt int64
	id        string
}

func sortByCreation[T any](items []T, key func(T) creationKey) {
	sort.Slice(items, func(i, j int) bool {
		a, b := key(items[i]), key(items[j])
		if a.createdAt != b.createdAt {
			return a.createdAt < b.createdAt
		}
		return a.id < b.id
	})
}
