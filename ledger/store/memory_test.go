package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verto/fincontrol/ledger"
	"github.com/verto/fincontrol/ledger/store"
)

func ts(day, hour int) time.Time {
	return time.Date(2025, time.June, day, hour, 0, 0, 0, time.UTC)
}

func TestMemory_ListCompaniesOrderedByCreation(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveCompany(ctx, ledger.Company{ID: "b", Name: "Second",
		Type: ledger.CompanyBusiness, Status: ledger.StatusActive, CreatedAt: ts(2, 0), UpdatedAt: ts(2, 0)}))
	require.NoError(t, m.SaveCompany(ctx, ledger.Company{ID: "a", Name: "First",
		Type: ledger.CompanyBusiness, Status: ledger.StatusActive, CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)}))

	companies, err := m.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "First", companies[0].Name)
	assert.Equal(t, "Second", companies[1].Name)
}

func TestMemory_ListTransactionsOrderedByDate(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	later := ledger.Transaction{ID: "t-2", Type: ledger.TypeExpense, Status: ledger.StatusReal,
		Date: ts(20, 0), Description: "Later", Amount: ledger.MustDecimal("10"),
		CompanyID: "c-1", CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)}
	earlier := ledger.Transaction{ID: "t-1", Type: ledger.TypeExpense, Status: ledger.StatusReal,
		Date: ts(5, 0), Description: "Earlier", Amount: ledger.MustDecimal("10"),
		CompanyID: "c-1", CreatedAt: ts(2, 0), UpdatedAt: ts(2, 0)}
	require.NoError(t, m.SaveTransaction(ctx, later))
	require.NoError(t, m.SaveTransaction(ctx, earlier))

	txs, err := m.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "Earlier", txs[0].Description, "transaction date wins over insertion order")
}

func TestMemory_SaveReturnsIndependentCopies(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	c := ledger.Company{ID: "c-1", Name: "Original", Type: ledger.CompanyBusiness,
		Status: ledger.StatusActive, CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)}
	require.NoError(t, m.SaveCompany(ctx, c))

	got, err := m.GetCompany(ctx, "c-1")
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := m.GetCompany(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name, "caller mutations must not leak into the store")
}

func TestMemory_Reset(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveCompany(ctx, ledger.Company{ID: "c-1", Name: "X",
		Type: ledger.CompanyBusiness, Status: ledger.StatusActive, CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)}))
	require.NoError(t, m.SaveMonthClosing(ctx, ledger.MonthClosing{ID: "m-1", YearMonth: "2025-06",
		Status: ledger.ClosingClosed, CreatedAt: ts(1, 0), UpdatedAt: ts(1, 0)}))

	require.NoError(t, m.Reset(ctx))

	companies, err := m.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Empty(t, companies)

	mc, err := m.GetMonthClosing(ctx, "2025-06")
	require.NoError(t, err)
	assert.Nil(t, mc)
}
