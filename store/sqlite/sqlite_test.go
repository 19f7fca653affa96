package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verto/fincontrol/ledger"
	"github.com/verto/fincontrol/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func ts(day int) time.Time {
	return time.Date(2025, time.June, day, 10, 0, 0, 0, time.UTC)
}

func TestStore_CompanyRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := ledger.Company{
		ID:        "c-1",
		Name:      "Empresa Principal",
		Type:      ledger.CompanyBusiness,
		Status:    ledger.StatusActive,
		CreatedAt: ts(1),
		UpdatedAt: ts(1),
	}
	require.NoError(t, store.SaveCompany(ctx, c))

	got, err := store.GetCompany(ctx, "c-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c, *got)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetCompany(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)

	tx, err := store.GetTransaction(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, tx)

	mc, err := store.GetMonthClosing(ctx, "2025-01")
	require.NoError(t, err)
	assert.Nil(t, mc)
}

func TestStore_SaveCompanyIsUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c := ledger.Company{ID: "c-1", Name: "Before", Type: ledger.CompanyBusiness,
		Status: ledger.StatusActive, CreatedAt: ts(1), UpdatedAt: ts(1)}
	require.NoError(t, store.SaveCompany(ctx, c))

	c.Name = "After"
	c.UpdatedAt = ts(2)
	require.NoError(t, store.SaveCompany(ctx, c))

	companies, err := store.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 1)
	assert.Equal(t, "After", companies[0].Name)
}

func TestStore_TransactionRoundTrip_AllFields(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	effective := ts(6)
	due := ts(10)
	tx := ledger.Transaction{
		ID:                       "t-1",
		Type:                     ledger.TypeExpense,
		Status:                   ledger.StatusReal,
		Date:                     ts(5),
		EffectiveDate:            &effective,
		Description:              "Notebook 1/3",
		Amount:                   ledger.MustDecimal("433.34"),
		CompanyID:                "c-1",
		CategoryID:               "cat-1",
		ServiceProviderID:        "p-1",
		CreditCardID:             "card-1",
		PurchaseID:               "purchase-1",
		InstallmentNumber:        1,
		TotalInstallments:        3,
		InstallmentDueDate:       &due,
		DestinationBankAccountID: "",
		CreatedAt:                ts(5),
		UpdatedAt:                ts(5),
	}
	require.NoError(t, store.SaveTransaction(ctx, tx))

	got, err := store.GetTransaction(ctx, "t-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, tx.Description, got.Description)
	assert.True(t, tx.Amount.Equal(got.Amount), "decimal survives the TEXT column")
	require.NotNil(t, got.EffectiveDate)
	assert.True(t, effective.Equal(*got.EffectiveDate))
	require.NotNil(t, got.InstallmentDueDate)
	assert.True(t, due.Equal(*got.InstallmentDueDate))
	assert.Equal(t, 3, got.TotalInstallments)
}

func TestStore_TransactionNullableFieldsStayNil(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := ledger.Transaction{
		ID:          "t-1",
		Type:        ledger.TypeIncome,
		Status:      ledger.StatusProvision,
		Date:        ts(5),
		Description: "Forecast",
		Amount:      ledger.MustDecimal("100"),
		CompanyID:   "c-1",
		CreatedAt:   ts(5),
		UpdatedAt:   ts(5),
	}
	require.NoError(t, store.SaveTransaction(ctx, tx))

	got, err := store.GetTransaction(ctx, "t-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.EffectiveDate)
	assert.Nil(t, got.InstallmentDueDate)
	assert.Empty(t, got.PurchaseID)
}

func TestStore_SaveTransactionsBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	batch := []ledger.Transaction{
		{ID: "t-1", Type: ledger.TypeExpense, Status: ledger.StatusReal, Date: ts(5),
			Description: "1/2", Amount: ledger.MustDecimal("50"), CompanyID: "c-1",
			PurchaseID: "p-1", InstallmentNumber: 1, TotalInstallments: 2,
			CreatedAt: ts(5), UpdatedAt: ts(5)},
		{ID: "t-2", Type: ledger.TypeExpense, Status: ledger.StatusReal, Date: ts(5),
			Description: "2/2", Amount: ledger.MustDecimal("50"), CompanyID: "c-1",
			PurchaseID: "p-1", InstallmentNumber: 2, TotalInstallments: 2,
			CreatedAt: ts(5), UpdatedAt: ts(5)},
	}
	require.NoError(t, store.SaveTransactions(ctx, batch))

	txs, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
}

func TestStore_DeleteTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := ledger.Transaction{ID: "t-1", Type: ledger.TypeExpense, Status: ledger.StatusReal,
		Date: ts(5), Description: "X", Amount: ledger.MustDecimal("10"), CompanyID: "c-1",
		CreatedAt: ts(5), UpdatedAt: ts(5)}
	require.NoError(t, store.SaveTransaction(ctx, tx))

	require.NoError(t, store.DeleteTransaction(ctx, "t-1"))

	got, err := store.GetTransaction(ctx, "t-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_MonthClosingUpsertsByYearMonth(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	closedAt := ts(30)
	mc := ledger.MonthClosing{ID: "m-1", YearMonth: "2025-06", Status: ledger.ClosingClosed,
		ClosedAt: &closedAt, CreatedAt: ts(30), UpdatedAt: ts(30)}
	require.NoError(t, store.SaveMonthClosing(ctx, mc))

	mc.Status = ledger.ClosingOpen
	mc.ClosedAt = nil
	require.NoError(t, store.SaveMonthClosing(ctx, mc))

	got, err := store.GetMonthClosing(ctx, "2025-06")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ledger.ClosingOpen, got.Status)
	assert.Nil(t, got.ClosedAt)

	all, err := store.ListMonthClosings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "same year_month must not duplicate")
}

func TestStore_InvoicePaymentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := ledger.InvoicePayment{
		ID:              "ip-1",
		CreditCardID:    "card-1",
		PayingCompanyID: "c-1",
		BankAccountID:   "a-1",
		PaymentDate:     ts(10),
		Amount:          ledger.MustDecimal("850.00"),
		Treatment:       ledger.TreatmentSplit,
		ReferenceMonth:  "2025-06",
		Notes:           "60/40 split",
		CreatedAt:       ts(10),
		UpdatedAt:       ts(10),
	}
	require.NoError(t, store.SaveInvoicePayment(ctx, p))

	payments, err := store.ListInvoicePayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, ledger.TreatmentSplit, payments[0].Treatment)
	assert.True(t, p.Amount.Equal(payments[0].Amount))
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCompany(ctx, ledger.Company{ID: "c-1", Name: "X",
		Type: ledger.CompanyBusiness, Status: ledger.StatusActive, CreatedAt: ts(1), UpdatedAt: ts(1)}))

	require.NoError(t, store.Reset(ctx))

	companies, err := store.ListCompanies(ctx)
	require.NoError(t, err)
	assert.Empty(t, companies)
}

// The service layer runs its suite against the memory store; this
// exercises the same interface against SQLite.
func TestStore_BacksLedgerService(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	svc := ledger.NewService(store)

	c, err := svc.AddCompany(ctx, ledger.CompanyInput{Name: "Empresa", Type: ledger.CompanyBusiness})
	require.NoError(t, err)
	a, err := svc.AddBankAccount(ctx, ledger.BankAccountInput{
		Name: "Conta", CompanyID: c.ID, InitialBalance: ledger.MustDecimal("1000")})
	require.NoError(t, err)

	_, err = svc.AddTransaction(ctx, ledger.TransactionInput{
		Type:          ledger.TypeIncome,
		Status:        ledger.StatusReal,
		Date:          ts(5),
		Description:   "Sale",
		Amount:        ledger.MustDecimal("500"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})
	require.NoError(t, err)

	balance, err := svc.BankAccountBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(ledger.MustDecimal("1500")), "got %s", balance)
}
