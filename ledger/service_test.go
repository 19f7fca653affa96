package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verto/fincontrol/ledger"
	"github.com/verto/fincontrol/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// testNow pins the clock so stale-provision and timestamp assertions
// are deterministic.
var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *ledger.Service {
	t.Helper()
	return ledger.NewServiceAt(store.NewMemory(), func() time.Time { return testNow })
}

func mustCompany(t *testing.T, svc *ledger.Service, name string) ledger.Company {
	t.Helper()
	c, err := svc.AddCompany(context.Background(), ledger.CompanyInput{
		Name: name,
		Type: ledger.CompanyBusiness,
	})
	require.NoError(t, err)
	return c
}

func mustAccount(t *testing.T, svc *ledger.Service, companyID, name, initial string) ledger.BankAccount {
	t.Helper()
	a, err := svc.AddBankAccount(context.Background(), ledger.BankAccountInput{
		Name:           name,
		CompanyID:      companyID,
		InitialBalance: ledger.MustDecimal(initial),
	})
	require.NoError(t, err)
	return a
}

func mustCard(t *testing.T, svc *ledger.Service, name string) ledger.CreditCard {
	t.Helper()
	c, err := svc.AddCreditCard(context.Background(), ledger.CreditCardInput{
		Name:           name,
		LastFourDigits: "4521",
		ClosingDay:     5,
		DueDay:         15,
	})
	require.NoError(t, err)
	return c
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// COMPANY CRUD
// =============================================================================

func TestAddCompany_StampsIdentityAndTimestamps(t *testing.T) {
	svc := newTestService(t)

	c := mustCompany(t, svc, "Empresa Principal")

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, ledger.StatusActive, c.Status)
	assert.Equal(t, testNow, c.CreatedAt)
	assert.Equal(t, testNow, c.UpdatedAt)
}

func TestAddCompany_RejectsMissingName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCompany(context.Background(), ledger.CompanyInput{Type: ledger.CompanyBusiness})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestAddCompany_RejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCompany(context.Background(), ledger.CompanyInput{Name: "X", Type: "corporation"})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestUpdateCompany_AppliesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Before")

	newName := "After"
	updated, err := svc.UpdateCompany(context.Background(), c.ID, ledger.CompanyPatch{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, c.Type, updated.Type, "type untouched by a name-only patch")
}

func TestUpdateCompany_UnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateCompany(context.Background(), "nope", ledger.CompanyPatch{})

	assert.True(t, ledger.IsNotFound(err))
}

func TestArchiveCompany_FlipsStatus(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")

	require.NoError(t, svc.ArchiveCompany(context.Background(), c.ID))

	got, err := svc.Company(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusArchived, got.Status)
}

func TestArchiveCompany_TwiceIsSafe(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")

	require.NoError(t, svc.ArchiveCompany(context.Background(), c.ID))
	require.NoError(t, svc.ArchiveCompany(context.Background(), c.ID))

	got, err := svc.Company(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.StatusArchived, got.Status)
}

// =============================================================================
// CREDIT CARDS
// =============================================================================

func TestAddCreditCard_RejectsBadLastFour(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCreditCard(context.Background(), ledger.CreditCardInput{
		Name:           "Visa",
		LastFourDigits: "45x1",
		ClosingDay:     5,
		DueDay:         15,
	})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestAddCreditCard_RejectsCycleDayOutOfRange(t *testing.T) {
	svc := newTestService(t)

	// Day 29 cannot exist in every month.
	_, err := svc.AddCreditCard(context.Background(), ledger.CreditCardInput{
		Name:           "Visa",
		LastFourDigits: "4521",
		ClosingDay:     29,
		DueDay:         15,
	})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

// =============================================================================
// BANK ACCOUNTS
// =============================================================================

func TestAddBankAccount_RequiresExistingCompany(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddBankAccount(context.Background(), ledger.BankAccountInput{
		Name:           "Bradesco PJ",
		CompanyID:      "ghost",
		InitialBalance: ledger.MustDecimal("1000"),
	})

	assert.True(t, ledger.IsNotFound(err))
}

func TestBankAccount_UnknownID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.BankAccount(context.Background(), "nope")

	assert.True(t, ledger.IsNotFound(err))
}

// =============================================================================
// CATEGORIES AND PROVIDERS
// =============================================================================

func TestAddCategory_RejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddCategory(context.Background(), ledger.CategoryInput{Name: "Vendas", Type: "other"})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestAddServiceProvider_ThenList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddServiceProvider(ctx, ledger.ServiceProviderInput{Name: "Contador"})
	require.NoError(t, err)
	_, err = svc.AddServiceProvider(ctx, ledger.ServiceProviderInput{Name: "Designer"})
	require.NoError(t, err)

	providers, err := svc.ServiceProviders(ctx)
	require.NoError(t, err)
	assert.Len(t, providers, 2)
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

func TestAddInvoicePayment_RejectsBadReferenceMonth(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "0")
	card := mustCard(t, svc, "Visa")

	_, err := svc.AddInvoicePayment(context.Background(), ledger.InvoicePaymentInput{
		CreditCardID:    card.ID,
		PayingCompanyID: c.ID,
		BankAccountID:   a.ID,
		PaymentDate:     date(2025, time.June, 10),
		Amount:          ledger.MustDecimal("850"),
		Treatment:       ledger.TreatmentLoan,
		ReferenceMonth:  "junho/2025",
	})

	assert.ErrorIs(t, err, ledger.ErrValidation)
}

func TestAddInvoicePayment_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "0")
	card := mustCard(t, svc, "Visa")

	p, err := svc.AddInvoicePayment(ctx, ledger.InvoicePaymentInput{
		CreditCardID:    card.ID,
		PayingCompanyID: c.ID,
		BankAccountID:   a.ID,
		PaymentDate:     date(2025, time.June, 10),
		Amount:          ledger.MustDecimal("850.00"),
		Treatment:       ledger.TreatmentPersonalExpense,
		ReferenceMonth:  "2025-06",
	})
	require.NoError(t, err)

	payments, err := svc.InvoicePayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, p.ID, payments[0].ID)
	assert.Equal(t, ledger.TreatmentPersonalExpense, payments[0].Treatment)
}

// =============================================================================
// SEED
// =============================================================================

func TestSeed_LoadsDemoDataset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))

	companies, err := svc.Companies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 3)

	accounts, err := svc.BankAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)

	txs, err := svc.Transactions(ctx)
	require.NoError(t, err)
	assert.Len(t, txs, 4)
}

func TestSeed_ResetsPreviousState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	mustCompany(t, svc, "Leftover")

	require.NoError(t, svc.Seed(ctx))
	require.NoError(t, svc.Seed(ctx))

	companies, err := svc.Companies(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 3, "seeding twice must not duplicate")
}
