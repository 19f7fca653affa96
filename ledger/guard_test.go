package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verto/fincontrol/ledger"
)

func TestCanDeleteCompany_FreshCompanyIsDeletable(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")

	ok, err := svc.CanDeleteCompany(context.Background(), c.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanDeleteCompany_BlockedByBankAccount(t *testing.T) {
	// A company with even one account is not deletable, regardless of
	// transactions.

	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	mustAccount(t, svc, c.ID, "Conta", "0")

	ok, err := svc.CanDeleteCompany(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanDeleteCompany_BlockedByTransaction(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")

	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeIncome,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.June, 1),
		Description: "Sale",
		Amount:      ledger.MustDecimal("100"),
		CompanyID:   c.ID,
	})

	ok, err := svc.CanDeleteCompany(context.Background(), c.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanDeleteCreditCard_BlockedByTransaction(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	card := mustCard(t, svc, "Visa")

	addTx(t, svc, ledger.TransactionInput{
		Type:         ledger.TypeExpense,
		Status:       ledger.StatusReal,
		Date:         date(2025, time.June, 1),
		Description:  "AWS",
		Amount:       ledger.MustDecimal("100"),
		CompanyID:    c.ID,
		CreditCardID: card.ID,
	})

	ok, err := svc.CanDeleteCreditCard(context.Background(), card.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanDeleteCreditCard_BlockedByInvoicePayment(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "0")
	card := mustCard(t, svc, "Visa")

	_, err := svc.AddInvoicePayment(ctx, ledger.InvoicePaymentInput{
		CreditCardID:    card.ID,
		PayingCompanyID: c.ID,
		BankAccountID:   a.ID,
		PaymentDate:     date(2025, time.June, 10),
		Amount:          ledger.MustDecimal("850"),
		Treatment:       ledger.TreatmentLoan,
		ReferenceMonth:  "2025-06",
	})
	require.NoError(t, err)

	ok, err := svc.CanDeleteCreditCard(ctx, card.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanDeleteBankAccount_BlockedAsTransferDestination(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	src := mustAccount(t, svc, c.ID, "Origem", "100")
	dst := mustAccount(t, svc, c.ID, "Destino", "0")

	addTx(t, svc, ledger.TransactionInput{
		Type:                     ledger.TypeTransfer,
		Status:                   ledger.StatusReal,
		Date:                     date(2025, time.June, 5),
		Description:              "Move funds",
		Amount:                   ledger.MustDecimal("50"),
		BankAccountID:            src.ID,
		DestinationBankAccountID: dst.ID,
	})

	ok, err := svc.CanDeleteBankAccount(context.Background(), dst.ID)
	require.NoError(t, err)
	assert.False(t, ok, "destination side of a transfer still counts as a reference")
}

func TestCanDeleteCategory_TracksReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	cat, err := svc.AddCategory(ctx, ledger.CategoryInput{Name: "Infraestrutura", Type: ledger.CategoryExpense})
	require.NoError(t, err)

	ok, err := svc.CanDeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeExpense,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.June, 1),
		Description: "AWS",
		Amount:      ledger.MustDecimal("100"),
		CompanyID:   c.ID,
		CategoryID:  cat.ID,
	})

	ok, err = svc.CanDeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCanDeleteServiceProvider_TracksReferences(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	p, err := svc.AddServiceProvider(ctx, ledger.ServiceProviderInput{Name: "AWS"})
	require.NoError(t, err)

	addTx(t, svc, ledger.TransactionInput{
		Type:              ledger.TypeExpense,
		Status:            ledger.StatusReal,
		Date:              date(2025, time.June, 1),
		Description:       "Hosting",
		Amount:            ledger.MustDecimal("100"),
		CompanyID:         c.ID,
		ServiceProviderID: p.ID,
	})

	ok, err := svc.CanDeleteServiceProvider(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
