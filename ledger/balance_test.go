package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verto/fincontrol/ledger"
)

func addTx(t *testing.T, svc *ledger.Service, in ledger.TransactionInput) ledger.Transaction {
	t.Helper()
	tx, err := svc.AddTransaction(context.Background(), in)
	require.NoError(t, err)
	return tx
}

// =============================================================================
// BANK ACCOUNT BALANCE
// =============================================================================

func TestBankAccountBalance_FoldsRealTransactions(t *testing.T) {
	// GIVEN: Account with 1000 initial balance and one 500 real income
	// THEN: Balance is 1500

	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "1000")

	addTx(t, svc, ledger.TransactionInput{
		Type:          ledger.TypeIncome,
		Status:        ledger.StatusReal,
		Date:          date(2025, time.June, 5),
		Description:   "Invoice paid",
		Amount:        ledger.MustDecimal("500"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})

	balance, err := svc.BankAccountBalance(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(ledger.MustDecimal("1500")), "got %s", balance)
}

func TestBankAccountBalance_IgnoresProvisions(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "1000")

	addTx(t, svc, ledger.TransactionInput{
		Type:          ledger.TypeExpense,
		Status:        ledger.StatusProvision,
		Date:          date(2025, time.June, 20),
		Description:   "Rent forecast",
		Amount:        ledger.MustDecimal("800"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})

	balance, err := svc.BankAccountBalance(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(ledger.MustDecimal("1000")), "provisions never move an account balance")
}

func TestBankAccountBalance_TransferMovesBothAccounts(t *testing.T) {
	// GIVEN: 300 transferred from A (1000) to B (200)
	// THEN: A=700, B=500

	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	src := mustAccount(t, svc, c.ID, "Origem", "1000")
	dst := mustAccount(t, svc, c.ID, "Destino", "200")

	addTx(t, svc, ledger.TransactionInput{
		Type:                     ledger.TypeTransfer,
		Status:                   ledger.StatusReal,
		Date:                     date(2025, time.June, 5),
		Description:              "Move funds",
		Amount:                   ledger.MustDecimal("300"),
		BankAccountID:            src.ID,
		DestinationBankAccountID: dst.ID,
	})

	srcBalance, err := svc.BankAccountBalance(ctx, src.ID)
	require.NoError(t, err)
	dstBalance, err := svc.BankAccountBalance(ctx, dst.ID)
	require.NoError(t, err)

	assert.True(t, srcBalance.Equal(ledger.MustDecimal("700")), "got %s", srcBalance)
	assert.True(t, dstBalance.Equal(ledger.MustDecimal("500")), "got %s", dstBalance)
}

func TestBankAccountBalance_ArchivedAccountStillResolves(t *testing.T) {
	// Archival is logical; historical balances keep computing.

	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "1000")

	addTx(t, svc, ledger.TransactionInput{
		Type:          ledger.TypeIncome,
		Status:        ledger.StatusReal,
		Date:          date(2025, time.June, 5),
		Description:   "Sale",
		Amount:        ledger.MustDecimal("500"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})
	require.NoError(t, svc.ArchiveBankAccount(ctx, a.ID))

	balance, err := svc.BankAccountBalance(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(ledger.MustDecimal("1500")))
}

// =============================================================================
// COMPANY BALANCE
// =============================================================================

func TestCompanyBalance_SumsAccountsAndMatchesByCompanyID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	other := mustCompany(t, svc, "Outra")
	mustAccount(t, svc, c.ID, "Conta A", "1000")
	mustAccount(t, svc, c.ID, "Conta B", "500")
	mustAccount(t, svc, other.ID, "Alheia", "9999")

	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeIncome,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.June, 5),
		Description: "Sale",
		Amount:      ledger.MustDecimal("400"),
		CompanyID:   c.ID,
	})
	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeExpense,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.June, 6),
		Description: "Supplies",
		Amount:      ledger.MustDecimal("150"),
		CompanyID:   c.ID,
	})
	// Provision must not count.
	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeExpense,
		Status:      ledger.StatusProvision,
		Date:        date(2025, time.June, 25),
		Description: "Forecast",
		Amount:      ledger.MustDecimal("999"),
		CompanyID:   c.ID,
	})

	balance, err := svc.CompanyBalance(ctx, c.ID)
	require.NoError(t, err)
	// 1000 + 500 + 400 - 150
	assert.True(t, balance.Equal(ledger.MustDecimal("1750")), "got %s", balance)
}

func TestCompanyBalance_UnknownCompany(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CompanyBalance(context.Background(), "ghost")

	assert.True(t, ledger.IsNotFound(err))
}

// =============================================================================
// GLOBAL SUMMARY
// =============================================================================

func TestGlobalSummary_ProvisionsDragProjectedBelowReal(t *testing.T) {
	// GIVEN: 1000 initial, 500 real income, 800 provisioned expense
	// THEN: real=1500, projected=700, one pending provision

	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	a := mustAccount(t, svc, c.ID, "Conta", "1000")

	addTx(t, svc, ledger.TransactionInput{
		Type:          ledger.TypeIncome,
		Status:        ledger.StatusReal,
		Date:          date(2025, time.June, 5),
		Description:   "Invoice paid",
		Amount:        ledger.MustDecimal("500"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})
	addTx(t, svc, ledger.TransactionInput{
		Type:          ledger.TypeExpense,
		Status:        ledger.StatusProvision,
		Date:          date(2025, time.June, 25),
		Description:   "Rent forecast",
		Amount:        ledger.MustDecimal("800"),
		CompanyID:     c.ID,
		BankAccountID: a.ID,
	})

	summary, err := svc.GlobalSummary(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, summary.RealBalance.Equal(ledger.MustDecimal("1500")), "real %s", summary.RealBalance)
	assert.True(t, summary.ProjectedBalance.Equal(ledger.MustDecimal("700")), "projected %s", summary.ProjectedBalance)
	assert.True(t, summary.TotalIncome.Equal(ledger.MustDecimal("500")))
	assert.True(t, summary.TotalExpenses.Equal(ledger.MustDecimal("0")), "real expenses only")
	assert.Equal(t, 1, summary.PendingProvisions)
}

func TestGlobalSummary_TransfersNetToZero(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	src := mustAccount(t, svc, c.ID, "Origem", "1000")
	dst := mustAccount(t, svc, c.ID, "Destino", "0")

	addTx(t, svc, ledger.TransactionInput{
		Type:                     ledger.TypeTransfer,
		Status:                   ledger.StatusReal,
		Date:                     date(2025, time.June, 5),
		Description:              "Move funds",
		Amount:                   ledger.MustDecimal("300"),
		BankAccountID:            src.ID,
		DestinationBankAccountID: dst.ID,
	})

	summary, err := svc.GlobalSummary(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, summary.RealBalance.Equal(ledger.MustDecimal("1000")), "a transfer never changes the total")
	assert.True(t, summary.TotalTransfers.Equal(ledger.MustDecimal("300")))
}

func TestGlobalSummary_DateRangeFiltersRows(t *testing.T) {
	svc := newTestService(t)
	c := mustCompany(t, svc, "Empresa")
	mustAccount(t, svc, c.ID, "Conta", "0")

	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeIncome,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.May, 10),
		Description: "Old sale",
		Amount:      ledger.MustDecimal("100"),
		CompanyID:   c.ID,
	})
	addTx(t, svc, ledger.TransactionInput{
		Type:        ledger.TypeIncome,
		Status:      ledger.StatusReal,
		Date:        date(2025, time.June, 10),
		Description: "New sale",
		Amount:      ledger.MustDecimal("250"),
		CompanyID:   c.ID,
	})

	june := ledger.Period{Start: date(2025, time.June, 1), End: date(2025, time.June, 30)}
	summary, err := svc.GlobalSummary(context.Background(), &june)
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(ledger.MustDecimal("250")), "May row outside range")
}

// =============================================================================
// CREDIT CARD INVOICE
// =============================================================================

func TestCreditCardInvoice_FiltersByCardAndMonth(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	c := mustCompany(t, svc, "Empresa")
	card := mustCard(t, svc, "Visa")
	otherCard := mustCard(t, svc, "Master")

	addTx(t, svc, ledger.TransactionInput{
		Type:         ledger.TypeExpense,
		Status:       ledger.StatusReal,
		Date:         date(2025, time.June, 3),
		Description:  "AWS",
		Amount:       ledger.MustDecimal("120"),
		CompanyID:    c.ID,
		CreditCardID: card.ID,
	})
	addTx(t, svc, ledger.TransactionInput{
		Type:         ledger.TypeExpense,
		Status:       ledger.StatusReal,
		Date:         date(2025, time.May, 3),
		Description:  "AWS previous month",
		Amount:       ledger.MustDecimal("110"),
		CompanyID:    c.ID,
		CreditCardID: card.ID,
	})
	addTx(t, svc, ledger.TransactionInput{
		Type:         ledger.TypeExpense,
		Status:       ledger.StatusReal,
		Date:         date(2025, time.June, 3),
		Description:  "Groceries",
		Amount:       ledger.MustDecimal("90"),
		CompanyID:    c.ID,
		CreditCardID: otherCard.ID,
	})

	invoice, err := svc.CreditCardInvoice(ctx, card.ID, "2025-06")
	require.NoError(t, err)

	require.Len(t, invoice, 1)
	assert.Equal(t, "AWS", invoice[0].Description)
}

func TestCreditCardInvoice_BadMonthFormat(t *testing.T) {
	svc := newTestService(t)
	card := mustCard(t, svc, "Visa")

	_, err := svc.CreditCardInvoice(context.Background(), card.ID, "06/2025")

	assert.ErrorIs(t, err, ledger.ErrValidation)
}
