/*
Package ledger provides the core financial control engine.

PURPOSE:
  This package contains the data model and derived-computation logic for
  a personal/small-business financial control system: companies, bank
  accounts, credit cards, categories, service providers, transactions
  (real and provisioned), credit card invoice payments, and month-end
  closings.

KEY CONCEPTS IN THIS FILE (types.go):
  - Company/BankAccount/CreditCard/Category/ServiceProvider: registry
    entities, archived rather than deleted once referenced
  - Transaction: the central ledger row; sign is carried by Type, the
    stored Amount is always a positive magnitude
  - Provision: a projected transaction (Status "provisao") that counts
    into projected balances only, until confirmed as real
  - Purchase group: installments of one card purchase share a PurchaseID
  - MonthClosing: administrative lock freezing a calendar month

DESIGN PRINCIPLES:
  1. Precision: monetary values use decimal.Decimal, never floats
  2. Derivation: balances are always recomputed by folding over the
     transaction collection, never stored
  3. Logical deletion: archived entities keep resolving in lookups and
     balance computations; only transactions support hard removal

SEE ALSO:
  - store.go: persistence boundary implemented by memory and sqlite
  - service.go: identity stamping and ledger operations
  - balance.go: balance and summary computation
  - audit.go: consistency scans
*/
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMERATIONS
// =============================================================================

type CompanyType string

const (
	CompanyBusiness CompanyType = "empresa"
	CompanyPersonal CompanyType = "pessoal"
)

// Status is the lifecycle state shared by all registry entities.
type Status string

const (
	StatusActive   Status = "ativo"
	StatusArchived Status = "arquivado"
)

type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	StatusReal      TransactionStatus = "real"
	StatusProvision TransactionStatus = "provisao"
)

type CategoryType string

const (
	CategoryIncome  CategoryType = "receita"
	CategoryExpense CategoryType = "despesa"
	CategoryBoth    CategoryType = "ambos"
)

// InvoiceTreatment records how a credit card invoice settlement is
// accounted for across companies.
type InvoiceTreatment string

const (
	TreatmentLoan            InvoiceTreatment = "emprestimo"
	TreatmentPersonalExpense InvoiceTreatment = "despesa_pessoal"
	TreatmentSplit           InvoiceTreatment = "rateio"
)

type ClosingStatus string

const (
	ClosingOpen   ClosingStatus = "aberto"
	ClosingClosed ClosingStatus = "fechado"
)

// =============================================================================
// REGISTRY ENTITIES
// =============================================================================

type Company struct {
	ID        string
	Name      string
	Type      CompanyType
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreditCard is shared across companies; it is not owned by one Company.
// DefaultBankAccountID is a weak reference and may be empty.
type CreditCard struct {
	ID                   string
	Name                 string
	LastFourDigits       string
	ClosingDay           int // 1-28
	DueDay               int // 1-28
	DefaultBankAccountID string
	Status               Status
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// BankAccount belongs to exactly one Company.
type BankAccount struct {
	ID             string
	Name           string
	CompanyID      string
	InitialBalance decimal.Decimal
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Category struct {
	ID        string
	Name      string
	Type      CategoryType
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ServiceProvider struct {
	ID        string
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// TRANSACTION - central ledger row
// =============================================================================

// Transaction stores its Amount as a positive magnitude; direction is
// carried by Type. Reference IDs are empty strings when absent.
//
// Income/expense rows carry a CompanyID. Transfer rows carry both
// BankAccountID (source) and DestinationBankAccountID, and no
// company/category.
type Transaction struct {
	ID            string
	Type          TransactionType
	Status        TransactionStatus
	Date          time.Time
	EffectiveDate *time.Time // set when a provision is confirmed
	Description   string
	Amount        decimal.Decimal

	CompanyID         string
	CategoryID        string
	ServiceProviderID string
	BankAccountID     string
	CreditCardID      string

	// Installment info. Zero values mean "not an installment".
	PurchaseID         string
	InstallmentNumber  int
	TotalInstallments  int
	InstallmentDueDate *time.Time

	// Transfer target
	DestinationBankAccountID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsInstallment reports whether this row belongs to a purchase group.
func (t Transaction) IsInstallment() bool { return t.PurchaseID != "" }

// =============================================================================
// INVOICE PAYMENT - settlement of a card invoice
// =============================================================================

type InvoicePayment struct {
	ID              string
	CreditCardID    string
	PayingCompanyID string
	BankAccountID   string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Treatment       InvoiceTreatment
	ReferenceMonth  string // YYYY-MM
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// =============================================================================
// MONTH CLOSING - one per calendar month
// =============================================================================

type MonthClosing struct {
	ID        string
	YearMonth string // YYYY-MM
	Status    ClosingStatus
	ClosedAt  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// =============================================================================
// SUMMARY - global real/projected aggregates
// =============================================================================

// Summary is the dashboard aggregate over an optional date range.
//
// RealBalance counts only confirmed transactions; ProjectedBalance
// counts provisions fully, never partially. Transfers net to zero in
// both balances and are reported separately.
type Summary struct {
	RealBalance       decimal.Decimal
	ProjectedBalance  decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	TotalTransfers    decimal.Decimal
	PendingProvisions int
}

// MustDecimal parses a decimal literal, returning zero on failure.
// Intended for seed data and tests.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
