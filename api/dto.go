/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  internal domain model from the external contract.

CONVENTIONS:
  - Monetary amounts travel as decimal strings ("1250.50"), never
    floats
  - Calendar dates use "2006-01-02"; record timestamps use RFC3339
  - Absent references serialize as "" and are omitted

Validation happens in the ledger service, not here. DTOs are pure data
carriers.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verto/fincontrol/ledger"
)

const dateLayout = "2006-01-02"

// =============================================================================
// REGISTRY ENTITIES
// =============================================================================

type CompanyDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateCompanyRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

type CreditCardDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	LastFourDigits       string `json:"last_four_digits"`
	ClosingDay           int    `json:"closing_day"`
	DueDay               int    `json:"due_day"`
	DefaultBankAccountID string `json:"default_bank_account_id,omitempty"`
	Status               string `json:"status"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

type CreateCreditCardRequest struct {
	Name                 string `json:"name"`
	LastFourDigits       string `json:"last_four_digits"`
	ClosingDay           int    `json:"closing_day"`
	DueDay               int    `json:"due_day"`
	DefaultBankAccountID string `json:"default_bank_account_id"`
}

type UpdateCreditCardRequest struct {
	Name                 *string `json:"name"`
	LastFourDigits       *string `json:"last_four_digits"`
	ClosingDay           *int    `json:"closing_day"`
	DueDay               *int    `json:"due_day"`
	DefaultBankAccountID *string `json:"default_bank_account_id"`
}

type BankAccountDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	CompanyID      string `json:"company_id"`
	InitialBalance string `json:"initial_balance"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type CreateBankAccountRequest struct {
	Name           string `json:"name"`
	CompanyID      string `json:"company_id"`
	InitialBalance string `json:"initial_balance"`
}

type UpdateBankAccountRequest struct {
	Name           *string `json:"name"`
	CompanyID      *string `json:"company_id"`
	InitialBalance *string `json:"initial_balance"`
}

type CategoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

type ServiceProviderDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateServiceProviderRequest struct {
	Name string `json:"name"`
}

type UpdateServiceProviderRequest struct {
	Name *string `json:"name"`
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

type TransactionDTO struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Date          string `json:"date"`
	EffectiveDate string `json:"effective_date,omitempty"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`

	CompanyID         string `json:"company_id,omitempty"`
	CategoryID        string `json:"category_id,omitempty"`
	ServiceProviderID string `json:"service_provider_id,omitempty"`
	BankAccountID     string `json:"bank_account_id,omitempty"`
	CreditCardID      string `json:"credit_card_id,omitempty"`

	PurchaseID         string `json:"purchase_id,omitempty"`
	InstallmentNumber  int    `json:"installment_number,omitempty"`
	TotalInstallments  int    `json:"total_installments,omitempty"`
	InstallmentDueDate string `json:"installment_due_date,omitempty"`

	DestinationBankAccountID string `json:"destination_bank_account_id,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Type        string `json:"type"`
	Status      string `json:"status"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`

	CompanyID         string `json:"company_id"`
	CategoryID        string `json:"category_id"`
	ServiceProviderID string `json:"service_provider_id"`
	BankAccountID     string `json:"bank_account_id"`
	CreditCardID      string `json:"credit_card_id"`

	DestinationBankAccountID string `json:"destination_bank_account_id"`
}

type UpdateTransactionRequest struct {
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Amount      *string `json:"amount"`

	CompanyID         *string `json:"company_id"`
	CategoryID        *string `json:"category_id"`
	ServiceProviderID *string `json:"service_provider_id"`
	BankAccountID     *string `json:"bank_account_id"`
	CreditCardID      *string `json:"credit_card_id"`

	DestinationBankAccountID *string `json:"destination_bank_account_id"`
}

type ConfirmProvisionRequest struct {
	EffectiveDate string `json:"effective_date"`
}

type CardPurchaseRequest struct {
	Description       string `json:"description"`
	Date              string `json:"date"`
	Amount            string `json:"amount"`
	Status            string `json:"status"`
	CreditCardID      string `json:"credit_card_id"`
	CompanyID         string `json:"company_id"`
	CategoryID        string `json:"category_id"`
	ServiceProviderID string `json:"service_provider_id"`
	Installments      int    `json:"installments"`
}

// AdjustmentRequest carries a signed amount; the sign picks income or
// expense.
type AdjustmentRequest struct {
	CompanyID     string `json:"company_id"`
	BankAccountID string `json:"bank_account_id"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

type InvoicePaymentDTO struct {
	ID              string `json:"id"`
	CreditCardID    string `json:"credit_card_id"`
	PayingCompanyID string `json:"paying_company_id"`
	BankAccountID   string `json:"bank_account_id"`
	PaymentDate     string `json:"payment_date"`
	Amount          string `json:"amount"`
	Treatment       string `json:"treatment"`
	ReferenceMonth  string `json:"reference_month"`
	Notes           string `json:"notes,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type CreateInvoicePaymentRequest struct {
	CreditCardID    string `json:"credit_card_id"`
	PayingCompanyID string `json:"paying_company_id"`
	BankAccountID   string `json:"bank_account_id"`
	PaymentDate     string `json:"payment_date"`
	Amount          string `json:"amount"`
	Treatment       string `json:"treatment"`
	ReferenceMonth  string `json:"reference_month"`
	Notes           string `json:"notes"`
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

type BalanceDTO struct {
	ID      string `json:"id"`
	Balance string `json:"balance"`
}

type DeletableDTO struct {
	ID        string `json:"id"`
	CanDelete bool   `json:"can_delete"`
}

type SummaryDTO struct {
	RealBalance       string `json:"real_balance"`
	ProjectedBalance  string `json:"projected_balance"`
	TotalIncome       string `json:"total_income"`
	TotalExpenses     string `json:"total_expenses"`
	TotalTransfers    string `json:"total_transfers"`
	PendingProvisions int    `json:"pending_provisions"`
}

type FindingDTO struct {
	Type              string `json:"type"`
	Severity          string `json:"severity"`
	Message           string `json:"message"`
	RelatedEntityID   string `json:"related_entity_id,omitempty"`
	RelatedEntityType string `json:"related_entity_type,omitempty"`
	Count             int    `json:"count,omitempty"`
}

type ChecklistItemDTO struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Count       int    `json:"count"`
}

type MonthClosingDTO struct {
	ID        string `json:"id"`
	YearMonth string `json:"year_month"`
	Status    string `json:"status"`
	ClosedAt  string `json:"closed_at,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// =============================================================================
// DOMAIN -> DTO CONVERTERS
// =============================================================================

func fmtDate(t time.Time) string { return t.Format(dateLayout) }

func fmtDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmtDate(*t)
}

func toCompanyDTO(c ledger.Company) CompanyDTO {
	return CompanyDTO{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func toCreditCardDTO(c ledger.CreditCard) CreditCardDTO {
	return CreditCardDTO{
		ID:                   c.ID,
		Name:                 c.Name,
		LastFourDigits:       c.LastFourDigits,
		ClosingDay:           c.ClosingDay,
		DueDay:               c.DueDay,
		DefaultBankAccountID: c.DefaultBankAccountID,
		Status:               string(c.Status),
		CreatedAt:            c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            c.UpdatedAt.Format(time.RFC3339),
	}
}

func toBankAccountDTO(a ledger.BankAccount) BankAccountDTO {
	return BankAccountDTO{
		ID:             a.ID,
		Name:           a.Name,
		CompanyID:      a.CompanyID,
		InitialBalance: a.InitialBalance.String(),
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

func toCategoryDTO(c ledger.Category) CategoryDTO {
	return CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

func toServiceProviderDTO(p ledger.ServiceProvider) ServiceProviderDTO {
	return ServiceProviderDTO{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTO(t ledger.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                       t.ID,
		Type:                     string(t.Type),
		Status:                   string(t.Status),
		Date:                     fmtDate(t.Date),
		EffectiveDate:            fmtDatePtr(t.EffectiveDate),
		Description:              t.Description,
		Amount:                   t.Amount.String(),
		CompanyID:                t.CompanyID,
		CategoryID:               t.CategoryID,
		ServiceProviderID:        t.ServiceProviderID,
		BankAccountID:            t.BankAccountID,
		CreditCardID:             t.CreditCardID,
		PurchaseID:               t.PurchaseID,
		InstallmentNumber:        t.InstallmentNumber,
		TotalInstallments:        t.TotalInstallments,
		InstallmentDueDate:       fmtDatePtr(t.InstallmentDueDate),
		DestinationBankAccountID: t.DestinationBankAccountID,
		CreatedAt:                t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                t.UpdatedAt.Format(time.RFC3339),
	}
}

func toTransactionDTOs(ts []ledger.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTransactionDTO(t))
	}
	return out
}

func toInvoicePaymentDTO(p ledger.InvoicePayment) InvoicePaymentDTO {
	return InvoicePaymentDTO{
		ID:              p.ID,
		CreditCardID:    p.CreditCardID,
		PayingCompanyID: p.PayingCompanyID,
		BankAccountID:   p.BankAccountID,
		PaymentDate:     fmtDate(p.PaymentDate),
		Amount:          p.Amount.String(),
		Treatment:       string(p.Treatment),
		ReferenceMonth:  p.ReferenceMonth,
		Notes:           p.Notes,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

func toSummaryDTO(s ledger.Summary) SummaryDTO {
	return SummaryDTO{
		RealBalance:       s.RealBalance.String(),
		ProjectedBalance:  s.ProjectedBalance.String(),
		TotalIncome:       s.TotalIncome.String(),
		TotalExpenses:     s.TotalExpenses.String(),
		TotalTransfers:    s.TotalTransfers.String(),
		PendingProvisions: s.PendingProvisions,
	}
}

func toFindingDTO(f ledger.Finding) FindingDTO {
	return FindingDTO{
		Type:              string(f.Type),
		Severity:          string(f.Severity),
		Message:           f.Message,
		RelatedEntityID:   f.RelatedEntityID,
		RelatedEntityType: f.RelatedEntityType,
		Count:             f.Count,
	}
}

func toChecklistItemDTO(i ledger.ChecklistItem) ChecklistItemDTO {
	return ChecklistItemDTO{
		ID:          i.ID,
		Label:       i.Label,
		Description: i.Description,
		Status:      string(i.Status),
		Count:       i.Count,
	}
}

func toMonthClosingDTO(m ledger.MonthClosing) MonthClosingDTO {
	dto := MonthClosingDTO{
		ID:        m.ID,
		YearMonth: m.YearMonth,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
	if m.ClosedAt != nil {
		dto.ClosedAt = m.ClosedAt.Format(time.RFC3339)
	}
	return dto
}

// =============================================================================
// PARSE HELPERS
// =============================================================================

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
