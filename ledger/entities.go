/*
entities.go - Create/update/archive operations for registry entities

Every Add validates input before any store write, assigns a fresh id
and sets CreatedAt=UpdatedAt=now. Updates merge a patch (nil pointer
fields are left untouched) and bump UpdatedAt; addressing an unknown
id is an explicit ErrNotFound. Archive is a status flip and is safe to
repeat.
*/
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COMPANIES
// =============================================================================

type CompanyInput struct {
	Name string
	Type CompanyType
}

type CompanyPatch struct {
	Name *string
	Type *CompanyType
}

func (s *Service) AddCompany(ctx context.Context, in CompanyInput) (Company, error) {
	if in.Name == "" {
		return Company{}, missing("name")
	}
	if in.Type != CompanyBusiness && in.Type != CompanyPersonal {
		return Company{}, &ValidationError{Field: "type", Message: "must be empresa or pessoal"}
	}
	now := s.now()
	c := Company{
		ID:        s.newID(),
		Name:      in.Name,
		Type:      in.Type,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveCompany(ctx, c); err != nil {
		return Company{}, err
	}
	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, id string, patch CompanyPatch) (Company, error) {
	c, err := s.Company(ctx, id)
	if err != nil {
		return Company{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return Company{}, missing("name")
		}
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	c.UpdatedAt = s.now()
	if err := s.store.SaveCompany(ctx, c); err != nil {
		return Company{}, err
	}
	return c, nil
}

// ArchiveCompany flips status to arquivado. Historical transactions
// keep referencing the company and still resolve in balance queries.
func (s *Service) ArchiveCompany(ctx context.Context, id string) error {
	c, err := s.Company(ctx, id)
	if err != nil {
		return err
	}
	c.Status = StatusArchived
	c.UpdatedAt = s.now()
	return s.store.SaveCompany(ctx, c)
}

// =============================================================================
// CREDIT CARDS
// =============================================================================

type CreditCardInput struct {
	Name                 string
	LastFourDigits       string
	ClosingDay           int
	DueDay               int
	DefaultBankAccountID string
}

type CreditCardPatch struct {
	Name                 *string
	LastFourDigits       *string
	ClosingDay           *int
	DueDay               *int
	DefaultBankAccountID *string
}

func validLastFour(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validCycleDay(d int) bool { return d >= 1 && d <= 28 }

func (s *Service) AddCreditCard(ctx context.Context, in CreditCardInput) (CreditCard, error) {
	if in.Name == "" {
		return CreditCard{}, missing("name")
	}
	if !validLastFour(in.LastFourDigits) {
		return CreditCard{}, &ValidationError{Field: "lastFourDigits", Message: "must be exactly 4 digits"}
	}
	if !validCycleDay(in.ClosingDay) {
		return CreditCard{}, &ValidationError{Field: "closingDay", Message: "must be between 1 and 28"}
	}
	if !validCycleDay(in.DueDay) {
		return CreditCard{}, &ValidationError{Field: "dueDay", Message: "must be between 1 and 28"}
	}
	now := s.now()
	c := CreditCard{
		ID:                   s.newID(),
		Name:                 in.Name,
		LastFourDigits:       in.LastFourDigits,
		ClosingDay:           in.ClosingDay,
		DueDay:               in.DueDay,
		DefaultBankAccountID: in.DefaultBankAccountID,
		Status:               StatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.store.SaveCreditCard(ctx, c); err != nil {
		return CreditCard{}, err
	}
	return c, nil
}

func (s *Service) UpdateCreditCard(ctx context.Context, id string, patch CreditCardPatch) (CreditCard, error) {
	c, err := s.CreditCard(ctx, id)
	if err != nil {
		return CreditCard{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return CreditCard{}, missing("name")
		}
		c.Name = *patch.Name
	}
	if patch.LastFourDigits != nil {
		if !validLastFour(*patch.LastFourDigits) {
			return CreditCard{}, &ValidationError{Field: "lastFourDigits", Message: "must be exactly 4 digits"}
		}
		c.LastFourDigits = *patch.LastFourDigits
	}
	if patch.ClosingDay != nil {
		if !validCycleDay(*patch.ClosingDay) {
			return CreditCard{}, &ValidationError{Field: "closingDay", Message: "must be between 1 and 28"}
		}
		c.ClosingDay = *patch.ClosingDay
	}
	if patch.DueDay != nil {
		if !validCycleDay(*patch.DueDay) {
			return CreditCard{}, &ValidationError{Field: "dueDay", Message: "must be between 1 and 28"}
		}
		c.DueDay = *patch.DueDay
	}
	if patch.DefaultBankAccountID != nil {
		c.DefaultBankAccountID = *patch.DefaultBankAccountID
	}
	c.UpdatedAt = s.now()
	if err := s.store.SaveCreditCard(ctx, c); err != nil {
		return CreditCard{}, err
	}
	return c, nil
}

func (s *Service) ArchiveCreditCard(ctx context.Context, id string) error {
	c, err := s.CreditCard(ctx, id)
	if err != nil {
		return err
	}
	c.Status = StatusArchived
	c.UpdatedAt = s.now()
	return s.store.SaveCreditCard(ctx, c)
}

// =============================================================================
// BANK ACCOUNTS
// =============================================================================

type BankAccountInput struct {
	Name           string
	CompanyID      string
	InitialBalance decimal.Decimal
}

type BankAccountPatch struct {
	Name           *string
	CompanyID      *string
	InitialBalance *decimal.Decimal
}

func (s *Service) AddBankAccount(ctx context.Context, in BankAccountInput) (BankAccount, error) {
	if in.Name == "" {
		return BankAccount{}, missing("name")
	}
	if in.CompanyID == "" {
		return BankAccount{}, missing("companyId")
	}
	// Owning reference must resolve; archived companies still count.
	if _, err := s.Company(ctx, in.CompanyID); err != nil {
		return BankAccount{}, err
	}
	now := s.now()
	a := BankAccount{
		ID:             s.newID(),
		Name:           in.Name,
		CompanyID:      in.CompanyID,
		InitialBalance: in.InitialBalance,
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.SaveBankAccount(ctx, a); err != nil {
		return BankAccount{}, err
	}
	return a, nil
}

func (s *Service) UpdateBankAccount(ctx context.Context, id string, patch BankAccountPatch) (BankAccount, error) {
	a, err := s.BankAccount(ctx, id)
	if err != nil {
		return BankAccount{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return BankAccount{}, missing("name")
		}
		a.Name = *patch.Name
	}
	if patch.CompanyID != nil {
		if *patch.CompanyID == "" {
			return BankAccount{}, missing("companyId")
		}
		if _, err := s.Company(ctx, *patch.CompanyID); err != nil {
			return BankAccount{}, err
		}
		a.CompanyID = *patch.CompanyID
	}
	if patch.InitialBalance != nil {
		a.InitialBalance = *patch.InitialBalance
	}
	a.UpdatedAt = s.now()
	if err := s.store.SaveBankAccount(ctx, a); err != nil {
		return BankAccount{}, err
	}
	return a, nil
}

func (s *Service) ArchiveBankAccount(ctx context.Context, id string) error {
	a, err := s.BankAccount(ctx, id)
	if err != nil {
		return err
	}
	a.Status = StatusArchived
	a.UpdatedAt = s.now()
	return s.store.SaveBankAccount(ctx, a)
}

// =============================================================================
// CATEGORIES
// =============================================================================

type CategoryInput struct {
	Name string
	Type CategoryType
}

type CategoryPatch struct {
	Name *string
	Type *CategoryType
}

func (s *Service) AddCategory(ctx context.Context, in CategoryInput) (Category, error) {
	if in.Name == "" {
		return Category{}, missing("name")
	}
	switch in.Type {
	case CategoryIncome, CategoryExpense, CategoryBoth:
	default:
		return Category{}, &ValidationError{Field: "type", Message: "must be receita, despesa or ambos"}
	}
	now := s.now()
	c := Category{
		ID:        s.newID(),
		Name:      in.Name,
		Type:      in.Type,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) (Category, error) {
	c, err := s.Category(ctx, id)
	if err != nil {
		return Category{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return Category{}, missing("name")
		}
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	c.UpdatedAt = s.now()
	if err := s.store.SaveCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) ArchiveCategory(ctx context.Context, id string) error {
	c, err := s.Category(ctx, id)
	if err != nil {
		return err
	}
	c.Status = StatusArchived
	c.UpdatedAt = s.now()
	return s.store.SaveCategory(ctx, c)
}

// =============================================================================
// SERVICE PROVIDERS
// =============================================================================

type ServiceProviderInput struct {
	Name string
}

type ServiceProviderPatch struct {
	Name *string
}

func (s *Service) AddServiceProvider(ctx context.Context, in ServiceProviderInput) (ServiceProvider, error) {
	if in.Name == "" {
		return ServiceProvider{}, missing("name")
	}
	now := s.now()
	p := ServiceProvider{
		ID:        s.newID(),
		Name:      in.Name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.SaveServiceProvider(ctx, p); err != nil {
		return ServiceProvider{}, err
	}
	return p, nil
}

func (s *Service) UpdateServiceProvider(ctx context.Context, id string, patch ServiceProviderPatch) (ServiceProvider, error) {
	p, err := s.ServiceProvider(ctx, id)
	if err != nil {
		return ServiceProvider{}, err
	}
	if patch.Name != nil {
		if *patch.Name == "" {
			return ServiceProvider{}, missing("name")
		}
		p.Name = *patch.Name
	}
	p.UpdatedAt = s.now()
	if err := s.store.SaveServiceProvider(ctx, p); err != nil {
		return ServiceProvider{}, err
	}
	return p, nil
}

func (s *Service) ArchiveServiceProvider(ctx context.Context, id string) error {
	p, err := s.ServiceProvider(ctx, id)
	if err != nil {
		return err
	}
	p.Status = StatusArchived
	p.UpdatedAt = s.now()
	return s.store.SaveServiceProvider(ctx, p)
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

type InvoicePaymentInput struct {
	CreditCardID    string
	PayingCompanyID string
	BankAccountID   string
	PaymentDate     time.Time
	Amount          decimal.Decimal
	Treatment       InvoiceTreatment
	ReferenceMonth  string // YYYY-MM
	Notes           string
}

func (s *Service) AddInvoicePayment(ctx context.Context, in InvoicePaymentInput) (InvoicePayment, error) {
	if in.CreditCardID == "" {
		return InvoicePayment{}, missing("creditCardId")
	}
	if in.PayingCompanyID == "" {
		return InvoicePayment{}, missing("payingCompanyId")
	}
	if in.BankAccountID == "" {
		return InvoicePayment{}, missing("bankAccountId")
	}
	if !in.Amount.IsPositive() {
		return InvoicePayment{}, &ValidationError{Field: "amount", Message: "must be positive"}
	}
	switch in.Treatment {
	case TreatmentLoan, TreatmentPersonalExpense, TreatmentSplit:
	default:
		return InvoicePayment{}, &ValidationError{Field: "treatment", Message: "unknown treatment"}
	}
	if _, err := ParseYearMonth(in.ReferenceMonth); err != nil {
		return InvoicePayment{}, &ValidationError{Field: "referenceMonth", Message: "must be YYYY-MM"}
	}
	now := s.now()
	p := InvoicePayment{
		ID:              s.newID(),
		CreditCardID:    in.CreditCardID,
		PayingCompanyID: in.PayingCompanyID,
		BankAccountID:   in.BankAccountID,
		PaymentDate:     in.PaymentDate,
		Amount:          in.Amount,
		Treatment:       in.Treatment,
		ReferenceMonth:  in.ReferenceMonth,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.SaveInvoicePayment(ctx, p); err != nil {
		return InvoicePayment{}, err
	}
	return p, nil
}
