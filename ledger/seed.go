/*
seed.go - Demonstration data

Loads the sample dataset the application boots with: three companies,
their bank accounts, two credit cards, the default category and
provider registries, and a handful of transactions including two open
provisions. Seeding resets the store first.
*/
package ledger

import (
	"context"
	"time"
)

// Seed wipes the store and loads the demonstration dataset through the
// regular service operations, so ids and timestamps are stamped the
// usual way.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}

	main, err := s.AddCompany(ctx, CompanyInput{Name: "Empresa Principal", Type: CompanyBusiness})
	if err != nil {
		return err
	}
	consulting, err := s.AddCompany(ctx, CompanyInput{Name: "Consultoria ABC", Type: CompanyBusiness})
	if err != nil {
		return err
	}
	personal, err := s.AddCompany(ctx, CompanyInput{Name: "Pessoal", Type: CompanyPersonal})
	if err != nil {
		return err
	}

	mainAcct, err := s.AddBankAccount(ctx, BankAccountInput{Name: "Bradesco PJ", CompanyID: main.ID, InitialBalance: MustDecimal("15000")})
	if err != nil {
		return err
	}
	consultingAcct, err := s.AddBankAccount(ctx, BankAccountInput{Name: "Nubank Consultoria", CompanyID: consulting.ID, InitialBalance: MustDecimal("8500")})
	if err != nil {
		return err
	}
	personalAcct, err := s.AddBankAccount(ctx, BankAccountInput{Name: "Itaú Pessoal", CompanyID: personal.ID, InitialBalance: MustDecimal("5000")})
	if err != nil {
		return err
	}

	visa, err := s.AddCreditCard(ctx, CreditCardInput{Name: "Visa Empresarial", LastFourDigits: "4521", ClosingDay: 15, DueDay: 25, DefaultBankAccountID: mainAcct.ID})
	if err != nil {
		return err
	}
	if _, err := s.AddCreditCard(ctx, CreditCardInput{Name: "Mastercard Pessoal", LastFourDigits: "8832", ClosingDay: 10, DueDay: 20, DefaultBankAccountID: personalAcct.ID}); err != nil {
		return err
	}

	categories := []CategoryInput{
		{Name: "Vendas", Type: CategoryIncome},
		{Name: "Serviços Prestados", Type: CategoryIncome},
		{Name: "Aluguel", Type: CategoryExpense},
		{Name: "Software/SaaS", Type: CategoryExpense},
		{Name: "Marketing", Type: CategoryExpense},
		{Name: "Alimentação", Type: CategoryExpense},
	}
	created := make([]Category, 0, len(categories))
	for _, in := range categories {
		c, err := s.AddCategory(ctx, in)
		if err != nil {
			return err
		}
		created = append(created, c)
	}
	sales, services, rent, software := created[0], created[1], created[2], created[3]

	aws, err := s.AddServiceProvider(ctx, ServiceProviderInput{Name: "AWS"})
	if err != nil {
		return err
	}
	if _, err := s.AddServiceProvider(ctx, ServiceProviderInput{Name: "Google Workspace"}); err != nil {
		return err
	}
	realtor, err := s.AddServiceProvider(ctx, ServiceProviderInput{Name: "Imobiliária Central"})
	if err != nil {
		return err
	}

	now := s.now()
	lastMonth := AddMonthsClamped(now, -1)
	nextMonth := AddMonthsClamped(now, 1)

	seedTxs := []TransactionInput{
		{
			Type: TypeIncome, Status: StatusReal,
			Date:        time.Date(lastMonth.Year(), lastMonth.Month(), 5, 0, 0, 0, 0, time.UTC),
			Description: "Pagamento Cliente XYZ", Amount: MustDecimal("12500"),
			CompanyID: main.ID, CategoryID: sales.ID, BankAccountID: mainAcct.ID,
		},
		{
			Type: TypeExpense, Status: StatusReal,
			Date:        time.Date(lastMonth.Year(), lastMonth.Month(), 10, 0, 0, 0, 0, time.UTC),
			Description: "AWS - Serviços Cloud", Amount: MustDecimal("850"),
			CompanyID: main.ID, CategoryID: software.ID, ServiceProviderID: aws.ID, CreditCardID: visa.ID,
		},
		{
			Type: TypeExpense, Status: StatusProvision,
			Date:        time.Date(nextMonth.Year(), nextMonth.Month(), 5, 0, 0, 0, 0, time.UTC),
			Description: "Aluguel", Amount: MustDecimal("2500"),
			CompanyID: main.ID, CategoryID: rent.ID, ServiceProviderID: realtor.ID, BankAccountID: mainAcct.ID,
		},
		{
			Type: TypeIncome, Status: StatusProvision,
			Date:        time.Date(nextMonth.Year(), nextMonth.Month(), 15, 0, 0, 0, 0, time.UTC),
			Description: "Projeto Consultoria - Previsão", Amount: MustDecimal("8000"),
			CompanyID: consulting.ID, CategoryID: services.ID, BankAccountID: consultingAcct.ID,
		},
	}
	for _, in := range seedTxs {
		if _, err := s.AddTransaction(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
