/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  The Entity Store is the serialization boundary: one table per entity
  kind, keyed by id. Save statements are upserts (INSERT OR REPLACE);
  derived values like balances are never stored, they are recomputed by
  folding over the transactions table through the engine.

DATA MAPPING:
  - Dates are stored as RFC3339 TEXT; nullable dates as NULL
  - Monetary amounts are stored as decimal TEXT, never REAL, so no
    precision is lost round-tripping through storage
  - Absent references are stored as empty strings, matching the
    in-memory representation

BATCH WRITES:
  SaveTransactions wraps its inserts in a database transaction, which
  gives installment groups their all-or-nothing guarantee.

WAL MODE:
  SQLite is opened with WAL for better concurrency: readers don't
  block, one writer at a time.

USAGE:
  st, err := sqlite.New("./data/fincontrol.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()
  svc := ledger.NewService(st)

SEE ALSO:
  - ledger/store.go: interface definition
  - ledger/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/verto/fincontrol/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	st := &Store{db: db}
	if err := st.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company_type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS credit_cards (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		last_four_digits TEXT NOT NULL,
		closing_day INTEGER NOT NULL,
		due_day INTEGER NOT NULL,
		default_bank_account_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bank_accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company_id TEXT NOT NULL,
		initial_balance TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category_type TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS service_providers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		tx_type TEXT NOT NULL,
		status TEXT NOT NULL,
		tx_date TEXT NOT NULL,
		effective_date TEXT,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		company_id TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL DEFAULT '',
		service_provider_id TEXT NOT NULL DEFAULT '',
		bank_account_id TEXT NOT NULL DEFAULT '',
		credit_card_id TEXT NOT NULL DEFAULT '',
		purchase_id TEXT NOT NULL DEFAULT '',
		installment_number INTEGER NOT NULL DEFAULT 0,
		total_installments INTEGER NOT NULL DEFAULT 0,
		installment_due_date TEXT,
		destination_bank_account_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
	CREATE INDEX IF NOT EXISTS idx_transactions_purchase ON transactions(purchase_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(bank_account_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_card ON transactions(credit_card_id);

	CREATE TABLE IF NOT EXISTS invoice_payments (
		id TEXT PRIMARY KEY,
		credit_card_id TEXT NOT NULL,
		paying_company_id TEXT NOT NULL,
		bank_account_id TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		amount TEXT NOT NULL,
		treatment TEXT NOT NULL,
		reference_month TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS month_closings (
		id TEXT PRIMARY KEY,
		year_month TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		closed_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TIME / DECIMAL MAPPING HELPERS
// =============================================================================

func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// COMPANIES
// =============================================================================

func (s *Store) SaveCompany(ctx context.Context, c ledger.Company) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO companies (id, name, company_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Type), string(c.Status), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	return err
}

func (s *Store) GetCompany(ctx context.Context, id string) (*ledger.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c ledger.Company
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, company_type, status, created_at, updated_at FROM companies WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Type, &c.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &c, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]ledger.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, company_type, status, created_at, updated_at FROM companies ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Company
	for rows.Next() {
		var c ledger.Company
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// CREDIT CARDS
// =============================================================================

func (s *Store) SaveCreditCard(ctx context.Context, c ledger.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO credit_cards
			(id, name, last_four_digits, closing_day, due_day, default_bank_account_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.LastFourDigits, c.ClosingDay, c.DueDay, c.DefaultBankAccountID,
		string(c.Status), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	return err
}

func (s *Store) GetCreditCard(ctx context.Context, id string) (*ledger.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c ledger.CreditCard
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, last_four_digits, closing_day, due_day, default_bank_account_id, status, created_at, updated_at
		FROM credit_cards WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.LastFourDigits, &c.ClosingDay, &c.DueDay, &c.DefaultBankAccountID,
		&c.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &c, nil
}

func (s *Store) ListCreditCards(ctx context.Context) ([]ledger.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, last_four_digits, closing_day, due_day, default_bank_account_id, status, created_at, updated_at
		FROM credit_cards ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.CreditCard
	for rows.Next() {
		var c ledger.CreditCard
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.LastFourDigits, &c.ClosingDay, &c.DueDay,
			&c.DefaultBankAccountID, &c.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// BANK ACCOUNTS
// =============================================================================

func (s *Store) SaveBankAccount(ctx context.Context, a ledger.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bank_accounts (id, name, company_id, initial_balance, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.CompanyID, a.InitialBalance.String(), string(a.Status),
		fmtTime(a.CreatedAt), fmtTime(a.UpdatedAt))
	return err
}

func (s *Store) GetBankAccount(ctx context.Context, id string) (*ledger.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var a ledger.BankAccount
	var balance, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, company_id, initial_balance, status, created_at, updated_at FROM bank_accounts WHERE id = ?", id,
	).Scan(&a.ID, &a.Name, &a.CompanyID, &balance, &a.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.InitialBalance = parseDecimal(balance)
	a.CreatedAt, a.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &a, nil
}

func (s *Store) ListBankAccounts(ctx context.Context) ([]ledger.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, company_id, initial_balance, status, created_at, updated_at FROM bank_accounts ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.BankAccount
	for rows.Next() {
		var a ledger.BankAccount
		var balance, createdAt, updatedAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.CompanyID, &balance, &a.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		a.InitialBalance = parseDecimal(balance)
		a.CreatedAt, a.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (s *Store) SaveCategory(ctx context.Context, c ledger.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO categories (id, name, category_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Type), string(c.Status), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	return err
}

func (s *Store) GetCategory(ctx context.Context, id string) (*ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c ledger.Category
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, category_type, status, created_at, updated_at FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Type, &c.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]ledger.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, category_type, status, created_at, updated_at FROM categories ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Category
	for rows.Next() {
		var c ledger.Category
		var createdAt, updatedAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt, c.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

// =============================================================================
// SERVICE PROVIDERS
// =============================================================================

func (s *Store) SaveServiceProvider(ctx context.Context, p ledger.ServiceProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO service_providers (id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Status), fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt))
	return err
}

func (s *Store) GetServiceProvider(ctx context.Context, id string) (*ledger.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p ledger.ServiceProvider
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, status, created_at, updated_at FROM service_providers WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Status, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt, p.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &p, nil
}

func (s *Store) ListServiceProviders(ctx context.Context) ([]ledger.ServiceProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, status, created_at, updated_at FROM service_providers ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.ServiceProvider
	for rows.Next() {
		var p ledger.ServiceProvider
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.CreatedAt, p.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

const txColumns = `id, tx_type, status, tx_date, effective_date, description, amount,
	company_id, category_id, service_provider_id, bank_account_id, credit_card_id,
	purchase_id, installment_number, total_installments, installment_due_date,
	destination_bank_account_id, created_at, updated_at`

func (s *Store) SaveTransaction(ctx context.Context, t ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveTransaction(ctx, s.db, t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveTransaction(ctx context.Context, db execer, t ledger.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO transactions (`+txColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), string(t.Status), fmtTime(t.Date), fmtTimePtr(t.EffectiveDate),
		t.Description, t.Amount.String(),
		t.CompanyID, t.CategoryID, t.ServiceProviderID, t.BankAccountID, t.CreditCardID,
		t.PurchaseID, t.InstallmentNumber, t.TotalInstallments, fmtTimePtr(t.InstallmentDueDate),
		t.DestinationBankAccountID, fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt))
	return err
}

// SaveTransactions writes the batch inside one database transaction:
// either all rows land or none do.
func (s *Store) SaveTransactions(ctx context.Context, ts []ledger.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, t := range ts {
		if err := saveTransaction(ctx, dbTx, t); err != nil {
			dbTx.Rollback()
			return err
		}
	}
	return dbTx.Commit()
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+txColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+txColumns+" FROM transactions ORDER BY tx_date, created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*ledger.Transaction, error) {
	var t ledger.Transaction
	var txDate, amount, createdAt, updatedAt string
	var effectiveDate, dueDate sql.NullString

	err := row.Scan(&t.ID, &t.Type, &t.Status, &txDate, &effectiveDate, &t.Description, &amount,
		&t.CompanyID, &t.CategoryID, &t.ServiceProviderID, &t.BankAccountID, &t.CreditCardID,
		&t.PurchaseID, &t.InstallmentNumber, &t.TotalInstallments, &dueDate,
		&t.DestinationBankAccountID, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.Date = parseTime(txDate)
	t.EffectiveDate = parseTimePtr(effectiveDate)
	t.Amount = parseDecimal(amount)
	t.InstallmentDueDate = parseTimePtr(dueDate)
	t.CreatedAt, t.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &t, nil
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

func (s *Store) SaveInvoicePayment(ctx context.Context, p ledger.InvoicePayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO invoice_payments
			(id, credit_card_id, paying_company_id, bank_account_id, payment_date, amount, treatment, reference_month, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CreditCardID, p.PayingCompanyID, p.BankAccountID, fmtTime(p.PaymentDate),
		p.Amount.String(), string(p.Treatment), p.ReferenceMonth, p.Notes,
		fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt))
	return err
}

func (s *Store) ListInvoicePayments(ctx context.Context) ([]ledger.InvoicePayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, credit_card_id, paying_company_id, bank_account_id, payment_date, amount, treatment, reference_month, notes, created_at, updated_at
		FROM invoice_payments ORDER BY payment_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.InvoicePayment
	for rows.Next() {
		var p ledger.InvoicePayment
		var paymentDate, amount, createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.CreditCardID, &p.PayingCompanyID, &p.BankAccountID,
			&paymentDate, &amount, &p.Treatment, &p.ReferenceMonth, &p.Notes, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		p.PaymentDate = parseTime(paymentDate)
		p.Amount = parseDecimal(amount)
		p.CreatedAt, p.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// =============================================================================
// MONTH CLOSINGS
// =============================================================================

func (s *Store) SaveMonthClosing(ctx context.Context, m ledger.MonthClosing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO month_closings (id, year_month, status, closed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(year_month) DO UPDATE SET
			status = excluded.status,
			closed_at = excluded.closed_at,
			updated_at = excluded.updated_at`,
		m.ID, m.YearMonth, string(m.Status), fmtTimePtr(m.ClosedAt),
		fmtTime(m.CreatedAt), fmtTime(m.UpdatedAt))
	return err
}

func (s *Store) GetMonthClosing(ctx context.Context, yearMonth string) (*ledger.MonthClosing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var m ledger.MonthClosing
	var closedAt sql.NullString
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, year_month, status, closed_at, created_at, updated_at FROM month_closings WHERE year_month = ?", yearMonth,
	).Scan(&m.ID, &m.YearMonth, &m.Status, &closedAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.ClosedAt = parseTimePtr(closedAt)
	m.CreatedAt, m.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
	return &m, nil
}

func (s *Store) ListMonthClosings(ctx context.Context) ([]ledger.MonthClosing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, year_month, status, closed_at, created_at, updated_at FROM month_closings ORDER BY year_month")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.MonthClosing
	for rows.Next() {
		var m ledger.MonthClosing
		var closedAt sql.NullString
		var createdAt, updatedAt string
		if err := rows.Scan(&m.ID, &m.YearMonth, &m.Status, &closedAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		m.ClosedAt = parseTimePtr(closedAt)
		m.CreatedAt, m.UpdatedAt = parseTime(createdAt), parseTime(updatedAt)
		out = append(out, m)
	}
	return out, rows.Err()
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears every collection. Used when loading seed data.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"companies", "credit_cards", "bank_accounts", "categories",
		"service_providers", "transactions", "invoice_payments", "month_closings",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
