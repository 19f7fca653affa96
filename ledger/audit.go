/*
audit.go - Consistency checker

PURPOSE:
  Runs a fixed battery of read-only scans over the current snapshot
  and reports findings. Findings never block mutations; they feed the
  alerts screen and the month-closing checklist.

CHECKS:
  - old_provision: provisions older than 30 days still unconfirmed
  - orphan_installment: a purchase group whose row count disagrees
    with its declared totalInstallments
  - balance_mismatch, invoice_as_expense, transfer_as_income_expense:
    named categories whose detection needs an external reconciliation
    feed; the hooks exist and report nothing until one does

An empty scan collapses to a single informational "all clear" finding.
*/
package ledger

import (
	"context"
	"fmt"
	"sort"
)

type AlertType string

const (
	AlertOldProvision      AlertType = "old_provision"
	AlertOrphanInstallment AlertType = "orphan_installment"
	AlertBalanceMismatch   AlertType = "balance_mismatch"
	AlertInvoiceAsExpense  AlertType = "invoice_as_expense"
	AlertTransferMiscoded  AlertType = "transfer_as_income_expense"
	AlertAllClear          AlertType = "all_clear"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Finding struct {
	Type              AlertType
	Severity          Severity
	Message           string
	RelatedEntityID   string
	RelatedEntityType string
	Count             int
}

// staleProvisionDays is the age beyond which an unconfirmed provision
// is flagged.
const staleProvisionDays = 30

// RunAudit scans the ledger and returns its findings. Read-only.
func (s *Service) RunAudit(ctx context.Context) ([]Finding, error) {
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var findings []Finding

	if f := s.staleProvisions(txs); f != nil {
		findings = append(findings, *f)
	}
	findings = append(findings, orphanInstallments(txs, nil)...)
	findings = append(findings, s.balanceMismatches()...)
	findings = append(findings, s.invoicesPaidAsExpense()...)
	findings = append(findings, s.transfersMiscoded()...)

	if len(findings) == 0 {
		findings = append(findings, Finding{
			Type:     AlertAllClear,
			Severity: SeverityInfo,
			Message:  "no inconsistencies found in the financial data",
		})
	}
	return findings, nil
}

func (s *Service) staleProvisions(txs []Transaction) *Finding {
	now := s.now()
	count := 0
	for _, t := range txs {
		if t.Status != StatusProvision {
			continue
		}
		if now.Sub(t.Date).Hours() > staleProvisionDays*24 {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return &Finding{
		Type:     AlertOldProvision,
		Severity: SeverityWarning,
		Message:  fmt.Sprintf("%d provision(s) older than 30 days still unconfirmed", count),
		Count:    count,
	}
}

// orphanInstallments compares each purchase group's actual row count
// against the totalInstallments declared on its members. When
// monthFilter is non-nil, only groups with at least one row in that
// period are considered, but the count always runs over the full set.
func orphanInstallments(txs []Transaction, monthFilter *Period) []Finding {
	groups := make(map[string][]Transaction)
	for _, t := range txs {
		if t.PurchaseID != "" {
			groups[t.PurchaseID] = append(groups[t.PurchaseID], t)
		}
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids) // deterministic finding order

	var findings []Finding
	for _, id := range ids {
		group := groups[id]
		if monthFilter != nil {
			inMonth := false
			for _, t := range group {
				if monthFilter.Contains(t.Date) {
					inMonth = true
					break
				}
			}
			if !inMonth {
				continue
			}
		}
		expected := group[0].TotalInstallments
		if expected > 0 && len(group) != expected {
			findings = append(findings, Finding{
				Type:              AlertOrphanInstallment,
				Severity:          SeverityError,
				Message:           fmt.Sprintf("installment purchase has %d of %d installments recorded", len(group), expected),
				RelatedEntityID:   id,
				RelatedEntityType: "purchase",
				Count:             1,
			})
		}
	}
	return findings
}

// The three hooks below are named alert categories that need real
// external bank data to populate. They stay empty until a
// reconciliation feed exists.

func (s *Service) balanceMismatches() []Finding     { return nil }
func (s *Service) invoicesPaidAsExpense() []Finding { return nil }
func (s *Service) transfersMiscoded() []Finding     { return nil }

// =============================================================================
// MONTH-CLOSING CHECKLIST
// =============================================================================

type ChecklistStatus string

const (
	CheckOK      ChecklistStatus = "ok"
	CheckWarning ChecklistStatus = "warning"
	CheckError   ChecklistStatus = "error"
)

type ChecklistItem struct {
	ID          string
	Label       string
	Description string
	Status      ChecklistStatus
	Count       int
}

// MonthChecklist produces the review items for closing a "YYYY-MM"
// month: unconfirmed provisions, installment consistency, and
// income/expense rows missing a company or category link.
func (s *Service) MonthChecklist(ctx context.Context, yearMonth string) ([]ChecklistItem, error) {
	period, err := MonthPeriod(yearMonth)
	if err != nil {
		return nil, &ValidationError{Field: "yearMonth", Message: "must be YYYY-MM"}
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	var monthTxs []Transaction
	for _, t := range txs {
		if period.Contains(t.Date) {
			monthTxs = append(monthTxs, t)
		}
	}

	var items []ChecklistItem

	pending := 0
	for _, t := range monthTxs {
		if t.Status == StatusProvision {
			pending++
		}
	}
	items = append(items, checklistItem("provisions", "Pending provisions",
		pending, CheckWarning,
		"all provisions confirmed",
		fmt.Sprintf("%d provision(s) not confirmed", pending)))

	orphans := len(orphanInstallments(txs, &period))
	items = append(items, checklistItem("installments", "Installment consistency",
		orphans, CheckError,
		"all installment purchases are consistent",
		fmt.Sprintf("%d purchase(s) with inconsistent installments", orphans)))

	noCompany, noCategory := 0, 0
	for _, t := range monthTxs {
		if t.Type == TypeTransfer {
			continue
		}
		if t.CompanyID == "" {
			noCompany++
		}
		if t.CategoryID == "" {
			noCategory++
		}
	}
	items = append(items, checklistItem("company", "Entries without company",
		noCompany, CheckWarning,
		"every entry has a company",
		fmt.Sprintf("%d entry(ies) without a company", noCompany)))
	items = append(items, checklistItem("category", "Entries without category",
		noCategory, CheckWarning,
		"every entry has a category",
		fmt.Sprintf("%d entry(ies) without a category", noCategory)))

	return items, nil
}

func checklistItem(id, label string, count int, bad ChecklistStatus, okText, badText string) ChecklistItem {
	item := ChecklistItem{ID: id, Label: label, Status: CheckOK, Description: okText, Count: count}
	if count > 0 {
		item.Status = bad
		item.Description = badText
	}
	return item
}
