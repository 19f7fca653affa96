/*
handlers.go - HTTP API handlers for the financial control engine

PURPOSE:
  Exposes the ledger engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Registry:
    GET/POST        /api/companies
    GET/PUT         /api/companies/{id}
    POST            /api/companies/{id}/archive
    GET             /api/companies/{id}/deletable
    GET             /api/companies/{id}/balance
    (same shape for /api/accounts, /api/cards, /api/categories,
     /api/providers)
    GET             /api/accounts/{id}/balance
    GET             /api/cards/{id}/invoice?month=YYYY-MM

  Transactions:
    GET/POST        /api/transactions
    GET/PUT/DELETE  /api/transactions/{id}
    POST            /api/transactions/{id}/confirm
    POST            /api/transactions/purchases
    POST            /api/transactions/adjustments

  Invoice payments:
    GET/POST        /api/invoice-payments

  Reporting:
    GET             /api/summary?from=YYYY-MM-DD&to=YYYY-MM-DD
    GET             /api/audit

  Month closing:
    GET             /api/closings
    GET             /api/closings/{yearMonth}/checklist
    POST            /api/closings/{yearMonth}/close
    POST            /api/closings/{yearMonth}/reopen

  Dev:
    POST            /api/seed

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Entity not found
  - 409: Month closed, checklist blocked, provision conflicts
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verto/fincontrol/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *ledger.Service
	Log     *zap.Logger
}

// NewHandler creates a new handler around the given service.
func NewHandler(svc *ledger.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Service: svc, Log: log}
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps ledger errors onto HTTP statuses. Anything the
// caller could not have caused is a 500 and gets logged.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case ledger.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, ledger.ErrMonthClosed),
		errors.Is(err, ledger.ErrNotProvision),
		errors.Is(err, ledger.ErrChecklistErrors):
		writeError(w, http.StatusConflict, "Conflict", err)
	case ledger.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		h.Log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// =============================================================================
// COMPANIES
// =============================================================================

func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Service.Companies(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]CompanyDTO, 0, len(companies))
	for _, c := range companies {
		dtos = append(dtos, toCompanyDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.Service.AddCompany(r.Context(), ledger.CompanyInput{
		Name: req.Name,
		Type: ledger.CompanyType(req.Type),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCompanyDTO(c))
}

func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Company(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}

func (h *Handler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
	var req UpdateCompanyRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch := ledger.CompanyPatch{Name: req.Name}
	if req.Type != nil {
		t := ledger.CompanyType(*req.Type)
		patch.Type = &t
	}
	c, err := h.Service.UpdateCompany(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCompanyDTO(c))
}

func (h *Handler) ArchiveCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveCompany(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CompanyDeletable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.Service.CanDeleteCompany(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletableDTO{ID: id, CanDelete: ok})
}

func (h *Handler) CompanyBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	balance, err := h.Service.CompanyBalance(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceDTO{ID: id, Balance: balance.String()})
}

// =============================================================================
// BANK ACCOUNTS
// =============================================================================

func (h *Handler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.BankAccounts(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]BankAccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, toBankAccountDTO(a))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateBankAccountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	balance, err := parseAmount(req.InitialBalance)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid initial_balance", err)
		return
	}
	a, err := h.Service.AddBankAccount(r.Context(), ledger.BankAccountInput{
		Name:           req.Name,
		CompanyID:      req.CompanyID,
		InitialBalance: balance,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBankAccountDTO(a))
}

func (h *Handler) GetBankAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.BankAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBankAccountDTO(a))
}

func (h *Handler) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	var req UpdateBankAccountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch := ledger.BankAccountPatch{Name: req.Name, CompanyID: req.CompanyID}
	if req.InitialBalance != nil {
		balance, err := parseAmount(*req.InitialBalance)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid initial_balance", err)
			return
		}
		patch.InitialBalance = &balance
	}
	a, err := h.Service.UpdateBankAccount(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBankAccountDTO(a))
}

func (h *Handler) ArchiveBankAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveBankAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BankAccountDeletable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.Service.CanDeleteBankAccount(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletableDTO{ID: id, CanDelete: ok})
}

func (h *Handler) BankAccountBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	balance, err := h.Service.BankAccountBalance(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceDTO{ID: id, Balance: balance.String()})
}

// =============================================================================
// CREDIT CARDS
// =============================================================================

func (h *Handler) ListCreditCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Service.CreditCards(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]CreditCardDTO, 0, len(cards))
	for _, c := range cards {
		dtos = append(dtos, toCreditCardDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCreditCardRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.Service.AddCreditCard(r.Context(), ledger.CreditCardInput{
		Name:                 req.Name,
		LastFourDigits:       req.LastFourDigits,
		ClosingDay:           req.ClosingDay,
		DueDay:               req.DueDay,
		DefaultBankAccountID: req.DefaultBankAccountID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCreditCardDTO(c))
}

func (h *Handler) GetCreditCard(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.CreditCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCreditCardDTO(c))
}

func (h *Handler) UpdateCreditCard(w http.ResponseWriter, r *http.Request) {
	var req UpdateCreditCardRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.Service.UpdateCreditCard(r.Context(), chi.URLParam(r, "id"), ledger.CreditCardPatch{
		Name:                 req.Name,
		LastFourDigits:       req.LastFourDigits,
		ClosingDay:           req.ClosingDay,
		DueDay:               req.DueDay,
		DefaultBankAccountID: req.DefaultBankAccountID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCreditCardDTO(c))
}

func (h *Handler) ArchiveCreditCard(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveCreditCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreditCardDeletable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.Service.CanDeleteCreditCard(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletableDTO{ID: id, CanDelete: ok})
}

func (h *Handler) CreditCardInvoice(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "Missing month query parameter (use YYYY-MM)", nil)
		return
	}
	txs, err := h.Service.CreditCardInvoice(r.Context(), chi.URLParam(r, "id"), month)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// =============================================================================
// CATEGORIES
// =============================================================================

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.Categories(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]CategoryDTO, 0, len(categories))
	for _, c := range categories {
		dtos = append(dtos, toCategoryDTO(c))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	c, err := h.Service.AddCategory(r.Context(), ledger.CategoryInput{
		Name: req.Name,
		Type: ledger.CategoryType(req.Type),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(c))
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.Category(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req UpdateCategoryRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch := ledger.CategoryPatch{Name: req.Name}
	if req.Type != nil {
		t := ledger.CategoryType(*req.Type)
		patch.Type = &t
	}
	c, err := h.Service.UpdateCategory(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

func (h *Handler) ArchiveCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CategoryDeletable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.Service.CanDeleteCategory(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletableDTO{ID: id, CanDelete: ok})
}

// =============================================================================
// SERVICE PROVIDERS
// =============================================================================

func (h *Handler) ListServiceProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.Service.ServiceProviders(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]ServiceProviderDTO, 0, len(providers))
	for _, p := range providers {
		dtos = append(dtos, toServiceProviderDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateServiceProvider(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceProviderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p, err := h.Service.AddServiceProvider(r.Context(), ledger.ServiceProviderInput{Name: req.Name})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toServiceProviderDTO(p))
}

func (h *Handler) GetServiceProvider(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.ServiceProvider(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceProviderDTO(p))
}

func (h *Handler) UpdateServiceProvider(w http.ResponseWriter, r *http.Request) {
	var req UpdateServiceProviderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	p, err := h.Service.UpdateServiceProvider(r.Context(), chi.URLParam(r, "id"),
		ledger.ServiceProviderPatch{Name: req.Name})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceProviderDTO(p))
}

func (h *Handler) ArchiveServiceProvider(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ArchiveServiceProvider(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ServiceProviderDeletable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ok, err := h.Service.CanDeleteServiceProvider(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeletableDTO{ID: id, CanDelete: ok})
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.Transactions(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	t, err := h.Service.AddTransaction(r.Context(), ledger.TransactionInput{
		Type:                     ledger.TransactionType(req.Type),
		Status:                   ledger.TransactionStatus(req.Status),
		Date:                     date,
		Description:              req.Description,
		Amount:                   amount,
		CompanyID:                req.CompanyID,
		CategoryID:               req.CategoryID,
		ServiceProviderID:        req.ServiceProviderID,
		BankAccountID:            req.BankAccountID,
		CreditCardID:             req.CreditCardID,
		DestinationBankAccountID: req.DestinationBankAccountID,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(t))
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := h.Service.Transaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	patch := ledger.TransactionPatch{
		Description:              req.Description,
		CompanyID:                req.CompanyID,
		CategoryID:               req.CategoryID,
		ServiceProviderID:        req.ServiceProviderID,
		BankAccountID:            req.BankAccountID,
		CreditCardID:             req.CreditCardID,
		DestinationBankAccountID: req.DestinationBankAccountID,
	}
	if req.Type != nil {
		t := ledger.TransactionType(*req.Type)
		patch.Type = &t
	}
	if req.Status != nil {
		st := ledger.TransactionStatus(*req.Status)
		patch.Status = &st
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
			return
		}
		patch.Date = &date
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid amount", err)
			return
		}
		patch.Amount = &amount
	}
	t, err := h.Service.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ConfirmProvision(w http.ResponseWriter, r *http.Request) {
	var req ConfirmProvisionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	effective, err := parseDate(req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date format (use YYYY-MM-DD)", err)
		return
	}
	t, err := h.Service.ConfirmProvision(r.Context(), chi.URLParam(r, "id"), effective)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(t))
}

func (h *Handler) RecordCardPurchase(w http.ResponseWriter, r *http.Request) {
	var req CardPurchaseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	txs, err := h.Service.RecordCardPurchase(r.Context(), ledger.CardPurchaseInput{
		Description:       req.Description,
		Date:              date,
		Amount:            amount,
		Status:            ledger.TransactionStatus(req.Status),
		CreditCardID:      req.CreditCardID,
		CompanyID:         req.CompanyID,
		CategoryID:        req.CategoryID,
		ServiceProviderID: req.ServiceProviderID,
		Installments:      req.Installments,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTOs(txs))
}

func (h *Handler) RecordAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	t, err := h.Service.RecordAdjustment(r.Context(), req.CompanyID, req.BankAccountID,
		req.Description, date, amount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(t))
}

// =============================================================================
// INVOICE PAYMENTS
// =============================================================================

func (h *Handler) ListInvoicePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.InvoicePayments(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]InvoicePaymentDTO, 0, len(payments))
	for _, p := range payments {
		dtos = append(dtos, toInvoicePaymentDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateInvoicePayment(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoicePaymentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	date, err := parseDate(req.PaymentDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payment_date format (use YYYY-MM-DD)", err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	p, err := h.Service.AddInvoicePayment(r.Context(), ledger.InvoicePaymentInput{
		CreditCardID:    req.CreditCardID,
		PayingCompanyID: req.PayingCompanyID,
		BankAccountID:   req.BankAccountID,
		PaymentDate:     date,
		Amount:          amount,
		Treatment:       ledger.InvoiceTreatment(req.Treatment),
		ReferenceMonth:  req.ReferenceMonth,
		Notes:           req.Notes,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvoicePaymentDTO(p))
}

// =============================================================================
// REPORTING
// =============================================================================

// GetSummary accepts an optional from/to date pair. Both must be
// present for the range to apply.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var rng *ledger.Period
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from != "" && to != "" {
		start, err := parseDate(from)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		end, err := parseDate(to)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		rng = &ledger.Period{Start: start, End: end}
	}
	summary, err := h.Service.GlobalSummary(r.Context(), rng)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(summary))
}

func (h *Handler) RunAudit(w http.ResponseWriter, r *http.Request) {
	findings, err := h.Service.RunAudit(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]FindingDTO, 0, len(findings))
	for _, f := range findings {
		dtos = append(dtos, toFindingDTO(f))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// MONTH CLOSING
// =============================================================================

func (h *Handler) ListMonthClosings(w http.ResponseWriter, r *http.Request) {
	closings, err := h.Service.MonthClosings(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]MonthClosingDTO, 0, len(closings))
	for _, m := range closings {
		dtos = append(dtos, toMonthClosingDTO(m))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) MonthChecklist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.MonthChecklist(r.Context(), chi.URLParam(r, "yearMonth"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	dtos := make([]ChecklistItemDTO, 0, len(items))
	for _, i := range items {
		dtos = append(dtos, toChecklistItemDTO(i))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CloseMonth(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.CloseMonth(r.Context(), chi.URLParam(r, "yearMonth"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthClosingDTO(m))
}

func (h *Handler) ReopenMonth(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.ReopenMonth(r.Context(), chi.URLParam(r, "yearMonth"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthClosingDTO(m))
}

// =============================================================================
// DEV
// =============================================================================

// SeedData wipes the store and loads the demo dataset.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Seed(r.Context()); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}
