package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/dto"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fsaAccountHandler handles HTTP requests related to FSA accounts.
type fsaAccountHandler struct {
	accountService    portssvc.FSAAccountSvcFacade
	allocationService portssvc.AllocationSvcFacade
}

// newFSAAccountHandler creates a new fsaAccountHandler.
func newFSAAccountHandler(as portssvc.FSAAccountSvcFacade, als portssvc.AllocationSvcFacade) *fsaAccountHandler {
	return &fsaAccountHandler{
		accountService:    as,
		allocationService: als,
	}
}

// registerFSAAccountRoutes registers routes related to FSA accounts.
func registerFSAAccountRoutes(rg *gin.RouterGroup, accountService portssvc.FSAAccountSvcFacade, allocationService portssvc.AllocationSvcFacade) {
	h := newFSAAccountHandler(accountService, allocationService)

	accounts := rg.Group("/fsa-accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/employee/:employeeId", h.getAccountsByEmployee)
		accounts.GET("/employee/:employeeId/active", h.getActiveAccountByEmployee)
		accounts.POST("/:id/allocate", h.allocate)
		accounts.POST("/:id/expenses", h.recordExpense)
		accounts.PUT("/:id/status", h.updateStatus)
	}
}

// allocate godoc
// @Summary Allocate funds into an FSA account
// @Description Credits the amount into the account balance, up to its annual limit, and records a credit transaction
// @Tags fsa-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   allocation body dto.AllocateRequest true "Allocation details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Failure 422 {object} map[string]interface{} "Annual limit exceeded"
// @Failure 500 {object} map[string]string "Failed to allocate funds"
// @Security BearerAuth
// @Router /fsa-accounts/{id}/allocate [post]
func (h *fsaAccountHandler) allocate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.AllocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Allocate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received allocation request", slog.String("amount", req.Amount.String()))

	account, err := h.allocationService.Allocate(c.Request.Context(), accountID, req.Amount, req.Description)
	if err != nil {
		h.writeLedgerError(c, logger, err, "Failed to allocate funds")
		return
	}

	logger.Info("Allocation succeeded", slog.String("new_balance", account.CurrentBalance.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// recordExpense godoc
// @Summary Record an expense against an FSA account
// @Description Debits the amount from the allocated balance and records a debit transaction
// @Tags fsa-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   expense body dto.ExpenseRequest true "Expense details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account not active"
// @Failure 422 {object} map[string]string "Insufficient allocated funds"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /fsa-accounts/{id}/expenses [post]
func (h *fsaAccountHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received expense request", slog.String("amount", req.Amount.String()))

	account, err := h.allocationService.RecordExpense(c.Request.Context(), accountID, req.Amount, req.Description)
	if err != nil {
		h.writeLedgerError(c, logger, err, "Failed to record expense")
		return
	}

	logger.Info("Expense recorded", slog.String("used_amount", account.UsedAmount.String()))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// writeLedgerError maps allocation and expense failures onto HTTP responses.
func (h *fsaAccountHandler) writeLedgerError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var limitErr *apperrors.LimitExceededError
	switch {
	case errors.As(err, &limitErr):
		logger.Warn("Annual limit exceeded", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           err.Error(),
			"currentBalance":  limitErr.CurrentBalance,
			"annualLimit":     limitErr.AnnualLimit,
			"attemptedAmount": limitErr.AttemptedAmount,
		})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
	case errors.Is(err, apperrors.ErrAccountInactive):
		logger.Warn("Account not active", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		logger.Warn("Insufficient allocated funds", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Ledger operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// getAccount godoc
// @Summary Get an FSA account by ID
// @Description Retrieves the account with its full transaction history and employee details
// @Tags fsa-accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /fsa-accounts/{id} [get]
func (h *fsaAccountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	logger = logger.With(slog.String("account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get account from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List FSA accounts
// @Description Retrieves a paginated list of all FSA accounts
// @Tags fsa-accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /fsa-accounts [get]
func (h *fsaAccountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getAccountsByEmployee godoc
// @Summary List an employee's FSA accounts
// @Description Retrieves every account owned by the employee, newest plan year first
// @Tags fsa-accounts
// @Produce  json
// @Param   employeeId path string true "Employee ID"
// @Success 200 {array} dto.AccountResponse
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /fsa-accounts/employee/{employeeId} [get]
func (h *fsaAccountHandler) getAccountsByEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeId")

	accounts, err := h.accountService.GetAccountsByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		logger.Error("Failed to list accounts for employee", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// getActiveAccountByEmployee godoc
// @Summary Get an employee's active FSA account
// @Description Retrieves the employee's single active account for the current plan year
// @Tags fsa-accounts
// @Produce  json
// @Param   employeeId path string true "Employee ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} map[string]string "No active account"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /fsa-accounts/employee/{employeeId}/active [get]
func (h *fsaAccountHandler) getActiveAccountByEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	employeeID := c.Param("employeeId")

	account, err := h.accountService.GetActiveAccountByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No active FSA account for employee"})
		} else {
			logger.Error("Failed to get active account", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// updateStatus godoc
// @Summary Update an FSA account's lifecycle status
// @Description Transitions the account between active, inactive, and suspended
// @Tags fsa-accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   status body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid status value"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update status"
// @Security BearerAuth
// @Router /fsa-accounts/{id}/status [put]
func (h *fsaAccountHandler) updateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("status", req.Status))
	logger.Info("Received status update request")

	account, err := h.accountService.UpdateStatus(c.Request.Context(), accountID, domain.AccountStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		default:
			logger.Error("Failed to update account status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	logger.Info("Account status updated")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
