package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contasapp/banco_backend/internal/apperrors"
	portssvc "github.com/contasapp/banco_backend/internal/core/ports/services"
	"github.com/contasapp/banco_backend/internal/core/services"
	"github.com/contasapp/banco_backend/internal/dto"
	"github.com/contasapp/banco_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for money movement.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler.
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the money movement routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/deposit", h.deposit)
		ledger.POST("/withdraw", h.withdraw)
		ledger.POST("/transfer", h.transfer)
	}
}

// deposit godoc
// @Summary Deposit into an account
// @Description Atomically increments the account balance and appends a DEPOSIT transaction.
// @Tags ledger
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/deposit [post]
func (h *ledgerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.ledgerService.Deposit(c.Request.Context(), clientID, req.AccountNumber, req.Amount)
	if err != nil {
		h.respondLedgerError(c, logger, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// withdraw godoc
// @Summary Withdraw from an account
// @Description Atomically decrements the account balance and appends a WITHDRAWAL transaction.
// @Tags ledger
// @Accept json
// @Produce json
// @Param withdraw body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/withdraw [post]
func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.ledgerService.Withdraw(c.Request.Context(), clientID, req.AccountNumber, req.Amount)
	if err != nil {
		h.respondLedgerError(c, logger, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// transfer godoc
// @Summary Transfer between two accounts
// @Description Atomically moves the amount from source to destination and appends TRANSFER_OUT and TRANSFER_IN transactions.
// @Tags ledger
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/transfer [post]
func (h *ledgerHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	clientID, ok := middleware.GetClientIDFromContext(c)
	if !ok {
		logger.Error("Client ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	source, destination, err := h.ledgerService.Transfer(c.Request.Context(), clientID, req.SourceNumber, req.DestinationNumber, req.Amount)
	if err != nil {
		h.respondLedgerError(c, logger, err, "Failed to transfer")
		return
	}

	c.JSON(http.StatusOK, dto.TransferResponse{
		Source:      dto.ToAccountResponse(source),
		Destination: dto.ToAccountResponse(destination),
	})
}

// respondLedgerError maps ledger service errors to HTTP statuses.
// Insufficient funds is 422 to distinguish a well-formed but unprocessable
// request from a malformed one.
func (h *ledgerHandler) respondLedgerError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrInsufficientFunds):
		logger.Warn("Insufficient funds")
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Ledger validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Account not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Caller does not own account")
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalMsg})
	}
}
