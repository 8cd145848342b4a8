package handler

import (
	"context"
	"net/http"

	"github.com/cosmassist/platform/internal/middleware"
	"github.com/cosmassist/platform/internal/payment"
	"github.com/gin-gonic/gin"
)

// TransactionServicer defines the transaction operations used by PaymentHandler.
type TransactionServicer interface {
	Create(ctx context.Context, req payment.CreateTransactionRequest) (*payment.TransactionDTO, error)
	FindByID(ctx context.Context, id string) (*payment.TransactionDTO, error)
}

// AccountLister defines the account operations used by PaymentHandler.
type AccountLister interface {
	List(ctx context.Context) ([]payment.AccountDTO, error)
}

type PaymentHandler struct {
	transactions TransactionServicer
	accounts     AccountLister
}

func NewPaymentHandler(transactions TransactionServicer, accounts AccountLister) *PaymentHandler {
	return &PaymentHandler{transactions: transactions, accounts: accounts}
}

// RegisterRoutes mounts the payment API on the router.
func (h *PaymentHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/payment")
	{
		api.GET("/accounts", h.ListAccounts)
		api.POST("/transaction", h.CreateTransaction)
		api.GET("/transaction/:id", h.GetTransaction)
	}
}

func (h *PaymentHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accounts.List(c.Request.Context())
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (h *PaymentHandler) CreateTransaction(c *gin.Context) {
	var req payment.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, payment.TransactionResponse{
			Success: false,
			Message: "Invalid request body",
		})
		return
	}

	transaction, err := h.transactions.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case payment.IsInvalidArgument(err):
			c.JSON(http.StatusBadRequest, payment.TransactionResponse{Success: false, Message: err.Error()})
		case payment.IsNotFound(err):
			c.JSON(http.StatusNotFound, payment.TransactionResponse{Success: false, Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, payment.TransactionResponse{Success: false, Message: "Failed to create transaction"})
		}
		return
	}

	c.Header("Location", "/api/payment/transaction/"+transaction.ID)
	c.JSON(http.StatusCreated, payment.TransactionResponse{
		Success:     true,
		Message:     "Transaction created",
		Transaction: transaction,
	})
}

func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	transaction, err := h.transactions.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if payment.IsNotFound(err) {
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, transaction)
}
