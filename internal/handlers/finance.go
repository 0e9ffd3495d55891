package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/lifetracker/internal/services"
	"github.com/localnerve/lifetracker/internal/types"
	"github.com/localnerve/lifetracker/internal/utils"
)

// FinanceHandler handles account, transaction and tag routes
type FinanceHandler struct {
	Store *services.Store
}

// AddAccountRequest is the body of POST /api/accounts
type AddAccountRequest struct {
	Name    string          `json:"name" form:"name"`
	Balance types.FlexFloat `json:"balance" form:"balance"`
	Type    string          `json:"type" form:"type"`
}

// CreateTransactionRequest is the body of POST /api/transactions.
// tags may be an array or a single, possibly comma-separated, string.
type CreateTransactionRequest struct {
	AccountID   string            `json:"account_id" form:"account_id"`
	Amount      types.FlexFloat   `json:"amount" form:"amount"`
	Date        string            `json:"date" form:"date"`
	Description string            `json:"description" form:"description"`
	Tags        types.FlexStrings `json:"tags" form:"tags"`
}

// ListAccounts handles GET /api/accounts
// @Summary List accounts
// @Tags Finance
// @Produce json
// @Success 200 {array} models.Account
// @Router /accounts [get]
func (h *FinanceHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.Store.ListAccounts(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(accounts)
}

// AddAccount handles POST /api/accounts
// @Summary Create an account
// @Tags Finance
// @Accept json
// @Produce json
// @Param account body AddAccountRequest true "Account"
// @Success 201 {object} models.Account
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /accounts [post]
func (h *FinanceHandler) AddAccount(c *fiber.Ctx) error {
	var req AddAccountRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	account, err := h.Store.AddAccount(c.UserContext(), req.Name, req.Balance.Float64(), req.Type)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}

// GetAccount handles GET /api/accounts/:id
// @Summary Get an account
// @Tags Finance
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /accounts/{id} [get]
func (h *FinanceHandler) GetAccount(c *fiber.Ctx) error {
	account, err := h.Store.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(account)
}

// DeleteAccount handles DELETE /api/accounts/:id
// @Summary Delete an account with its transactions
// @Tags Finance
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /accounts/{id} [delete]
func (h *FinanceHandler) DeleteAccount(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Store.DeleteAccount(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return utils.MutationSuccessResponse(c, id)
}

// ListAccountTransactions handles GET /api/accounts/:id/transactions
// @Summary List the transactions of an account
// @Tags Finance
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {array} models.Transaction
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /accounts/{id}/transactions [get]
func (h *FinanceHandler) ListAccountTransactions(c *fiber.Ctx) error {
	txns, err := h.Store.ListTransactionsByAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(txns)
}

// ListTransactions handles GET /api/transactions
// @Summary List transactions with their tags
// @Tags Finance
// @Produce json
// @Success 200 {array} models.Transaction
// @Router /transactions [get]
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	txns, err := h.Store.ListTransactions(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(txns)
}

// CreateTransaction handles POST /api/transactions
// @Summary Record a transaction
// @Description Decrements the account balance by amount and links the tags, all at once.
// @Tags Finance
// @Accept json
// @Produce json
// @Param transaction body CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /transactions [post]
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var req CreateTransactionRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return fail(c, err)
	}

	txn, err := h.Store.CreateTransaction(c.UserContext(), req.AccountID, req.Amount.Float64(), date, req.Description, req.Tags.Slice())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(txn)
}

// GetTransaction handles GET /api/transactions/:id
// @Summary Get a transaction with its tags
// @Tags Finance
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.Transaction
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /transactions/{id} [get]
func (h *FinanceHandler) GetTransaction(c *fiber.Ctx) error {
	txn, err := h.Store.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(txn)
}

// ListTags handles GET /api/tags
// @Summary List tags by name
// @Tags Finance
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h *FinanceHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.Store.ListTags(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tags)
}
