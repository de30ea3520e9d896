package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bankdemo/bank-api/internal/core/ports"
)

type AccountHandler struct {
	accountService ports.AccountService
}

func NewAccountHandler(accountService ports.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Get returns the caller's own bank account.
//
// @Summary      Own account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.BankAccount
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/v2/account [get]
// @Router       /testing/api/v2/account [get]
func (h *AccountHandler) Get(c echo.Context) error {
	name, err := callerName(c)
	if err != nil {
		return err
	}

	account, err := h.accountService.GetOwnAccount(c.Request().Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// List returns every account. Auditors only.
//
// @Summary      All accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.BankAccount
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/v2/accounts [get]
// @Router       /testing/api/v2/accounts [get]
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.accountService.ListAccounts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
