// Package atm exposes the balance and withdrawal operations over HTTP.
package atm

import (
	"context"

	domainatm "github.com/amirasaad/atm/pkg/domain/atm"
	atmsvc "github.com/amirasaad/atm/pkg/service/atm"
	"github.com/amirasaad/atm/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Service is the part of the ATM service the handlers call.
type Service interface {
	GetLocalBalances(ctx context.Context, clientID int64) (*domainatm.Response, error)
	GetForeignBalances(ctx context.Context, clientID int64) (*domainatm.Response, error)
	Withdraw(ctx context.Context, req atmsvc.WithdrawRequest) (*domainatm.Response, error)
}

// Routes registers the ATM endpoints on router. Every middleware in protect runs first.
func Routes(router fiber.Router, svc Service, protect ...fiber.Handler) {
	handlers := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, protect...), h)
	}
	router.Get("/queryTransactionalBalances", handlers(QueryTransactionalBalances(svc))...)
	router.Get("/queryCcyBalances", handlers(QueryCcyBalances(svc))...)
	router.Post("/withdraw", handlers(Withdraw(svc))...)
}

// QueryTransactionalBalances returns a fiber handler listing transactional accounts.
// @Summary List transactional account balances
// @Description Transactional accounts of a client, highest reference balance first.
// @Tags atm
// @Produce json
// @Param clientId query int true "Client id"
// @Success 200 {object} domainatm.Response
// @Failure 400 {object} domainatm.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /queryTransactionalBalances [get]
// @Security BearerAuth
func QueryTransactionalBalances(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.GetLocalBalances(c.UserContext(), parseInt(c.Query("clientId")))
		return respond(c, resp, err)
	}
}

// QueryCcyBalances returns a fiber handler listing foreign currency accounts.
// @Summary List foreign currency account balances
// @Description Foreign currency accounts of a client, lowest reference balance first.
// @Tags atm
// @Produce json
// @Param clientId query int true "Client id"
// @Success 200 {object} domainatm.Response
// @Failure 400 {object} domainatm.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /queryCcyBalances [get]
// @Security BearerAuth
func QueryCcyBalances(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp, err := svc.GetForeignBalances(c.UserContext(), parseInt(c.Query("clientId")))
		return respond(c, resp, err)
	}
}

// Withdraw returns a fiber handler dispensing cash from an ATM.
// Parameters are read from the JSON body, or from the query string when the body is empty.
// @Summary Withdraw cash
// @Tags atm
// @Accept json
// @Produce json
// @Param request body WithdrawRequest false "Withdrawal"
// @Success 200 {object} domainatm.Response
// @Failure 400 {object} domainatm.Response
// @Failure 500 {object} common.ProblemDetails
// @Router /withdraw [post]
// @Security BearerAuth
func Withdraw(svc Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input WithdrawRequest
		if len(c.Body()) == 0 {
			input = WithdrawRequest{
				ClientID:       LooseInt(parseInt(c.Query("clientId"))),
				AtmID:          LooseInt(parseInt(c.Query("atmId"))),
				AccountNumber:  c.Query("accountNumber"),
				RequiredAmount: LooseDecimal{parseDecimal(c.Query("requiredAmount"))},
			}
		} else {
			body, err := common.BindAndValidate[WithdrawRequest](c)
			if err != nil {
				return nil
			}
			input = *body
		}
		resp, err := svc.Withdraw(c.UserContext(), input.toService())
		return respond(c, resp, err)
	}
}

var errInternal = fiber.NewError(fiber.StatusInternalServerError, "the request could not be completed")

// respond writes the envelope with its own status code. Faults never leak their cause.
func respond(c *fiber.Ctx, resp *domainatm.Response, err error) error {
	if err != nil || resp == nil {
		return common.ProblemDetailsJSON(c, "Internal Server Error", errInternal)
	}
	return c.Status(resp.Result.StatusCode).JSON(resp)
}
