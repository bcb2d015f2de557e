package expense

import (
	"errors"
	"strings"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authsvc "github.com/amirasaad/farmledger/pkg/service/auth"
	expensesvc "github.com/amirasaad/farmledger/pkg/service/expense"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	expenseSvc *expensesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	group := app.Group("/api/expenses", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Post("/", Create(expenseSvc, authSvc))
	group.Get("/", List(expenseSvc, authSvc))
	group.Get("/:id", Get(expenseSvc, authSvc))
	group.Put("/:id", Update(expenseSvc, authSvc))
	group.Delete("/:id", Delete(expenseSvc, authSvc))
}

// Create records an expense.
// @Summary Create expense
// @Description Record an expense against a crop. Derived totals are computed server side.
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.ExpenseCreate true "Expense"
// @Success 201 {object} common.Response{data=dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/expenses [post]
// @Security Bearer
func Create(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.ExpenseCreate](c)
		if input == nil {
			return err
		}
		e, err := expenseSvc.Create(c.UserContext(), userID, input)
		if err != nil {
			return fail(c, err, "Expense not created")
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "", dto.NewExpenseRead(e))
	}
}

// List returns a page of the caller's expenses.
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Param cropId query string false "Crop ID"
// @Param category query string false "Category"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} common.Response{data=[]dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/expenses [get]
// @Security Bearer
func List(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		cropID, err := common.QueryUUID(c, "cropId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid cropId", err)
		}
		page, err := common.Page(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid pagination", err)
		}
		filter := dto.ExpenseFilter{
			CropID:   cropID,
			Category: strings.TrimSpace(c.Query("category")),
		}
		result, err := expenseSvc.List(c.UserContext(), userID, filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list expenses", err)
		}
		items := make([]*dto.ExpenseRead, 0, len(result.Items))
		for _, e := range result.Items {
			items = append(items, dto.NewExpenseRead(e))
		}
		return common.PageResponseJSON(c, items, result.Pagination)
	}
}

// Get returns one expense.
// @Summary Get expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} common.Response{data=dto.ExpenseRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/expenses/{id} [get]
// @Security Bearer
func Get(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, expense.ErrExpenseNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		e, err := expenseSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return fail(c, err, "Failed to get expense")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewExpenseRead(e))
	}
}

// Update patches an expense and recomputes its totals.
// @Summary Update expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.ExpenseUpdate true "Fields to change"
// @Success 200 {object} common.Response{data=dto.ExpenseRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/expenses/{id} [put]
// @Security Bearer
func Update(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, expense.ErrExpenseNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		input, err := common.BindAndValidate[dto.ExpenseUpdate](c)
		if input == nil {
			return err
		}
		e, err := expenseSvc.Update(c.UserContext(), userID, id, input)
		if err != nil {
			return fail(c, err, "Expense not updated")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewExpenseRead(e))
	}
}

// Delete removes an expense.
// @Summary Delete expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/expenses/{id} [delete]
// @Security Bearer
func Delete(expenseSvc *expensesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, expense.ErrExpenseNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		if err := expenseSvc.Delete(c.UserContext(), userID, id); err != nil {
			return fail(c, err, "Expense not deleted")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Expense deleted successfully.", nil)
	}
}

func fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, expense.ErrExpenseNotFound):
		message = "Expense not found."
	case errors.Is(err, crop.ErrCropNotFound):
		message = "Crop not found."
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		message = "No valid fields to update."
	}
	return common.ProblemDetailsJSON(c, message, err)
}
