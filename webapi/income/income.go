package income

import (
	"errors"
	"strings"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authsvc "github.com/amirasaad/farmledger/pkg/service/auth"
	incomesvc "github.com/amirasaad/farmledger/pkg/service/income"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	incomeSvc *incomesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	group := app.Group("/api/income", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Post("/", Create(incomeSvc, authSvc))
	group.Get("/", List(incomeSvc, authSvc))
	group.Get("/summary", Summary(incomeSvc, authSvc))
	group.Get("/:id", Get(incomeSvc, authSvc))
	group.Put("/:id", Update(incomeSvc, authSvc))
	group.Delete("/:id", Delete(incomeSvc, authSvc))
}

// Create records an income.
// @Summary Create income
// @Description Record an income, optionally linked to a crop. The amount is derived for crop sales and rentals.
// @Tags income
// @Accept json
// @Produce json
// @Param request body dto.IncomeCreate true "Income"
// @Success 201 {object} common.Response{data=dto.IncomeRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/income [post]
// @Security Bearer
func Create(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.IncomeCreate](c)
		if input == nil {
			return err
		}
		e, err := incomeSvc.Create(c.UserContext(), userID, input)
		if err != nil {
			return fail(c, err, "Income not created")
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "", dto.NewIncomeRead(e))
	}
}

// List returns a page of the caller's incomes, latest first.
// @Summary List income
// @Tags income
// @Produce json
// @Param year query int false "Calendar year of the income date"
// @Param cropId query string false "Crop ID"
// @Param category query string false "Category"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} common.Response{data=[]dto.IncomeRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/income [get]
// @Security Bearer
func List(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		cropID, err := common.QueryUUID(c, "cropId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid cropId", err)
		}
		year, ok := common.QueryInt(c, "year")
		if !ok {
			return common.ProblemDetailsJSON(c, "year must be a number", domain.Invalid("year", "year must be a number"))
		}
		page, err := common.Page(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid pagination", err)
		}
		filter := dto.IncomeFilter{
			Year:     year,
			CropID:   cropID,
			Category: strings.TrimSpace(c.Query("category")),
		}
		result, err := incomeSvc.List(c.UserContext(), userID, filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list income", err)
		}
		items := make([]*dto.IncomeRead, 0, len(result.Items))
		for _, e := range result.Items {
			items = append(items, dto.NewIncomeRead(e))
		}
		return common.PageResponseJSON(c, items, result.Pagination)
	}
}

// Summary totals income per category.
// @Summary Income summary
// @Description Totals per category for one year, or for every year when year is omitted.
// @Tags income
// @Produce json
// @Param year query int false "Year"
// @Success 200 {object} common.Response{data=dto.IncomeSummary}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/income/summary [get]
// @Security Bearer
func Summary(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		year, ok := common.QueryInt(c, "year")
		if !ok {
			return common.ProblemDetailsJSON(c, "year must be a number", domain.Invalid("year", "year must be a number"))
		}
		summary, err := incomeSvc.Summary(c.UserContext(), userID, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to summarize income", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", summary)
	}
}

// @Summary Get income
// @Tags income
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response{data=dto.IncomeRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/income/{id} [get]
// @Security Bearer
func Get(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, income.ErrIncomeNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		e, err := incomeSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return fail(c, err, "Failed to get income")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewIncomeRead(e))
	}
}

// Update patches an income. Sending an empty cropId detaches it from its crop.
// @Summary Update income
// @Tags income
// @Accept json
// @Produce json
// @Param id path string true "Income ID"
// @Param request body dto.IncomeUpdate true "Fields to change"
// @Success 200 {object} common.Response{data=dto.IncomeRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/income/{id} [put]
// @Security Bearer
func Update(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, income.ErrIncomeNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		input, err := common.BindAndValidate[dto.IncomeUpdate](c)
		if input == nil {
			return err
		}
		e, err := incomeSvc.Update(c.UserContext(), userID, id, input)
		if err != nil {
			return fail(c, err, "Income not updated")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewIncomeRead(e))
	}
}

// @Summary Delete income
// @Tags income
// @Produce json
// @Param id path string true "Income ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/income/{id} [delete]
// @Security Bearer
func Delete(incomeSvc *incomesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, income.ErrIncomeNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		if err := incomeSvc.Delete(c.UserContext(), userID, id); err != nil {
			return fail(c, err, "Income not deleted")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Income deleted successfully.", nil)
	}
}

func fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, income.ErrIncomeNotFound):
		message = "Income not found."
	case errors.Is(err, crop.ErrCropNotFound):
		message = "Crop not found."
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		message = "No valid fields to update."
	}
	return common.ProblemDetailsJSON(c, message, err)
}
