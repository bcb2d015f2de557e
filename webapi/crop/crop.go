package crop

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/export"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authsvc "github.com/amirasaad/farmledger/pkg/service/auth"
	cropsvc "github.com/amirasaad/farmledger/pkg/service/crop"
	reportsvc "github.com/amirasaad/farmledger/pkg/service/report"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	cropSvc *cropsvc.Service,
	reportSvc *reportsvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	group := app.Group("/api/crops", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Post("/", Create(cropSvc, authSvc))
	group.Get("/", List(cropSvc, authSvc))
	group.Get("/years", Years(reportSvc, authSvc))
	group.Get("/report", Report(reportSvc, authSvc))
	group.Get("/report/export", Export(reportSvc, authSvc))
	group.Get("/:id", Get(cropSvc, authSvc))
	group.Put("/:id", Update(cropSvc, authSvc))
	group.Patch("/:id/status", SetStatus(cropSvc, authSvc))
	group.Patch("/:id/harvest", Harvest(cropSvc, authSvc))
	group.Delete("/:id", Delete(cropSvc, authSvc))
}

// Create registers a crop.
// @Summary Create crop
// @Tags crops
// @Accept json
// @Produce json
// @Param request body dto.CropCreate true "Crop"
// @Success 201 {object} common.Response{data=dto.CropRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/crops [post]
// @Security Bearer
func Create(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.CropCreate](c)
		if input == nil {
			return err
		}
		cr, err := cropSvc.Create(c.UserContext(), userID, input)
		if err != nil {
			return fail(c, err, "Crop not created")
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "", dto.NewCropRead(cr))
	}
}

// List returns a page of the caller's crops.
// @Summary List crops
// @Tags crops
// @Produce json
// @Param season query string false "Season"
// @Param status query string false "Status"
// @Param year query int false "Year"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} common.Response{data=[]dto.CropRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/crops [get]
// @Security Bearer
func List(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		year, ok := common.QueryInt(c, "year")
		if !ok {
			return common.ProblemDetailsJSON(c, "year must be a number", domain.Invalid("year", "year must be a number"))
		}
		page, err := common.Page(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid pagination", err)
		}
		filter := dto.CropFilter{
			Season: strings.TrimSpace(c.Query("season")),
			Status: strings.TrimSpace(c.Query("status")),
			Year:   year,
		}
		result, err := cropSvc.List(c.UserContext(), userID, filter, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list crops", err)
		}
		items := make([]*dto.CropRead, 0, len(result.Items))
		for _, cr := range result.Items {
			items = append(items, dto.NewCropRead(cr))
		}
		return common.PageResponseJSON(c, items, result.Pagination)
	}
}

// Years lists the years the caller has crops in.
// @Summary Crop years
// @Tags crops
// @Produce json
// @Success 200 {object} common.Response{data=[]int}
// @Failure 401 {object} common.ProblemDetails
// @Router /api/crops/years [get]
// @Security Bearer
func Years(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		years, err := reportSvc.Years(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list years", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", years)
	}
}

// Report builds the yearly profit report.
// @Summary Yearly report
// @Description Per-crop and per-season income, expense and profit for a year
// @Tags crops
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {object} common.Response{data=dto.YearlyReport}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/crops/report [get]
// @Security Bearer
func Report(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		year, err := reportYear(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "year must be a number", err)
		}
		report, err := reportSvc.Yearly(c.UserContext(), userID, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build report", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", report)
	}
}

// Export downloads the yearly report as a spreadsheet.
// @Summary Export yearly report
// @Tags crops
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Year, defaults to the current year"
// @Success 200 {file} file
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/crops/report/export [get]
// @Security Bearer
func Export(reportSvc *reportsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		year, err := reportYear(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "year must be a number", err)
		}
		report, err := reportSvc.Yearly(c.UserContext(), userID, year)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to build report", err)
		}
		data, err := export.XLSX(report)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to export report", err)
		}
		c.Set(fiber.HeaderContentType, export.ContentType)
		c.Attachment(export.Filename(year))
		return c.Send(data)
	}
}

// Get returns one crop.
// @Summary Get crop
// @Tags crops
// @Produce json
// @Param id path string true "Crop ID"
// @Success 200 {object} common.Response{data=dto.CropRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/crops/{id} [get]
// @Security Bearer
func Get(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, crop.ErrCropNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		cr, err := cropSvc.Get(c.UserContext(), userID, id)
		if err != nil {
			return fail(c, err, "Failed to get crop")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewCropRead(cr))
	}
}

// Update patches a crop.
// @Summary Update crop
// @Tags crops
// @Accept json
// @Produce json
// @Param id path string true "Crop ID"
// @Param request body dto.CropUpdate true "Fields to change"
// @Success 200 {object} common.Response{data=dto.CropRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/crops/{id} [put]
// @Security Bearer
func Update(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, crop.ErrCropNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		input, err := common.BindAndValidate[dto.CropUpdate](c)
		if input == nil {
			return err
		}
		cr, err := cropSvc.Update(c.UserContext(), userID, id, input)
		if err != nil {
			return fail(c, err, "Crop not updated")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewCropRead(cr))
	}
}

// SetStatus changes the crop status.
// @Summary Set crop status
// @Tags crops
// @Accept json
// @Produce json
// @Param id path string true "Crop ID"
// @Param request body dto.CropStatusUpdate true "Status"
// @Success 200 {object} common.Response{data=dto.CropRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/crops/{id}/status [patch]
// @Security Bearer
func SetStatus(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, crop.ErrCropNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		input, err := common.BindAndValidate[dto.CropStatusUpdate](c)
		if input == nil {
			return err
		}
		cr, err := cropSvc.SetStatus(c.UserContext(), userID, id, input.Status)
		if err != nil {
			return fail(c, err, "Status not changed")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewCropRead(cr))
	}
}

// Harvest marks the crop harvested.
// @Summary Mark crop harvested
// @Tags crops
// @Accept json
// @Produce json
// @Param id path string true "Crop ID"
// @Param request body dto.CropHarvest false "Harvest date, defaults to now"
// @Success 200 {object} common.Response{data=dto.CropRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/crops/{id}/harvest [patch]
// @Security Bearer
func Harvest(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, crop.ErrCropNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		var input dto.CropHarvest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return common.ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
			}
		}
		cr, err := cropSvc.Harvest(c.UserContext(), userID, id, input.HarvestDate.Ptr())
		if err != nil {
			return fail(c, err, "Harvest not recorded")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewCropRead(cr))
	}
}

// Delete removes a crop.
// @Summary Delete crop
// @Tags crops
// @Produce json
// @Param id path string true "Crop ID"
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/crops/{id} [delete]
// @Security Bearer
func Delete(cropSvc *cropsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := common.ParamID(c, crop.ErrCropNotFound)
		if err != nil {
			return fail(c, err, "")
		}
		if err := cropSvc.Delete(c.UserContext(), userID, id); err != nil {
			return fail(c, err, "Crop not deleted")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Crop deleted successfully.", nil)
	}
}

func reportYear(c *fiber.Ctx) (int, error) {
	year, ok := common.QueryInt(c, "year")
	if !ok {
		return 0, domain.Invalid("year", "year must be a number")
	}
	if year == nil {
		return time.Now().UTC().Year(), nil
	}
	return *year, nil
}

func fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, crop.ErrCropNotFound):
		message = "Crop not found."
	case errors.Is(err, crop.ErrDuplicateCrop):
		message = "Crop with this name, year and batch label already exists."
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		message = "No valid fields to update."
	}
	return common.ProblemDetailsJSON(c, message, err)
}
