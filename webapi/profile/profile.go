package profile

import (
	"errors"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/profile"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authsvc "github.com/amirasaad/farmledger/pkg/service/auth"
	profilesvc "github.com/amirasaad/farmledger/pkg/service/profile"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(
	app *fiber.App,
	profileSvc *profilesvc.Service,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	group := app.Group("/api/profile", middleware.JwtProtected(cfg.Auth.Jwt))
	group.Post("/complete", Complete(profileSvc, authSvc))
	group.Get("/me", Me(profileSvc, authSvc))
	group.Put("/update", Update(profileSvc, authSvc))
}

// Complete saves the farmer profile once.
// @Summary Complete profile
// @Description Create the farmer profile and mark the user as completed
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.ProfileCreate true "Profile"
// @Success 201 {object} common.Response{data=dto.ProfileRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/profile/complete [post]
// @Security Bearer
func Complete(profileSvc *profilesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.ProfileCreate](c)
		if input == nil {
			return err
		}
		p, err := profileSvc.Complete(c.UserContext(), userID, input)
		if err != nil {
			return fail(c, err, "Profile not saved")
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Profile Saved", dto.NewProfileRead(p))
	}
}

// Me returns the caller's profile.
// @Summary Get my profile
// @Tags profile
// @Produce json
// @Success 200 {object} common.Response{data=dto.ProfileRead}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/profile/me [get]
// @Security Bearer
func Me(profileSvc *profilesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		p, err := profileSvc.Get(c.UserContext(), userID)
		if err != nil {
			return fail(c, err, "Profile not found")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", dto.NewProfileRead(p))
	}
}

// Update patches the caller's profile.
// @Summary Update my profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body dto.ProfileUpdate true "Fields to change"
// @Success 200 {object} common.Response{data=dto.ProfileRead}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/profile/update [put]
// @Security Bearer
func Update(profileSvc *profilesvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.ProfileUpdate](c)
		if input == nil {
			return err
		}
		p, err := profileSvc.Update(c.UserContext(), userID, input)
		if err != nil {
			return fail(c, err, "Profile not updated")
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile Updated", dto.NewProfileRead(p))
	}
}

func fail(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, profile.ErrProfileExists):
		message = "Profile already exists. Use PUT /api/profile/update"
	case errors.Is(err, profile.ErrProfileNotFound):
		message = "Profile not found"
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		message = "No valid fields to update"
	}
	return common.ProblemDetailsJSON(c, message, err)
}
