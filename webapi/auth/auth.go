package auth

import (
	"errors"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/middleware"
	authsvc "github.com/amirasaad/farmledger/pkg/service/auth"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	group := app.Group("/api/auth")
	group.Post("/send-otp", SendOTP(authSvc))
	group.Post("/verify-otp", VerifyOTP(authSvc))
	group.Post("/consent", middleware.JwtProtected(cfg.Auth.Jwt), Consent(authSvc))
	group.Get("/me", middleware.JwtProtected(cfg.Auth.Jwt), Me(authSvc))
}

// SendOTPResponse is the payload of a sent code.
type SendOTPResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// SendOTP texts a one-time code to the phone.
// @Summary Send OTP
// @Description Ask the OTP provider to send a code to a 10-digit phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendOTP true "Phone number"
// @Success 200 {object} SendOTPResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 429 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/auth/send-otp [post]
func SendOTP(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.SendOTP](c)
		if input == nil {
			return err
		}
		sessionID, err := authSvc.SendOTP(c.UserContext(), input.Phone)
		if err != nil {
			return common.ProblemDetailsJSON(c, "OTP send failed", err)
		}
		return c.JSON(SendOTPResponse{
			Success:   true,
			Message:   "OTP sent successfully",
			SessionID: sessionID,
		})
	}
}

// VerifyOTP checks the code and logs the user in.
// @Summary Verify OTP
// @Description Verify the code, create the user on first login and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTP true "Phone, code and session"
// @Success 200 {object} common.Response{data=dto.LoginResult}
// @Failure 400 {object} common.ProblemDetails
// @Failure 502 {object} common.ProblemDetails
// @Router /api/auth/verify-otp [post]
func VerifyOTP(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.VerifyOTP](c)
		if input == nil {
			return err
		}
		result, err := authSvc.VerifyOTP(c.UserContext(), input.Phone, input.OTP, input.SessionID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "OTP verify failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", result)
	}
}

// Consent records the analytics consent answer.
// @Summary Record analytics consent
// @Description Store the one-time analytics consent answer
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.Consent true "Consent"
// @Success 200 {object} common.Response{data=user.User}
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/auth/consent [post]
// @Security Bearer
func Consent(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[dto.Consent](c)
		if input == nil {
			return err
		}
		u, err := authSvc.RecordConsent(c.UserContext(), userID, *input.Consent)
		if err != nil {
			message := "Consent save error"
			if errors.Is(err, user.ErrConsentAlreadyRecorded) {
				message = "Consent already recorded"
			}
			return common.ProblemDetailsJSON(c, message, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Consent saved", u)
	}
}

// Me returns the signed-in user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response{data=user.User}
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/auth/me [get]
// @Security Bearer
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := authSvc.Me(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "", u)
	}
}
