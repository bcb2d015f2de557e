package auth_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/farmledger/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	testutils.E2ETestSuite
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestSendOTP_InvalidPhone() {
	for _, body := range []string{`{"phone":"12345"}`, `{}`, `not json`} {
		resp := s.MakeRequest(http.MethodPost, "/api/auth/send-otp", body, "")
		s.Equal(fiber.StatusBadRequest, resp.StatusCode, body)
		pd := s.Problem(resp)
		s.False(pd.Success)
		s.Equal("Valid 10-digit phone required", pd.Message, body)
	}
}

func (s *AuthTestSuite) TestSendOTP() {
	resp := s.MakeRequest(http.MethodPost, "/api/auth/send-otp", `{"phone":"9876543210"}`, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var body struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	s.Decode(resp, &body)
	s.True(body.Success)
	s.Equal("OTP sent successfully", body.Message)
	s.NotEmpty(body.SessionID)
}

func (s *AuthTestSuite) TestVerifyOTP_MissingFields() {
	resp := s.MakeRequest(http.MethodPost, "/api/auth/verify-otp", `{"phone":"9876543210"}`, "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("phone, otp, and sessionId are required", s.Problem(resp).Message)
}

func (s *AuthTestSuite) TestVerifyOTP_WrongCode() {
	body := fmt.Sprintf(`{"phone":"9876543210","otp":"000000","sessionId":%q}`, "no-such-session")
	resp := s.MakeRequest(http.MethodPost, "/api/auth/verify-otp", body, "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	pd := s.Problem(resp)
	s.Equal("Invalid or expired OTP", pd.Message)
	s.Require().Len(pd.Errors, 1)
	s.Equal("otp", pd.Errors[0].Field)
}

func (s *AuthTestSuite) TestLoginAndMe() {
	token := s.LoginUser("9876543210")

	resp := s.MakeRequest(http.MethodGet, "/api/auth/me", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Data(resp)
	s.Equal("9876543210", data["phone"])
	s.Equal("farmer", data["role"])
	s.Equal(false, data["isProfileCompleted"])
	s.Nil(data["analyticsConsent"])
}

func (s *AuthTestSuite) TestSecondLoginIsNotNew() {
	s.LoginUser("9876543210")

	resp := s.MakeRequest(http.MethodPost, "/api/auth/send-otp", `{"phone":"9876543210"}`, "")
	var sent struct {
		SessionID string `json:"sessionId"`
	}
	s.Decode(resp, &sent)
	body := fmt.Sprintf(`{"phone":"9876543210","otp":%q,"sessionId":%q}`, testutils.OTPCode, sent.SessionID)
	resp = s.MakeRequest(http.MethodPost, "/api/auth/verify-otp", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	env := s.Envelope(resp)
	s.Equal("Login successful", env.Message)
	data, _ := env.Data.(map[string]any)
	s.Equal(false, data["isNewUser"])
}

func (s *AuthTestSuite) TestConsentOnce() {
	token := s.LoginUser("9876543210")

	resp := s.MakeRequest(http.MethodPost, "/api/auth/consent", `{"consent":true}`, token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	env := s.Envelope(resp)
	s.Equal("Consent saved", env.Message)

	resp = s.MakeRequest(http.MethodPost, "/api/auth/consent", `{"consent":false}`, token)
	s.Equal(fiber.StatusConflict, resp.StatusCode)
	s.Equal("Consent already recorded", s.Problem(resp).Message)
}

func (s *AuthTestSuite) TestConsentRequiresBoolean() {
	token := s.LoginUser("9876543210")
	resp := s.MakeRequest(http.MethodPost, "/api/auth/consent", `{}`, token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("consent must be true or false", s.Problem(resp).Message)
}

func (s *AuthTestSuite) TestProtectedRoutesNeedToken() {
	resp := s.MakeRequest(http.MethodGet, "/api/auth/me", "", "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("Missing or malformed token", s.Problem(resp).Message)

	resp = s.MakeRequest(http.MethodGet, "/api/auth/me", "", "not.a.jwt")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	s.Equal("Invalid or expired token", s.Problem(resp).Message)
}
