// Package testutils runs the full HTTP stack over an in-memory database for
// handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/farmledger/infra/provider/otp"
	"github.com/amirasaad/farmledger/pkg/app"
	"github.com/amirasaad/farmledger/pkg/config"
	dbutils "github.com/amirasaad/farmledger/pkg/testutils"
	"github.com/amirasaad/farmledger/webapi"
	"github.com/amirasaad/farmledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// OTPCode is the code the mock provider accepts.
const OTPCode = "123456"

// NewConfig returns a configuration suitable for tests.
func NewConfig() *config.App {
	return &config.App{
		Env:    "test",
		Server: &config.Server{Scheme: "http", Host: "localhost", Port: 3000},
		Log:    &config.Log{Format: "text"},
		DB:     &config.DB{Driver: config.DriverSQLite},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "test-secret",
			Expiry: time.Hour,
		}},
		OTP: &config.OTP{Provider: config.OTPProviderMock, MockCode: OTPCode},
		RateLimit: &config.RateLimit{
			MaxRequests: 10000,
			Window:      time.Minute,
		},
		CropDeletePolicy: config.CropDeleteOrphan,
	}
}

// E2ETestSuite starts every test with a fresh migrated SQLite database and a
// Fiber app wired with the mock OTP provider.
type E2ETestSuite struct {
	suite.Suite
	Cfg *config.App
	App *app.App
	DB  *gorm.DB
	Web *fiber.App
}

// SetupTest builds the app. Suites can set Cfg before it runs.
func (s *E2ETestSuite) SetupTest() {
	if s.Cfg == nil {
		s.Cfg = NewConfig()
	}
	uow, db := dbutils.NewSQLiteUoW(s.T())
	logger := dbutils.Logger()
	s.DB = db
	s.App = app.New(&app.Deps{
		Uow:    uow,
		OTP:    otp.NewMock(OTPCode, logger),
		Logger: logger,
	}, s.Cfg)
	s.Web = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Web.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a JSON body into v and closes it.
func (s *E2ETestSuite) Decode(resp *http.Response, v any) {
	defer resp.Body.Close() //nolint:errcheck
	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Require().NoError(json.Unmarshal(b, v), string(b))
}

// Envelope decodes a success envelope.
func (s *E2ETestSuite) Envelope(resp *http.Response) common.Response {
	var out common.Response
	s.Decode(resp, &out)
	return out
}

// Problem decodes an error envelope.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	var out common.ProblemDetails
	s.Decode(resp, &out)
	return out
}

// LoginUser runs the OTP flow for phone and returns the JWT token.
func (s *E2ETestSuite) LoginUser(phone string) string {
	resp := s.MakeRequest(http.MethodPost, "/api/auth/send-otp", fmt.Sprintf(`{"phone":%q}`, phone), "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var sent struct {
		SessionID string `json:"sessionId"`
	}
	s.Decode(resp, &sent)

	body := fmt.Sprintf(`{"phone":%q,"otp":%q,"sessionId":%q}`, phone, OTPCode, sent.SessionID)
	resp = s.MakeRequest(http.MethodPost, "/api/auth/verify-otp", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	data := s.Data(resp)
	token, _ := data["token"].(string)
	s.Require().NotEmpty(token, "no token in login response")
	return token
}

// Data decodes a success envelope and returns its data object.
func (s *E2ETestSuite) Data(resp *http.Response) map[string]any {
	env := s.Envelope(resp)
	s.Require().True(env.Success)
	data, ok := env.Data.(map[string]any)
	s.Require().True(ok, "data is %T", env.Data)
	return data
}

// CreateCrop posts body to /api/crops and returns the new crop id.
func (s *E2ETestSuite) CreateCrop(token, body string) string {
	resp := s.MakeRequest(http.MethodPost, "/api/crops", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	id, _ := s.Data(resp)["id"].(string)
	s.Require().NotEmpty(id)
	return id
}
