package main_test

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"testing"

	"github.com/amirasaad/farmledger/webapi/testutils"
	"github.com/stretchr/testify/suite"
)

// TestMain runs before any tests and applies globally for all tests in the package.
func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)

	exitVal := m.Run()
	os.Exit(exitVal)
}

type MainTestSuite struct {
	testutils.E2ETestSuite
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}

func (s *MainTestSuite) TestHealthRoute() {
	resp := s.MakeRequest(http.MethodGet, "/health", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *MainTestSuite) TestProtectedRoute_Unauthorized() {
	for _, path := range []string{"/api/crops", "/api/expenses", "/api/income", "/api/profile/me"} {
		resp := s.MakeRequest(http.MethodGet, path, "", "")
		s.Equal(http.StatusUnauthorized, resp.StatusCode, path)
		_ = resp.Body.Close()
	}
}

func (s *MainTestSuite) TestNotFoundRoute() {
	resp := s.MakeRequest(http.MethodGet, "/doesnotexist", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *MainTestSuite) TestSendOTP_BadRequest() {
	resp := s.MakeRequest(http.MethodPost, "/api/auth/send-otp", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *MainTestSuite) TestFullFlow() {
	token := s.LoginUser("9876543210")
	cropID := s.CreateCrop(token, `{"season":"Summer","year":2025,"cropName":"Groundnut","area":1.5}`)

	resp := s.MakeRequest(http.MethodGet, "/api/crops/"+cropID, "", token)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Groundnut", s.Data(resp)["cropName"])

	resp = s.MakeRequest(http.MethodGet, "/api/crops/report?year=2025", "", token)
	s.Equal(http.StatusOK, resp.StatusCode)
	summary, _ := s.Data(resp)["summary"].(map[string]any)
	s.Equal(0.0, summary["netProfit"])
}
