package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/provider"
	"github.com/amirasaad/farmledger/pkg/utils"
)

const statusSuccess = "Success"

// TwoFactor sends and verifies codes through the 2factor.in SMS API.
type TwoFactor struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// twoFactorResponse is the body of every 2factor.in reply.
// Example: {"Status":"Success","Details":"7f1c..."}
type twoFactorResponse struct {
	Status  string `json:"Status"`
	Details string `json:"Details"`
}

// NewTwoFactor creates a 2factor.in provider from config.
func NewTwoFactor(cfg *config.OTP, logger *slog.Logger) *TwoFactor {
	return &TwoFactor{
		apiKey:  cfg.ApiKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

func (p *TwoFactor) Name() string { return config.OTPProviderTwoFactor }

// SendCode requests an auto-generated code for phone.
func (p *TwoFactor) SendCode(ctx context.Context, phone string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/SMS/%s/AUTOGEN",
		p.baseURL, url.PathEscape(p.apiKey), url.PathEscape(phone))
	p.logger.Info("Sending OTP", "provider", p.Name(), "phone", utils.MaskPhone(phone))

	resp, err := p.get(ctx, endpoint)
	if err != nil {
		return "", err
	}
	if resp.Status != statusSuccess || resp.Details == "" {
		return "", fmt.Errorf("%w: otp provider returned status=%s: %s",
			domain.ErrUpstream, resp.Status, resp.Details)
	}
	return resp.Details, nil
}

// VerifyCode checks code against the session created by SendCode.
func (p *TwoFactor) VerifyCode(ctx context.Context, sessionID, code string) (bool, error) {
	endpoint := fmt.Sprintf("%s/%s/SMS/VERIFY/%s/%s",
		p.baseURL, url.PathEscape(p.apiKey), url.PathEscape(sessionID), url.PathEscape(code))

	resp, err := p.get(ctx, endpoint)
	if err != nil {
		return false, err
	}
	return resp.Status == statusSuccess, nil
}

// get performs the request and decodes the body. A mismatched code comes
// back as a 400 that still carries a JSON body, so decodable 4xx replies are
// returned as responses.
func (p *TwoFactor) get(ctx context.Context, endpoint string) (*twoFactorResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reach otp provider: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstream, err)
	}

	var apiResp twoFactorResponse
	if err := json.Unmarshal(body, &apiResp); err != nil || apiResp.Status == "" {
		return nil, fmt.Errorf("%w: otp provider returned status %d: %s",
			domain.ErrUpstream, resp.StatusCode, string(body))
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: otp provider returned status %d: %s",
			domain.ErrUpstream, resp.StatusCode, apiResp.Details)
	}
	return &apiResp, nil
}

var _ provider.OTP = (*TwoFactor)(nil)
