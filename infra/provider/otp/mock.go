package otp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/provider"
	"github.com/amirasaad/farmledger/pkg/utils"
	"github.com/google/uuid"
)

// Mock accepts a single fixed code for every session it issued. It is meant
// for local development and tests.
type Mock struct {
	code     string
	logger   *slog.Logger
	mu       sync.Mutex
	sessions map[string]string
}

// NewMock returns a mock provider that accepts code.
func NewMock(code string, logger *slog.Logger) *Mock {
	return &Mock{
		code:     code,
		logger:   logger,
		sessions: make(map[string]string),
	}
}

func (m *Mock) Name() string { return config.OTPProviderMock }

func (m *Mock) SendCode(_ context.Context, phone string) (string, error) {
	sessionID := uuid.NewString()
	m.mu.Lock()
	m.sessions[sessionID] = phone
	m.mu.Unlock()
	m.logger.Info("Mock OTP issued", "phone", utils.MaskPhone(phone), "session_id", sessionID)
	return sessionID, nil
}

// VerifyCode consumes the session on success.
func (m *Mock) VerifyCode(_ context.Context, sessionID, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok || code != m.code {
		return false, nil
	}
	delete(m.sessions, sessionID)
	return true, nil
}

var _ provider.OTP = (*Mock)(nil)
