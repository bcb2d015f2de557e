package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/farmledger/pkg/config"
	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/amirasaad/farmledger/pkg/provider"
	"github.com/amirasaad/farmledger/pkg/repository"
	userrepo "github.com/amirasaad/farmledger/pkg/repository/user"
	"github.com/amirasaad/farmledger/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidOTP is returned when the provider rejects a code.
var ErrInvalidOTP = &domain.ValidationError{Field: "otp", Message: "Invalid or expired OTP"}

// Service handles OTP login, token issuing and consent.
type Service struct {
	uow    repository.UnitOfWork
	otp    provider.OTP
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth Service.
func New(
	uow repository.UnitOfWork,
	otp provider.OTP,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, otp: otp, cfg: cfg, logger: logger}
}

// SendOTP asks the provider to text a code to phone.
func (s *Service) SendOTP(
	ctx context.Context,
	phone string,
) (sessionID string, err error) {
	log := s.logger.With("context", "SendOTP", "phone", utils.MaskPhone(phone))
	if err = user.ValidatePhone(phone); err != nil {
		return "", err
	}
	sessionID, err = s.otp.SendCode(ctx, phone)
	if err != nil {
		log.Error("OTP provider failed", "provider", s.otp.Name(), "error", err)
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return "", err
	}
	log.Info("OTP sent")
	return sessionID, nil
}

// VerifyOTP checks the code, finds or creates the user for phone and issues
// a token.
func (s *Service) VerifyOTP(
	ctx context.Context,
	phone, code, sessionID string,
) (result *dto.LoginResult, err error) {
	log := s.logger.With("context", "VerifyOTP", "phone", utils.MaskPhone(phone))
	if err = user.ValidatePhone(phone); err != nil {
		return nil, err
	}

	ok, err := s.otp.VerifyCode(ctx, sessionID, code)
	if err != nil {
		log.Error("OTP provider failed", "provider", s.otp.Name(), "error", err)
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}
	if !ok {
		log.Warn("OTP rejected")
		return nil, ErrInvalidOTP
	}

	u, isNew, err := s.findOrCreate(ctx, phone)
	if err != nil {
		log.Error("Failed to resolve user", "error", err)
		return nil, err
	}

	token, err := s.GenerateToken(u)
	if err != nil {
		return nil, err
	}
	log.Info("OTP verified", "userID", u.ID, "new_user", isNew)
	return &dto.LoginResult{
		Token:              token,
		IsNewUser:          isNew,
		IsProfileCompleted: u.IsProfileCompleted,
		ConsentGiven:       u.ConsentGiven(),
	}, nil
}

// findOrCreate reads the user by phone, creating it when absent. A create
// that loses a race on the phone index re-reads the winner's row.
func (s *Service) findOrCreate(
	ctx context.Context,
	phone string,
) (u *user.User, isNew bool, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.GetByPhone(ctx, phone)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		u, err = user.New(phone)
		if err != nil {
			return err
		}
		isNew = true
		return repo.Create(ctx, u)
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		isNew = false
		err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := repository.Get[userrepo.Repository](uow)
			if err != nil {
				return err
			}
			u, err = repo.GetByPhone(ctx, phone)
			return err
		})
	}
	if err != nil {
		u = nil
	}
	return
}

// GenerateToken signs an HS256 token carrying the user id, phone and role.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	log := s.logger.With("userID", u.ID)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID.String(),
		"phone":   u.Phone,
		"role":    u.Role,
		"exp":     time.Now().Add(s.cfg.Expiry).Unix(),
	})
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	return tokenString, nil
}

// GetCurrentUserId extracts the user id from a verified token.
func (s *Service) GetCurrentUserId(
	token *jwt.Token,
) (userID uuid.UUID, err error) {
	log := s.logger.With("context", "GetCurrentUserId")
	if token == nil {
		log.Error("GetCurrentUserId failed", "error", user.ErrUserUnauthorized)
		return uuid.Nil, user.ErrUserUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		log.Error("GetCurrentUserId failed", "error", user.ErrUserUnauthorized)
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userIDRaw, ok := claims["user_id"].(string)
	if !ok {
		log.Error("GetCurrentUserId failed", "error", user.ErrUserUnauthorized)
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userID, err = uuid.Parse(userIDRaw)
	if err != nil {
		log.Error("GetCurrentUserId failed", "error", err)
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return userID, nil
}

// Me returns the user behind userID.
func (s *Service) Me(
	ctx context.Context,
	userID uuid.UUID,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		return err
	})
	if err != nil {
		u = nil
	}
	return
}

// RecordConsent stores the analytics choice. It can be made only once.
func (s *Service) RecordConsent(
	ctx context.Context,
	userID uuid.UUID,
	consent bool,
) (u *user.User, err error) {
	log := s.logger.With("context", "RecordConsent", "userID", userID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := repository.Get[userrepo.Repository](uow)
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		if err = u.RecordConsent(consent); err != nil {
			return err
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		log.Warn("Consent not recorded", "error", err)
		u = nil
		return
	}
	log.Info("Consent recorded", "consent", consent)
	return
}
