package services

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/domain/account"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/internal/infrastructure/jwt"
	"mds-registry-api/internal/infrastructure/metrics"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	accounts   account.Repository
	jwtService *jwt.Service
	tokenTTL   time.Duration
	mCounter   *prometheus.CounterVec
}

func NewAuthService(
	accounts account.Repository,
	jwtService *jwt.Service,
	tokenTTL time.Duration,
	mCounter *prometheus.CounterVec,
) ports.Auth {
	return &AuthService{
		accounts:   accounts,
		jwtService: jwtService,
		tokenTTL:   tokenTTL,
		mCounter:   mCounter,
	}
}

// Login does not tell an unknown username apart from a wrong password.
func (as *AuthService) Login(ctx context.Context, username, password string) (string, *account.Account, error) {
	a, err := as.accounts.FetchAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			as.mCounter.WithLabelValues(metrics.LoginFailures).Inc()
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		as.mCounter.WithLabelValues(metrics.LoginFailures).Inc()
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(a.ID, a.Username, a.Role, as.tokenTTL)
	if err != nil {
		return "", nil, ErrFailedToGenerateToken
	}

	return token, a, nil
}
