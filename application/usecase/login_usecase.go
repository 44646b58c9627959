package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/application/port/outbound"
	"github.com/clubly/clubly/domain/entity"
	apperror "github.com/clubly/clubly/domain/error"
)

// LoginUseCase verifies credentials and mints the access token that the
// auth middleware later decodes into an ActorContext. Failed attempts
// count against a per-email rate limit.
type LoginUseCase struct {
	userRepo        outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	rateLimiter     outbound.LoginRateLimiter
	accessTokenTTL  time.Duration
}

func NewLoginUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	rateLimiter outbound.LoginRateLimiter,
	accessTokenTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:        userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		rateLimiter:     rateLimiter,
		accessTokenTTL:  accessTokenTTL,
	}
}

func (uc *LoginUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, apperror.ErrInvalidRequest("email and password are required")
	}

	blocked, err := uc.rateLimiter.IsBlocked(ctx, email)
	if err == nil && blocked {
		return nil, apperror.ErrTooManyAttempts(email)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		uc.registerFailure(ctx, email)
		return nil, apperror.ErrInvalidCredentials("")
	}

	if err := uc.passwordService.VerifyPassword(user.Password, req.Password); err != nil {
		uc.registerFailure(ctx, email)
		return nil, apperror.ErrInvalidCredentials("")
	}

	if user.Status == entity.AccountStatusSuspended {
		return nil, apperror.ErrAccountSuspended(user.ID)
	}

	accessToken, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		ActorID:          user.ID,
		Role:             user.Role,
		AuthenticatedVia: "password",
	})
	if err != nil {
		return nil, err
	}

	// Best effort: a limiter hiccup must not fail a valid login.
	_ = uc.rateLimiter.Reset(ctx, email)

	return &inbound.LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   int(uc.accessTokenTTL.Seconds()),
	}, nil
}

func (uc *LoginUseCase) registerFailure(ctx context.Context, email string) {
	_ = uc.rateLimiter.RegisterFailure(ctx, email)
}
