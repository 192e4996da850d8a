package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginUser struct {
	ID   int64      `json:"id"`
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresIn int       `json:"expires_in"`
	User      LoginUser `json:"user"`
}

// wrong email and wrong password look the same to the caller
var ErrInvalidCredentials = usecase.NewAppError(usecase.KindUnauthorized, "invalid credentials")

type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email, err := usecase.NormalizeEmail(in.Email)
	if err != nil || in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginOutput{}, ErrInvalidCredentials
	}
	if err != nil {
		slog.ErrorContext(ctx, "login lookup failed", "error", err)
		return LoginOutput{}, &usecase.AppError{Kind: usecase.KindTransactionFailed, Message: "login failed", Err: err}
	}

	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, &usecase.AppError{Kind: usecase.KindTransactionFailed, Message: "issue token failed", Err: err}
	}

	return LoginOutput{
		Token:     token,
		ExpiresIn: int(exp.Sub(now).Seconds()),
		User:      LoginUser{ID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}
