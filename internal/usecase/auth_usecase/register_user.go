package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"
)

type RegisterUserInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Consent  bool
}

var ErrEmailAlreadyExists = usecase.NewAppError(usecase.KindConflict, "email already registered")

type RegisterUserUsecase struct {
	userRepo repository.UserRepository
	hasher   usecase.PasswordHasher
}

func NewRegisterUserUsecase(userRepo repository.UserRepository, hasher usecase.PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{userRepo: userRepo, hasher: hasher}
}

// Execute creates a CLIENT account. Self-registration never grants ADMIN.
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (model.User, error) {
	if !in.Consent {
		return model.User{}, usecase.Validation("consent is required")
	}
	email, err := usecase.NormalizeEmail(in.Email)
	if err != nil {
		return model.User{}, err
	}
	if len(in.Password) < 6 {
		return model.User{}, usecase.Validation("password must have at least 6 characters")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.User{}, usecase.Validation("name is required")
	}
	if !isPhone(in.Phone) {
		return model.User{}, usecase.Validation("phone must have 11 digits")
	}

	_, err = u.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return model.User{}, ErrEmailAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, &usecase.AppError{Kind: usecase.KindTransactionFailed, Message: "register failed", Err: err}
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, &usecase.AppError{Kind: usecase.KindTransactionFailed, Message: "register failed", Err: err}
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleClient,
		Name:         name,
		Phone:        in.Phone,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		//lost the race against a concurrent signup
		if errors.Is(err, repository.ErrConflict) {
			return model.User{}, ErrEmailAlreadyExists
		}
		return model.User{}, &usecase.AppError{Kind: usecase.KindTransactionFailed, Message: "register failed", Err: err}
	}
	return *user, nil
}

func isPhone(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
