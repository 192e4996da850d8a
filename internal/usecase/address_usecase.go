package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
)

type AddressInput struct {
	Street   string
	Number   string
	District string
	City     string
	State    string
	ZipCode  string
}

type AddressUsecase struct {
	addresses repo.AddressRepository
}

func NewAddressUsecase(addresses repo.AddressRepository) *AddressUsecase {
	return &AddressUsecase{addresses: addresses}
}

func (u *AddressUsecase) Get(ctx context.Context, actor policy.Actor, userID int64) (model.Address, error) {
	if !policy.CanAccessUserScope(actor, userID).Allowed() {
		return model.Address{}, Forbidden()
	}
	a, err := u.addresses.FindByUserID(ctx, userID)
	if err != nil {
		return model.Address{}, fromRepoError(ctx, "get address", "address", err)
	}
	return a, nil
}

// Upsert creates the user's address or replaces the existing one.
// A missing user surfaces as REFERENCE_NOT_FOUND.
func (u *AddressUsecase) Upsert(ctx context.Context, actor policy.Actor, userID int64, in AddressInput) (model.Address, error) {
	if !policy.CanAccessUserScope(actor, userID).Allowed() {
		return model.Address{}, Forbidden()
	}
	in, err := normalizeAddress(in)
	if err != nil {
		return model.Address{}, err
	}

	a, err := u.addresses.Upsert(ctx, model.Address{
		UserID:   userID,
		Street:   in.Street,
		Number:   in.Number,
		District: in.District,
		City:     in.City,
		State:    in.State,
		ZipCode:  in.ZipCode,
	})
	if err != nil {
		return model.Address{}, fromRepoError(ctx, "upsert address", "address", err)
	}
	return a, nil
}

func (u *AddressUsecase) Delete(ctx context.Context, actor policy.Actor, userID int64) error {
	if !policy.CanAccessUserScope(actor, userID).Allowed() {
		return Forbidden()
	}
	if err := u.addresses.DeleteByUserID(ctx, userID); err != nil {
		return fromRepoError(ctx, "delete address", "address", err)
	}
	return nil
}

func normalizeAddress(in AddressInput) (AddressInput, error) {
	in.Street = strings.TrimSpace(in.Street)
	in.Number = strings.TrimSpace(in.Number)
	in.District = strings.TrimSpace(in.District)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.ToUpper(strings.TrimSpace(in.State))
	in.ZipCode = strings.NewReplacer("-", "", ".", "", " ", "").Replace(in.ZipCode)

	switch {
	case utf8.RuneCountInString(in.Street) < 3:
		return in, Validation("street must have at least 3 characters")
	case in.Number == "":
		return in, Validation("number is required")
	case utf8.RuneCountInString(in.District) < 3:
		return in, Validation("district must have at least 3 characters")
	case utf8.RuneCountInString(in.City) < 3:
		return in, Validation("city must have at least 3 characters")
	case !isLetters(in.State, 2):
		return in, Validation("state must be a 2 letter code")
	case !isDigits(in.ZipCode, 8):
		return in, Validation("zip_code must have 8 digits")
	}
	return in, nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isLetters(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
