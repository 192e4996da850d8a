package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
)

type CategoryUsecase struct {
	categories repo.CategoryRepository
}

func NewCategoryUsecase(categories repo.CategoryRepository) *CategoryUsecase {
	return &CategoryUsecase{categories: categories}
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	list, err := u.categories.List(ctx)
	if err != nil {
		return []model.Category{}, fromRepoError(ctx, "list categories", "category", err)
	}
	return list, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id int64) (model.Category, error) {
	if id <= 0 {
		return model.Category{}, Validation("invalid id")
	}
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		return model.Category{}, fromRepoError(ctx, "get category", "category", err)
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, actor policy.Actor, description string) (model.Category, error) {
	if !policy.CanManageCatalog(actor).Allowed() {
		return model.Category{}, Forbidden()
	}
	description, err := normalizeCategoryDescription(description)
	if err != nil {
		return model.Category{}, err
	}

	c := model.Category{Description: description}
	if err := u.categories.Create(ctx, &c); err != nil {
		return model.Category{}, fromRepoError(ctx, "create category", "category", err)
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, actor policy.Actor, id int64, description string) (model.Category, error) {
	if !policy.CanManageCatalog(actor).Allowed() {
		return model.Category{}, Forbidden()
	}
	if id <= 0 {
		return model.Category{}, Validation("invalid id")
	}
	description, err := normalizeCategoryDescription(description)
	if err != nil {
		return model.Category{}, err
	}

	if err := u.categories.Update(ctx, model.Category{ID: id, Description: description}); err != nil {
		return model.Category{}, fromRepoError(ctx, "update category", "category", err)
	}
	return u.Get(ctx, id)
}

// A category still used by items cannot be deleted (CONFLICT).
func (u *CategoryUsecase) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanManageCatalog(actor).Allowed() {
		return Forbidden()
	}
	if id <= 0 {
		return Validation("invalid id")
	}
	if err := u.categories.Delete(ctx, id); err != nil {
		return fromRepoError(ctx, "delete category", "category", err)
	}
	return nil
}

func normalizeCategoryDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return "", Validation("description must have at least 3 characters")
	}
	if utf8.RuneCountInString(s) > maxDescriptionLen {
		return "", Validation("description must have at most %d characters", maxDescriptionLen)
	}
	return s, nil
}
