package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"

	"github.com/shopspring/decimal"
)

type ItemUsecase struct {
	items repo.ItemRepository
}

func NewItemUsecase(items repo.ItemRepository) *ItemUsecase {
	return &ItemUsecase{items: items}
}

type ListItemsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
}

type ItemListOutput struct {
	Items []model.Item `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type ItemInput struct {
	Description string
	UnitPrice   decimal.Decimal
	CategoryID  int64
}

func (u *ItemUsecase) List(ctx context.Context, in ListItemsInput) (ItemListOutput, error) {
	if in.Page < 1 {
		return ItemListOutput{}, Validation("invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ItemListOutput{}, Validation("invalid limit")
	}
	if len(in.Q) > 100 {
		return ItemListOutput{}, Validation("q too long")
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return ItemListOutput{}, Validation("invalid category_id")
	}

	items, total, err := u.items.List(ctx, repo.ItemListQuery{
		CategoryID: in.CategoryID,
		Q:          strings.TrimSpace(in.Q),
		Page:       in.Page,
		Limit:      in.Limit,
	})
	if err != nil {
		return ItemListOutput{}, fromRepoError(ctx, "list items", "item", err)
	}
	return ItemListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ItemUsecase) Get(ctx context.Context, id int64) (model.Item, error) {
	if id <= 0 {
		return model.Item{}, Validation("invalid id")
	}
	it, err := u.items.FindByID(ctx, id)
	if err != nil {
		return model.Item{}, fromRepoError(ctx, "get item", "item", err)
	}
	return it, nil
}

// Create fails with REFERENCE_NOT_FOUND when the category does not exist.
func (u *ItemUsecase) Create(ctx context.Context, actor policy.Actor, in ItemInput) (model.Item, error) {
	if !policy.CanManageCatalog(actor).Allowed() {
		return model.Item{}, Forbidden()
	}
	in, err := normalizeItemInput(in)
	if err != nil {
		return model.Item{}, err
	}

	it := model.Item{Description: in.Description, UnitPrice: in.UnitPrice, CategoryID: in.CategoryID}
	if err := u.items.Create(ctx, &it); err != nil {
		return model.Item{}, fromRepoError(ctx, "create item", "item", err)
	}
	return u.Get(ctx, it.ID)
}

func (u *ItemUsecase) Update(ctx context.Context, actor policy.Actor, id int64, in ItemInput) (model.Item, error) {
	if !policy.CanManageCatalog(actor).Allowed() {
		return model.Item{}, Forbidden()
	}
	if id <= 0 {
		return model.Item{}, Validation("invalid id")
	}
	in, err := normalizeItemInput(in)
	if err != nil {
		return model.Item{}, err
	}

	err = u.items.Update(ctx, model.Item{ID: id, Description: in.Description, UnitPrice: in.UnitPrice, CategoryID: in.CategoryID})
	if err != nil {
		return model.Item{}, fromRepoError(ctx, "update item", "item", err)
	}
	return u.Get(ctx, id)
}

// Items that appear on an order cannot be deleted (CONFLICT).
func (u *ItemUsecase) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanManageCatalog(actor).Allowed() {
		return Forbidden()
	}
	if id <= 0 {
		return Validation("invalid id")
	}
	if err := u.items.Delete(ctx, id); err != nil {
		return fromRepoError(ctx, "delete item", "item", err)
	}
	return nil
}

// column limits: varchar(255) descriptions, numeric(10,2) prices
const maxDescriptionLen = 255

var maxUnitPrice = decimal.RequireFromString("99999999.99")

func normalizeItemInput(in ItemInput) (ItemInput, error) {
	in.Description = strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(in.Description) < 3 {
		return in, Validation("description must have at least 3 characters")
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return in, Validation("description must have at most %d characters", maxDescriptionLen)
	}
	if !in.UnitPrice.IsPositive() {
		return in, Validation("unit_price must be positive")
	}
	if in.UnitPrice.GreaterThan(maxUnitPrice) {
		return in, Validation("unit_price must be at most %s", maxUnitPrice.StringFixed(2))
	}
	if !in.UnitPrice.Equal(in.UnitPrice.Round(2)) {
		return in, Validation("unit_price must have at most 2 decimal places")
	}
	if in.CategoryID <= 0 {
		return in, Validation("invalid category_id")
	}
	return in, nil
}
