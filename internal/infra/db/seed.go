package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/config"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the first ADMIN account when no user owns the email yet.
// An existing account is left untouched.
func SeedAdmin(ctx context.Context, gormDB *gorm.DB, cfg config.AdminConfig) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required to seed an admin")
	}

	var existing model.User
	err := gormDB.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		slog.Info("admin seed skipped, user already exists", "email", email, "role", existing.Role)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Name:         cfg.Name,
		Phone:        cfg.Phone,
	}
	if err := gormDB.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("admin user created", "email", email, "id", admin.ID)
	return nil
}
