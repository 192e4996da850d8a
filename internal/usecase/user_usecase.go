package usecase

import (
	"context"
	"encoding/json"
	"net/mail"
	"strings"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/policy"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
)

// PasswordHasher turns a plain password into a storable hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

const minPasswordLen = 6

type UserUsecase struct {
	tx     repo.TransactionManager
	users  repo.UserRepository
	hasher PasswordHasher
}

func NewUserUsecase(tx repo.TransactionManager, users repo.UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{tx: tx, users: users, hasher: hasher}
}

// nil fields are left unchanged
type UpdateUserInput struct {
	Email    *string
	Password *string
	Name     *string
	Phone    *string
	Role     *string
}

type UserListOutput struct {
	Users []model.User `json:"users"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type userRoleAudit struct {
	Role model.Role `json:"role"`
}

func (u *UserUsecase) Get(ctx context.Context, actor policy.Actor, id int64) (model.User, error) {
	if !policy.CanAccessUserScope(actor, id).Allowed() {
		return model.User{}, Forbidden()
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, fromRepoError(ctx, "get user", "user", err)
	}
	return user, nil
}

func (u *UserUsecase) List(ctx context.Context, actor policy.Actor, page, limit int) (UserListOutput, error) {
	if !policy.CanListUsers(actor).Allowed() {
		return UserListOutput{}, Forbidden()
	}
	if page < 1 {
		return UserListOutput{}, Validation("invalid page")
	}
	if limit < 1 || limit > 100 {
		return UserListOutput{}, Validation("invalid limit")
	}

	users, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, fromRepoError(ctx, "list users", "user", err)
	}
	return UserListOutput{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// Update applies a partial update. Clients may only edit themselves and may
// never touch the role; a role change by an admin is audited.
func (u *UserUsecase) Update(ctx context.Context, actor policy.Actor, id int64, in UpdateUserInput) (model.User, error) {
	if !policy.CanAccessUserScope(actor, id).Allowed() {
		return model.User{}, Forbidden()
	}

	var newRole model.Role
	if in.Role != nil {
		if !policy.CanChangeRole(actor).Allowed() {
			return model.User{}, Forbidden()
		}
		newRole = model.Role(strings.ToUpper(strings.TrimSpace(*in.Role)))
		if !newRole.Valid() {
			return model.User{}, Validation("invalid role %q", *in.Role)
		}
	}

	var newHash string
	if in.Password != nil {
		if len(*in.Password) < minPasswordLen {
			return model.User{}, Validation("password must have at least %d characters", minPasswordLen)
		}
		h, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return model.User{}, fromRepoError(ctx, "hash password", "user", err)
		}
		newHash = h
	}

	var out model.User
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		oldRole := user.Role

		if in.Email != nil {
			email, err := normalizeEmail(*in.Email)
			if err != nil {
				return err
			}
			user.Email = email
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return Validation("name is required")
			}
			user.Name = strings.TrimSpace(*in.Name)
		}
		if in.Phone != nil {
			if !isDigits(*in.Phone, 11) {
				return Validation("phone must have 11 digits")
			}
			user.Phone = *in.Phone
		}
		if newHash != "" {
			user.PasswordHash = newHash
		}
		if in.Role != nil {
			user.Role = newRole
		}

		if err := r.Users().Update(ctx, user); err != nil {
			return err
		}

		if user.Role != oldRole {
			before, _ := json.Marshal(userRoleAudit{Role: oldRole})
			after, _ := json.Marshal(userRoleAudit{Role: user.Role})
			if err := r.AuditLogs().Create(ctx, model.AuditLog{
				ActorUserID:  actor.ID,
				Action:       model.AuditActionUpdateUserRole,
				ResourceType: model.AuditResourceUser,
				ResourceID:   id,
				BeforeJSON:   string(before),
				AfterJSON:    string(after),
			}); err != nil {
				return err
			}
		}

		out, err = r.Users().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return model.User{}, fromRepoError(ctx, "update user", "user", err)
	}
	return out, nil
}

// Delete is admin only. Users with orders cannot be removed (CONFLICT).
func (u *UserUsecase) Delete(ctx context.Context, actor policy.Actor, id int64) error {
	if !policy.CanDeleteUser(actor).Allowed() {
		return Forbidden()
	}
	if id <= 0 {
		return Validation("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Users().Delete(ctx, id); err != nil {
			return err
		}
		before, _ := json.Marshal(struct {
			Email string     `json:"email"`
			Role  model.Role `json:"role"`
		}{user.Email, user.Role})
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actor.ID,
			Action:       model.AuditActionDeleteUser,
			ResourceType: model.AuditResourceUser,
			ResourceID:   id,
			BeforeJSON:   string(before),
		})
	})
	if err != nil {
		return fromRepoError(ctx, "delete user", "user", err)
	}
	return nil
}

func normalizeEmail(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return "", Validation("invalid email")
	}
	return s, nil
}

// NormalizeEmail is shared with registration and login.
func NormalizeEmail(s string) (string, error) { return normalizeEmail(s) }
