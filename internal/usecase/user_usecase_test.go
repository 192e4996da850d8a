package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/domain/model"
	repo "github.com/Larissa2801/Projeto-UaiFood-Back/internal/repository"
	"github.com/Larissa2801/Projeto-UaiFood-Back/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

type userFixture struct {
	tx    *TxManagerMock
	users *UserRepoMock
	audit *AuditRepoMock
	uc    *usecase.UserUsecase
}

func newUserFixture() *userFixture {
	f := &userFixture{tx: new(TxManagerMock), users: new(UserRepoMock), audit: new(AuditRepoMock)}
	f.tx.Repos = &TxReposMock{users: f.users, auditLogs: f.audit}
	f.uc = usecase.NewUserUsecase(f.tx, f.users, fakeHasher{})
	return f
}

func strPtr(s string) *string { return &s }

func storedUser42() model.User {
	return model.User{ID: 42, Email: "ana@uaifood.com", PasswordHash: "old", Role: model.RoleClient, Name: "Ana", Phone: "31999990000"}
}

func TestUserUsecase_Get_Scope(t *testing.T) {
	f := newUserFixture()
	f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)

	u, err := f.uc.Get(context.Background(), client42, 42)
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)

	_, err = f.uc.Get(context.Background(), client3, 42)
	assert.True(t, errors.Is(err, usecase.ErrForbidden))
}

func TestUserUsecase_Update_SelfProfile(t *testing.T) {
	f := newUserFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.ID == 42 &&
			u.Email == "ana.souza@uaifood.com" &&
			u.PasswordHash == "hashed:segredo1" &&
			u.Role == model.RoleClient &&
			u.Name == "Ana"
	})).Return(nil)

	_, err := f.uc.Update(context.Background(), client42, 42, usecase.UpdateUserInput{
		Email:    strPtr(" Ana.Souza@UaiFood.com "),
		Password: strPtr("segredo1"),
	})
	require.NoError(t, err)

	f.users.AssertExpectations(t)
	f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserUsecase_Update_ClientCannotChangeRole(t *testing.T) {
	f := newUserFixture()

	_, err := f.uc.Update(context.Background(), client42, 42, usecase.UpdateUserInput{Role: strPtr("ADMIN")})

	assert.True(t, errors.Is(err, usecase.ErrForbidden))
	f.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestUserUsecase_Update_AdminRoleChangeIsAudited(t *testing.T) {
	f := newUserFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)
	f.users.On("Update", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		return u.Role == model.RoleAdmin
	})).Return(nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateUserRole &&
			l.ActorUserID == 1 &&
			l.ResourceID == 42 &&
			l.BeforeJSON == `{"role":"CLIENT"}` &&
			l.AfterJSON == `{"role":"ADMIN"}`
	})).Return(nil)

	_, err := f.uc.Update(context.Background(), admin1, 42, usecase.UpdateUserInput{Role: strPtr("admin")})
	require.NoError(t, err)
	f.audit.AssertExpectations(t)
}

func TestUserUsecase_Update_Validation(t *testing.T) {
	cases := map[string]usecase.UpdateUserInput{
		"short password": {Password: strPtr("123")},
		"bad email":      {Email: strPtr("not-an-email")},
		"bad phone":      {Phone: strPtr("3199")},
		"blank name":     {Name: strPtr("  ")},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newUserFixture()
			f.tx.On("WithinTx", mock.Anything).Return(nil)
			f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)

			_, err := f.uc.Update(context.Background(), client42, 42, in)
			assert.True(t, errors.Is(err, usecase.ErrValidationFailed), "err=%v", err)
			f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		})
	}
}

func TestUserUsecase_Update_EmailTaken(t *testing.T) {
	f := newUserFixture()
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)
	f.users.On("Update", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	_, err := f.uc.Update(context.Background(), client42, 42, usecase.UpdateUserInput{Email: strPtr("bia@uaifood.com")})
	assert.True(t, errors.Is(err, usecase.ErrConflict))
}

func TestUserUsecase_List_AdminOnly(t *testing.T) {
	f := newUserFixture()
	f.users.On("List", mock.Anything, 1, 20).Return([]model.User{storedUser42()}, int64(1), nil)

	out, err := f.uc.List(context.Background(), admin1, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)

	_, err = f.uc.List(context.Background(), client42, 1, 20)
	assert.True(t, errors.Is(err, usecase.ErrForbidden))

	_, err = f.uc.List(context.Background(), admin1, 1, 500)
	assertErrContains(t, err, "invalid limit")
}

func TestUserUsecase_Delete(t *testing.T) {
	t.Run("client forbidden", func(t *testing.T) {
		f := newUserFixture()
		err := f.uc.Delete(context.Background(), client42, 42)
		assert.True(t, errors.Is(err, usecase.ErrForbidden))
	})

	t.Run("admin deletes and audits", func(t *testing.T) {
		f := newUserFixture()
		f.tx.On("WithinTx", mock.Anything).Return(nil)
		f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)
		f.users.On("Delete", mock.Anything, int64(42)).Return(nil)
		f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
			return l.Action == model.AuditActionDeleteUser && l.ResourceID == 42
		})).Return(nil)

		require.NoError(t, f.uc.Delete(context.Background(), admin1, 42))
		f.audit.AssertExpectations(t)
	})

	t.Run("user with orders", func(t *testing.T) {
		f := newUserFixture()
		f.tx.On("WithinTx", mock.Anything).Return(nil)
		f.users.On("FindByID", mock.Anything, int64(42)).Return(storedUser42(), nil)
		f.users.On("Delete", mock.Anything, int64(42)).Return(repo.ErrConflict)

		err := f.uc.Delete(context.Background(), admin1, 42)
		assert.True(t, errors.Is(err, usecase.ErrConflict))
		f.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
