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

func TestAuditLogUsecase_List(t *testing.T) {
	logs := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(logs)

	logs.On("List", mock.Anything, repo.AuditLogFilter{Limit: 50}).
		Return([]model.AuditLog{{ID: 1, Action: model.AuditActionUpdateOrderStatus}}, nil)

	out, err := uc.List(context.Background(), admin1, repo.AuditLogFilter{})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	logs.On("List", mock.Anything, repo.AuditLogFilter{Limit: repo.MaxAuditLogLimit}).
		Return([]model.AuditLog{}, nil)

	_, err = uc.List(context.Background(), admin1, repo.AuditLogFilter{Limit: repo.MaxAuditLogLimit})
	require.NoError(t, err)
}

func TestAuditLogUsecase_List_Rejects(t *testing.T) {
	bad := model.AuditAction("DROP_TABLE")

	logs := new(AuditRepoMock)
	uc := usecase.NewAuditLogUsecase(logs)

	_, err := uc.List(context.Background(), client42, repo.AuditLogFilter{})
	assert.True(t, errors.Is(err, usecase.ErrForbidden))

	_, err = uc.List(context.Background(), admin1, repo.AuditLogFilter{Action: &bad})
	assertErrContains(t, err, "invalid action")

	_, err = uc.List(context.Background(), admin1, repo.AuditLogFilter{Limit: repo.MaxAuditLogLimit + 1})
	assertErrContains(t, err, "invalid limit")

	logs.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}
