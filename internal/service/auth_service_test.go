package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/pkg/config"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type fakeAuthStudents struct {
	student *models.Student
}

func (f *fakeAuthStudents) FindStudentByMail(context.Context, string) (*models.Student, error) {
	return f.student, nil
}

func authFixture(t *testing.T) (*AuthService, *models.Student) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	student := &models.Student{ID: 5, ClassID: 3, MailAddress: "sato@example.jp", PasswordHash: string(hash)}
	cfg := config.JWTConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "lesson-live-api"}
	return NewAuthService(&fakeAuthStudents{student: student}, cfg, nil, zap.NewNop()), student
}

func TestLoginIssuesToken(t *testing.T) {
	svc, _ := authFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{MailAddress: "sato@example.jp", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Empty(t, resp.Student.PasswordHash)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(5), claims.StudentID)
	assert.Equal(t, int64(3), claims.ClassID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := authFixture(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{MailAddress: "sato@example.jp", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestLoginUnknownMail(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test_secret", Expiration: time.Hour}
	svc := NewAuthService(&fakeAuthStudents{}, cfg, nil, zap.NewNop())

	_, err := svc.Login(context.Background(), models.LoginRequest{MailAddress: "nobody@example.jp", Password: "whatever"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	svc, _ := authFixture(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{MailAddress: "sato@example.jp", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
