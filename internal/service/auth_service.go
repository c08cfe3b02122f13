package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/school-dx/lesson-live-api/internal/models"
	"github.com/school-dx/lesson-live-api/pkg/config"
	appErrors "github.com/school-dx/lesson-live-api/pkg/errors"
)

type authStudentRepository interface {
	FindStudentByMail(ctx context.Context, mail string) (*models.Student, error)
}

// AuthService authenticates students and issues access tokens.
type AuthService struct {
	students  authStudentRepository
	jwtConfig config.JWTConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs the auth service.
func NewAuthService(students authStudentRepository, jwtConfig config.JWTConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, jwtConfig: jwtConfig, validator: validate, logger: logger}
}

// Login verifies the student's credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid login payload")
	}

	student, err := s.students.FindStudentByMail(ctx, req.MailAddress)
	if err != nil {
		return nil, appErrors.Wrap(err, "LOGIN_FAILED", 500, "failed to fetch student")
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	token, expiresIn, err := s.issueToken(student)
	if err != nil {
		return nil, appErrors.Wrap(err, "TOKEN_ISSUE_FAILED", 500, "failed to issue token")
	}

	s.logger.Info("student logged in", zap.Int64("student_id", student.ID))

	student.PasswordHash = ""
	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
		Student:     *student,
	}, nil
}

func (s *AuthService) issueToken(student *models.Student) (string, int64, error) {
	now := time.Now()
	expiry := now.Add(s.jwtConfig.Expiration)
	claims := models.JWTClaims{
		StudentID: student.ID,
		ClassID:   student.ClassID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.jwtConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.jwtConfig.Expiration.Seconds()), nil
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims, nil
}
