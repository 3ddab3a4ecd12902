// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/models"
	"github.com/inventra/inventra-backend/internal/utils"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 15 * time.Minute
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *Mailer
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,strong_password"`
}

// LoginResult bundles the signed tokens with the cookie lifetime the
// handler should apply.
type LoginResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	TokenTTL     time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer *Mailer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer}
}

// Signup registers a new account and emails a verification link. The account
// cannot log in until the link is followed.
func (s *AuthService) Signup(req *SignupRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	token, err := utils.GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification token: %w", err)
	}
	expiry := time.Now().Add(verificationTokenTTL)

	user := &models.User{
		Name:                    req.Name,
		Email:                   req.Email,
		VerificationToken:       &token,
		VerificationTokenExpiry: &expiry,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Delivery failures must not fail the signup itself.
	go func(email, name, token string) {
		if err := s.mailer.SendVerificationEmail(email, name, token); err != nil {
			logrus.WithError(err).WithField("email", email).Error("Failed to send verification email")
		}
	}(user.Email, user.Name, token)

	return user, nil
}

func (s *AuthService) VerifyEmail(token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	var user models.User
	err := s.db.Where("verification_token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.VerificationTokenExpiry == nil || time.Now().After(*user.VerificationTokenExpiry) {
		return ErrInvalidToken
	}

	updates := map[string]interface{}{
		"email_verified":            true,
		"verification_token":        nil,
		"verification_token_expiry": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

// Login authenticates by email and password. Unknown email and wrong
// password return the same error so the endpoint does not reveal which
// accounts exist.
func (s *AuthService) Login(req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	ttl := time.Duration(s.cfg.JWT.AccessTokenTTL) * time.Hour
	if req.RememberMe {
		ttl = time.Duration(s.cfg.JWT.RememberMeTTL) * time.Hour
	}

	accessToken, err := utils.GenerateJWT(user.ID, user.Name, user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, time.Duration(s.cfg.JWT.RefreshTokenTTL)*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	if err := s.db.Model(&user).Update("last_login_at", &now).Error; err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to record login time")
	}

	return &LoginResult{
		User:         &user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenTTL:     ttl,
	}, nil
}

// ForgotPassword issues a reset token when the email belongs to an account.
// It returns nil either way so callers cannot probe for registered emails.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	token, err := utils.GenerateVerificationCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().Add(resetTokenTTL)

	updates := map[string]interface{}{
		"reset_token":        &token,
		"reset_token_expiry": &expiry,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go func(email, name, token string) {
		if err := s.mailer.SendPasswordResetEmail(email, name, token); err != nil {
			logrus.WithError(err).WithField("email", email).Error("Failed to send password reset email")
		}
	}(user.Email, user.Name, token)

	return nil
}

func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	err := s.db.Where("reset_token = ?", req.Token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("database error: %w", err)
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return ErrInvalidToken
	}

	if err := user.SetPassword(req.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updates := map[string]interface{}{
		"password_hash":      user.PasswordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	return nil
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (s *AuthService) RefreshToken(refreshToken string) (string, error) {
	userID, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	user, err := s.GetUserByID(userID)
	if err != nil {
		return "", ErrInvalidToken
	}

	ttl := time.Duration(s.cfg.JWT.AccessTokenTTL) * time.Hour
	token, err := utils.GenerateJWT(user.ID, user.Name, user.Email, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
