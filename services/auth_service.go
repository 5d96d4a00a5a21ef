package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	"macrotrack-backend/models"
	"macrotrack-backend/utils"

	"gorm.io/gorm"
)

// Default meal categories created at registration, in display order.
var defaultCategories = []string{"Breakfast", "Lunch", "Dinner"}

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// validatePassword requires at least 8 characters with at least one
// letter and one digit.
func validatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// Register creates the user and the three default categories in one
// transaction, then mints an access/refresh token pair.
func (s *AuthService) Register(email, password string) (*models.User, string, string, error) {
	email = normalizeEmail(email)

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, "", "", fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}

	if !validatePassword(password) {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters with at least one letter and one number", ErrInvalidInput)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", "", err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for i, name := range defaultCategories {
			category := &models.MealCategory{
				UserID:       user.ID,
				Name:         name,
				DisplayOrder: i + 1,
				IsDefault:    true,
			}
			if err := tx.Create(category).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}

	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// Login verifies credentials. Unknown email and wrong password produce
// the same error.
func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, "", "", err
	}
	return &user, accessToken, refreshToken, nil
}

// RefreshTokens trades a valid refresh token for a new pair, confirming
// the user still exists.
func (s *AuthService) RefreshTokens(refreshToken string) (string, string, error) {
	userID, err := utils.VerifyToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token", ErrInvalidCredentials)
	}

	if _, err := s.GetUserByID(userID); err != nil {
		return "", "", fmt.Errorf("%w: invalid refresh token", ErrInvalidCredentials)
	}

	newAccess, err := utils.GenerateAccessToken(userID)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", err
	}
	return newAccess, newRefresh, nil
}

// RequestPasswordReset always succeeds so callers cannot probe which
// emails exist. The reset token is emailed only when the account is
// real; send failures are logged, never surfaced.
func (s *AuthService) RequestPasswordReset(email string) (string, error) {
	email = normalizeEmail(email)

	token, err := utils.GeneratePasswordResetToken(email)
	if err != nil {
		return "", err
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err == nil {
		if err := utils.SendPasswordResetEmail(user.Email, token); err != nil {
			log.Printf("password reset email to %s failed: %v", user.Email, err)
		}
	}

	return token, nil
}

// ResetPassword sets a new password from a valid reset token.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	email, err := utils.VerifyToken(token, utils.TokenTypeReset)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired password reset token", ErrInvalidInput)
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("%w: invalid or expired password reset token", ErrInvalidInput)
	}

	if !validatePassword(newPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters with at least one letter and one number", ErrInvalidInput)
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.db.Save(&user).Error
}
