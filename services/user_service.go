package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// UserService handles storefront signup, admin-created clients and console login
type UserService struct {
	db  *gorm.DB
	jwt *JWTService
}

func NewUserService(db *gorm.DB, jwt *JWTService) *UserService {
	return &UserService{db: db, jwt: jwt}
}

// Signup registers a storefront user. A client previously created by an admin
// (self created) is claimed instead of duplicated; any other existing email fails.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Username:     req.Username,
				Email:        email,
				PasswordHash: hash,
			}
			if err := tx.Create(&user).Error; err != nil {
				// a concurrent signup for the same email won the insert
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrUserExists
				}
				return fmt.Errorf("create user: %w", err)
			}
			return nil
		case err != nil:
			return fmt.Errorf("find user: %w", err)
		}

		if !user.SelfCreated {
			return ErrUserExists
		}

		// Step 2: Claim the admin-created account
		user.Username = req.Username
		user.PasswordHash = hash
		user.SelfCreated = false
		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("claim user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Log.Infof("✅ User signed up: %s", user.Email)
	return &user, nil
}

// CreateClient registers a customer on the admin's behalf with a random password
func (s *UserService) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	password, err := GenerateRandomPassword()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		SelfCreated:  true,
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check user: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create client: %w", err)
	}

	utils.Log.Infof("✅ Client created: %s", user.Email)
	return &user, nil
}

// Login checks credentials and issues a signed token
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !VerifyPassword(user.PasswordHash, req.Password) {
		utils.Log.Warnf("⚠️ Failed login attempt for %s", user.Email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(&user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &models.AuthResponse{User: user.ToResponse(), Token: token}, nil
}

// ListClients pages through users, newest first
func (s *UserService) ListClients(ctx context.Context, page, limit int, search string) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&models.User{})
	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ? OR username ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	var users []models.User
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
