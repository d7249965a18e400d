package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/models"
	"employee-records-api/utils"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	if db == nil {
		db = config.DB
	}
	return &UserService{db: db}
}

// NewUser is the input of UserService.Create.
type NewUser struct {
	Name       string
	Email      string
	Password   string
	Role       string
	EmployeeID string
}

func (s *UserService) Create(ctx context.Context, in NewUser) (*models.User, error) {
	email := strings.ToLower(utils.SanitizeInput(in.Email))
	if !utils.ValidateEmail(email) {
		return nil, validationError("invalid email %q", in.Email)
	}
	if ok, msg := utils.ValidatePassword(in.Password); !ok {
		return nil, validationError("%s", msg)
	}
	if !models.ValidRole(in.Role) {
		return nil, validationError("unknown role %q", in.Role)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		Name:     utils.SanitizeInput(in.Name),
		Email:    email,
		Password: hash,
		Role:     in.Role,
		CreateAt: &now,
		UpdateAt: &now,
	}
	if code := utils.NormalizeEmployeeCode(in.EmployeeID); code != "" {
		if !utils.ValidEmployeeCode(code) {
			return nil, validationError("invalid employee code %q", in.EmployeeID)
		}
		user.EmployeeID = &code
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return validationError("email %s is already registered", email)
		}
		if user.EmployeeID != nil {
			if err := tx.Model(&models.User{}).Where("employee_id = ?", *user.EmployeeID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return validationError("employee %s already has an account", *user.EmployeeID)
			}
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the credentials of an active user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND delete_at IS NULL", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("delete_at IS NULL").First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	q := s.db.WithContext(ctx).Where("delete_at IS NULL")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	users := make([]models.User, 0)
	if err := q.Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// HashPassword hashes password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares password with hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
