package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"employee-records-api/config"
	"employee-records-api/models"
)

// LookupService manages the work and bank master tables.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	if db == nil {
		db = config.DB
	}
	return &LookupService{db: db}
}

func (s *LookupService) CreateWork(ctx context.Context, designation, department string) (*models.Work, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		return nil, validationError("designation is required")
	}
	now := time.Now()
	work := models.Work{
		Designation: designation,
		Department:  strings.TrimSpace(department),
		CreateAt:    &now,
		UpdateAt:    &now,
	}
	if err := s.db.WithContext(ctx).Create(&work).Error; err != nil {
		return nil, err
	}
	return &work, nil
}

func (s *LookupService) ListWorks(ctx context.Context) ([]models.Work, error) {
	works := make([]models.Work, 0)
	if err := s.db.WithContext(ctx).Order("designation ASC").Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

func (s *LookupService) GetWork(ctx context.Context, id uint) (*models.Work, error) {
	var work models.Work
	if err := s.db.WithContext(ctx).First(&work, id).Error; err != nil {
		return nil, notFound(err, "work", id)
	}
	return &work, nil
}

func (s *LookupService) CreateBank(ctx context.Context, name string) (*models.Bank, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("bank_name is required")
	}

	now := time.Now()
	bank := models.Bank{BankName: name, CreateAt: &now, UpdateAt: &now}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Bank{}).Where("bank_name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return validationError("bank %s already exists", name)
		}
		return tx.Create(&bank).Error
	})
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (s *LookupService) ListBanks(ctx context.Context) ([]models.Bank, error) {
	banks := make([]models.Bank, 0)
	if err := s.db.WithContext(ctx).Order("bank_name ASC").Find(&banks).Error; err != nil {
		return nil, err
	}
	return banks, nil
}

func (s *LookupService) GetBank(ctx context.Context, id uint) (*models.Bank, error) {
	var bank models.Bank
	if err := s.db.WithContext(ctx).First(&bank, id).Error; err != nil {
		return nil, notFound(err, "bank", id)
	}
	return &bank, nil
}
