package services

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"employee-records-api/models"
)

const (
	DefaultEmployeeCodePrefix = "GSS"
	employeeSequenceName      = "employee"
)

// NextEmployeeCode issues the next sequential employee code (GSS001, GSS002,
// ...). It must run inside the transaction that stores the new subject.
func NextEmployeeCode(tx *gorm.DB, prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultEmployeeCodePrefix
	}

	// Concurrent first submissions race on this insert; the loser keeps the
	// winner's row and waits on the lock below.
	seed := models.EmployeeSequence{Name: employeeSequenceName, Value: 0}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return "", fmt.Errorf("failed to start employee sequence: %w", err)
	}

	var seq models.EmployeeSequence
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", employeeSequenceName).First(&seq).Error; err != nil {
		return "", fmt.Errorf("failed to read employee sequence: %w", err)
	}
	seq.Value++
	if err := tx.Model(&seq).Update("value", seq.Value).Error; err != nil {
		return "", fmt.Errorf("failed to advance employee sequence: %w", err)
	}

	return fmt.Sprintf("%s%03d", prefix, seq.Value), nil
}

// SubjectExists reports whether an employee code is known, either as an
// approved employee or as a submitted profile.
func SubjectExists(tx *gorm.DB, employeeID string) (bool, error) {
	var count int64
	if err := tx.Model(&models.Employee{}).Where("employee_id = ?", employeeID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&models.EmployeeDraft{}).Where("employee_id = ?", employeeID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
