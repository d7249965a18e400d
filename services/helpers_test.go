package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"employee-records-api/config"
	"employee-records-api/models"
)

var (
	adminActor    = Actor{UserID: 1, Role: models.RoleAdmin}
	employeeActor = Actor{UserID: 2, Role: models.RoleEmployee}
	otherActor    = Actor{UserID: 3, Role: models.RoleNormalEmployee}
)

// newTestDB opens a migrated SQLite database seeded with one user per role.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "records.db")), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	users := []models.User{
		{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin},
		{UserID: 2, Name: "Asha", Email: "asha@example.com", Role: models.RoleEmployee},
		{UserID: 3, Name: "Ravi", Email: "ravi@example.com", Role: models.RoleNormalEmployee},
	}
	require.NoError(t, db.Create(&users).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func validProfile(first string) models.EmployeeProfile {
	return models.EmployeeProfile{
		FirstName: first,
		LastName:  "Kumar",
		Email:     first + "@example.com",
		Phone:     "9876543210",
		Gender:    "female",
	}
}

// seedEmployee submits an employee profile and returns its issued code.
func seedEmployee(t *testing.T, db *gorm.DB, actor Actor) string {
	t.Helper()
	wf := NewWorkflow[models.EmployeeProfile](db, EmployeeDomain)
	draft, err := wf.Submit(context.Background(), actor, Submission[models.EmployeeProfile]{Details: validProfile("asha")})
	require.NoError(t, err)
	return draft.EmployeeID
}

func countApproved[P models.Payload](t *testing.T, db *gorm.DB, employeeID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Approved[P]{}).Where("employee_id = ?", employeeID).Count(&n).Error)
	return n
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, n)
	return nil
}

func (r *recordingNotifier) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, c.Action)
	}
	return out
}
