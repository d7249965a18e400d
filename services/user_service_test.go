package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-records-api/models"
)

func TestUserServiceCreateAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	user, err := svc.Create(ctx, NewUser{
		Name:       "  Meera  ",
		Email:      "Meera@Example.com",
		Password:   "s3cretpass",
		Role:       models.RoleNormalEmployee,
		EmployeeID: "GSS010",
	})
	require.NoError(t, err)
	assert.Equal(t, "Meera", user.Name)
	assert.Equal(t, "meera@example.com", user.Email)
	assert.NotEqual(t, "s3cretpass", user.Password)
	require.NotNil(t, user.EmployeeID)
	assert.Equal(t, "GSS010", *user.EmployeeID)

	got, err := svc.Authenticate(ctx, " MEERA@example.com ", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)

	_, err = svc.Authenticate(ctx, "meera@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserServiceCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	cases := []struct {
		name string
		in   NewUser
	}{
		{"bad email", NewUser{Name: "x", Email: "not-an-email", Password: "longenough", Role: models.RoleAdmin}},
		{"short password", NewUser{Name: "x", Email: "x@example.com", Password: "short", Role: models.RoleAdmin}},
		{"unknown role", NewUser{Name: "x", Email: "x@example.com", Password: "longenough", Role: "manager"}},
		{"duplicate email", NewUser{Name: "x", Email: "asha@example.com", Password: "longenough", Role: models.RoleEmployee}},
		{"taken employee code", NewUser{Name: "x", Email: "x@example.com", Password: "longenough", Role: models.RoleEmployee, EmployeeID: "gss005"}},
	}
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", 2).Update("employee_id", "GSS005").Error)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserServiceGetAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	user, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	_, err = svc.Get(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	admins, err := svc.List(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.EqualValues(t, 1, admins[0].UserID)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct horse", hash))
	assert.False(t, CheckPasswordHash("battery staple", hash))
}
