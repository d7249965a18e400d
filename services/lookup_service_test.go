package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupServiceWorks(t *testing.T) {
	svc := NewLookupService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateWork(ctx, "  ", "HR")
	assert.ErrorIs(t, err, ErrValidation)

	work, err := svc.CreateWork(ctx, "Supervisor", " Operations ")
	require.NoError(t, err)
	assert.Equal(t, "Operations", work.Department)

	_, err = svc.CreateWork(ctx, "Clerk", "")
	require.NoError(t, err)

	works, err := svc.ListWorks(ctx)
	require.NoError(t, err)
	require.Len(t, works, 2)
	assert.Equal(t, "Clerk", works[0].Designation)

	got, err := svc.GetWork(ctx, work.WorkID)
	require.NoError(t, err)
	assert.Equal(t, "Supervisor", got.Designation)

	_, err = svc.GetWork(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServiceBanks(t *testing.T) {
	svc := NewLookupService(newTestDB(t))
	ctx := context.Background()

	bank, err := svc.CreateBank(ctx, "State Bank")
	require.NoError(t, err)

	_, err = svc.CreateBank(ctx, "State Bank")
	assert.ErrorIs(t, err, ErrValidation)

	banks, err := svc.ListBanks(ctx)
	require.NoError(t, err)
	require.Len(t, banks, 1)

	got, err := svc.GetBank(ctx, bank.BankID)
	require.NoError(t, err)
	assert.Equal(t, "State Bank", got.BankName)
}
