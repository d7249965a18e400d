package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApprovalStatus(t *testing.T) {
	cases := map[string]ApprovalStatus{
		"Pending":   StatusPending,
		" pending ": StatusPending,
		"APPROVED":  StatusApproved,
		"approve":   StatusApproved,
		"rejected":  StatusRejected,
		"2":         StatusRejected,
	}
	for in, want := range cases {
		got, err := ParseApprovalStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseApprovalStatus("archived")
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusApproved))
	assert.True(t, CanTransition(StatusPending, StatusRejected))
	assert.True(t, CanTransition(StatusPending, StatusPending))
	assert.True(t, CanTransition(StatusRejected, StatusPending))

	assert.False(t, CanTransition(StatusRejected, StatusApproved))
	assert.False(t, CanTransition(StatusRejected, StatusRejected))
	assert.False(t, CanTransition(StatusApproved, StatusPending))
	assert.False(t, CanTransition("pending", StatusApproved))
}

func TestLinkHelpers(t *testing.T) {
	now := time.Now()
	links := Links{{ID: 1, Timestamp: now}, {ID: 2, Timestamp: now}, {ID: 1, Timestamp: now}}

	assert.True(t, HasLink(links, 2))
	assert.False(t, HasLink(links, 3))

	rest := WithoutLink(links, 1)
	require.Len(t, rest, 1)
	assert.EqualValues(t, 2, rest[0].ID)
	assert.Len(t, links, 3, "input slice is left untouched")
	assert.NotNil(t, WithoutLink(nil, 1))
}

func TestRecordJSONIsFlat(t *testing.T) {
	draft := AadharDraft{
		ID:             7,
		EmployeeID:     "GSS001",
		UserID:         2,
		Details:        AadharCard{AadharName: "Asha", AadharNo: 123412341234},
		FilePath:       "uploads/aadhar/x.png",
		Status:         StatusPending,
		LinkedApproved: Links{},
	}

	raw, err := json.Marshal(draft)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Asha", got["aadhar_name"])
	assert.EqualValues(t, 123412341234, got["aadhar_no"])
	assert.Equal(t, "uploads/aadhar/x.png", got["aadhar_image"])
	assert.Equal(t, "GSS001", got["employee_id"])
	assert.Equal(t, "Pending", got["status"])
	assert.EqualValues(t, 7, got["id"])
	assert.NotContains(t, got, "Details")
	assert.NotContains(t, got, "user")

	approved := BankDetail{EmployeeID: "GSS001", Details: BankAccount{IFSCCode: "SBIN0001234"}, FilePath: "p.pdf"}
	raw, err = json.Marshal(approved)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "p.pdf", got["passbook_image"])
	assert.Equal(t, "SBIN0001234", got["ifsc_code"])
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "employee_drafts", EmployeeDraft{}.TableName())
	assert.Equal(t, "employees", Employee{}.TableName())
	assert.Equal(t, "aadhar_drafts", AadharDraft{}.TableName())
	assert.Equal(t, "pans", Pan{}.TableName())
	assert.Equal(t, "bank_detail_drafts", BankDetailDraft{}.TableName())
}
