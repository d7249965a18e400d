package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-records-api/models"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

func TestMailNotifierWritesToOwner(t *testing.T) {
	db := newTestDB(t)
	var got []sentMail
	m := NewMailNotifier(db)
	m.send = func(to []string, subject, body string) error {
		got = append(got, sentMail{to: to, subject: subject, body: body})
		return nil
	}

	err := m.Notify(context.Background(), Notification{
		Domain: "pan", Label: "PAN", Action: models.ActionReject,
		EmployeeID: "GSS001", OwnerID: 2, Remarks: "<b>blurry</b>",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"asha@example.com"}, got[0].to)
	assert.Equal(t, "PAN submission rejected", got[0].subject)
	assert.Contains(t, got[0].body, "&lt;b&gt;blurry&lt;/b&gt;")

	err = m.Notify(context.Background(), Notification{Action: models.ActionApprove, OwnerID: 404})
	assert.Error(t, err)
}

type capturedEvent struct {
	key  string
	body any
}

type fakePublisher struct {
	events []capturedEvent
}

func (f *fakePublisher) Publish(_ context.Context, key string, body any) error {
	f.events = append(f.events, capturedEvent{key: key, body: body})
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type failingNotifier struct{}

func (failingNotifier) Notify(context.Context, Notification) error { return errors.New("smtp down") }

func TestEventAndMultiNotifier(t *testing.T) {
	pub := &fakePublisher{}
	multi := MultiNotifier{failingNotifier{}, NewEventNotifier(pub)}

	n := Notification{Domain: "bankdetail", Action: models.ActionApprove, DraftID: 4, ApprovedID: 9}
	err := multi.Notify(context.Background(), n)
	assert.EqualError(t, err, "smtp down")

	require.Len(t, pub.events, 1)
	assert.Equal(t, "records.bankdetail.approve", pub.events[0].key)
	assert.Equal(t, n, pub.events[0].body)
}

func TestRenderMailSkipsEmptyParts(t *testing.T) {
	body, err := renderMail("PAN submission approved", "Asha", []string{"  ", "Approved."}, []mailField{
		{Label: "Employee code", Value: "GSS001"},
		{Label: "Remarks", Value: ""},
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Dear Asha,")
	assert.Contains(t, body, "GSS001")
	assert.NotContains(t, body, "Remarks")
	assert.Equal(t, 1, strings.Count(body, "<p style=\"margin:0 0 18px 0;line-height:1.7;word-break:break-word;\">"))
}
