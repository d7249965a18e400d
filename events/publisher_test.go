package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "records.aadhar.approve", RoutingKey("aadhar", "approve"))
	assert.Equal(t, "records.bankdetail.reject", RoutingKey("bankdetail", "reject"))
}

func TestNopPublisherAcceptsEverything(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), "records.pan.approve", map[string]any{"draft_id": 1}))
	assert.NoError(t, p.Close())
}
