package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeMappingsAreTotal(t *testing.T) {
	for _, status := range DimonaStatuses() {
		assert.NotEqual(t, neutralBadge, DimonaStatusBadge(status), "no fallback for %s", status)
	}
	for _, dt := range DimonaTypes() {
		assert.NotEqual(t, neutralBadge, DimonaTypeBadge(dt), "no fallback for %s", dt)
	}
	for _, status := range AccountStatuses() {
		assert.NotEqual(t, neutralBadge, AccountStatusBadge(status), "no fallback for %s", status)
	}
	for _, nt := range NotificationTypes() {
		assert.NotEqual(t, neutralBadge, NotificationTypeBadge(nt), "no fallback for %s", nt)
	}
}

func TestBadgeUnknownValuesFallBack(t *testing.T) {
	assert.Equal(t, neutralBadge, DimonaStatusBadge("BOGUS"))
	assert.Equal(t, neutralBadge, DimonaTypeBadge("BOGUS"))
	assert.Equal(t, neutralBadge, AccountStatusBadge("BOGUS"))
	assert.Equal(t, neutralBadge, NotificationTypeBadge("BOGUS"))
}
