package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatternStatic(t *testing.T) {
	p := Pattern{Kind: Static, Path: Companies}

	assert.True(t, p.Matches("/companies", ""))
	assert.True(t, p.Matches("/companies/", ""), "trailing slash normalizes away")
	assert.False(t, p.Matches("/companies/c1", ""))
	assert.False(t, p.Matches("/companies2", ""))
}

func TestPatternPrefixSegmentBoundary(t *testing.T) {
	p := Pattern{Kind: Prefix, Path: Dashboard}

	assert.True(t, p.Matches("/dashboard", ""))
	assert.True(t, p.Matches("/dashboard/stats", ""))
	assert.True(t, p.Matches("/dashboard/stats/weekly", ""))

	// A longer sibling segment must never match the prefix.
	assert.False(t, p.Matches("/dashboard-v2", ""))
	assert.False(t, p.Matches("/dashboardish", ""))
}

func TestPatternParam(t *testing.T) {
	p := Pattern{Kind: Param, Path: Companies + "/:id"}

	assert.True(t, p.Matches("/companies/c1", "c1"))
	assert.False(t, p.Matches("/companies/c2", "c1"), "param value must match")
	assert.False(t, p.Matches("/companies/c1", ""), "empty param never matches")
	assert.False(t, p.Matches("/companies/c1/edit", "c1"), "segment count must match")
	assert.False(t, p.Matches("/companies", "c1"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", Normalize(""))
	assert.Equal(t, "/", Normalize("/"))
	assert.Equal(t, "/companies", Normalize("/companies/"))
	assert.Equal(t, "/companies/c1", Normalize("/companies/c1"))
}
