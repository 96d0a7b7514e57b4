package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("job_types")
	assert.True(t, ok)
	assert.Equal(t, KindJobTypes, k)

	k, ok = ParseKind(" Plan-Types ")
	assert.True(t, ok)
	assert.Equal(t, KindPlanTypes, k)

	_, ok = ParseKind("orders")
	assert.False(t, ok)
}

func TestKindPath(t *testing.T) {
	assert.Equal(t, "/api/v1/video-subcategories/", KindVideoSubcategories.Path())
	assert.Len(t, Kinds, 14)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleSuperadmin.Valid())
	assert.False(t, Role("guest").Valid())
}
