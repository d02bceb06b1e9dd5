package consts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionByName(t *testing.T) {
	r, ok := RegionByName("yangon")
	assert.True(t, ok)
	assert.Equal(t, "YGN", r.Code)

	r, ok = RegionByName(" Other ")
	assert.True(t, ok)
	assert.Equal(t, "", r.Code, "the catch-all region has no id prefix")

	_, ok = RegionByName("Atlantis")
	assert.False(t, ok)
}
