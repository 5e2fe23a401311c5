package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinces(t *testing.T) {
	provinces := Provinces()
	require.Len(t, provinces, 9)
	for _, p := range provinces {
		assert.NotEmpty(t, p.Code)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Districts, "province %s has no districts", p.Code)
	}
}

func TestProvinceName(t *testing.T) {
	assert.Equal(t, "Western", ProvinceName("WP"))
	assert.Equal(t, "Southern", ProvinceName("SP"))
	assert.Equal(t, "", ProvinceName("XX"))
}

func TestDistrictName(t *testing.T) {
	assert.Equal(t, "Colombo", DistrictName("CO"))
	assert.Equal(t, "Kandy", DistrictName("KD"))
	assert.Equal(t, "", DistrictName("XX"))
}

func TestDistrictInProvince(t *testing.T) {
	assert.True(t, DistrictInProvince("CO", "WP"))
	assert.False(t, DistrictInProvince("CO", "SP"))
	// empty district is vacuously in any province so cascading resets
	// do not fire on untouched forms
	assert.True(t, DistrictInProvince("", "WP"))
	assert.False(t, DistrictInProvince("XX", "WP"))
}
