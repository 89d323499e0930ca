package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesClosedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 26)

	seen := make(map[Category]bool)
	for _, c := range cats {
		assert.True(t, c.Valid(), string(c))
		assert.False(t, seen[c], "duplicate category %q", c)
		seen[c] = true
	}
}

func TestCategoryValidIsCaseSensitive(t *testing.T) {
	assert.True(t, Category("Navigation").Valid())
	assert.False(t, Category("navigation").Valid())
	assert.False(t, Category("NAVIGATION").Valid())
	assert.False(t, Category("Avionics").Valid())
	assert.False(t, Category("").Valid())
}

func TestRelationTypeValid(t *testing.T) {
	for _, rt := range RelationTypes() {
		assert.True(t, rt.Valid(), string(rt))
	}
	assert.False(t, RelationType("seealso").Valid())
	assert.False(t, RelationType("parent").Valid())
	assert.False(t, RelationType("").Valid())
}

func TestSectionNameValid(t *testing.T) {
	assert.Len(t, SectionNames(), 5)
	for _, n := range SectionNames() {
		assert.True(t, n.Valid(), string(n))
	}
	assert.False(t, SectionName("whatitis").Valid())
	assert.False(t, SectionName("summary").Valid())
}

func TestIsKebabCase(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"flight-level", true},
		{"vor", true},
		{"ils-cat-3", true},
		{"a", true},
		{"0-9", true},
		{"Flight_Level", false},
		{"flight--level", false},
		{"-flight", false},
		{"flight-", false},
		{"flight level", false},
		{"FLIGHT", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsKebabCase(tt.in), tt.in)
	}
}

func TestBatchIDsAndCategorySet(t *testing.T) {
	b := &Batch{Terms: []Term{
		{ID: "vor", Category: CategoryNavigation},
		{ID: "metar", Category: CategoryWeather},
		{ID: "dme", Category: CategoryNavigation},
	}}

	assert.Equal(t, []string{"vor", "metar", "dme"}, b.IDs())
	assert.Equal(t, []Category{CategoryNavigation, CategoryWeather}, b.CategorySet())
}
