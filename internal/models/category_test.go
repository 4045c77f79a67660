package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySet_SortedAndString(t *testing.T) {
	tests := []struct {
		name       string
		categories []ProblemCategory
		wantSorted []ProblemCategory
		wantString string
	}{
		{"empty", nil, []ProblemCategory{}, ""},
		{"single", []ProblemCategory{CategoryLanguage}, []ProblemCategory{CategoryLanguage}, "language"},
		{
			"pair given out of order",
			[]ProblemCategory{CategoryLanguage, CategoryBehavior},
			[]ProblemCategory{CategoryBehavior, CategoryLanguage},
			"behavior_language",
		},
		{
			"all three",
			[]ProblemCategory{CategoryDevelopment, CategoryLanguage, CategoryBehavior},
			[]ProblemCategory{CategoryBehavior, CategoryDevelopment, CategoryLanguage},
			"behavior_development_language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCategorySet(tt.categories...)
			assert.Equal(t, tt.wantSorted, s.Sorted())
			assert.Equal(t, tt.wantString, s.String())
			assert.Equal(t, len(tt.wantSorted), s.Len())
		})
	}
}

func TestCategorySet_IgnoresUnknown(t *testing.T) {
	s := NewCategorySet("motor", CategoryBehavior)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Has(CategoryBehavior))
	assert.False(t, s.Has("motor"))
}

func TestCategorySet_MembersKeepPresentationOrder(t *testing.T) {
	s := NewCategorySet(CategoryDevelopment, CategoryLanguage)
	assert.Equal(t, []ProblemCategory{CategoryLanguage, CategoryDevelopment}, s.Members())
}

func TestAllCategorySets(t *testing.T) {
	sets := AllCategorySets()
	assert.Len(t, sets, 7)

	seen := make(map[string]bool)
	for _, s := range sets {
		assert.False(t, s.IsEmpty())
		seen[s.String()] = true
	}
	assert.Len(t, seen, 7)
}

func TestRuleKeyString(t *testing.T) {
	key := RuleKey{
		Categories:  NewCategorySet(CategoryLanguage, CategoryBehavior),
		Environment: EnvironmentHome,
	}
	assert.Equal(t, "behavior_language_home", key.String())
}

func TestEnvironmentValidity(t *testing.T) {
	assert.True(t, EnvironmentHome.IsValid())
	assert.True(t, EnvironmentInstitution.IsValid())
	assert.False(t, EnvironmentNone.IsValid())
	assert.False(t, SupportEnvironment("school").IsValid())
}

func TestEnvironmentLabel(t *testing.T) {
	assert.Equal(t, "가정 중심 (부모 주도형)", Environment{Title: "가정 중심", Subtitle: "부모 주도형"}.Label())
	assert.Equal(t, "가정 중심", Environment{Title: "가정 중심"}.Label())
}
