package models

import (
	"sort"
	"strings"
)

// ProblemCategory identifies one area of developmental need.
type ProblemCategory string

// Problem category identifiers
const (
	CategoryLanguage    ProblemCategory = "language"
	CategoryBehavior    ProblemCategory = "behavior"
	CategoryDevelopment ProblemCategory = "development"
)

// Categories lists every problem category in presentation order.
var Categories = []ProblemCategory{
	CategoryLanguage,
	CategoryBehavior,
	CategoryDevelopment,
}

// bit returns the CategorySet bit for the category, or 0 if unknown.
func (c ProblemCategory) bit() CategorySet {
	for i, known := range Categories {
		if known == c {
			return 1 << uint(i)
		}
	}
	return 0
}

// IsValid reports whether c is one of the fixed problem categories.
func (c ProblemCategory) IsValid() bool {
	return c.bit() != 0
}

// Question is a single checkbox on the diagnosis screen.
type Question struct {
	ID    string // Question identifier, unique within its category
	Label string // Text shown next to the checkbox
	Other bool   // True for the free-form "other" flag of the category
}

// Category is the reference record for a ProblemCategory.
type Category struct {
	ID        ProblemCategory
	Title     string
	Icon      string
	Questions []Question
}

// QuestionIDs returns the question identifiers in display order.
func (c Category) QuestionIDs() []string {
	ids := make([]string, 0, len(c.Questions))
	for _, q := range c.Questions {
		ids = append(ids, q.ID)
	}
	return ids
}

// CategorySet is a set of problem categories.
// The zero value is the empty set.
type CategorySet uint8

// NewCategorySet builds a set from the given categories.
// Unknown categories are ignored.
func NewCategorySet(categories ...ProblemCategory) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s = s.With(c)
	}
	return s
}

// With returns a copy of the set that also contains c.
func (s CategorySet) With(c ProblemCategory) CategorySet {
	return s | c.bit()
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c ProblemCategory) bool {
	b := c.bit()
	return b != 0 && s&b != 0
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	n := 0
	for _, c := range Categories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the set has no members.
func (s CategorySet) IsEmpty() bool {
	return s.Len() == 0
}

// Members returns the categories of the set in presentation order.
func (s CategorySet) Members() []ProblemCategory {
	members := make([]ProblemCategory, 0, len(Categories))
	for _, c := range Categories {
		if s.Has(c) {
			members = append(members, c)
		}
	}
	return members
}

// Sorted returns the categories of the set sorted lexicographically by name.
func (s CategorySet) Sorted() []ProblemCategory {
	members := s.Members()
	sort.Slice(members, func(i, j int) bool {
		return members[i] < members[j]
	})
	return members
}

// String joins the sorted category names with underscores.
func (s CategorySet) String() string {
	sorted := s.Sorted()
	names := make([]string, len(sorted))
	for i, c := range sorted {
		names[i] = string(c)
	}
	return strings.Join(names, "_")
}

// AllCategorySets returns every non-empty subset of the problem categories.
func AllCategorySets() []CategorySet {
	full := CategorySet(1<<uint(len(Categories))) - 1
	sets := make([]CategorySet, 0, int(full))
	for s := CategorySet(1); s <= full; s++ {
		sets = append(sets, s)
	}
	return sets
}
