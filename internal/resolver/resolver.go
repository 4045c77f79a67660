// Package resolver turns the active problem categories and the chosen
// support environment into a recommended plan.
package resolver

import (
	"sort"

	"github.com/simplestep/pathfinder/internal/catalog"
	"github.com/simplestep/pathfinder/internal/models"
)

// Resolver looks plans up in a catalogue's rule table.
// It is stateless and safe for concurrent use.
type Resolver struct {
	catalog *catalog.Catalog
}

// New creates a Resolver over the given catalogue.
// A nil catalogue selects the built-in one.
func New(c *catalog.Catalog) *Resolver {
	if c == nil {
		c = catalog.Default()
	}
	return &Resolver{catalog: c}
}

// Resolve returns the plan recommended for the active categories under env.
//
// An empty category set yields the default plan whatever the environment.
// A combination without a rule also degrades to the default plan; Resolve
// never fails. The returned steps are sorted by step number, contain no
// duplicates and never alias catalogue storage.
func (r *Resolver) Resolve(active models.CategorySet, env models.SupportEnvironment) models.RecommendedPlan {
	if active.IsEmpty() {
		return r.catalog.DefaultPlan()
	}

	plan, ok := r.catalog.Rule(models.RuleKey{Categories: active, Environment: env})
	if !ok {
		return r.catalog.DefaultPlan()
	}

	plan.Steps = normalizeSteps(plan.Steps)
	return plan
}

// normalizeSteps sorts steps ascending by number and drops repeats.
func normalizeSteps(steps []models.StepID) []models.StepID {
	out := make([]models.StepID, 0, len(steps))
	seen := make(map[models.StepID]bool, len(steps))
	for _, s := range steps {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number() < out[j].Number()
	})
	return out
}
