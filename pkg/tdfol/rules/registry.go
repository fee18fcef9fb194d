package rules

import "sync"

var (
	registryOnce sync.Once
	allRules     []Rule
	byName       map[string]Rule
)

func buildRegistry() {
	allRules = make([]Rule, 0, 60)
	allRules = append(allRules, Basic()...)
	allRules = append(allRules, Temporal()...)
	allRules = append(allRules, Deontic()...)
	allRules = append(allRules, Combined()...)

	byName = make(map[string]Rule, len(allRules))
	for _, r := range allRules {
		byName[r.Name] = r
	}
}

// All returns every rule in the library, basic first, then temporal,
// deontic, and combined.
func All() []Rule {
	registryOnce.Do(buildRegistry)
	out := make([]Rule, len(allRules))
	copy(out, allRules)
	return out
}

// ByName looks up a rule by its registered name.
func ByName(name string) (Rule, bool) {
	registryOnce.Do(buildRegistry)
	r, ok := byName[name]
	return r, ok
}
