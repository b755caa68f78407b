package enrich

import "strings"

// kpiSlot binds a typed numeric goal field to the label synonyms that select
// it. Research KPI labels are natural language in mixed Hebrew and English,
// so matching is fuzzy substring across the variants rather than exact
// equality; exact matching silently drops valid matches.
type kpiSlot struct {
	field    string
	synonyms []string
}

// The synonym lists are heuristic and deliberately short; ambiguous labels
// resolve to the first slot that matches.
var kpiSlots = []kpiSlot{
	{field: "targetReach", synonyms: []string{"reach", "חשיפה", "הגעה"}},
	{field: "targetImpressions", synonyms: []string{"impressions", "views", "צפיות", "הופעות"}},
	{field: "targetEngagement", synonyms: []string{"engagement", "מעורבות", "אינטראקציה", "er"}},
	{field: "targetConversions", synonyms: []string{"conversions", "conversion", "המרות", "מכירות", "cvr"}},
}

// matchKPIField resolves a free-form KPI label to a typed goal field.
// Short synonyms (acronyms like "er", "cvr") match only as whole tokens to
// avoid false hits inside longer words; the rest match as case-insensitive
// substrings in either direction.
func matchKPIField(label string) (string, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return "", false
	}
	tokens := strings.Fields(label)

	for _, slot := range kpiSlots {
		for _, syn := range slot.synonyms {
			if len(syn) <= 3 {
				for _, tok := range tokens {
					if tok == syn {
						return slot.field, true
					}
				}
				continue
			}
			if strings.Contains(label, syn) || strings.Contains(syn, label) {
				return slot.field, true
			}
		}
	}
	return "", false
}
