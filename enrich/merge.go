package enrich

import (
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// userTypedThreshold is the length above which a text field is considered
// deliberate user content that enrichment must never overwrite automatically.
const userTypedThreshold = 20

// Merge reconciles the baseline step data with up to two research payloads
// and returns a new step-data map. Inputs are never mutated. When both
// payloads are nil the baseline is returned as-is.
//
// The rules follow one principle: research overrides guesses, but never
// silently destroys deliberate user content that is already richer.
//   - Free-text fields are overwritten only by strictly longer candidates.
//   - Semantic list fields are replaced wholesale by non-empty research lists.
//   - Short provisional text may be replaced; text above userTypedThreshold
//     is left alone, enrichment only fills what is effectively empty.
//   - Numeric slots are filled only when currently zero or absent.
func Merge(
	baseline map[step.ID]wizard.StepData,
	brand *BrandResearch,
	influencer *InfluencerResearch,
) map[step.ID]wizard.StepData {
	if brand == nil && influencer == nil {
		return baseline
	}

	out := cloneDataMap(baseline)
	if brand != nil {
		applyBrand(out, brand)
	}
	if influencer != nil {
		applyInfluencer(out, influencer)
	}

	// Working maps created for steps the research ended up not touching are
	// dropped so enrichment never adds spurious keys.
	for id, data := range out {
		if len(data) == 0 {
			if _, inBaseline := baseline[id]; !inBaseline {
				delete(out, id)
			}
		}
	}
	return out
}

func applyBrand(data map[step.ID]wizard.StepData, brand *BrandResearch) {
	brief := fieldMap(data, step.StepBrief)

	setText(brief, "brandName", fillProvisional(getString(brief, "brandName"), brand.Name))
	setText(brief, "website", fillProvisional(getString(brief, "website"), brand.Website))
	setText(brief, "brandBrief", replaceIfRicher(getString(brief, "brandBrief"), brand.CompanyDescription))

	if len(brand.Competitors) > 0 {
		list := make([]any, 0, len(brand.Competitors))
		for _, c := range brand.Competitors {
			list = append(list, map[string]any{
				"name":        c.Name,
				"description": c.Description,
			})
		}
		brief["competitors"] = list
	}

	audience := fieldMap(data, step.StepAudience)
	if len(brand.PainPoints) > 0 {
		audience["painPoints"] = toAnyList(brand.PainPoints)
	}

	if len(brand.ContentThemes) > 0 {
		insight := fieldMap(data, step.StepKeyInsight)
		if _, exists := insight["contentPillars"]; !exists {
			insight["contentPillars"] = toAnyList(brand.ContentThemes)
		}
	}
}

func applyInfluencer(data map[step.ID]wizard.StepData, infl *InfluencerResearch) {
	audience := fieldMap(data, step.StepAudience)
	setText(audience, "gender", fillProvisional(getString(audience, "gender"), infl.Gender))
	setText(audience, "ageRange", fillProvisional(getString(audience, "ageRange"), infl.AgeRange))
	if len(infl.Interests) > 0 {
		audience["interests"] = toAnyList(infl.Interests)
	}

	insight := fieldMap(data, step.StepKeyInsight)
	setText(insight, "insight", replaceIfRicher(getString(insight, "insight"), infl.KeyInsight))
	if len(infl.ContentPillars) > 0 {
		// Influencer strategy pillars win over brand content themes.
		insight["contentPillars"] = toAnyList(infl.ContentPillars)
	}

	if total := sumTierCounts(infl.Tiers); total > 0 {
		deliverables := fieldMap(data, step.StepDeliverables)
		if ParseCount(deliverables["influencerCount"]) == 0 {
			deliverables["influencerCount"] = total
		}
	}

	applyKPIs(data, infl.KPIs)
}

// applyKPIs routes labeled research targets into the typed numeric goal
// slots, matching labels fuzzily across language variants.
func applyKPIs(data map[step.ID]wizard.StepData, kpis []KPI) {
	if len(kpis) == 0 {
		return
	}
	goals := fieldMap(data, step.StepGoals)

	for _, kpi := range kpis {
		field, ok := matchKPIField(kpi.Label)
		if !ok {
			continue
		}
		target := ParseCount(kpi.Target)
		if target <= 0 {
			continue
		}
		if ParseCount(goals[field]) == 0 {
			goals[field] = target
		}
	}
}

// sumTierCounts rolls nested per-tier recommended counts up to a total headcount
func sumTierCounts(tiers []Tier) float64 {
	var total float64
	for _, t := range tiers {
		total += ParseCount(t.RecommendedCount)
	}
	return total
}

// replaceIfRicher keeps the current text unless the candidate is strictly longer
func replaceIfRicher(current, candidate string) string {
	if len(candidate) > len(current) {
		return candidate
	}
	return current
}

// fillProvisional replaces short provisional text with the candidate but
// never touches content above the user-typed threshold.
func fillProvisional(current, candidate string) string {
	if len(current) > userTypedThreshold {
		return current
	}
	if candidate == "" {
		return current
	}
	return candidate
}

// setText assigns only when the value is non-empty, so enrichment never
// introduces empty placeholder fields.
func setText(data wizard.StepData, field, value string) {
	if value == "" {
		return
	}
	data[field] = value
}

func getString(data wizard.StepData, field string) string {
	if s, ok := data[field].(string); ok {
		return s
	}
	return ""
}

// fieldMap returns the payload map for a step, creating it in place when the
// merge needs somewhere to put research-derived fields.
func fieldMap(data map[step.ID]wizard.StepData, id step.ID) wizard.StepData {
	if m, ok := data[id]; ok {
		return m
	}
	m := make(wizard.StepData)
	data[id] = m
	return m
}

func toAnyList(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func cloneDataMap(in map[step.ID]wizard.StepData) map[step.ID]wizard.StepData {
	out := make(map[step.ID]wizard.StepData, len(in))
	for id, data := range in {
		copied := make(wizard.StepData, len(data))
		for k, v := range data {
			copied[k] = v
		}
		out[id] = copied
	}
	return out
}
