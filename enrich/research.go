// Package enrich reconciles asynchronous research results into wizard step data.
//
// Research payloads are semi-structured external documents whose schema this
// core does not own. The types here are minimal structural views: only the
// paths the merger reads are declared, so upstream providers can evolve
// without breaking the engine.
package enrich

// BrandResearch is the structural view of a brand research document
type BrandResearch struct {
	Name               string       `json:"name,omitempty"`
	Website            string       `json:"website,omitempty"`
	CompanyDescription string       `json:"companyDescription,omitempty"`
	PainPoints         []string     `json:"painPoints,omitempty"`
	ContentThemes      []string     `json:"contentThemes,omitempty"`
	Competitors        []Competitor `json:"competitors,omitempty"`
}

// Competitor is one competitor entry inside brand research
type Competitor struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InfluencerResearch is the structural view of an influencer strategy document
type InfluencerResearch struct {
	Gender         string   `json:"gender,omitempty"`
	AgeRange       string   `json:"ageRange,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	ContentPillars []string `json:"contentPillars,omitempty"`
	KeyInsight     string   `json:"keyInsight,omitempty"`
	Tiers          []Tier   `json:"tiers,omitempty"`
	KPIs           []KPI    `json:"kpis,omitempty"`
}

// Tier is one influencer tier with its recommended headcount. The count
// arrives loosely typed: a number, or a short-form string like "12" or "1-2".
type Tier struct {
	Name             string `json:"name"`
	FollowerRange    string `json:"followerRange,omitempty"`
	RecommendedCount any    `json:"recommendedCount,omitempty"`
}

// KPI is one labeled target from influencer research. Labels are free-form
// natural language, frequently Hebrew, and targets come as short-form
// magnitude strings ("12K", "3.4M") or plain numbers.
type KPI struct {
	Label  string `json:"label"`
	Target any    `json:"target,omitempty"`
}
