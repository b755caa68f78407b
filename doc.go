// Package pptmaker is the state engine behind a multi-step marketing
// proposal wizard: an influencer-campaign proposal is assembled step by step
// (brand brief, goals, audience, deliverables, key insight, generate), and
// this module owns every state transition of that flow.
//
// # Architecture
//
// The engine is a pure reducer wrapped in a thin stateful shell. All
// mutations are actions dispatched through wizard.Reduce; illegal
// transitions are silent no-ops so UI layers can dispatch speculatively.
// wizard.Session adds the side effects around the pure core: locking,
// wall-clock timestamps, structured logging, and metrics.
//
// Packages:
//
//   - step: ordered step registry, the sequencing source of truth
//   - wizard: state aggregate, actions, pure reducer, Session shell
//   - history: per-field branch-truncating version stacks (capped at 10)
//   - enrich: conflict-resolution merge of research payloads into step data
//   - validate: declarative per-step field validation
//   - project: flattens step data into the proposal shape for generation
//   - document: decodes caller-owned document blobs (resume vs extraction)
//   - metric: Prometheus registration shared by all of the above
//
// # Boundaries
//
// The engine is deliberately storage- and transport-agnostic: it never
// persists, renders, or talks to AI providers. Callers own the document
// store and the research fetchers; the engine exposes snapshots, a dirty
// flag for debounced saves, and enrichment hooks, and nothing else.
package pptmaker
