package enrich

import (
	"context"
	stderrors "errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// BrandFetcher retrieves a brand research document. Network, prompting, and
// cancellation are the caller's concern; the coordinator only joins results.
type BrandFetcher func(ctx context.Context) (*BrandResearch, error)

// InfluencerFetcher retrieves an influencer strategy document
type InfluencerFetcher func(ctx context.Context) (*InfluencerResearch, error)

// Coordinator fires both research fetchers concurrently and joins them
// all-settled before invoking the merger, so the merger never observes a
// partial or racing update: it always gets a consistent baseline plus zero,
// one, or two complete payloads.
type Coordinator struct {
	brand      BrandFetcher
	influencer InfluencerFetcher
	logger     *slog.Logger
	core       *metric.CoreMetrics
}

// NewCoordinator creates a coordinator. Either fetcher may be nil when that
// research source is not requested; metricsRegistry may be nil.
func NewCoordinator(
	brand BrandFetcher,
	influencer InfluencerFetcher,
	logger *slog.Logger,
	metricsRegistry *metric.MetricsRegistry,
) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	var core *metric.CoreMetrics
	if metricsRegistry != nil {
		core = metricsRegistry.Core()
	}
	return &Coordinator{
		brand:      brand,
		influencer: influencer,
		logger:     logger,
		core:       core,
	}
}

// Enrich runs the configured fetchers and merges whatever settled
// successfully into the baseline. One failed fetch degrades to a partial
// merge; only when every requested fetch fails does Enrich return the
// baseline untouched along with the joined error.
func (c *Coordinator) Enrich(
	ctx context.Context,
	baseline map[step.ID]wizard.StepData,
) (map[step.ID]wizard.StepData, error) {
	var (
		brandRes *BrandResearch
		inflRes  *InfluencerResearch
		brandErr error
		inflErr  error
	)

	// A plain group, not WithContext: one failure must not cancel the other
	// fetch. Errors are collected, never returned, so Wait always joins both.
	var g errgroup.Group

	requested := 0
	if c.brand != nil {
		requested++
		g.Go(func() error {
			brandRes, brandErr = c.brand(ctx)
			return nil
		})
	}
	if c.influencer != nil {
		requested++
		g.Go(func() error {
			inflRes, inflErr = c.influencer(ctx)
			return nil
		})
	}
	_ = g.Wait()

	if brandErr != nil {
		c.logger.Warn("Brand research fetch failed", "error", brandErr)
		brandRes = nil
	}
	if inflErr != nil {
		c.logger.Warn("Influencer research fetch failed", "error", inflErr)
		inflRes = nil
	}

	settled := 0
	if brandRes != nil {
		settled++
	}
	if inflRes != nil {
		settled++
	}

	status := "empty"
	switch {
	case requested > 0 && settled == requested:
		status = "full"
	case settled > 0:
		status = "partial"
	}
	if c.core != nil {
		c.core.EnrichmentsTotal.WithLabelValues(status).Inc()
	}

	if requested > 0 && settled == 0 {
		joined := stderrors.Join(brandErr, inflErr)
		return baseline, errors.WrapTransient(
			stderrors.Join(errors.ErrResearchUnavailable, joined),
			"Coordinator", "Enrich", "all research fetches")
	}

	merged := Merge(baseline, brandRes, inflRes)
	c.logger.Info("Research enrichment merged",
		"status", status,
		"brand", brandRes != nil,
		"influencer", inflRes != nil)
	return merged, nil
}
