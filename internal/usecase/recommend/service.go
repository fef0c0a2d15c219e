package recommend

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/recopanel/internal/domain/panel"
	"github.com/kailas-cloud/recopanel/internal/domain/recommendation"
	logpkg "github.com/kailas-cloud/recopanel/internal/logger"
	"github.com/kailas-cloud/recopanel/internal/metrics"
)

// Outcome is the resolution of one dispatched request.
type Outcome struct {
	Seq   uint64
	Items []recommendation.Item
	Err   error
}

// Apply reduces the outcome into s. Stale outcomes leave s unchanged.
func (o Outcome) Apply(s panel.State) panel.State {
	return s.Resolve(o.Seq, o.Items, o.Err)
}

// Service runs the query panel request lifecycle against the collaborator.
type Service struct {
	recommender Recommender
	logger      *zap.Logger
}

// New creates a recommend service. logger may be nil.
func New(recommender Recommender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{recommender: recommender, logger: logger}
}

// Begin applies the submit transition and records the submission kind.
// ok is false for a blank query, in which case nothing must be dispatched.
func (s *Service) Begin(st panel.State, raw string) (next panel.State, req panel.Request, ok bool) {
	next, req, ok = st.Submit(raw)
	if !ok {
		metrics.PanelSubmissionsTotal.WithLabelValues("ignored").Inc()
		return next, req, false
	}
	metrics.PanelSubmissionsTotal.WithLabelValues(string(req.Payload.Kind())).Inc()
	return next, req, true
}

// Fetch performs the single outbound call for req. The failure cause is logged
// here and carried in the outcome; it never reaches the user-facing message.
func (s *Service) Fetch(ctx context.Context, req panel.Request) Outcome {
	log := logpkg.FromContextOr(ctx, s.logger).With(
		zap.Uint64("seq", req.Seq),
		zap.String("kind", string(req.Payload.Kind())),
	)

	items, err := s.recommender.Recommend(ctx, req.Payload)
	if err != nil {
		log.Warn("recommendation request failed", zap.Error(err))
		return Outcome{Seq: req.Seq, Err: err}
	}

	log.Debug("recommendation request succeeded", zap.Int("items", len(items)))
	return Outcome{Seq: req.Seq, Items: items}
}

// Resolve applies outcome to st and records whether it was accepted.
func (s *Service) Resolve(st panel.State, outcome Outcome) panel.State {
	if !st.Accepts(outcome.Seq) {
		metrics.PanelOutcomesTotal.WithLabelValues("stale").Inc()
		s.logger.Debug("discarding stale recommendation result",
			zap.Uint64("seq", outcome.Seq),
			zap.Uint64("latest_seq", st.Seq()),
		)
		return st
	}
	if outcome.Err != nil {
		metrics.PanelOutcomesTotal.WithLabelValues("failed").Inc()
	} else {
		metrics.PanelOutcomesTotal.WithLabelValues("succeeded").Inc()
		metrics.PanelResultItems.Observe(float64(len(outcome.Items)))
	}
	return outcome.Apply(st)
}

// Submit runs one whole lifecycle synchronously: submit, dispatch, reconcile.
// A blank query returns st unchanged without calling the collaborator.
func (s *Service) Submit(ctx context.Context, st panel.State, raw string) panel.State {
	next, req, ok := s.Begin(st, raw)
	if !ok {
		return next
	}
	return s.Resolve(next, s.Fetch(ctx, req))
}
