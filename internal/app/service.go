// Package service provides the core business service that implements
// the dependencies required by the HTTP API: it owns the market index,
// the valuation feed, and the stored roster, and coordinates refreshes.
package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/tcorrea/cartoart/internal/adapters/upstream/cartola"
	"github.com/tcorrea/cartoart/internal/adapters/upstream/gatomestre"
	"github.com/tcorrea/cartoart/internal/domain/club"
	"github.com/tcorrea/cartoart/internal/domain/market"
	"github.com/tcorrea/cartoart/internal/domain/position"
	"github.com/tcorrea/cartoart/internal/domain/roster"
	"github.com/tcorrea/cartoart/internal/domain/types"
	"github.com/tcorrea/cartoart/internal/domain/valuation"
	"github.com/tcorrea/cartoart/pkg/logger"
	"github.com/tcorrea/cartoart/pkg/metrics"
)

// MarketSource fetches market snapshots.
type MarketSource interface {
	Snapshot(ctx context.Context) (cartola.Snapshot, error)
}

// ValuationSource fetches the secondary valuation feed.
type ValuationSource interface {
	Metrics(ctx context.Context) (map[string]float64, error)
}

// Service is the context object the resolver API operates on. The market
// index and valuation feed are swapped wholesale behind atomic pointers;
// readers never observe a partially built structure. The roster and
// publication bookkeeping sit behind a mutex.
type Service struct {
	mu sync.Mutex

	// Swapped wholesale; read lock-free.
	index atomic.Pointer[market.Index]
	feed  atomic.Pointer[valuation.Feed]

	// Publication bookkeeping (under mu). fetchSeq is taken at fetch
	// start; a fetch publishes only if no later fetch published first,
	// so a slow stale fetch can never overwrite newer data.
	fetchSeq     atomic.Uint64
	publishedSeq uint64
	snapshotID   string

	// Stored roster (under mu).
	picks    []roster.Entry
	notFound []string

	// Collaborators and configuration.
	clubs           *club.Resolver
	marketSrc       MarketSource
	valuationSrc    ValuationSource
	fallbackPath    string
	refreshInterval time.Duration
	maxRosterRows   int

	credentialExpired bool

	sf      singleflight.Group
	started bool
	stopCh  chan struct{}
	log     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMarketSource sets the market snapshot source.
func WithMarketSource(src MarketSource) Option {
	return func(s *Service) { s.marketSrc = src }
}

// WithValuationSource sets the valuation feed source.
func WithValuationSource(src ValuationSource) Option {
	return func(s *Service) { s.valuationSrc = src }
}

// WithClubResolver sets the club synonym resolver.
func WithClubResolver(r *club.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.clubs = r
		}
	}
}

// WithFallbackSnapshotPath sets the local dataset used when the market
// fetch fails.
func WithFallbackSnapshotPath(path string) Option {
	return func(s *Service) { s.fallbackPath = path }
}

// WithRefreshInterval sets the periodic market refresh cadence.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithMaxRosterRows caps the number of rows accepted per upload.
func WithMaxRosterRows(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRosterRows = n
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clubs:           club.Default(),
		refreshInterval: 5 * time.Minute,
		maxRosterRows:   200,
		stopCh:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start performs the initial feed refreshes and starts the periodic
// market refresh. Initial fetch failures are logged, not fatal: the
// service keeps answering found:false until a snapshot arrives.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	s.started = true
	s.mu.Unlock()

	s.log.Info(ctx, "starting resolver service",
		logger.String("club_table_version", s.clubs.Version()),
		logger.Int("club_synonyms", s.clubs.Size()),
	)

	if err := s.RefreshMarket(ctx); err != nil {
		s.log.Warn(ctx, "initial market refresh failed", logger.Error(err))
	}
	if err := s.RefreshValuation(ctx); err != nil {
		s.log.Warn(ctx, "initial valuation refresh failed", logger.Error(err))
	}

	go s.refreshLoop(ctx)
	return nil
}

// Stop shuts down the periodic refresh.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
}

func (s *Service) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.RefreshMarket(ctx); err != nil {
				s.log.Warn(ctx, "periodic market refresh failed", logger.Error(err))
			}
			if err := s.RefreshValuation(ctx); err != nil {
				s.log.Warn(ctx, "periodic valuation refresh failed", logger.Error(err))
			}
		}
	}
}

// RefreshMarket fetches a market snapshot, rebuilds the index, and swaps
// it in. Concurrent callers collapse into one fetch. A fetch that lost
// the race to a newer one is discarded, never published.
func (s *Service) RefreshMarket(ctx context.Context) error {
	_, err, _ := s.sf.Do("market", func() (any, error) {
		return nil, s.refreshMarket(ctx)
	})
	return err
}

func (s *Service) refreshMarket(ctx context.Context) error {
	seq := s.fetchSeq.Add(1)

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	ix := market.BuildIndex(snap.Records, snap.Clubs, s.clubs)
	metrics.RecordSnapshotRebuild(float64(time.Since(start).Milliseconds()))

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.publishedSeq {
		metrics.RecordSnapshotStale()
		s.log.Warn(ctx, "discarding stale market snapshot",
			logger.Int("fetch_seq", int(seq)),
			logger.Int("published_seq", int(s.publishedSeq)),
		)
		return nil
	}

	s.index.Store(ix)
	s.publishedSeq = seq
	s.snapshotID = uuid.NewString()
	metrics.RecordSnapshotPublished(float64(time.Now().Unix()))
	metrics.UpdateSnapshotRecords(ix.Len(), ix.Skipped())

	// The stored roster is priced against whichever snapshot is current.
	s.enrichLocked()

	s.log.Info(ctx, "market snapshot published",
		logger.String("snapshot_id", s.snapshotID),
		logger.Int("indexed", ix.Len()),
		logger.Int("skipped", ix.Skipped()),
	)
	return nil
}

// fetchSnapshot tries upstream first and falls back to the local dataset.
func (s *Service) fetchSnapshot(ctx context.Context) (cartola.Snapshot, error) {
	if s.marketSrc != nil {
		snap, err := s.marketSrc.Snapshot(ctx)
		if err == nil {
			return snap, nil
		}
		if s.fallbackPath == "" {
			return cartola.Snapshot{}, err
		}
		s.log.Warn(ctx, "market fetch failed, using fallback dataset",
			logger.Error(err), logger.String("path", s.fallbackPath))
	}
	if s.fallbackPath == "" {
		return cartola.Snapshot{}, ErrNoMarketSource
	}
	return cartola.LoadLocal(s.fallbackPath)
}

// RefreshValuation fetches the valuation feed. Credential absence and
// expiry degrade to "no data": resolution keeps working without metrics.
func (s *Service) RefreshValuation(ctx context.Context) error {
	_, err, _ := s.sf.Do("valuation", func() (any, error) {
		return nil, s.refreshValuation(ctx)
	})
	return err
}

func (s *Service) refreshValuation(ctx context.Context) error {
	if s.valuationSrc == nil {
		return nil
	}

	m, err := s.valuationSrc.Metrics(ctx)
	switch {
	case errors.Is(err, gatomestre.ErrNoCredential):
		s.log.Debug(ctx, "valuation feed skipped: no credential")
		return nil
	case errors.Is(err, gatomestre.ErrCredentialExpired):
		s.setCredentialExpired(true)
		metrics.RecordValuationRefreshError()
		s.log.Warn(ctx, "valuation credential expired; refresh the token")
		return nil
	case err != nil:
		metrics.RecordValuationRefreshError()
		return err
	}

	s.feed.Store(valuation.NewFeed(m))
	s.setCredentialExpired(false)
	metrics.UpdateValuationRecords(len(m))

	s.mu.Lock()
	s.enrichLocked()
	s.mu.Unlock()

	s.log.Info(ctx, "valuation feed refreshed", logger.Int("records", len(m)))
	return nil
}

func (s *Service) setCredentialExpired(expired bool) {
	s.mu.Lock()
	s.credentialExpired = expired
	s.mu.Unlock()
	metrics.SetValuationCredentialExpired(expired)
}

// ResolveQuery resolves a single (name, club, position) triple. If no
// index exists yet it lazily triggers a refresh; if one still cannot be
// built the answer is found:false, never an error.
func (s *Service) ResolveQuery(ctx context.Context, name, clubLabel, rawPosition string) types.ResolveAnswer {
	ix := s.index.Load()
	if ix == nil {
		if err := s.RefreshMarket(ctx); err != nil {
			s.log.Debug(ctx, "lazy market refresh failed", logger.Error(err))
		}
		ix = s.index.Load()
	}
	if ix == nil {
		metrics.RecordRefusal("no_index")
		return types.ResolveAnswer{Reason: "no_index"}
	}

	res := s.resolve(ix, name, clubLabel, rawPosition)
	answer := types.ResolveAnswer{Found: res.Found}
	if !res.Found {
		answer.Reason = res.Reason.String()
		return answer
	}

	answer.RecordID = res.Record.ID
	answer.MatchedBy = string(res.MatchedBy)
	if res.Price.Valid {
		price := res.Price.Decimal
		answer.Price = &price
	}
	if v, ok := s.feed.Load().Metric(res.Record.ID); ok {
		answer.Metric = &v
		answer.Tier = string(valuation.TierFor(res.Record.Position, v))
	}
	return answer
}

// resolve runs one query against the given index and records metrics.
func (s *Service) resolve(ix *market.Index, name, clubLabel, rawPosition string) market.Resolution {
	res := ix.Resolve(name, clubLabel, rawPosition)
	if res.Found {
		metrics.RecordResolution(string(res.MatchedBy))
	} else {
		metrics.RecordRefusal(res.Reason.String())
	}
	return res
}

// SetRoster parses an uploaded picks CSV, enriches it against the current
// snapshot, and stores it. Returns the number of accepted entries and the
// labels of picks that did not resolve.
func (s *Service) SetRoster(ctx context.Context, r io.Reader) (int, []string, error) {
	entries, err := roster.Parse(r)
	if err != nil {
		return 0, nil, err
	}
	if len(entries) > s.maxRosterRows {
		return 0, nil, ErrRosterTooLarge
	}

	s.mu.Lock()
	s.picks = entries
	s.enrichLocked()
	count := len(s.picks)
	notFound := append([]string(nil), s.notFound...)
	s.mu.Unlock()

	s.log.Info(ctx, "roster stored",
		logger.Int("entries", count),
		logger.Int("not_found", len(notFound)),
	)
	return count, notFound, nil
}

// enrichLocked re-prices every stored pick against the current index and
// valuation feed. Caller holds s.mu.
func (s *Service) enrichLocked() {
	ix := s.index.Load()
	feed := s.feed.Load()

	s.notFound = s.notFound[:0]
	for i := range s.picks {
		e := &s.picks[i]
		e.Found = false
		e.Price.Valid = false
		e.RecordID = ""
		e.Metric = nil
		e.Tier = ""

		if ix == nil {
			s.notFound = append(s.notFound, e.Label())
			continue
		}
		res := s.resolve(ix, e.Name, e.Club, e.Position)
		if !res.Found {
			s.notFound = append(s.notFound, e.Label())
			continue
		}
		e.Found = true
		e.Price = res.Price
		e.RecordID = res.Record.ID
		if v, ok := feed.Metric(res.Record.ID); ok {
			v := v
			e.Metric = &v
			e.Tier = valuation.TierFor(res.Record.Position, v)
		}
	}
	metrics.UpdateRosterCounts(len(s.picks), len(s.notFound))
}

// Lineup returns the stored roster after enrichment, with the diagnostic
// list of unresolved picks.
func (s *Service) Lineup(_ context.Context) types.Lineup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := types.Lineup{
		SnapshotID: s.snapshotID,
		Picks:      make([]types.Pick, 0, len(s.picks)),
		NotFound:   append([]string(nil), s.notFound...),
	}
	for i := range s.picks {
		e := &s.picks[i]
		p := types.Pick{
			Position:     e.Position,
			Name:         e.Name,
			Club:         e.Club,
			Confidence:   e.Confidence,
			Captain:      e.Captain,
			Unanimous:    e.Unanimous,
			LuxuryBackup: e.LuxuryBackup,
			Found:        e.Found,
			RecordID:     e.RecordID,
			Tier:         string(e.Tier),
			Metric:       e.Metric,
		}
		if e.Price.Valid {
			price := e.Price.Decimal
			p.Price = &price
		}
		out.Picks = append(out.Picks, p)
	}
	return out
}

// RefreshAll triggers both feed refreshes (manual "update market" action).
func (s *Service) RefreshAll(ctx context.Context) error {
	if err := s.RefreshMarket(ctx); err != nil {
		return err
	}
	return s.RefreshValuation(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"started":                  s.started,
		"snapshot_id":              s.snapshotID,
		"club_table_version":       s.clubs.Version(),
		"roster_entries":           len(s.picks),
		"roster_not_found":         len(s.notFound),
		"valuation_records":        s.feed.Load().Len(),
		"valuation_cred_expired":   s.credentialExpired,
		"refresh_interval_seconds": int(s.refreshInterval.Seconds()),
	}
	if ix := s.index.Load(); ix != nil {
		stats["snapshot_records"] = ix.Len()
		stats["snapshot_skipped"] = ix.Skipped()
	}
	return stats
}

// PositionCodes lists the accepted roster position codes, for diagnostics.
func (s *Service) PositionCodes() []string {
	all := position.All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.String()
	}
	return out
}
