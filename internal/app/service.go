// Package app provides the orchestrating service that ties the record
// ledger, the standings engine and the Swiss pairing generator together
// for an organizer application: report outcomes, read standings,
// request next-round pairings, mark retirements.
package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vssouza/rankings-core/internal/adapters/repository"
	"github.com/vssouza/rankings-core/internal/config"
	"github.com/vssouza/rankings-core/internal/domain/outcome"
	"github.com/vssouza/rankings-core/internal/domain/standings"
	"github.com/vssouza/rankings-core/internal/domain/swiss"
	"github.com/vssouza/rankings-core/internal/validate"
	"github.com/vssouza/rankings-core/pkg/logger"
	"github.com/vssouza/rankings-core/pkg/metrics"
)

// Service implements the organizer-facing operations over a state
// store. Every engine call is a pure function of the stored ledger; the
// service itself holds no tournament state.
type Service struct {
	store repository.Store
	log   logger.Logger

	winPoints      int
	drawPoints     int
	lossPoints     int
	byePoints      int
	tieBreakFloor  float64
	virtualBye     bool
	virtualByeRate float64
	headToHead     bool
	singleSided    bool
	pairingBudget  int
	eventSeed      string
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the tournament state store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithConfig applies every engine-relevant field of a loaded Config.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		s.winPoints = cfg.WinPoints
		s.drawPoints = cfg.DrawPoints
		s.lossPoints = cfg.LossPoints
		s.byePoints = cfg.ByePoints
		s.tieBreakFloor = cfg.TieBreakFloor
		s.virtualBye = cfg.VirtualBye
		s.virtualByeRate = cfg.VirtualByeRate
		s.headToHead = cfg.HeadToHead
		s.singleSided = cfg.SingleSided
		s.pairingBudget = cfg.PairingBudget
		s.eventSeed = cfg.EventSeed
	}
}

// WithEventSeed sets the seed of the deterministic tie-break hash.
func WithEventSeed(seed string) Option {
	return func(s *Service) {
		s.eventSeed = seed
	}
}

// WithSingleSided enables lenient one-sided outcome ingestion.
func WithSingleSided(enabled bool) Option {
	return func(s *Service) {
		s.singleSided = enabled
	}
}

// New constructs a Service with default scoring configuration and an
// in-memory store.
func New(opts ...Option) *Service {
	defaults := config.New()
	s := &Service{store: repository.NewMemStore(), log: logger.Nop()}
	WithConfig(defaults)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTournament registers a tournament roster.
func (s *Service) CreateTournament(ctx context.Context, tournamentID string, roster []string) error {
	if len(roster) < 2 {
		return fmt.Errorf("%w: %d entrants", ErrRosterTooSmall, len(roster))
	}
	if err := s.store.Register(ctx, tournamentID, roster); err != nil {
		return err
	}
	s.logf().Info(ctx, "tournament registered",
		logger.String("tournament", tournamentID), logger.Int("roster", len(roster)))
	return nil
}

// Report validates a batch of outcomes against the stored ledger and
// appends it. The whole batch is rejected if the combined ledger would
// not build, so the store never holds records the engines cannot
// consume.
func (s *Service) Report(ctx context.Context, tournamentID string, records []outcome.MatchOutcome) error {
	if err := validate.Outcomes(records); err != nil {
		metrics.RecordIngestionError()
		return err
	}
	existing, err := s.store.Outcomes(ctx, tournamentID)
	if err != nil {
		return err
	}
	if _, err := outcome.Build(append(existing, records...), outcome.WithSingleSided(s.singleSided)); err != nil {
		metrics.RecordIngestionError()
		return err
	}
	if err := s.store.AppendOutcomes(ctx, tournamentID, records); err != nil {
		return err
	}
	s.logf().Debug(ctx, "outcomes reported",
		logger.String("tournament", tournamentID), logger.Int("records", len(records)))
	return nil
}

// Retire marks a competitor withdrawn. Already-played rounds stand.
func (s *Service) Retire(ctx context.Context, tournamentID, competitorID string) error {
	if err := s.store.Retire(ctx, tournamentID, competitorID); err != nil {
		return err
	}
	s.logf().Info(ctx, "competitor retired",
		logger.String("tournament", tournamentID), logger.String("competitor", competitorID))
	return nil
}

// RetireWithForfeit marks a competitor withdrawn and synthesizes the
// forfeit pair for its current-round pairing, crediting the opponent.
func (s *Service) RetireWithForfeit(ctx context.Context, tournamentID, competitorID string, round int, pairings []swiss.Pairing) error {
	if err := s.Retire(ctx, tournamentID, competitorID); err != nil {
		return err
	}
	forfeits := SynthesizeForfeits(round, pairings, map[string]bool{competitorID: true})
	if len(forfeits) == 0 {
		return nil
	}
	return s.Report(ctx, tournamentID, forfeits)
}

// Standings computes the current ranked table from the stored ledger.
func (s *Service) Standings(ctx context.Context, tournamentID string) ([]standings.Row, error) {
	ledger, retired, err := s.ledger(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	rows := standings.Compute(ledger, s.standingsOptions(retired)...)
	metrics.RecordStandingsComputed(len(rows))
	return rows, nil
}

// NextRound generates the pairing list for the round after the last
// reported one, persisting the updated downfloat counters. The returned
// int is the round number the pairings are for.
func (s *Service) NextRound(ctx context.Context, tournamentID string) (swiss.Result, int, error) {
	ledger, retired, err := s.ledger(ctx, tournamentID)
	if err != nil {
		return swiss.Result{}, 0, err
	}
	prior, err := s.store.Downfloats(ctx, tournamentID)
	if err != nil {
		return swiss.Result{}, 0, err
	}

	var rows []standings.Row
	round := 1
	if ledger.Len() == 0 {
		// Nothing reported yet: the opening round pairs the roster in
		// event-hash order, one score group of zero-pointers.
		rows, err = s.openingTable(ctx, tournamentID, retired)
		if err != nil {
			return swiss.Result{}, 0, err
		}
	} else {
		rows = standings.Compute(ledger, s.standingsOptions(retired)...)
		round = lastRound(ledger) + 1
	}

	res := swiss.Generate(rows, ledger,
		swiss.WithEventSeed(s.eventSeed),
		swiss.WithStepBudget(s.pairingBudget),
		swiss.WithPriorDownfloats(prior),
	)
	if err := validate.Pairings(res.Pairings, res.Bye); err != nil {
		// Would indicate an engine defect, not bad input.
		return swiss.Result{}, 0, err
	}
	if err := s.store.SetDownfloats(ctx, tournamentID, res.DownfloatCounts); err != nil {
		return swiss.Result{}, 0, err
	}

	active := len(res.Pairings) * 2
	if res.Bye != "" {
		active++
		metrics.RecordByeAssigned()
	}
	metrics.RecordPairingsGenerated(active)
	metrics.RecordRematches(len(res.RematchesUsed))
	metrics.RecordSearchSteps(res.SearchSteps)
	metrics.RecordGreedyFallback(res.GreedyPairs)
	metrics.RecordDownfloats(floatDelta(prior, res.DownfloatCounts))
	for i := 0; i < res.GroupsAborted; i++ {
		metrics.RecordBudgetAbort()
	}

	s.logf().Info(ctx, "pairings generated",
		logger.String("tournament", tournamentID),
		logger.Int("round", round),
		logger.Int("pairings", len(res.Pairings)),
		logger.Bool("bye", res.Bye != ""),
		logger.Int("rematches", len(res.RematchesUsed)))
	return res, round, nil
}

// SynthesizeForfeits produces the mirrored forfeit records for every
// pairing with a retired side: the withdrawn competitor takes the
// forfeit loss and the opponent is credited the win. A pairing with
// both sides retired records two losses and no winner.
func SynthesizeForfeits(round int, pairings []swiss.Pairing, retired map[string]bool) []outcome.MatchOutcome {
	var records []outcome.MatchOutcome
	add := func(id, opp string, res outcome.Result) {
		records = append(records, outcome.MatchOutcome{
			Round: round, CompetitorID: id, OpponentID: opp, Result: res,
		})
	}
	for _, p := range pairings {
		switch {
		case retired[p.A] && retired[p.B]:
			add(p.A, p.B, outcome.ForfeitLoss)
			add(p.B, p.A, outcome.ForfeitLoss)
		case retired[p.A]:
			add(p.A, p.B, outcome.ForfeitLoss)
			add(p.B, p.A, outcome.ForfeitWin)
		case retired[p.B]:
			add(p.B, p.A, outcome.ForfeitLoss)
			add(p.A, p.B, outcome.ForfeitWin)
		}
	}
	return records
}

func (s *Service) ledger(ctx context.Context, tournamentID string) (*outcome.Ledger, map[string]bool, error) {
	records, err := s.store.Outcomes(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	retired, err := s.store.Retired(ctx, tournamentID)
	if err != nil {
		return nil, nil, err
	}
	ledger, err := outcome.Build(records, outcome.WithSingleSided(s.singleSided))
	if err != nil {
		return nil, nil, err
	}
	return ledger, retired, nil
}

func (s *Service) standingsOptions(retired map[string]bool) []standings.Option {
	return []standings.Option{
		standings.WithPoints(s.winPoints, s.drawPoints, s.lossPoints, s.byePoints),
		standings.WithTieBreakFloor(s.tieBreakFloor),
		standings.WithVirtualBye(s.virtualBye),
		standings.WithVirtualByeRate(s.virtualByeRate),
		standings.WithHeadToHead(s.headToHead),
		standings.WithEventSeed(s.eventSeed),
		standings.WithRetired(retired),
	}
}

// openingTable builds the round-one table: every rostered competitor on
// zero points, ordered by the event hash so the opening pairings are
// reproducible but not roster-order trivial.
func (s *Service) openingTable(ctx context.Context, tournamentID string, retired map[string]bool) ([]standings.Row, error) {
	roster, err := s.store.Roster(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(roster, func(i, j int) bool {
		hi := standings.EventHash(s.eventSeed, roster[i])
		hj := standings.EventHash(s.eventSeed, roster[j])
		if hi != hj {
			return hi > hj
		}
		return roster[i] < roster[j]
	})
	rows := make([]standings.Row, 0, len(roster))
	for i, id := range roster {
		rows = append(rows, standings.Row{Rank: i + 1, CompetitorID: id, Retired: retired[id]})
	}
	return rows, nil
}

func (s *Service) logf() logger.Logger { return s.log }

// lastRound returns the highest reported round number in the ledger.
func lastRound(ledger *outcome.Ledger) int {
	last := 0
	for _, id := range ledger.Competitors() {
		h, _ := ledger.History(id)
		for _, o := range h.Rounds {
			if o.Round > last {
				last = o.Round
			}
		}
	}
	return last
}

// floatDelta counts how many downfloats this call added.
func floatDelta(prior, next map[string]int) int {
	delta := 0
	for id, n := range next {
		if d := n - prior[id]; d > 0 {
			delta += d
		}
	}
	return delta
}
