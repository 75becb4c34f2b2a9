// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hifidelity/hifidelity/internal/chain"
	"github.com/hifidelity/hifidelity/internal/gate"
	"github.com/hifidelity/hifidelity/internal/leaderboard"
	"github.com/hifidelity/hifidelity/internal/metrics"
	"github.com/hifidelity/hifidelity/internal/model"
)

// Service errors.
var (
	ErrMissingFID    = errors.New("missing fid")
	ErrResolveFailed = errors.New("identity resolution failed")
	ErrUnknownAction = errors.New("unknown action kind")
)

// Reward amounts in whole HIFI tokens.
const (
	RewardSubmit  = 10
	RewardCheckin = 5
	RewardShare   = 10
)

// ShareHashtag is appended to every composed share text.
const ShareHashtag = "#HighFidelity"

// Resolver maps a FID to an on-chain address.
// Satisfied by farcaster.Client.
type Resolver interface {
	ResolveAddress(ctx context.Context, fid string) (string, error)
}

// RankService wires identity resolution, the leaderboard, the daily action
// gate and the token minter. It owns the in-memory user table.
type RankService struct {
	board    *leaderboard.Board
	gate     *gate.Gate
	resolver Resolver
	minter   chain.Minter
	metrics  metrics.Recorder
	logger   *slog.Logger

	defaultCategory string
	now             func() time.Time

	mu    sync.Mutex
	users map[string]*model.User
}

// NewRankService creates a RankService.
func NewRankService(
	board *leaderboard.Board,
	g *gate.Gate,
	resolver Resolver,
	minter chain.Minter,
	recorder metrics.Recorder,
	logger *slog.Logger,
	defaultCategory string,
) *RankService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if defaultCategory == "" {
		defaultCategory = "songs"
	}
	return &RankService{
		board:           board,
		gate:            g,
		resolver:        resolver,
		minter:          minter,
		metrics:         recorder,
		logger:          logger.With("component", "service.rank"),
		defaultCategory: defaultCategory,
		now:             time.Now,
		users:           make(map[string]*model.User),
	}
}

// SetClock overrides the service clock (tests).
func (s *RankService) SetClock(now func() time.Time) {
	s.now = now
}

// DefaultCategory returns the category used when a caller supplies none.
func (s *RankService) DefaultCategory() string {
	return s.defaultCategory
}

// ParseList splits raw comma-separated item text into a normalized list:
// entries are trimmed and empty entries dropped. An all-empty input yields
// an empty list, which is accepted downstream.
func ParseList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// NormalizeItems trims entries and drops empties from an already-split list.
func NormalizeItems(list []string) []string {
	items := make([]string, 0, len(list))
	for _, p := range list {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// Submit records a user's top-5 list for a category, feeds the aggregate
// leaderboard and issues the submit reward.
//
// The local mutations (user list overwrite, counter increments) happen
// before the mint attempt and are never rolled back on mint failure.
func (s *RankService) Submit(ctx context.Context, fid, category string, items []string) (*model.ActionResult, error) {
	if fid == "" {
		return nil, ErrMissingFID
	}
	if strings.TrimSpace(category) == "" {
		category = s.defaultCategory
	}
	items = NormalizeItems(items)

	user, err := s.resolveUser(ctx, fid)
	if err != nil {
		return nil, err
	}

	eventID := ulid.Make().String()

	s.mu.Lock()
	user.SetList(category, items)
	s.mu.Unlock()

	s.board.Record(category, items)
	s.metrics.IncSubmission()
	s.metrics.SetTrackedCategories(s.board.Categories())

	s.logger.Info("list_submitted",
		"event_id", eventID,
		"fid", fid,
		"category", category,
		"items", len(items),
	)

	outcome, txHash := s.mintReward(ctx, user.Address, RewardSubmit, eventID)

	return &model.ActionResult{
		Outcome: outcome,
		Message: submitMessage(outcome),
		EventID: eventID,
		TxHash:  txHash,
	}, nil
}

// CheckIn attempts the daily check-in. At most one grant per rolling
// 24-hour window per user.
func (s *RankService) CheckIn(ctx context.Context, fid string) (*model.ActionResult, error) {
	if fid == "" {
		return nil, ErrMissingFID
	}

	user, err := s.resolveUser(ctx, fid)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !s.gate.TryConsume(fid, model.ActionCheckin, now) {
		s.metrics.IncActionDenied(string(model.ActionCheckin))
		return &model.ActionResult{
			Outcome: model.OutcomeAlreadyDone,
			Message: "Already checked in today",
		}, nil
	}
	s.metrics.IncActionGranted(string(model.ActionCheckin))

	eventID := ulid.Make().String()

	s.mu.Lock()
	user.LastCheckin = &now
	s.mu.Unlock()

	s.logger.Info("checkin_granted", "event_id", eventID, "fid", fid)

	outcome, txHash := s.mintReward(ctx, user.Address, RewardCheckin, eventID)

	return &model.ActionResult{
		Outcome: outcome,
		Message: checkinMessage(outcome),
		EventID: eventID,
		TxHash:  txHash,
	}, nil
}

// Share attempts the daily share: on grant it issues the share reward and
// composes the shareable text from the user's latest default-category list.
func (s *RankService) Share(ctx context.Context, fid string) (*model.ActionResult, error) {
	if fid == "" {
		return nil, ErrMissingFID
	}

	user, err := s.resolveUser(ctx, fid)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !s.gate.TryConsume(fid, model.ActionShare, now) {
		s.metrics.IncActionDenied(string(model.ActionShare))
		return &model.ActionResult{
			Outcome: model.OutcomeAlreadyDone,
			Message: "Already shared today",
		}, nil
	}
	s.metrics.IncActionGranted(string(model.ActionShare))

	eventID := ulid.Make().String()

	s.mu.Lock()
	user.LastShare = &now
	items := user.List(s.defaultCategory)
	s.mu.Unlock()

	if len(items) == 0 {
		items = []string{"No list"}
	}
	shareText := fmt.Sprintf("My Top 5 %s: %s %s",
		s.defaultCategory, strings.Join(items, ", "), ShareHashtag)

	s.logger.Info("share_granted", "event_id", eventID, "fid", fid)

	outcome, txHash := s.mintReward(ctx, user.Address, RewardShare, eventID)

	return &model.ActionResult{
		Outcome:   outcome,
		Message:   shareMessage(outcome),
		EventID:   eventID,
		TxHash:    txHash,
		ShareText: shareText,
	}, nil
}

// TopFive returns the current top five of a category (default category when
// blank). Read-only.
func (s *RankService) TopFive(category string) []model.RankedItem {
	if strings.TrimSpace(category) == "" {
		category = s.defaultCategory
	}
	return s.board.TopN(category, 5)
}

// ResetAggregates clears every category. Invoked by the weekly scheduler.
func (s *RankService) ResetAggregates() {
	s.board.ResetAll()
	s.metrics.IncBoardReset()
	s.metrics.SetTrackedCategories(0)
}

// User returns the stored user record for a FID, if any.
func (s *RankService) User(fid string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[fid]
	return u, ok
}

// resolveUser returns the user record for fid, resolving and caching the
// custody address on first contact. The address is immutable once set; later
// calls never hit the resolver again.
func (s *RankService) resolveUser(ctx context.Context, fid string) (*model.User, error) {
	s.mu.Lock()
	if user, ok := s.users[fid]; ok && user.Address != "" {
		s.mu.Unlock()
		return user, nil
	}
	s.mu.Unlock()

	start := s.now()
	address, err := s.resolver.ResolveAddress(ctx, fid)
	s.metrics.ObserveResolveDuration(time.Since(start))
	if err != nil {
		s.metrics.IncResolve("failed")
		return nil, fmt.Errorf("%w: %w", ErrResolveFailed, err)
	}
	s.metrics.IncResolve("success")

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[fid]
	if !ok {
		user = &model.User{FID: fid, CreatedAt: s.now()}
		s.users[fid] = user
	}
	if user.Address == "" {
		user.Address = address
	}
	return user, nil
}

// mintReward attempts the token mint and classifies the outcome. Local state
// is already committed by the time this runs; a failure here is reported,
// never rolled back.
func (s *RankService) mintReward(ctx context.Context, address string, units int64, eventID string) (model.ActionOutcome, string) {
	if !s.minter.Enabled() {
		s.metrics.IncMint("skipped")
		return model.OutcomeRewardSkipped, ""
	}

	start := time.Now()
	txHash, err := s.minter.Mint(ctx, address, units)
	s.metrics.ObserveMintDuration(time.Since(start))

	if err != nil {
		s.metrics.IncMint("failed")
		s.logger.Error("mint_failed",
			"event_id", eventID,
			"address", address,
			"units", units,
			"error", err,
		)
		return model.OutcomeRewardFailed, ""
	}

	s.metrics.IncMint("success")
	s.logger.Info("mint_submitted",
		"event_id", eventID,
		"address", address,
		"units", units,
		"tx_hash", txHash,
	)
	return model.OutcomeRewarded, txHash
}

func submitMessage(outcome model.ActionOutcome) string {
	switch outcome {
	case model.OutcomeRewarded:
		return fmt.Sprintf("Top 5 saved! %d HIFI minted", RewardSubmit)
	case model.OutcomeRewardFailed:
		return "Top 5 saved, but the reward could not be minted"
	default:
		return "Top 5 saved!"
	}
}

func checkinMessage(outcome model.ActionOutcome) string {
	switch outcome {
	case model.OutcomeRewarded:
		return fmt.Sprintf("Check-in OK! %d HIFI minted", RewardCheckin)
	case model.OutcomeRewardFailed:
		return "Check-in OK, but the reward could not be minted"
	default:
		return "Check-in OK!"
	}
}

func shareMessage(outcome model.ActionOutcome) string {
	switch outcome {
	case model.OutcomeRewarded:
		return fmt.Sprintf("Shared! %d HIFI minted", RewardShare)
	case model.OutcomeRewardFailed:
		return "Shared, but the reward could not be minted"
	default:
		return "Shared!"
	}
}
