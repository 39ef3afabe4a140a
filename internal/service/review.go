package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/apetrov/codetrack/internal/apperrors"
	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/repository"
	"github.com/apetrov/codetrack/pkg/schedule"
	"github.com/apetrov/codetrack/pkg/streak"
	"github.com/google/uuid"
)

// CompletionNotifier is the fire-and-forget hook invoked after a solve is
// persisted. Implementations contain their own failures; RecordSolve never
// fails because a notification did.
type CompletionNotifier interface {
	NotifyFriendsOfCompletion(ctx context.Context, userID, problemName string, difficulty domain.Difficulty)
}

// ReviewService records solves and drives the spaced-repetition review cycle.
type ReviewService interface {
	RecordSolve(ctx context.Context, ownerID, problemName string, difficulty domain.Difficulty, rating *int) (*domain.SolvedItem, error)
	CompleteReview(ctx context.Context, itemID, actingUserID string, rating int) (*domain.SolvedItem, error)
	ListDueToday(ctx context.Context, ownerID string) ([]domain.SolvedItem, error)
	CurrentStreak(ctx context.Context, userID string) (int, error)
}

type ReviewServiceImpl struct {
	log      *slog.Logger
	items    repository.SolvedItemRepository
	notifier CompletionNotifier
	now      func() time.Time
}

func NewReviewService(
	log *slog.Logger,
	items repository.SolvedItemRepository,
	notifier CompletionNotifier,
	now func() time.Time,
) *ReviewServiceImpl {
	return &ReviewServiceImpl{
		log:      log,
		items:    items,
		notifier: notifier,
		now:      now,
	}
}

// RecordSolve creates a solve record with attempts = 1. When a difficulty
// rating is supplied, the first review is scheduled immediately; otherwise
// NextReview stays unset until the user rates the item. After the record is
// persisted, friends are notified; that dispatch is best-effort and its
// failures never reach the caller.
func (s *ReviewServiceImpl) RecordSolve(ctx context.Context, ownerID, problemName string, difficulty domain.Difficulty, rating *int) (*domain.SolvedItem, error) {
	const op = "internal.service.review.RecordSolve"
	log := s.log.With(slog.String("op", op), slog.String("owner_id", ownerID))

	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
	default:
		return nil, fmt.Errorf("%w: unknown difficulty '%s'", apperrors.ErrValidation, difficulty)
	}

	if rating != nil && !schedule.IsValidDifficultyRating(*rating) {
		return nil, fmt.Errorf("%w: difficulty rating must be between %d and %d",
			apperrors.ErrValidation, schedule.MinDifficultyRating, schedule.MaxDifficultyRating)
	}

	solvedAt := s.now().UTC()

	item := &domain.SolvedItem{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		ProblemName:      problemName,
		Difficulty:       difficulty,
		Attempts:         1,
		DifficultyRating: rating,
		SolvedAt:         solvedAt,
	}

	if rating != nil {
		next := schedule.NextReviewDate(item.Attempts, solvedAt, *rating)
		item.NextReview = &next
	}

	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("%s: failed to create solved item: %w", op, err)
	}

	log.Info("solve recorded", slog.String("item_id", item.ID), slog.String("problem", problemName))

	s.notifier.NotifyFriendsOfCompletion(ctx, ownerID, problemName, difficulty)

	return item, nil
}

// CompleteReview advances the review cycle for an item: attempts is
// incremented and the next review date recomputed from the new attempt count
// and the fresh rating. Only the owner may review their item.
func (s *ReviewServiceImpl) CompleteReview(ctx context.Context, itemID, actingUserID string, rating int) (*domain.SolvedItem, error) {
	const op = "internal.service.review.CompleteReview"
	log := s.log.With(slog.String("op", op), slog.String("item_id", itemID))

	if !schedule.IsValidDifficultyRating(rating) {
		return nil, fmt.Errorf("%w: difficulty rating must be between %d and %d",
			apperrors.ErrValidation, schedule.MinDifficultyRating, schedule.MaxDifficultyRating)
	}

	item, err := s.items.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get solved item: %w", op, err)
	}

	if item.OwnerID != actingUserID {
		return nil, fmt.Errorf("%s: %w: only the owner can review this item", op, apperrors.ErrForbidden)
	}

	reviewedAt := s.now().UTC()
	attempts := item.Attempts + 1
	next := schedule.NextReviewDate(attempts, reviewedAt, rating)

	if err := s.items.UpdateReviewState(ctx, itemID, attempts, rating, next); err != nil {
		return nil, fmt.Errorf("%s: failed to update review state: %w", op, err)
	}

	log.Info("review completed",
		slog.Int("attempts", attempts),
		slog.Time("next_review", next),
	)

	item.Attempts = attempts
	item.DifficultyRating = &rating
	item.NextReview = &next

	return item, nil
}

// ListDueToday returns the owner's items due within the current UTC day.
func (s *ReviewServiceImpl) ListDueToday(ctx context.Context, ownerID string) ([]domain.SolvedItem, error) {
	const op = "internal.service.review.ListDueToday"

	from := startOfDayUTC(s.now())
	to := from.AddDate(0, 0, 1)

	items, err := s.items.ListDueForOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list due items: %w", op, err)
	}

	return items, nil
}

// CurrentStreak computes the user's consecutive-day solve streak.
func (s *ReviewServiceImpl) CurrentStreak(ctx context.Context, userID string) (int, error) {
	const op = "internal.service.review.CurrentStreak"

	times, err := s.items.ListSolveTimes(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to list solve times: %w", op, err)
	}

	return streak.Current(s.now(), times), nil
}

func startOfDayUTC(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
