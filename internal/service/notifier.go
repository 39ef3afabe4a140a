package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/repository"
	"github.com/apetrov/codetrack/internal/sms"
	"golang.org/x/sync/errgroup"
)

// DueReviewSummary is returned to the external scheduler for observability.
type DueReviewSummary struct {
	NotifiedUsers int `json:"notified_users"`
	TotalItems    int `json:"total_items"`
}

// NotifierService sends the daily review-reminder digest. It is triggered
// externally (cron-style) and does not advance any review dates itself, so
// re-running it within the same day re-sends to the same owners.
type NotifierService struct {
	log           *slog.Logger
	items         repository.SolvedItemRepository
	profiles      repository.ProfileRepository
	sender        sms.Sender
	dispatchLimit int
	now           func() time.Time
}

func NewNotifierService(
	log *slog.Logger,
	items repository.SolvedItemRepository,
	profiles repository.ProfileRepository,
	sender sms.Sender,
	dispatchLimit int,
	now func() time.Time,
) *NotifierService {
	if dispatchLimit < 1 {
		dispatchLimit = 1
	}

	return &NotifierService{
		log:           log,
		items:         items,
		profiles:      profiles,
		sender:        sender,
		dispatchLimit: dispatchLimit,
		now:           now,
	}
}

// NotifyDueReviews queries the items due within the current UTC day, groups
// them by owner, and dispatches one batched digest per eligible owner.
// Eligibility here is the global SMS predicate only; the friend-activity
// opt-in does not apply to a user's own reminders. NotifiedUsers counts
// owners whose digest the transport accepted; TotalItems counts all due
// items found.
func (s *NotifierService) NotifyDueReviews(ctx context.Context) (DueReviewSummary, error) {
	const op = "internal.service.notifier.NotifyDueReviews"
	log := s.log.With(slog.String("op", op))

	from := startOfDayUTC(s.now())
	to := from.AddDate(0, 0, 1)

	items, err := s.items.ListDueBetween(ctx, from, to)
	if err != nil {
		return DueReviewSummary{}, fmt.Errorf("%s: failed to list due items: %w", op, err)
	}

	if len(items) == 0 {
		log.Info("no reviews due today")
		return DueReviewSummary{}, nil
	}

	byOwner := make(map[string][]domain.SolvedItem)
	ownerIDs := make([]string, 0)

	for _, item := range items {
		if _, ok := byOwner[item.OwnerID]; !ok {
			ownerIDs = append(ownerIDs, item.OwnerID)
		}
		byOwner[item.OwnerID] = append(byOwner[item.OwnerID], item)
	}

	profiles, err := s.profiles.ListProfiles(ctx, ownerIDs)
	if err != nil {
		return DueReviewSummary{}, fmt.Errorf("%s: failed to load owner profiles: %w", op, err)
	}

	var notified atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.dispatchLimit)

	for _, p := range profiles {
		if !p.EligibleForSMS() {
			continue
		}

		due := byOwner[p.UserID]

		g.Go(func() error {
			res := s.sender.Send(gctx, *p.PhoneNumber, digestBody(due))
			if !res.Accepted {
				smsDispatchTotal.WithLabelValues(kindReviewDigest, outcomeFailed).Inc()
				log.Warn("review digest sms refused", slog.String("owner_id", p.UserID))

				return nil
			}

			notified.Add(1)
			smsDispatchTotal.WithLabelValues(kindReviewDigest, outcomeAccepted).Inc()

			return nil
		})
	}

	_ = g.Wait()

	summary := DueReviewSummary{
		NotifiedUsers: int(notified.Load()),
		TotalItems:    len(items),
	}

	log.Info("due review notification complete",
		slog.Int("notified_users", summary.NotifiedUsers),
		slog.Int("total_items", summary.TotalItems),
	)

	return summary, nil
}

func digestBody(items []domain.SolvedItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📚 You have %d problem(s) due for review today:\n", len(items))

	for _, item := range items {
		fmt.Fprintf(&b, "- %s (%s)\n", item.ProblemName, item.Difficulty)
	}

	return b.String()
}
