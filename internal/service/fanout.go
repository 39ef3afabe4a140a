package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/repository"
	"github.com/apetrov/codetrack/internal/sms"
	"github.com/apetrov/codetrack/pkg/logger/sl"
	"golang.org/x/sync/errgroup"
)

// FanoutService pushes friend-activity SMS when a user solves a problem.
// It is fire-and-forget: delivery failures are logged and counted, never
// propagated to the action that triggered the fan-out.
type FanoutService struct {
	log           *slog.Logger
	friendships   repository.FriendshipRepository
	profiles      repository.ProfileRepository
	sender        sms.Sender
	dispatchLimit int
}

func NewFanoutService(
	log *slog.Logger,
	friendships repository.FriendshipRepository,
	profiles repository.ProfileRepository,
	sender sms.Sender,
	dispatchLimit int,
) *FanoutService {
	if dispatchLimit < 1 {
		dispatchLimit = 1
	}

	return &FanoutService{
		log:           log,
		friendships:   friendships,
		profiles:      profiles,
		sender:        sender,
		dispatchLimit: dispatchLimit,
	}
}

// NotifyFriendsOfCompletion resolves the solver's friends, filters them down
// to those opted in to friend-activity SMS, and dispatches one message per
// eligible friend concurrently. Each send is isolated: one refusal does not
// stop the others.
func (s *FanoutService) NotifyFriendsOfCompletion(ctx context.Context, userID, problemName string, difficulty domain.Difficulty) {
	const op = "internal.service.fanout.NotifyFriendsOfCompletion"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	friendIDs, err := s.friendships.ListFriendIDs(ctx, userID)
	if err != nil {
		log.Error("failed to resolve friends", sl.Err(err))
		return
	}

	if len(friendIDs) == 0 {
		return
	}

	solver, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Error("failed to get solver profile", sl.Err(err))
		return
	}

	profiles, err := s.profiles.ListProfiles(ctx, friendIDs)
	if err != nil {
		log.Error("failed to load friend profiles", sl.Err(err))
		return
	}

	body := fmt.Sprintf("🔥 %s just solved %s (%s). Keep your streak going!",
		solver.DisplayName, problemName, difficulty)

	var accepted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.dispatchLimit)

	for _, p := range profiles {
		if !p.EligibleForFriendActivity() {
			continue
		}

		g.Go(func() error {
			res := s.sender.Send(gctx, *p.PhoneNumber, body)
			if !res.Accepted {
				failed.Add(1)
				smsDispatchTotal.WithLabelValues(kindFriendActivity, outcomeFailed).Inc()
				log.Warn("friend activity sms refused", slog.String("recipient_id", p.UserID))

				return nil
			}

			accepted.Add(1)
			smsDispatchTotal.WithLabelValues(kindFriendActivity, outcomeAccepted).Inc()

			return nil
		})
	}

	// Sends never return errors; Wait only synchronizes the batch.
	_ = g.Wait()

	log.Info("friend fan-out complete",
		slog.Int64("accepted", accepted.Load()),
		slog.Int64("failed", failed.Load()),
	)
}
