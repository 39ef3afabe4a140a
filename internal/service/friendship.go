package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apetrov/codetrack/internal/apperrors"
	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FriendshipService owns the social graph: friend-request lifecycle and the
// symmetric, duplicate-free friendship relation.
type FriendshipService interface {
	SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error)
	Respond(ctx context.Context, requestID string, decision domain.RequestStatus, actingUserID string) (*domain.FriendRequest, error)
	RemoveFriendship(ctx context.Context, friendshipID, actingUserID string) error
	ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListFriends(ctx context.Context, userID string) ([]domain.FriendWithStats, error)
}

type FriendshipServiceImpl struct {
	BaseService
	requests    repository.FriendRequestRepository
	friendships repository.FriendshipRepository
	now         func() time.Time
}

func NewFriendshipService(
	db Transactor,
	log *slog.Logger,
	requests repository.FriendRequestRepository,
	friendships repository.FriendshipRepository,
	now func() time.Time,
) *FriendshipServiceImpl {
	return &FriendshipServiceImpl{
		BaseService: NewBaseService(db, log),
		requests:    requests,
		friendships: friendships,
		now:         now,
	}
}

// SendRequest creates a PENDING request from sender to receiver. The
// duplicate check and the insert run in one serializable transaction; the
// partial unique index on the normalized pair backstops races the isolation
// level might miss, and a post-conflict unique violation surfaces as the
// same DuplicateRequest error.
func (s *FriendshipServiceImpl) SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	const op = "internal.service.friendship.SendRequest"
	log := s.log.With(slog.String("op", op), slog.String("sender_id", senderID), slog.String("receiver_id", receiverID))

	if senderID == receiverID {
		return nil, fmt.Errorf("%w: cannot send a friend request to yourself", apperrors.ErrValidation)
	}

	req := &domain.FriendRequest{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     domain.RequestStatusPending,
		CreatedAt:  s.now().UTC(),
	}

	err := s.transaction(ctx, op, serializableOpts, func(tx *sqlx.Tx) error {
		pending, err := s.requests.HasPendingBetween(ctx, tx, senderID, receiverID)
		if err != nil {
			return fmt.Errorf("%s: failed to check pending requests: %w", op, err)
		}

		if pending {
			return &apperrors.DuplicateRequestError{SenderID: senderID, ReceiverID: receiverID}
		}

		friends, err := s.friendships.FriendshipExists(ctx, tx, senderID, receiverID)
		if err != nil {
			return fmt.Errorf("%s: failed to check existing friendship: %w", op, err)
		}

		if friends {
			return &apperrors.AlreadyFriendsError{UserAID: senderID, UserBID: receiverID}
		}

		return s.requests.CreateRequest(ctx, tx, req)
	})

	if err != nil {
		return nil, err
	}

	log.Info("friend request created", slog.String("request_id", req.ID))

	return req, nil
}

// Respond resolves a PENDING request. Only the receiver may act; terminal
// states are immutable. On ACCEPTED the friendship row is created in the same
// transaction as the status update, idempotently: an existing row for the
// pair is kept rather than duplicated.
func (s *FriendshipServiceImpl) Respond(ctx context.Context, requestID string, decision domain.RequestStatus, actingUserID string) (*domain.FriendRequest, error) {
	const op = "internal.service.friendship.Respond"
	log := s.log.With(slog.String("op", op), slog.String("request_id", requestID), slog.String("acting_user_id", actingUserID))

	if decision != domain.RequestStatusAccepted && decision != domain.RequestStatusRejected {
		return nil, fmt.Errorf("%w: decision must be ACCEPTED or REJECTED", apperrors.ErrValidation)
	}

	var req *domain.FriendRequest

	err := s.transaction(ctx, op, serializableOpts, func(tx *sqlx.Tx) error {
		var err error

		req, err = s.requests.GetRequestByIDWithLock(ctx, tx, requestID)
		if err != nil {
			return fmt.Errorf("%s: failed to get request with lock: %w", op, err)
		}

		if req.ReceiverID != actingUserID {
			return fmt.Errorf("%s: %w: only the receiver can respond to a request", op, apperrors.ErrForbidden)
		}

		if req.Status != domain.RequestStatusPending {
			return &apperrors.AlreadyResolvedError{RequestID: requestID, Status: string(req.Status)}
		}

		if err := s.requests.UpdateRequestStatus(ctx, tx, requestID, decision); err != nil {
			return fmt.Errorf("%s: failed to update request status: %w", op, err)
		}

		if decision == domain.RequestStatusAccepted {
			if err := s.createFriendshipIfAbsent(ctx, tx, req); err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Info("friend request resolved", slog.String("decision", string(decision)))

	req.Status = decision

	return req, nil
}

func (s *FriendshipServiceImpl) createFriendshipIfAbsent(ctx context.Context, tx *sqlx.Tx, req *domain.FriendRequest) error {
	const op = "internal.service.friendship.createFriendshipIfAbsent"

	exists, err := s.friendships.FriendshipExists(ctx, tx, req.SenderID, req.ReceiverID)
	if err != nil {
		return fmt.Errorf("%s: failed to check existing friendship: %w", op, err)
	}

	if exists {
		return nil
	}

	f := &domain.Friendship{
		ID:        uuid.NewString(),
		UserAID:   req.SenderID,
		UserBID:   req.ReceiverID,
		CreatedAt: s.now().UTC(),
	}

	if err := s.friendships.CreateFriendship(ctx, tx, f); err != nil {
		// A concurrent accept slipped past the existence check; the unique
		// pair index caught it, which is the idempotent outcome we want.
		if errors.Is(err, apperrors.ErrAlreadyFriends) {
			return nil
		}

		return fmt.Errorf("%s: failed to create friendship: %w", op, err)
	}

	return nil
}

// RemoveFriendship deletes a friendship row. Only one of its two members may
// remove it.
func (s *FriendshipServiceImpl) RemoveFriendship(ctx context.Context, friendshipID, actingUserID string) error {
	const op = "internal.service.friendship.RemoveFriendship"
	log := s.log.With(slog.String("op", op), slog.String("friendship_id", friendshipID), slog.String("acting_user_id", actingUserID))

	f, err := s.friendships.GetFriendshipByID(ctx, friendshipID)
	if err != nil {
		return fmt.Errorf("%s: failed to get friendship: %w", op, err)
	}

	if !f.Member(actingUserID) {
		return fmt.Errorf("%s: %w: user is not a member of this friendship", op, apperrors.ErrForbidden)
	}

	if err := s.friendships.DeleteFriendship(ctx, friendshipID); err != nil {
		return fmt.Errorf("%s: failed to delete friendship: %w", op, err)
	}

	log.Info("friendship removed")

	return nil
}

func (s *FriendshipServiceImpl) ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	const op = "internal.service.friendship.ListPendingRequests"

	reqs, err := s.requests.ListPendingForReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list pending requests: %w", op, err)
	}

	return reqs, nil
}

func (s *FriendshipServiceImpl) ListFriends(ctx context.Context, userID string) ([]domain.FriendWithStats, error) {
	const op = "internal.service.friendship.ListFriends"

	friends, err := s.friendships.ListFriendsWithStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list friends: %w", op, err)
	}

	return friends, nil
}
