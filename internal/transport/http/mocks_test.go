package http

import (
	"context"

	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/service"
	"github.com/stretchr/testify/mock"
)

type ReviewServiceMock struct {
	mock.Mock
}

func (m *ReviewServiceMock) RecordSolve(ctx context.Context, ownerID, problemName string, difficulty domain.Difficulty, rating *int) (*domain.SolvedItem, error) {
	args := m.Called(ctx, ownerID, problemName, difficulty, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SolvedItem), args.Error(1)
}

func (m *ReviewServiceMock) CompleteReview(ctx context.Context, itemID, actingUserID string, rating int) (*domain.SolvedItem, error) {
	args := m.Called(ctx, itemID, actingUserID, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SolvedItem), args.Error(1)
}

func (m *ReviewServiceMock) ListDueToday(ctx context.Context, ownerID string) ([]domain.SolvedItem, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SolvedItem), args.Error(1)
}

func (m *ReviewServiceMock) CurrentStreak(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

type FriendshipServiceMock struct {
	mock.Mock
}

func (m *FriendshipServiceMock) SendRequest(ctx context.Context, senderID, receiverID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *FriendshipServiceMock) Respond(ctx context.Context, requestID string, decision domain.RequestStatus, actingUserID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requestID, decision, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *FriendshipServiceMock) RemoveFriendship(ctx context.Context, friendshipID, actingUserID string) error {
	args := m.Called(ctx, friendshipID, actingUserID)
	return args.Error(0)
}

func (m *FriendshipServiceMock) ListPendingRequests(ctx context.Context, userID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

func (m *FriendshipServiceMock) ListFriends(ctx context.Context, userID string) ([]domain.FriendWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.FriendWithStats), args.Error(1)
}

type DueReviewNotifierMock struct {
	mock.Mock
}

func (m *DueReviewNotifierMock) NotifyDueReviews(ctx context.Context) (service.DueReviewSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.DueReviewSummary), args.Error(1)
}
