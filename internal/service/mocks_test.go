package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/apetrov/codetrack/internal/domain"
	"github.com/apetrov/codetrack/internal/repository"
	"github.com/apetrov/codetrack/internal/sms"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type SolvedItemRepositoryMock struct {
	mock.Mock
}

var _ repository.SolvedItemRepository = (*SolvedItemRepositoryMock)(nil)

func (m *SolvedItemRepositoryMock) CreateItem(ctx context.Context, item *domain.SolvedItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *SolvedItemRepositoryMock) GetItemByID(ctx context.Context, itemID string) (*domain.SolvedItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.SolvedItem), args.Error(1)
}

func (m *SolvedItemRepositoryMock) UpdateReviewState(ctx context.Context, itemID string, attempts int, rating int, nextReview time.Time) error {
	args := m.Called(ctx, itemID, attempts, rating, nextReview)
	return args.Error(0)
}

func (m *SolvedItemRepositoryMock) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.SolvedItem, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SolvedItem), args.Error(1)
}

func (m *SolvedItemRepositoryMock) ListDueForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]domain.SolvedItem, error) {
	args := m.Called(ctx, ownerID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.SolvedItem), args.Error(1)
}

func (m *SolvedItemRepositoryMock) ListSolveTimes(ctx context.Context, ownerID string) ([]time.Time, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]time.Time), args.Error(1)
}

type FriendRequestRepositoryMock struct {
	mock.Mock
}

var _ repository.FriendRequestRepository = (*FriendRequestRepositoryMock)(nil)

func (m *FriendRequestRepositoryMock) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.FriendRequest) error {
	args := m.Called(ctx, tx, req)
	return args.Error(0)
}

func (m *FriendRequestRepositoryMock) GetRequestByID(ctx context.Context, requestID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *FriendRequestRepositoryMock) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.FriendRequest, error) {
	args := m.Called(ctx, tx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.FriendRequest), args.Error(1)
}

func (m *FriendRequestRepositoryMock) HasPendingBetween(ctx context.Context, tx *sqlx.Tx, userA, userB string) (bool, error) {
	args := m.Called(ctx, tx, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *FriendRequestRepositoryMock) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error {
	args := m.Called(ctx, tx, requestID, status)
	return args.Error(0)
}

func (m *FriendRequestRepositoryMock) ListPendingForReceiver(ctx context.Context, receiverID string) ([]domain.FriendRequest, error) {
	args := m.Called(ctx, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.FriendRequest), args.Error(1)
}

type FriendshipRepositoryMock struct {
	mock.Mock
}

var _ repository.FriendshipRepository = (*FriendshipRepositoryMock)(nil)

func (m *FriendshipRepositoryMock) FriendshipExists(ctx context.Context, ext sqlx.ExtContext, userA, userB string) (bool, error) {
	args := m.Called(ctx, ext, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *FriendshipRepositoryMock) CreateFriendship(ctx context.Context, tx *sqlx.Tx, f *domain.Friendship) error {
	args := m.Called(ctx, tx, f)
	return args.Error(0)
}

func (m *FriendshipRepositoryMock) GetFriendshipByID(ctx context.Context, friendshipID string) (*domain.Friendship, error) {
	args := m.Called(ctx, friendshipID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Friendship), args.Error(1)
}

func (m *FriendshipRepositoryMock) DeleteFriendship(ctx context.Context, friendshipID string) error {
	args := m.Called(ctx, friendshipID)
	return args.Error(0)
}

func (m *FriendshipRepositoryMock) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

func (m *FriendshipRepositoryMock) ListFriendsWithStats(ctx context.Context, userID string) ([]domain.FriendWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.FriendWithStats), args.Error(1)
}

type ProfileRepositoryMock struct {
	mock.Mock
}

var _ repository.ProfileRepository = (*ProfileRepositoryMock)(nil)

func (m *ProfileRepositoryMock) GetProfile(ctx context.Context, userID string) (*domain.NotificationProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.NotificationProfile), args.Error(1)
}

func (m *ProfileRepositoryMock) ListProfiles(ctx context.Context, userIDs []string) ([]domain.NotificationProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.NotificationProfile), args.Error(1)
}

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	var tx *sqlx.Tx

	args := m.Called(ctx, opts)
	if args.Get(0) != nil {
		tx = args.Get(0).(*sqlx.Tx)
	}

	return tx, args.Error(1)
}

type SenderMock struct {
	mock.Mock
}

var _ sms.Sender = (*SenderMock)(nil)

func (m *SenderMock) Send(ctx context.Context, phoneNumber, body string) sms.Result {
	args := m.Called(ctx, phoneNumber, body)
	return args.Get(0).(sms.Result)
}

type CompletionNotifierMock struct {
	mock.Mock
}

var _ CompletionNotifier = (*CompletionNotifierMock)(nil)

func (m *CompletionNotifierMock) NotifyFriendsOfCompletion(ctx context.Context, userID, problemName string, difficulty domain.Difficulty) {
	m.Called(ctx, userID, problemName, difficulty)
}
