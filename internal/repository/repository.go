// package repository defines the interfaces for the data persistence layer.
// These interfaces abstract the underlying database implementation from the
// service layer.
package repository

import (
	"context"
	"time"

	"github.com/apetrov/codetrack/internal/domain"
	"github.com/jmoiron/sqlx"
)

// SolvedItemRepository defines the contract for solve-record data.
type SolvedItemRepository interface {
	// CreateItem inserts a new solve record.
	CreateItem(ctx context.Context, item *domain.SolvedItem) error

	// GetItemByID retrieves a solve record.
	// It returns apperrors.ErrNotFound if the item does not exist.
	GetItemByID(ctx context.Context, itemID string) (*domain.SolvedItem, error)

	// UpdateReviewState persists the outcome of a review cycle: the new
	// attempt count, the user's latest difficulty rating, and the next
	// review date computed from them.
	// It returns apperrors.ErrNotFound if the item does not exist.
	UpdateReviewState(ctx context.Context, itemID string, attempts int, rating int, nextReview time.Time) error

	// ListDueBetween returns all items across all owners whose next_review
	// falls within [from, to).
	ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.SolvedItem, error)

	// ListDueForOwner returns one owner's items due within [from, to).
	ListDueForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]domain.SolvedItem, error)

	// ListSolveTimes returns the solve timestamps for all of an owner's
	// items, used for streak computation.
	ListSolveTimes(ctx context.Context, ownerID string) ([]time.Time, error)
}

// FriendRequestRepository defines the contract for friend-request data.
// Write methods take a *sqlx.Tx because the duplicate checks they pair with
// must run in the same transaction.
type FriendRequestRepository interface {
	// CreateRequest inserts a PENDING friend request. It returns
	// apperrors.ErrDuplicateRequest if the partial unique index on the
	// normalized pair rejects a second pending request.
	CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.FriendRequest) error

	// GetRequestByID retrieves a request outside of any transaction.
	// It returns apperrors.ErrNotFound if the request does not exist.
	GetRequestByID(ctx context.Context, requestID string) (*domain.FriendRequest, error)

	// GetRequestByIDWithLock retrieves a request and acquires a row-level
	// lock ("FOR UPDATE") so concurrent responders serialize on the row.
	// It returns apperrors.ErrNotFound if the request does not exist.
	GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.FriendRequest, error)

	// HasPendingBetween reports whether a PENDING request exists between the
	// two users in either direction.
	HasPendingBetween(ctx context.Context, tx *sqlx.Tx, userA, userB string) (bool, error)

	// UpdateRequestStatus sets the terminal status of a request.
	UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error

	// ListPendingForReceiver returns the incoming PENDING requests for a user.
	ListPendingForReceiver(ctx context.Context, receiverID string) ([]domain.FriendRequest, error)
}

// FriendshipRepository defines the contract for the symmetric friendship
// relation. Rows are stored with the pair normalized (user_a_id < user_b_id).
type FriendshipRepository interface {
	// FriendshipExists reports whether a friendship row exists for the
	// unordered pair. The ext argument allows the check to run inside a
	// transaction (*sqlx.Tx) or directly on a DB connection (*sqlx.DB).
	FriendshipExists(ctx context.Context, ext sqlx.ExtContext, userA, userB string) (bool, error)

	// CreateFriendship inserts a friendship row for the pair. It returns
	// apperrors.ErrAlreadyFriends if the unique pair index rejects the
	// insert, which callers performing idempotent creation may ignore.
	CreateFriendship(ctx context.Context, tx *sqlx.Tx, f *domain.Friendship) error

	// GetFriendshipByID retrieves a friendship row.
	// It returns apperrors.ErrNotFound if the row does not exist.
	GetFriendshipByID(ctx context.Context, friendshipID string) (*domain.Friendship, error)

	// DeleteFriendship removes a friendship row.
	// It returns apperrors.ErrNotFound if the row does not exist.
	DeleteFriendship(ctx context.Context, friendshipID string) error

	// ListFriendIDs returns the ids of every user the given user is friends
	// with, resolving both orderings of the stored pair.
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)

	// ListFriendsWithStats returns the user's friends annotated with solved
	// counts by difficulty and the most recent solve time.
	ListFriendsWithStats(ctx context.Context, userID string) ([]domain.FriendWithStats, error)
}

// ProfileRepository provides read-only access to notification profiles.
type ProfileRepository interface {
	// GetProfile returns one user's notification profile.
	// It returns apperrors.ErrNotFound if the user does not exist.
	GetProfile(ctx context.Context, userID string) (*domain.NotificationProfile, error)

	// ListProfiles returns the profiles for the given user ids. Unknown ids
	// are silently omitted.
	ListProfiles(ctx context.Context, userIDs []string) ([]domain.NotificationProfile, error)
}
