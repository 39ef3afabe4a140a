package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/apetrov/codetrack/internal/apperrors"
	"github.com/apetrov/codetrack/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// FriendGraphRepository implements both the FriendRequestRepository and the
// FriendshipRepository contracts: the two tables change together inside the
// accept transaction, so they share one repository.
type FriendGraphRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewFriendGraphRepository(db *sqlx.DB, log *slog.Logger) *FriendGraphRepository {
	return &FriendGraphRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *FriendGraphRepository) CreateRequest(ctx context.Context, tx *sqlx.Tx, req *domain.FriendRequest) error {
	const op = "internal.repository.postgres.CreateRequest"

	query, args, err := r.sq.Insert("friend_requests").
		Columns("id", "sender_id", "receiver_id", "status", "created_at").
		Values(req.ID, req.SenderID, req.ReceiverID, req.Status, req.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return &apperrors.DuplicateRequestError{SenderID: req.SenderID, ReceiverID: req.ReceiverID}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *FriendGraphRepository) GetRequestByID(ctx context.Context, requestID string) (*domain.FriendRequest, error) {
	const op = "internal.repository.postgres.GetRequestByID"

	query, args, err := r.sq.Select("id", "sender_id", "receiver_id", "status", "created_at").
		From("friend_requests").
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.FriendRequest
	if err := r.db.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: friend request with id '%s'", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &req, nil
}

func (r *FriendGraphRepository) GetRequestByIDWithLock(ctx context.Context, tx *sqlx.Tx, requestID string) (*domain.FriendRequest, error) {
	const op = "internal.repository.postgres.GetRequestByIDWithLock"

	query, args, err := r.sq.Select("id", "sender_id", "receiver_id", "status", "created_at").
		From("friend_requests").
		Where(sq.Eq{"id": requestID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var req domain.FriendRequest
	if err := tx.GetContext(ctx, &req, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: friend request with id '%s'", op, apperrors.ErrNotFound, requestID)
		}

		return nil, fmt.Errorf("%s: failed to get request with lock: %w", op, err)
	}

	return &req, nil
}

func (r *FriendGraphRepository) HasPendingBetween(ctx context.Context, tx *sqlx.Tx, userA, userB string) (bool, error) {
	const op = "internal.repository.postgres.HasPendingBetween"

	query, args, err := r.sq.Select("COUNT(*)").
		From("friend_requests").
		Where(sq.Eq{"status": domain.RequestStatusPending}).
		Where(sq.Or{
			sq.Eq{"sender_id": userA, "receiver_id": userB},
			sq.Eq{"sender_id": userB, "receiver_id": userA},
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := tx.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count > 0, nil
}

func (r *FriendGraphRepository) UpdateRequestStatus(ctx context.Context, tx *sqlx.Tx, requestID string, status domain.RequestStatus) error {
	const op = "internal.repository.postgres.UpdateRequestStatus"

	query, args, err := r.sq.Update("friend_requests").
		Set("status", status).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: friend request with id '%s'", op, apperrors.ErrNotFound, requestID)
	}

	return nil
}

func (r *FriendGraphRepository) ListPendingForReceiver(ctx context.Context, receiverID string) ([]domain.FriendRequest, error) {
	const op = "internal.repository.postgres.ListPendingForReceiver"

	query, args, err := r.sq.Select("id", "sender_id", "receiver_id", "status", "created_at").
		From("friend_requests").
		Where(sq.Eq{"receiver_id": receiverID, "status": domain.RequestStatusPending}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var reqs []domain.FriendRequest
	if err := r.db.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return reqs, nil
}

func (r *FriendGraphRepository) FriendshipExists(ctx context.Context, ext sqlx.ExtContext, userA, userB string) (bool, error) {
	const op = "internal.repository.postgres.FriendshipExists"

	a, b := domain.NormalizePair(userA, userB)

	query, args, err := r.sq.Select("COUNT(*)").
		From("friendships").
		Where(sq.Eq{"user_a_id": a, "user_b_id": b}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var count int
	if err := sqlx.GetContext(ctx, ext, &count, query, args...); err != nil {
		return false, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return count > 0, nil
}

func (r *FriendGraphRepository) CreateFriendship(ctx context.Context, tx *sqlx.Tx, f *domain.Friendship) error {
	const op = "internal.repository.postgres.CreateFriendship"

	a, b := domain.NormalizePair(f.UserAID, f.UserBID)

	query, args, err := r.sq.Insert("friendships").
		Columns("id", "user_a_id", "user_b_id", "created_at").
		Values(f.ID, a, b, f.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return &apperrors.AlreadyFriendsError{UserAID: a, UserBID: b}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *FriendGraphRepository) GetFriendshipByID(ctx context.Context, friendshipID string) (*domain.Friendship, error) {
	const op = "internal.repository.postgres.GetFriendshipByID"

	query, args, err := r.sq.Select("id", "user_a_id", "user_b_id", "created_at").
		From("friendships").
		Where(sq.Eq{"id": friendshipID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var f domain.Friendship
	if err := r.db.GetContext(ctx, &f, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: friendship with id '%s'", op, apperrors.ErrNotFound, friendshipID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &f, nil
}

func (r *FriendGraphRepository) DeleteFriendship(ctx context.Context, friendshipID string) error {
	const op = "internal.repository.postgres.DeleteFriendship"

	query, args, err := r.sq.Delete("friendships").
		Where(sq.Eq{"id": friendshipID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build delete query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute delete: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: friendship with id '%s'", op, apperrors.ErrNotFound, friendshipID)
	}

	return nil
}

func (r *FriendGraphRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	const op = "internal.repository.postgres.ListFriendIDs"

	query, args, err := r.sq.Select("CASE WHEN user_a_id = ? THEN user_b_id ELSE user_a_id END AS friend_id").
		From("friendships").
		Where(sq.Or{
			sq.Eq{"user_a_id": userID},
			sq.Eq{"user_b_id": userID},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	// The CASE placeholder is positional and comes before the WHERE args.
	args = append([]interface{}{userID}, args...)

	var friendIDs []string
	if err := r.db.SelectContext(ctx, &friendIDs, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return friendIDs, nil
}

func (r *FriendGraphRepository) ListFriendsWithStats(ctx context.Context, userID string) ([]domain.FriendWithStats, error) {
	const op = "internal.repository.postgres.ListFriendsWithStats"

	query := `
		SELECT u.id AS user_id,
		       u.display_name,
		       COUNT(si.id) FILTER (WHERE si.difficulty = 'EASY')   AS easy_solved,
		       COUNT(si.id) FILTER (WHERE si.difficulty = 'MEDIUM') AS medium_solved,
		       COUNT(si.id) FILTER (WHERE si.difficulty = 'HARD')   AS hard_solved,
		       MAX(si.solved_at) AS last_solved_at
		FROM friendships f
		JOIN users u
		  ON u.id = CASE WHEN f.user_a_id = $1 THEN f.user_b_id ELSE f.user_a_id END
		LEFT JOIN solved_items si ON si.owner_id = u.id
		WHERE f.user_a_id = $1 OR f.user_b_id = $1
		GROUP BY u.id, u.display_name
		ORDER BY u.display_name`

	var friends []domain.FriendWithStats
	if err := r.db.SelectContext(ctx, &friends, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return friends, nil
}
