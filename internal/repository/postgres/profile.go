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
)

// ProfileRepository reads notification settings off the users table. It is
// read-only; account management is out of this service's hands.
type ProfileRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewProfileRepository(db *sqlx.DB, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.NotificationProfile, error) {
	const op = "internal.repository.postgres.GetProfile"

	query, args, err := r.sq.Select(profileColumns...).
		From("users").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var profile domain.NotificationProfile
	if err := r.db.GetContext(ctx, &profile, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &profile, nil
}

func (r *ProfileRepository) ListProfiles(ctx context.Context, userIDs []string) ([]domain.NotificationProfile, error) {
	const op = "internal.repository.postgres.ListProfiles"

	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := r.sq.Select(profileColumns...).
		From("users").
		Where(sq.Eq{"id": userIDs}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var profiles []domain.NotificationProfile
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return profiles, nil
}

var profileColumns = []string{
	"id AS user_id", "display_name", "phone_number", "phone_verified", "sms_enabled", "friend_activity_sms",
}
