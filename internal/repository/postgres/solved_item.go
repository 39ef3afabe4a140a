package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/apetrov/codetrack/internal/apperrors"
	"github.com/apetrov/codetrack/internal/domain"
	"github.com/jmoiron/sqlx"
)

type SolvedItemRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewSolvedItemRepository(db *sqlx.DB, log *slog.Logger) *SolvedItemRepository {
	return &SolvedItemRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SolvedItemRepository) CreateItem(ctx context.Context, item *domain.SolvedItem) error {
	const op = "internal.repository.postgres.CreateItem"

	query, args, err := r.sq.Insert("solved_items").
		Columns("id", "owner_id", "problem_name", "difficulty", "attempts", "difficulty_rating", "solved_at", "next_review").
		Values(item.ID, item.OwnerID, item.ProblemName, item.Difficulty, item.Attempts, item.DifficultyRating, item.SolvedAt, item.NextReview).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *SolvedItemRepository) GetItemByID(ctx context.Context, itemID string) (*domain.SolvedItem, error) {
	const op = "internal.repository.postgres.GetItemByID"

	query, args, err := r.sq.Select(solvedItemColumns...).
		From("solved_items").
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var item domain.SolvedItem
	if err := r.db.GetContext(ctx, &item, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: solved item with id '%s'", op, apperrors.ErrNotFound, itemID)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &item, nil
}

func (r *SolvedItemRepository) UpdateReviewState(ctx context.Context, itemID string, attempts int, rating int, nextReview time.Time) error {
	const op = "internal.repository.postgres.UpdateReviewState"

	query, args, err := r.sq.Update("solved_items").
		Set("attempts", attempts).
		Set("difficulty_rating", rating).
		Set("next_review", nextReview).
		Where(sq.Eq{"id": itemID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get affected rows: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w: solved item with id '%s'", op, apperrors.ErrNotFound, itemID)
	}

	return nil
}

func (r *SolvedItemRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]domain.SolvedItem, error) {
	const op = "internal.repository.postgres.ListDueBetween"

	query, args, err := r.sq.Select(solvedItemColumns...).
		From("solved_items").
		Where(sq.GtOrEq{"next_review": from}).
		Where(sq.Lt{"next_review": to}).
		OrderBy("owner_id", "next_review").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var items []domain.SolvedItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return items, nil
}

func (r *SolvedItemRepository) ListDueForOwner(ctx context.Context, ownerID string, from, to time.Time) ([]domain.SolvedItem, error) {
	const op = "internal.repository.postgres.ListDueForOwner"

	query, args, err := r.sq.Select(solvedItemColumns...).
		From("solved_items").
		Where(sq.Eq{"owner_id": ownerID}).
		Where(sq.GtOrEq{"next_review": from}).
		Where(sq.Lt{"next_review": to}).
		OrderBy("next_review").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var items []domain.SolvedItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return items, nil
}

func (r *SolvedItemRepository) ListSolveTimes(ctx context.Context, ownerID string) ([]time.Time, error) {
	const op = "internal.repository.postgres.ListSolveTimes"

	query, args, err := r.sq.Select("solved_at").
		From("solved_items").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("solved_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var times []time.Time
	if err := r.db.SelectContext(ctx, &times, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return times, nil
}

var solvedItemColumns = []string{
	"id", "owner_id", "problem_name", "difficulty", "attempts", "difficulty_rating", "solved_at", "next_review",
}
