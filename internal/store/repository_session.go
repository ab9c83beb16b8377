package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/session"
	"github.com/MKhiriev/go-session-auth/models"
)

// sessionRepository stores sessions in the "user_sessions" table. It
// implements [session.Storage].
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a database backed [session.Storage].
func NewSessionRepository(db *DB, logger *logger.Logger) session.Storage {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *sessionRepository) Save(ctx context.Context, s models.Session) error {
	query, args, err := r.db.builder().
		Insert(s.TableName()).
		Columns("session_id", "user_id", "created_at").
		Values(s.Token, s.UserID, s.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Save").Msg("error inserting session")
		if isUniqueViolation(err) {
			return ErrSessionAlreadyExists
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

func (r *sessionRepository) Load(ctx context.Context, token string) (models.Session, error) {
	query, args, err := r.db.builder().
		Select("session_id", "user_id", "created_at").
		From(models.Session{}.TableName()).
		Where(sq.Eq{"session_id": token}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	s, err := doWithRetry(ctx, r.db, func(ctx context.Context) (models.Session, error) {
		var s models.Session
		err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.Token, &s.UserID, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		if isNoRows(err) {
			return models.Session{}, session.ErrSessionNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository.Load").Msg("error loading session")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return s, nil
}

// Delete removes the row for token. The DELETE is a single statement, so
// of two concurrent deletes only one observes an affected row.
func (r *sessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	query, args, err := r.db.builder().
		Delete(models.Session{}.TableName()).
		Where(sq.Eq{"session_id": token}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	affected, err := r.exec(ctx, "Delete", query, args)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *sessionRepository) DeleteCreatedBefore(ctx context.Context, t time.Time) (int64, error) {
	query, args, err := r.db.builder().
		Delete(models.Session{}.TableName()).
		Where(sq.Lt{"created_at": t}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.exec(ctx, "DeleteCreatedBefore", query, args)
}

func (r *sessionRepository) exec(ctx context.Context, fn, query string, args []any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*sessionRepository."+fn).Msg("error deleting sessions")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return affected, nil
}
