package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/models"
)

var userColumns = []string{
	"id",
	"email",
	"hashed_password",
	"reset_token",
	"first_name",
	"last_name",
	"created_at",
	"updated_at",
}

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation, lookup and update against the "users"
// table on PostgreSQL and SQLite alike.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the canonical database
// representation via a RETURNING clause.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
//   - scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder().
		Insert(models.User{}.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.HashedPassword, user.ResetToken, user.FirstName, user.LastName, user.CreatedAt, user.UpdatedAt).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch {
		case isUniqueViolation(err):
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUser retrieves the single user matching filter. Transient errors are
// retried.
//
// Error handling:
//   - invalid filter → [models.ErrInvalidUserFilter].
//   - no matching row → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUser(ctx context.Context, filter models.UserFilter) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := filter.Validate(); err != nil {
		return models.User{}, err
	}

	query, args, err := r.db.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(filterCondition(filter)).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	found, err := doWithRetry(ctx, r.db, func(ctx context.Context) (models.User, error) {
		return scanUser(r.db.QueryRowContext(ctx, query, args...))
	})
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindUser").Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// ListUsers returns all users ordered by created_at, then id. Transient
// errors are retried.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := r.db.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users, err := doWithRetry(ctx, r.db, func(ctx context.Context) ([]models.User, error) {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		users := make([]models.User, 0)
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			users = append(users, u)
		}
		return users, rows.Err()
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of changes and bumps updated_at.
// With changes.IfResetToken set the statement becomes a compare-and-set on
// the stored reset token, so two concurrent consumers of the same token
// cannot both succeed.
func (r *userRepository) UpdateUser(ctx context.Context, id string, changes models.UserChanges) error {
	log := logger.FromContext(ctx)

	if changes.IsEmpty() {
		return nil
	}

	set := map[string]any{"updated_at": time.Now().UTC()}
	if changes.HashedPassword != nil {
		set["hashed_password"] = *changes.HashedPassword
	}
	switch {
	case changes.ClearResetToken:
		set["reset_token"] = nil
	case changes.ResetToken != nil:
		set["reset_token"] = *changes.ResetToken
	}
	if changes.FirstName != nil {
		set["first_name"] = *changes.FirstName
	}
	if changes.LastName != nil {
		set["last_name"] = *changes.LastName
	}

	where := sq.Eq{"id": id}
	if changes.IfResetToken != nil {
		where["reset_token"] = *changes.IfResetToken
	}

	query, args, err := r.db.builder().
		Update(models.User{}.TableName()).
		SetMap(set).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		if isUniqueViolation(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// CountUsers returns the number of rows in the "users" table.
func (r *userRepository) CountUsers(ctx context.Context) (int64, error) {
	query, args, err := r.db.builder().
		Select("COUNT(*)").
		From(models.User{}.TableName()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	count, err := doWithRetry(ctx, r.db, func(ctx context.Context) (int64, error) {
		var n int64
		err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
		return n, err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.CountUsers").Msg("error counting users")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return count, nil
}

func filterCondition(filter models.UserFilter) sq.Eq {
	switch {
	case filter.ID != "":
		return sq.Eq{"id": filter.ID}
	case filter.Email != "":
		return sq.Eq{"email": filter.Email}
	default:
		return sq.Eq{"reset_token": filter.ResetToken}
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.ResetToken,
		&u.FirstName,
		&u.LastName,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}
