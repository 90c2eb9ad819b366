package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bdc/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT id,email,name,password_hash FROM users WHERE LOWER(email)=LOWER(?)`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, r.DB.Rebind(`SELECT id,email,name,password_hash FROM users WHERE id=?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert creates the account or resets name and password hash of an existing email.
func (r *UserRepo) Upsert(ctx context.Context, email, name, hash string) (*domain.User, error) {
	t := now()
	_, err := r.DB.ExecContext(ctx, r.DB.Rebind(`
  INSERT INTO users(id,email,name,password_hash,created_at,updated_at)
  VALUES(?,?,?,?,?,?)
  ON CONFLICT(email) DO UPDATE SET name=excluded.name, password_hash=excluded.password_hash, updated_at=excluded.updated_at`),
		uuid.NewString(), email, name, hash, t, t)
	if err != nil {
		return nil, err
	}
	return r.ByEmail(ctx, email)
}

// SQLSessions keeps login sessions in the sessions table. The sid is the cookie value.
type SQLSessions struct{ DB *sqlx.DB }

func NewSQLSessions(db *sqlx.DB) *SQLSessions { return &SQLSessions{DB: db} }

func (s *SQLSessions) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sid := uuid.NewString()
	t := now()
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`
  INSERT INTO sessions(id,user_id,created_at,last_seen,expires_at) VALUES(?,?,?,?,?)`),
		sid, userID, t, t, t.Add(ttl))
	if err != nil {
		return "", err
	}
	return sid, nil
}

// Lookup returns the user id behind an unexpired session.
func (s *SQLSessions) Lookup(ctx context.Context, sid string) (string, error) {
	var userID string
	err := s.DB.GetContext(ctx, &userID, s.DB.Rebind(`SELECT user_id FROM sessions WHERE id=? AND expires_at > ?`), sid, now())
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return userID, err
}

// Touch slides the expiry forward.
func (s *SQLSessions) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	t := now()
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`UPDATE sessions SET last_seen=?, expires_at=? WHERE id=?`), t, t.Add(ttl), sid)
	return mustAffect(res, err)
}

func (s *SQLSessions) Delete(ctx context.Context, sid string) error {
	_, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM sessions WHERE id=?`), sid)
	return err
}

// PurgeExpired drops sessions past their expiry; returns how many went.
func (s *SQLSessions) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM sessions WHERE expires_at <= ?`), now())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
