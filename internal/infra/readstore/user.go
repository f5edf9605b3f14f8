package readstore

import (
	"context"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra/db"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	const query = `
		SELECT id, email, full_name, role, password_hash, created_at
		FROM users
		WHERE email = $1`

	var (
		u    user.User
		role string
	)
	err := s.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, wrapReadErr("failed to find user", err)
	}
	parsed, ok := user.ParseRole(role)
	if !ok {
		parsed = user.RoleGuest
	}
	u.Role = parsed
	return &u, nil
}
