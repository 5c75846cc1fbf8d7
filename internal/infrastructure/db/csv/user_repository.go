package csv

import (
	"context"
	"fmt"

	"github.com/csfund/crowdfund-system/internal/core/domain"
)

var userColumns = []string{"user_id", "username", "password", "display_name"}

// UserRepository reads the users collection. Accounts are written only by
// the seed tool, so there is no update path.
type UserRepository struct {
	c *collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{c: &s.users}
}

func (r *UserRepository) list() ([]domain.User, error) {
	rows, err := r.c.rows()
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		u, err := decodeUser(row)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Get(_ context.Context, userID string) (*domain.User, error) {
	users, err := r.list()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].UserID == userID {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	users, err := r.list()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func encodeUser(u *domain.User) []string {
	return []string{u.UserID, u.Username, u.Password, u.DisplayName}
}

func decodeUser(row []string) (domain.User, error) {
	if len(row) != len(userColumns) {
		return domain.User{}, fmt.Errorf("users: malformed row %q", row)
	}
	return domain.User{
		UserID:      row[0],
		Username:    row[1],
		Password:    row[2],
		DisplayName: row[3],
	}, nil
}
