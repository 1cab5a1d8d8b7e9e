// Package store is the data access layer for the board: it shapes queries,
// joins related rows into view models, and owns no persistence guarantees
// beyond that (durability and uniqueness belong to the database).
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Store struct {
	db      *gorm.DB
	members MemberDirectory
}

// New builds a Store around an injected database handle. The member directory
// decides whether members are read from the team_members table or derived
// from profiles.
func New(database *gorm.DB, members MemberDirectory) *Store {
	return &Store{db: database, members: members}
}

func (s *Store) Members() MemberDirectory {
	return s.members
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// TranslateError covers gorm drivers; the raw Postgres code is matched as
// well in case translation is disabled.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
