// Package accounts keeps the login accounts the service is configured with.
package accounts

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mds-registry-api/config"
	"mds-registry-api/internal/domain/account"
	"mds-registry-api/internal/domain/errs"
	"mds-registry-api/pkg/idgen"
)

type Store struct {
	byUsername map[string]account.Account
}

var _ account.Repository = (*Store)(nil)

// New hashes every seed password with bcrypt; plain passwords are not kept.
func New(seeds []config.SeedAccount, cost int) (*Store, error) {
	s := &Store{byUsername: make(map[string]account.Account, len(seeds))}
	for _, seed := range seeds {
		if _, dup := s.byUsername[seed.Username]; dup {
			return nil, fmt.Errorf("duplicate account %q", seed.Username)
		}
		switch seed.Role {
		case account.RoleAdmin, account.RoleUser:
		default:
			return nil, fmt.Errorf("account %q: unknown role %q", seed.Username, seed.Role)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", seed.Username, err)
		}
		s.byUsername[seed.Username] = account.Account{
			ID:           idgen.New(idgen.PrefixAccount),
			Username:     seed.Username,
			PasswordHash: string(hash),
			Role:         seed.Role,
		}
	}

	return s, nil
}

func (s *Store) FetchAccountByUsername(_ context.Context, username string) (*account.Account, error) {
	a, ok := s.byUsername[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &a, nil
}
