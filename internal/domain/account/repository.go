package account

import "context"

type Repository interface {
	FetchAccountByUsername(ctx context.Context, username string) (*Account, error)
}
