package ports

import (
	"context"

	"mds-registry-api/internal/domain/account"
)

type Auth interface {
	Login(ctx context.Context, username, password string) (string, *account.Account, error)
}
