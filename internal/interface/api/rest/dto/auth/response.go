package auth

import (
	"mds-registry-api/internal/domain/account"
)

type (
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	LoginResponse struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
)

func ToResponseUser(a account.Account) User {
	return User{ID: a.ID, Username: a.Username, Role: a.Role}
}
