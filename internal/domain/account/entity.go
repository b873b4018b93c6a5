package account

type (
	Role    = string
	Account struct {
		ID           string
		Username     string
		PasswordHash string
		Role         Role
	}
)

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)
