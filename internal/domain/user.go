package domain

// UserRole define os papéis reconhecidos pelo backend.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User é o usuário da sessão. Criado no login/registro, relido do storage
// persistido na inicialização, invalidado no logout ou num 401 do profile.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// IsAdmin informa se o usuário pode acessar as operações de back-office.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
