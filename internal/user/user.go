package user

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Role      Role      `json:"role"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Seed returns the accounts a fresh in-memory store starts with. Passwords
// are hashed by the service on first use.
func Seed() []User {
	created := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return []User{
		{ID: 1, Name: "Soko Admin", Email: "admin@sokomtaani.co.ke", Phone: "+254712345678", Role: RoleAdmin, Password: "admin123", CreatedAt: created},
		{ID: 2, Name: "Jane Wanjiku", Email: "jane@example.com", Phone: "+254722000111", Address: "Parklands, 3rd Avenue", Role: RoleCustomer, Password: "password", CreatedAt: created},
	}
}
