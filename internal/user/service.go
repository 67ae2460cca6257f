package user

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	DefaultTokenTTL   = 72 * time.Hour
)

var ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)

type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, tokenTTL: DefaultTokenTTL, now: time.Now}
}

// WithSecret sets the HMAC key used to sign session tokens.
func (s *Service) WithSecret(secret []byte, ttl time.Duration) *Service {
	s.secret = secret
	if ttl > 0 {
		s.tokenTTL = ttl
	}
	return s
}

func (s *Service) List() ([]User, error) {
	return s.repo.List()
}

// Customers lists accounts with the customer role whose name, email or phone
// contains q.
func (s *Service) Customers(q string) ([]User, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role != RoleCustomer {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.Email), q) &&
			!strings.Contains(u.Phone, q) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Update(id int, user User) (User, error) {
	return s.repo.Update(id, user)
}

func (s *Service) SetRole(id int, role Role) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	existing.Role = role
	existing.Password = ""
	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

func (s *Service) Register(user User) (User, error) {
	if len(user.Password) < MinPasswordLength {
		return User{}, ErrWeakPassword
	}
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hashed, err := hashPassword(user.Password)
	if err != nil {
		return User{}, err
	}

	user.Password = hashed
	if user.Role == "" {
		user.Role = RoleCustomer
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}
	return s.repo.Create(user)
}

// Authenticate checks the password against the stored hash. Seeded accounts
// may still hold a plain password; those compare directly.
func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if !looksLikeBcrypt(user.Password) {
		if user.Password != password {
			return User{}, ErrInvalidCredentials
		}
		return user, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken signs an HS256 token carrying user_id, email and role.
func (s *Service) IssueToken(user User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     s.now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func looksLikeBcrypt(value string) bool {
	return len(value) > 4 && value[0:2] == "$2"
}
