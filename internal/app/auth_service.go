package app

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blogql/internal/model"
	"blogql/internal/pkg/apperr"
	"blogql/internal/pkg/jwtutil"
	"blogql/internal/pkg/validate"
)

type AuthService struct {
	users         UserGateway
	jwtSecret     string
	jwtExpiration time.Duration
}

type SignupInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token  string
	UserID uint
}

func NewAuthService(users UserGateway, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// CreateUser registers a new account. All validation failures for the input
// are surfaced together before any persistence happens.
func (s *AuthService) CreateUser(input SignupInput) (*model.User, error) {
	email := validate.NormalizeEmail(input.Email)
	name := validate.Trim(input.Name)
	password := validate.Trim(input.Password)

	if violations := validate.Signup(email, name, password); len(violations) > 0 {
		return nil, apperr.NewValidation(violations)
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NewConflict("E-Mail address already exists!")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Status:       model.DefaultUserStatus,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login issues a signed token. A missing account and a wrong password produce
// the same 401 so the response does not reveal which emails are registered.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	email := validate.NormalizeEmail(input.Email)

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NewUnauthenticated("Invalid email or password.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperr.NewUnauthenticated("Invalid email or password.")
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, UserID: user.ID}, nil
}
