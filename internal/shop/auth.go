package shop

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ecommerce_api/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthProvider verifies credentials and maps session principals back to users.
// The routing layer calls it directly; it never touches cookies or session storage.
type AuthProvider interface {
	// Verify checks a username and plaintext password against the stored hash.
	Verify(ctx context.Context, username, password string) (*domain.User, error)
	// SerializeUser returns the identifier persisted in the session store.
	SerializeUser(u *domain.User) uint
	// ResolvePrincipal loads the user behind a session identifier.
	ResolvePrincipal(ctx context.Context, id uint) (*domain.User, error)
}

// Authenticator is the GORM backed AuthProvider. It also registers users,
// since it owns the password hashing scheme.
type Authenticator struct {
	db   *gorm.DB
	cost int
}

var _ AuthProvider = (*Authenticator)(nil)

// NewAuthenticator returns an Authenticator hashing with bcrypt.DefaultCost.
func NewAuthenticator(db *gorm.DB) *Authenticator {
	return &Authenticator{db: db, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (a *Authenticator) WithCost(cost int) *Authenticator {
	a.cost = cost
	return a
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (a *Authenticator) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	var user domain.User
	err := a.db.WithContext(ctx).Where("username = ?", normalizeUsername(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthError{Reason: ReasonNoSuchUser}
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &AuthError{Reason: ReasonBadPassword}
	}
	return &user, nil
}

func (a *Authenticator) SerializeUser(u *domain.User) uint {
	return u.ID
}

func (a *Authenticator) ResolvePrincipal(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := a.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("User", id)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return &user, nil
}

// RegisterInput is the data needed to open an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

// Register validates the input, hashes the password and stores a new user.
// A taken username or email yields ErrConflict.
func (a *Authenticator) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	username := normalizeUsername(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !usernamePattern.MatchString(username) {
		return nil, invalid("Username must be 3-32 letters, digits or underscores")
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("Email is invalid")
	}
	// bcrypt ignores everything past 72 bytes
	if len(in.Password) < 8 || len(in.Password) > 72 {
		return nil, invalid("Password must be 8-72 characters")
	}

	db := a.db.WithContext(ctx)
	var taken int64
	if err := db.Model(&domain.User{}).Where("username = ? OR email = ?", username, email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Username: username, Email: email, Password: string(hash), Role: domain.RoleUser}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q: %w", username, ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}
