package auth

import (
	"context"
	"errors"
	"time"

	"github.com/clearspend/expense-approval/internal/approval"
	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated caller resolved from a bearer token. It is what
// handlers pull from the request context.
type User struct {
	ID        int64         `json:"id"`
	Email     string        `json:"email"`
	Name      string        `json:"name"`
	Role      approval.Role `json:"role"`
	CompanyID int64         `json:"company_id"`
	ManagerID *int64        `json:"manager_id,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == approval.RoleAdmin
}

func (u *User) IsManager() bool {
	return u.Role == approval.RoleManager
}

func (u *User) IsEmployee() bool {
	return u.Role == approval.RoleEmployee
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims carried by both access and refresh tokens.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CompanyID int64  `json:"company_id"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates tokens.
type TokenGenerator interface {
	GenerateAccessToken(user *User) (token string, err error)
	GenerateRefreshToken(user *User) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoCompany          = errors.New("no company exists yet")
	ErrUserNotFound       = errors.New("user not found")
)

type contextKey string

const ContextUserKey contextKey = "authUser"

func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(ContextUserKey).(*User)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}
