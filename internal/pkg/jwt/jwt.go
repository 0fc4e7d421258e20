package jwt

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
)

var ErrMissingClaims = errors.New("authentication claims missing or invalid")

// Subject is the identity encoded into an access token.
type Subject struct {
	UserID     string
	Username   string
	Role       user.Role
	EmployeeID *string
	ManagerID  *string
	CompanyID  *string
}

// SubjectOf builds the token subject of u.
func SubjectOf(u user.User) Subject {
	return Subject{
		UserID:     u.ID,
		Username:   u.Username,
		Role:       u.Role(),
		EmployeeID: u.EmployeeID,
		ManagerID:  u.ManagerID,
		CompanyID:  u.CompanyID,
	}
}

type Service interface {
	GenerateAccessToken(subject Subject) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ExpiredRefreshTokenCookie() *http.Cookie
}

type JWTService struct {
	accessTokenExpiration  time.Duration
	refreshTokenExpiration time.Duration
	tokenAuth              *jwtauth.JWTAuth
	secureCookies          bool
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration, refreshTokenExpiration time.Duration, secureCookies bool) Service {
	return &JWTService{
		accessTokenExpiration:  accessTokenExpiration,
		refreshTokenExpiration: refreshTokenExpiration,
		tokenAuth:              jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		secureCookies:          secureCookies,
	}
}

func (j *JWTService) GenerateAccessToken(subject Subject) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     subject.UserID,
		"username":    subject.Username,
		"role":        string(subject.Role),
		"employee_id": valueOrNil(subject.EmployeeID),
		"manager_id":  valueOrNil(subject.ManagerID),
		"company_id":  valueOrNil(subject.CompanyID),
		"type":        "access",
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.refreshTokenExpiration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"jti":     uuid.NewString(),
		"type":    "refresh",
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ExpiredRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// Claims is the typed view of an access token's claims.
type Claims struct {
	UserID     string
	Username   string
	Role       user.Role
	EmployeeID string
	ManagerID  string
	CompanyID  string
}

func (c Claims) IsAdmin() bool { return c.Role == user.RoleAdmin }

// IsManager reports manager or admin access.
func (c Claims) IsManager() bool { return c.Role == user.RoleManager || c.Role == user.RoleAdmin }

// FromContext reads the verified token placed in ctx by jwtauth.Verifier.
func FromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, ErrMissingClaims
	}

	userID, ok := raw["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, ErrMissingClaims
	}

	claims := Claims{UserID: userID}
	claims.Username, _ = raw["username"].(string)
	if role, ok := raw["role"].(string); ok {
		claims.Role = user.Role(role)
	}
	claims.EmployeeID, _ = raw["employee_id"].(string)
	claims.ManagerID, _ = raw["manager_id"].(string)
	claims.CompanyID, _ = raw["company_id"].(string)
	return claims, nil
}
