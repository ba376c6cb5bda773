package auth

import (
	"net/http"
	"time"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/errx"
	"github.com/golang-jwt/jwt/v5"
)

// Role marks which side of the marketplace a token belongs to.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// TokenClaims are the validated contents of a session token.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// TokenService issues and validates session tokens.
type TokenService interface {
	GenerateToken(subject, email string, role Role) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

var authRegistry = errx.NewRegistry("AUTH")

var codeInvalidToken = authRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")

// ErrInvalidToken is the generic token failure. It deliberately carries no
// detail about why validation failed.
func ErrInvalidToken() *errx.Error {
	return authRegistry.New(codeInvalidToken)
}

// JWTService implements TokenService with HMAC-signed JWTs.
type JWTService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTService creates a JWT token service.
func NewJWTService(secret, issuer string, ttl time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for the subject.
func (s *JWTService) GenerateToken(subject, email string, role Role) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign token", errx.TypeInternal)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token string.
func (s *JWTService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken()
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	return &TokenClaims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Role:      Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
