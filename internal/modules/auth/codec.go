package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"github.com/P-N-S-U/backend/internal/platform/errs"
)

// TokenTTL is the lifetime of every credential.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidOrExpired covers bad signatures, malformed tokens and elapsed expiry.
var ErrInvalidOrExpired = errors.New("invalid or expired token")

// Subject is what a credential asserts about its holder.
type Subject struct {
	ID    uuid.UUID
	Email string
	Role  string
	// Verified is the producer flag at issuance; ignored for other roles.
	Verified bool
}

// Claims is the JWT payload.
type Claims struct {
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified *bool  `json:"verified,omitempty"`
	jwt.StandardClaims
}

// IdentityRef returns the identity identifier the token was issued for.
func (c *Claims) IdentityRef() string { return c.Subject }

// Codec signs and verifies HS256 credentials with a process-wide secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the codec issuing tokens at now().
func (c *Codec) WithClock(now func() time.Time) *Codec {
	return &Codec{secret: c.secret, now: now}
}

func (c *Codec) Issue(s Subject) (string, error) {
	issuedAt := c.now()
	claims := &Claims{
		Email: s.Email,
		Role:  s.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   s.ID.String(),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(TokenTTL).Unix(),
			Id:        uuid.NewString(),
		},
	}
	if s.Role == RoleProducer {
		v := s.Verified
		claims.Verified = &v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errs.Wrap(err, errs.CodeInternal, "sign token")
	}
	return signed, nil
}

// Verify parses tokenString, with or without a "Bearer " prefix.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, invalid()
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidOrExpired
		}
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, invalid()
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, invalid()
	}
	// StandardClaims treats a zero exp as "never expires"; ours always expire.
	if claims.ExpiresAt == 0 {
		return nil, invalid()
	}
	return claims, nil
}

func invalid() error {
	return errs.Wrap(ErrInvalidOrExpired, errs.CodeUnauthorized, "invalid or expired token")
}
