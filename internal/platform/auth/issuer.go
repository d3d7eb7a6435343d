package auth

import (
	"crypto/rand"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = crerr.New("invalid admin password")
	ErrInvalidToken       = crerr.New("invalid or expired admin token")
	ErrMissingToken       = crerr.New("admin token required")
)

const (
	adminSubject    = "admin"
	tokenIssuer     = "futsal-ledger"
	defaultTokenTTL = 12 * time.Hour
)

// Claims is the payload of an admin token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is a freshly issued admin token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Issuer verifies the shared admin secret and mints capabilities.
type Issuer struct {
	passwordHash []byte
	secretKey    []byte
	tokenTTL     time.Duration
	now          func() time.Time
}

// NewIssuer hashes password once at startup. An empty secretKey is replaced
// with a random key, which invalidates tokens on every restart.
func NewIssuer(password, secretKey string, tokenTTL time.Duration) (*Issuer, error) {
	if strings.TrimSpace(password) == "" {
		return nil, crerr.New("admin password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, crerr.Wrap(err, "hash admin password")
	}

	key := []byte(secretKey)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, crerr.Wrap(err, "generate admin token secret")
		}
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}

	return &Issuer{
		passwordHash: hash,
		secretKey:    key,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}, nil
}

// Login checks the shared secret and returns a signed token plus the
// capability it grants.
func (i *Issuer) Login(password string) (Session, Capability, error) {
	if err := bcrypt.CompareHashAndPassword(i.passwordHash, []byte(password)); err != nil {
		return Session{}, Capability{}, ErrInvalidCredentials
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.tokenTTL)
	claims := &Claims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   adminSubject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secretKey)
	if err != nil {
		return Session{}, Capability{}, crerr.Wrap(err, "sign admin token")
	}

	return Session{Token: signed, ExpiresAt: expiresAt}, newCapability(adminSubject, expiresAt), nil
}

// Verify parses a bearer token and returns the capability it carries.
func (i *Issuer) Verify(token string) (Capability, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Capability{}, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, crerr.Newf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.secretKey, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Capability{}, crerr.Wrapf(ErrInvalidToken, "parse admin token: %v", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Role != adminSubject || claims.ExpiresAt == nil {
		return Capability{}, ErrInvalidToken
	}

	return newCapability(claims.Subject, claims.ExpiresAt.Time), nil
}
