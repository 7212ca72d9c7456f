// ABOUTME: Admin authentication with a bcrypt-hashed password and HS256 JWTs
// ABOUTME: Issues tokens on login and verifies bearer tokens for admin routes
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing or malformed Authorization header")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotAdmin           = errors.New("admin access required")
)

// Claims carries sub (admin email), iat and exp.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is the result of a successful login.
type Token struct {
	Value     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type Config struct {
	Email    string
	Password string
	Secret   string
	Expiry   time.Duration
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

type Authenticator struct {
	email   string
	hash    []byte
	secret  []byte
	expiry  time.Duration
	now     func() time.Time
	compare func(hash, password []byte) error
}

// NewAuthenticator hashes the admin password once so plaintext is not kept around.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if cfg.Email == "" || cfg.Password == "" {
		return nil, errors.New("admin email and password are required")
	}
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Authenticator{
		email:   cfg.Email,
		hash:    hash,
		secret:  []byte(cfg.Secret),
		expiry:  expiry,
		now:     time.Now,
		compare: bcrypt.CompareHashAndPassword,
	}, nil
}

// Login checks the credentials and issues a token for the admin.
// The password hash is always compared so a wrong email costs the same as a wrong password.
func (a *Authenticator) Login(email, password string) (Token, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passwordErr := a.compare(a.hash, []byte(password))
	if !emailOK || passwordErr != nil {
		log.Warn("login rejected", "email", email)
		return Token{}, ErrInvalidCredentials
	}

	issued := a.now()
	expires := issued.Add(a.expiry)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: expires, ExpiresIn: a.expiry}, nil
}

// Verify parses and validates a token string.
func (a *Authenticator) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		log.Debug("token verification failed", "err", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: no expiry", ErrInvalidToken)
	}
	return claims, nil
}

// IsAdmin reports whether the claims belong to the configured admin.
func (a *Authenticator) IsAdmin(c *Claims) bool {
	return c != nil && c.Subject == a.email
}
