package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"store-ledger/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Claims carries the resolved session of the identity collaborator
type Claims struct {
	Role    string `json:"role"`
	StoreID string `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens
type Issuer struct {
	secret     []byte
	issuer     string
	expiration time.Duration
}

func NewIssuer(secret, issuer string, expiration time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), issuer: issuer, expiration: expiration}, nil
}

// GenerateToken creates a signed token for a session
func (i *Issuer) GenerateToken(session model.Session) (string, error) {
	if err := session.Validate(); err != nil {
		return "", err
	}
	now := time.Now()

	claims := &Claims{
		Role:    string(session.Role),
		StoreID: string(session.StoreID),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.Subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// ValidateToken parses a token and returns its session
func (i *Issuer) ValidateToken(tokenString string) (model.Session, error) {
	if tokenString == "" {
		return model.Session{}, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer))
	if err != nil {
		return model.Session{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Session{}, ErrInvalidToken
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Session{}, ErrInvalidToken
	}
	session := model.Session{Subject: claims.Subject, Role: role, StoreID: model.StoreID(claims.StoreID)}
	if err := session.Validate(); err != nil {
		return model.Session{}, ErrInvalidToken
	}
	return session, nil
}
