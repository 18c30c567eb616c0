package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pledger/config"
	"pledger/internal/domain/service"
)

const sessionTokenBytes = 32

// sessionTokenService implements SessionTokenService with an HS256-signed
// cookie value. The cookie embeds a random opaque token (the session
// identifier) and the user id; only the token's sha256 hash is ever stored.
type sessionTokenService struct {
	secret string
}

// NewSessionTokenService is the constructor for sessionTokenService.
func NewSessionTokenService(cfg *config.Config) (service.SessionTokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("session signing secret must be provided")
	}

	return &sessionTokenService{secret: cfg.SecretKey}, nil
}

// Issue creates a signed cookie value and the matching server-side token hash.
func (s *sessionTokenService) Issue(userID uuid.UUID, ttl time.Duration) (string, string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", errors.Wrap(err, "failed to generate session token")
	}
	opaque := base64.RawURLEncoding.EncodeToString(raw)

	claims := jwt.MapClaims{
		"sub": userID.String(),            // Subject (who the session belongs to)
		"sid": opaque,                     // Opaque session identifier
		"iat": time.Now().Unix(),          // Issued At
		"exp": time.Now().Add(ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, hashToken(opaque), nil
}

// Verify checks the cookie signature and expiry and returns the embedded
// user id plus the token hash for the session store lookup.
func (s *sessionTokenService) Verify(cookieValue string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(cookieValue, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return uuid.Nil, "", errors.Wrap(err, "invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, "", errors.New("invalid session token claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.Wrap(err, "invalid user id in session token")
	}

	opaque, _ := claims["sid"].(string)
	if opaque == "" {
		return uuid.Nil, "", errors.New("session identifier missing from token")
	}

	return userID, hashToken(opaque), nil
}

func hashToken(opaque string) string {
	sum := sha256.Sum256([]byte(opaque))

	return hex.EncodeToString(sum[:])
}
