// Package tokens signs and verifies the HS256 JWTs the dispute service deals with:
// sessions issued by the identity service, and defendant invitation tokens.
package tokens

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/landauthority/dispute-api/models"
)

const issuer = "land-dispute-api"

// InvitationTTL is how long a defendant has to accept an invitation
const InvitationTTL = 7 * 24 * time.Hour

// SessionClaims carry the authenticated actor. EffectiveRole is set when the account
// has switched to another view of itself.
type SessionClaims struct {
	UserID        string      `json:"userId"`
	Name          string      `json:"name,omitempty"`
	Email         string      `json:"email,omitempty"`
	ActualRole    models.Role `json:"actualRole"`
	EffectiveRole models.Role `json:"effectiveRole,omitempty"`
	District      string      `json:"district,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts the claims into the actor every operation receives
func (c *SessionClaims) Actor() models.Actor {
	effective := c.EffectiveRole
	if effective == "" {
		effective = c.ActualRole
	}
	return models.Actor{
		ID:            c.UserID,
		Name:          c.Name,
		Email:         c.Email,
		ActualRole:    c.ActualRole,
		EffectiveRole: effective,
		District:      c.District,
	}
}

// InvitationClaims are embedded in the signup link sent to a newly assigned defendant
type InvitationClaims struct {
	CaseID      string `json:"caseId"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	FullName    string `json:"fullName"`
	CaseCode    string `json:"caseCode"`
	NationalID  string `json:"nationalId,omitempty"`
	IssuedAt    int64  `json:"issuedAt"`
	jwt.RegisteredClaims
}

// Manager handles JWT generation and validation with one shared secret
type Manager struct {
	secretKey []byte
	now       func() time.Time
}

// NewManager creates a new token manager
func NewManager(secretKey string) *Manager {
	return &Manager{secretKey: []byte(secretKey), now: time.Now}
}

// SignSession issues a session token valid for ttl
func (m *Manager) SignSession(claims SessionClaims, ttl time.Duration) (string, error) {
	claims.RegisteredClaims = m.registered(claims.UserID, ttl)
	return m.sign(claims)
}

// VerifySession validates a session token
func (m *Manager) VerifySession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.UserID == "" || !claims.ActualRole.Valid() {
		return nil, errors.Wrap(models.ErrTokenInvalid, "session is missing a user or role")
	}
	if claims.EffectiveRole != "" && !claims.EffectiveRole.Valid() {
		return nil, errors.Wrapf(models.ErrTokenInvalid, "unknown effective role %s", claims.EffectiveRole)
	}
	return claims, nil
}

// SignInvitation issues a defendant invitation token valid for ttl
func (m *Manager) SignInvitation(claims InvitationClaims, ttl time.Duration) (string, error) {
	claims.Role = "defendant"
	claims.RegisteredClaims = m.registered(claims.Email, ttl)
	claims.IssuedAt = claims.RegisteredClaims.IssuedAt.Unix()
	return m.sign(claims)
}

// VerifyInvitation validates a defendant invitation token
func (m *Manager) VerifyInvitation(tokenString string) (*InvitationClaims, error) {
	claims := &InvitationClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Role != "defendant" || claims.CaseID == "" {
		return nil, errors.Wrap(models.ErrTokenInvalid, "not a defendant invitation")
	}
	return claims, nil
}

func (m *Manager) registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := m.now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   subject,
	}
}

func (m *Manager) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

func (m *Manager) parse(tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Wrap(models.ErrTokenExpired, err.Error())
	default:
		return errors.Wrap(models.ErrTokenInvalid, err.Error())
	}
}

// ExtractBearer extracts the token from an Authorization header of the form "Bearer <token>"
func ExtractBearer(authHeader string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) || len(authHeader) == len(prefix) {
		return "", errors.Wrap(models.ErrTokenInvalid, "invalid authorization header format")
	}
	return strings.TrimSpace(authHeader[len(prefix):]), nil
}
