package utils // utils provides helpers for issuing admin access tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken represents a signed JWT access token along with its
// expiry.  Admin tokens are the HTTP carrier of a privileged session:
// they are short-lived and presented in the Authorization header on
// privileged endpoints.  There is no refresh flow; when the token
// expires the operator logs in again.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT carrying the given role
// claim.  The JWT includes standard claims: role, expiration (exp) and
// issued at (iat).  There is no subject claim because the privileged
// credential is shared rather than per-operator.
func NewAccessToken(secret, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
