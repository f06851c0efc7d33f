package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims shared by the chat and user services.
type Payload struct {
	// StandardClaims embeds the JWT standard fields such as Exp (Expiration),
	// Iat (Issued At), and Iss (Issuer), used for token validity checks.
	jwt.StandardClaims

	// ID is the unique identifier of the authenticated user.
	ID string `json:"id"`

	// UserName is the account name carried for display and logging.
	UserName string `json:"userName"`
}
