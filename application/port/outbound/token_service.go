package outbound

// TokenClaims carries the verified identity encoded in an access token.
type TokenClaims struct {
	ActorID          string
	Role             string
	AuthenticatedVia string
}

type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
