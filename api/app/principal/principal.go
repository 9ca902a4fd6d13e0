package principal

import (
	"context"
	"errors"
	"strconv"

	"github.com/crewline/crewline/tokens"
	"github.com/go-chi/jwtauth/v5"
)

var ErrNoPrincipal = errors.New("no authenticated principal in context")

// Principal is the authenticated caller as carried by the access token
type Principal struct {
	UserID       int
	Email        string
	Username     string
	Role         string
	RestaurantID *int
}

// FromContext extracts the caller from the verified token claims
func FromContext(ctx context.Context) (*Principal, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return nil, ErrNoPrincipal
	}
	id, err := strconv.Atoi(token.Subject())
	if err != nil {
		return nil, ErrNoPrincipal
	}
	p := &Principal{UserID: id}
	if email, ok := claims[tokens.ClaimEmail].(string); ok {
		p.Email = email
	}
	if username, ok := claims[tokens.ClaimUsername].(string); ok {
		p.Username = username
	}
	if role, ok := claims[tokens.ClaimRole].(string); ok {
		p.Role = role
	}
	if rid, ok := claims[tokens.ClaimRestaurantID]; ok && rid != nil {
		// numeric json claims decode as float64
		if f, ok := rid.(float64); ok {
			i := int(f)
			p.RestaurantID = &i
		}
	}
	if p.Role == "" {
		return nil, ErrNoPrincipal
	}
	return p, nil
}
