package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/techmate/dispatch/internal/model"
)

// Parser verifies access tokens issued by the identity service and
// resolves them to a Principal. Token issuance lives elsewhere; this
// side only validates.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

type accessClaims struct {
	Role        string   `json:"role"`
	VendorID    string   `json:"vendor_id,omitempty"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Parse validates the token signature and expiry and builds the request
// principal. The permission set is copied so later mutations of the
// token claims can never leak into the request.
func (p *Parser) Parse(token string) (model.Principal, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return model.Principal{}, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	principal := model.Principal{
		UserID:      userID,
		Role:        model.Role(claims.Role),
		Permissions: append([]string(nil), claims.Permissions...),
	}

	if claims.VendorID != "" {
		vendorID, err := uuid.Parse(claims.VendorID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("invalid vendor_id: %w", err)
		}
		principal.VendorID = &vendorID
	}

	return principal, nil
}
