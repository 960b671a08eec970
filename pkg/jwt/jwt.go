package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret sin secreto no se firma ni se verifica nada.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims claims estándar más los del backend de inventario.
// Role permite a RBAC decidir sin consultar al backend.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"` // "admin" | "bodeguero" | "vendedor"
}

// Options parámetros de firma y verificación.
// Issuer vacío no se verifica (tokens emitidos por el backend sin iss).
type Options struct {
	Secret string
	Issuer string
	Leeway time.Duration
}

// Identity usuario autenticado extraído de un token válido.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string
	ExpiresAt time.Time
}

// Issue firma un token HS256 para id con vigencia ttl.
func Issue(opts Options, id Identity, ttl time.Duration) (string, error) {
	if opts.Secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    opts.Issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    id.UserID,
		CompanyID: id.CompanyID,
		Role:      id.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(opts.Secret))
}

// Verify valida firma, expiración y (si está configurado) emisor.
// Sin user_id se usa el subject; el rol se normaliza a minúsculas.
func Verify(opts Options, tokenString string) (Identity, error) {
	if opts.Secret == "" {
		return Identity{}, ErrEmptySecret
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.Leeway),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(opts.Secret), nil
	}, parserOpts...)
	if err != nil {
		return Identity{}, fmt.Errorf("jwt: %w", err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("jwt: claims inválidos")
	}

	id := Identity{
		UserID:    claims.UserID,
		CompanyID: claims.CompanyID,
		Role:      strings.ToLower(strings.TrimSpace(claims.Role)),
	}
	if id.UserID == "" {
		id.UserID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
