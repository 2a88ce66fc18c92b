package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token emitidos por la aplicación.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añade RoleID para que el middleware RBAC pueda tomar decisiones sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	RoleID    int    `json:"role_id"`
	TokenType string `json:"token_type"`
}

// Generate genera un access token HS256 firmado con userID y roleID.
func Generate(secret string, userID int64, roleID int, issuer string, expMinutes int) (string, error) {
	return sign(secret, userID, roleID, issuer, expMinutes, TypeAccess)
}

// GenerateRefresh genera un refresh token con JTI aleatorio para rotación de sesión.
// Devuelve el token firmado y su JTI (clave de la sesión en el store).
func GenerateRefresh(secret string, userID int64, roleID int, issuer string, expMinutes int) (token, jti string, err error) {
	jti = uuid.New().String()
	token, err = signWithID(secret, userID, roleID, issuer, expMinutes, TypeRefresh, jti)
	return token, jti, err
}

func sign(secret string, userID int64, roleID int, issuer string, expMinutes int, tokenType string) (string, error) {
	return signWithID(secret, userID, roleID, issuer, expMinutes, tokenType, "")
}

func signWithID(secret string, userID int64, roleID int, issuer string, expMinutes int, tokenType, jti string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		RoleID:    roleID,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un access token y devuelve userID y roleID.
// Retorna error si el token es inválido, expirado, de otro tipo o con firma incorrecta.
func Parse(secret, tokenString string) (userID int64, roleID int, err error) {
	claims, err := parseClaims(secret, tokenString)
	if err != nil {
		return 0, 0, err
	}
	if claims.TokenType != TypeAccess {
		return 0, 0, fmt.Errorf("jwt: no es un access token")
	}
	return claims.UserID, claims.RoleID, nil
}

// ParseRefresh valida un refresh token y devuelve userID, roleID y el JTI de la sesión.
func ParseRefresh(secret, tokenString string) (userID int64, roleID int, jti string, err error) {
	claims, err := parseClaims(secret, tokenString)
	if err != nil {
		return 0, 0, "", err
	}
	if claims.TokenType != TypeRefresh || claims.ID == "" {
		return 0, 0, "", fmt.Errorf("jwt: no es un refresh token")
	}
	return claims.UserID, claims.RoleID, claims.ID, nil
}

func parseClaims(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
