// utils/auth.go
package utils

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"saloonhub-backend/services"
)

// IdentityClaims are the claims carried by the identity provider's tokens.
// Subject is the provider's stable user id; email and name are best-effort
// profile hints.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// ParseIdentityPublicKey parses the provider's published PEM signing key.
func ParseIdentityPublicKey(pemKey string) (*rsa.PublicKey, error) {
	return jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
}

// VerifyIdentityToken verifies the token signature against the provider's
// public key and validates expiry. It never falls back to an unverified
// decode: a claim is only trusted after the signature checks out.
func VerifyIdentityToken(tokenString string, key *rsa.PublicKey) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}
	return claims, nil
}

// CheckServiceKey compares a presented API key against the configured hash.
func CheckServiceKey(key, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}

func bearerToken(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
		return tokenString[7:]
	}
	return ""
}

// AuthMiddleware verifies the caller's identity token and resolves it to an
// Account, creating one on first contact. The resolved account id and admin
// flag are placed in the request context.
func AuthMiddleware(key *rsa.PublicKey, resolver *services.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := VerifyIdentityToken(tokenString, key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		account, err := resolver.Resolve(c.Request.Context(), claims.Subject, claims.Email, claims.Name)
		if err != nil {
			// Resolution failures are transient; the next request retries.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Account resolution failed, please retry"})
			return
		}

		c.Set("accountId", account.ID.String())
		c.Set("isAdmin", account.IsAdmin)
		c.Next()
	}
}

// RequireAdmin gates a route group to admin accounts. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// ServiceAuthMiddleware authenticates machine-to-machine callers by API key.
// The resolved service account id comes from the lookup func so this
// package stays decoupled from the store.
func ServiceAuthMiddleware(keyHash string, serviceAccountID func(c *gin.Context) (string, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-API-Key")
		if keyHash == "" || key == "" || !CheckServiceKey(key, keyHash) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		id, err := serviceAccountID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service account unavailable"})
			return
		}
		c.Set("accountId", id)
		c.Set("isAdmin", false)
		c.Next()
	}
}
