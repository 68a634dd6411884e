package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testKeyPair(t *testing.T) (*rsa.PrivateKey, *rsa.PublicKey) {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return priv, &priv.PublicKey
}

func signToken(t *testing.T, priv *rsa.PrivateKey, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	require.NoError(t, err)
	return token
}

func TestVerifyIdentityToken(t *testing.T) {
	priv, pub := testKeyPair(t)

	token := signToken(t, priv, IdentityClaims{
		Email: "pat@example.com",
		Name:  "Pat",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	claims, err := VerifyIdentityToken(token, pub)
	require.NoError(t, err)
	require.Equal(t, "usr_1", claims.Subject)
	require.Equal(t, "pat@example.com", claims.Email)
	require.Equal(t, "Pat", claims.Name)
}

func TestVerifyIdentityTokenRejectsExpired(t *testing.T) {
	priv, pub := testKeyPair(t)

	token := signToken(t, priv, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := VerifyIdentityToken(token, pub)
	require.Error(t, err)
}

func TestVerifyIdentityTokenRejectsWrongKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	_, otherPub := testKeyPair(t)

	token := signToken(t, priv, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "usr_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := VerifyIdentityToken(token, otherPub)
	require.Error(t, err)
}

// Tokens signed with an HMAC method must be rejected even when the HMAC
// secret happens to be derivable: the verifier accepts RSA only, so a
// forged alg header cannot downgrade verification.
func TestVerifyIdentityTokenRejectsHMAC(t *testing.T) {
	_, pub := testKeyPair(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "usr_1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = VerifyIdentityToken(token, pub)
	require.Error(t, err)
}

func TestVerifyIdentityTokenRequiresSubject(t *testing.T) {
	priv, pub := testKeyPair(t)

	token := signToken(t, priv, IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := VerifyIdentityToken(token, pub)
	require.Error(t, err)
}

func TestParseIdentityPublicKey(t *testing.T) {
	priv, _ := testKeyPair(t)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	parsed, err := ParseIdentityPublicKey(string(pemKey))
	require.NoError(t, err)
	require.True(t, parsed.Equal(&priv.PublicKey))

	_, err = ParseIdentityPublicKey("not a key")
	require.Error(t, err)
}

func TestCheckServiceKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	require.True(t, CheckServiceKey("s3cret", string(hash)))
	require.False(t, CheckServiceKey("wrong", string(hash)))
	require.False(t, CheckServiceKey("s3cret", "not a hash"))
}
