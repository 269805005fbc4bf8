package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("super-secret"), time.Hour)
	userID := uuid.New()

	tok, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotID, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("secret"), time.Hour)

	tok, err := svc.Issue(uuid.New())
	require.NoError(t, err)

	// Flip the last character of the signature segment.
	last := tok[len(tok)-1]
	replacement := "A"
	if last == 'A' {
		replacement = "B"
	}
	tampered := tok[:len(tok)-1] + replacement

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewService([]byte("right-secret"), time.Hour)
	verifier := NewService([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("k"), time.Hour)

	for _, tok := range []string{"", "not.a.jwt", strings.Repeat("x", 64)} {
		_, err := svc.Verify(tok)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", tok)
	}
}

func TestVerify_NonUUIDSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	svc := NewService(secret, time.Hour)

	// Correctly signed, but the subject is not a user id.
	claims := jwt.RegisteredClaims{
		Subject:   "not-a-user-id",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
