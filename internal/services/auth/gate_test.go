package auth

import (
	"testing"
	"time"

	"github.com/gdshowcase/gd-showcase/config"
	"github.com/gdshowcase/gd-showcase/utils/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T, moderatorSecret string) *GateService {
	gate, err := NewGateService(&config.Config{
		ModeratorSecret: moderatorSecret,
		GateTokenSecret: "test-secret-for-signing",
		GateTokenTTL:    time.Hour,
	})
	require.NoError(t, err)
	return gate
}

func TestVerifySecret(t *testing.T) {
	t.Run("明文口令匹配", func(t *testing.T) {
		gate := newTestGate(t, "hunter2")
		assert.True(t, gate.VerifySecret("hunter2"))
		assert.False(t, gate.VerifySecret("wrong"))
	})

	t.Run("argon2id 哈希口令匹配", func(t *testing.T) {
		hash, err := crypto.HashSecret("hunter2")
		require.NoError(t, err)
		gate := newTestGate(t, hash)

		assert.True(t, gate.VerifySecret("hunter2"))
		assert.False(t, gate.VerifySecret("wrong"))
	})

	t.Run("未配置口令一律拒绝", func(t *testing.T) {
		gate := newTestGate(t, "")
		assert.False(t, gate.VerifySecret(""))
		assert.False(t, gate.VerifySecret("anything"))
	})
}

func TestTokenRoundTrip(t *testing.T) {
	gate := newTestGate(t, "hunter2")

	token, ttl, err := gate.IssueToken()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
	assert.NoError(t, gate.ValidateToken(token))
}

func TestExpiredTokenRejected(t *testing.T) {
	// 构造负有效期绕过 NewGateService 的下限保护
	gate := &GateService{
		tokenSecret: []byte("test-secret-for-signing"),
		tokenTTL:    -time.Minute,
	}

	token, _, err := gate.IssueToken()
	require.NoError(t, err)
	assert.Error(t, gate.ValidateToken(token))
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	gate := newTestGate(t, "hunter2")

	other, err := NewGateService(&config.Config{
		GateTokenSecret: "a-different-secret",
		GateTokenTTL:    time.Hour,
	})
	require.NoError(t, err)

	token, _, err := other.IssueToken()
	require.NoError(t, err)
	assert.Error(t, gate.ValidateToken(token))
}

func TestGarbageTokenRejected(t *testing.T) {
	gate := newTestGate(t, "hunter2")
	assert.Error(t, gate.ValidateToken("not.a.token"))
	assert.Error(t, gate.ValidateToken(""))
}

func TestEphemeralSecretGenerated(t *testing.T) {
	gate, err := NewGateService(&config.Config{GateTokenTTL: time.Hour})
	require.NoError(t, err)

	token, _, err := gate.IssueToken()
	require.NoError(t, err)
	assert.NoError(t, gate.ValidateToken(token))
}
