package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_HashPassword(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "valid password",
			password: "Testpass123",
		},
		{
			name:     "empty password",
			password: "", // bcrypt handles empty passwords
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := svc.HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.True(t, svc.CheckPasswordHash(tt.password, hash))
			assert.False(t, svc.CheckPasswordHash(tt.password+"x", hash))
		})
	}
}

func TestService_CheckPasswordHash_MalformedHash(t *testing.T) {
	svc := newTestService(t)

	// A broken stored hash must read as "not verified", never as a match.
	assert.False(t, svc.CheckPasswordHash("Testpass123", "not-a-bcrypt-hash"))
	assert.False(t, svc.CheckPasswordHash("Testpass123", ""))
}

func TestService_GenerateToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.GenerateToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestService_ValidateToken(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name       string
		setupToken func() string
		wantErr    bool
		wantUser   string
	}{
		{
			name: "valid token",
			setupToken: func() string {
				token, _ := svc.GenerateToken("user-1")
				return token
			},
			wantErr:  false,
			wantUser: "user-1",
		},
		{
			name: "expired token",
			setupToken: func() string {
				expiredConfig := newTestConfig()
				expiredConfig.TokenExpiration = -time.Hour
				expiredSvc := NewService(
					expiredConfig,
					newTestLogger(t),
					newMockRepository(),
				)
				token, _ := expiredSvc.GenerateToken("user-1")
				return token
			},
			wantErr: true,
		},
		{
			name: "token signed with a different secret",
			setupToken: func() string {
				otherConfig := newTestConfig()
				otherConfig.JWTSecret = "some-other-secret"
				otherSvc := NewService(
					otherConfig,
					newTestLogger(t),
					newMockRepository(),
				)
				token, _ := otherSvc.GenerateToken("user-1")
				return token
			},
			wantErr: true,
		},
		{
			name: "malformed token",
			setupToken: func() string {
				return "invalid.token.here"
			},
			wantErr: true,
		},
		{
			name: "empty token",
			setupToken: func() string {
				return ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.setupToken())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, claims.UserID)
		})
	}
}

func TestService_TokenBoundToUser(t *testing.T) {
	svc := newTestService(t)

	tokenA, err := svc.GenerateToken("user-a")
	require.NoError(t, err)
	tokenB, err := svc.GenerateToken("user-b")
	require.NoError(t, err)

	claimsA, err := svc.ValidateToken(tokenA)
	require.NoError(t, err)
	claimsB, err := svc.ValidateToken(tokenB)
	require.NoError(t, err)

	assert.Equal(t, "user-a", claimsA.UserID)
	assert.Equal(t, "user-b", claimsB.UserID)
	assert.NotEqual(t, claimsA.UserID, claimsB.UserID)
}

func TestService_RegisterThenLogin(t *testing.T) {
	svc := newTestService(t)

	user, token, err := svc.Register("alice", "a@x.com", "Abcdef1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "Abcdef1", user.PasswordHash)

	loggedIn, loginToken, err := svc.Login("a@x.com", "Abcdef1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	claims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestService_Register_Duplicates(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register("alice", "a@x.com", "Abcdef1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{
			name:     "duplicate username",
			username: "alice",
			email:    "other@x.com",
			wantErr:  ErrUsernameTaken,
		},
		{
			name:     "duplicate email",
			username: "bob",
			email:    "a@x.com",
			wantErr:  ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Register(tt.username, tt.email, "Abcdef1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Login_GenericError(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Register("alice", "a@x.com", "Abcdef1")
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, _, unknownErr := svc.Login("nobody@x.com", "Abcdef1")
	_, _, wrongPassErr := svc.Login("a@x.com", "wrongpass")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestService_Profile(t *testing.T) {
	repo := newMockRepository()
	svc := newTestServiceWithRepo(t, repo)

	user, _, err := svc.Register("alice", "a@x.com", "Abcdef1")
	require.NoError(t, err)

	got, err := svc.Profile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	// Record deleted out-of-band.
	repo.(*mockRepository).deleteUser(user.ID)
	_, err = svc.Profile(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
