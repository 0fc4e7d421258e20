package user

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/terceiro-labs/provision-backend/internal/domain/auth"
	"github.com/terceiro-labs/provision-backend/internal/domain/user"
	"github.com/terceiro-labs/provision-backend/internal/pkg/jwt"
	"github.com/terceiro-labs/provision-backend/internal/service/file"
)

type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u := f.users[id]
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u := f.users[id]
	u.IsActive = active
	f.users[id] = u
	return nil
}

type fakeTokens struct {
	auth.RefreshTokenRepository
	revokedFor []string
}

func (f *fakeTokens) RevokeAllForUser(_ context.Context, userID string) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

type fakeFiles struct{ file.FileService }

func (fakeFiles) URL(key string) string { return "http://files.local/" + key }

func ctxAs(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret-key-for-jwt", time.Hour, time.Hour, false)
	token, _, err := svc.GenerateAccessToken(jwt.Subject{UserID: userID, Role: role})
	require.NoError(t, err)
	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func newService(users map[string]user.User) (user.UserService, *fakeUserRepo, *fakeTokens) {
	repo := &fakeUserRepo{users: users}
	tokens := &fakeTokens{}
	return NewUserService(repo, tokens, fakeFiles{}), repo, tokens
}

func TestToggleActive(t *testing.T) {
	svc, repo, tokens := newService(map[string]user.User{
		"u1": {ID: "u1", Username: "maria", IsActive: true},
	})
	admin := ctxAs(t, "admin", user.RoleAdmin)

	resp, err := svc.ToggleActive(admin, "u1")
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.False(t, repo.users["u1"].IsActive)
	assert.Equal(t, []string{"u1"}, tokens.revokedFor)

	resp, err = svc.ToggleActive(admin, "u1")
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Len(t, tokens.revokedFor, 1)
}

func TestToggleActive_Guards(t *testing.T) {
	svc, _, _ := newService(map[string]user.User{"admin": {ID: "admin", IsStaff: true, IsActive: true}})

	_, err := svc.ToggleActive(ctxAs(t, "admin", user.RoleAdmin), "admin")
	assert.ErrorIs(t, err, user.ErrCannotToggleSelf)

	_, err = svc.ToggleActive(ctxAs(t, "m1", user.RoleManager), "admin")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.MinCost)
	require.NoError(t, err)
	svc, repo, tokens := newService(map[string]user.User{
		"u1": {ID: "u1", Username: "maria", PasswordHash: string(hash), IsActive: true},
	})
	ctx := ctxAs(t, "u1", user.RoleEmployee)

	err = svc.ChangePassword(ctx, user.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "new-password", ConfirmPassword: "new-password"})
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	err = svc.ChangePassword(ctx, user.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "new-password"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["u1"].PasswordHash), []byte("new-password")))
	assert.Equal(t, []string{"u1"}, tokens.revokedFor)
}

func TestUpdateMe(t *testing.T) {
	key := "users/u1/a.jpg"
	svc, _, _ := newService(map[string]user.User{
		"u1": {ID: "u1", Username: "maria", PhotoURL: &key},
	})
	first, email := " Maria ", "MARIA@Example.com"

	resp, err := svc.UpdateMe(ctxAs(t, "u1", user.RoleUser), user.UpdateMeRequest{FirstName: &first, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "Maria", resp.FirstName)
	assert.Equal(t, "maria@example.com", resp.Email)
	require.NotNil(t, resp.PhotoURL)
	assert.Equal(t, "http://files.local/users/u1/a.jpg", *resp.PhotoURL)
}
