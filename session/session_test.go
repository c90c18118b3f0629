package session

import (
	"os"
	"path/filepath"
	"testing"

	"civicsync-client/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Credential(t *testing.T) {
	var nilSess *Session
	assert.Equal(t, "", nilSess.Credential())
	assert.False(t, nilSess.Authenticated())
	assert.False(t, nilSess.IsAdmin())

	empty := &Session{}
	assert.False(t, empty.Authenticated())

	sess := FromAuth(&models.AuthResponse{Token: "tok", Username: "admin", Role: models.RoleAdmin})
	assert.Equal(t, "tok", sess.Credential())
	assert.True(t, sess.Authenticated())
	assert.True(t, sess.IsAdmin())

	citizen := FromAuth(&models.AuthResponse{Token: "tok", Username: "jo", Role: models.RoleCitizen})
	assert.False(t, citizen.IsAdmin())

	assert.False(t, FromAuth(nil).Authenticated())
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	store := NewStore(path)
	assert.Equal(t, path, store.Path())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, &Session{}, sess)

	want := &Session{Token: "abc.def.ghi", Username: "jo", Role: models.RoleCitizen}
	require.NoError(t, store.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, store.Clear())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NoError(t, store.Clear())
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0600))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
