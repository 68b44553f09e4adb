package auth_test

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hal9000y/gmail-inbox-mcp/internal/auth"
)

func TestStoreLoad(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		expected    *auth.Credential
		expectedErr error
		anyErr      bool
	}{
		{
			name: "credential with scopes",
			content: `{"access_token":"a-1","token_type":"Bearer","refresh_token":"r-1",` +
				`"expiry":"2030-01-02T03:04:05Z","scopes":["s1","s2"]}`,
			expected: &auth.Credential{
				AccessToken:  "a-1",
				TokenType:    "Bearer",
				RefreshToken: "r-1",
				Expiry:       time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
				Scopes:       []string{"s1", "s2"},
			},
		},
		{
			name:    "plain oauth2 token without scopes",
			content: `{"access_token":"a-2","token_type":"Bearer","refresh_token":"r-2","expiry":"2030-01-02T03:04:05Z"}`,
			expected: &auth.Credential{
				AccessToken:  "a-2",
				TokenType:    "Bearer",
				RefreshToken: "r-2",
				Expiry:       time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC),
			},
		},
		{
			name:        "empty object",
			content:     `{}`,
			expectedErr: auth.ErrTokenNotSet,
		},
		{
			name:    "corrupt file",
			content: `{"access_token":`,
			anyErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			cred, err := auth.NewStore(path).Load()
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			if tc.anyErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, tc.expected.Expiry.Equal(cred.Expiry))
			cred.Expiry = tc.expected.Expiry
			assert.Equal(t, tc.expected, cred)
		})
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	_, err := auth.NewStore(filepath.Join(t.TempDir(), "missing.json")).Load()
	require.ErrorIs(t, err, auth.ErrTokenNotSet)
}

func TestStoreSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "token.json")
	store := auth.NewStore(path)

	cred := &auth.Credential{AccessToken: "a-1", RefreshToken: "r-1", Scopes: auth.Scopes}
	require.NoError(t, store.Save(cred))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cred, loaded)
}

func TestStoreSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store := auth.NewStore(filepath.Join(dir, "token.json"))
	require.NoError(t, store.Save(&auth.Credential{AccessToken: "a-0", RefreshToken: "r-1"}))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if err := store.Save(&auth.Credential{AccessToken: "a-" + strconv.Itoa(i), RefreshToken: "r-1"}); err != nil {
				t.Errorf("store.Save failed: %v", err)
				return
			}
		}
	}()

	for range 2000 {
		cred, err := store.Load()
		if !assert.NoError(t, err) {
			break
		}
		assert.Equal(t, "r-1", cred.RefreshToken)
	}
	close(done)
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "token.json", entries[0].Name())
}

func TestCredentialValid(t *testing.T) {
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	cases := []struct {
		name        string
		cred        auth.Credential
		valid       bool
		refreshable bool
	}{
		{
			name:  "unexpired with scopes",
			cred:  auth.Credential{AccessToken: "a", Expiry: future, Scopes: auth.Scopes},
			valid: true,
		},
		{
			name:  "unexpired without recorded scopes",
			cred:  auth.Credential{AccessToken: "a", Expiry: future},
			valid: true,
		},
		{
			name: "unexpired missing compose scope",
			cred: auth.Credential{AccessToken: "a", RefreshToken: "r", Expiry: future, Scopes: auth.Scopes[:1]},
		},
		{
			name:        "expired with refresh token",
			cred:        auth.Credential{AccessToken: "a", RefreshToken: "r", Expiry: past, Scopes: auth.Scopes},
			refreshable: true,
		},
		{
			name: "expired without refresh token",
			cred: auth.Credential{AccessToken: "a", Expiry: past},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.cred.Valid(auth.Scopes))
			if !tc.valid {
				assert.Equal(t, tc.refreshable, tc.cred.Refreshable(auth.Scopes))
			}
		})
	}
}
