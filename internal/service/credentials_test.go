//go:build unit

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lichwu/iapush/internal/util/iaperror"

	"github.com/stretchr/testify/require"
)

const (
	webDescriptor = `{"web":{"client_id":"id-1.apps.googleusercontent.com","client_secret":"s3cret","token_uri":"https://accounts.google.com/o/oauth2/token"}}`
	bootstrapJSON = `{"access_token":"ya29.initial","refresh_token":"1//refresh","scope":"https://www.googleapis.com/auth/androidpublisher","token_type":"Bearer"}`
)

func TestNewClientCredentialsWebDescriptor(t *testing.T) {
	creds, err := NewClientCredentials([]byte(webDescriptor), []byte(bootstrapJSON))
	require.NoError(t, err)
	require.Equal(t, "id-1.apps.googleusercontent.com", creds.ClientID)
	require.Equal(t, "s3cret", creds.ClientSecret)
	require.Equal(t, "1//refresh", creds.RefreshToken)
}

func TestNewClientCredentialsInstalledDescriptor(t *testing.T) {
	descriptor := `{"installed":{"client_id":"id-2","client_secret":"s2"}}`
	creds, err := NewClientCredentials([]byte(descriptor), []byte(bootstrapJSON))
	require.NoError(t, err)
	require.Equal(t, "id-2", creds.ClientID)
}

func TestNewClientCredentialsMissingFields(t *testing.T) {
	cases := []struct {
		name       string
		descriptor string
		bootstrap  string
	}{
		{"no client entry", `{}`, bootstrapJSON},
		{"missing client_id", `{"web":{"client_secret":"s"}}`, bootstrapJSON},
		{"missing client_secret", `{"web":{"client_id":"id"}}`, bootstrapJSON},
		{"missing refresh_token", webDescriptor, `{"access_token":"ya29.x"}`},
		{"descriptor not json", `<xml/>`, bootstrapJSON},
		{"bootstrap not json", webDescriptor, `nope`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClientCredentials([]byte(tc.descriptor), []byte(tc.bootstrap))
			require.Error(t, err)
			var configErr *iaperror.ConfigError
			require.ErrorAs(t, err, &configErr)
		})
	}
}

func TestLoadClientCredentialsFromFiles(t *testing.T) {
	dir := t.TempDir()
	clientFile := filepath.Join(dir, "client.json")
	bootstrapFile := filepath.Join(dir, "token.json")
	require.NoError(t, os.WriteFile(clientFile, []byte(webDescriptor), 0o600))
	require.NoError(t, os.WriteFile(bootstrapFile, []byte(bootstrapJSON), 0o600))

	creds, err := LoadClientCredentials(clientFile, bootstrapFile)
	require.NoError(t, err)
	require.Equal(t, "1//refresh", creds.RefreshToken)
}

func TestLoadClientCredentialsMissingFile(t *testing.T) {
	_, err := LoadClientCredentials("/nonexistent/client.json", "/nonexistent/token.json")
	require.Error(t, err)
}
