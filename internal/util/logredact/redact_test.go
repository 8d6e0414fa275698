//go:build unit

package logredact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedactMap(t *testing.T) {
	in := map[string]any{
		"grant_type":    "refresh_token",
		"client_id":     "abc.apps.googleusercontent.com",
		"client_secret": "s3cr3t",
		"refresh_token": "1//refresh",
		"nested": map[string]any{
			"access_token": "ya29.token",
			"scope":        "androidpublisher",
		},
	}

	out := RedactMap(in)
	require.Equal(t, "***", out["client_secret"])
	require.Equal(t, "***", out["refresh_token"])
	require.Equal(t, "refresh_token", out["grant_type"])

	nested, ok := out["nested"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "***", nested["access_token"])
	require.Equal(t, "androidpublisher", nested["scope"])

	// input untouched
	require.Equal(t, "s3cr3t", in["client_secret"])
}

func TestRedactJSON(t *testing.T) {
	out := RedactJSON([]byte(`{"access_token":"ya29.x","expires_in":3599}`))
	require.Contains(t, out, `"access_token":"***"`)
	require.Contains(t, out, `"expires_in":3599`)

	require.Equal(t, "", RedactJSON(nil))
	require.Equal(t, "<non-json payload redacted>", RedactJSON([]byte("<html>")))
}

func TestRedactURL(t *testing.T) {
	redacted := RedactURL("https://www.googleapis.com/androidpublisher/v3/applications/com.app/purchases/products/p1/tokens/tok?access_token=ya29.secret")
	require.NotContains(t, redacted, "ya29.secret")
	require.Contains(t, redacted, "access_token=%2A%2A%2A")

	// URLs without sensitive params pass through unchanged
	plain := "https://fcm.googleapis.com/v1/projects/demo/messages:send"
	require.Equal(t, plain, RedactURL(plain))
}
