package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/util/iaperror"
)

// ClientCredentials is the immutable credential triple derived from the OAuth
// client descriptor and the bootstrap token-exchange response. It is built
// once at construction and never mutated afterwards.
type ClientCredentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// clientDescriptor mirrors the JSON downloaded from the Google console when
// an OAuth client is created. Web and installed clients differ only in the
// top-level key.
type clientDescriptor struct {
	Web       *clientDescriptorEntry `json:"web"`
	Installed *clientDescriptorEntry `json:"installed"`
}

type clientDescriptorEntry struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	TokenURI     string `json:"token_uri"`
}

type bootstrapTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	TokenType    string `json:"token_type"`
}

// NewClientCredentials parses the raw descriptor and bootstrap token JSON.
// Every missing required field is a ConfigError; per-call recovery is not
// possible, so callers should treat failure as fatal.
func NewClientCredentials(descriptorJSON, bootstrapJSON []byte) (ClientCredentials, error) {
	var descriptor clientDescriptor
	if err := json.Unmarshal(descriptorJSON, &descriptor); err != nil {
		return ClientCredentials{}, iaperror.NewConfigError("client descriptor", fmt.Sprintf("not valid JSON: %v", err))
	}

	entry := descriptor.Web
	if entry == nil {
		entry = descriptor.Installed
	}
	if entry == nil {
		return ClientCredentials{}, iaperror.NewConfigError("client descriptor", `neither "web" nor "installed" block present`)
	}
	if entry.ClientID == "" {
		return ClientCredentials{}, iaperror.NewConfigError("client_id", "missing in client descriptor")
	}
	if entry.ClientSecret == "" {
		return ClientCredentials{}, iaperror.NewConfigError("client_secret", "missing in client descriptor")
	}

	var bootstrap bootstrapTokenResponse
	if err := json.Unmarshal(bootstrapJSON, &bootstrap); err != nil {
		return ClientCredentials{}, iaperror.NewConfigError("bootstrap token", fmt.Sprintf("not valid JSON: %v", err))
	}
	if bootstrap.RefreshToken == "" {
		return ClientCredentials{}, iaperror.NewConfigError("refresh_token", "missing in bootstrap token response")
	}

	return ClientCredentials{
		ClientID:     entry.ClientID,
		ClientSecret: entry.ClientSecret,
		RefreshToken: bootstrap.RefreshToken,
	}, nil
}

// LoadClientCredentials reads and parses the credential files named in config.
func LoadClientCredentials(clientFile, bootstrapFile string) (ClientCredentials, error) {
	descriptorJSON, err := os.ReadFile(clientFile)
	if err != nil {
		return ClientCredentials{}, iaperror.NewConfigError("google.client_file", fmt.Sprintf("read %s: %v", clientFile, err))
	}
	bootstrapJSON, err := os.ReadFile(bootstrapFile)
	if err != nil {
		return ClientCredentials{}, iaperror.NewConfigError("google.bootstrap_token_file", fmt.Sprintf("read %s: %v", bootstrapFile, err))
	}
	return NewClientCredentials(descriptorJSON, bootstrapJSON)
}

// ProvideClientCredentials is the wire provider for ClientCredentials.
func ProvideClientCredentials(cfg *config.Config) (ClientCredentials, error) {
	return LoadClientCredentials(cfg.Google.ClientFile, cfg.Google.BootstrapTokenFile)
}
