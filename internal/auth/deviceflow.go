package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// Notifier surfaces the verification URL and user code to the operator while
// the device flow waits for browser approval.
type Notifier func(verificationURL, userCode string)

// KeycloakDeviceFlow implements DeviceFlow against a Provena Keycloak realm
// using the OAuth 2.0 device authorization grant.
type KeycloakDeviceFlow struct {
	config *oauth2.Config
	notify Notifier
}

// NewKeycloakDeviceFlow builds a device flow for the given deployment.
// The realm endpoints follow the standard Provena layout:
// https://auth.<domain>/realms/<realm>/protocol/openid-connect/...
func NewKeycloakDeviceFlow(domain, realm, clientID string, notify Notifier) *KeycloakDeviceFlow {
	base := fmt.Sprintf("https://auth.%s/realms/%s/protocol/openid-connect", domain, realm)
	return &KeycloakDeviceFlow{
		config: &oauth2.Config{
			ClientID: clientID,
			Endpoint: oauth2.Endpoint{
				AuthURL:       base + "/auth",
				TokenURL:      base + "/token",
				DeviceAuthURL: base + "/auth/device",
			},
			Scopes: []string{"openid"},
		},
		notify: notify,
	}
}

// Authorize requests a device code, surfaces the verification URL, then polls
// the token endpoint until the user completes the browser login or ctx ends.
func (f *KeycloakDeviceFlow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	deviceAuth, err := f.config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization request failed: %w", err)
	}

	if f.notify != nil {
		url := deviceAuth.VerificationURIComplete
		if url == "" {
			url = deviceAuth.VerificationURI
		}
		f.notify(url, deviceAuth.UserCode)
	}

	token, err := f.config.DeviceAccessToken(ctx, deviceAuth)
	if err != nil {
		return nil, fmt.Errorf("device flow did not complete: %w", err)
	}

	return token, nil
}
