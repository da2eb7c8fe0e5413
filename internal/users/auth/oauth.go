// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/yandex"
)

// yandexUserInfoURL returns the profile of the token owner.
const yandexUserInfoURL = "https://login.yandex.ru/info?format=json"

// Provider is an OAuth 2.0 identity provider.
type Provider interface {
	// Name is the provider key stored on linked accounts.
	Name() string

	// AuthCodeURL is where the browser is sent to sign in.
	AuthCodeURL(state string) string

	// Identify exchanges the authorization code and fetches the user's profile.
	Identify(ctx context.Context, code string) (ExternalIdentity, error)
}

// # Yandex

// YandexProvider signs users in with Yandex ID.
type YandexProvider struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewYandexProvider configures the Yandex OAuth client.
func NewYandexProvider(clientID, clientSecret, redirectURL string) *YandexProvider {
	return &YandexProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     yandex.Endpoint,
			Scopes:       []string{"login:info", "login:email"},
		},
		userInfoURL: yandexUserInfoURL,
	}
}

func (provider *YandexProvider) Name() string { return ProviderYandex }

func (provider *YandexProvider) AuthCodeURL(state string) string {
	return provider.config.AuthCodeURL(state)
}

// yandexProfile is the subset of the Yandex ID profile we keep.
type yandexProfile struct {
	ID           string   `json:"id"`
	Login        string   `json:"login"`
	DefaultEmail string   `json:"default_email"`
	Emails       []string `json:"emails"`
	RealName     string   `json:"real_name"`
	DisplayName  string   `json:"display_name"`
}

/*
Identify exchanges the code for a token and reads the account profile.

Returns:
  - ExternalIdentity: Provider UID, login and primary email
  - error: Exchange or profile request failures
*/
func (provider *YandexProvider) Identify(ctx context.Context, code string) (ExternalIdentity, error) {
	token, err := provider.config.Exchange(ctx, code)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("auth_oauth_exchange_failed: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, provider.userInfoURL, nil)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("auth_oauth_userinfo_failed: %w", err)
	}
	request.Header.Set("Authorization", "OAuth "+token.AccessToken)

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return ExternalIdentity{}, fmt.Errorf("auth_oauth_userinfo_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ExternalIdentity{}, fmt.Errorf("auth_oauth_userinfo_failed: status %d", response.StatusCode)
	}

	var profile yandexProfile
	if err := json.NewDecoder(response.Body).Decode(&profile); err != nil {
		return ExternalIdentity{}, fmt.Errorf("auth_oauth_userinfo_decode_failed: %w", err)
	}

	email := profile.DefaultEmail
	if email == "" && len(profile.Emails) > 0 {
		email = profile.Emails[0]
	}

	return ExternalIdentity{
		Provider: ProviderYandex,
		UID:      profile.ID,
		Login:    profile.Login,
		Email:    email,
		Extra: map[string]any{
			"login":        profile.Login,
			"real_name":    profile.RealName,
			"display_name": profile.DisplayName,
		},
	}, nil
}
