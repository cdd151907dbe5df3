// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-site-forms/internal/config"
	"github.com/MKhiriev/go-site-forms/internal/identity"
	"github.com/MKhiriev/go-site-forms/internal/logger"
	"github.com/MKhiriev/go-site-forms/internal/utils"
	"github.com/MKhiriev/go-site-forms/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleUserInfoURL returns the profile of the signed-in Google account.
const GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var googleScopes = []string{"openid", "email", "profile"}

type identityService struct {
	oauth       *oauth2.Config
	userInfoURL string
	client      *utils.HTTPClient

	sessionKey    string
	sessionIssuer string

	logger *logger.Logger
}

// NewIdentityService builds the Google sign-in flow from cfg. Missing client
// credentials are reported per request as a config AuthError.
func NewIdentityService(cfg *config.StructuredConfig, logger *logger.Logger) IdentityService {
	endpoint := google.Endpoint
	if cfg.OAuth.AuthURL != "" {
		endpoint.AuthURL = cfg.OAuth.AuthURL
	}
	if cfg.OAuth.TokenURL != "" {
		endpoint.TokenURL = cfg.OAuth.TokenURL
	}

	userInfoURL := cfg.OAuth.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = GoogleUserInfoURL
	}

	return &identityService{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuth.ClientID,
			ClientSecret: cfg.OAuth.ClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL(),
			Endpoint:     endpoint,
			Scopes:       googleScopes,
		},
		userInfoURL:   userInfoURL,
		client:        utils.NewHTTPClient(cfg.Server.RequestTimeout),
		sessionKey:    cfg.SessionKey(),
		sessionIssuer: cfg.App.TokenIssuer,
		logger:        logger,
	}
}

func (s *identityService) configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != ""
}

// AuthCodeURL returns the Google consent URL carrying state as JSON.
func (s *identityService) AuthCodeURL(_ context.Context, state models.OAuthState) (string, error) {
	if !s.configured() {
		return "", identity.NewAuthError(identity.CategoryConfig, "")
	}

	encoded, err := identity.EncodeState(state)
	if err != nil {
		return "", fmt.Errorf("error encoding oauth state: %w", err)
	}

	return s.oauth.AuthCodeURL(encoded, oauth2.AccessTypeOnline), nil
}

// Exchange trades code for a token and reads the profile it grants.
func (s *identityService) Exchange(ctx context.Context, code string) (models.GoogleUser, error) {
	log := logger.FromContext(ctx)

	if !s.configured() {
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryConfig, "")
	}
	if strings.TrimSpace(code) == "" {
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryNoCode, "")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.client.GetClient())
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Msg("oauth code exchange failed")
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryTokenExchange, retrieveErrorDetail(err))
	}

	var user models.GoogleUser
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token.AccessToken).
		SetResult(&user).
		Get(s.userInfoURL)
	if err != nil {
		log.Err(err).Msg("user info request failed")
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryTokenExchange, "")
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Msg("user info request rejected")
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryTokenExchange, resp.Status())
	}
	if strings.TrimSpace(user.Email) == "" {
		return models.GoogleUser{}, identity.NewAuthError(identity.CategoryTokenExchange, "profile has no email")
	}

	log.Info().Str("email", user.Email).Msg("visitor signed in")
	return user, nil
}

func (s *identityService) IssueSession(_ context.Context, user models.GoogleUser) (string, error) {
	token, err := utils.GenerateSessionToken(s.sessionIssuer, user, identity.CookieMaxAge, s.sessionKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (s *identityService) ParseSession(_ context.Context, token string) (models.GoogleUser, error) {
	if token == "" {
		return models.GoogleUser{}, ErrSessionInvalid
	}
	user, err := utils.ParseSessionToken(token, s.sessionKey, s.sessionIssuer)
	if err != nil {
		return models.GoogleUser{}, fmt.Errorf("%w: %w", ErrSessionInvalid, err)
	}
	return user, nil
}

// retrieveErrorDetail extracts the provider description of a failed exchange.
func retrieveErrorDetail(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if !errors.As(err, &retrieveErr) {
		return ""
	}
	if retrieveErr.ErrorDescription != "" {
		return retrieveErr.ErrorDescription
	}
	return retrieveErr.ErrorCode
}
