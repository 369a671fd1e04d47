// Package sfauth turns a connected-app refresh token into a logged-in browser
// entry point: it refreshes an access token over OAuth 2.0 and builds the
// frontdoor URL that opens Lightning without the login form.
package sfauth

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/kuitang/pmm-pages/internal/errs"
	"github.com/kuitang/pmm-pages/internal/urlutil"
)

const tokenPath = "/services/oauth2/token"

// Credentials identify a connected app and a user's refresh token.
type Credentials struct {
	LoginURL     string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Session is an authenticated org session.
type Session struct {
	AccessToken string
	// InstanceURL is the org origin returned by the token endpoint.
	InstanceURL string
}

// Client refreshes access tokens against a Salesforce login host.
type Client struct {
	oauthConfig  *oauth2.Config
	refreshToken string
}

// NewClient returns a client for creds.
func NewClient(creds Credentials) (*Client, error) {
	if creds.ClientID == "" || creds.RefreshToken == "" {
		return nil, errs.New(errs.InvalidArgument, "sfauth: client id and refresh token are required")
	}
	loginURL := strings.TrimRight(strings.TrimSpace(creds.LoginURL), "/")
	if loginURL == "" {
		return nil, errs.New(errs.InvalidArgument, "sfauth: login URL is required")
	}
	return &Client{
		oauthConfig: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  loginURL + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		refreshToken: creds.RefreshToken,
	}, nil
}

// Login exchanges the refresh token for an access token.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	src := c.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, errs.Wrap(errs.Unavailable, "sfauth: refresh token exchange failed", err)
	}

	instanceURL, _ := token.Extra("instance_url").(string)
	if instanceURL == "" {
		return nil, errs.New(errs.Unavailable, "sfauth: token response is missing instance_url")
	}
	return &Session{
		AccessToken: token.AccessToken,
		InstanceURL: strings.TrimRight(instanceURL, "/"),
	}, nil
}

// FrontdoorURL returns a URL that logs the browser in and lands on retPath.
// baseURL overrides the session instance when non-empty (e.g. a Lightning domain).
func (s *Session) FrontdoorURL(baseURL, retPath string) string {
	if baseURL == "" {
		baseURL = s.InstanceURL
	}
	q := url.Values{}
	q.Set("sid", s.AccessToken)
	if retPath != "" {
		q.Set("retURL", retPath)
	}
	return fmt.Sprintf("%s?%s", urlutil.BuildAbsolute(baseURL, "/secur/frontdoor.jsp"), q.Encode())
}
