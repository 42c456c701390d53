// Package main sends an authorization request to the authorize server and
// reports its verdict. The server never redirects; a redirect answer is
// reported as a failure.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/go-training/oauth-authorize/pkg/endpoint"
	"github.com/go-training/oauth-authorize/pkg/logger"
	"github.com/go-training/oauth-authorize/pkg/oautherr"
)

type options struct {
	server       string
	clientID     string
	redirectURI  string
	responseType string
	scope        string
	pkce         bool
}

// verdict is what the server answered.
type verdict struct {
	Status int
	// Accepted is set when the request passed validation.
	Accepted *endpoint.AuthorizeResponse
	// Error is the code shown on the error page and Description its
	// catalog text.
	Error       string
	Description string
	RequestID   string
}

// authCodeURL builds the /authorize URL for opts with the given state.
func authCodeURL(opts options, state string) string {
	cfg := &oauth2.Config{
		ClientID:    opts.clientID,
		RedirectURL: opts.redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL: strings.TrimSuffix(opts.server, "/") + "/authorize",
		},
	}
	if opts.scope != "" {
		cfg.Scopes = strings.Fields(opts.scope)
	}

	var params []oauth2.AuthCodeOption
	if opts.responseType != "" && opts.responseType != "code" {
		params = append(params, oauth2.SetAuthURLParam("response_type", opts.responseType))
	}
	if opts.pkce {
		params = append(params, oauth2.S256ChallengeOption(oauth2.GenerateVerifier()))
	}
	return cfg.AuthCodeURL(state, params...)
}

// send issues the authorization request and decodes the server's answer.
func send(ctx context.Context, httpClient *http.Client, opts options) (*verdict, error) {
	state := uuid.NewString()
	target := authCodeURL(opts, state)
	slog.Debug("Sending authorization request", "url", target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}

	client := *httpClient
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	v := &verdict{
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(endpoint.HeaderRequestID),
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var accepted endpoint.AuthorizeResponse
		if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		if accepted.State != state {
			return nil, errors.New("state mismatch in response")
		}
		v.Accepted = &accepted
	case http.StatusBadRequest, http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		oerr, err := errorFromPage(string(body))
		if err != nil {
			return nil, err
		}
		v.Error = oerr.Code
		v.Description = oerr.Description
	default:
		if loc := resp.Header.Get("Location"); loc != "" {
			return nil, fmt.Errorf("unexpected redirect to %q", loc)
		}
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return v, nil
}

// errorFromPage decodes the error code shown on the server's error page
// into its catalog entry.
func errorFromPage(page string) (*oautherr.Error, error) {
	code := errorCodeFromPage(page)
	if code == "" {
		return nil, errors.New("no error code on error page")
	}
	oerr, ok := oautherr.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("unknown error code %q", code)
	}
	return oerr, nil
}

// errorCodeFromPage pulls the error code out of the server's error page.
func errorCodeFromPage(page string) string {
	_, rest, ok := strings.Cut(page, "<code>")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(rest, "</code>")
	return code
}

func main() {
	logger.New()

	var opts options
	flag.StringVar(&opts.server, "server", "http://localhost:8095", "Authorize server base URL")
	flag.StringVar(&opts.clientID, "client-id", "client1", "OAuth client ID")
	flag.StringVar(&opts.redirectURI, "redirect-uri", "", "Redirect URI (omit to use the client's only registered URI)")
	flag.StringVar(&opts.responseType, "response-type", "code", "Space separated response types")
	flag.StringVar(&opts.scope, "scope", "read", "Space separated scopes")
	flag.BoolVar(&opts.pkce, "pkce", true, "Send an S256 PKCE code challenge")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	v, err := send(ctx, http.DefaultClient, opts)
	if err != nil {
		slog.Error("Authorization request failed", "error", err)
		os.Exit(1)
	}

	switch {
	case v.Accepted != nil:
		slog.Info("Authorization request accepted",
			"client_id", v.Accepted.ClientID,
			"redirect_uri", v.Accepted.RedirectURI,
			"response_types", v.Accepted.ResponseTypes,
			"scopes", v.Accepted.Scopes,
		)
	default:
		slog.Warn("Authorization request rejected",
			"status", v.Status,
			"error", v.Error,
			"error_description", v.Description,
			"request_id", v.RequestID,
		)
		os.Exit(1)
	}
}
