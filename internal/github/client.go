package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// userAgent identifies nextver in GitHub API audit logs.
const userAgent = "nextver"

// ClientConfig holds the configuration for creating a GitHub API client.
// Empty fields fall back to the environment.
type ClientConfig struct {
	// Token is a personal access or workflow token. Env: GITHUB_TOKEN.
	Token string

	// AppID is the GitHub App ID. Env: GH_APP_ID.
	AppID int64

	// AppKeyPath is the path to the App's private key PEM file. Env: GH_APP_PRIVATE_KEY.
	AppKeyPath string

	// BaseURL is the API root of a GitHub Enterprise server. Env: GITHUB_API_URL.
	BaseURL string

	// Owner selects the App installation.
	Owner string
}

// AuthMethod names how a client authenticates.
type AuthMethod string

const (
	AuthToken AuthMethod = "token"
	AuthApp   AuthMethod = "github-app"
)

// credentials is a ClientConfig with the environment applied.
type credentials struct {
	method  AuthMethod
	token   string
	appID   int64
	keyPath string
	baseURL string
}

// resolve applies the environment fallbacks. A token wins over App credentials.
func (cfg ClientConfig) resolve() (credentials, error) {
	c := credentials{baseURL: resolveString(cfg.BaseURL, "GITHUB_API_URL")}

	if c.token = resolveString(cfg.Token, "GITHUB_TOKEN"); c.token != "" {
		c.method = AuthToken
		return c, nil
	}

	c.appID = cfg.AppID
	if c.appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return credentials{}, fmt.Errorf("invalid GH_APP_ID %q: %w", s, err)
			}
			c.appID = v
		}
	}
	c.keyPath = resolveString(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY")
	if c.appID != 0 && c.keyPath != "" {
		c.method = AuthApp
		return c, nil
	}

	return credentials{}, errors.New("no GitHub authentication provided: set GITHUB_TOKEN, use --token, or provide --github-app-id and --github-app-key-path")
}

// ResolveAuthMethod reports which credentials NewClient would use for cfg.
func ResolveAuthMethod(cfg ClientConfig) (AuthMethod, error) {
	c, err := cfg.resolve()
	return c.method, err
}

// NewClient creates an authenticated GitHub API client.
func NewClient(ctx context.Context, cfg ClientConfig) (*gh.Client, error) {
	c, err := cfg.resolve()
	if err != nil {
		return nil, err
	}
	if c.method == AuthToken {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
		return newAPIClient(oauth2.NewClient(ctx, ts), c.baseURL)
	}
	return newAppClient(ctx, c, cfg.Owner)
}

// newAppClient discovers the installation for owner with an App-level
// client, then returns a client authenticated as that installation.
func newAppClient(ctx context.Context, c credentials, owner string) (*gh.Client, error) {
	appTransport, err := ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, c.appID, c.keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if c.baseURL != "" {
		appTransport.BaseURL = c.baseURL
	}
	appClient, err := newAPIClient(&http.Client{Transport: appTransport}, c.baseURL)
	if err != nil {
		return nil, err
	}

	installationID, err := findInstallation(ctx, appClient, owner)
	if err != nil {
		return nil, err
	}

	installTransport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, c.appID, installationID, c.keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating installation transport: %w", err)
	}
	if c.baseURL != "" {
		installTransport.BaseURL = c.baseURL
	}
	return newAPIClient(&http.Client{Transport: installTransport}, c.baseURL)
}

func newAPIClient(httpClient *http.Client, baseURL string) (*gh.Client, error) {
	client := gh.NewClient(httpClient)
	client.UserAgent = userAgent
	if baseURL == "" {
		return client, nil
	}
	client, err := client.WithEnterpriseURLs(baseURL, baseURL)
	if err != nil {
		return nil, fmt.Errorf("setting enterprise URL %q: %w", baseURL, err)
	}
	return client, nil
}

// findInstallation finds the GitHub App installation for the given owner.
func findInstallation(ctx context.Context, client *gh.Client, owner string) (int64, error) {
	opts := &gh.ListOptions{PerPage: 100}

	for {
		installations, resp, err := client.Apps.ListInstallations(ctx, opts)
		if err != nil {
			return 0, fmt.Errorf("listing GitHub App installations: %w", err)
		}

		for _, inst := range installations {
			if inst.GetAccount().GetLogin() == owner {
				return inst.GetID(), nil
			}
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return 0, fmt.Errorf("no GitHub App installation found for owner %q", owner)
}

// IsNotFoundError reports whether err is an HTTP 404 from the GitHub API.
func IsNotFoundError(err error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

func resolveString(flag, envKey string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(envKey)
}
