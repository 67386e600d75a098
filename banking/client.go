package banking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
)

// Client is the public surface of the banking API. It owns its session
// state exclusively; one Authenticate call moves it from unauthenticated
// to authenticated, and every accessor requires that state. Callers must
// Close the client to release the underlying transport resources.
type Client struct {
	session   *session
	exec      executor
	logger    zerolog.Logger
	closeOnce sync.Once
}

// NewClient creates a new banking API client. The base URL, username and
// password are required; the execution mode and transport settings come
// from options.
func NewClient(baseURL, username, password string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("banking URL is required")
	}
	if username == "" {
		return nil, fmt.Errorf("banking username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("banking password is required")
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}

	sess := newSession(baseURL, username, password, options.mode)

	var exec executor
	switch options.mode {
	case ModeConcurrent:
		exec = newConcurrentExecutor(httpClient, sess.baseURL, options.concurrency)
	default:
		exec = &blockingExecutor{httpClient: httpClient, baseURL: sess.baseURL}
	}

	return &Client{
		session: sess,
		exec:    exec,
		logger:  logger,
	}, nil
}

// Close releases the transport resources held by the client. It is safe
// to call more than once and must run on every exit path.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.exec.Close()
	})
}

// Mode returns the execution mode fixed at construction.
func (c *Client) Mode() Mode {
	return c.session.mode
}

// Authenticated reports whether a token is currently held.
func (c *Client) Authenticated() bool {
	return c.session.authenticated()
}

// Authenticate exchanges the configured credentials for a bearer token
// and stores it in the session. It may be called again after a token
// expires. Rejected credentials surface as an AuthenticationError and
// leave the client unauthenticated.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("username", c.session.username)
	form.Set("password", c.session.password)
	form.Set("scope", "stet")

	raw, err := c.exec.Do(ctx, &apiRequest{
		method: http.MethodPost,
		path:   "/oauth/token",
		form:   form,
	})
	if err != nil {
		return err
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return &DecodingError{Err: err}
	}
	if payload.AccessToken == "" {
		return &DecodingError{Err: errors.New("token response missing access_token")}
	}

	c.session.setToken(payload.AccessToken, payload.TokenType)
	c.logger.Debug().Str("token_type", payload.TokenType).Msg("Authenticated with banking API")
	return nil
}

// GetIdentity retrieves the identity of the authenticated user.
func (c *Client) GetIdentity(ctx context.Context) (Identity, error) {
	var identity Identity
	if err := c.get(ctx, "/stet/identity", &identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// GetAccounts retrieves all accounts, in the order the service returns
// them.
func (c *Client) GetAccounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.get(ctx, "/stet/account", &accounts); err != nil {
		return nil, err
	}
	c.logger.Debug().Int("count", len(accounts)).Msg("Retrieved accounts")
	return accounts, nil
}

// GetAccount retrieves a single account by ID. An unknown ID surfaces
// the service's 404 as an APIError.
func (c *Client) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	var account Account
	if err := c.get(ctx, "/stet/account/"+url.PathEscape(accountID), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetBalances retrieves the balances of an account. The service may
// return a single object or an array; both decode into Balances.
func (c *Client) GetBalances(ctx context.Context, accountID string) (Balances, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	var balances Balances
	if err := c.get(ctx, "/stet/account/"+url.PathEscape(accountID)+"/balance", &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// GetTransactions retrieves the transactions of an account, in service
// order.
func (c *Client) GetTransactions(ctx context.Context, accountID string) ([]Transaction, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	var transactions []Transaction
	if err := c.get(ctx, "/stet/account/"+url.PathEscape(accountID)+"/transaction", &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// get performs an authenticated GET and decodes the response. The token
// precondition is checked before any transport work happens.
func (c *Client) get(ctx context.Context, path string, v any) error {
	auth, ok := c.session.authorization()
	if !ok {
		return errNotAuthenticated()
	}

	raw, err := c.exec.Do(ctx, &apiRequest{
		method:        http.MethodGet,
		path:          path,
		authorization: auth,
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodingError{Err: err}
	}
	return nil
}
