package banking

import "context"

// Result carries the outcome of a non-blocking call. Exactly one of
// Value and Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// runAsync runs fn on its own goroutine and delivers its outcome on a
// buffered channel, so an abandoned receiver never leaks the sender.
func runAsync[T any](fn func() (T, error)) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		v, err := fn()
		ch <- Result[T]{Value: v, Err: err}
	}()
	return ch
}

// AuthenticateAsync is the non-blocking form of Authenticate. Like every
// async variant it defers to the execution strategy fixed at
// construction, so classification and decoding match the blocking
// surface exactly.
func (c *Client) AuthenticateAsync(ctx context.Context) <-chan error {
	ch := make(chan error, 1)
	go func() {
		ch <- c.Authenticate(ctx)
	}()
	return ch
}

// GetIdentityAsync is the non-blocking form of GetIdentity.
func (c *Client) GetIdentityAsync(ctx context.Context) <-chan Result[Identity] {
	return runAsync(func() (Identity, error) {
		return c.GetIdentity(ctx)
	})
}

// GetAccountsAsync is the non-blocking form of GetAccounts.
func (c *Client) GetAccountsAsync(ctx context.Context) <-chan Result[[]Account] {
	return runAsync(func() ([]Account, error) {
		return c.GetAccounts(ctx)
	})
}

// GetAccountAsync is the non-blocking form of GetAccount.
func (c *Client) GetAccountAsync(ctx context.Context, accountID string) <-chan Result[*Account] {
	return runAsync(func() (*Account, error) {
		return c.GetAccount(ctx, accountID)
	})
}

// GetBalancesAsync is the non-blocking form of GetBalances.
func (c *Client) GetBalancesAsync(ctx context.Context, accountID string) <-chan Result[Balances] {
	return runAsync(func() (Balances, error) {
		return c.GetBalances(ctx, accountID)
	})
}

// GetTransactionsAsync is the non-blocking form of GetTransactions.
func (c *Client) GetTransactionsAsync(ctx context.Context, accountID string) <-chan Result[[]Transaction] {
	return runAsync(func() ([]Transaction, error) {
		return c.GetTransactions(ctx, accountID)
	})
}
