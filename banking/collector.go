package banking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultCollectConcurrency limits how many accounts are fetched at once
// when the client runs in ModeConcurrent.
const DefaultCollectConcurrency = 4

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectConcurrency sets the per-account fan-out limit. It only
// applies when the client runs in ModeConcurrent.
func WithCollectConcurrency(n int) CollectorOption {
	return func(c *Collector) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// Collector composes client calls into one aggregated snapshot: identity
// once, all accounts, then balances and transactions per account. A
// failed sub-fetch marks that account instead of failing the whole run.
type Collector struct {
	client      *Client
	logger      zerolog.Logger
	concurrency int
}

// NewCollector creates a collector around an authenticated client.
func NewCollector(client *Client, logger zerolog.Logger, opts ...CollectorOption) *Collector {
	c := &Collector{
		client:      client,
		logger:      logger,
		concurrency: DefaultCollectConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectAll fetches identity, accounts, and per-account balances and
// transactions into one nested result. Identity and account list
// failures are fatal; per-account failures degrade to an error marker on
// that account's entry.
func (c *Collector) CollectAll(ctx context.Context) (*AggregatedResult, error) {
	if !c.client.Authenticated() {
		return nil, errNotAuthenticated()
	}

	identity, err := c.client.GetIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	accounts, err := c.client.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}

	result := &AggregatedResult{
		RunID:       uuid.NewString(),
		CollectedAt: time.Now().UTC(),
		Identity:    identity,
		Accounts:    make([]AccountData, len(accounts)),
	}

	if c.client.Mode() == ModeConcurrent {
		c.collectConcurrent(ctx, accounts, result.Accounts)
	} else {
		c.collectSequential(ctx, accounts, result.Accounts)
	}

	c.logger.Debug().
		Str("run_id", result.RunID).
		Int("accounts", len(result.Accounts)).
		Msg("Collection finished")

	return result, nil
}

// CollectAllAsync is the non-blocking form of CollectAll.
func (c *Collector) CollectAllAsync(ctx context.Context) <-chan Result[*AggregatedResult] {
	return runAsync(func() (*AggregatedResult, error) {
		return c.CollectAll(ctx)
	})
}

func (c *Collector) collectSequential(ctx context.Context, accounts []Account, out []AccountData) {
	for i, account := range accounts {
		out[i] = c.collectAccount(ctx, account)
	}
}

func (c *Collector) collectConcurrent(ctx context.Context, accounts []Account, out []AccountData) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, account := range accounts {
		i, account := i, account
		g.Go(func() error {
			out[i] = c.collectAccount(ctx, account)
			return nil // per-account failures never cancel the group
		})
	}

	g.Wait()
}

// collectAccount fetches balances and transactions for one account. In
// ModeConcurrent the two fetches run on an inner group; they have no
// ordering dependency.
func (c *Collector) collectAccount(ctx context.Context, account Account) AccountData {
	data := AccountData{Account: account}

	var (
		balances     Balances
		transactions []Transaction
	)

	if c.client.Mode() == ModeConcurrent {
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			balances, err = c.client.GetBalances(ctx, account.ID)
			return err
		})
		g.Go(func() error {
			var err error
			transactions, err = c.client.GetTransactions(ctx, account.ID)
			return err
		})
		if err := g.Wait(); err != nil {
			return c.markFailed(data, err)
		}
	} else {
		var err error
		if balances, err = c.client.GetBalances(ctx, account.ID); err != nil {
			return c.markFailed(data, err)
		}
		if transactions, err = c.client.GetTransactions(ctx, account.ID); err != nil {
			return c.markFailed(data, err)
		}
	}

	data.Balances = balances
	data.Transactions = transactions
	return data
}

func (c *Collector) markFailed(data AccountData, err error) AccountData {
	c.logger.Warn().
		Err(err).
		Str("account_id", data.Account.ID).
		Msg("Failed to collect account data, continuing")

	data.Error = &CollectError{
		Kind:    ErrorKind(err),
		Message: err.Error(),
	}
	return data
}
