// Package banking provides a client for DSP2/STET-style banking data
// services: token authentication, identity, accounts, balances and
// transactions, plus a collector that aggregates everything into one
// nested snapshot.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the public API surface with a blocking and a non-blocking
//     form of every operation
//   - Executor: two interchangeable execution strategies (blocking and
//     dispatcher-pool) behind one internal contract
//   - Types: typed entities with lossless pass-through of
//     provider-defined fields
//   - Collector: aggregation across accounts with per-account failure
//     isolation
//   - Errors: a closed taxonomy of transport, authentication, API and
//     decoding errors
//
// # Usage
//
// Create a client, authenticate, then either call accessors directly or
// run the collector:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := banking.NewClient(
//		"https://bank.example.com",
//		"username",
//		"password",
//		logger,
//		banking.WithMode(banking.ModeConcurrent),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	if err := client.Authenticate(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	collector := banking.NewCollector(client, logger)
//	result, err := collector.CollectAll(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Execution modes
//
// The mode chosen at construction is purely a concurrency choice:
// ModeBlocking performs each request on the calling goroutine,
// ModeConcurrent dispatches requests to a worker pool. Both strategies
// share one round-trip implementation, so identical inputs always
// produce identical results and error classifications. The *Async
// method variants deliver the same outcomes on a channel regardless of
// the configured mode.
//
// # Error handling
//
// Every operation either returns a decoded value or fails with exactly
// one taxonomy error:
//
//   - *TransportError: connection, DNS or timeout failure (retryable)
//   - *AuthenticationError: missing or rejected token, or 401/403
//     (re-authenticate and retry)
//   - *APIError: any other non-2xx status, body preserved verbatim
//   - *DecodingError: a 2xx body that is not the expected JSON
//
// Classify with errors.As, or use ErrorKind for a stable kind name. The
// client performs no retries; a failed attempt surfaces immediately.
package banking
