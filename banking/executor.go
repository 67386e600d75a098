package banking

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// apiRequest describes one call through an executor. A non-nil form means
// a form-encoded request body (only the token endpoint uses one).
type apiRequest struct {
	method        string
	path          string
	form          url.Values
	authorization string
}

func (r *apiRequest) op() string {
	return r.method + " " + r.path
}

// executor is the single request/response contract both execution
// strategies implement. Do returns the raw JSON body of a 2xx response
// or exactly one taxonomy error. No calls may be made after Close.
type executor interface {
	Do(ctx context.Context, req *apiRequest) (json.RawMessage, error)
	Close()
}

// perform is the one shared round trip both strategies delegate to, so
// status handling and error classification are identical across modes.
func perform(ctx context.Context, httpClient *http.Client, baseURL string, r *apiRequest) (json.RawMessage, error) {
	var body io.Reader
	if r.form != nil {
		body = strings.NewReader(r.form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, r.method, baseURL+r.path, body)
	if err != nil {
		return nil, &TransportError{Op: r.op(), Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if r.form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if r.authorization != "" {
		req.Header.Set("Authorization", r.authorization)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: r.op(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: r.op(), Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Message: string(data)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if !json.Valid(data) {
		return nil, &DecodingError{Err: errors.New("response body is not valid JSON")}
	}

	return json.RawMessage(data), nil
}

// blockingExecutor performs the round trip on the calling goroutine.
type blockingExecutor struct {
	httpClient *http.Client
	baseURL    string
}

func (e *blockingExecutor) Do(ctx context.Context, req *apiRequest) (json.RawMessage, error) {
	return perform(ctx, e.httpClient, e.baseURL, req)
}

func (e *blockingExecutor) Close() {
	e.httpClient.CloseIdleConnections()
}

// concurrentExecutor runs requests on a fixed pool of dispatcher
// goroutines. Do enqueues the request and waits for the reply; the caller
// suspends only at this boundary.
type concurrentExecutor struct {
	httpClient *http.Client
	baseURL    string
	jobs       chan *execJob
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

type execJob struct {
	ctx   context.Context
	req   *apiRequest
	reply chan execResult
}

type execResult struct {
	data json.RawMessage
	err  error
}

func newConcurrentExecutor(httpClient *http.Client, baseURL string, workers int) *concurrentExecutor {
	if workers < 1 {
		workers = 1
	}
	e := &concurrentExecutor{
		httpClient: httpClient,
		baseURL:    baseURL,
		jobs:       make(chan *execJob),
	}
	for i := 0; i < workers; i++ {
		e.wg.Add(1)
		go e.worker()
	}
	return e
}

func (e *concurrentExecutor) worker() {
	defer e.wg.Done()
	for job := range e.jobs {
		data, err := perform(job.ctx, e.httpClient, e.baseURL, job.req)
		job.reply <- execResult{data: data, err: err}
	}
}

func (e *concurrentExecutor) Do(ctx context.Context, req *apiRequest) (json.RawMessage, error) {
	job := &execJob{
		ctx:   ctx,
		req:   req,
		reply: make(chan execResult, 1),
	}

	select {
	case e.jobs <- job:
	case <-ctx.Done():
		return nil, &TransportError{Op: req.op(), Err: ctx.Err()}
	}

	select {
	case res := <-job.reply:
		return res.data, res.err
	case <-ctx.Done():
		return nil, &TransportError{Op: req.op(), Err: ctx.Err()}
	}
}

func (e *concurrentExecutor) Close() {
	e.closeOnce.Do(func() {
		close(e.jobs)
		e.wg.Wait()
		e.httpClient.CloseIdleConnections()
	})
}
