// Package api is a typed client for the FinWise HTTP service.
//
// The client performs exactly one attempt per call; there are no retries.
// Every call takes a context, so a bounded timeout and session-scoped
// cancellation apply to all requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finwise/internal/core"
)

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// AuthMode selects between login and registration.
type AuthMode string

// AuthRequest carries the credentials form. Name is only sent when
// registering.
type AuthRequest struct {
	Name     string
	Email    string
	Password string
}

// TransactionFields is the wire shape for creating a transaction.
type TransactionFields struct {
	Type     core.TransactionType `json:"type"`
	Amount   core.Amount          `json:"amount"`
	Category string               `json:"category"`
	Date     time.Time            `json:"date"`
	Note     string               `json:"note"`
}

// GoalFields is the wire shape for creating a goal. A nil Deadline is
// transmitted as JSON null.
type GoalFields struct {
	Name          string      `json:"name"`
	TargetAmount  core.Amount `json:"target_amount"`
	CurrentAmount core.Amount `json:"current_amount"`
	Deadline      *time.Time  `json:"deadline"`
}

// Client issues authenticated requests against the FinWise service and
// translates responses into core types.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the service at baseURL. The timeout bounds every
// request end to end.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Authenticate performs a login or registration and returns a fresh
// credential. A non-success response yields an *AuthError carrying the
// server-supplied message.
func (c *Client) Authenticate(ctx context.Context, mode AuthMode, req AuthRequest) (core.Credential, error) {
	path := "/auth/login"
	var body any = struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{req.Email, req.Password}

	if mode == ModeRegister {
		path = "/auth/register"
		body = struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}{req.Name, req.Email, req.Password}
	}

	resp, err := c.post(ctx, "", path, "authenticate", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", authErrorFrom(resp)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("authenticate: decode response: %w", err)
	}

	slog.InfoContext(ctx, "Authenticated against service", "mode", string(mode))
	return core.Credential(out.AccessToken), nil
}

// FetchIdentity resolves the user profile behind a credential. Any
// non-success response is an *AuthError: the credential could not be tied
// to an identity.
func (c *Client) FetchIdentity(ctx context.Context, cred core.Credential) (core.Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/me", cred, nil)
	if err != nil {
		return core.Identity{}, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return core.Identity{}, &NetworkError{Op: "fetch identity", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.Identity{}, authErrorFrom(resp)
	}

	var out struct {
		User core.Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return core.Identity{}, fmt.Errorf("fetch identity: decode response: %w", err)
	}
	return out.User, nil
}

// FetchSummary retrieves the server-computed aggregate snapshot.
func (c *Client) FetchSummary(ctx context.Context, cred core.Credential) (core.Summary, error) {
	var s core.Summary
	if err := c.getJSON(ctx, cred, "/stats/summary", "fetch summary", &s); err != nil {
		return core.Summary{}, err
	}
	return s, nil
}

// FetchTransactions retrieves the transaction list.
func (c *Client) FetchTransactions(ctx context.Context, cred core.Credential) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.getJSON(ctx, cred, "/transactions", "fetch transactions", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// FetchGoals retrieves the goal list.
func (c *Client) FetchGoals(ctx context.Context, cred core.Credential) ([]core.Goal, error) {
	var goals []core.Goal
	if err := c.getJSON(ctx, cred, "/goals", "fetch goals", &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// CreateTransaction submits a new transaction. The caller only needs
// success or failure; the created resource is discarded.
func (c *Client) CreateTransaction(ctx context.Context, cred core.Credential, fields TransactionFields) error {
	return c.create(ctx, cred, "/transactions", "create transaction", fields)
}

// CreateGoal submits a new goal.
func (c *Client) CreateGoal(ctx context.Context, cred core.Credential, fields GoalFields) error {
	return c.create(ctx, cred, "/goals", "create goal", fields)
}

func (c *Client) create(ctx context.Context, cred core.Credential, path, op string, body any) error {
	resp, err := c.post(ctx, cred, path, op, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, Status: resp.StatusCode}
	}

	slog.InfoContext(ctx, "Mutation accepted by service", "operation", op)
	return nil
}

func (c *Client) getJSON(ctx context.Context, cred core.Credential, path, op string, v any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, cred, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, cred core.Credential, path, op string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request body: %w", op, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, cred, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, cred core.Credential, body *bytes.Reader) (*http.Request, error) {
	var r *http.Request
	var err error
	if body != nil {
		r, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	} else {
		r, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")
	if !cred.IsZero() {
		r.Header.Set("Authorization", "Bearer "+string(cred))
	}
	return r, nil
}

// authErrorFrom reads the server's error detail, falling back to "Error"
// when no message is present.
func authErrorFrom(resp *http.Response) *AuthError {
	msg := "Error"
	var out struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Detail != "" {
		msg = out.Detail
	}
	return &AuthError{Status: resp.StatusCode, Message: msg}
}
