package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finwise/internal/core"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestAuthenticateLogin(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
	})

	cred, err := c.Authenticate(context.Background(), ModeLogin, AuthRequest{
		Email:    "a@b.c",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if cred != "tok-123" {
		t.Errorf("credential = %q, want tok-123", cred)
	}
	if gotPath != "/auth/login" {
		t.Errorf("path = %q, want /auth/login", gotPath)
	}
	if gotBody["email"] != "a@b.c" || gotBody["password"] != "secret" {
		t.Errorf("unexpected body: %v", gotBody)
	}
	if _, ok := gotBody["name"]; ok {
		t.Error("login body must not carry a name field")
	}
}

func TestAuthenticateRegister(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-456"})
	})

	_, err := c.Authenticate(context.Background(), ModeRegister, AuthRequest{
		Name:     "Ada",
		Email:    "ada@b.c",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if gotPath != "/auth/register" {
		t.Errorf("path = %q, want /auth/register", gotPath)
	}
	if gotBody["name"] != "Ada" {
		t.Errorf("register body missing name: %v", gotBody)
	}
}

func TestAuthenticateRejected(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server detail", http.StatusUnauthorized, `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"empty body falls back", http.StatusBadRequest, ``, "Error"},
		{"detail missing falls back", http.StatusUnauthorized, `{}`, "Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			})

			_, err := c.Authenticate(context.Background(), ModeLogin, AuthRequest{Email: "x", Password: "y"})
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected AuthError, got %v", err)
			}
			if authErr.Message != tc.wantMsg {
				t.Errorf("message = %q, want %q", authErr.Message, tc.wantMsg)
			}
			if authErr.Status != tc.status {
				t.Errorf("status = %d, want %d", authErr.Status, tc.status)
			}
		})
	}
}

func TestFetchIdentity(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q, want Bearer tok", got)
		}
		if r.URL.Path != "/me" {
			t.Errorf("path = %q, want /me", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]any{"id": 1, "name": "Ada", "email": "ada@b.c"},
		})
	})

	id, err := c.FetchIdentity(context.Background(), "tok")
	if err != nil {
		t.Fatalf("FetchIdentity: %v", err)
	}
	if id.Name != "Ada" || id.Email != "ada@b.c" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestFetchIdentityRejected(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"Token expired"}`)
	})

	_, err := c.FetchIdentity(context.Background(), "stale")
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "Token expired" {
		t.Errorf("message = %q", authErr.Message)
	}
}

func TestFetchCollections(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/stats/summary":
			io.WriteString(w, `{"income":100,"expenses":40,"savings":60,"monthly":[],"by_category":[]}`)
		case "/transactions":
			io.WriteString(w, `[{"id":1,"type":"expense","amount":42.5,"category":"Food","date":"2026-03-01T00:00:00Z"}]`)
		case "/goals":
			io.WriteString(w, `[{"id":2,"name":"Trip","target_amount":200,"current_amount":50}]`)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	})

	ctx := context.Background()
	s, err := c.FetchSummary(ctx, "tok")
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if want := core.NewAmount(60); !s.Savings.Equal(want) {
		t.Errorf("savings = %s, want 60", s.Savings)
	}

	txs, err := c.FetchTransactions(ctx, "tok")
	if err != nil {
		t.Fatalf("FetchTransactions: %v", err)
	}
	if len(txs) != 1 || txs[0].Category != "Food" {
		t.Errorf("unexpected transactions: %+v", txs)
	}

	goals, err := c.FetchGoals(ctx, "tok")
	if err != nil {
		t.Fatalf("FetchGoals: %v", err)
	}
	if len(goals) != 1 || goals[0].Percent() != 25 {
		t.Errorf("unexpected goals: %+v", goals)
	}
}

func TestFetchServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.FetchSummary(context.Background(), "tok")
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
	if srvErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", srvErr.Status)
	}
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL, time.Second)
	srv.Close()

	_, err := c.FetchTransactions(context.Background(), "tok")
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	var gotBody map[string]json.RawMessage

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transactions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("authorization = %q", got)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	amount, _ := core.ParseAmount("42.50")
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	err := c.CreateTransaction(context.Background(), "tok", TransactionFields{
		Type:     core.Expense,
		Amount:   amount,
		Category: "Food",
		Date:     date,
		Note:     "lunch",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if string(gotBody["amount"]) != "42.5" {
		t.Errorf("amount = %s, want bare number 42.5", gotBody["amount"])
	}
	if string(gotBody["date"]) != `"2026-03-01T00:00:00Z"` {
		t.Errorf("date = %s, want RFC3339 instant", gotBody["date"])
	}
}

func TestCreateTransactionRejected(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := c.CreateTransaction(context.Background(), "tok", TransactionFields{
		Type:   core.Expense,
		Amount: core.NewAmount(1),
		Date:   time.Now(),
	})
	var srvErr *ServerError
	if !errors.As(err, &srvErr) {
		t.Fatalf("expected ServerError, got %v", err)
	}
}

func TestCreateGoalDeadline(t *testing.T) {
	var gotBody map[string]json.RawMessage

	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.CreateGoal(context.Background(), "tok", GoalFields{
		Name:          "Trip",
		TargetAmount:  core.NewAmount(200),
		CurrentAmount: core.NewAmount(0),
	})
	if err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}
	// Absent deadline goes over the wire as an explicit null.
	if string(gotBody["deadline"]) != "null" {
		t.Errorf("deadline = %s, want null", gotBody["deadline"])
	}

	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := c.CreateGoal(context.Background(), "tok", GoalFields{
		Name:          "Trip",
		TargetAmount:  core.NewAmount(200),
		CurrentAmount: core.NewAmount(0),
		Deadline:      &deadline,
	}); err != nil {
		t.Fatalf("CreateGoal with deadline: %v", err)
	}
	if string(gotBody["deadline"]) != `"2026-12-31T00:00:00Z"` {
		t.Errorf("deadline = %s", gotBody["deadline"])
	}
}
