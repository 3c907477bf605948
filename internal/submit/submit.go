// Package submit converts form input into create requests and triggers a
// dashboard refresh after each successful mutation. A rejected mutation
// leaves the form untouched and triggers no refresh, and the error is
// always returned so the caller can tell the user the entry was not saved.
// A failed refresh after an accepted mutation is reported as a
// *RefreshError so it is never mistaken for a rejected save.
package submit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"finwise/internal/api"
	"finwise/internal/core"
	"finwise/internal/dashboard"
)

// RefreshError reports that the mutation was accepted but the follow-up
// dashboard load failed. The entry is saved; only the view is stale.
// Callers must not report it as a failed save.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string { return "refresh after create: " + e.Err.Error() }
func (e *RefreshError) Unwrap() error { return e.Err }

// Creator is the write side of the remote service. Satisfied by the api
// client.
type Creator interface {
	CreateTransaction(ctx context.Context, cred core.Credential, fields api.TransactionFields) error
	CreateGoal(ctx context.Context, cred core.Credential, fields api.GoalFields) error
}

// Refresher re-runs the combined dashboard load. Satisfied by the
// synchronizer.
type Refresher interface {
	LoadAll(ctx context.Context, cred core.Credential) (*dashboard.Snapshot, error)
}

const dateLayout = "2006-01-02"

// TransactionForm holds raw input for a new transaction, string-typed the
// way it arrives from the user.
type TransactionForm struct {
	Type     string
	Amount   string
	Category string
	Date     string // YYYY-MM-DD
	Note     string
}

// NewTransactionForm returns a form with the entry defaults: expense,
// category "General", dated today.
func NewTransactionForm() TransactionForm {
	return TransactionForm{
		Type:     string(core.Expense),
		Category: core.DefaultCategory,
		Date:     time.Now().Format(dateLayout),
	}
}

// Fields validates and converts the form into the wire shape. The date is
// interpreted as start of day in the local zone and normalized to an
// absolute instant.
func (f *TransactionForm) Fields() (api.TransactionFields, error) {
	txType := core.TransactionType(strings.TrimSpace(f.Type))
	if err := txType.Validate(); err != nil {
		return api.TransactionFields{}, err
	}

	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		return api.TransactionFields{}, err
	}
	if !amount.IsPositive() {
		return api.TransactionFields{}, core.ErrInvalidAmount
	}

	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = core.DefaultCategory
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(f.Date), time.Local)
	if err != nil {
		return api.TransactionFields{}, core.ErrInvalidDate
	}

	return api.TransactionFields{
		Type:     txType,
		Amount:   amount,
		Category: category,
		Date:     day.UTC(),
		Note:     strings.TrimSpace(f.Note),
	}, nil
}

// GoalForm holds raw input for a new savings goal.
type GoalForm struct {
	Name          string
	TargetAmount  string
	CurrentAmount string // optional, defaults to 0
	Deadline      string // optional, YYYY-MM-DD
}

// Fields validates and converts the form. An empty deadline means absent.
func (f *GoalForm) Fields() (api.GoalFields, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return api.GoalFields{}, core.ErrEmptyName
	}

	target, err := core.ParseAmount(f.TargetAmount)
	if err != nil {
		return api.GoalFields{}, err
	}
	if !target.IsPositive() {
		return api.GoalFields{}, core.ErrInvalidAmount
	}

	current := core.NewAmount(0)
	if strings.TrimSpace(f.CurrentAmount) != "" {
		current, err = core.ParseAmount(f.CurrentAmount)
		if err != nil {
			return api.GoalFields{}, err
		}
	}

	var deadline *time.Time
	if d := strings.TrimSpace(f.Deadline); d != "" {
		day, err := time.ParseInLocation(dateLayout, d, time.Local)
		if err != nil {
			return api.GoalFields{}, core.ErrInvalidDate
		}
		instant := day.UTC()
		deadline = &instant
	}

	return api.GoalFields{
		Name:          name,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}, nil
}

// Submitter submits mutations through the gateway and refreshes the
// dashboard on success.
type Submitter struct {
	gw   Creator
	sync Refresher
}

func NewSubmitter(gw Creator, sync Refresher) *Submitter {
	return &Submitter{gw: gw, sync: sync}
}

// SubmitTransaction validates, submits, and on success clears the amount
// and note (type, category, and date are kept for fast repeated entry)
// before refreshing. On failure the form is untouched and no refresh runs.
func (s *Submitter) SubmitTransaction(ctx context.Context, cred core.Credential, form *TransactionForm) error {
	fields, err := form.Fields()
	if err != nil {
		return err
	}

	if err := s.gw.CreateTransaction(ctx, cred, fields); err != nil {
		slog.WarnContext(ctx, "Transaction rejected by service", "error", err)
		return err
	}

	form.Amount = ""
	form.Note = ""

	if _, err := s.sync.LoadAll(ctx, cred); err != nil {
		// The transaction was saved; only the refresh failed. The stale
		// snapshot stays on screen until the next successful load.
		return &RefreshError{Err: err}
	}
	return nil
}

// SubmitGoal validates, submits, and refreshes on success. Goal form
// fields are not cleared here; that is a presentation concern.
func (s *Submitter) SubmitGoal(ctx context.Context, cred core.Credential, form *GoalForm) error {
	fields, err := form.Fields()
	if err != nil {
		return err
	}

	if err := s.gw.CreateGoal(ctx, cred, fields); err != nil {
		slog.WarnContext(ctx, "Goal rejected by service", "error", err)
		return err
	}

	if _, err := s.sync.LoadAll(ctx, cred); err != nil {
		return &RefreshError{Err: err}
	}
	return nil
}
