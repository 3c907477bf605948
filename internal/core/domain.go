package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DefaultCategory is assigned when the user leaves the category blank.
const DefaultCategory = "General"

type (
	TransactionType string

	// Transaction is a single income or expense record. The ID is assigned
	// by the service; the client never mutates a transaction after creation.
	Transaction struct {
		ID       int64           `json:"id"`
		Type     TransactionType `json:"type"`
		Amount   Amount          `json:"amount"`
		Category string          `json:"category"`
		Date     time.Time       `json:"date"`
		Note     string          `json:"note,omitempty"`
	}

	// Goal is a savings goal. Creation-only from the client's perspective.
	Goal struct {
		ID            int64      `json:"id"`
		Name          string     `json:"name"`
		TargetAmount  Amount     `json:"target_amount"`
		CurrentAmount Amount     `json:"current_amount"`
		Deadline      *time.Time `json:"deadline,omitempty"`
	}

	// MonthlyPoint is one entry of the monthly income/expense trend.
	MonthlyPoint struct {
		Month   string `json:"month"`
		Income  Amount `json:"income"`
		Expense Amount `json:"expense"`
	}

	// CategoryTotal is one entry of the per-category expense breakdown.
	CategoryTotal struct {
		Category string `json:"category"`
		Total    Amount `json:"total"`
	}

	// Summary is the server-computed aggregate snapshot. The client treats
	// it as opaque: never constructed locally, always refreshed wholesale.
	Summary struct {
		Income     Amount          `json:"income"`
		Expenses   Amount          `json:"expenses"`
		Savings    Amount          `json:"savings"`
		Monthly    []MonthlyPoint  `json:"monthly"`
		ByCategory []CategoryTotal `json:"by_category"`
	}

	// Identity is the resolved user profile tied to a credential.
	Identity struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidDate   = errors.New("invalid date")
)

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// Percent returns goal completion as a whole percentage clamped to [0, 100].
// A non-positive target reads as 0 instead of dividing by zero.
func (g Goal) Percent() int {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	pct := g.CurrentAmount.Decimal.
		Div(g.TargetAmount.Decimal).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(pct)
}
