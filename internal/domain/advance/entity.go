package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	StatusPending  AdvanceStatus = "PENDING"
	StatusApproved AdvanceStatus = "APPROVED"
	StatusRepaid   AdvanceStatus = "REPAID"
)

// Advance is a cash advance (kharchi) against future wages. Only
// APPROVED advances dated within a payroll month are deducted.
type Advance struct {
	ID        string
	FactoryID string
	WorkerID  string
	Amount    decimal.Decimal
	Date      time.Time
	Reason    string
	Status    AdvanceStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}
