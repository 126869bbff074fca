package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Procurement registro de compra de materia prima (solo incrementa stock).
type Procurement struct {
	ID         int64
	MaterialID int64
	Qty        decimal.Decimal
	Note       string
	UserID     string
	CreatedAt  time.Time
}
