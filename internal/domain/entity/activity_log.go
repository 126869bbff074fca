package entity

import (
	"encoding/json"
	"time"
)

// Tipos de entrada del historial.
const (
	ActivityProductionCreated   = "production_created"
	ActivityProductionUpdated   = "production_updated"
	ActivityProductionDeleted   = "production_deleted"
	ActivityDistributionCreated = "distribution_created"
	ActivityDistributionUpdated = "distribution_updated"
	ActivityDistributionDeleted = "distribution_deleted"
	ActivityProcurement         = "procurement"
)

// ActivityLog entrada del historial con valores antes/después en Meta (JSON).
type ActivityLog struct {
	ID          string
	UserID      string
	Type        string
	Description string
	Meta        json.RawMessage
	CreatedAt   time.Time
}
