package distribution

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManifestLine fila de la hoja de carga.
type ManifestLine struct {
	Code      string
	Name      string
	LoadQty   int
	ReturnQty int
	BoQty     int
}

// Manifest datos de la hoja de carga de una orden.
type Manifest struct {
	OrderID      int64
	LoadDate     time.Time
	DispatchDate *time.Time
	Location     string
	Status       string
	Lines        []ManifestLine
	LoadYield    decimal.Decimal
	ReturnYield  decimal.Decimal
}

// ManifestGenerator renderiza la hoja de carga (PDF).
type ManifestGenerator interface {
	Generate(m *Manifest) ([]byte, error)
}
