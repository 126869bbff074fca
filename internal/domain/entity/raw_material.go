package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Materias primas conocidas. El conjunto es extensible: cualquier nombre se normaliza igual.
const (
	MaterialFlour = "Flour"
	MaterialOil   = "Oil"
)

// Unidades de medida derivadas del nombre del material (no editables).
const (
	UnitSack      = "sack" // harina por saco
	UnitContainer = "20L"  // aceite por contenedor de 20 litros
)

var (
	foldCaser  = cases.Fold()
	titleCaser = cases.Title(language.Und)
)

// RawMaterial materia prima con cantidad decimal (1 dígito fraccionario).
// Invariante: Quantity >= 0 después de cada transacción.
type RawMaterial struct {
	ID        int64
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UpdatedAt time.Time
}

// MaterialKey identidad case-insensitive del material ("FLOUR", " flour " -> "flour").
func MaterialKey(name string) string {
	return foldCaser.String(strings.TrimSpace(name))
}

// CanonicalMaterialName nombre de presentación ("flour" -> "Flour").
func CanonicalMaterialName(name string) string {
	return titleCaser.String(MaterialKey(name))
}

// UnitFor deriva la unidad del nombre: harina por saco, el resto por contenedor.
func UnitFor(name string) string {
	if MaterialKey(name) == MaterialKey(MaterialFlour) {
		return UnitSack
	}
	return UnitContainer
}

// NewRawMaterial material vacío con nombre canónico y unidad derivada.
func NewRawMaterial(name string, now time.Time) *RawMaterial {
	canonical := CanonicalMaterialName(name)
	return &RawMaterial{
		Name:      canonical,
		Quantity:  decimal.Zero,
		Unit:      UnitFor(canonical),
		UpdatedAt: now,
	}
}
