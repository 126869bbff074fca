package inventory

import "github.com/jhoicas/inventario-produccion/internal/domain/entity"

// returnFactor coeficiente de las devoluciones según estado de la orden.
var returnFactor = map[string]int{
	entity.StatusPending:  0,
	entity.StatusComplete: 1,
}

// ReturnFactor 1 si las devoluciones cuentan para stock (complete), 0 en otro caso.
func ReturnFactor(status string) int {
	return returnFactor[status]
}
