package units

import (
	"errors"
	"fmt"

	"panaderia-backend/internal/models"
)

type Dimension string

const (
	DimensionMass   Dimension = "masa"
	DimensionVolume Dimension = "volumen"
	DimensionCount  Dimension = "conteo"
)

var (
	ErrUnknownUnit           = errors.New("unidad desconocida")
	ErrUnsupportedConversion = errors.New("conversión entre dimensiones distintas no soportada")
	ErrInvalidContainer      = errors.New("declaración de contenedor inválida")
)

type unitDef struct {
	dimension Dimension
	toBase    float64 // factor hacia la unidad base de la dimensión
}

// Tabla fija de conversión; viaja con el binario, no se recarga en runtime.
// Base por dimensión: masa = g, volumen = ml, conteo = unidad.
var unitTable = map[string]unitDef{
	// masa
	"g":  {DimensionMass, 1},
	"kg": {DimensionMass, 1000},
	"lb": {DimensionMass, 453.592},
	"oz": {DimensionMass, 28.3495},

	// volumen
	"ml":   {DimensionVolume, 1},
	"l":    {DimensionVolume, 1000},
	"cup":  {DimensionVolume, 240},
	"tbsp": {DimensionVolume, 15}, // cucharada
	"tsp":  {DimensionVolume, 5},  // cucharadita

	// conteo
	"unidad": {DimensionCount, 1},
	"pieza":  {DimensionCount, 1},
	"docena": {DimensionCount, 12},
}

var baseUnit = map[Dimension]string{
	DimensionMass:   "g",
	DimensionVolume: "ml",
	DimensionCount:  "unidad",
}

// Contenedores cuyo contenido varía por ingrediente: el factor NO está en la
// tabla, sale de ContainsAmount/ContainsUnit del ingrediente dueño.
var containerUnits = map[string]bool{
	"bolsa":   true,
	"paquete": true,
	"sobre":   true,
	"latas":   true,
	"botella": true,
	"caja":    true,
}

type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// IsContainer indica si la unidad es un contenedor por-ingrediente.
func IsContainer(unit string) bool {
	return containerUnits[unit]
}

// IsStandard indica si la unidad está en la tabla fija (masa/volumen/conteo).
func IsStandard(unit string) bool {
	_, ok := unitTable[unit]
	return ok
}

// IsKnown: unidad estándar o contenedor conocido.
func IsKnown(unit string) bool {
	return IsStandard(unit) || IsContainer(unit)
}

// DimensionOf devuelve la dimensión de una unidad estándar.
func DimensionOf(unit string) (Dimension, error) {
	def, ok := unitTable[unit]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return def.dimension, nil
}

// BaseUnit devuelve la unidad base de la dimensión de una unidad estándar.
func BaseUnit(unit string) (string, error) {
	dim, err := DimensionOf(unit)
	if err != nil {
		return "", err
	}
	return baseUnit[dim], nil
}

// Convert convierte entre unidades estándar de la misma dimensión.
// Nunca cruza dimensiones: masa→volumen falla con ErrUnsupportedConversion
// en lugar de inventar una densidad.
func Convert(q Quantity, targetUnit string) (Quantity, error) {
	from, ok := unitTable[q.Unit]
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, q.Unit)
	}
	to, ok := unitTable[targetUnit]
	if !ok {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, targetUnit)
	}
	if from.dimension != to.dimension {
		return Quantity{}, fmt.Errorf("%w: %s → %s", ErrUnsupportedConversion, q.Unit, targetUnit)
	}
	return Quantity{Value: q.Value * from.toBase / to.toBase, Unit: targetUnit}, nil
}

// ConvertToStandard resuelve una cantidad a su equivalente en unidad estándar.
//
// Para unidades de tabla (docena, kg, l...) el factor es global y el resultado
// queda en la unidad base de la dimensión. Para contenedores por-ingrediente
// (bolsa, paquete...) el contenido sale del registro del ingrediente dueño, por
// eso esta operación recibe el ingrediente y no solo el código de unidad.
func ConvertToStandard(amount float64, unit string, ing *models.Ingredient) (Quantity, error) {
	if def, ok := unitTable[unit]; ok {
		return Quantity{Value: amount * def.toBase, Unit: baseUnit[def.dimension]}, nil
	}
	if !containerUnits[unit] {
		return Quantity{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	if ing == nil {
		return Quantity{}, fmt.Errorf("%w: %q requiere el ingrediente dueño", ErrInvalidContainer, unit)
	}
	if ing.ContainsAmount == nil || *ing.ContainsAmount <= 0 {
		return Quantity{}, fmt.Errorf("%w: contains_amount debe ser > 0 (%s)", ErrInvalidContainer, ing.Name)
	}
	if !IsStandard(ing.ContainsUnit) {
		return Quantity{}, fmt.Errorf("%w: contains_unit %q no es estándar (%s)", ErrInvalidContainer, ing.ContainsUnit, ing.Name)
	}
	return Quantity{Value: amount * *ing.ContainsAmount, Unit: ing.ContainsUnit}, nil
}
