package costing

import "errors"

var (
	// ErrDataIntegrity: valor almacenado sin sentido (amount/batch_size/total_batches ≤ 0).
	// Fatal para el cálculo en curso; nunca se degrada a un default silencioso porque
	// eso malpreciaría la receta sin que nadie lo note.
	ErrDataIntegrity = errors.New("dato almacenado inválido")

	// ErrMarginOutOfRange: margen deseado fuera de [0, 100).
	ErrMarginOutOfRange = errors.New("margen fuera de rango")
)
