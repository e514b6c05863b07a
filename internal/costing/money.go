package costing

import "github.com/shopspring/decimal"

// RoundMoney redondea a centavos (2 decimales). El cálculo interno se queda en
// float64 y solo se redondea en los puntos donde el contrato lo pide, para que
// el error no se acumule sumando ingrediente por ingrediente.
func RoundMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
