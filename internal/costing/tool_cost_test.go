package costing

import (
	"errors"
	"math"
	"testing"

	"panaderia-backend/internal/models"
)

func mustVariant(t *testing.T, tool models.Tool) ToolCost {
	t.Helper()
	v, err := ToolCostVariant(tool)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestCostPerBatchConsumable(t *testing.T) {
	papel := models.Tool{Name: "Papel encerado", Type: models.ToolTypeConsumible, Cost: 12.5}
	v := mustVariant(t, papel)
	if got := CostPerBatch(v); got != 12.5 {
		t.Errorf("consumible: costo por lote = %v, quería 12.5", got)
	}
}

func TestCostPerBatchAmortized(t *testing.T) {
	// Inversión 500, rescate 50, 300 lotes → 1.50 por lote
	horno := models.Tool{
		Name:            "Horno de piso",
		Type:            models.ToolTypeEquipo,
		TotalInvestment: 500,
		RecoveryValue:   50,
		TotalBatches:    300,
	}
	v := mustVariant(t, horno)
	if got := CostPerBatch(v); got != 1.50 {
		t.Errorf("amortizado: costo por lote = %v, quería 1.50", got)
	}
}

func TestAmortizationInvariant(t *testing.T) {
	// costo×lotes + rescate ≈ inversión, dentro de la tolerancia del redondeo a centavos
	cases := []models.Tool{
		{Name: "Batidora", Type: models.ToolTypeEquipo, TotalInvestment: 12000, RecoveryValue: 1200, TotalBatches: 4000},
		{Name: "Laminadora", Type: models.ToolTypeEspecializado, TotalInvestment: 35999.99, RecoveryValue: 3599.99, TotalBatches: 800},
		{Name: "Charolas", Type: models.ToolTypeHerramienta, TotalInvestment: 900, RecoveryValue: 0, TotalBatches: 900},
	}
	for _, tool := range cases {
		v := mustVariant(t, tool)
		got := CostPerBatch(v)*float64(tool.TotalBatches) + tool.RecoveryValue
		tolerance := 0.005 * float64(tool.TotalBatches) // medio centavo por lote
		if math.Abs(got-tool.TotalInvestment) > tolerance {
			t.Errorf("%s: costo×lotes+rescate = %v, inversión = %v", tool.Name, got, tool.TotalInvestment)
		}
	}
}

func TestToolCostVariantValidation(t *testing.T) {
	// Un "equipo" sin datos de inversión no puede llegar al cálculo
	sinDatos := models.Tool{Name: "Equipo fantasma", Type: models.ToolTypeEquipo}
	if _, err := ToolCostVariant(sinDatos); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("total_batches=0: quería ErrDataIntegrity, dio %v", err)
	}

	rescateMayor := models.Tool{Name: "Raro", Type: models.ToolTypeEquipo, TotalInvestment: 100, RecoveryValue: 200, TotalBatches: 10}
	if _, err := ToolCostVariant(rescateMayor); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("rescate > inversión: quería ErrDataIntegrity, dio %v", err)
	}

	costoNegativo := models.Tool{Name: "Consumible raro", Type: models.ToolTypeConsumible, Cost: -1}
	if _, err := ToolCostVariant(costoNegativo); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("costo negativo: quería ErrDataIntegrity, dio %v", err)
	}
}

func TestEffectiveRecipeCostUsageScaling(t *testing.T) {
	horno := models.Tool{Name: "Horno", Type: models.ToolTypeEquipo, TotalInvestment: 500, RecoveryValue: 50, TotalBatches: 300}
	v := mustVariant(t, horno)
	base := CostPerBatch(v)

	full, err := EffectiveRecipeCost(v, models.ToolUsageFull, nil)
	if err != nil || full != base {
		t.Errorf("uso full = %v (err %v), quería %v", full, err, base)
	}

	dep, err := EffectiveRecipeCost(v, models.ToolUsageDepreciated, nil)
	if err != nil || dep != 0 {
		t.Errorf("uso depreciated = %v (err %v), quería 0", dep, err)
	}

	// Lineal en el porcentaje
	for _, pct := range []float64{10, 25, 50, 75, 100} {
		p := pct
		got, err := EffectiveRecipeCost(v, models.ToolUsagePartial, &p)
		if err != nil {
			t.Fatal(err)
		}
		want := base * pct / 100
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("uso parcial %v%% = %v, quería %v", pct, got, want)
		}
	}
}

func TestEffectiveRecipeCostPartialValidation(t *testing.T) {
	v := mustVariant(t, models.Tool{Name: "Horno", Type: models.ToolTypeEquipo, TotalInvestment: 500, RecoveryValue: 50, TotalBatches: 300})

	if _, err := EffectiveRecipeCost(v, models.ToolUsagePartial, nil); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("parcial sin porcentaje: quería ErrDataIntegrity, dio %v", err)
	}
	for _, pct := range []float64{0, -5, 101} {
		p := pct
		if _, err := EffectiveRecipeCost(v, models.ToolUsagePartial, &p); !errors.Is(err, ErrDataIntegrity) {
			t.Errorf("porcentaje %v: quería ErrDataIntegrity, dio %v", pct, err)
		}
	}
}
