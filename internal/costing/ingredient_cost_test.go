package costing

import (
	"errors"
	"math"
	"testing"

	"panaderia-backend/internal/models"
	"panaderia-backend/internal/units"
)

func TestCostPerBaseUnitStandard(t *testing.T) {
	// Harina a $25 el kilo
	harina := models.Ingredient{Name: "Harina", Unit: "kg", Amount: 1, Price: 25}

	cost, err := CostPerBaseUnit(harina)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 25 {
		t.Errorf("costo por kg = %v, quería 25", cost)
	}

	// Mantequilla a $90 por 500 g
	mantequilla := models.Ingredient{Name: "Mantequilla", Unit: "g", Amount: 500, Price: 90}
	cost, err = CostPerBaseUnit(mantequilla)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0.18 {
		t.Errorf("costo por g = %v, quería 0.18", cost)
	}
}

func TestCostPerBaseUnitContainer(t *testing.T) {
	// Bolsa de 1000 g a $40 → 0.04 $/g
	contains := 1000.0
	azucar := models.Ingredient{
		Name:           "Azúcar",
		Unit:           "bolsa",
		Amount:         1, // describe el envase, no entra al cálculo
		Price:          40,
		ContainsAmount: &contains,
		ContainsUnit:   "g",
	}

	cost, err := CostPerBaseUnit(azucar)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(cost-0.04) > 1e-12 {
		t.Errorf("costo por g = %v, quería 0.04", cost)
	}
}

func TestCostPerBaseUnitContainerConsistency(t *testing.T) {
	// price/contains_amount sin importar lo que diga Amount
	contains := 500.0
	ing := models.Ingredient{Name: "Levadura", Unit: "bolsa", Amount: 99, Price: 80, ContainsAmount: &contains, ContainsUnit: "g"}

	cost, err := CostPerBaseUnit(ing)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 80/500.0 {
		t.Errorf("costo = %v, quería %v", cost, 80/500.0)
	}
}

func TestCostPerBaseUnitDataIntegrity(t *testing.T) {
	// amount ≤ 0 no se convierte en default, se propaga
	malo := models.Ingredient{Name: "Sal", Unit: "g", Amount: 0, Price: 10}
	if _, err := CostPerBaseUnit(malo); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("amount=0: quería ErrDataIntegrity, dio %v", err)
	}

	// contenedor sin contenido declarado
	sinContenido := models.Ingredient{Name: "Canela", Unit: "sobre", Amount: 1, Price: 15}
	if _, err := CostPerBaseUnit(sinContenido); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("contenedor sin contains_amount: quería ErrDataIntegrity, dio %v", err)
	}

	// contenedor con contenido en unidad no estándar
	contains := 2.0
	anidado := models.Ingredient{Name: "Caja", Unit: "caja", Amount: 1, Price: 100, ContainsAmount: &contains, ContainsUnit: "bolsa"}
	if _, err := CostPerBaseUnit(anidado); !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("contains_unit contenedor: quería ErrDataIntegrity, dio %v", err)
	}
}

func TestCostPerBaseUnitUnknownUnit(t *testing.T) {
	raro := models.Ingredient{Name: "Misterio", Unit: "puñado", Amount: 1, Price: 5}
	if _, err := CostPerBaseUnit(raro); !errors.Is(err, units.ErrUnknownUnit) {
		t.Errorf("unidad desconocida: quería ErrUnknownUnit, dio %v", err)
	}
}
