package production

import (
	"errors"
	"math"
	"testing"

	"panaderia-backend/internal/costing"
	"panaderia-backend/internal/models"
)

func recetaGalletas() models.Recipe {
	return models.Recipe{
		Name:      "Galletas de vainilla",
		BatchSize: 24,
		Ingredients: []models.RecipeIngredient{
			{IngredientID: 1, Amount: 0.5}, // kg de harina
			{IngredientID: 2, Amount: 200}, // g de azúcar
		},
	}
}

func catalogo() map[uint]models.Ingredient {
	return map[uint]models.Ingredient{
		1: {ID: 1, Name: "Harina", Unit: "kg", Amount: 1, Price: 25},
		2: {ID: 2, Name: "Azúcar", Unit: "g", Amount: 1000, Price: 40},
	}
}

func TestCheckFeasibilityDeficit(t *testing.T) {
	// 0.5 kg × 3 lotes = 1.5 kg; hay 1.0 kg → faltan 0.5 kg
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 1.0, Unit: "kg"},
		2: {ID: 11, IngredientID: 2, CurrentStock: 5000, Unit: "g"},
	}

	result, err := CheckFeasibility(recetaGalletas(), 3, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	if result.Feasible {
		t.Fatal("con déficit de harina no debería ser factible")
	}
	if len(result.Deficits) != 1 {
		t.Fatalf("déficits = %v, quería exactamente uno", result.Deficits)
	}
	d := result.Deficits[0]
	if d.IngredientName != "Harina" || math.Abs(d.Missing-0.5) > 1e-9 || d.Unit != "kg" {
		t.Errorf("déficit = %+v, quería 0.5 kg de Harina", d)
	}
}

func TestCheckFeasibilityZeroDeficit(t *testing.T) {
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 2.0, Unit: "kg"},
		2: {ID: 11, IngredientID: 2, CurrentStock: 1000, Unit: "g"},
	}

	result, err := CheckFeasibility(recetaGalletas(), 3, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Feasible || len(result.Deficits) != 0 {
		t.Errorf("stock suficiente: result = %+v", result)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("no debería haber advertencias: %v", result.Warnings)
	}
}

func TestCheckFeasibilityUnitConversion(t *testing.T) {
	// Receta en kg, almacén en g: 0.5 kg × 2 = 1000 g requeridos
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 600, Unit: "g"},
		2: {ID: 11, IngredientID: 2, CurrentStock: 1000, Unit: "g"},
	}

	result, err := CheckFeasibility(recetaGalletas(), 2, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	if result.Feasible {
		t.Fatal("600 g contra 1000 g requeridos no es factible")
	}
	d := result.Deficits[0]
	if math.Abs(d.Missing-400) > 1e-9 || d.Unit != "g" {
		t.Errorf("déficit = %+v, quería 400 g", d)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("conversión kg→g no debería generar advertencias: %v", result.Warnings)
	}
}

func TestCheckFeasibilityContainerConversion(t *testing.T) {
	// Ingrediente en bolsas de 500 g, almacén en g
	contains := 500.0
	ingredients := map[uint]models.Ingredient{
		1: {ID: 1, Name: "Chocolate", Unit: "bolsa", Amount: 1, Price: 60, ContainsAmount: &contains, ContainsUnit: "g"},
	}
	recipe := models.Recipe{
		Name:        "Brownies",
		BatchSize:   12,
		Ingredients: []models.RecipeIngredient{{IngredientID: 1, Amount: 2}}, // 2 bolsas
	}
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 1500, Unit: "g"},
	}

	// 2 bolsas × 1 lote = 1000 g, hay 1500 g
	result, err := CheckFeasibility(recipe, 1, ingredients, stock)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Feasible {
		t.Errorf("1000 g requeridos contra 1500 g: %+v", result)
	}

	// 2 bolsas × 2 lotes = 2000 g → faltan 500 g
	result, err = CheckFeasibility(recipe, 2, ingredients, stock)
	if err != nil {
		t.Fatal(err)
	}
	if result.Feasible || math.Abs(result.Deficits[0].Missing-500) > 1e-9 {
		t.Errorf("quería déficit de 500 g: %+v", result)
	}
}

func TestCheckFeasibilityMissingInventoryIsFullDeficit(t *testing.T) {
	// Sin fila de inventario no hay stock
	stock := map[uint]models.InventoryItem{
		2: {ID: 11, IngredientID: 2, CurrentStock: 1000, Unit: "g"},
	}

	result, err := CheckFeasibility(recetaGalletas(), 2, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	if result.Feasible {
		t.Fatal("sin inventario de harina no debería ser factible")
	}
	d := result.Deficits[0]
	if math.Abs(d.Missing-1.0) > 1e-9 || d.Unit != "kg" {
		t.Errorf("déficit = %+v, quería 1.0 kg (todo lo requerido)", d)
	}
}

func TestCheckFeasibilityMissingIngredientWarns(t *testing.T) {
	recipe := recetaGalletas()
	recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{IngredientID: 999, Amount: 1})

	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 5, Unit: "kg"},
		2: {ID: 11, IngredientID: 2, CurrentStock: 5000, Unit: "g"},
	}

	result, err := CheckFeasibility(recipe, 1, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	// Referencia rota: advertencia, no bloqueo
	if !result.Feasible {
		t.Errorf("la referencia rota no debería bloquear: %+v", result)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != WarnMissingIngredient {
		t.Errorf("warnings = %+v, quería una de tipo %s", result.Warnings, WarnMissingIngredient)
	}
}

func TestCheckFeasibilityUnitFallback(t *testing.T) {
	// Volumen contra masa no se puede convertir: comparación cruda con
	// advertencia de clase propia
	ingredients := map[uint]models.Ingredient{
		1: {ID: 1, Name: "Vainilla", Unit: "tbsp", Amount: 1, Price: 10},
	}
	recipe := models.Recipe{
		Name:        "Flan",
		BatchSize:   8,
		Ingredients: []models.RecipeIngredient{{IngredientID: 1, Amount: 2}},
	}
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 2, Unit: "g"},
	}

	result, err := CheckFeasibility(recipe, 1, ingredients, stock)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Kind != WarnUnitFallback {
		t.Fatalf("warnings = %+v, quería una de tipo %s", result.Warnings, WarnUnitFallback)
	}
	// Con valores crudos 2 requeridos contra 2 en stock alcanza
	if !result.Feasible {
		t.Errorf("comparación cruda 2 vs 2 debería pasar: %+v", result)
	}
}

func TestCheckFeasibilityRequirements(t *testing.T) {
	// Los requerimientos salen en la unidad del inventario; es lo que se descuenta
	stock := map[uint]models.InventoryItem{
		1: {ID: 10, IngredientID: 1, CurrentStock: 5000, Unit: "g"},
		2: {ID: 11, IngredientID: 2, CurrentStock: 5000, Unit: "g"},
	}

	result, err := CheckFeasibility(recetaGalletas(), 2, catalogo(), stock)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Requirements) != 2 {
		t.Fatalf("requirements = %+v, quería dos", result.Requirements)
	}
	byID := map[uint]Requirement{}
	for _, r := range result.Requirements {
		byID[r.IngredientID] = r
	}
	if r := byID[1]; math.Abs(r.Amount-1000) > 1e-9 || r.Unit != "g" {
		t.Errorf("harina: %+v, quería 1000 g", r)
	}
	if r := byID[2]; math.Abs(r.Amount-400) > 1e-9 || r.Unit != "g" {
		t.Errorf("azúcar: %+v, quería 400 g", r)
	}
}

func TestCheckFeasibilityRejectsBadBatchCount(t *testing.T) {
	for _, n := range []int{0, -2} {
		if _, err := CheckFeasibility(recetaGalletas(), n, catalogo(), nil); !errors.Is(err, costing.ErrDataIntegrity) {
			t.Errorf("batch_count=%d: quería ErrDataIntegrity, dio %v", n, err)
		}
	}
}
