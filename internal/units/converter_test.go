package units

import (
	"errors"
	"math"
	"testing"

	"panaderia-backend/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestConvertWithinDimension(t *testing.T) {
	cases := []struct {
		value    float64
		from, to string
		want     float64
	}{
		{1, "kg", "g", 1000},
		{1500, "g", "kg", 1.5},
		{1, "l", "ml", 1000},
		{2, "cup", "ml", 480},
		{3, "tbsp", "tsp", 9},
		{1, "docena", "unidad", 12},
		{24, "unidad", "docena", 2},
		{1, "lb", "oz", 453.592 / 28.3495},
	}

	for _, tc := range cases {
		got, err := Convert(Quantity{Value: tc.value, Unit: tc.from}, tc.to)
		if err != nil {
			t.Fatalf("Convert(%v %s → %s): %v", tc.value, tc.from, tc.to, err)
		}
		if !almostEqual(got.Value, tc.want) {
			t.Errorf("Convert(%v %s → %s) = %v, quería %v", tc.value, tc.from, tc.to, got.Value, tc.want)
		}
		if got.Unit != tc.to {
			t.Errorf("Convert(%v %s → %s) devolvió unidad %q", tc.value, tc.from, tc.to, got.Unit)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Ida y vuelta dentro de cada dimensión debe regresar al valor original
	pairs := [][2]string{
		{"g", "kg"}, {"g", "lb"}, {"oz", "kg"},
		{"ml", "l"}, {"tsp", "cup"}, {"tbsp", "ml"},
		{"unidad", "docena"},
	}
	for _, p := range pairs {
		const x = 7.25
		there, err := Convert(Quantity{Value: x, Unit: p[0]}, p[1])
		if err != nil {
			t.Fatalf("%s → %s: %v", p[0], p[1], err)
		}
		back, err := Convert(there, p[0])
		if err != nil {
			t.Fatalf("%s → %s: %v", p[1], p[0], err)
		}
		if !almostEqual(back.Value, x) {
			t.Errorf("ida y vuelta %s↔%s: %v, quería %v", p[0], p[1], back.Value, x)
		}
	}
}

func TestConvertCrossDimensionFails(t *testing.T) {
	_, err := Convert(Quantity{Value: 100, Unit: "g"}, "ml")
	if !errors.Is(err, ErrUnsupportedConversion) {
		t.Fatalf("masa → volumen debe fallar con ErrUnsupportedConversion, dio %v", err)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	if _, err := Convert(Quantity{Value: 1, Unit: "puñado"}, "g"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("unidad de origen desconocida: quería ErrUnknownUnit, dio %v", err)
	}
	if _, err := Convert(Quantity{Value: 1, Unit: "g"}, "puñado"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("unidad destino desconocida: quería ErrUnknownUnit, dio %v", err)
	}
}

func TestConvertToStandardTableUnits(t *testing.T) {
	// Factor global, no necesita ingrediente
	got, err := ConvertToStandard(2, "docena", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 24 || got.Unit != "unidad" {
		t.Errorf("2 docena = %v %s, quería 24 unidad", got.Value, got.Unit)
	}

	got, err = ConvertToStandard(1.5, "kg", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 1500 || got.Unit != "g" {
		t.Errorf("1.5 kg = %v %s, quería 1500 g", got.Value, got.Unit)
	}
}

func TestConvertToStandardContainer(t *testing.T) {
	contains := 500.0
	harina := models.Ingredient{
		Name:           "Harina",
		Unit:           "bolsa",
		ContainsAmount: &contains,
		ContainsUnit:   "g",
	}

	got, err := ConvertToStandard(3, "bolsa", &harina)
	if err != nil {
		t.Fatal(err)
	}
	if got.Value != 1500 || got.Unit != "g" {
		t.Errorf("3 bolsas de 500 g = %v %s, quería 1500 g", got.Value, got.Unit)
	}
}

func TestConvertToStandardContainerInvalid(t *testing.T) {
	// Contenedor sin ingrediente dueño
	if _, err := ConvertToStandard(1, "bolsa", nil); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("bolsa sin ingrediente: quería ErrInvalidContainer, dio %v", err)
	}

	// Contenedor sin contenido declarado
	sinContenido := models.Ingredient{Name: "Azúcar", Unit: "paquete"}
	if _, err := ConvertToStandard(1, "paquete", &sinContenido); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("paquete sin contains_amount: quería ErrInvalidContainer, dio %v", err)
	}

	// Contenido declarado en otra unidad contenedor
	contains := 2.0
	anidado := models.Ingredient{Name: "Caja rara", Unit: "caja", ContainsAmount: &contains, ContainsUnit: "bolsa"}
	if _, err := ConvertToStandard(1, "caja", &anidado); !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("contenedor anidado: quería ErrInvalidContainer, dio %v", err)
	}
}

func TestUnitClassification(t *testing.T) {
	if !IsStandard("g") || !IsStandard("docena") {
		t.Error("g y docena son unidades de tabla")
	}
	if IsStandard("bolsa") {
		t.Error("bolsa no es unidad de tabla")
	}
	if !IsContainer("bolsa") || !IsContainer("sobre") {
		t.Error("bolsa y sobre son contenedores")
	}
	if !IsKnown("bolsa") || !IsKnown("kg") {
		t.Error("bolsa y kg son unidades conocidas")
	}
	if IsKnown("puñado") {
		t.Error("puñado no debería ser unidad conocida")
	}
}
