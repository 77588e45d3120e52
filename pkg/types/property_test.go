package types

import (
	"errors"
	"testing"
)

func TestRegistryDefine(t *testing.T) {
	tests := []struct {
		name    string
		spec    PropertySpec
		wantErr error
	}{
		{"plain string property", PropertySpec{Name: "color"}, nil},
		{"integer with unit", PropertySpec{Name: "length", ValueType: ValueTypeInteger, Unit: "cm"}, nil},
		{"select options", PropertySpec{Name: "state", Select: []string{"new", "used"}}, nil},
		{"empty name", PropertySpec{Name: ""}, ErrInvalidName},
		{"punctuation-only name", PropertySpec{Name: "!!!"}, ErrInvalidName},
		{"unknown value type", PropertySpec{Name: "x", ValueType: "date"}, ErrInvalidValueType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			def, err := r.Define(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Define error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if def.SpecialName != NormalizeName(tt.spec.Name) {
				t.Errorf("SpecialName = %q, want %q", def.SpecialName, NormalizeName(tt.spec.Name))
			}
			if tt.spec.ValueType == "" && def.ValueType != ValueTypeString {
				t.Errorf("empty value type should default to string, got %q", def.ValueType)
			}
		})
	}
}

func TestRegistryGetCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	def, err := r.Define(PropertySpec{Name: "Numéro de série"})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Numéro de série", "numerodeserie", "NUMERODESERIE", "Numero de Serie"} {
		if r.Get(name) != def {
			t.Errorf("Get(%q) did not resolve the definition", name)
		}
	}
	if r.Get("unknown") != nil {
		t.Error("Get of unknown name should return nil")
	}
}

func TestRegistryDefineReplacesExistingKey(t *testing.T) {
	r := NewRegistry()
	first, _ := r.Define(PropertySpec{Name: "width"})
	second, _ := r.Define(PropertySpec{Name: "width", ValueType: ValueTypeFloat})
	if r.Get("width") != second {
		t.Error("redefining a name should replace the registry entry")
	}
	if first == second {
		t.Error("redefinition should produce a distinct definition")
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name      string
		valueType string
		in        any
		want      any
		wantErr   error
	}{
		{"string passthrough", ValueTypeString, "FR 103", "FR 103", nil},
		{"string rejects int", ValueTypeString, 3, nil, ErrTypeMismatch},
		{"integer from int", ValueTypeInteger, 45, int64(45), nil},
		{"integer from whole float", ValueTypeInteger, float64(45), int64(45), nil},
		{"integer rejects fraction", ValueTypeInteger, 4.5, nil, ErrTypeMismatch},
		{"integer from numeric string", ValueTypeInteger, "45", int64(45), nil},
		{"integer from empty string", ValueTypeInteger, "", nil, nil},
		{"float from int", ValueTypeFloat, 2, float64(2), nil},
		{"float from string", ValueTypeFloat, "4.5", 4.5, nil},
		{"nil stays nil", ValueTypeString, nil, nil, nil},
		{"unknown type", "date", "x", nil, ErrInvalidValueType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.valueType, tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Coerce error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("Coerce = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestPropertyValueString(t *testing.T) {
	def := &PropertyDefinition{Name: "length", SpecialName: "length", ValueType: ValueTypeInteger, Unit: "cm"}
	pv := NewValue(def, 45)
	if got := pv.String(); got != "45 cm" {
		t.Errorf("String() = %q, want %q", got, "45 cm")
	}
	if EmptyValue(def).String() != "" {
		t.Error("empty value should render as empty string")
	}
}
