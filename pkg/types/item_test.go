package types

import (
	"errors"
	"testing"
)

func testSchema(t *testing.T) (*Registry, *Category) {
	t.Helper()
	r := NewRegistry()
	id, err := r.Define(PropertySpec{Name: "ID", Mandatory: true, NoEdit: true})
	if err != nil {
		t.Fatal(err)
	}
	length, err := r.Define(PropertySpec{Name: "length", ValueType: ValueTypeInteger, Unit: "cm"})
	if err != nil {
		t.Fatal(err)
	}
	return r, NewCategory("FR", "Manual wheelchairs", []*PropertyDefinition{id, length})
}

func TestNewItemMandatoryValidation(t *testing.T) {
	_, cat := testSchema(t)

	_, err := NewItem(cat, map[string]any{"length": 45})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("NewItem without ID: error = %v, want *ValidationError", err)
	}
	if len(verr.Missing) != 1 || verr.Missing[0] != "ID" {
		t.Errorf("Missing = %v, want [ID]", verr.Missing)
	}

	it, err := NewItem(cat, map[string]any{"ID": "FR 103", "length": 45})
	if err != nil {
		t.Fatalf("NewItem with all mandatory values: %v", err)
	}
	pv, ok := it.Lookup("length")
	if !ok || pv.Value != int64(45) {
		t.Errorf("length = %v, want 45", pv)
	}
}

func TestNewItemCollectsAllMissing(t *testing.T) {
	r := NewRegistry()
	a, _ := r.Define(PropertySpec{Name: "alpha", Mandatory: true})
	b, _ := r.Define(PropertySpec{Name: "beta", Mandatory: true})
	cat := NewCategory("AB", "two mandatory", []*PropertyDefinition{a, b})

	_, err := NewItem(cat, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if len(verr.Missing) != 2 {
		t.Errorf("Missing = %v, want both mandatory names", verr.Missing)
	}
}

func TestNewItemDropsUndeclaredProperties(t *testing.T) {
	_, cat := testSchema(t)
	it, err := NewItem(cat, map[string]any{"ID": "FR 104", "color": "red"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := it.Lookup("color"); ok {
		t.Error("undeclared property should be silently dropped")
	}
}

func TestNewEmptyItem(t *testing.T) {
	_, cat := testSchema(t)
	it := NewEmptyItem(cat)
	if len(it.Values) != 2 {
		t.Fatalf("empty item should carry every category property, got %d", len(it.Values))
	}
	for _, pv := range it.Values {
		if !pv.IsEmpty() {
			t.Errorf("property %s should start empty", pv.Definition.SpecialName)
		}
	}
}

func TestItemValueMaterializesLazily(t *testing.T) {
	r, cat := testSchema(t)
	it, err := NewItem(cat, map[string]any{"ID": "FR 105"})
	if err != nil {
		t.Fatal(err)
	}
	length := r.Get("length")
	if it.HasProperty(length) {
		t.Fatal("length should be unset before first access")
	}
	pv := it.Value(length)
	if pv == nil || !pv.IsEmpty() {
		t.Fatal("first access should materialize an empty holder")
	}
	if !it.HasProperty(length) {
		t.Error("holder should persist after materialization")
	}
	if it.Value(length) != pv {
		t.Error("second access should return the same holder")
	}
}

func TestItemRemovePropertyMandatoryGuard(t *testing.T) {
	r, cat := testSchema(t)
	it, err := NewItem(cat, map[string]any{"ID": "FR 106", "length": 50})
	if err != nil {
		t.Fatal(err)
	}

	err = it.RemoveProperty(r.Get("ID"), false)
	var merr *MandatoryPropertyError
	if !errors.As(err, &merr) {
		t.Fatalf("removing mandatory property: error = %v, want *MandatoryPropertyError", err)
	}
	if err := it.RemoveProperty(r.Get("ID"), true); err != nil {
		t.Fatalf("override removal failed: %v", err)
	}
	if err := it.RemoveProperty(r.Get("length"), false); err != nil {
		t.Fatalf("removing optional property: %v", err)
	}
	// Absent property removal is a no-op.
	if err := it.RemoveProperty(r.Get("length"), false); err != nil {
		t.Fatalf("second removal should be a no-op, got %v", err)
	}
}

func TestItemNotes(t *testing.T) {
	_, cat := testSchema(t)
	it := NewEmptyItem(cat)
	it.AddNote("left brake squeaks", 100)
	it.AddNote("fixed", 200)
	it.AddNote("still squeaks", 200) // colliding timestamp overwrites

	if got := it.Notes[200]; got != "still squeaks" {
		t.Errorf("colliding note = %q, want overwrite", got)
	}
	if ts := it.NoteTimestamps(); len(ts) != 2 || ts[0] != 100 || ts[1] != 200 {
		t.Errorf("NoteTimestamps = %v, want [100 200]", ts)
	}
	it.RemoveNote(100)
	it.RemoveNote(999) // absent key is a no-op
	if len(it.Notes) != 1 {
		t.Errorf("notes after removal = %d, want 1", len(it.Notes))
	}
}

func TestCategoryMembership(t *testing.T) {
	r, cat := testSchema(t)
	weight, _ := r.Define(PropertySpec{Name: "weight", ValueType: ValueTypeFloat, Unit: "kg"})

	if !cat.AddProperty(weight) {
		t.Fatal("adding a new property should report true")
	}
	if cat.AddProperty(weight) {
		t.Error("duplicate add should report false")
	}
	if got := len(cat.PropertiesOrder); got != 3 {
		t.Fatalf("order length = %d, want 3", got)
	}
	if cat.PropertiesOrder[2] != weight {
		t.Error("new property should append at the end of the order")
	}
	if !cat.RemoveProperty(weight) {
		t.Fatal("removing a present property should report true")
	}
	if cat.RemoveProperty(weight) {
		t.Error("removing an absent property should report false")
	}
	if cat.Has(weight) {
		t.Error("removed property should not remain a member")
	}
}
