package typeid

import (
	"strings"
	"testing"
)

func TestNewChartID(t *testing.T) {
	id := NewChartID()
	if !strings.HasPrefix(id, PrefixChart+"_") {
		t.Fatalf("id %q lacks prefix", id)
	}
	if err := Validate(id, PrefixChart); err != nil {
		t.Errorf("Validate(%q): %v", id, err)
	}
	if err := Validate(id, PrefixExport); err == nil {
		t.Error("Validate should reject a foreign prefix")
	}
	if NewChartID() == id {
		t.Error("ids must be unique")
	}
}

func TestValidateGarbage(t *testing.T) {
	if err := Validate("not an id", PrefixChart); err == nil {
		t.Error("expected error")
	}
}
