package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/cascade/internal/core/domain"
)

func TestPropertyName(t *testing.T) {
	n1 := domain.NewPropertyName("FullName")
	n2 := domain.NewPropertyName("FullName")

	if n1 != n2 {
		t.Errorf("Expected names to be equal for identical strings, got %v and %v", n1, n2)
	}

	if n1.String() != "FullName" {
		t.Errorf("Expected String() to return %q, got %q", "FullName", n1.String())
	}

	if n1.IsZero() {
		t.Error("Expected non-empty name not to be zero")
	}
}

func TestPropertyName_Empty(t *testing.T) {
	var zero domain.PropertyName

	if !zero.IsZero() {
		t.Error("Expected zero value to be zero")
	}

	if zero.String() != "" {
		t.Errorf("Expected empty string, got %q", zero.String())
	}

	if domain.NewPropertyName("") != zero {
		t.Error("Expected empty string to intern to the zero value")
	}
}

func TestPropertyNameJSON(t *testing.T) {
	type event struct {
		Name domain.PropertyName `json:"name"`
	}

	data, err := json.Marshal(event{Name: domain.NewPropertyName("Total")})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if string(data) != `{"name":"Total"}` {
		t.Errorf("Expected JSON %q, got %q", `{"name":"Total"}`, string(data))
	}

	var decoded event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if decoded.Name != domain.NewPropertyName("Total") {
		t.Errorf("Expected decoded name Total, got %q", decoded.Name)
	}
}

func TestNewPropertyNames(t *testing.T) {
	names := domain.NewPropertyNames([]string{"A", "B", "A"})

	if len(names) != 3 {
		t.Fatalf("Expected 3 names, got %d", len(names))
	}

	if names[0] != names[2] {
		t.Error("Expected duplicate strings to intern to equal names")
	}

	if names[1].String() != "B" {
		t.Errorf("Expected B, got %q", names[1].String())
	}
}
