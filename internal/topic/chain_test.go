package topic

import (
	"testing"

	"github.com/abhisek/numbernexus/internal/problemgen"
)

func TestAll_Order(t *testing.T) {
	want := []ID{Addition, Subtraction, Multiplication, Division}
	got := IDs()
	if len(got) != len(want) {
		t.Fatalf("got %d topics, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("topic %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	if DisplayName(Addition) != "Addition" {
		t.Error("All() must not expose the internal chain")
	}
}

func TestPrerequisite(t *testing.T) {
	if _, ok := Prerequisite(Addition); ok {
		t.Error("addition should have no prerequisite")
	}
	p, ok := Prerequisite(Division)
	if !ok || p.ID != Multiplication {
		t.Errorf("Prerequisite(division) = %q, %v; want multiplication", p.ID, ok)
	}
	if _, ok := Prerequisite("fractions"); ok {
		t.Error("unknown topic should have no prerequisite")
	}
}

func TestNext(t *testing.T) {
	n, ok := Next(Addition)
	if !ok || n.ID != Subtraction {
		t.Errorf("Next(addition) = %q, %v", n.ID, ok)
	}
	if _, ok := Next(Division); ok {
		t.Error("division is the last topic")
	}
}

func TestGet_NotFound(t *testing.T) {
	if _, err := Get("geometry"); err == nil {
		t.Fatal("expected error for unknown topic")
	}
	if Valid("geometry") {
		t.Error("Valid(geometry) = true")
	}
	if Index("geometry") != -1 {
		t.Error("Index(geometry) != -1")
	}
}

func TestOperationMapping(t *testing.T) {
	for _, op := range problemgen.AllOperations() {
		id := ForOperation(op)
		tp, err := Get(id)
		if err != nil {
			t.Fatalf("no topic for operation %q", op)
		}
		if tp.Operation() != op {
			t.Errorf("Operation() = %q, want %q", tp.Operation(), op)
		}
		if tp.Symbol != op.Symbol() {
			t.Errorf("%s symbol = %q, want %q", id, tp.Symbol, op.Symbol())
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(All()); err != nil {
		t.Fatalf("built-in chain invalid: %v", err)
	}

	bad := []Topic{
		{ID: Addition, Prerequisite: Division},
		{ID: Subtraction, Prerequisite: Multiplication},
		{ID: Subtraction, Prerequisite: Subtraction},
	}
	if err := Validate(bad); err == nil {
		t.Error("expected validation errors")
	}
}
