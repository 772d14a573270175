package collector

import "testing"

func TestFaultBudgetSpendClampsAtZero(t *testing.T) {
	b := NewFaultBudget(2)
	b.Spend()
	b.Spend()
	if !b.Exhausted() {
		t.Fatal("budget should be exhausted after ceiling spends")
	}
	b.Spend()
	if b.Remaining() != 0 {
		t.Errorf("budget went negative: %d", b.Remaining())
	}
}

func TestFaultBudgetResetRefillsToCeiling(t *testing.T) {
	b := NewFaultBudget(5)
	b.Spend()
	b.Spend()
	b.Reset()
	if b.Remaining() != 5 {
		t.Errorf("expected 5 after reset, got %d", b.Remaining())
	}
	if b.Exhausted() {
		t.Error("reset budget should not be exhausted")
	}
}

func TestFaultBudgetInvalidCeilingDefaultsToOne(t *testing.T) {
	b := NewFaultBudget(0)
	if b.Exhausted() {
		t.Fatal("fresh budget must not start exhausted")
	}
	b.Spend()
	if !b.Exhausted() {
		t.Error("ceiling 0 should behave as ceiling 1")
	}
}
