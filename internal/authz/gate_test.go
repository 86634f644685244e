package authz

import "testing"

func TestHasAnyNoRequirementAllows(t *testing.T) {
	if !HasAny(nil) {
		t.Fatal("empty requirement should allow")
	}
	if !HasAny([]string{"stock_view_all"}) {
		t.Fatal("empty requirement should allow regardless of held set")
	}
}

func TestHasAnyEmptyHeldDenies(t *testing.T) {
	if HasAny(nil, "stock_approve") {
		t.Fatal("nil held set should deny")
	}
	if HasAny([]string{}, "stock_approve") {
		t.Fatal("empty held set should deny")
	}
}

func TestHasAnyMatchesAnyOne(t *testing.T) {
	held := []string{"stock_submit", "inventory_view"}
	if !HasAny(held, "stock_approve", "inventory_view") {
		t.Fatal("should allow when any required code is held")
	}
	if HasAny(held, "stock_approve", "user_manage") {
		t.Fatal("should deny when no required code is held")
	}
}

func TestHasAnyIgnoresEmptyHeldCodes(t *testing.T) {
	if HasAny([]string{""}, "") {
		t.Fatal("empty held code should not satisfy an empty requirement string")
	}
}
