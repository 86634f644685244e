package service

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestRequestNoGeneratorFormat(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	gen := NewRequestNoGeneratorWith(func() time.Time { return fixed }, rand.NewSource(1))

	no := gen.Next()
	if !strings.HasPrefix(no, "SR20260314") {
		t.Fatalf("request no should start with SR+date, got: %s", no)
	}
	if len(no) != len("SR20060102")+requestNoSuffixLength {
		t.Fatalf("unexpected request no length: %s", no)
	}
	for _, ch := range no[len("SR20260314"):] {
		if !strings.ContainsRune(requestNoAlphabet, ch) {
			t.Fatalf("suffix contains invalid char %q in %s", ch, no)
		}
	}

	if second := gen.Next(); second == no {
		t.Fatalf("consecutive request nos should differ, both: %s", no)
	}
}

func TestRequestNoGeneratorDeterministicWithSeed(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	first := NewRequestNoGeneratorWith(func() time.Time { return fixed }, rand.NewSource(42)).Next()
	second := NewRequestNoGeneratorWith(func() time.Time { return fixed }, rand.NewSource(42)).Next()
	if first != second {
		t.Fatalf("same seed should yield same request no: %s vs %s", first, second)
	}
}

func TestRequestNoGeneratorDefaults(t *testing.T) {
	gen := NewRequestNoGeneratorWith(nil, nil)
	no := gen.Next()
	if !strings.HasPrefix(no, "SR") {
		t.Fatalf("request no should start with SR, got: %s", no)
	}
}
