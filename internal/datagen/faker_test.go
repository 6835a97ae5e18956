//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
	"unicode"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
	if f1.Name() != f2.Name() {
		t.Error("Same seed produced different names")
	}
	if f1.TitleWord() != f2.TitleWord() {
		t.Error("Same seed produced different words")
	}
}

func TestFakerName(t *testing.T) {
	f := NewFaker()
	if f.Name() == "" {
		t.Error("Name returned empty string")
	}
}

func TestFakerEmail(t *testing.T) {
	f := NewFaker()
	email := f.Email()
	if email == "" {
		t.Error("Email returned empty string")
	}
	// Basic email format check
	if len(email) < 5 {
		t.Error("Email too short")
	}
}

func TestFakerTitleWord(t *testing.T) {
	f := NewFakerWithSeed(7)
	for i := 0; i < 50; i++ {
		w := f.TitleWord()
		if w == "" {
			t.Fatal("TitleWord returned empty string")
		}
		first := []rune(w)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			t.Errorf("TitleWord %q does not start with an upper-case letter", w)
		}
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Int(5, 10)
		if v < 5 || v > 10 {
			t.Errorf("Int %d not in range [5, 10]", v)
		}
	}
}

func TestFakerFloat64(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Float64(1.5, 3.5)
		if v < 1.5 || v > 3.5 {
			t.Errorf("Float64 %f not in range [1.5, 3.5]", v)
		}
	}
}

func TestFakerMoney(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 200; i++ {
		v := f.Money(10, 500)
		if v < 10 || v > 500 {
			t.Errorf("Money %f not in range [10, 500]", v)
		}
		if RoundCents(v) != v {
			t.Errorf("Money %v has more than two decimals", v)
		}
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.344, 12.34},
		{12.345001, 12.35},
		{0.004, 0},
		{499.999, 500},
		{20, 20},
	}
	for _, tt := range tests {
		if got := RoundCents(tt.in); got != tt.want {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDay(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 59, 59, 5, time.UTC)
	got := Day(in)
	want := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestFakerDayBetween(t *testing.T) {
	f := NewFaker()
	start := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)

	seen := make(map[time.Time]bool)
	for i := 0; i < 500; i++ {
		d := f.DayBetween(start, end)
		if d.Before(Day(start)) || d.After(Day(end)) {
			t.Fatalf("DayBetween returned %v outside [%v, %v]", d, Day(start), Day(end))
		}
		if !d.Equal(Day(d)) {
			t.Fatalf("DayBetween returned %v, which is not midnight", d)
		}
		seen[d] = true
	}
	// Both bounds are reachable
	if !seen[Day(start)] || !seen[Day(end)] {
		t.Errorf("DayBetween did not reach both bounds in 500 draws: %v", seen)
	}
}

func TestFakerDayBetweenInverted(t *testing.T) {
	f := NewFaker()
	start := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -3)
	if d := f.DayBetween(start, end); !d.Equal(start) {
		t.Errorf("DayBetween with end before start = %v, want %v", d, start)
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c", "d", "e"}

	for i := 0; i < 100; i++ {
		chosen := Choose(f, items)
		found := false
		for _, item := range items {
			if item == chosen {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Choose returned item not in slice: %s", chosen)
		}
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFaker()
	var items []string

	chosen := Choose(f, items)
	if chosen != "" {
		t.Errorf("Choose on empty slice should return zero value, got: %s", chosen)
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}
	weights := []int{1, 2, 7} // c should be chosen ~70% of the time

	counts := make(map[string]int)
	iterations := 1000

	for i := 0; i < iterations; i++ {
		chosen := ChooseWeighted(f, items, weights)
		counts[chosen]++
	}

	// c should be most common
	if counts["c"] < counts["a"] || counts["c"] < counts["b"] {
		t.Errorf("Weighted choice distribution unexpected: %v", counts)
	}
}

func TestChooseWeightedZeroWeight(t *testing.T) {
	f := NewFaker()
	items := []string{"never", "always"}
	weights := []int{0, 1}

	for i := 0; i < 100; i++ {
		if got := ChooseWeighted(f, items, weights); got != "always" {
			t.Fatalf("ChooseWeighted picked zero-weight item %q", got)
		}
	}
}

func TestChooseWeightedEmpty(t *testing.T) {
	f := NewFaker()
	var items []string
	var weights []int

	chosen := ChooseWeighted(f, items, weights)
	if chosen != "" {
		t.Errorf("ChooseWeighted on empty slices should return zero value, got: %s", chosen)
	}
}

func TestProgressReporter(t *testing.T) {
	p := NewProgressReporter("customers", "generate", 10, 3)
	for i := 0; i < 10; i++ {
		p.Update(1)
	}
	if p.Rows() != 10 {
		t.Errorf("Rows() = %d, want 10", p.Rows())
	}
	p.Done()

	// Zero interval must not divide by zero
	q := NewProgressReporter("orders", "load", 0, 0)
	q.Update(5)
	if q.Rows() != 5 {
		t.Errorf("Rows() = %d, want 5", q.Rows())
	}
}

// Benchmarks
func BenchmarkFakerInt(b *testing.B) {
	f := NewFaker()
	for i := 0; i < b.N; i++ {
		f.Int(0, 1000)
	}
}

func BenchmarkChooseWeighted(b *testing.B) {
	f := NewFaker()
	items := []string{"a", "b", "c", "d"}
	weights := []int{85, 10, 4, 1}
	for i := 0; i < b.N; i++ {
		ChooseWeighted(f, items, weights)
	}
}
