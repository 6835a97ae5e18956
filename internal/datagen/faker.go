//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities.
package datagen

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Faker provides fake data generation using gofakeit. A Faker is the only
// source of randomness for a generation run and is passed explicitly to
// every step that needs it.
type Faker struct {
	faker *gofakeit.Faker
	title cases.Caser
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
		title: cases.Title(language.English),
	}
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// TitleWord generates a random word with its first letter upper-cased.
func (f *Faker) TitleWord() string {
	return f.title.String(f.faker.Word())
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Money generates a random amount between min and max rounded to cents.
func (f *Faker) Money(min, max float64) float64 {
	return RoundCents(f.Float64(min, max))
}

// DayBetween returns a calendar day chosen uniformly from the whole days
// in [start, end]. Both bounds are truncated to midnight UTC first, so the
// result never precedes start's day. If end is before start, start's day is
// returned.
func (f *Faker) DayBetween(start, end time.Time) time.Time {
	start = Day(start)
	end = Day(end)
	if !end.After(start) {
		return start
	}
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, f.Int(0, days))
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}
