//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package shop

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-shopdata/internal/datagen"
	"github.com/pgEdge/pgedge-shopdata/internal/logging"
)

// GeneratorConfig controls the size and time span of a generated dataset.
type GeneratorConfig struct {
	// MinRows and MaxRows bound each table's row count (inclusive).
	MinRows int
	MaxRows int

	// HistoryYears is how far before AsOf customer signups may fall.
	HistoryYears int

	// AsOf is the "now" of the dataset. No generated date is later than
	// AsOf's calendar day.
	AsOf time.Time
}

// DefaultGeneratorConfig returns the standard 50-100 rows per table over
// three years of history ending today.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinRows:      50,
		MaxRows:      100,
		HistoryYears: 3,
		AsOf:         time.Now().UTC(),
	}
}

// Validate checks that the configuration can produce a dataset.
func (c GeneratorConfig) Validate() error {
	if c.MinRows < 1 {
		return fmt.Errorf("min rows must be at least 1, got %d", c.MinRows)
	}
	if c.MaxRows < c.MinRows {
		return fmt.Errorf("max rows (%d) must be >= min rows (%d)", c.MaxRows, c.MinRows)
	}
	if c.HistoryYears < 0 {
		return fmt.Errorf("history years must be non-negative, got %d", c.HistoryYears)
	}
	if c.AsOf.IsZero() {
		return fmt.Errorf("as-of date is required")
	}
	return nil
}

// Generator generates the synthetic e-commerce dataset.
type Generator struct {
	faker *datagen.Faker
	cfg   GeneratorConfig
	asOf  time.Time
}

// NewGenerator creates a generator drawing all randomness from faker.
func NewGenerator(faker *datagen.Faker, cfg GeneratorConfig) (*Generator, error) {
	if faker == nil {
		return nil, fmt.Errorf("faker is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		faker: faker,
		cfg:   cfg,
		asOf:  datagen.Day(cfg.AsOf),
	}, nil
}

// Generate produces all five tables. Parents are generated before the
// tables that reference them and are indexed once for child sampling.
func (g *Generator) Generate() (*Dataset, error) {
	logging.Info().
		Int("min_rows", g.cfg.MinRows).
		Int("max_rows", g.cfg.MaxRows).
		Str("as_of", g.asOf.Format(DateLayout)).
		Msg("Generating shop data")

	ds := &Dataset{}
	ds.Customers = g.generateCustomers(g.rowCount())
	ds.Products = g.generateProducts(g.rowCount())

	customers := NewIndex(TableCustomers, ds.Customers, func(c Customer) string { return c.ID })
	products := NewIndex(TableProducts, ds.Products, func(p Product) string { return p.ID })

	var err error
	ds.Orders, err = g.generateOrders(g.rowCount(), customers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate orders: %w", err)
	}

	orders := NewIndex(TableOrders, ds.Orders, func(o Order) string { return o.ID })

	ds.Transactions, err = g.generateTransactions(g.rowCount(), orders)
	if err != nil {
		return nil, fmt.Errorf("failed to generate transactions: %w", err)
	}

	ds.Reviews, err = g.generateReviews(g.rowCount(), products, customers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reviews: %w", err)
	}

	return ds, nil
}

func (g *Generator) rowCount() int {
	return g.faker.Int(g.cfg.MinRows, g.cfg.MaxRows)
}

func (g *Generator) generateCustomers(count int) []Customer {
	progress := datagen.NewProgressReporter(TableCustomers, "generate", int64(count), 0)
	signupStart := g.asOf.AddDate(-g.cfg.HistoryYears, 0, 0)

	customers := make([]Customer, 0, count)
	for i := 1; i <= count; i++ {
		customers = append(customers, Customer{
			ID:         fmt.Sprintf("CUST%04d", i),
			Name:       g.faker.Name(),
			Email:      g.faker.Email(),
			SignupDate: g.faker.DayBetween(signupStart, g.asOf),
			Country:    datagen.Choose(g.faker, countries),
		})
		progress.Update(1)
	}
	progress.Done()
	return customers
}

func (g *Generator) generateProducts(count int) []Product {
	progress := datagen.NewProgressReporter(TableProducts, "generate", int64(count), 0)

	products := make([]Product, 0, count)
	for i := 1; i <= count; i++ {
		category := datagen.Choose(g.faker, productCategories)
		base := datagen.Choose(g.faker, productNames[category])

		products = append(products, Product{
			ID:       fmt.Sprintf("PROD%04d", i),
			Name:     fmt.Sprintf("%s - %s", base, g.faker.TitleWord()),
			Category: category,
			Price:    g.faker.Money(10, 500),
			Stock:    g.faker.Int(0, 500),
		})
		progress.Update(1)
	}
	progress.Done()
	return products
}

func (g *Generator) generateOrders(count int, customers *Index[Customer]) ([]Order, error) {
	progress := datagen.NewProgressReporter(TableOrders, "generate", int64(count), 0)

	orders := make([]Order, 0, count)
	for i := 1; i <= count; i++ {
		customer, err := customers.Pick(g.faker)
		if err != nil {
			return nil, err
		}

		orders = append(orders, Order{
			ID:          fmt.Sprintf("ORD%05d", i),
			CustomerID:  customer.ID,
			OrderDate:   g.faker.DayBetween(customer.SignupDate, g.asOf),
			TotalAmount: g.faker.Money(20, 1000),
		})
		progress.Update(1)
	}
	progress.Done()
	return orders, nil
}

func (g *Generator) generateTransactions(count int, orders *Index[Order]) ([]Transaction, error) {
	progress := datagen.NewProgressReporter(TableTransactions, "generate", int64(count), 0)

	transactions := make([]Transaction, 0, count)
	for i := 1; i <= count; i++ {
		// An order may be paid zero, one or several times.
		order, err := orders.Pick(g.faker)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, Transaction{
			ID:            fmt.Sprintf("TXN%05d", i),
			OrderID:       order.ID,
			PaymentMethod: datagen.Choose(g.faker, paymentMethods),
			PaymentStatus: datagen.ChooseWeighted(g.faker, paymentStatuses, paymentWeights),
		})
		progress.Update(1)
	}
	progress.Done()
	return transactions, nil
}

func (g *Generator) generateReviews(count int, products *Index[Product], customers *Index[Customer]) ([]Review, error) {
	progress := datagen.NewProgressReporter(TableReviews, "generate", int64(count), 0)

	reviews := make([]Review, 0, count)
	for i := 1; i <= count; i++ {
		// Product and customer are independent; the reviewer need not
		// have ordered the product.
		product, err := products.Pick(g.faker)
		if err != nil {
			return nil, err
		}
		customer, err := customers.Pick(g.faker)
		if err != nil {
			return nil, err
		}
		rating := g.faker.Int(1, 5)

		reviews = append(reviews, Review{
			ID:         fmt.Sprintf("REV%05d", i),
			ProductID:  product.ID,
			CustomerID: customer.ID,
			Rating:     rating,
			Text:       datagen.Choose(g.faker, ReviewPool(SentimentFor(rating))),
			ReviewDate: g.faker.DayBetween(customer.SignupDate, g.asOf),
		})
		progress.Update(1)
	}
	progress.Done()
	return reviews, nil
}
