//-------------------------------------------------------------------------
//
// pgEdge Shop Data
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package shop implements the synthetic e-commerce dataset: its entities,
// the seeded generator, the relational schema and the built-in analytic
// queries.
package shop

import (
	"strconv"
	"time"
)

// DateLayout is the on-disk format for every date column.
const DateLayout = "2006-01-02"

// Customer is a registered shopper.
type Customer struct {
	ID         string
	Name       string
	Email      string
	SignupDate time.Time
	Country    string
}

// Product is a catalog item.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Stock    int
}

// Order is an order header placed by a customer.
type Order struct {
	ID          string
	CustomerID  string
	OrderDate   time.Time
	TotalAmount float64
}

// Transaction is a payment attempt against an order.
type Transaction struct {
	ID            string
	OrderID       string
	PaymentMethod string
	PaymentStatus string
}

// Review is a customer's rating of a product.
type Review struct {
	ID         string
	ProductID  string
	CustomerID string
	Rating     int
	Text       string
	ReviewDate time.Time
}

// Dataset holds one generation run's tables in generation order.
type Dataset struct {
	Customers    []Customer
	Products     []Product
	Orders       []Order
	Transactions []Transaction
	Reviews      []Review
}

// Counts returns the number of records per table name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		TableCustomers:    len(d.Customers),
		TableProducts:     len(d.Products),
		TableOrders:       len(d.Orders),
		TableTransactions: len(d.Transactions),
		TableReviews:      len(d.Reviews),
	}
}

// Rows returns the text records for the named table, in the column order
// of its Table definition. Unknown names yield nil.
func (d *Dataset) Rows(table string) [][]string {
	var rows [][]string
	switch table {
	case TableCustomers:
		rows = make([][]string, 0, len(d.Customers))
		for _, c := range d.Customers {
			rows = append(rows, c.Record())
		}
	case TableProducts:
		rows = make([][]string, 0, len(d.Products))
		for _, p := range d.Products {
			rows = append(rows, p.Record())
		}
	case TableOrders:
		rows = make([][]string, 0, len(d.Orders))
		for _, o := range d.Orders {
			rows = append(rows, o.Record())
		}
	case TableTransactions:
		rows = make([][]string, 0, len(d.Transactions))
		for _, t := range d.Transactions {
			rows = append(rows, t.Record())
		}
	case TableReviews:
		rows = make([][]string, 0, len(d.Reviews))
		for _, r := range d.Reviews {
			rows = append(rows, r.Record())
		}
	}
	return rows
}

// Record returns the customer as a text record.
func (c Customer) Record() []string {
	return []string{c.ID, c.Name, c.Email, c.SignupDate.Format(DateLayout), c.Country}
}

// Record returns the product as a text record.
func (p Product) Record() []string {
	return []string{p.ID, p.Name, p.Category, formatMoney(p.Price), strconv.Itoa(p.Stock)}
}

// Record returns the order as a text record.
func (o Order) Record() []string {
	return []string{o.ID, o.CustomerID, o.OrderDate.Format(DateLayout), formatMoney(o.TotalAmount)}
}

// Record returns the transaction as a text record.
func (t Transaction) Record() []string {
	return []string{t.ID, t.OrderID, t.PaymentMethod, t.PaymentStatus}
}

// Record returns the review as a text record.
func (r Review) Record() []string {
	return []string{
		r.ID, r.ProductID, r.CustomerID, strconv.Itoa(r.Rating), r.Text,
		r.ReviewDate.Format(DateLayout),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
