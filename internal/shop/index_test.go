package shop

import (
	"errors"
	"testing"

	"github.com/pgEdge/pgedge-shopdata/internal/datagen"
)

func TestIndexLookup(t *testing.T) {
	customers := []Customer{
		{ID: "CUST0001", Name: "Ada"},
		{ID: "CUST0002", Name: "Grace"},
	}
	idx := NewIndex(TableCustomers, customers, func(c Customer) string { return c.ID })

	if idx.Len() != 2 {
		t.Errorf("Expected 2 keys, got %d", idx.Len())
	}
	c, ok := idx.Lookup("CUST0002")
	if !ok || c.Name != "Grace" {
		t.Errorf("Lookup(CUST0002) = %+v, %v", c, ok)
	}
	if _, ok := idx.Lookup("CUST9999"); ok {
		t.Error("Lookup should miss unknown key")
	}
}

func TestIndexDuplicateKeys(t *testing.T) {
	orders := []Order{{ID: "ORD00001"}, {ID: "ORD00001", CustomerID: "CUST0009"}}
	idx := NewIndex(TableOrders, orders, func(o Order) string { return o.ID })

	if idx.Len() != 1 {
		t.Errorf("Expected 1 key, got %d", idx.Len())
	}
	if o, _ := idx.Lookup("ORD00001"); o.CustomerID != "CUST0009" {
		t.Errorf("Expected last record to win, got %+v", o)
	}
}

func TestIndexPick(t *testing.T) {
	products := []Product{{ID: "PROD0001"}, {ID: "PROD0002"}, {ID: "PROD0003"}}
	idx := NewIndex(TableProducts, products, func(p Product) string { return p.ID })
	f := datagen.NewFakerWithSeed(1)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p, err := idx.Pick(f)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		seen[p.ID] = true
	}
	if len(seen) != 3 {
		t.Errorf("Expected all 3 products to be picked, got %v", seen)
	}
}

func TestIndexPickEmpty(t *testing.T) {
	idx := NewIndex(TableProducts, nil, func(p Product) string { return p.ID })

	_, err := idx.Pick(datagen.NewFakerWithSeed(1))
	if !errors.Is(err, ErrEmptyPool) {
		t.Errorf("Expected ErrEmptyPool, got %v", err)
	}
}
