package shop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Table names.
const (
	TableCustomers    = "customers"
	TableProducts     = "products"
	TableOrders       = "orders"
	TableTransactions = "transactions"
	TableReviews      = "reviews"
)

// ErrHeaderMismatch is returned when a data file's header does not name the
// table's columns in order.
var ErrHeaderMismatch = errors.New("header does not match table columns")

// columnKind is how a column's text is converted for the store.
type columnKind int

const (
	kindText columnKind = iota
	kindDate
	kindMoney
	kindInt
)

// Column describes one table column.
type Column struct {
	Name string
	kind columnKind
}

// Table describes a destination table and its exported data file.
type Table struct {
	// Name is the table name in the store.
	Name string

	// File is the data file name relative to the data directory.
	File string

	// Columns lists the columns in file and COPY order.
	Columns []Column
}

// Tables lists every table parents first. Loading must follow this order so
// foreign-key targets always exist before the rows that reference them.
var Tables = []Table{
	{
		Name: TableCustomers,
		File: "customers.csv",
		Columns: []Column{
			{"customer_id", kindText},
			{"name", kindText},
			{"email", kindText},
			{"signup_date", kindDate},
			{"country", kindText},
		},
	},
	{
		Name: TableProducts,
		File: "products.csv",
		Columns: []Column{
			{"product_id", kindText},
			{"product_name", kindText},
			{"category", kindText},
			{"price", kindMoney},
			{"stock", kindInt},
		},
	},
	{
		Name: TableOrders,
		File: "orders.csv",
		Columns: []Column{
			{"order_id", kindText},
			{"customer_id", kindText},
			{"order_date", kindDate},
			{"total_amount", kindMoney},
		},
	},
	{
		Name: TableTransactions,
		File: "transactions.csv",
		Columns: []Column{
			{"transaction_id", kindText},
			{"order_id", kindText},
			{"payment_method", kindText},
			{"payment_status", kindText},
		},
	},
	{
		Name: TableReviews,
		File: "reviews.csv",
		Columns: []Column{
			{"review_id", kindText},
			{"product_id", kindText},
			{"customer_id", kindText},
			{"rating", kindInt},
			{"review_text", kindText},
			{"review_date", kindDate},
		},
	},
}

// LookupTable returns the table with the given name.
func LookupTable(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// TableNames returns the table names parents first.
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}

// ColumnNames returns the table's column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// CheckHeader verifies that header names the table's columns in order.
// Surrounding whitespace and a UTF-8 byte order mark are ignored.
func (t Table) CheckHeader(header []string) error {
	if len(header) != len(t.Columns) {
		return fmt.Errorf("%s: %w: got %d columns, want %d",
			t.Name, ErrHeaderMismatch, len(header), len(t.Columns))
	}
	for i, c := range t.Columns {
		got := strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
		if got != c.Name {
			return fmt.Errorf("%s: %w: column %d is %q, want %q",
				t.Name, ErrHeaderMismatch, i+1, got, c.Name)
		}
	}
	return nil
}

// Decode converts one text record into typed values ready for COPY. Dates
// become time.Time, money float64 and integers int32. Every column is
// required, so empty values are rejected.
func (t Table) Decode(record []string) ([]any, error) {
	if len(record) != len(t.Columns) {
		return nil, fmt.Errorf("got %d fields, want %d", len(record), len(t.Columns))
	}

	values := make([]any, len(record))
	for i, c := range t.Columns {
		raw := record[i]
		if strings.TrimSpace(raw) == "" {
			return nil, fmt.Errorf("column %s: value is required", c.Name)
		}

		switch c.kind {
		case kindDate:
			d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid date %q", c.Name, raw)
			}
			values[i] = d
		case kindMoney:
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid amount %q", c.Name, raw)
			}
			values[i] = v
		case kindInt:
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("column %s: invalid integer %q", c.Name, raw)
			}
			values[i] = int32(v)
		default:
			values[i] = raw
		}
	}
	return values, nil
}
