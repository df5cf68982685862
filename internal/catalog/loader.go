package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/promo"
)

// noPromotion marks a default-stock row in the product catalog.
const noPromotion = "null"

const dateLayout = "2006-01-02"

// LoadProducts parses product catalog rows into a stock ledger. Rows follow
// name,price,quantity,promotion with a leading header row. A promotion row
// fills the product's promotional pool and pins its default pool quantity
// at zero until a separate default row supplies it.
func LoadProducts(r io.Reader) (*ledger.Ledger, error) {
	rows, err := readRows(r, 4)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	stocks := ledger.New()
	for _, row := range rows {
		if _, ok := stocks.Entry(row[0]); !ok {
			stocks.Put(row[0], ledger.Entry{})
		}
	}
	for i, row := range rows {
		price, err := parseNonNegative(row[1])
		if err != nil {
			return nil, fmt.Errorf("products: row %d: price: %w", i+2, err)
		}
		qty, err := parseNonNegative(row[2])
		if err != nil {
			return nil, fmt.Errorf("products: row %d: quantity: %w", i+2, err)
		}
		e, _ := stocks.Entry(row[0])
		if row[3] == noPromotion {
			e.Default.Price = price
			e.Default.Quantity = qty
			continue
		}
		e.Default.Price = price
		e.Default.Quantity = 0
		e.Promo = &ledger.PromoPool{
			Pool:      ledger.Pool{Price: price, Quantity: qty},
			Promotion: row[3],
		}
	}
	return stocks, nil
}

// LoadPromotions parses promotion catalog rows. Rows follow
// name,buy,get,start_date,end_date with a leading header row.
func LoadPromotions(r io.Reader) (map[string]promo.Definition, error) {
	rows, err := readRows(r, 5)
	if err != nil {
		return nil, fmt.Errorf("promotions: %w", err)
	}
	defs := make(map[string]promo.Definition, len(rows))
	for i, row := range rows {
		buy, err := parseNonNegative(row[1])
		if err != nil {
			return nil, fmt.Errorf("promotions: row %d: buy: %w", i+2, err)
		}
		get, err := parseNonNegative(row[2])
		if err != nil {
			return nil, fmt.Errorf("promotions: row %d: get: %w", i+2, err)
		}
		start, err := time.Parse(dateLayout, row[3])
		if err != nil {
			return nil, fmt.Errorf("promotions: row %d: start date: %w", i+2, err)
		}
		end, err := time.Parse(dateLayout, row[4])
		if err != nil {
			return nil, fmt.Errorf("promotions: row %d: end date: %w", i+2, err)
		}
		defs[row[0]] = promo.Definition{Buy: buy, Get: get, Start: start, End: end}
	}
	return defs, nil
}

// LoadProductsFile reads the product catalog from disk.
func LoadProductsFile(path string) (*ledger.Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open products: %w", err)
	}
	defer f.Close()
	return LoadProducts(f)
}

// LoadPromotionsFile reads the promotion catalog from disk.
func LoadPromotionsFile(path string) (map[string]promo.Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open promotions: %w", err)
	}
	defer f.Close()
	return LoadPromotions(f)
}

// readRows splits the delimited text into trimmed field rows, skipping the
// header and blank lines. The row format is private and never quoted, so a
// plain comma split is the whole grammar.
func readRows(r io.Reader, fields int) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, errors.New("missing header row")
	}
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines)-1)
	for i, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cols := strings.Split(line, ",")
		if len(cols) != fields {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", i+2, fields, len(cols))
		}
		for j := range cols {
			cols[j] = strings.TrimSpace(cols[j])
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func parseNonNegative(value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	if parsed < 0 {
		return 0, fmt.Errorf("negative value %d", parsed)
	}
	return parsed, nil
}
