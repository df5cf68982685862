package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/noah-isme/minimart-pos/internal/ledger"
)

const productsHeader = "name,price,quantity,promotion"

// WriteProducts serializes the mutated ledger back to product catalog rows
// in catalog order. The promotion row comes first while its pool still
// holds stock, then the default row; pools drained to zero are omitted.
func WriteProducts(w io.Writer, stocks *ledger.Ledger) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, productsHeader)
	for _, name := range stocks.Names() {
		e, ok := stocks.Entry(name)
		if !ok {
			continue
		}
		if e.Promo != nil && e.Promo.Quantity > 0 {
			fmt.Fprintf(bw, "%s,%d,%d,%s\n", name, e.Promo.Price, e.Promo.Quantity, e.Promo.Promotion)
		}
		if e.Default.Quantity > 0 {
			fmt.Fprintf(bw, "%s,%d,%d,%s\n", name, e.Default.Price, e.Default.Quantity, noPromotion)
		}
	}
	return bw.Flush()
}

// WriteProductsFile persists the ledger to the product catalog path.
func WriteProductsFile(path string, stocks *ledger.Ledger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write products: %w", err)
	}
	if err := WriteProducts(f, stocks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
