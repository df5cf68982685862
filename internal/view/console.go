package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/noah-isme/minimart-pos/internal/common"
	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/receipt"
)

// Console renders stock listings, prompts and receipts in the fixed
// W편의점 text format.
type Console struct {
	Out io.Writer
}

func (c *Console) w() io.Writer {
	if c != nil && c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// PrintWelcome prints the store greeting and stock header.
func (c *Console) PrintWelcome() {
	fmt.Fprintln(c.w(), "안녕하세요. W편의점입니다.")
	fmt.Fprintln(c.w(), "현재 보유하고 있는 상품입니다.")
	fmt.Fprintln(c.w())
}

// PrintStocks lists every product's pools in catalog order, promotional
// pool first, with 재고 없음 standing in for a drained pool.
func (c *Console) PrintStocks(stocks *ledger.Ledger) {
	for _, name := range stocks.Names() {
		e, ok := stocks.Entry(name)
		if !ok {
			continue
		}
		if e.Promo != nil {
			if e.Promo.Quantity == 0 {
				fmt.Fprintf(c.w(), "- %s %s원 재고 없음 %s\n", name, FormatMoney(e.Promo.Price), e.Promo.Promotion)
			} else {
				fmt.Fprintf(c.w(), "- %s %s원 %d개 %s\n", name, FormatMoney(e.Promo.Price), e.Promo.Quantity, e.Promo.Promotion)
			}
		}
		if e.Default.Quantity == 0 {
			fmt.Fprintf(c.w(), "- %s %s원 재고 없음\n", name, FormatMoney(e.Default.Price))
		} else {
			fmt.Fprintf(c.w(), "- %s %s원 %d개\n", name, FormatMoney(e.Default.Price), e.Default.Quantity)
		}
	}
	fmt.Fprintln(c.w())
}

// PrintReceipt renders the fixed receipt layout: gross lines, the 증정
// section for bonus units, then the discount block.
func (c *Console) PrintReceipt(r receipt.Receipt) {
	w := c.w()
	fmt.Fprintln(w, "==============W 편의점================")
	fmt.Fprintln(w, "상품명             수량      금액")
	for _, line := range r.Lines {
		fmt.Fprintf(w, "%s\t\t     %d         %s\n", line.Name, line.Qty, FormatMoney(line.Qty*line.UnitPrice))
	}
	fmt.Fprintln(w, "=============증     정===============")
	for _, b := range r.BonusLines {
		fmt.Fprintf(w, "%s\t\t     %d\n", b.Name, b.Quantity)
	}
	fmt.Fprintln(w, "====================================")
	fmt.Fprintf(w, "총구매액          %d        %s\n", r.TotalQty, FormatMoney(r.Subtotal))
	fmt.Fprintf(w, "행사할인                  -%s\n", FormatMoney(r.PromoDiscount))
	fmt.Fprintf(w, "멤버십할인                -%s\n", FormatMoney(r.MemberDiscount))
	fmt.Fprintf(w, "내실돈                     %s\n", FormatMoney(r.AmountDue))
}

// PrintError reports a validation failure back to the customer.
func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.w(), "[ERROR] %s\n", common.MessageOf(err))
}

// PrintPrompt writes a customer-facing question on its own line. All
// prompt rendering goes through here so answers can come from any reader.
func (c *Console) PrintPrompt(prompt string) {
	fmt.Fprintln(c.w(), prompt)
}

// PurchasePrompt asks for the product list.
func (c *Console) PurchasePrompt() string {
	return "구매하실 상품명과 수량을 입력해 주세요. (예: [사이다-2],[감자칩-1])"
}

// MembershipPrompt asks whether to apply the membership discount.
func (c *Console) MembershipPrompt() string {
	return "멤버십 할인을 받으시겠습니까? (Y/N)"
}

// BuyMorePrompt asks whether to start another purchase.
func (c *Console) BuyMorePrompt() string {
	return "감사합니다. 구매하고 싶은 다른 상품이 있나요? (Y/N)"
}

// AddFreeItemPrompt offers one extra free unit of a promotable product.
func (c *Console) AddFreeItemPrompt(name string) string {
	return fmt.Sprintf("현재 %s은(는) 1개를 무료로 더 받을 수 있습니다. 추가하시겠습니까? (Y/N)", name)
}

// PayWithoutPromoPrompt confirms quantities the promotional pool cannot cover.
func (c *Console) PayWithoutPromoPrompt(name string, quantity int64) string {
	return fmt.Sprintf("현재 %s %d개는 프로모션 할인이 적용되지 않습니다. 그래도 구매하시겠습니까? (Y/N)", name, quantity)
}

// FormatMoney groups digits in threes, matching the receipt format.
func FormatMoney(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	if len(digits) <= 3 {
		return sign + digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
