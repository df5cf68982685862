package session

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/minimart-pos/internal/common"
	"github.com/noah-isme/minimart-pos/internal/ledger"
)

// User-facing validation messages, reported verbatim.
const (
	msgEmptyInput    = "입력이 비어 있습니다. 다시 입력해 주세요."
	msgInvalidFormat = "올바르지 않은 형식으로 입력해 주세요. 다시 입력해 주세요."
	msgInvalidAnswer = "Y 또는 N으로 입력해 주세요. 다시 입력해 주세요."
	msgNotFound      = "존재하지 않는 상품입니다. 다시 입력해 주세요."
	msgStockLimit    = "재고 수량을 초과하여 구매할 수 없습니다. 다시 입력해 주세요."
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// purchaseItem mirrors one bracketed name-quantity pair from user input.
type purchaseItem struct {
	Name     string `validate:"required"`
	Quantity int64  `validate:"gt=0"`
}

// ParsePurchase converts raw purchase input into purchase lines. The
// expected shape is bracketed name-quantity pairs joined by commas,
// e.g. [사이다-2],[감자칩-1].
func ParsePurchase(input string) ([]ledger.Line, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, common.NewAppError(common.CodeEmptyInput, msgEmptyInput, nil)
	}
	parts := strings.Split(trimmed, ",")
	lines := make([]ledger.Line, 0, len(parts))
	for _, part := range parts {
		item, err := parseItem(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		lines = append(lines, ledger.Line{Name: item.Name, Quantity: item.Quantity})
	}
	return lines, nil
}

func parseItem(raw string) (purchaseItem, error) {
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return purchaseItem{}, common.NewAppError(common.CodeInvalidFormat, msgInvalidFormat, nil)
	}
	name, qtyText, ok := strings.Cut(raw[1:len(raw)-1], "-")
	if !ok {
		return purchaseItem{}, common.NewAppError(common.CodeInvalidFormat, msgInvalidFormat, nil)
	}
	qty, err := strconv.ParseInt(strings.TrimSpace(qtyText), 10, 64)
	if err != nil {
		return purchaseItem{}, common.NewAppError(common.CodeInvalidFormat, msgInvalidFormat, err)
	}
	item := purchaseItem{Name: strings.TrimSpace(name), Quantity: qty}
	if err := validate.Struct(item); err != nil {
		return purchaseItem{}, common.NewAppError(common.CodeInvalidFormat, msgInvalidFormat, err)
	}
	return item, nil
}

// ValidateLines checks parsed lines against current stock: the product must
// exist and the quantity must not exceed combined default and promotional
// stock. Limits apply uniformly; there are no per-product special cases.
func ValidateLines(lines []ledger.Line, stocks *ledger.Ledger) error {
	for _, line := range lines {
		if _, ok := stocks.Entry(line.Name); !ok {
			return common.NewAppError(common.CodeProductNotFound, msgNotFound, nil)
		}
		if line.Quantity > stocks.Available(line.Name) {
			return common.NewAppError(common.CodeStockLimitExceeded, msgStockLimit, nil)
		}
	}
	return nil
}

// ParseYesNo accepts exactly "Y" or "N".
func ParseYesNo(input string) (bool, error) {
	switch strings.TrimSpace(input) {
	case "":
		return false, common.NewAppError(common.CodeEmptyInput, msgEmptyInput, nil)
	case "Y":
		return true, nil
	case "N":
		return false, nil
	}
	return false, common.NewAppError(common.CodeInvalidFormat, msgInvalidAnswer, nil)
}
