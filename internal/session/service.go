package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/minimart-pos/internal/common"
	"github.com/noah-isme/minimart-pos/internal/events"
	"github.com/noah-isme/minimart-pos/internal/ledger"
	"github.com/noah-isme/minimart-pos/internal/promo"
	"github.com/noah-isme/minimart-pos/internal/receipt"
	"github.com/noah-isme/minimart-pos/internal/view"
)

// Prompter supplies customer answers for the interactive checkout flow.
// Prompt text is rendered by the view before each read, so implementations
// only consume the typed line.
type Prompter interface {
	ReadLine(ctx context.Context) (string, error)
}

// Service drives one checkout session from stock render to receipt. The
// calculation core never sees unvalidated input: every answer is parsed and
// re-asked here until it is well formed.
type Service struct {
	Stocks  *ledger.Ledger
	Promos  *promo.Catalog
	Builder *receipt.Builder
	View    *view.Console
	In      Prompter
	Events  *events.Bus
	Log     zerolog.Logger
}

// Run processes purchases until the customer declines to buy more.
func (s *Service) Run(ctx context.Context) error {
	if s == nil || s.Stocks == nil || s.Promos == nil || s.Builder == nil || s.View == nil || s.In == nil {
		return errors.New("session: service not configured")
	}
	for {
		if err := s.checkout(ctx); err != nil {
			return err
		}
		again, err := s.askYesNo(ctx, s.View.BuyMorePrompt())
		if err != nil {
			return err
		}
		if !again {
			return nil
		}
	}
}

func (s *Service) checkout(ctx context.Context) error {
	s.View.PrintWelcome()
	s.View.PrintStocks(s.Stocks)

	lines, err := s.askPurchase(ctx)
	if err != nil {
		return err
	}

	lines, err = s.resolvePromotable(ctx, lines)
	if err != nil {
		return err
	}
	lines, err = s.resolveShortfalls(ctx, lines)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		s.Log.Info().Msg("checkout abandoned after promotion review")
		return nil
	}

	member, err := s.askYesNo(ctx, s.View.MembershipPrompt())
	if err != nil {
		return err
	}

	rcpt := s.Builder.Build(lines, member)
	s.View.PrintReceipt(rcpt)
	s.Stocks.Update(lines)

	s.Log.Info().
		Str("receipt_id", rcpt.ID.String()).
		Int64("total_qty", rcpt.TotalQty).
		Int64("amount_due", rcpt.AmountDue).
		Bool("membership", member).
		Msg("checkout completed")
	if s.Events != nil {
		_, _ = s.Events.Emit(ctx, events.TopicCheckoutCompleted, map[string]any{
			"receiptId": rcpt.ID.String(),
			"amountDue": rcpt.AmountDue,
			"lines":     len(rcpt.Lines),
		})
	}
	return nil
}

// askPurchase reads and validates the product list, re-asking on any
// validation failure.
func (s *Service) askPurchase(ctx context.Context) ([]ledger.Line, error) {
	for {
		raw, err := s.readAnswer(ctx, s.View.PurchasePrompt())
		if err != nil {
			return nil, err
		}
		lines, err := ParsePurchase(raw)
		if err == nil {
			err = ValidateLines(lines, s.Stocks)
		}
		if err == nil {
			return lines, nil
		}
		if !common.IsAppError(err) {
			return nil, err
		}
		s.View.PrintError(err)
	}
}

func (s *Service) askYesNo(ctx context.Context, prompt string) (bool, error) {
	for {
		raw, err := s.readAnswer(ctx, prompt)
		if err != nil {
			return false, err
		}
		answer, err := ParseYesNo(raw)
		if err == nil {
			return answer, nil
		}
		if !common.IsAppError(err) {
			return false, err
		}
		s.View.PrintError(err)
	}
}

func (s *Service) readAnswer(ctx context.Context, prompt string) (string, error) {
	s.View.PrintPrompt(prompt)
	return s.In.ReadLine(ctx)
}

// resolvePromotable offers one extra free unit for lines that exactly fill
// their bundles while the promotional pool has room.
func (s *Service) resolvePromotable(ctx context.Context, lines []ledger.Line) ([]ledger.Line, error) {
	for i, line := range lines {
		name, ok := s.Promos.PromotableItem(line)
		if !ok {
			continue
		}
		add, err := s.askYesNo(ctx, s.View.AddFreeItemPrompt(name))
		if err != nil {
			return nil, err
		}
		if add {
			lines[i].Quantity++
		}
	}
	return lines, nil
}

// resolveShortfalls confirms quantities the promotional pool cannot cover.
// A declined shortfall is removed from the line; a line reduced to zero is
// dropped.
func (s *Service) resolveShortfalls(ctx context.Context, lines []ledger.Line) ([]ledger.Line, error) {
	out := make([]ledger.Line, 0, len(lines))
	for _, line := range lines {
		short, ok := s.Promos.NonPromotionalItem(line)
		if !ok {
			out = append(out, line)
			continue
		}
		pay, err := s.askYesNo(ctx, s.View.PayWithoutPromoPrompt(short.Name, short.Quantity))
		if err != nil {
			return nil, err
		}
		if pay {
			out = append(out, line)
			continue
		}
		if remaining := line.Quantity - short.Quantity; remaining > 0 {
			out = append(out, ledger.Line{Name: line.Name, Quantity: remaining})
		}
	}
	return out, nil
}
