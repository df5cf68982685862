package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/noah-isme/minimart-pos/internal/catalog"
	"github.com/noah-isme/minimart-pos/internal/config"
	"github.com/noah-isme/minimart-pos/internal/events"
	"github.com/noah-isme/minimart-pos/internal/obs"
	"github.com/noah-isme/minimart-pos/internal/promo"
	"github.com/noah-isme/minimart-pos/internal/receipt"
	"github.com/noah-isme/minimart-pos/internal/session"
	"github.com/noah-isme/minimart-pos/internal/view"
)

// stdinPrompter reads one answer per question from standard input. Prompt
// rendering belongs to the view, so this only consumes the typed line.
type stdinPrompter struct {
	in *bufio.Reader
}

func (p *stdinPrompter) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	stocks, err := catalog.LoadProductsFile(cfg.ProductsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load product catalog")
	}
	defs, err := catalog.LoadPromotionsFile(cfg.PromotionsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load promotion catalog")
	}
	logger.Info().Int("products", len(stocks.Names())).Int("promotions", len(defs)).Msg("catalog loaded")

	promos := &promo.Catalog{Defs: defs, Stocks: stocks}
	bus := &events.Bus{Notifiers: []events.Notifier{events.LogNotifier{Log: logger}}}

	svc := &session.Service{
		Stocks: stocks,
		Promos: promos,
		Builder: &receipt.Builder{
			Stocks:    stocks,
			Promos:    promos,
			MemberBps: cfg.MemberBps,
			MemberCap: cfg.MemberCap,
		},
		View:   &view.Console{Out: os.Stdout},
		In:     &stdinPrompter{in: bufio.NewReader(os.Stdin)},
		Events: bus,
		Log:    logger,
	}

	ctx := context.Background()
	if err := svc.Run(ctx); err != nil && !errors.Is(err, io.EOF) {
		logger.Fatal().Err(err).Msg("checkout session")
	}

	if err := catalog.WriteProductsFile(cfg.ProductsPath, stocks); err != nil {
		logger.Fatal().Err(err).Msg("write product catalog")
	}
	_, _ = bus.Emit(ctx, events.TopicStockPersisted, map[string]any{"path": cfg.ProductsPath})
}
