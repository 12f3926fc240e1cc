package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"github.com/diewo77/go-datawriter/internal/config"
	"github.com/diewo77/go-datawriter/internal/generators"
	"github.com/diewo77/go-datawriter/internal/models"
	"github.com/diewo77/go-datawriter/internal/orchestrator"
	"github.com/diewo77/go-datawriter/internal/services"
	"github.com/diewo77/go-datawriter/internal/store"
)

var errUnknownFormat = errors.New("unknown output format")

// Options are the command line switches that drive a run.
type Options struct {
	MigrateOnly  bool
	ClearOnly    bool
	Keep         bool
	SkipGenerate bool
	Report       bool
	OrderInfo    bool
	City         string
	Format       string
}

// App wires the store, the generators and the reporting services.
type App struct {
	cfg   *config.Config
	store *store.Store
	out   io.Writer
	opts  Options

	prep      *services.PreparationService
	reports   *services.ReportService
	orderInfo *services.OrderInfoService
}

// NewApp creates the application over an open store.
func NewApp(cfg *config.Config, s *store.Store, out io.Writer, opts Options) (*App, error) {
	if opts.Format != "json" && opts.Format != "table" {
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, opts.Format)
	}
	prep, err := services.NewPreparationService(s)
	if err != nil {
		return nil, err
	}
	reports, err := services.NewReportService(s)
	if err != nil {
		return nil, err
	}
	orderInfo, err := services.NewOrderInfoService(s)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:       cfg,
		store:     s,
		out:       out,
		opts:      opts,
		prep:      prep,
		reports:   reports,
		orderInfo: orderInfo,
	}, nil
}

// Run executes what the options ask for.
func (a *App) Run(ctx context.Context) error {
	if err := a.prep.Prepare(ctx); err != nil {
		return err
	}
	if a.opts.MigrateOnly {
		log.Info().Msg("schema ready")
		return nil
	}
	if a.opts.ClearOnly {
		return a.prep.Clear(ctx)
	}

	if !a.opts.SkipGenerate {
		if !a.opts.Keep {
			if err := a.prep.Clear(ctx); err != nil {
				return err
			}
		}
		if _, err := a.generate(ctx); err != nil {
			return err
		}
	}

	if a.opts.Report {
		reports, err := a.reports.ComputeReports(ctx)
		if err != nil {
			return err
		}
		if err := a.printReports(reports); err != nil {
			return err
		}
	}
	if a.opts.OrderInfo {
		rows, err := a.orderInfo.OrderInfo(ctx, a.opts.City)
		if err != nil {
			return err
		}
		if err := a.printOrderInfo(rows); err != nil {
			return err
		}
	}
	return nil
}

// generate runs shops, clients, products and orders, in that order.
func (a *App) generate(ctx context.Context) ([]generators.Result, error) {
	gcfg := &a.cfg.Generator
	f := generators.NewFaker(gcfg.Seed)

	shops, err := generators.NewShopGenerator(a.store, gcfg, f)
	if err != nil {
		return nil, err
	}
	clients, err := generators.NewClientGenerator(a.store, gcfg, f)
	if err != nil {
		return nil, err
	}
	products, err := generators.NewProductGenerator(a.store, gcfg, f)
	if err != nil {
		return nil, err
	}
	orders, err := generators.NewOrderGenerator(a.store, gcfg, f)
	if err != nil {
		return nil, err
	}

	o, err := orchestrator.New(shops, clients, products, orders)
	if err != nil {
		return nil, err
	}
	return o.Run(ctx)
}

func (a *App) printReports(reports []models.OrderReport) error {
	if a.opts.Format == "json" {
		return writeJSON(a.out, reports)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PAYMENT METHOD\tORDERS\tTOTAL GROSS VALUE\t")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%d\t%s\t\n", r.PaymentMethod, r.OrdersCount, r.TotalGrossValue.StringFixed(2))
	}
	return tw.Flush()
}

func (a *App) printOrderInfo(rows []models.OrderInfo) error {
	if a.opts.Format == "json" {
		return writeJSON(a.out, rows)
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPAYMENT METHOD\tSTREET\tPOST CODE\tCITY\tNET TOTAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.PaymentMethod, r.Street, r.PostCode, r.City, r.NetTotal.StringFixed(2))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
