package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dmitrymomot/esflavor/internal/app"
	"github.com/dmitrymomot/esflavor/internal/batch"
	"github.com/dmitrymomot/esflavor/internal/locales"
	"github.com/dmitrymomot/esflavor/pkg/esid"
	"github.com/dmitrymomot/esflavor/pkg/i18n"
)

// ErrInvalidValues is returned when at least one checked value is invalid.
// The results have already been printed.
var ErrInvalidValues = errors.New("one or more values are invalid")

var errUnknownFormat = errors.New("format must be text or json")

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "esvalid",
		Usage: "Validate Spanish identifiers",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate values of one kind",
				ArgsUsage: "VALUE...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "kind",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Identifier kind: postal_code, phone_number, identity_card or bank_account",
					},
					&cli.BoolFlag{
						Name:  "only-nif-nie",
						Usage: "Reject CIF numbers (identity_card only)",
					},
					formatFlag(),
					langFlag(),
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					out := output{w: cmd.Root().Writer, format: cmd.String("format"), lang: cmd.String("lang")}
					return runCheck(out, cmd.String("kind"), cmd.Bool("only-nif-nie"), cmd.Args().Slice())
				},
			},
			{
				Name:      "batch",
				Usage:     "Validate a YAML or JSON manifest",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					formatFlag(),
					langFlag(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent validations (0 uses all CPUs)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return errors.New("batch expects exactly one manifest file")
					}
					out := output{w: cmd.Root().Writer, format: cmd.String("format"), lang: cmd.String("lang")}
					return runBatch(ctx, out, cmd.Args().First(), int(cmd.Int("workers")))
				},
			},
			{
				Name:  "serve",
				Usage: "Start the HTTP validation service",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := app.LoadConfig()
					if err != nil {
						return err
					}
					log := cfg.NewLogger(cmd.Root().ErrWriter)
					return app.Serve(ctx, cfg, log)
				},
			},
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func langFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "lang",
		Value: i18n.DefaultLanguage,
		Usage: "Message language: 'en' or 'es'",
	}
}

// output describes how results are printed.
type output struct {
	w      io.Writer
	format string
	lang   string
}

func runCheck(out output, kindName string, onlyNIFNIE bool, values []string) error {
	if _, err := esid.ParseKind(kindName); err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.New("check expects at least one value")
	}

	results := make([]batch.Result, 0, len(values))
	for i, v := range values {
		results = append(results, batch.Check(i, batch.Item{Kind: kindName, Value: batch.CleanInput(v), OnlyNIFNIE: onlyNIFNIE}))
	}
	return report(out, results)
}

func runBatch(ctx context.Context, out output, path string, workers int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	items, err := batch.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	results, err := batch.NewRunner(batch.WithWorkers(workers)).Run(ctx, items)
	if err != nil {
		return err
	}
	return report(out, results)
}

func report(out output, results []batch.Result) error {
	tr, err := locales.New()
	if err != nil {
		return err
	}
	batch.Localize(results, tr, out.lang)

	w := out.w
	switch out.format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	case "text", "":
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(w, "ok\t%s\t%s\n", r.Kind, r.Value)
				continue
			}
			fmt.Fprintf(w, "invalid\t%s\t%s\t%s: %s\n", r.Kind, r.Value, r.Code, r.Message)
		}
	default:
		return errUnknownFormat
	}

	if batch.Invalid(results) > 0 {
		return ErrInvalidValues
	}
	return nil
}
