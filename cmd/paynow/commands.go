package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	httpdelivery "github.com/aquaticavenue/paynow-hub/internal/delivery/http"
	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/config"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/grpcclient"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/memory"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/qrgenerator"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/generateqr"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/issue"
)

const remoteTimeout = 10 * time.Second

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "paynow",
		Short:        "Build, inspect and render PayNow QR payloads",
		SilenceUsage: true,
	}
	root.AddCommand(newEncodeCmd(), newDecodeCmd(), newQRCmd(), newRoutesCmd())
	return root
}

func loadEncoder() (*paynow.Encoder, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	enc, err := paynow.NewEncoder(cfg.Merchant.PayNow())
	if err != nil {
		return nil, nil, err
	}
	return enc, cfg, nil
}

func newEncodeCmd() *cobra.Command {
	var (
		amount    string
		reference string
		remote    string
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Print the payload string for an amount",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if remote != "" {
				return encodeRemote(cmd.Context(), cmd.OutOrStdout(), remote, amount, reference)
			}

			enc, _, err := loadEncoder()
			if err != nil {
				return err
			}
			value, err := paynow.ParseAmount(amount)
			if err != nil {
				return err
			}
			if reference == "" {
				reference, err = paynow.NewReferenceGenerator().Generate()
				if err != nil {
					return err
				}
			}
			payload, err := enc.Encode(value, reference)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), payload)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount in SGD, e.g. 10.50")
	cmd.Flags().StringVar(&reference, "reference", "", "transaction reference (generated when empty)")
	cmd.Flags().StringVar(&remote, "remote", "", "encode through a running server's gRPC address")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func encodeRemote(ctx context.Context, out io.Writer, addr, amount, reference string) error {
	client, err := grpcclient.NewClient(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	res, err := client.EncodePayload(ctx, amount, reference)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res.Payload)
	return nil
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload>",
		Short: "Verify a payload checksum and print its fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := paynow.Decode(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range d.Fields {
				fmt.Fprintf(out, "%s\t%s\n", f.Tag, f.Value)
			}
			fmt.Fprintf(out, "reference\t%s\namount\t%s\nchecksum\t%s\n", d.Reference, d.Amount, d.Checksum)
			return nil
		},
	}
}

func newQRCmd() *cobra.Command {
	var (
		amount    string
		reference string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Render a payment QR code to a PNG file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, cfg, err := loadEncoder()
			if err != nil {
				return err
			}
			value, err := paynow.ParseAmount(amount)
			if err != nil {
				return err
			}

			uc := generateqr.NewUseCase(enc, paynow.NewReferenceGenerator(), qrgenerator.NewGenerator(cfg.QRCodeSize))
			resp, err := uc.Execute(generateqr.Request{Amount: value, Reference: reference})
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, resp.PNG, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", resp.Reference, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "amount in SGD, e.g. 10.50")
	cmd.Flags().StringVar(&reference, "reference", "", "transaction reference (generated when empty)")
	cmd.Flags().StringVarP(&output, "output", "o", "paynow.png", "PNG file to write")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP API routes as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc, cfg, err := loadEncoder()
			if err != nil {
				return err
			}
			refs := paynow.NewReferenceGenerator()
			logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
			h := httpdelivery.NewHandler(
				generateqr.NewUseCase(enc, refs, qrgenerator.NewGenerator(cfg.QRCodeSize)),
				issue.NewUseCase(memory.NewUnitOfWork(memory.NewStore()), enc, refs),
				logger,
			)
			fmt.Fprintln(cmd.OutOrStdout(), docgen.JSONRoutesDoc(httpdelivery.NewRouter(h)))
			return nil
		},
	}
}
