package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"greenpro_billing/internal/domain/entities"
	"greenpro_billing/internal/domain/pricing"
	"greenpro_billing/internal/domain/validation"
	"greenpro_billing/internal/infrastructure/payments"
	"greenpro_billing/internal/session"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Validate the quote form and show the estimate and deposit",
	Example: `  quote estimate --name "Jane Doe" --phone 4165550123 --email jane@example.com \
    --service "Interior Demolition" --area 1000 --rooms 3`,
	RunE: runEstimate,
}

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Price the quote and pay its deposit with a card token",
	Example: `  quote deposit --name "Jane Doe" --phone 4165550123 --email jane@example.com \
    --area 1000 --rooms 3 --card pm_card_visa`,
	RunE: runDeposit,
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Price the quote and submit it without paying a deposit",
	RunE:  runConfirm,
}

func init() {
	for _, c := range []*cobra.Command{estimateCmd, depositCmd, confirmCmd} {
		addQuoteFlags(c)
		rootCmd.AddCommand(c)
	}
	depositCmd.Flags().String("card", "", "payment method token from the card input (e.g. pm_card_visa)")
}

func addQuoteFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("name", "", "customer name")
	f.String("phone", "", "customer phone (10 digits)")
	f.String("email", "", "customer email")
	f.String("service", string(entities.DefaultService), "service name")
	f.String("area", "", "area in sq ft, free text")
	f.String("rooms", "", "number of rooms, free text")
	f.String("description", "", "project description")
}

func quoteFromFlags(cmd *cobra.Command) entities.QuoteRequest {
	f := cmd.Flags()
	q := entities.NewQuoteRequest()
	q.Name, _ = f.GetString("name")
	q.Phone, _ = f.GetString("phone")
	q.Email, _ = f.GetString("email")
	service, _ := f.GetString("service")
	q.Service = entities.ServiceName(service)
	q.Area, _ = f.GetString("area")
	q.Rooms, _ = f.GetString("rooms")
	q.Description, _ = f.GetString("description")
	return q
}

// showEstimate fills the quote form and prints the estimate, or the field errors.
func showEstimate(cmd *cobra.Command, s *session.Session) error {
	if err := s.SetQuote(quoteFromFlags(cmd)); err != nil {
		return err
	}
	if _, err := s.SubmitQuoteForm(cmd.Context()); err != nil {
		return describeError(cmd.ErrOrStderr(), err)
	}
	printEstimate(cmd.OutOrStdout(), s.Snapshot())
	return nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	s, cleanup, err := newSession()
	if err != nil {
		return err
	}
	defer cleanup()
	defer s.Wait()

	return showEstimate(cmd, s)
}

func runDeposit(cmd *cobra.Command, args []string) error {
	s, cleanup, err := newSession()
	if err != nil {
		return err
	}
	defer cleanup()
	defer s.Wait()

	if err := showEstimate(cmd, s); err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("card")
	outcome, err := s.RequestDeposit(cmd.Context(), payments.CardToken{Token: token})
	if err != nil {
		if outcome.Message != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), outcome.Message)
		}
		return describeError(cmd.ErrOrStderr(), err)
	}

	v := s.Snapshot()
	fmt.Fprintln(cmd.OutOrStdout(), v.Message)
	if v.Receipt != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Payment ID: %s\n", v.Receipt.PaymentIntentID)
	}
	return nil
}

func runConfirm(cmd *cobra.Command, args []string) error {
	s, cleanup, err := newSession()
	if err != nil {
		return err
	}
	defer cleanup()
	defer s.Wait()

	if err := showEstimate(cmd, s); err != nil {
		return err
	}
	if err := s.ConfirmWithoutPayment(cmd.Context()); err != nil {
		if msg := s.Snapshot().Message; msg != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return describeError(cmd.ErrOrStderr(), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.Snapshot().Message)
	return nil
}

func printEstimate(w io.Writer, v session.View) {
	if v.Estimate == nil || v.Deposit == nil {
		return
	}
	e, d := v.Estimate, v.Deposit
	fmt.Fprintf(w, "Service:          %s\n", e.Service)
	fmt.Fprintf(w, "Base price:       $%s\n", pricing.FormatAmount(e.BasePrice))
	fmt.Fprintf(w, "Area cost:        $%s\n", pricing.FormatAmount(e.AreaCost))
	fmt.Fprintf(w, "Room fee:         $%s\n", pricing.FormatAmount(e.RoomFee))
	fmt.Fprintf(w, "Total estimate:   $%s\n", pricing.FormatAmount(e.TotalEstimate))
	fmt.Fprintf(w, "With discount:    $%s\n", pricing.FormatAmount(d.DiscountedTotal))
	fmt.Fprintf(w, "Deposit due now:  $%s\n", pricing.FormatAmount(d.DepositAmount))
}

// describeError prints per-field validation messages; other errors are returned as is.
func describeError(w io.Writer, err error) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		for _, field := range fields.Fields() {
			fmt.Fprintf(w, "  %s: %s\n", field, fields[field])
		}
	}
	return err
}
