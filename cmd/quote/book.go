package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"greenpro_billing/internal/domain/entities"
)

var bookCmd = &cobra.Command{
	Use:     "book",
	Short:   "Request an on-site appointment",
	Example: `  quote book --name "Jane Doe" --phone 4165550123 --email jane@example.com --date 2026-11-02 --time 09:00`,
	RunE:    runBook,
}

func init() {
	f := bookCmd.Flags()
	f.String("name", "", "customer name")
	f.String("phone", "", "customer phone (10 digits)")
	f.String("email", "", "customer email")
	f.String("service", string(entities.DefaultService), "service name")
	f.String("date", "", "appointment date, YYYY-MM-DD")
	f.String("time", "", "appointment slot, 08:00 to 16:00")
	rootCmd.AddCommand(bookCmd)
}

func bookingFromFlags(cmd *cobra.Command) (entities.BookingRequest, error) {
	f := cmd.Flags()
	b := entities.NewBookingRequest()
	b.Name, _ = f.GetString("name")
	b.Phone, _ = f.GetString("phone")
	b.Email, _ = f.GetString("email")
	service, _ := f.GetString("service")
	b.Service = entities.ServiceName(service)
	b.Time, _ = f.GetString("time")

	if raw, _ := f.GetString("date"); raw != "" {
		d, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
		if err != nil {
			return b, fmt.Errorf("invalid --date %q: %w", raw, err)
		}
		b.Date = d
	}
	return b, nil
}

func runBook(cmd *cobra.Command, args []string) error {
	b, err := bookingFromFlags(cmd)
	if err != nil {
		return err
	}

	s, cleanup, err := newSession()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := s.SetBooking(b); err != nil {
		return err
	}
	if err := s.SubmitBooking(cmd.Context()); err != nil {
		if msg := s.Snapshot().BookingMessage; msg != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return describeError(cmd.ErrOrStderr(), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), s.Snapshot().BookingMessage)
	return nil
}
