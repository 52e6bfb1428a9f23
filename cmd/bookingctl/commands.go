package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/srgjo27/staybook/internal/core/domain"
)

const listDateLayout = "01/02/2006"

func (a *app) list() error {
	return renderTable(a.out, a.svc.Bookings(), a.loc, a.now())
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	property := fs.String("property", a.policy.DefaultProperty, "property name")
	checkIn := fs.String("check-in", "", "check-in date (yyyy-mm-dd)")
	checkOut := fs.String("check-out", "", "check-out date (yyyy-mm-dd)")
	adults := fs.Int("adults", a.policy.MinAdults, "number of adults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := a.buildForm(*property, *checkIn, *checkOut, *adults)
	if err != nil {
		return err
	}
	if err := a.checkForm(form, nil); err != nil {
		return err
	}

	saved, err := a.svc.Save(ctx, form.Booking(domain.Booking{}))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created booking %d\n", saved.ID)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	id := fs.Int64("id", 0, "booking id")
	property := fs.String("property", "", "property name")
	checkIn := fs.String("check-in", "", "check-in date (yyyy-mm-dd)")
	checkOut := fs.String("check-out", "", "check-out date (yyyy-mm-dd)")
	adults := fs.Int("adults", 0, "number of adults")
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, ok := a.svc.Find(*id)
	if !ok {
		return fmt.Errorf("%w: id %d", domain.ErrBookingNotFound, *id)
	}

	// Unset flags keep the stored values, the way the edit form is prefilled.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	currentIn, currentOut := a.svc.Normalizer().FormDates(current)
	if !set["property"] {
		*property = current.Property
	}
	if !set["check-in"] {
		*checkIn = currentIn
	}
	if !set["check-out"] {
		*checkOut = currentOut
	}
	if !set["adults"] {
		*adults = current.Adults
	}

	form, err := a.buildForm(*property, *checkIn, *checkOut, *adults)
	if err != nil {
		return err
	}
	if err := a.checkForm(form, &current); err != nil {
		return err
	}

	saved, err := a.svc.Save(ctx, form.Booking(current))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated booking %d\n", saved.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "booking id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("-id is required")
	}

	if err := a.svc.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted booking %d\n", *id)
	return nil
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	interval := fs.Duration("interval", 30*time.Second, "refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval <= 0 {
		return errors.New("-interval must be positive")
	}

	if err := a.list(); err != nil {
		return err
	}
	a.svc.RunAutoRefresh(ctx, *interval, func(bookings []domain.Booking) {
		fmt.Fprintf(a.out, "\n-- %s --\n", a.now().In(a.loc).Format(time.Kitchen))
		if err := renderTable(a.out, bookings, a.loc, a.now()); err != nil {
			fmt.Fprintln(a.out, "render failed:", err)
		}
	})
	return nil
}

func (a *app) buildForm(property, checkIn, checkOut string, adults int) (domain.Form, error) {
	form := domain.Form{Property: property, Adults: adults}

	var err error
	if checkIn != "" {
		if form.CheckIn, err = a.svc.Normalizer().ParseDate(checkIn); err != nil {
			return domain.Form{}, &domain.FieldError{Field: "checkIn", Reason: "must be a yyyy-mm-dd date"}
		}
	}
	if checkOut != "" {
		if form.CheckOut, err = a.svc.Normalizer().ParseDate(checkOut); err != nil {
			return domain.Form{}, &domain.FieldError{Field: "checkOut", Reason: "must be a yyyy-mm-dd date"}
		}
	}
	return form, nil
}

func (a *app) checkForm(form domain.Form, editing *domain.Booking) error {
	if err := form.Validate(a.policy.FormRules()); err != nil {
		return err
	}
	return form.CheckInNotPast(a.now().In(a.loc), editing)
}

func renderTable(w io.Writer, bookings []domain.Booking, loc *time.Location, now time.Time) error {
	if len(bookings) == 0 {
		_, err := fmt.Fprintln(w, "no bookings")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPROPERTY\tCHECK-IN\tCHECK-OUT\tADULTS\tCREATED")
	for _, b := range bookings {
		created := "-"
		if b.CreatedAt != nil {
			created = humanize.RelTime(*b.CreatedAt, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			b.ID,
			b.Property,
			b.CheckIn.In(loc).Format(listDateLayout),
			b.CheckOut.In(loc).Format(listDateLayout),
			b.Adults,
			created,
		)
	}
	return tw.Flush()
}
