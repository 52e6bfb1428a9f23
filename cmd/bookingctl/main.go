package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srgjo27/staybook/internal/adapter/api"
	"github.com/srgjo27/staybook/internal/config"
	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/services"
	"github.com/srgjo27/staybook/internal/platform/logger"
)

const usage = `usage: bookingctl <command> [flags]

commands:
  list                       show all bookings, newest first
  create -check-in -check-out [-property] [-adults]
  edit   -id [-check-in] [-check-out] [-property] [-adults]
  delete -id
  watch  [-interval]         reprint the list whenever it is refreshed
`

type app struct {
	svc    *services.BookingService
	policy config.Policy
	loc    *time.Location
	out    io.Writer
	now    func() time.Time
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if fieldErrs := domain.FieldErrors(err); len(fieldErrs) > 0 {
			for _, fe := range fieldErrs {
				fmt.Fprintln(os.Stderr, fe.Error())
			}
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg, err := config.LoadWithFile(os.Getenv("BOOKINGCTL_ENV_FILE"))
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(os.Stderr, cfg.Env, cfg.LogLevel)

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return err
	}
	loc, err := policy.Location()
	if err != nil {
		return err
	}

	client, err := api.NewClient(cfg.BookingsAPIURL, cfg.APITimeout, log)
	if err != nil {
		return err
	}

	a := &app{
		svc:    services.NewBookingService(client, services.NewNormalizer(policy.CheckInHour, policy.CheckOutHour, loc), log),
		policy: policy,
		loc:    loc,
		out:    os.Stdout,
		now:    time.Now,
	}

	if err := a.svc.Load(ctx); err != nil {
		return fmt.Errorf("loading bookings: %w", err)
	}

	switch command {
	case "list":
		return a.list()
	case "create":
		return a.create(ctx, args)
	case "edit":
		return a.edit(ctx, args)
	case "delete":
		return a.delete(ctx, args)
	case "watch":
		return a.watch(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return errors.New("unknown command " + command + "\n" + usage)
	}
}
