package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/orderline/internal/appcontext"
	"github.com/RoyceAzure/lab/orderline/internal/config"
	"github.com/RoyceAzure/lab/orderline/internal/domain/model"
	"github.com/RoyceAzure/lab/orderline/internal/service"
)

const (
	exitOK                = 0
	exitFailure           = 1
	exitNotFound          = 2
	exitInsufficientStock = 3
)

type addItemArgs struct {
	configPath string
	orderID    uint
	productID  uint
	quantity   int
}

type addItemOutput struct {
	Outcome string           `json:"outcome"`
	Item    *model.OrderItem `json:"item,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func main() {
	args, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(exitFailure)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cf, err := config.LoadConfig(args.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	app, err := appcontext.NewApplicationContext(ctx, cf)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFailure)
	}

	code := run(ctx, app.OrderItemService, args, os.Stdout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("application shutdown error")
	}
	os.Exit(code)
}

func parseArgs(argv []string, stderr io.Writer) (addItemArgs, error) {
	fs := flag.NewFlagSet("orderline", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		args               addItemArgs
		orderID, productID uint64
	)
	fs.StringVar(&args.configPath, "config", "", "path to .env config file")
	fs.Uint64Var(&orderID, "order", 0, "order id")
	fs.Uint64Var(&productID, "product", 0, "product id")
	fs.IntVar(&args.quantity, "qty", 1, "quantity to add (>= 1)")

	if err := fs.Parse(argv); err != nil {
		return args, err
	}
	if orderID == 0 || productID == 0 {
		fmt.Fprintln(stderr, "-order and -product are required")
		return args, errors.New("missing required flags")
	}
	if args.quantity < 1 {
		fmt.Fprintln(stderr, "-qty must be >= 1")
		return args, service.ErrInvalidQuantity
	}

	args.orderID = uint(orderID)
	args.productID = uint(productID)
	return args, nil
}

// run 執行一次 AddItem，結果以 JSON 輸出並回傳 exit code
func run(ctx context.Context, svc service.IOrderItemService, args addItemArgs, stdout io.Writer) int {
	result, err := svc.AddItem(ctx, args.orderID, args.productID, args.quantity)

	out := addItemOutput{Outcome: result.Outcome.String(), Item: result.Item}
	code := exitOK
	switch {
	case err != nil:
		out.Outcome = "error"
		out.Error = err.Error()
		code = exitFailure
	case result.Outcome == service.OutcomeOrderNotFound, result.Outcome == service.OutcomeProductNotFound:
		out.Error = result.Err().Error()
		code = exitNotFound
	case result.Outcome == service.OutcomeInsufficientStock:
		out.Error = result.Err().Error()
		code = exitInsufficientStock
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(out); encErr != nil {
		return exitFailure
	}
	return code
}
