// Command cli runs back office operations directly against the ledger.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/infra/initializer"
	"github.com/amirasaad/brokerage/pkg/app"
	"github.com/amirasaad/brokerage/pkg/config"
	"github.com/amirasaad/brokerage/pkg/domain/review"
	"github.com/amirasaad/brokerage/pkg/domain/trade"
	customersvc "github.com/amirasaad/brokerage/pkg/service/customer"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  dashboard
  sweep
  flags [<name> <value>]
  decide <trade_id> <win|lose>
  fail <trade_id> [reason]
  resolve <deposit|withdrawal|exchange> <id> <approve|reject>
  sent <withdrawal_id>
  winrate <customer_id> [rate]
  signup <email> <name>`

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	errColor  = color.New(color.FgRed, color.Bold)
	keyColor  = color.New(color.FgCyan)
	errUsage  = errors.New("invalid arguments")
	readInput = readPassword
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	cfg, err := config.Load(".env")
	if err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to connect:", err)
		os.Exit(1)
	}
	defer func() { _ = deps.Close() }()

	a, err := app.New(deps, cfg)
	if err != nil {
		_, _ = errColor.Fprintln(os.Stderr, "Failed to build application:", err)
		os.Exit(1)
	}
	if err := dispatch(context.Background(), a, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
		}
		_, _ = errColor.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "dashboard":
		d, err := a.ReportService.Dashboard(ctx)
		if err != nil {
			return err
		}
		field(out, "trades", strconv.FormatInt(d.TradeCount, 10))
		field(out, "trade quantity", d.TradeQuantity.String())
		field(out, "deposits", d.DepositTotal.String())
		field(out, "withdrawals", d.WithdrawalTotal.String())
		field(out, "pending deposits", d.PendingDeposits.String())
		field(out, "pending withdrawals", d.PendingWithdrawals.String())
		field(out, "unread notifications", strconv.FormatInt(d.UnreadNotifications, 10))
		return nil

	case "sweep":
		n, err := a.TradeService.Sweep(ctx, time.Now())
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "Swept %d expired trades\n", n)
		return nil

	case "flags":
		if len(args) == 2 {
			if err := a.SettingService.SetFlag(ctx, args[0], args[1]); err != nil {
				return err
			}
		} else if len(args) != 0 {
			return errUsage
		}
		flags, err := a.SettingService.Flags(ctx)
		if err != nil {
			return err
		}
		field(out, "open_to_trade", strconv.FormatBool(flags.OpenToTrade))
		field(out, "auto_decide_win_lose", strconv.FormatBool(flags.AutoDecideWinLose))
		return nil

	case "decide":
		if len(args) != 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		outcome, err := trade.ParseOutcome(args[1])
		if err != nil {
			return err
		}
		flags, err := a.SettingService.Flags(ctx)
		if err != nil {
			return err
		}
		t, err := a.TradeService.DecideTrade(ctx, id, outcome, flags)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "Trade %s decided: %s, profit %s\n", t.ID, t.Result(), t.Profit)
		return nil

	case "fail":
		if len(args) < 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		reason := "admin"
		if len(args) > 1 {
			reason = strings.Join(args[1:], " ")
		}
		t, err := a.TradeService.FailTrade(ctx, id, reason)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "Trade %s failed\n", t.ID)
		return nil

	case "resolve":
		if len(args) != 3 {
			return errUsage
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return err
		}
		decision, err := review.ParseDecision(args[2])
		if err != nil {
			return err
		}
		res, err := a.ReviewService.Resolve(ctx, review.Kind(strings.ToUpper(args[0])), id, decision)
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "%s %s is now %s\n", res.Kind, res.ID, res.Status)
		return nil

	case "sent":
		if len(args) != 1 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		if _, err := a.ReviewService.MarkWithdrawalSent(ctx, id); err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "Withdrawal %s marked sent\n", id)
		return nil

	case "winrate":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return err
		}
		if len(args) == 2 {
			rate, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return err
			}
			if err := a.SettingService.SetCustomerWinRate(ctx, id, rate); err != nil {
				return err
			}
		}
		rate, err := a.SettingService.CustomerWinRate(ctx, id)
		if err != nil {
			return err
		}
		field(out, "win_rate", strconv.FormatFloat(rate, 'f', -1, 64))
		return nil

	case "signup":
		if len(args) != 2 {
			return errUsage
		}
		password, err := readInput(out, "Password: ")
		if err != nil {
			return err
		}
		c, acc, err := a.CustomerService.Signup(ctx, customersvc.SignupRequest{
			Email:    args[0],
			Name:     args[1],
			Password: password,
		})
		if err != nil {
			return err
		}
		_, _ = okColor.Fprintf(out, "Customer %s created with %s account %s\n", c.ID, acc.Currency, acc.AccountNo)
		return nil

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func field(out io.Writer, key, value string) {
	_, _ = keyColor.Fprintf(out, "%-22s", key)
	_, _ = fmt.Fprintln(out, value)
}

// readPassword reads without echo from a terminal and falls back to a plain
// line when stdin is piped.
func readPassword(out io.Writer, prompt string) (string, error) {
	_, _ = fmt.Fprint(out, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(out)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
