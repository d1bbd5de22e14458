package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/MaeliPalharini/bankledger/infra/initializer"
	"github.com/MaeliPalharini/bankledger/pkg/config"
	"github.com/MaeliPalharini/bankledger/pkg/domain"
	"github.com/MaeliPalharini/bankledger/pkg/money"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  useradd <username> <email>                    register API credentials")
	fmt.Println("  client <cpf> <name> [birth_date] [address]    register a client")
	fmt.Println("  account <cpf> <number> [initial_balance]      open an account")
	fmt.Println("  deposit <cpf> <amount>                        deposit into the client's account")
	fmt.Println("  withdraw <cpf> <amount>                       withdraw from the client's account")
	fmt.Println("  balance <account_number>                      print an account's balance")
	fmt.Println("  statement <cpf>                               print the transaction history")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		color.Red("Failed to initialize: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	// The CLI runs with a local operator principal; it never goes through
	// the HTTP authentication gateway.
	operator := domain.Principal{ID: uuid.New(), Username: "cli-operator", Active: true}

	if err := dispatch(ctx, deps, operator, os.Args[1], os.Args[2:]); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func dispatch(
	ctx context.Context,
	deps *initializer.Deps,
	operator domain.Principal,
	cmd string,
	args []string,
) error {
	switch cmd {
	case "useradd":
		if len(args) < 2 {
			return fmt.Errorf("usage: useradd <username> <email>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		user, err := deps.Auth.Register(ctx, args[0], args[1], password)
		if err != nil {
			return err
		}
		color.Green("User created: %s (%s)", user.Username, user.ID)
		return nil

	case "client":
		if len(args) < 2 {
			return fmt.Errorf("usage: client <cpf> <name> [birth_date] [address]")
		}
		var birthDate time.Time
		if len(args) > 2 {
			var err error
			birthDate, err = time.Parse("2006-01-02", args[2])
			if err != nil {
				return fmt.Errorf("invalid birth date: %w", err)
			}
		}
		var address string
		if len(args) > 3 {
			address = args[3]
		}
		client, err := deps.Ledger.RegisterClient(ctx, operator, args[0], args[1], birthDate, address)
		if err != nil {
			return err
		}
		color.Green("Client registered: %s (CPF %s)", client.Name, client.CPF)
		return nil

	case "account":
		if len(args) < 2 {
			return fmt.Errorf("usage: account <cpf> <number> [initial_balance]")
		}
		number, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account number: %w", err)
		}
		initial := money.Zero()
		if len(args) > 2 {
			initial, err = money.Parse(args[2])
			if err != nil {
				return err
			}
		}
		acct, err := deps.Ledger.OpenAccount(ctx, operator, args[0], number, initial)
		if err != nil {
			return err
		}
		color.Green("Account %d opened with balance %s", acct.Number, acct.Formatted)
		return nil

	case "deposit", "withdraw":
		if len(args) < 2 {
			return fmt.Errorf("usage: %s <cpf> <amount>", cmd)
		}
		amount, err := money.Parse(args[1])
		if err != nil {
			return err
		}
		op := deps.Ledger.Deposit
		if cmd == "withdraw" {
			op = deps.Ledger.Withdraw
		}
		tx, err := op(ctx, operator, args[0], amount)
		if err != nil {
			return err
		}
		color.Green("%s of %s registered, balance is now %s",
			tx.Kind, tx.Formatted, money.FromCentavos(tx.Balance).String())
		return nil

	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <account_number>")
		}
		number, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account number: %w", err)
		}
		acct, err := deps.Ledger.AccountByNumber(ctx, operator, number)
		if err != nil {
			return err
		}
		color.Green("Account %d balance: %s", acct.Number, acct.Formatted)
		return nil

	case "statement":
		if len(args) < 1 {
			return fmt.Errorf("usage: statement <cpf>")
		}
		txs, err := deps.Ledger.Statement(ctx, operator, args[0])
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Println("No transactions.")
			return nil
		}
		bold := color.New(color.Bold)
		bold.Printf("%-20s  %-10s  %12s  %12s\n", "DATE", "KIND", "AMOUNT", "BALANCE")
		for _, tx := range txs {
			fmt.Printf("%-20s  %-10s  %12s  %12s\n",
				tx.CreatedAt.Format("2006-01-02 15:04:05"),
				tx.Kind,
				tx.Formatted,
				money.FromCentavos(tx.Balance).String(),
			)
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// promptPassword reads the password twice without echo.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
