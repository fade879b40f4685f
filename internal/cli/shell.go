package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"minibank/internal/core/bank"
	"minibank/internal/core/domain"
	"minibank/internal/core/ports"
)

// Shell is the interactive menu surface. It owns all prompting and
// printing; the core never touches stdin or stdout. After a successful
// login the operator works directly on the account, and the shell
// persists the registry after every mutation.
type Shell struct {
	bank *bank.Bank
	in   *bufio.Reader
	out  io.Writer
	log  zerolog.Logger
}

// New creates a shell reading menu choices from in and printing to out.
func New(b *bank.Bank, in io.Reader, out io.Writer, baseLogger *zerolog.Logger) *Shell {
	return &Shell{
		bank: b,
		in:   bufio.NewReader(in),
		out:  out,
		log:  baseLogger.With().Str("component", "cli").Logger(),
	}
}

// Run drives the main menu until the operator exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.printf("\n1. Create Account\n2. Login\n3. Exit\n")
		choice, err := s.prompt("Enter your choice: ")
		if err != nil {
			return s.inputDone(err)
		}

		switch choice {
		case "1":
			if err := s.createAccount(ctx); err != nil {
				return s.inputDone(err)
			}
		case "2":
			if err := s.login(ctx); err != nil {
				return s.inputDone(err)
			}
		case "3":
			s.printf("Exiting... Thank you!\n")
			return nil
		default:
			s.printf("Invalid choice.\n")
		}
	}
}

func (s *Shell) createAccount(ctx context.Context) error {
	name, err := s.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	password, err := s.prompt("Set your password: ")
	if err != nil {
		return err
	}

	number, err := s.bank.CreateAccount(ctx, name, password)
	if err != nil {
		s.log.Error().Err(err).Msg("Account creation failed")
		s.printf("Account creation failed. Please try again.\n")
		return nil
	}
	s.printf("Account created successfully! Your account number is %s\n", number)
	return nil
}

func (s *Shell) login(ctx context.Context) error {
	number, err := s.prompt("Enter account number: ")
	if err != nil {
		return err
	}
	password, err := s.prompt("Enter password: ")
	if err != nil {
		return err
	}

	acct, err := s.bank.Authenticate(number, password)
	if err != nil {
		// Unknown number and wrong password are deliberately the same.
		s.printf("Invalid credentials.\n")
		return nil
	}
	return s.session(ctx, acct)
}

// session is the per-account menu, entered after authentication.
func (s *Shell) session(ctx context.Context, acct *domain.Account) error {
	for {
		s.printf("\n1. View Balance\n2. Deposit\n3. Withdraw\n4. Transaction History\n5. Logout\n")
		option, err := s.prompt("Enter your choice: ")
		if err != nil {
			return err
		}

		switch option {
		case "1":
			s.printf("Current Balance: $%s\n", domain.FormatAmount(acct.Balance))
		case "2":
			if err := s.deposit(ctx, acct); err != nil {
				return err
			}
		case "3":
			if err := s.withdraw(ctx, acct); err != nil {
				return err
			}
		case "4":
			s.printf("Transaction History:\n")
			for _, tx := range acct.TransactionHistory() {
				s.printf("%s\n", tx)
			}
		case "5":
			s.printf("Logging out...\n")
			return nil
		default:
			s.printf("Invalid option.\n")
		}
	}
}

func (s *Shell) deposit(ctx context.Context, acct *domain.Account) error {
	amount, err := s.promptAmount("Enter deposit amount: ")
	if err != nil {
		return err
	}
	if err := acct.Deposit(amount); err != nil {
		s.printf("Invalid deposit amount.\n")
		return nil
	}
	s.printf("Deposit successful!\n")
	s.persist(ctx)
	s.bank.Publish(ctx, ports.TopicAccountDeposited, acct.Number, amount)
	return nil
}

func (s *Shell) withdraw(ctx context.Context, acct *domain.Account) error {
	amount, err := s.promptAmount("Enter withdrawal amount: ")
	if err != nil {
		return err
	}
	if err := acct.Withdraw(amount); err != nil {
		s.printf("Insufficient funds or invalid amount.\n")
		return nil
	}
	s.printf("Withdrawal successful!\n")
	s.persist(ctx)
	s.bank.Publish(ctx, ports.TopicAccountWithdrawn, acct.Number, amount)
	return nil
}

// persist saves the registry after a mutation. The mutation itself
// already succeeded, so a save failure is reported but does not undo it.
func (s *Shell) persist(ctx context.Context) {
	if err := s.bank.Persist(ctx); err != nil {
		s.log.Error().Err(err).Msg("Failed to save account data")
		s.printf("Warning: failed to save account data.\n")
	}
}

// prompt prints the text and reads one trimmed line.
func (s *Shell) prompt(text string) (string, error) {
	s.printf("%s", text)
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptAmount reads a line and parses it as an amount. Garbage input
// becomes a zero amount, which the account rejects as invalid instead of
// the process falling over.
func (s *Shell) promptAmount(text string) (float64, error) {
	raw, err := s.prompt(text)
	if err != nil {
		return 0, err
	}
	amount, parseErr := strconv.ParseFloat(raw, 64)
	if parseErr != nil {
		return 0, nil
	}
	return amount, nil
}

// inputDone maps end-of-input to a clean shutdown.
func (s *Shell) inputDone(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Info().Msg("Input closed, shutting down")
		return nil
	}
	return err
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
