package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minibank/internal/adapters/filestore"
	"minibank/internal/adapters/security"
	"minibank/internal/core/bank"
)

// runScript feeds scripted menu input to a shell backed by a real file
// store in a temp dir and returns the printed output and the data file
// path.
func runScript(t *testing.T, input string) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bank_data.json")
	nopLogger := zerolog.Nop()

	store := filestore.New(path, &nopLogger)
	hasher := security.NewSHA256Hasher(&nopLogger)
	b, err := bank.New(context.Background(), store, hasher, nil, &nopLogger)
	require.NoError(t, err)

	var out bytes.Buffer
	shell := New(b, strings.NewReader(input), &out, &nopLogger)
	require.NoError(t, shell.Run(context.Background()))

	return out.String(), path
}

func TestShell_CreateLoginDepositWithdraw(t *testing.T) {
	script := strings.Join([]string{
		"1", "Alice", "secret", // create account
		"2", "000001", "secret", // login
		"2", "50", // deposit
		"3", "20", // withdraw
		"1",      // view balance
		"4",      // history
		"5", "3", // logout, exit
	}, "\n") + "\n"

	out, path := runScript(t, script)

	assert.Contains(t, out, "Account created successfully! Your account number is 000001")
	assert.Contains(t, out, "Deposit successful!")
	assert.Contains(t, out, "Withdrawal successful!")
	assert.Contains(t, out, "Current Balance: $30.0")
	assert.Contains(t, out, "Transaction History:")
	assert.Contains(t, out, "Deposited: $50.0")
	assert.Contains(t, out, "Withdrawn: $20.0")
	assert.Contains(t, out, "Logging out...")
	assert.Contains(t, out, "Exiting... Thank you!")

	// Every mutation was persisted; a fresh load sees the final state.
	nopLogger := zerolog.Nop()
	loaded, err := filestore.New(path, &nopLogger).Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, loaded, "000001")
	assert.Equal(t, 30.0, loaded["000001"].Balance)
	assert.Equal(t, []string{"Deposited: $50.0", "Withdrawn: $20.0"}, loaded["000001"].Transactions)
}

func TestShell_WrongPassword(t *testing.T) {
	script := "1\nAlice\nsecret\n2\n000001\nwrong\n3\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "Invalid credentials.")
	assert.NotContains(t, out, "View Balance")
}

func TestShell_UnknownAccountSameMessage(t *testing.T) {
	script := "2\n424242\nwhatever\n3\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "Invalid credentials.")
}

func TestShell_RejectsInvalidAmounts(t *testing.T) {
	script := strings.Join([]string{
		"1", "Alice", "secret",
		"2", "000001", "secret",
		"2", "abc", // non-numeric deposit
		"2", "-5", // negative deposit
		"3", "100", // withdrawal beyond balance
		"1",
		"5", "3",
	}, "\n") + "\n"

	out, path := runScript(t, script)

	assert.Contains(t, out, "Invalid deposit amount.")
	assert.Contains(t, out, "Insufficient funds or invalid amount.")
	assert.Contains(t, out, "Current Balance: $0.0")

	nopLogger := zerolog.Nop()
	loaded, err := filestore.New(path, &nopLogger).Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, loaded, "000001")
	assert.Empty(t, loaded["000001"].Transactions)
}

func TestShell_FreshAccountHistorySentinel(t *testing.T) {
	script := "1\nAlice\nsecret\n2\n000001\nsecret\n4\n5\n3\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "No transactions yet.")
}

func TestShell_InvalidMenuChoices(t *testing.T) {
	script := "9\n1\nAlice\nsecret\n2\n000001\nsecret\n7\n5\n3\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "Invalid choice.")
	assert.Contains(t, out, "Invalid option.")
}

func TestShell_EndOfInputShutsDownCleanly(t *testing.T) {
	out, _ := runScript(t, "")
	assert.Contains(t, out, "1. Create Account")
}
