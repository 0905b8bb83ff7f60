package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/chatdigest/internal/core/services"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Hash a viewer password",
	Long: `Prompts for the viewer password and prints the hash to put in the
settings file:

  [server]
  password_hash = "<hash>"

Leaving password_hash empty serves the viewer without a password.`,
	Args: cobra.NoArgs,
	RunE: runPasswd,
}

func init() {
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, _ []string) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Print("Password: ")
	password := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()
	if password == "" {
		return errors.New("password must not be empty")
	}

	cmd.Print("Confirm password: ")
	confirm := readPassword(cmd.InOrStdin(), reader)
	cmd.Println()
	if confirm != password {
		return errors.New("passwords do not match")
	}

	cmd.Println()
	cmd.Println("[server]")
	cmd.Printf("password_hash = %q\n", services.HashPassword(password))
	return nil
}

// readPassword reads without echo from a terminal, otherwise one line.
//
//nolint:errcheck // CLI helper, error ignored for UX
func readPassword(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
