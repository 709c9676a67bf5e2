package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/folio-cms/folio/internal/auth"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(hashPasswordCmd)
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print the argon2id hash of a password for ADMIN_PASSWORD_HASH",
	Long: `Print the argon2id hash of a password. Put the result into
ADMIN_PASSWORD_HASH (or Admin.PasswordHash) instead of keeping the plaintext
password in the configuration. Without an argument the password is read from
the first line of stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var password string

		if len(args) == 1 {
			password = args[0]
		} else {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return errors.Wrap(err, "failed to read password from stdin")
			}

			password = strings.TrimRight(line, "\r\n")
		}

		if password == "" {
			return errors.New("password can not be empty")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)

		return err
	},
}
