package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/andypowell00/food-notes-ui/internal/core/service"
)

func (a *App) hashPasswordCmd() *cobra.Command {
	var password string
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print an APP_PASSWORD_HASH value",
		Long: "Hashes a password with bcrypt and prints it base64-encoded, ready for APP_PASSWORD_HASH.\n" +
			"Without --password the password is read from the terminal.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := a.promptPassword()
				if err != nil {
					return err
				}
				password = pw
			}
			if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
				return fmt.Errorf("cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
			}
			encoded, err := service.EncodePasswordHash(password, cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.Out, encoded)
			return err
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password to hash (prompted when empty)")
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func (a *App) promptPassword() (string, error) {
	fmt.Fprint(a.Out, "Password: ")
	pw, err := a.ReadPassword(int(a.In.Fd()))
	fmt.Fprintln(a.Out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(string(pw), "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	return password, nil
}
