package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/precast-backend/internal/app"
	"github.com/heartmarshall/precast-backend/internal/domain"
	authsvc "github.com/heartmarshall/precast-backend/internal/service/auth"
)

var (
	userName     string
	userRole     string
	userPassword string
)

// userCmd manages operator accounts
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage API user accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <email>",
	Short: "Create a user account",
	Long: `Create a user account. Without --password the password is read from
the first line of standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			u, err := svcs.Auth.CreateUser(ctx, authsvc.CreateUserInput{
				Email:    args[0],
				Name:     userName,
				Password: password,
				Role:     domain.UserRole(userRole),
			})
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) id=%s\n", u.Email, u.Role, u.ID)
			return nil
		})
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <email>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := resolvePassword(cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			if err := svcs.Auth.SetPassword(ctx, args[0], password); err != nil {
				return describe(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password updated")
			return nil
		})
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, _ *env, svcs *app.Services) error {
			users, err := svcs.Auth.ListUsers(ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%-36s %-6s %s\n", u.ID, u.Role, u.Email)
			}
			return nil
		})
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userName, "name", "", "Display name")
	userCreateCmd.Flags().StringVar(&userRole, "role", string(domain.UserRoleUser), "Role: user or admin")
	for _, c := range []*cobra.Command{userCreateCmd, userPasswdCmd} {
		c.Flags().StringVar(&userPassword, "password", "", "Password (read from stdin when empty)")
	}

	userCmd.AddCommand(userCreateCmd, userPasswdCmd, userListCmd)
}

func resolvePassword(stdin io.Reader) (string, error) {
	if userPassword != "" {
		return userPassword, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password required: pass --password or pipe it on stdin")
	}
	return line, nil
}

// describe expands validation errors into one line per field.
func describe(err error) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var b strings.Builder
	b.WriteString("invalid input:")
	for _, fe := range ve.Errors {
		fmt.Fprintf(&b, "\n  %s: %s", fe.Field, fe.Message)
	}
	return errors.New(b.String())
}
