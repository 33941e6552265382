package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const refreshWait = 5 * time.Second

func newLoginCmd(a *app) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long:  "login reads the password from the first line of stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.login(cmd.Context(), username)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.close(context.Background())

			c.session.Boot(cmd.Context()).Cancel()
			c.session.SignOut(cmd.Context())
			fmt.Fprintln(a.stdout, "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.whoami(cmd.Context())
		},
	}
}

func (a *app) login(ctx context.Context, username string) error {
	fmt.Fprint(a.stderr, "Password: ")
	password, err := readLine(a.stdin)
	fmt.Fprintln(a.stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	c, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer c.close(context.Background())

	user, err := c.session.SignIn(ctx, username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s (%s)\n", user.Username, user.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	c, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer c.close(context.Background())

	task := c.session.Boot(ctx)
	waitCtx, cancel := context.WithTimeout(ctx, refreshWait)
	defer cancel()
	if err := task.Wait(waitCtx); err != nil {
		c.log.Debug().Err(err).Msg("showing cached profile")
	}

	user := c.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.stdout, "Not signed in.")
		return nil
	}

	fmt.Fprintf(a.stdout, "username: %s\nrole:     %s\n", user.Username, user.Role)
	if user.Email != "" {
		fmt.Fprintf(a.stdout, "email:    %s\n", user.Email)
	}
	fmt.Fprintf(a.stdout, "points:   %d\n", user.TotalPoints)
	if user.Preferences != "" {
		fmt.Fprintf(a.stdout, "prefers:  %s\n", user.Preferences)
	}
	return nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
