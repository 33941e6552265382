// Package cli implements the healthyaura command: the local API server and a
// few session commands that share its persisted credential.
package cli

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eggrusher04/HealthyAuraProject/internal/core/domain"
	"github.com/eggrusher04/HealthyAuraProject/internal/infrastructure/config"
	"github.com/eggrusher04/HealthyAuraProject/pkg/logger"
)

type app struct {
	logLevel string

	cfgOnce sync.Once
	cfg     *config.Config
	log     zerolog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(os.Stdin, os.Stdout, os.Stderr)
}

func NewRootCommandWithIO(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return newRootCommand(in, out, errOut)
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{stdin: in, stdout: out, stderr: errOut}

	cmd := &cobra.Command{
		Use:           "healthyaura",
		Short:         "HealthyAura client",
		Long:          "healthyaura runs the local API used by the browser shell and manages the signed-in session.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override LOG_LEVEL")

	cmd.AddCommand(
		newServeCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newStarsCmd(a),
	)
	return cmd
}

// setup loads the configuration and the process logger once.
func (a *app) setup() *config.Config {
	a.cfgOnce.Do(func() {
		a.cfg = config.Load(logger.Get())
		level := a.cfg.LogLevel
		if a.logLevel != "" {
			level = a.logLevel
		}
		a.log = logger.Init(logger.Options{
			Level:   level,
			Pretty:  !a.cfg.Production(),
			Output:  a.stderr,
			Service: "healthyaura",
		})
	})
	return a.cfg
}

// ErrorText is what the command prints for a failed run.
func ErrorText(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return domain.UserMessage(err)
	}
	return err.Error()
}
