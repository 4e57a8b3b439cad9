package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/oscar-explorer/internal/client"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/session"
)

// app is what every command needs once flags are parsed.
type app struct {
	api  *client.Client
	sess *session.Session
	out  io.Writer
}

func newRootCmd() *cobra.Command {
	var apiURL, sessionDir, logLevel string
	var timeout time.Duration
	a := &app{}

	root := &cobra.Command{
		Use:           "oscar",
		Short:         "Browse Academy Award and film data",
		Long:          "oscar is a terminal client for the Oscar explorer API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(logging.Config{Level: logLevel, Format: "console"})
			if sessionDir == "" {
				d, err := session.DefaultDir()
				if err != nil {
					return err
				}
				sessionDir = d
			}
			a.out = cmd.OutOrStdout()
			a.sess = session.New(session.NewFileStore(sessionDir))
			if err := a.sess.Hydrate(); err != nil {
				logging.Warn().Err(err).Msg("ignoring unreadable session")
			}
			a.api = client.New(apiURL, a.sess, client.WithTimeout(timeout))
			a.sess.Attach(a.api)
			return nil
		},
	}

	def := os.Getenv("OSCAR_API_URL")
	if def == "" {
		def = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&apiURL, "api", def, "API base URL (OSCAR_API_URL)")
	root.PersistentFlags().StringVar(&sessionDir, "session-dir", "", "session directory (OSCAR_SESSION_DIR)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")

	root.AddCommand(
		loginCmd(a), registerCmd(a), logoutCmd(a), whoamiCmd(a),
		dashboardCmd(a), filmsCmd(a),
		peopleCmd(a, client.Actors), peopleCmd(a, client.Directors),
		genresCmd(a), awardsCmd(a),
		favoritesCmd(a), profileCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
