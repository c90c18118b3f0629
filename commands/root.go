// Package commands implements the civicsync command line.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"civicsync-client/api"
	"civicsync-client/config"
	"civicsync-client/logger"
	"civicsync-client/middlewares"
	"civicsync-client/session"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App is the state shared by every command once flags are parsed.
type App struct {
	Config  *config.Config
	Log     *logrus.Entry
	Store   *session.Store
	Session *session.Session
	Client  *api.Client
	Out     io.Writer
}

type rootFlags struct {
	apiURL      string
	sessionFile string
	verbose     bool
}

// NewRootCmd builds the command tree. Output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	app := &App{Out: out}
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "civicsync",
		Short:         "Report and triage municipal issues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(flags)
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "backend API root (overrides config)")
	cmd.PersistentFlags().StringVar(&flags.sessionFile, "session-file", "", "where the login session is kept (overrides config)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log requests at debug level")

	cmd.AddCommand(
		loginCmd(app),
		registerCmd(app),
		logoutCmd(app),
		whoamiCmd(app),
		submitCmd(app),
		myIssuesCmd(app),
		adminCmd(app),
		profileCmd(app),
		configCmd(app),
		stubServerCmd(app),
	)

	return cmd
}

// Execute runs the CLI with os.Args and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd(os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *App) init(flags *rootFlags) error {
	a.Log = logger.New("civicsync")
	if flags.verbose {
		a.Log.Logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.NewLoader(a.Log).Load()
	if err != nil {
		return err
	}
	if flags.apiURL != "" {
		cfg.API.URL = flags.apiURL
	}
	if flags.sessionFile != "" {
		cfg.Session.File = flags.sessionFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.Config = cfg

	a.Store = session.NewStore(cfg.Session.File)
	sess, err := a.Store.Load()
	if err != nil {
		return err
	}
	a.Session = sess
	a.Client = api.NewClient(cfg.API.URL, a.Session, api.WithLogger(a.Log))
	return nil
}

// saveSession replaces the held session in place so the client, which
// reads it, sees the change.
func (a *App) saveSession(sess *session.Session) error {
	if err := a.Store.Save(sess); err != nil {
		return err
	}
	*a.Session = *sess
	return nil
}

func (a *App) clearSession() error {
	if err := a.Store.Clear(); err != nil {
		return err
	}
	*a.Session = session.Session{}
	return nil
}

// guarded runs guard against the session before run.
func (a *App) guarded(guard middlewares.Guard, run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := guard(a.Session); err != nil {
			return err
		}
		return run(cmd, args)
	}
}
