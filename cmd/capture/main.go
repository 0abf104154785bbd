package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/capture/internal/app"
)

//nolint:gochecknoglobals // Version metadata populated at build time via -ldflags.
var (
	releaseVersion = "dev"
	commit         = "none"
)

type rootFlags struct {
	configPath string
	prefsPath  string
	verbose    bool
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "capture: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "capture",
		Short:         "Terminal front end for the Capture Moments photography site",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file path (default ~/.config/capture/config.toml)")
	root.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "preferences file path (default ~/.config/capture/prefs.toml)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	outbox := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect or redeliver contact messages saved while the server was unreachable",
	}
	outbox.AddCommand(newOutboxListCmd(flags), newOutboxFlushCmd(flags))

	root.AddCommand(newAnalyzeCmd(flags), outbox, newVersionCmd())
	return root
}

func (f *rootFlags) options() app.Options {
	return app.Options{ConfigPath: f.configPath, PrefsPath: f.prefsPath, Verbose: f.verbose}
}

// withEnv opens the application environment for a one-shot command. Logs go
// to stderr so stdout stays clean for the command's output.
func withEnv(flags *rootFlags, fn func(env *app.Env) error) error {
	env, err := app.Open(flags.options())
	if err != nil {
		return err
	}
	runErr := fn(env)
	if cerr := env.Close(); cerr != nil && runErr == nil {
		runErr = cerr
	}
	return runErr
}

func newAnalyzeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze IMAGE_URL",
		Short: "Ask the backend to caption and tag an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(flags, func(env *app.Env) error {
				a, err := env.Client.Analyze(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("analyze: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "caption: %s\n", a.Caption)
				if len(a.Tags) > 0 {
					fmt.Fprintf(out, "tags:    %s\n", strings.Join(a.Tags, ", "))
				}
				if a.DominantColor != "" {
					fmt.Fprintf(out, "color:   %s\n", a.DominantColor)
				}
				return nil
			})
		},
	}
}

func newOutboxListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued contact messages, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(flags, func(env *app.Env) error {
				entries, err := env.Contact.Pending(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "outbox is empty")
					return nil
				}
				now := time.Now()
				for _, e := range entries {
					writeEntry(out, e.ID, e.Name, e.Email, humanize.RelTime(e.CreatedAt, now, "ago", "from now"), e.Attempts, e.LastError)
				}
				return nil
			})
		},
	}
}

func writeEntry(out io.Writer, id, name, email, age string, attempts int, lastErr string) {
	fmt.Fprintf(out, "%s  %s <%s>  queued %s", id, name, email, age)
	if attempts > 0 {
		fmt.Fprintf(out, "  %d %s", attempts, plural(attempts, "retry", "retries"))
	}
	fmt.Fprintln(out)
	if lastErr != "" {
		fmt.Fprintf(out, "    last error: %s\n", lastErr)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func newOutboxFlushCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Try to deliver every queued contact message now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(flags, func(env *app.Env) error {
				report, err := env.Contact.Flush(cmd.Context())
				fmt.Fprintf(cmd.OutOrStdout(), "delivered %d, rejected %d, remaining %d\n",
					report.Delivered, report.Rejected, report.Remaining)
				return err
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "capture %s (commit %s)\n", releaseVersion, commit)
		},
	}
}
