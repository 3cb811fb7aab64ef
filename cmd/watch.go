package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/reminder"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically report learners with facts due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		wc := reminder.WatcherConfig{
			Interval:    cfg.Watch.Interval,
			Users:       cfg.Watch.Users,
			Concurrency: cfg.Watch.Concurrency,
		}
		if users, _ := cmd.Flags().GetStringSlice("users"); len(users) > 0 {
			wc.Users = users
		}
		if interval, _ := cmd.Flags().GetDuration("interval"); interval > 0 {
			wc.Interval = interval
		}
		if len(wc.Users) == 0 {
			return fmt.Errorf("no learners to watch: set watch.users or pass --users")
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		w := cmd.OutOrStdout()
		notifier := reminder.NotifierFunc(func(_ context.Context, userID string, due int) error {
			_, err := fmt.Fprintln(w, theme.Warn.Render(fmt.Sprintf("%s has %d fact(s) due for review", userID, due)))
			return err
		})
		watcher := reminder.NewWatcher(newTracker(st), notifier, wc, logger.Named("watch"))

		if once, _ := cmd.Flags().GetBool("once"); once {
			_, err := watcher.RunOnce(cmd.Context())
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		watcher.Stop()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringSlice("users", nil, "Learners to watch (default watch.users)")
	watchCmd.Flags().Duration("interval", 0, "Time between scans (default watch.interval)")
	watchCmd.Flags().Bool("once", false, "Scan once and exit")
}
