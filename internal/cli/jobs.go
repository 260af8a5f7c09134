package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simurg/simurg-desktop/internal/download"
	"github.com/simurg/simurg-desktop/internal/form"
	"github.com/simurg/simurg-desktop/internal/model"
	"github.com/simurg/simurg-desktop/internal/platform"
	"github.com/simurg/simurg-desktop/internal/session"
)

// ErrPollingStopped is returned when progress polling ends before the job reaches 100%
var ErrPollingStopped = errors.New("progress polling stopped before the job finished")

// jobFlags are shared by the plot and archive commands
type jobFlags struct {
	combo    string
	fileName string
	outDir   string
	timeout  time.Duration
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.combo, "combo", "", "combo identifier (see the combos command)")
	cmd.Flags().StringVar(&f.fileName, "file-name", "", "file name stored in the job request")
	cmd.Flags().StringVarP(&f.outDir, "out", "o", ".", "directory downloaded artifacts are saved to")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "give up after this long, zero waits forever")
	_ = cmd.MarkFlagRequired("combo")
}

func newPlotCommand(flags *globalFlags, version string) *cobra.Command {
	var (
		jf   jobFlags
		date string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render a single plot of a combo and download the image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := form.SinglePlot{Date: date, Time: at, FileName: jf.fileName}.Input()
			if err != nil {
				return err
			}
			return runJob(cmd, flags, version, jf, input, []model.DownloadKind{model.DownloadResult})
		},
	}

	jf.register(cmd)
	cmd.Flags().StringVar(&date, "date", "", "plot date, YYYY-MM-DD")
	cmd.Flags().StringVar(&at, "time", "", "plot time, HH:MM:SS")
	return cmd
}

func newArchiveCommand(flags *globalFlags, version string) *cobra.Command {
	var (
		jf        jobFlags
		f         form.ArchiveAnimation
		images    bool
		animation bool
	)

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Render a time series of a combo and download the images and the animation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.FileName = jf.fileName
			input, err := f.Input()
			if err != nil {
				return err
			}

			var kinds []model.DownloadKind
			if images {
				kinds = append(kinds, model.DownloadImages)
			}
			if animation {
				kinds = append(kinds, model.DownloadAnimation)
			}
			return runJob(cmd, flags, version, jf, input, kinds)
		},
	}

	jf.register(cmd)
	cmd.Flags().StringVar(&f.StartDate, "date", "", "date of the range, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.StartTime, "start", "", "start time, HH:MM:SS")
	cmd.Flags().StringVar(&f.EndTime, "end", "", "end time, HH:MM:SS")
	cmd.Flags().IntVar(&f.IntervalSeconds, "interval", 0, "seconds between frames")
	cmd.Flags().BoolVar(&images, "images", true, "download the zipped images")
	cmd.Flags().BoolVar(&animation, "animation", true, "download the animation")
	return cmd
}

// runJob drives a dashboard session to completion: select the combo and form,
// submit, wait for 100% and download the requested artifacts
func runJob(cmd *cobra.Command, flags *globalFlags, version string, jf jobFlags, input model.FormInput, kinds []model.DownloadKind) error {
	rt, err := setup(cmd, flags.loader(), true, version)
	if err != nil {
		return err
	}
	cat, err := rt.catalog()
	if err != nil {
		return err
	}
	combo, err := cat.Get(jf.combo)
	if err != nil {
		return err
	}
	client, err := rt.client()
	if err != nil {
		return err
	}
	if err := platform.CreateDirectoryIfNotExists(jf.outDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx := cmd.Context()
	if jf.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, jf.timeout)
		defer cancel()
	}

	log := rt.logger.WithFields(logrus.Fields{"combo": combo.ID, "form": input.FormType()})
	saver := download.NewService(client, jf.outDir, log)
	ctrl := session.NewController(client, saver, session.Options{PollInterval: rt.env.PollInterval, Logger: log})
	defer ctrl.Close()

	finished := make(chan struct{})
	var once sync.Once
	ctrl.OnChange(func(s session.State) {
		if !s.HasProgress {
			return
		}
		log.WithField("progress", s.Progress.String()).Info("Job progress")
		if s.Finished() {
			once.Do(func() { close(finished) })
		}
	})

	ctrl.SelectCombo(combo)
	if err := ctrl.SelectType(input.FormType()); err != nil {
		return err
	}
	resp, err := ctrl.Submit(ctx, input)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Request: %s\n", resp.RequestID)

	if err := waitFinished(ctx, ctrl, rt.env.PollInterval, finished); err != nil {
		return err
	}

	for _, kind := range kinds {
		task, err := ctrl.Download(ctx, kind)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved: %s\n", task.OutputPath)
	}
	return nil
}

// waitFinished blocks until the job reports 100%, the poll loop gives up or
// ctx ends
func waitFinished(ctx context.Context, ctrl *session.Controller, interval time.Duration, finished <-chan struct{}) error {
	if interval <= 0 {
		interval = session.DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-finished:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctrl.State().Finished() {
				return nil
			}
			if !ctrl.Polling() {
				return ErrPollingStopped
			}
		}
	}
}
