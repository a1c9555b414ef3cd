package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cjeanneret/cardcam/internal/config"
	"github.com/cjeanneret/cardcam/internal/debug"
	"github.com/cjeanneret/cardcam/internal/logic/capture"
	"github.com/cjeanneret/cardcam/internal/notice"
)

type snapOptions struct {
	save    bool
	request bool
}

func newSnapCmd(f *globalFlags) *cobra.Command {
	opts := snapOptions{}
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Take a single photo without the TUI",
		Long: "snap runs the capture flow once: resolve camera permission, capture,\n" +
			"optionally save, then print the photo summary on stdout. Notices and\n" +
			"debug output go to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			return runSnap(cmd.Context(), cfg, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&opts.save, "save", true, "save the photo after capture")
	cmd.Flags().BoolVar(&opts.request, "request", true, "ask for camera access again if it was denied")
	return cmd
}

// runSnap drives the controller through one capture. Debug output is routed
// through the notice bus before anything is initialized, so it interleaves
// with flow notices on errOut.
func runSnap(ctx context.Context, cfg *config.Config, opts snapOptions, out, errOut io.Writer) error {
	bus := notice.NewBroadcaster()
	unsub := bus.SubscribeFunc(func(n notice.Notice) {
		fmt.Fprintf(errOut, "%s [%s] %s\n", n.Time.Format("15:04:05.000"), n.Level, n.Msg)
	})
	defer unsub()

	debug.SetOutput(notice.Writer(bus))
	debug.Init(cfg.Defaults.DebugLevel)
	defer debug.Init(debug.LevelOff)

	a, err := newApp(cfg, bus)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(errOut, "cardcam: %v\n", err)
		}
	}()

	step := func(run func(context.Context) (capture.Snapshot, error)) (capture.Snapshot, error) {
		sctx, cancel := context.WithTimeout(ctx, cfg.CaptureTimeout())
		defer cancel()
		return run(sctx)
	}

	snap, err := step(a.ctrl.Start)
	if errors.Is(err, capture.ErrPermissionDenied) && opts.request {
		snap, err = step(a.ctrl.RequestPermission)
	}
	if err != nil {
		return fmt.Errorf("camera unavailable: %w", err)
	}
	if snap.Kind() != capture.KindCameraLive {
		return fmt.Errorf("camera unavailable: flow is %s", snap.Kind())
	}

	snap, err = step(a.ctrl.Capture)
	if err != nil {
		return err
	}
	photo, ok := snap.Photo()
	if !ok {
		return fmt.Errorf("capture finished in %s without a photo", snap.Kind())
	}

	if opts.save {
		if _, err := step(a.ctrl.Save); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(out, "%s\t%s\t%s\t%s\t%d bytes\n",
		photo.ID, photo.Source, photo.Dimensions(), photo.URI, photo.Size())
	return err
}
