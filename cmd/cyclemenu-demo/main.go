// Command cyclemenu-demo shows a cycle menu in an SDL window.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu"
	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu/constants"
)

type flags struct {
	config      string
	corner      string
	items       string
	scroll      string
	logLevel    string
	logPath     string
	touchDevice string
	width       int32
	height      int32
	cannoli     bool
	lang        string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:          "cyclemenu-demo",
		Short:        "Show a circular corner menu",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "menu config file (.toml, .yaml)")
	fs.StringVar(&f.corner, "corner", "", "corner to anchor the menu to (top-left, top-right, bottom-left, bottom-right)")
	fs.StringVar(&f.items, "items", "home,search,star,heart,share,camera,trash", "comma separated icon names or .svg paths")
	fs.StringVar(&f.scroll, "scroll", "", "scroll mode (bounded, infinite)")
	fs.StringVar(&f.logLevel, "log-level", "info", "application log level")
	fs.StringVar(&f.logPath, "log-path", "", "log file path")
	fs.StringVar(&f.touchDevice, "touch-device", "", "evdev touchscreen to read in addition to SDL input")
	fs.Int32Var(&f.width, "width", 0, "window width, 0 for the display size")
	fs.Int32Var(&f.height, "height", 0, "window height, 0 for the display size")
	fs.BoolVar(&f.cannoli, "cannoli", false, "use the Cannoli palette")
	fs.StringVar(&f.lang, "lang", "en", "language of the spoken labels")

	return cmd
}

func buildConfig(f *flags) (cyclemenu.Config, error) {
	cfg := cyclemenu.DefaultConfig()
	if f.config != "" {
		loaded, err := cyclemenu.LoadConfig(f.config)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if f.corner != "" {
		cfg.Corner = f.corner
	}
	if f.scroll != "" {
		cfg.ScrollMode = f.scroll
	}
	if len(cfg.Items) == 0 {
		for _, icon := range strings.Split(f.items, ",") {
			if icon = strings.TrimSpace(icon); icon != "" {
				cfg.Items = append(cfg.Items, cyclemenu.ItemConfig{Icon: icon, Title: icon})
			}
		}
	}
	return cfg, cfg.Validate()
}

// hostOptions builds the Init options. The config palette applies over the
// default one unless the Cannoli palette was asked for.
func hostOptions(f *flags, cfg cyclemenu.Config) (cyclemenu.Options, error) {
	opts := cyclemenu.Options{
		WindowTitle:     "Cycle Menu",
		LogPath:         f.logPath,
		IsCannoli:       f.cannoli,
		CornerImagePath: cfg.Theme.CornerImage,
		WindowOptions:   cyclemenu.WindowOptions{Resizable: true, Width: f.width, Height: f.height},
	}
	if f.cannoli {
		return opts, nil
	}

	theme, err := cfg.ThemeOver(cyclemenu.DefaultTheme())
	if err != nil {
		return opts, err
	}
	opts.Theme = &theme
	return opts, nil
}

func run(ctx context.Context, f *flags) error {
	cfg, err := buildConfig(f)
	if err != nil {
		return err
	}

	cyclemenu.SetRawLogLevel(f.logLevel)
	logger := cyclemenu.GetLogger()

	opts, err := hostOptions(f, cfg)
	if err != nil {
		return err
	}
	if err := cyclemenu.Init(opts); err != nil {
		return err
	}
	defer cyclemenu.Close()

	w, err := cyclemenu.NewWidgetFromConfig(cfg, cyclemenu.IconVisualFactory(constants.DefaultItemSize))
	if err != nil {
		return err
	}
	defer w.Destroy()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOpts := cyclemenu.RunOptions{
		OnEvent: func(ev cyclemenu.Event) bool {
			switch ev.Kind {
			case cyclemenu.EventItemClicked, cyclemenu.EventItemLongClicked:
				logger.Info("Item selected", "kind", ev.Kind.String(), "label", w.ItemLabel(f.lang, ev.ItemID))
			case cyclemenu.EventStateChanged:
				logger.Info("State changed", "state", ev.State.String(), "label", w.StateLabel(f.lang), "forced", ev.Forced)
			}
			return true
		},
	}

	if f.touchDevice != "" {
		win := cyclemenu.GetWindow()
		motions, closeTouch, err := openTouch(f.touchDevice, int(win.GetWidth()), int(win.GetHeight()), logger)
		if err != nil {
			return fmt.Errorf("touch device: %w", err)
		}
		defer closeTouch()
		runOpts.Touch = motions
	}

	if err := cyclemenu.Run(ctx, w, runOpts); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
