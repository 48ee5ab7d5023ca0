package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/halvard/spyglass/internal/layout"
	"github.com/halvard/spyglass/internal/resolve"
	"github.com/halvard/spyglass/internal/tui"
	"github.com/halvard/spyglass/internal/x11"
)

func runPick(args []string) int {
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	app := fs.String("app", "", "only offer windows of this application")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spyglass pick [-app NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactively pick a window, choose a layout and screen, and apply it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "pick requires an interactive terminal (stdin/stdout must be TTYs)")
		return 1
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer conn.Close()

	snap, err := conn.Snapshot()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	windows := snap.Windows
	if *app != "" {
		windows = resolve.WindowsOfApp(*app, snap)
	}

	screens, err := conn.Screens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	result, err := tui.Run(windows, screens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !result.Accepted {
		return 0
	}

	win := result.Window
	target, err := resolve.Screen(result.Screen, screens, &win)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	frame, err := layout.Compute(win, &result.Preset, layout.Overrides{}, target, screens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := conn.ApplyFrame(win.ID, frame); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := conn.Activate(win.ID); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Printf("placed %d (%s): %s on screen %d\n", win.ID, win.App, result.Preset, target.Index)
	return 0
}
