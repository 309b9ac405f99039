package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yanlei1024/rustlings-2025-01-05/internal/app"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/config"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/list"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/logger"
	"github.com/yanlei1024/rustlings-2025-01-05/internal/watch"
)

// The pristine exercise sources ship inside the binary so reset always
// has an unmodified copy to restore from.
//
//go:embed info.yaml exercises
var embedded embed.FS

// version is set via ldflags: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

const usage = `Usage: rustlings [flags] [command]

Commands:
  watch          re-run the current exercise on every save (default)
  list           browse, filter and reset exercises interactively
  run [name]     run one exercise and show its output
  reset <name>   restore an exercise to its original state
  hint [name]    show the hint for an exercise
`

func main() {
	showVersion := flag.Bool("version", false, "Show version")
	shortVersion := flag.Bool("v", false, "Show version (short)")
	debug := flag.Bool("debug", false, "Write debug logs to the log file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion || *shortVersion {
		fmt.Printf("rustlings %s\n", version)
		return
	}

	if err := run(*debug, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(debug bool, args []string) error {
	if err := logger.Init(debug); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to initialize logging: %v\n", err)
	}
	defer logger.Close()

	info, err := config.Load(embedded)
	if err != nil {
		return err
	}
	state, err := app.New(info, embedded)
	if err != nil {
		return err
	}

	command := "watch"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "watch":
		return watchLoop(state)
	case "list":
		_, err := list.RunSession(state, os.Stdin, os.Stdout)
		return err
	case "run":
		return runOnce(state, args[1:])
	case "reset":
		if len(args) < 2 {
			return fmt.Errorf("reset needs an exercise name")
		}
		ind, err := findExercise(state, args[1])
		if err != nil {
			return err
		}
		name, err := state.ResetByIndex(ind)
		if err != nil {
			return err
		}
		fmt.Printf("The exercise `%s` has been reset\n", name)
		return nil
	case "hint":
		ind := state.CurrentIndex()
		if len(args) > 1 {
			if ind, err = findExercise(state, args[1]); err != nil {
				return err
			}
		}
		fmt.Println(state.Exercises()[ind].Hint)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

// watchLoop alternates between watch mode and list sessions until the
// user quits. The progress state is handed over exclusively to one UI
// at a time.
func watchLoop(state *app.AppState) error {
	for {
		watcher, err := watch.NewWatcher("exercises")
		if err != nil {
			return fmt.Errorf("watching exercises: %w", err)
		}

		p := tea.NewProgram(watch.NewModel(state, watcher), tea.WithAltScreen())
		final, err := p.Run()
		watcher.Close()
		if err != nil {
			return err
		}

		if final.(*watch.Model).Outcome() != watch.OutcomeList {
			return nil
		}

		// Both outcomes return to watch mode: continuing switches the
		// current exercise first, quitting the list changes nothing.
		if _, err := list.RunSession(state, os.Stdin, os.Stdout); err != nil {
			return err
		}
	}
}

func runOnce(state *app.AppState, args []string) error {
	ind := state.CurrentIndex()
	if len(args) > 0 {
		var err error
		if ind, err = findExercise(state, args[0]); err != nil {
			return err
		}
	}

	ex := state.Exercises()[ind]
	output, passed := ex.Run(context.Background())
	fmt.Print(output)
	if !passed {
		return fmt.Errorf("exercise `%s` failed", ex.Name)
	}

	if err := state.MarkDone(ind); err != nil {
		return err
	}
	fmt.Printf("Exercise `%s` done!\n", ex.Name)
	return nil
}

func findExercise(state *app.AppState, name string) (int, error) {
	for ind, ex := range state.Exercises() {
		if ex.Name == name {
			return ind, nil
		}
	}
	return 0, fmt.Errorf("no exercise named %q", name)
}
