// Command pipeworks starts the pipe building game.
//
// It opens one map configuration from the config directory and runs it in
// either the desktop window (default) or the terminal. Tab cycles through
// the other maps in the directory, resuming each where it was left.
//
// Flags can also come from the environment or a .env file: CONFIG_DIR,
// PIPEWORKS_MAP and PIPEWORKS_FRONTEND.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/pipeworks/desktop"
	"github.com/wricardo/mcp-training/pipeworks/game/config"
	"github.com/wricardo/mcp-training/pipeworks/game/session"
	"github.com/wricardo/mcp-training/pipeworks/terminal"
	"github.com/wricardo/mcp-training/pipeworks/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Pipeworks"
)

const (
	frontendDesktop  = "desktop"
	frontendTerminal = "terminal"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:    "pipeworks",
		Usage:   "lay out pipe networks on a tile map",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing map configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "map",
				Usage:   "map configuration to open (default: classic)",
				Sources: cli.EnvVars("PIPEWORKS_MAP"),
			},
			&cli.StringFlag{
				Name:    "frontend",
				Value:   frontendDesktop,
				Usage:   "desktop or terminal",
				Sources: cli.EnvVars("PIPEWORKS_FRONTEND"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: "pipeworks.log",
				Usage: "log destination while the terminal front end owns the screen",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "maps",
				Usage:  "list the map configurations in the config directory",
				Action: listMaps,
			},
			{
				Name:   "validate",
				Usage:  "check every map configuration and the catalogs they use",
				Action: validateMaps,
			},
		},
		Action: run,
	}
}

// run opens the requested map and hands it to the selected front end
func run(ctx context.Context, cmd *cli.Command) error {
	frontend := cmd.String("frontend")
	if err := validateFrontend(frontend); err != nil {
		return err
	}

	closeLog, err := setupLogging(cmd.Bool("debug"), frontend, cmd.String("log-file"))
	if err != nil {
		return err
	}
	defer closeLog()

	log.Printf("Starting %s v%s (frontend: %s)", AppName, Version, frontend)

	sessions, start, err := initializeSessions(cmd.String("config-dir"), cmd.String("map"), cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}

	if frontend == frontendTerminal {
		return terminal.Run(sessions, start)
	}
	return desktop.Run(sessions, start)
}

func validateFrontend(name string) error {
	switch name {
	case frontendDesktop, frontendTerminal:
		return nil
	}
	return fmt.Errorf("unknown frontend %q: use %s or %s", name, frontendDesktop, frontendTerminal)
}

// setupLogging applies the log flags. The terminal front end draws on stdout
// and stderr, so its logs go to logFile instead.
func setupLogging(debug bool, frontend, logFile string) (func(), error) {
	if debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	if frontend != frontendTerminal {
		return func() {}, nil
	}
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// initializeSessions wires the config and session managers and opens the
// starting map.
func initializeSessions(configDir, mapName string, debug bool) (*session.Manager, *session.Session, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	sessions := session.NewManager(configManager)
	sessions.SetDebug(debug)

	start, err := sessions.Open(mapName)
	if err != nil {
		return nil, nil, err
	}
	return sessions, start, nil
}

func listMaps(ctx context.Context, cmd *cli.Command) error {
	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}
	infos, err := configManager.ListConfigs()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if len(infos) == 0 {
		fmt.Fprintf(w, "No map configurations in %s (the built-in map is used)\n", configManager.Dir())
		return nil
	}
	for _, info := range infos {
		marker := " "
		if info.ConfigID == configManager.DefaultID() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %-20s %4dx%-4d %s\n", marker, info.ConfigID, info.Name, info.Width, info.Height, info.Description)
	}
	return nil
}

func validateMaps(ctx context.Context, cmd *cli.Command) error {
	results, err := validate.Dir(cmd.String("config-dir"))
	if err != nil {
		return err
	}
	if !validate.Report(cmd.Root().Writer, results) {
		return fmt.Errorf("some configurations have errors")
	}
	return nil
}
