// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// syncCommand runs a full reconciliation of subscriptions against the
// artists file.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync YouTube Music subscriptions with the artists file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "artists-file",
				Aliases: []string{"f"},
				Usage:   "Path to the artists file (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report planned actions without applying them",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "Apply changes (shorthand for --dry-run=false)",
			},
			&cli.FloatFlag{
				Name:  "delay",
				Usage: "Seconds to wait between subscribe attempts (overrides config)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Review the plan in an interactive TUI before applying",
			},
		},
		Action: r.Sync,
	}
}

// planCommand prints the diff without touching anything.
func planCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Show planned actions without executing them",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "artists-file",
				Aliases: []string{"f"},
				Usage:   "Path to the artists file (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the plan as JSON",
			},
		},
		Action: r.Plan,
	}
}

// listCommand lists current subscriptions, live or cached.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List current artist subscriptions",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "cached",
				Usage: "Read from the local artist cache instead of the service",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of cached artists to show (0 = all)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Export to a file (.txt, .csv or .json by extension)",
			},
		},
		Action: r.List,
	}
}

// validateCommand checks the artists file without contacting the service.
func validateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Validate the artists file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "artists-file",
				Aliases: []string{"f"},
				Usage:   "Path to the artists file (overrides config)",
			},
		},
		Action: r.Validate,
	}
}

// statusCommand reports proxy health, cache size, and recent run history.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show service health, cache size, and recent sync runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Number of recent runs to show",
				Value: 10,
			},
		},
		Action: r.Status,
	}
}

// setupCommand handles setup operations for database and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:    "youtube",
				Aliases: []string{"yt", "ytmusic"},
				Usage:   "Configure YouTube Music authentication from browser headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for the headers file (default: ~/.ytsm/headers_raw.txt)",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open music.youtube.com in the browser first",
					},
				},
				Action: r.SetupYouTube,
			},
		},
	}
}
