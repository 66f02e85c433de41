// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Output raw JSON"}
}

// setupCommand handles setup operations for configuration and the session database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the session database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles sign-in state
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage your movie account session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "password",
						Aliases: []string{"p"},
						Usage:   "Account password",
						Sources: cli.EnvVars("CINEX_PASSWORD"),
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the session token, plan and cached profile",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show who is signed in and verify the token",
				Action: r.AuthStatus,
			},
		},
	}
}

// dashboardCommand shows the account dashboard
func dashboardCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dashboard",
		Aliases: []string{"dash"},
		Usage:   "Account details and subscription",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "plain", Usage: "Print once instead of opening the interactive view"},
			jsonFlag(),
		},
		Action: r.Dashboard,
		Commands: []*cli.Command{
			{
				Name:  "cancel",
				Usage: "Cancel the active subscription",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
				},
				Action: r.DashboardCancel,
			},
		},
	}
}

// wishlistCommand handles wishlist operations
func wishlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "wishlist",
		Aliases: []string{"wl"},
		Usage:   "Your WishList",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List wishlist movies",
				Flags:  []cli.Flag{jsonFlag()},
				Action: r.WishlistList,
			},
			{
				Name:      "remove",
				Usage:     "Remove a movie from the wishlist",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.WishlistRemove,
			},
			{
				Name:      "open",
				Usage:     "Open a wishlist movie in the browser",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.WishlistOpen,
			},
			{
				Name:  "export",
				Usage: "Export the wishlist to CSV, Markdown, text or JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "csv, markdown, text or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (directory for markdown)",
					},
					&cli.BoolFlag{
						Name:  "posters",
						Usage: "Download posters alongside a markdown export",
					},
				},
				Action: r.WishlistExport,
			},
		},
	}
}

// browseCommand handles the movie catalogue
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "browse",
		Usage:  "Browse the movie catalogue",
		Flags:  []cli.Flag{jsonFlag()},
		Action: r.Browse,
		Commands: []*cli.Command{
			{
				Name:      "open",
				Usage:     "Open a movie page (or the subscription page for premium titles)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.BrowseOpen,
			},
			{
				Name:      "delete",
				Usage:     "Delete a movie (supervisors only)",
				Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
				Action:    r.BrowseDelete,
			},
		},
	}
}

// notifyCommand handles the push notification bridge
func notifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "notify",
		Usage: "Push notification bridge",
		Commands: []*cli.Command{
			{
				Name:  "listen",
				Usage: "Relay push messages to desktop notifications",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Override push.provider (redis, amqp or webhook)",
					},
					&cli.BoolFlag{
						Name:  "log-only",
						Usage: "Log notifications instead of showing them",
					},
				},
				Action: r.NotifyListen,
			},
		},
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	pathArg := []cli.Argument{&cli.StringArg{Name: "path"}}
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the movie API, prints raw JSON",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Direct GET",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output compact JSON"},
				},
				Action: r.APIGet,
			},
			{
				Name:      "post",
				Usage:     "Direct POST with JSON body",
				Arguments: pathArg,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:      "delete",
				Usage:     "Direct DELETE",
				Arguments: pathArg,
				Action:    r.APIDelete,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "start",
				Usage: "Start screen: /, /dashboard or /wishlist",
				Value: "/",
			},
			&cli.BoolFlag{
				Name:  "notify",
				Usage: "Run the push bridge alongside the UI",
			},
		},
		Action: r.TUI,
	}
}
