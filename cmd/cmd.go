// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the local database and config.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the local database and run migrations",
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
		},
	}
}

// authCommand handles first-party account operations.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "VibeLab account operations",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create a VibeLab account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
					&cli.StringFlag{Name: "name", Usage: "First name"},
					&cli.StringFlag{Name: "last-name", Usage: "Last name"},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "login",
				Usage: "Log in and store the session token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Account username", Required: true},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "logout",
				Usage: "Drop the session token",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Also drop linked Spotify credentials",
					},
				},
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the logged-in user",
				Action: r.AuthWhoami,
			},
		},
	}
}

// spotifyCommand handles Spotify linking and catalog search.
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify account linking and catalog search",
		Commands: []*cli.Command{
			{
				Name:  "link",
				Usage: "Link a Spotify account via browser authorization",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorize URL instead of opening a browser",
					},
				},
				Action: r.SpotifyLink,
			},
			{
				Name:   "unlink",
				Usage:  "Drop the linked Spotify credential",
				Action: r.SpotifyUnlink,
			},
			{
				Name:  "search",
				Usage: "Search the track catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of results", Value: 10},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.SpotifySearch,
			},
		},
	}
}

// playlistCommand handles playlist operations against the backend.
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List your playlists",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a playlist with its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
					&cli.BoolFlag{Name: "cached", Usage: "Read from the local cache instead of the backend"},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create a playlist, optionally resolving tracks from a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Playlist name", Required: true},
					&cli.StringFlag{Name: "vibe", Usage: "Playlist vibe", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Playlist description"},
					&cli.BoolFlag{Name: "open", Usage: "Anyone with the link can view without a passphrase"},
					&cli.StringFlag{Name: "from-file", Usage: "File of 'title - artist' lines to resolve and add"},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:    "edit",
				Aliases: []string{"update"},
				Usage:   "Update a playlist's name, description, vibe or visibility",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New playlist name"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New playlist description"},
					&cli.StringFlag{Name: "vibe", Usage: "New playlist vibe"},
					&cli.BoolFlag{Name: "open", Usage: "Anyone with the link can view without a passphrase"},
				},
				Action: r.PlaylistEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete a playlist you own",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.PlaylistDelete,
			},
			{
				Name:  "add",
				Usage: "Search the catalog and add the best match to a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "query"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "passphrase", Usage: "Share passphrase when adding to someone else's open playlist"},
				},
				Action: r.PlaylistAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "item", Usage: "Track item ID to remove", Required: true},
				},
				Action: r.PlaylistRemove,
			},
			{
				Name:  "export",
				Usage: "Export a playlist to CSV, Markdown or plain text",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv, md or txt", Value: "txt"},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file path"},
					&cli.BoolFlag{Name: "cached", Usage: "Export from the local cache instead of the backend"},
				},
				Action: r.PlaylistExport,
			},
			{
				Name:   "sync",
				Usage:  "Cache your playlist library locally",
				Action: r.PlaylistSync,
			},
		},
	}
}

// shareCommand handles share links and the passphrase gate.
func shareCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Share links and shared playlist access",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a share link for a playlist you own",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "passphrase", Aliases: []string{"p"}, Usage: "Protect the link with a passphrase"},
				},
				Action: r.ShareCreate,
			},
			{
				Name:  "open",
				Usage: "Open a shared playlist, unlocking it if needed",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "passphrase", Aliases: []string{"p"}, Usage: "Passphrase for a protected playlist"},
					&cli.BoolFlag{Name: "remember", Usage: "Remember an accepted passphrase for next time"},
					&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
				},
				Action: r.ShareOpen,
			},
			{
				Name:  "forget",
				Usage: "Forget the remembered passphrase for a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ShareForget,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive terminal UI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "share",
				Usage: "Open a shared playlist by ID instead of your library",
			},
		},
		Action: r.TUI,
	}
}
