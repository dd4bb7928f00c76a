package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Page identifies a top-level view of the app.
type Page int

const (
	PageHome Page = iota
	PageEpisodes
	PageEpisodeDetail
	PageAbout
	PageContact
	PageHelp
	PageQuit
)

// Route is a parsed command-line target: a page plus, for the episode
// detail page, the episode id.
type Route struct {
	Page      Page
	EpisodeID int
}

// ParseRoute interprets a command entered in command mode. Both the short
// form ("episode 3") and the path form ("/episode/3") are accepted.
func ParseRoute(input string) (Route, error) {
	cmd := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), ":"))
	if cmd == "" {
		return Route{}, fmt.Errorf("empty command")
	}

	if strings.HasPrefix(cmd, "/") {
		return parsePath(cmd)
	}

	fields := strings.Fields(strings.ToLower(cmd))
	switch fields[0] {
	case "home", "inicio":
		return Route{Page: PageHome}, nil
	case "episodes", "episodios", "eps":
		return Route{Page: PageEpisodes}, nil
	case "episode", "episodio", "ep":
		if len(fields) < 2 {
			return Route{}, fmt.Errorf("episode: missing id")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return Route{}, fmt.Errorf("episode: invalid id %q", fields[1])
		}
		return Route{Page: PageEpisodeDetail, EpisodeID: id}, nil
	case "about", "acerca":
		return Route{Page: PageAbout}, nil
	case "contact", "contacto":
		return Route{Page: PageContact}, nil
	case "help", "h":
		return Route{Page: PageHelp}, nil
	case "quit", "q", "exit":
		return Route{Page: PageQuit}, nil
	default:
		return Route{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

func parsePath(path string) (Route, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 1 && parts[0] == "":
		return Route{Page: PageHome}, nil
	case len(parts) == 1 && parts[0] == "episodes":
		return Route{Page: PageEpisodes}, nil
	case len(parts) == 2 && parts[0] == "episode":
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			return Route{}, fmt.Errorf("invalid episode id %q", parts[1])
		}
		return Route{Page: PageEpisodeDetail, EpisodeID: id}, nil
	case len(parts) == 1 && parts[0] == "about":
		return Route{Page: PageAbout}, nil
	case len(parts) == 1 && parts[0] == "contact":
		return Route{Page: PageContact}, nil
	default:
		return Route{}, fmt.Errorf("unknown path %q", path)
	}
}
