package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		input string
		want  Route
	}{
		{"home", Route{Page: PageHome}},
		{":home", Route{Page: PageHome}},
		{"inicio", Route{Page: PageHome}},
		{"episodes", Route{Page: PageEpisodes}},
		{"episodios", Route{Page: PageEpisodes}},
		{"episode 3", Route{Page: PageEpisodeDetail, EpisodeID: 3}},
		{"ep 12", Route{Page: PageEpisodeDetail, EpisodeID: 12}},
		{"/", Route{Page: PageHome}},
		{"/episodes", Route{Page: PageEpisodes}},
		{"/episode/3", Route{Page: PageEpisodeDetail, EpisodeID: 3}},
		{"/about", Route{Page: PageAbout}},
		{"/contact", Route{Page: PageContact}},
		{"about", Route{Page: PageAbout}},
		{"contacto", Route{Page: PageContact}},
		{"help", Route{Page: PageHelp}},
		{"q", Route{Page: PageQuit}},
		{"  episodes  ", Route{Page: PageEpisodes}},
		{"EPISODE 5", Route{Page: PageEpisodeDetail, EpisodeID: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRoute(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRouteErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"launch",
		"episode",
		"episode abc",
		"/episode/xyz",
		"/nowhere",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRoute(input)
			assert.Error(t, err)
		})
	}
}
