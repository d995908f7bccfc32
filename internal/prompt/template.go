package prompt

import (
	"iter"
	"maps"
	"slices"
)

// Template is a named prompt with {placeholder} tokens and a default output shape.
type Template struct {
	Name        string
	Description string
	Prompt      string
	Required    []string
	Defaults    map[string]string
	AspectRatio string
	Size        string
}

// Optional returns the names of placeholders that have defaults, sorted.
func (t Template) Optional() []string {
	return slices.Sorted(maps.Keys(t.Defaults))
}

var templates = []Template{
	{
		Name:        "team-badge",
		Description: "Circular team badge with team name and colors",
		Prompt: "A professional circular sports team badge for team '{teamName}' " +
			"with primary color {primaryColor} and accent color {accentColor}. " +
			"Clean modern design, suitable for a sports app icon. " +
			"Transparent background, no text artifacts.",
		Required:    []string{"teamName", "primaryColor"},
		Defaults:    map[string]string{"accentColor": "gold"},
		AspectRatio: "1:1",
		Size:        "1K",
	},
	{
		Name:        "session-banner",
		Description: "Wide banner for session headers (16:9)",
		Prompt: "A wide sports event banner for a golf session called '{sessionName}'. " +
			"Feature team names '{teamAName}' vs '{teamBName}'. " +
			"Background color {backgroundColor}. " +
			"Professional, clean typography, modern sports graphic design.",
		Required:    []string{"sessionName", "teamAName", "teamBName"},
		Defaults:    map[string]string{"backgroundColor": "dark green"},
		AspectRatio: "16:9",
		Size:        "1K",
	},
	{
		Name:        "score-icon",
		Description: "Small score indicator icon",
		Prompt: "A minimal, clean score indicator icon showing the number '{score}' " +
			"in {teamColor} color. Round shape, bold number centered, " +
			"suitable as a small app icon. Transparent background.",
		Required:    []string{"score", "teamColor"},
		Defaults:    map[string]string{},
		AspectRatio: "1:1",
		Size:        "1K",
	},
	{
		Name:        "leaderboard-header",
		Description: "Wide header graphic for the leaderboard page",
		Prompt: "A wide leaderboard header graphic for '{eventName}'. " +
			"Feature '{teamAName}' vs '{teamBName}' in a dramatic sports competition style. " +
			"Golf-themed, professional, vibrant colors, modern design.",
		Required:    []string{"eventName", "teamAName", "teamBName"},
		Defaults:    map[string]string{},
		AspectRatio: "16:9",
		Size:        "1K",
	},
	{
		Name:        "player-avatar",
		Description: "Placeholder avatar for player profiles",
		Prompt: "A stylized placeholder avatar for a golfer named '{playerName}'. " +
			"Team color {teamColor}. Silhouette style with golf club, " +
			"circular frame, clean modern design.",
		Required:    []string{"playerName", "teamColor"},
		Defaults:    map[string]string{},
		AspectRatio: "1:1",
		Size:        "1K",
	},
}

// Get looks a template up by exact name.
func Get(name string) (Template, bool) {
	for _, t := range templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// All yields the catalogue in registration order. Each call starts over.
func All() iter.Seq[Template] {
	return func(yield func(Template) bool) {
		for _, t := range templates {
			if !yield(t) {
				return
			}
		}
	}
}
