package intent

import "strings"

// Scene drives the A-Frame sphere on the page.
type Scene struct {
	Color     string
	PositionY float64
	Animation string
}

// DefaultScene is used for GET requests and unmatched questions.
var DefaultScene = Scene{Color: "blue", PositionY: 1.25}

type sceneRule struct {
	keyword string
	scene   Scene
}

var sceneRules = []sceneRule{
	{
		keyword: "bone",
		scene: Scene{
			Color:     "red",
			PositionY: 1.5,
			Animation: "property: position; to: 0 2 -3; dur: 2000; dir: alternate; loop: true",
		},
	},
	{
		keyword: "cell",
		scene: Scene{
			Color:     "green",
			PositionY: 1.0,
			Animation: "property: rotation; to: 0 360 0; dur: 3000; loop: true; easing: linear",
		},
	},
}

// SceneFor derives scene parameters from the English question. It is
// evaluated independently of Matcher.Match.
func SceneFor(question string) Scene {
	lowered := strings.ToLower(question)
	for _, r := range sceneRules {
		if strings.Contains(lowered, r.keyword) {
			return r.scene
		}
	}
	return DefaultScene
}
