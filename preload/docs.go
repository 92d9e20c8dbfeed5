package preload

// Docs returns short demo documents spanning distinct subjects. Each group
// shares enough vocabulary for the topic labeler to produce recognizable
// keywords, and the groups are semantically far apart so they separate
// cleanly in embedding space.
func Docs() []string {
	return []string{
		// Cooking
		"Simmer the tomato sauce with garlic and fresh basil",
		"Knead the dough and let the bread rise overnight",
		"Roast the vegetables with olive oil and sea salt",
		"Whisk the eggs and fold them into the pancake batter",
		"Season the grilled chicken with lemon and rosemary",
		"Caramelize the onions slowly over low heat",

		// Space
		"The rocket reached orbit after a flawless launch",
		"Astronauts aboard the station photographed the eclipse",
		"The telescope captured light from a distant galaxy",
		"Engineers tested the lander's descent thrusters",
		"A probe will fly past the icy moon next year",
		"The satellite adjusted its orbit with small burns",

		// Music
		"The guitarist tuned her strings before the encore",
		"A slow piano melody opened the second movement",
		"The drummer kept a steady rhythm through the solo",
		"The choir rehearsed harmonies for the winter concert",
		"He composed the string quartet in a single weekend",
		"The bass line anchors the whole jazz arrangement",

		// Weather
		"Heavy rain flooded the streets by early morning",
		"A cold front will bring snow to the mountains",
		"Thunderstorms rolled across the plains all night",
		"The forecast calls for fog along the coastline",
		"A heatwave pushed temperatures past record highs",
		"Strong winds knocked down branches across town",

		// Software
		"The compiler flagged an unused variable in the loop",
		"We profiled the server and fixed the memory leak",
		"The database index made the query ten times faster",
		"Refactor the parser before adding new syntax",
		"Unit tests caught the regression before release",
		"The scheduler retries failed jobs with backoff",
	}
}
