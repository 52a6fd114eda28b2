package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		Accent: "#957FB8", // oniViolet

		Todo:         "#7E9CD8", // crystalBlue
		InProgress:   "#E6C384", // carpYellow
		Done:         "#98BB6C", // springGreen
		ColumnBorder: "#54546D", // sumiInk6

		PriorityLow:    "#7AA89F", // waveAqua2
		PriorityMedium: "#FFA066", // surimiOrange
		PriorityHigh:   "#E82424", // samuraiRed

		Title:  "#D27E99", // sakuraPink
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		SuccessFg: "#98BB6C",
		WarningFg: "#FF9E3B", // roninYellow
		ErrorFg:   "#E82424",
		ErrorBg:   "#43242B", // winterRed
	}
}
