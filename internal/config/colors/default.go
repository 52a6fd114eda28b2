package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Columns
		Todo:         "#5F87D7",
		InProgress:   "#FFD700",
		Done:         "#5FD75F",
		ColumnBorder: "#585858",

		// Priorities
		PriorityLow:    "#5FAFAF",
		PriorityMedium: "#FFAF00",
		PriorityHigh:   "#FF5F5F",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Notifications
		SuccessFg: "#5FD75F",
		WarningFg: "#FFD700",
		ErrorFg:   "#FF0000",
		ErrorBg:   "#5F0000",
	}
}
