package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Todo:         "#FFFFFF",
		InProgress:   "#D0D0D0",
		Done:         "#8A8A8A",
		ColumnBorder: "#585858",

		PriorityLow:    "#8A8A8A",
		PriorityMedium: "#D0D0D0",
		PriorityHigh:   "#FFFFFF",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		SuccessFg: "#FFFFFF",
		WarningFg: "#FFFFFF",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",
	}
}
