package models

// Payload field limits, matching the column sizes of the tasks table
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxAssigneeLength    = 50
)
