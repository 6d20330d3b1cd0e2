package student

// Event is a campus activity students can join.
type Event struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"max=2000"`
	Category     string `json:"category" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Time         string `json:"time" validate:"required,datetime=15:04"`
	Location     string `json:"location" validate:"required"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Participants int    `json:"participants"`
	MaxCapacity  int    `json:"maxCapacity,omitempty" validate:"omitempty,min=1"`
	Duration     string `json:"duration,omitempty"`
}

// DefaultEvents are shown while no event has been published.
func DefaultEvents() []*Event {
	return []*Event{
		{
			ID:           "1",
			Title:        "International Food Fair",
			Description:  "Taste foods from around the world with fellow students",
			Category:     "cultural",
			Date:         "2024-12-15",
			Time:         "18:00",
			Location:     "University Center",
			ImageURL:     "/images/food-fair.jpg",
			Participants: 156,
			MaxCapacity:  200,
		},
		{
			ID:           "2",
			Title:        "French Conversation Cafe",
			Description:  "Practice French in a relaxed cafe setting",
			Category:     "language",
			Date:         "2024-12-12",
			Time:         "16:00",
			Location:     "Campus Cafe",
			ImageURL:     "/images/french-cafe.jpg",
			Participants: 42,
			MaxCapacity:  50,
		},
	}
}
