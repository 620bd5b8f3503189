package achievements

// Category groups achievements for display.
type Category string

const (
	CategoryMilestone Category = "milestone"
	CategoryStreak    Category = "streak"
	CategoryMastery   Category = "mastery"
	CategorySpeed     Category = "speed"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryMilestone, CategoryStreak, CategoryMastery, CategorySpeed}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryMilestone:
		return "Milestones"
	case CategoryStreak:
		return "Streaks"
	case CategoryMastery:
		return "Mastery"
	case CategorySpeed:
		return "Speed"
	default:
		return string(c)
	}
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryMilestone:
		return "🏆"
	case CategoryStreak:
		return "⚡"
	case CategoryMastery:
		return "💎"
	case CategorySpeed:
		return "🚀"
	default:
		return "✦"
	}
}

// Achievement is a badge a student can earn once.
type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Rarity      Rarity   `json:"rarity"`
}
