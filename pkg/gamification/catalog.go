package gamification

type Category string

const (
	CategoryMeditation Category = "meditation"
	CategoryJournaling Category = "journaling"
	CategoryBreathing  Category = "breathing"
	CategorySocial     Category = "social"
	CategoryExercise   Category = "exercise"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Points      int      `json:"points"`
	Completed   bool     `json:"completed"`
}

// Badge unlocks once cumulative points reach PointsRequired.
type Badge struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Tier           Tier   `json:"tier"`
	PointsRequired int    `json:"points_required"`
	Unlocked       bool   `json:"unlocked"`
}

// DefaultTasks returns a fresh copy of the task catalog, nothing completed.
func DefaultTasks() []Task {
	return []Task{
		{
			ID:          "1",
			Title:       "5-Minute Meditation",
			Description: "Complete a 5-minute guided meditation session",
			Category:    CategoryMeditation,
			Points:      10,
		},
		{
			ID:          "2",
			Title:       "Daily Journal Entry",
			Description: "Write about your thoughts and feelings today",
			Category:    CategoryJournaling,
			Points:      15,
		},
		{
			ID:          "3",
			Title:       "Deep Breathing Exercise",
			Description: "Practice 4-7-8 breathing technique for 2 minutes",
			Category:    CategoryBreathing,
			Points:      8,
		},
		{
			ID:          "4",
			Title:       "Connect with a Friend",
			Description: "Reach out to someone you care about",
			Category:    CategorySocial,
			Points:      20,
		},
	}
}

// DefaultBadges returns a fresh copy of the badge catalog, all locked,
// ordered by PointsRequired.
func DefaultBadges() []Badge {
	return []Badge{
		{
			ID:             "1",
			Name:           "First Steps",
			Description:    "Complete your first wellness task",
			Tier:           TierBronze,
			PointsRequired: 10,
		},
		{
			ID:             "2",
			Name:           "Mindful Practitioner",
			Description:    "Complete 5 meditation tasks",
			Tier:           TierSilver,
			PointsRequired: 50,
		},
		{
			ID:             "3",
			Name:           "Wellness Warrior",
			Description:    "Reach 100 total points",
			Tier:           TierGold,
			PointsRequired: 100,
		},
		{
			ID:             "4",
			Name:           "Mental Health Champion",
			Description:    "Reach 250 total points",
			Tier:           TierPlatinum,
			PointsRequired: 250,
		},
	}
}
