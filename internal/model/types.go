package model

import (
	"encoding/json"
	"strings"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// MealTypes is the display order used by day views.
var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

const (
	WorkoutCompleted  = "completed"
	WorkoutInProgress = "in_progress"
)

type Measurement struct {
	ID                int64   `json:"id,omitempty"`
	Date              string  `json:"date"`
	Weight            *Number `json:"weight,omitempty"`
	Height            *Number `json:"height,omitempty"`
	BodyFatPercentage *Number `json:"body_fat_percentage,omitempty"`
	Chest             *Number `json:"chest,omitempty"`
	Waist             *Number `json:"waist,omitempty"`
	Hips              *Number `json:"hips,omitempty"`
	ArmsLeft          *Number `json:"arms_left,omitempty"`
	ArmsRight         *Number `json:"arms_right,omitempty"`
	ThighsLeft        *Number `json:"thighs_left,omitempty"`
	ThighsRight       *Number `json:"thighs_right,omitempty"`
	CalvesLeft        *Number `json:"calves_left,omitempty"`
	CalvesRight       *Number `json:"calves_right,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// MeasurementInput is the form payload for create/update. Limb values are
// single numbers; the backend splits them into left/right columns.
type MeasurementInput struct {
	Date              string   `json:"date,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	BodyFatPercentage *float64 `json:"body_fat_percentage,omitempty"`
	Chest             *float64 `json:"chest,omitempty"`
	Waist             *float64 `json:"waist,omitempty"`
	Hips              *float64 `json:"hips,omitempty"`
	Arms              *float64 `json:"arms,omitempty"`
	Thighs            *float64 `json:"thighs,omitempty"`
	Calves            *float64 `json:"calves,omitempty"`
}

func (in MeasurementInput) Empty() bool {
	return strings.TrimSpace(in.Date) == "" && in.Weight == nil && in.BodyFatPercentage == nil &&
		in.Chest == nil && in.Waist == nil && in.Hips == nil &&
		in.Arms == nil && in.Thighs == nil && in.Calves == nil
}

type MealPlan struct {
	ID                int64   `json:"id,omitempty"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Goal              string  `json:"goal,omitempty"`
	DailyCalories     *Number `json:"daily_calories,omitempty"`
	TargetCalories    *Number `json:"target_calories,omitempty"`
	ProteinPercentage *Number `json:"protein_percentage,omitempty"`
	CarbsPercentage   *Number `json:"carbs_percentage,omitempty"`
	FatsPercentage    *Number `json:"fats_percentage,omitempty"`
	DailyProtein      *Number `json:"daily_protein,omitempty"`
	DailyCarbs        *Number `json:"daily_carbs,omitempty"`
	DailyFat          *Number `json:"daily_fat,omitempty"`
	Protein           *Number `json:"protein,omitempty"`
	Carbs             *Number `json:"carbs,omitempty"`
	Carbohydrates     *Number `json:"carbohydrates,omitempty"`
	Fat               *Number `json:"fat,omitempty"`
	Fats              *Number `json:"fats,omitempty"`
	DurationDays      int     `json:"duration_days,omitempty"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
}

// Calories prefers daily_calories and falls back to target_calories.
func (p MealPlan) Calories() float64 {
	if v := p.DailyCalories.Float(); v > 0 {
		return v
	}
	return p.TargetCalories.Float()
}

func (p MealPlan) HasWindow() bool {
	return p.StartDate != nil && *p.StartDate != "" && p.EndDate != nil && *p.EndDate != ""
}

// Window returns the raw start/end strings, empty when unset.
func (p MealPlan) Window() (string, string) {
	var start, end string
	if p.StartDate != nil {
		start = *p.StartDate
	}
	if p.EndDate != nil {
		end = *p.EndDate
	}
	return start, end
}

type MealPlanInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	TargetCalories *float64 `json:"target_calories,omitempty"`
	TargetProtein  *float64 `json:"target_protein,omitempty"`
	TargetCarbs    *float64 `json:"target_carbs,omitempty"`
	TargetFats     *float64 `json:"target_fats,omitempty"`
	DurationDays   int      `json:"duration_days,omitempty"`
}

type MealItem struct {
	ID          int64  `json:"id,omitempty"`
	FoodID      int64  `json:"food_id,omitempty"`
	FoodName    string `json:"food_name,omitempty"`
	ServingSize Number `json:"serving_size"`
	Calories    Number `json:"calories"`
	Protein     Number `json:"protein"`
	Carbs       Number `json:"carbs"`
	Fats        Number `json:"fats"`
	Food        *Food  `json:"food,omitempty"`
}

func (it MealItem) Name() string {
	if it.FoodName != "" {
		return it.FoodName
	}
	if it.Food != nil {
		return it.Food.Name
	}
	return ""
}

type Meal struct {
	ID            int64      `json:"id,omitempty"`
	Name          string     `json:"name"`
	Date          string     `json:"date"`
	MealType      string     `json:"meal_type"`
	Items         []MealItem `json:"items"`
	TotalCalories Number     `json:"total_calories"`
	TotalProtein  Number     `json:"total_protein"`
	TotalCarbs    Number     `json:"total_carbs"`
	TotalFats     Number     `json:"total_fats"`
}

// UnmarshalJSON accepts total_fat as an alias of total_fats.
func (m *Meal) UnmarshalJSON(b []byte) error {
	type plain Meal
	aux := struct {
		*plain
		TotalFat *Number `json:"total_fat"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if m.TotalFats == 0 && aux.TotalFat != nil {
		m.TotalFats = *aux.TotalFat
	}
	if m.Items == nil {
		m.Items = []MealItem{}
	}
	return nil
}

type MealItemInput struct {
	FoodID      int64   `json:"food_id"`
	ServingSize float64 `json:"serving_size"`
}

type MealInput struct {
	Name     string          `json:"name"`
	MealType string          `json:"meal_type"`
	Date     string          `json:"date"`
	Items    []MealItemInput `json:"items"`
}

type Food struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Calories      Number `json:"calories"`
	Protein       Number `json:"protein"`
	Carbohydrates Number `json:"carbohydrates"`
	Fats          Number `json:"fats"`
	ServingSize   Number `json:"serving_size"`
	Unit          string `json:"unit"`
	IsCustom      bool   `json:"is_custom"`
}

type FoodInput struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
	ServingSize   float64 `json:"serving_size"`
	Unit          string  `json:"unit"`
}

type Favorite struct {
	ID   int64 `json:"id"`
	Food Food  `json:"food"`
}

type Recipe struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Calories    Number `json:"calories"`
	Protein     Number `json:"protein"`
	Carbs       Number `json:"carbs"`
	Fats        Number `json:"fats"`
	Time        string `json:"time"`
	Servings    string `json:"servings"`
	Image       string `json:"image,omitempty"`
}

// UnmarshalJSON tolerates numeric time/servings values.
func (r *Recipe) UnmarshalJSON(b []byte) error {
	type plain Recipe
	aux := struct {
		*plain
		Time     json.RawMessage `json:"time"`
		Servings json.RawMessage `json:"servings"`
		Image    *string         `json:"image"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.Time = rawText(aux.Time)
	r.Servings = rawText(aux.Servings)
	if aux.Image != nil {
		r.Image = *aux.Image
	}
	return nil
}

type RecipeInput struct {
	Name        string
	Description string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fats        float64
	Time        string
	Servings    string
	ImagePath   string
}

type Workout struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Date                string          `json:"date"`
	Status              string          `json:"status"`
	Duration            Number          `json:"duration"`
	TotalCaloriesBurned Number          `json:"total_calories_burned"`
	ProgressPercentage  Number          `json:"progress_percentage"`
	Exercises           json.RawMessage `json:"exercises,omitempty"`
	ExerciseChecks      json.RawMessage `json:"exercise_checks,omitempty"`
}

type ExerciseCheck struct {
	ExerciseName string `json:"exercise_name"`
	Checked      bool   `json:"checked"`
	Sets         Number `json:"sets"`
	Reps         Number `json:"reps"`
	Weight       Number `json:"weight"`
	Duration     Number `json:"duration"`
}

type Metabolism struct {
	BMR  *Number `json:"bmr"`
	TDEE *Number `json:"tdee"`
}

type GoalProgress struct {
	CurrentWeight        *Number `json:"current_weight"`
	TargetWeight         *Number `json:"target_weight"`
	WeightRemaining      *Number `json:"weight_remaining"`
	EstimatedWeeksToGoal *Number `json:"estimated_weeks_to_goal"`
}

type WeightProgress struct {
	StartWeight   *Number `json:"start_weight"`
	CurrentWeight *Number `json:"current_weight"`
	WeightChange  *Number `json:"weight_change"`
}

type WorkoutTrends struct {
	TotalWorkouts        int    `json:"total_workouts"`
	TotalDurationMinutes Number `json:"total_duration_minutes"`
}

type RecentProgress struct {
	WeightChange   *Number         `json:"weight_change"`
	BodyFatChange  *Number         `json:"body_fat_change"`
	StartBodyFat   *Number         `json:"start_body_fat"`
	CurrentBodyFat *Number         `json:"current_body_fat"`
	WeightProgress *WeightProgress `json:"weight_progress"`
	WorkoutTrends  *WorkoutTrends  `json:"workout_trends"`
}

type Dashboard struct {
	Metabolism     *Metabolism     `json:"metabolism"`
	GoalProgress   *GoalProgress   `json:"goal_progress"`
	RecentProgress *RecentProgress `json:"recent_progress"`
}

type WeightPoint struct {
	Date   string `json:"date"`
	Weight Number `json:"weight"`
}

type BodyFatPoint struct {
	Date              string `json:"date"`
	BodyFatPercentage Number `json:"body_fat_percentage"`
}

type CalorieTrend struct {
	Date   string `json:"date"`
	Intake Number `json:"intake"`
	Burned Number `json:"burned"`
}

type ExerciseType struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ProgressReport struct {
	WeightHistory  []WeightPoint  `json:"weight_history"`
	BodyFatHistory []BodyFatPoint `json:"body_fat_history"`
	CalorieTrends  []CalorieTrend `json:"calorie_trends"`
	ExerciseTypes  []ExerciseType `json:"exercise_types"`
	CurrentWeight  *Number        `json:"current_weight"`
	WeightGoal     *Number        `json:"weight_goal"`
	CurrentBodyFat *Number        `json:"current_body_fat"`
	BodyFatGoal    *Number        `json:"body_fat_goal"`
	TotalWorkouts  *Number        `json:"total_workouts"`
	WorkoutGoal    *Number        `json:"workout_goal"`
}

// RegisterInput is the account sign-up payload. Profile fields are
// optional; empty ones are left out so the backend skips the profile.
type RegisterInput struct {
	Email         string   `json:"email"`
	Username      string   `json:"username"`
	Password      string   `json:"password"`
	Password2     string   `json:"password2"`
	FirstName     string   `json:"first_name,omitempty"`
	LastName      string   `json:"last_name,omitempty"`
	DateOfBirth   string   `json:"date_of_birth,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	ActivityLevel string   `json:"activity_level,omitempty"`
	FitnessGoal   string   `json:"fitness_goal,omitempty"`
}

// TokenPair is a JWT access token and the refresh token that renews it.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func rawText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return s
}
