package api

import (
	"context"
	"fmt"

	"github.com/madDev-12/fitnutrition/internal/model"
)

func (c *Client) ListWorkouts(ctx context.Context) ([]model.Workout, error) {
	return listAll[model.Workout](ctx, c, "workouts/workouts/", nil)
}

func (c *Client) ThisWeekWorkouts(ctx context.Context) ([]model.Workout, error) {
	return listAll[model.Workout](ctx, c, "workouts/workouts/this_week/", nil)
}

func (c *Client) GetWorkout(ctx context.Context, id int64) (model.Workout, error) {
	var out model.Workout
	body, err := c.get(ctx, fmt.Sprintf("workouts/workouts/%d/", id), nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode workout %d: %w", id, err)
	}
	return out, nil
}
