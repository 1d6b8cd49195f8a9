package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/madDev-12/fitnutrition/internal/model"
)

func (c *Client) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var out model.Dashboard
	body, err := c.get(ctx, "analytics/dashboard/", nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode dashboard: %w", err)
	}
	return out, nil
}

// Progress fetches the analytics report for an inclusive YYYY-MM-DD range.
func (c *Client) Progress(ctx context.Context, startDate, endDate string) (model.ProgressReport, error) {
	var out model.ProgressReport
	q := url.Values{}
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	body, err := c.get(ctx, "analytics/progress/", q)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode progress: %w", err)
	}
	return out, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
