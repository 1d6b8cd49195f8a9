package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/madDev-12/fitnutrition/internal/model"
)

func (c *Client) ListMeasurements(ctx context.Context) ([]model.Measurement, error) {
	return listAll[model.Measurement](ctx, c, "measurements/", nil)
}

func (c *Client) GetMeasurement(ctx context.Context, id int64) (model.Measurement, error) {
	var out model.Measurement
	body, err := c.get(ctx, fmt.Sprintf("measurements/%d/", id), nil)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode measurement %d: %w", id, err)
	}
	return out, nil
}

// LatestMeasurement returns ok=false when the backend has no measurement yet.
func (c *Client) LatestMeasurement(ctx context.Context) (model.Measurement, bool, error) {
	var out model.Measurement
	body, err := c.get(ctx, "measurements/latest/", nil)
	if err != nil {
		if isNotFound(err) {
			return out, false, nil
		}
		return out, false, err
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return out, false, nil
	}
	if err := decodeObject(trimmed, &out); err != nil {
		return out, false, fmt.Errorf("decode latest measurement: %w", err)
	}
	return out, true, nil
}

func (c *Client) CreateMeasurement(ctx context.Context, in model.MeasurementInput) (model.Measurement, error) {
	return c.saveMeasurement(ctx, http.MethodPost, "measurements/", in)
}

func (c *Client) UpdateMeasurement(ctx context.Context, id int64, in model.MeasurementInput) (model.Measurement, error) {
	return c.saveMeasurement(ctx, http.MethodPatch, fmt.Sprintf("measurements/%d/", id), in)
}

func (c *Client) saveMeasurement(ctx context.Context, method, path string, in model.MeasurementInput) (model.Measurement, error) {
	var out model.Measurement
	if in.Empty() {
		return out, fmt.Errorf("measurement has no values")
	}
	body, err := c.send(ctx, method, path, in)
	if err != nil {
		return out, err
	}
	if err := decodeObject(body, &out); err != nil {
		return out, fmt.Errorf("decode measurement: %w", err)
	}
	return out, nil
}

func (c *Client) DeleteMeasurement(ctx context.Context, id int64) error {
	_, err := c.send(ctx, http.MethodDelete, fmt.Sprintf("measurements/%d/", id), nil)
	return err
}
