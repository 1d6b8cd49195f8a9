package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeListShapesAreEquivalent(t *testing.T) {
	t.Parallel()

	bare := []byte(`[{"id": 1, "name": "Cut"}, {"id": 2, "name": "Bulk"}]`)
	wrapped := []byte(`{"count": 2, "next": null, "results": [{"id": 1, "name": "Cut"}, {"id": 2, "name": "Bulk"}]}`)
	data := []byte(`{"data": [{"id": 1, "name": "Cut"}, {"id": 2, "name": "Bulk"}]}`)

	fromBare, err := DecodeList[model.MealPlan](bare)
	require.NoError(t, err)
	fromWrapped, err := DecodeList[model.MealPlan](wrapped)
	require.NoError(t, err)
	fromData, err := DecodeList[model.MealPlan](data)
	require.NoError(t, err)

	require.Len(t, fromBare, 2)
	assert.Equal(t, fromBare, fromWrapped)
	assert.Equal(t, fromBare, fromData)
}

func TestDecodeListEmptyInputs(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `null`, `[]`, `{"results": []}`, `{"results": null}`} {
		got, err := DecodeList[model.Food]([]byte(body))
		require.NoError(t, err, body)
		assert.NotNil(t, got, body)
		assert.Empty(t, got, body)
	}

	_, err := DecodeList[model.Food]([]byte(`{"count": 3}`))
	assert.Error(t, err)
	_, err = DecodeList[model.Food]([]byte(`"oops"`))
	assert.Error(t, err)
}

func TestListFollowsNextPages(t *testing.T) {
	t.Parallel()

	var ts *httptest.Server
	ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`{"next": null, "results": [{"id": 3, "name": "Rice"}]}`))
			return
		}
		fmt.Fprintf(w, `{"next": "%s/nutrition/foods/?page=2", "results": [{"id": 1, "name": "Oats"}, {"id": 2, "name": "Eggs"}]}`, ts.URL)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	foods, err := c.SearchFoods(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, foods, 3)
	assert.Equal(t, "Rice", foods[2].Name)
}

func TestRequestsCarryAuthAndRequestID(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Authentication credentials were not provided."}`))
			return
		}
		if r.Header.Get("X-Request-ID") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Token: "secret"}
	_, err := c.ListMealPlans(context.Background())
	require.NoError(t, err)

	anon := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err = anon.ListMealPlans(context.Background())
	require.Error(t, err)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Authentication credentials were not provided.", apiErr.Detail)
}

func TestErrorDetailFieldMessages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bad range", errorDetail([]byte(`{"non_field_errors": ["bad range"]}`)))
	assert.Equal(t, "date: This field is required.; weight: A valid number is required.",
		errorDetail([]byte(`{"weight": ["A valid number is required."], "date": ["This field is required."]}`)))
	assert.Equal(t, "Server Error", errorDetail([]byte(`Server Error`)))
}

func TestCacheServesRepeatedGetsAndClearsOnMutation(t *testing.T) {
	t.Parallel()

	var gets int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&gets, 1)
			_, _ = w.Write([]byte(`{"results": [{"id": 7, "date": "2024-03-01", "weight": "70.5"}]}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client(), Cache: NewCache(1)}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		items, err := c.ListMeasurements(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 70.5, items[0].Weight.Float())
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&gets))

	require.NoError(t, c.DeleteMeasurement(ctx, 7))
	_, err := c.ListMeasurements(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&gets))
}

func TestLatestMeasurementNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "No measurements found"}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, ok, err := c.LatestMeasurement(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.GetMeasurement(context.Background(), 9)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestCreateRecipeSendsMultipartWithImage(t *testing.T) {
	t.Parallel()

	img := filepath.Join(t.TempDir(), "bowl.jpg")
	require.NoError(t, os.WriteFile(img, []byte("jpegbytes"), 0o600))

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		fmt.Fprintf(w, `{"id": 5, "name": %q, "calories": %q, "time": %q, "servings": 2, "image": %q}`,
			r.FormValue("name"), r.FormValue("calories"), r.FormValue("time"), hdr.Filename+":"+string(content))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	got, err := c.CreateRecipe(context.Background(), model.RecipeInput{
		Name:      "Power bowl",
		Calories:  540.5,
		Time:      "20",
		Servings:  "2",
		ImagePath: img,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "Power bowl", got.Name)
	assert.Equal(t, 540.5, float64(got.Calories))
	assert.Equal(t, "2", got.Servings)
	assert.Equal(t, "bowl.jpg:jpegbytes", got.Image)
}

func TestUpdateMealPlanSendsNullWindowOnCancel(t *testing.T) {
	t.Parallel()

	seen := make(chan string, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seen <- string(body)
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	plan, err := c.UpdateMealPlan(context.Background(), model.MealPlan{ID: 4, Name: "Cut", DailyCalories: model.NewNumber(2000)})
	require.NoError(t, err)
	sent := <-seen
	assert.Contains(t, sent, `"start_date":null`)
	assert.Contains(t, sent, `"end_date":null`)
	assert.False(t, plan.HasWindow())
	assert.Equal(t, 2000.0, plan.Calories())
}
