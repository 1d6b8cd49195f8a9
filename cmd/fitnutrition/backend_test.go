package fitnutrition

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/madDev-12/fitnutrition/internal/model"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// fakeBackend serves the subset of the tracker REST API the commands use.
type fakeBackend struct {
	t *testing.T

	mu           sync.Mutex
	plans        []model.MealPlan
	meals        []model.Meal
	foods        []model.Food
	recipes      []model.Recipe
	measurements []model.Measurement
	workouts     []model.Workout
	progress     model.ProgressReport
	requests     []recordedRequest
	nextID       int64

	// With requireAuth, every non-auth route wants "Bearer <access>".
	requireAuth bool
	users       map[string]string
	access      string
	refresh     string
	tokenSeq    int
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{t: t, nextID: 1000, users: map[string]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]any
		decodeBody(t, r, &in)
		b.mu.Lock()
		defer b.mu.Unlock()
		email, _ := in["email"].(string)
		if _, exists := b.users[email]; exists {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string][]string{"email": {"user with this email already exists."}})
			return
		}
		b.users[email], _ = in["password"].(string)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, map[string]any{"user": map[string]any{"email": email}})
	})
	mux.HandleFunc("POST /api/auth/login/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		decodeBody(t, r, &in)
		b.mu.Lock()
		defer b.mu.Unlock()
		if pw, ok := b.users[in["email"]]; !ok || pw != in["password"] {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "No active account found with the given credentials"})
			return
		}
		writeJSON(w, b.issueTokensLocked())
	})
	mux.HandleFunc("POST /api/auth/token/refresh/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		decodeBody(t, r, &in)
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.refresh == "" || in["refresh"] != b.refresh {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Token is invalid or expired"})
			return
		}
		writeJSON(w, b.issueTokensLocked())
	})

	mux.HandleFunc("GET /api/nutrition/meal-plans/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, map[string]any{"results": b.plans, "next": nil})
	})
	mux.HandleFunc("POST /api/nutrition/meal-plans/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in model.MealPlanInput
		decodeBody(t, r, &in)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		p := model.MealPlan{ID: b.nextID, Name: in.Name, Description: in.Description, DurationDays: in.DurationDays}
		if in.TargetCalories != nil {
			p.TargetCalories = model.NewNumber(*in.TargetCalories)
		}
		b.plans = append(b.plans, p)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, p)
	})
	mux.HandleFunc("GET /api/nutrition/meal-plans/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := pathID(r)
		for _, p := range b.plans {
			if p.ID == id {
				writeJSON(w, p)
				return
			}
		}
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	})
	mux.HandleFunc("PUT /api/nutrition/meal-plans/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		var p model.MealPlan
		decodeBody(t, r, &p)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.plans {
			if b.plans[i].ID == pathID(r) {
				b.plans[i] = p
			}
		}
		writeJSON(w, p)
	})
	mux.HandleFunc("DELETE /api/nutrition/meal-plans/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		kept := b.plans[:0]
		for _, p := range b.plans {
			if p.ID != pathID(r) {
				kept = append(kept, p)
			}
		}
		b.plans = kept
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/nutrition/meals/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		day := r.URL.Query().Get("date")
		out := []model.Meal{}
		for _, m := range b.meals {
			if day == "" || m.Date == day {
				out = append(out, m)
			}
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("POST /api/nutrition/meals/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in model.MealInput
		decodeBody(t, r, &in)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		m := model.Meal{ID: b.nextID, Name: in.Name, Date: in.Date, MealType: in.MealType}
		b.meals = append(b.meals, m)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, m)
	})
	mux.HandleFunc("DELETE /api/nutrition/meals/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		kept := b.meals[:0]
		for _, m := range b.meals {
			if m.ID != pathID(r) {
				kept = append(kept, m)
			}
		}
		b.meals = kept
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/nutrition/foods/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		term := strings.ToLower(r.URL.Query().Get("search"))
		out := []model.Food{}
		for _, f := range b.foods {
			if strings.Contains(strings.ToLower(f.Name), term) {
				out = append(out, f)
			}
		}
		writeJSON(w, map[string]any{"results": out})
	})
	mux.HandleFunc("GET /api/nutrition/foods/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, f := range b.foods {
			if f.ID == pathID(r) {
				writeJSON(w, f)
				return
			}
		}
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	})
	mux.HandleFunc("PUT /api/nutrition/foods/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in model.FoodInput
		decodeBody(t, r, &in)
		writeJSON(w, model.Food{ID: pathID(r), Name: in.Name, Calories: model.Number(in.Calories), IsCustom: true})
	})

	mux.HandleFunc("GET /api/nutrition/recipes/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.recipes)
	})
	mux.HandleFunc("DELETE /api/nutrition/recipes/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/measurements/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.measurements)
	})
	mux.HandleFunc("POST /api/measurements/{$}", func(w http.ResponseWriter, r *http.Request) {
		var in model.MeasurementInput
		decodeBody(t, r, &in)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, model.Measurement{ID: 77, Date: in.Date})
	})

	mux.HandleFunc("GET /api/workouts/workouts/{id}/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, wo := range b.workouts {
			if wo.ID == pathID(r) {
				writeJSON(w, wo)
				return
			}
		}
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/analytics/progress/{$}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, b.progress)
	})

	srv := httptest.NewServer(b.record(mux))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
		denied := b.requireAuth && !strings.HasPrefix(r.URL.Path, "/api/auth/") &&
			r.Header.Get("Authorization") != "Bearer "+b.access
		b.mu.Unlock()
		if denied {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// issueTokensLocked rotates both tokens, as the backend does on refresh.
func (b *fakeBackend) issueTokensLocked() model.TokenPair {
	b.tokenSeq++
	b.access = "access-" + strconv.Itoa(b.tokenSeq)
	b.refresh = "refresh-" + strconv.Itoa(b.tokenSeq)
	return model.TokenPair{Access: b.access, Refresh: b.refresh}
}

// expireAccess makes the current access token stale, leaving refresh valid.
func (b *fakeBackend) expireAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = "expired"
}

func (b *fakeBackend) requestsFor(method, path string) []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedRequest
	for _, r := range b.requests {
		if r.Method == method && (path == "" || r.Path == path) {
			out = append(out, r)
		}
	}
	return out
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request, v any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		t.Errorf("decode %s %s body: %v", r.Method, r.URL.Path, err)
	}
}

// cliEnv points every command at temp state and a fake backend.
type cliEnv struct {
	dir     string
	baseURL string
}

func newCLIEnv(t *testing.T, srv *httptest.Server) cliEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := "[cache]\nsize_mb = 1\n\n[search]\ndebounce = \"10ms\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := cliEnv{dir: dir}
	if srv != nil {
		env.baseURL = srv.URL + "/api"
	}
	return env
}

func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	full := []string{"--config", filepath.Join(e.dir, "config.toml"), "--db", filepath.Join(e.dir, "state.db")}
	if e.baseURL != "" {
		full = append(full, "--api-url", e.baseURL)
	}
	return e.runRaw(t, stdin, append(full, args...)...)
}

func (e cliEnv) runRaw(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores defaults; cobra keeps flag values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
