package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/madDev-12/fitnutrition/internal/model"
)

type rawCheck struct {
	ExerciseName string          `json:"exercise_name"`
	Name         string          `json:"name"`
	Checked      json.RawMessage `json:"checked"`
	Sets         model.Number    `json:"sets"`
	Reps         model.Number    `json:"reps"`
	Weight       model.Number    `json:"weight"`
	Duration     model.Number    `json:"duration"`
}

func (r rawCheck) check() model.ExerciseCheck {
	name := r.ExerciseName
	if name == "" {
		name = r.Name
	}
	return model.ExerciseCheck{
		ExerciseName: name,
		Checked:      string(bytes.TrimSpace(r.Checked)) == "true",
		Sets:         r.Sets,
		Reps:         r.Reps,
		Weight:       r.Weight,
		Duration:     r.Duration,
	}
}

// ExerciseChecks normalizes a workout's checklist. exercise_checks may be a
// JSON-encoded string, an object keyed by position or an array; anything
// missing or unparseable falls back to the workout's exercises, unchecked.
func ExerciseChecks(w model.Workout) []model.ExerciseCheck {
	checks, ok := parseChecks(w.ExerciseChecks)
	if ok {
		return checks
	}
	fallback, _ := parseChecks(w.Exercises)
	for i := range fallback {
		fallback[i].Checked = false
	}
	if fallback == nil {
		fallback = []model.ExerciseCheck{}
	}
	return fallback
}

func parseChecks(raw json.RawMessage) ([]model.ExerciseCheck, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false
	}
	switch trimmed[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			log.Debugf("decode exercise checks string: %s", err)
			return nil, false
		}
		return parseChecks(json.RawMessage(inner))
	case '[':
		var list []rawCheck
		if err := json.Unmarshal(trimmed, &list); err != nil {
			log.Debugf("decode exercise checks array: %s", err)
			return nil, false
		}
		out := make([]model.ExerciseCheck, 0, len(list))
		for _, r := range list {
			out = append(out, r.check())
		}
		return out, true
	case '{':
		entries, err := decodeKeyedChecks(trimmed)
		if err != nil {
			log.Debugf("decode exercise checks object: %s", err)
			return nil, false
		}
		sort.SliceStable(entries, func(i, j int) bool { return lessKey(entries[i].key, entries[j].key) })
		out := make([]model.ExerciseCheck, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.raw.check())
		}
		return out, true
	default:
		return nil, false
	}
}

type keyedCheck struct {
	key string
	raw rawCheck
}

// decodeKeyedChecks reads an object of checks keeping the order keys appear
// in; a repeated key keeps its first position and its last value.
func decodeKeyedChecks(raw []byte) ([]keyedCheck, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var out []keyedCheck
	seen := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var r rawCheck
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("decode check %q: %w", key, err)
		}
		if i, ok := seen[key]; ok {
			out[i].raw = r
			continue
		}
		seen[key] = len(out)
		out = append(out, keyedCheck{key: key, raw: r})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

// lessKey puts index keys ("0", "1", ...) first in numeric order. Other keys
// compare equal so a stable sort leaves them in document order.
func lessKey(a, b string) bool {
	ai, aIndex := indexKey(a)
	bi, bIndex := indexKey(b)
	switch {
	case aIndex && bIndex:
		return ai < bi
	default:
		return aIndex && !bIndex
	}
}

func indexKey(k string) (uint64, bool) {
	v, err := strconv.ParseUint(k, 10, 32)
	if err != nil || strconv.FormatUint(v, 10) != k {
		return 0, false
	}
	return v, true
}

type CheckSummary struct {
	Done  int
	Total int
}

func SummarizeChecks(checks []model.ExerciseCheck) CheckSummary {
	s := CheckSummary{Total: len(checks)}
	for _, c := range checks {
		if c.Checked {
			s.Done++
		}
	}
	return s
}

type WorkoutStats struct {
	Completed int
	Total     int
	Percent   float64
}

func WeekWorkoutStats(workouts []model.Workout) WorkoutStats {
	s := WorkoutStats{Total: len(workouts)}
	for _, w := range workouts {
		if w.Status == model.WorkoutCompleted {
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.Percent = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}
