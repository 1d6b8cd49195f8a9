package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"

	"github.com/madDev-12/fitnutrition/internal/app"
	"github.com/madDev-12/fitnutrition/internal/db"
	"github.com/madDev-12/fitnutrition/internal/model"
)

const (
	KeySelectedPlan    = "selectedMealPlan"
	KeyRecipeFavorites = "recipeFavorites"
	KeyAuthSession     = "authSession"
)

// Change describes a key that was written or removed.
type Change struct {
	Key     string
	Value   string
	Deleted bool
}

type entry struct {
	value    string
	revision int64
}

type subscriber struct {
	id  int
	key string
	fn  func(Change)
}

// Store is the client-side state shared by every fitnutrition process that
// opens the same database file.
type Store struct {
	db   *sql.DB
	path string
	own  bool

	mu       sync.Mutex
	snapshot map[string]entry
	subs     []subscriber
	nextSub  int
	cancels  []context.CancelFunc
	wg       sync.WaitGroup
}

// Open prepares the database at path and loads the current state.
func Open(path string) (*Store, error) {
	if err := app.EnsureDir(path); err != nil {
		return nil, err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	s, err := New(sqldb, path)
	if err != nil {
		_ = sqldb.Close()
		return nil, err
	}
	s.own = true
	return s, nil
}

// New wraps an already migrated database. path is the file watched for
// changes made by other processes.
func New(sqldb *sql.DB, path string) (*Store, error) {
	s := &Store{db: sqldb, path: path, snapshot: map[string]entry{}}
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}
	s.snapshot = rows
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Load(key string) (string, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, fmt.Errorf("state key is required")
	}
	var value string
	err := s.db.QueryRow(`SELECT value FROM client_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load state %q: %w", key, err)
	}
	return value, true, nil
}

// All returns every stored key and value.
func (s *Store) All() (map[string]string, error) {
	rows, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for k, e := range rows {
		out[k] = e.value
	}
	return out, nil
}

// Save writes value under key and notifies local subscribers. The last
// writer wins across processes; a value equal to the stored row is not
// rewritten.
func (s *Store) Save(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("state key is required")
	}
	s.mu.Lock()
	var revision int64
	err := s.db.QueryRow(`
INSERT INTO client_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, revision=client_state.revision+1, updated_at=excluded.updated_at
WHERE client_state.value <> excluded.value
RETURNING revision
`, key, value).Scan(&revision)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRow(`SELECT revision FROM client_state WHERE key = ?`, key).Scan(&revision)
		if err == nil {
			if cur, ok := s.snapshot[key]; ok && cur.value == value && cur.revision == revision {
				s.mu.Unlock()
				return nil
			}
		}
	}
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save state %q: %w", key, err)
	}
	s.snapshot[key] = entry{value: value, revision: revision}
	subs := s.subscribersLocked(key)
	s.mu.Unlock()

	notify(subs, Change{Key: key, Value: value})
	return nil
}

func (s *Store) Delete(key string) error {
	key = strings.TrimSpace(key)
	s.mu.Lock()
	if _, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, key); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	_, existed := s.snapshot[key]
	delete(s.snapshot, key)
	subs := s.subscribersLocked(key)
	s.mu.Unlock()

	if existed {
		notify(subs, Change{Key: key, Deleted: true})
	}
	return nil
}

// Subscribe registers fn for changes to key, or to every key when key is
// empty. The returned func removes the subscription.
func (s *Store) Subscribe(key string, fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, key: key, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Refresh re-reads the database and notifies subscribers about keys whose
// revision moved since the last read.
func (s *Store) Refresh() ([]Change, error) {
	s.mu.Lock()
	rows, err := s.readAll()
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	var changes []Change
	for k, e := range rows {
		if cur, ok := s.snapshot[k]; !ok || cur.revision != e.revision || cur.value != e.value {
			changes = append(changes, Change{Key: k, Value: e.value})
		}
	}
	for k := range s.snapshot {
		if _, ok := rows[k]; !ok {
			changes = append(changes, Change{Key: k, Deleted: true})
		}
	}
	s.snapshot = rows
	sort.Slice(changes, func(i, j int) bool { return changes[i].Key < changes[j].Key })
	pending := make([][]subscriber, len(changes))
	for i, c := range changes {
		pending[i] = s.subscribersLocked(c.Key)
	}
	s.mu.Unlock()

	for i, c := range changes {
		notify(pending[i], c)
	}
	return changes, nil
}

// Watch follows writes to the database file made by other processes until
// ctx is done or the store is closed.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create state watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancels = append(s.cancels, cancel)
	s.mu.Unlock()

	base := filepath.Base(s.path)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(ev.Name), base) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if _, err := s.Refresh(); err != nil {
					log.Warnf("refresh client state after %s: %s", ev.Op, err)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warnf("client state watcher: %s", err)
			}
		}
	}()
	return nil
}

// Close stops watchers and, for stores created by Open, closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	s.mu.Unlock()
	s.wg.Wait()
	if s.own {
		return s.db.Close()
	}
	return nil
}

func (s *Store) readAll() (map[string]entry, error) {
	rows, err := s.db.Query(`SELECT key, value, revision FROM client_state ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list state: %w", err)
	}
	defer rows.Close()
	out := map[string]entry{}
	for rows.Next() {
		var key string
		var e entry
		if err := rows.Scan(&key, &e.value, &e.revision); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out[key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	return out, nil
}

func (s *Store) subscribersLocked(key string) []subscriber {
	var out []subscriber
	for _, sub := range s.subs {
		if sub.key == "" || sub.key == key {
			out = append(out, sub)
		}
	}
	return out
}

func notify(subs []subscriber, c Change) {
	for _, sub := range subs {
		sub.fn(c)
	}
}

// SelectedPlan returns the locally selected meal plan. A missing or corrupt
// value reads as no selection.
func (s *Store) SelectedPlan() (*model.MealPlan, error) {
	raw, ok, err := s.Load(KeySelectedPlan)
	if err != nil || !ok {
		return nil, err
	}
	return DecodeSelectedPlan(raw), nil
}

func DecodeSelectedPlan(raw string) *model.MealPlan {
	if strings.TrimSpace(raw) == "" || raw == "null" {
		return nil
	}
	var plan model.MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		log.Warnf("ignoring corrupt %s: %s", KeySelectedPlan, err)
		return nil
	}
	return &plan
}

func (s *Store) SetSelectedPlan(plan model.MealPlan) error {
	b, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode selected plan: %w", err)
	}
	return s.Save(KeySelectedPlan, string(b))
}

func (s *Store) ClearSelectedPlan() error {
	return s.Delete(KeySelectedPlan)
}

// RecipeFavorites returns favorite recipe ids in the order they were added.
func (s *Store) RecipeFavorites() ([]int64, error) {
	raw, ok, err := s.Load(KeyRecipeFavorites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int64{}, nil
	}
	return DecodeRecipeFavorites(raw), nil
}

func DecodeRecipeFavorites(raw string) []int64 {
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		log.Warnf("ignoring corrupt %s: %s", KeyRecipeFavorites, err)
		return []int64{}
	}
	if ids == nil {
		return []int64{}
	}
	return ids
}

func (s *Store) SetRecipeFavorites(ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode recipe favorites: %w", err)
	}
	return s.Save(KeyRecipeFavorites, string(b))
}

// ToggleRecipeFavorite adds or removes id and reports whether it is now a
// favorite.
func (s *Store) ToggleRecipeFavorite(id int64) (bool, error) {
	ids, err := s.RecipeFavorites()
	if err != nil {
		return false, err
	}
	out := make([]int64, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	if err := s.SetRecipeFavorites(out); err != nil {
		return false, err
	}
	return !found, nil
}

// Session is the logged-in account and its current token pair.
type Session struct {
	Email string `json:"email,omitempty"`
	model.TokenPair
}

// AuthSession returns the saved session. A corrupt value reads as logged out.
func (s *Store) AuthSession() (Session, bool, error) {
	raw, ok, err := s.Load(KeyAuthSession)
	if err != nil || !ok {
		return Session{}, false, err
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil || session.Access == "" {
		log.Warnf("ignoring unusable %s", KeyAuthSession)
		return Session{}, false, nil
	}
	return session, true, nil
}

func (s *Store) SetAuthSession(session Session) error {
	b, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode auth session: %w", err)
	}
	return s.Save(KeyAuthSession, string(b))
}

// UpdateAuthTokens stores a renewed pair and keeps the saved email.
func (s *Store) UpdateAuthTokens(pair model.TokenPair) error {
	session, _, err := s.AuthSession()
	if err != nil {
		return err
	}
	session.TokenPair = pair
	return s.SetAuthSession(session)
}

func (s *Store) ClearAuthSession() error {
	return s.Delete(KeyAuthSession)
}
