package fitnutrition

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/madDev-12/fitnutrition/internal/api"
	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/madDev-12/fitnutrition/internal/store"
)

// newClient builds a backend client over the invocation's response cache.
// A configured api.token wins; otherwise the saved login session is used and
// renewed tokens are written back to it.
func newClient() *api.Client {
	c := &api.Client{
		BaseURL:    settings.API.BaseURL,
		Token:      settings.API.Token,
		HTTPClient: &http.Client{Timeout: settings.API.Timeout},
		Cache:      responseCache,
		CacheTTL:   settings.Cache.TTLSeconds,
	}
	if strings.TrimSpace(c.Token) != "" {
		return c
	}
	err := withStore(func(s *store.Store) error {
		session, ok, err := s.AuthSession()
		if ok {
			c.Token, c.RefreshToken = session.Access, session.Refresh
		}
		return err
	})
	if err != nil {
		log.Warnf("read login session: %s", err)
	}
	c.OnTokens = func(pair model.TokenPair) {
		if err := withStore(func(s *store.Store) error { return s.UpdateAuthTokens(pair) }); err != nil {
			log.Warnf("save renewed tokens: %s", err)
		}
	}
	return c
}

func withStore(run func(*store.Store) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return run(s)
}

func selectedPlan() (*model.MealPlan, error) {
	var plan *model.MealPlan
	err := withStore(func(s *store.Store) error {
		p, err := s.SelectedPlan()
		plan = p
		return err
	})
	return plan, err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDateOrToday(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return service.Today(), nil
	}
	return service.ParseDate(value)
}

// changedFloat returns a pointer to value only when the flag was set.
func changedFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v := value
	return &v
}

// confirm asks on stdin unless --yes was given.
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
		return false, nil
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}

func formatOptional(n *model.Number, decimals int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, n.Float())
}

func progressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(percent / 100 * float64(width)))
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func horizontalBar(value, maxAbs float64, width int) string {
	if width <= 0 || maxAbs <= 0 {
		return ""
	}
	bars := int(math.Round(math.Abs(value) / maxAbs * float64(width)))
	if bars == 0 && value != 0 {
		bars = 1
	}
	prefix := ""
	if value < 0 {
		prefix = "-"
	}
	return prefix + strings.Repeat("#", bars)
}

func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		ratio := (v - minV) / (maxV - minV)
		idx := int(math.Round(ratio * float64(len(chars)-1)))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
