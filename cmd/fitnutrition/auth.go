package fitnutrition

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/madDev-12/fitnutrition/internal/model"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/madDev-12/fitnutrition/internal/store"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Create an account and manage the login session",
}

var (
	authEmail      string
	authPassword   string
	regUsername    string
	regFirstName   string
	regLastName    string
	regBirthDate   string
	regGender      string
	regHeight      float64
	regWeight      float64
	regActivity    string
	regFitnessGoal string
)

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a backend account",
	Example: "  fitnutrition auth register --email sam@example.com --height 180 --weight 78\n" +
		"  fitnutrition auth login --email sam@example.com",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := model.RegisterInput{
			Email:         authEmail,
			Username:      regUsername,
			FirstName:     strings.TrimSpace(regFirstName),
			LastName:      strings.TrimSpace(regLastName),
			DateOfBirth:   strings.TrimSpace(regBirthDate),
			Gender:        strings.TrimSpace(regGender),
			Height:        changedFloat(cmd, "height", regHeight),
			Weight:        changedFloat(cmd, "weight", regWeight),
			ActivityLevel: strings.TrimSpace(regActivity),
			FitnessGoal:   strings.TrimSpace(regFitnessGoal),
		}
		secrets := newSecretReader(cmd)
		var err error
		if in.Password, err = secrets.read(authPassword, "Password: "); err != nil {
			return err
		}
		in.Password2 = authPassword
		if authPassword == "" {
			if in.Password2, err = secrets.read("", "Confirm password: "); err != nil {
				return err
			}
		}
		if in, err = service.PrepareRegistration(in); err != nil {
			return err
		}
		if err := newClient().Register(commandContext(cmd), in); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (username %s). Log in with: fitnutrition auth login --email %s\n", in.Email, in.Username, in.Email)
		return nil
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session in local state",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(authEmail)
		password, err := newSecretReader(cmd).read(authPassword, "Password: ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("password is required")
		}
		pair, err := newClient().Login(commandContext(cmd), email, password)
		if err != nil {
			return err
		}
		if err := withStore(func(s *store.Store) error {
			return s.SetAuthSession(store.Session{Email: email, TokenPair: pair})
		}); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Logged in as %s\n", email)
		if strings.TrimSpace(settings.API.Token) != "" {
			fmt.Fprintln(out, "Note: api.token is set and takes precedence over this session")
		}
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := withStore(func(s *store.Store) error { return s.ClearAuthSession() }); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credentials requests use",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if strings.TrimSpace(settings.API.Token) != "" {
			fmt.Fprintln(out, "source\tapi.token")
			printExpiry(out, settings.API.Token)
			return nil
		}
		return withStore(func(s *store.Store) error {
			session, ok, err := s.AuthSession()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}
			fmt.Fprintf(out, "source\tsession\nemail\t%s\n", session.Email)
			printExpiry(out, session.Access)
			if session.Refresh != "" {
				fmt.Fprintln(out, "refresh\tavailable")
			}
			return nil
		})
	},
}

func printExpiry(out io.Writer, token string) {
	exp, ok := service.TokenExpiry(token)
	if !ok {
		return
	}
	left := time.Until(exp).Round(time.Minute)
	if left <= 0 {
		fmt.Fprintf(out, "access\texpired at %s\n", exp.Format(time.RFC3339))
		return
	}
	fmt.Fprintf(out, "access\texpires in %s\n", left)
}

// secretReader reads passwords without echo from a terminal, or as lines
// from any other input.
type secretReader struct {
	cmd   *cobra.Command
	lines *bufio.Reader
}

func newSecretReader(cmd *cobra.Command) *secretReader {
	return &secretReader{cmd: cmd}
}

func (r *secretReader) read(given, prompt string) (string, error) {
	if given != "" {
		return given, nil
	}
	fmt.Fprint(r.cmd.OutOrStdout(), prompt)
	in := r.cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(r.cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	if r.lines == nil {
		r.lines = bufio.NewReader(in)
	}
	line, err := r.lines.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	for _, c := range []*cobra.Command{authRegisterCmd, authLoginCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Password (prompted when omitted)")
		_ = c.MarkFlagRequired("email")
	}
	f := authRegisterCmd.Flags()
	f.StringVar(&regUsername, "username", "", "Username (default: the part of the email before @)")
	f.StringVar(&regFirstName, "first-name", "", "First name")
	f.StringVar(&regLastName, "last-name", "", "Last name")
	f.StringVar(&regBirthDate, "date-of-birth", "", "Date of birth YYYY-MM-DD")
	f.StringVar(&regGender, "gender", "", "Gender: male|female|other")
	f.Float64Var(&regHeight, "height", 0, "Height in cm")
	f.Float64Var(&regWeight, "weight", 0, "Weight in kg")
	f.StringVar(&regActivity, "activity-level", "", "Activity level, e.g. sedentary|light|moderate|active|very_active")
	f.StringVar(&regFitnessGoal, "fitness-goal", "", "Fitness goal, e.g. lose_weight|maintain|gain_muscle")

	authCmd.AddCommand(authRegisterCmd, authLoginCmd, authLogoutCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
