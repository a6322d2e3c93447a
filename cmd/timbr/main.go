package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oksasatya/timbr/internal/client"
	"github.com/oksasatya/timbr/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is what every subcommand shares once flags are parsed.
type app struct {
	baseURL     string
	sessionPath string
	logFile     string

	session *client.Session
	api     *client.APIClient
	out     io.Writer
}

func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	path := a.sessionPath
	if path == "" {
		p, err := client.DefaultSessionPath()
		if err != nil {
			return fmt.Errorf("resolve session path: %w", err)
		}
		path = p
	}
	a.session = client.NewSession(client.FileStore{Path: path})
	if err := a.session.Load(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	a.api = client.NewAPIClient(a.baseURL)
	a.api.Token = a.session.Token()
	return nil
}

func (a *app) requireLogin() error {
	if a.session.Token() == "" {
		return errors.New("not logged in; run `timbr login` first")
	}
	return nil
}

func (a *app) remember(res *client.AuthResponse) error {
	if err := a.session.Save(res.Token, res.User); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", res.User.DisplayName, strings.ToLower(res.User.Role))
	return nil
}

// logger writes to the log file when one is given; the TUI owns the terminal.
func (a *app) logger() (*logrus.Logger, func(), error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	if a.logFile == "" {
		l.SetOutput(io.Discard)
		return l, func() {}, nil
	}
	f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	l.SetOutput(f)
	return l, func() { _ = f.Close() }, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "timbr",
		Short:        "Swipe through home listings from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.baseURL, "api", envOr("TIMBR_API_URL", "http://localhost:4000"), "timbr server base URL")
	pf.StringVar(&a.sessionPath, "session", os.Getenv("TIMBR_SESSION"), "session file (defaults to the user config dir)")
	pf.StringVar(&a.logFile, "log-file", "", "write client logs to this file")

	root.AddCommand(
		newSignupCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSwipeCmd(a),
		newPrefsCmd(a),
		newAgentCmd(a),
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newSignupCmd(a *app) *cobra.Command {
	var req client.SignupRequest
	var phone string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = strings.ToUpper(req.Role)
			if phone != "" {
				req.Phone = &phone
			}
			res, err := a.api.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.remember(res)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Email, "email", "", "account email")
	f.StringVar(&req.Password, "password", "", "at least 6 characters")
	f.StringVar(&req.DisplayName, "name", "", "display name")
	f.StringVar(&req.Role, "role", "buyer", "buyer, seller or agent")
	f.StringVar(&phone, "phone", "", "optional phone number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return a.remember(res)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(*cobra.Command, []string) error {
			if err := a.session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(*cobra.Command, []string) error {
			u, ok := a.session.User()
			if !ok {
				return errors.New("not logged in")
			}
			return yaml.NewEncoder(a.out).Encode(u)
		},
	}
}

func newSwipeCmd(a *app) *cobra.Command {
	var pageSize int
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "swipe",
		Short: "Open the swipe deck",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			logger, closeLog, err := a.logger()
			if err != nil {
				return err
			}
			defer closeLog()

			d := client.NewDispatcher(64, timeout, logger)
			defer d.Close()
			ctrl := client.NewController(a.api, d, pageSize)

			p := tea.NewProgram(tui.New(ctrl, a.api), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().IntVar(&pageSize, "page-size", client.DefaultPageSize, "listings per fetch")
	cmd.Flags().DurationVar(&timeout, "swipe-timeout", 10*time.Second, "timeout for each background swipe request")
	return cmd
}

func newPrefsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change search preferences",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print stored preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			p, err := a.api.Preferences(cmd.Context())
			if err != nil {
				return err
			}
			return printPrefs(a.out, p)
		},
	})
	cmd.AddCommand(newPrefsSetCmd(a))
	return cmd
}

func printPrefs(w io.Writer, p *client.Preferences) error {
	if p == nil {
		_, err := fmt.Fprintln(w, "No preferences saved")
		return err
	}
	return yaml.NewEncoder(w).Encode(p)
}

func newPrefsSetCmd(a *app) *cobra.Command {
	var (
		minPrice, maxPrice, minBeds, maxBeds, minSqft, maxSqft int
		minBaths, maxBaths                                     float64
		types, hoods                                           []string
		garage, pool, fixer                                    bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences; only the flags given are changed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			f := cmd.Flags()
			var p client.Preferences
			intFlag := func(name string, v int, dst **int) {
				if f.Changed(name) {
					*dst = &v
				}
			}
			floatFlag := func(name string, v float64, dst **float64) {
				if f.Changed(name) {
					*dst = &v
				}
			}
			boolFlag := func(name string, v bool, dst **bool) {
				if f.Changed(name) {
					*dst = &v
				}
			}
			intFlag("min-price", minPrice, &p.MinPrice)
			intFlag("max-price", maxPrice, &p.MaxPrice)
			intFlag("min-beds", minBeds, &p.MinBeds)
			intFlag("max-beds", maxBeds, &p.MaxBeds)
			intFlag("min-sqft", minSqft, &p.MinSqft)
			intFlag("max-sqft", maxSqft, &p.MaxSqft)
			floatFlag("min-baths", minBaths, &p.MinBaths)
			floatFlag("max-baths", maxBaths, &p.MaxBaths)
			boolFlag("garage", garage, &p.HasGarage)
			boolFlag("pool", pool, &p.HasPool)
			boolFlag("fixer-upper", fixer, &p.AllowFixerUpper)
			if f.Changed("type") {
				up := make([]string, len(types))
				for i, t := range types {
					up[i] = strings.ToUpper(t)
				}
				p.PropertyTypes = &up
			}
			if f.Changed("neighborhood") {
				p.Neighborhoods = &hoods
			}

			out, err := a.api.PutPreferences(cmd.Context(), p)
			if err != nil {
				return err
			}
			return printPrefs(a.out, out)
		},
	}
	f := cmd.Flags()
	f.IntVar(&minPrice, "min-price", 0, "minimum price")
	f.IntVar(&maxPrice, "max-price", 0, "maximum price")
	f.IntVar(&minBeds, "min-beds", 0, "minimum bedrooms")
	f.IntVar(&maxBeds, "max-beds", 0, "maximum bedrooms")
	f.IntVar(&minSqft, "min-sqft", 0, "minimum interior square feet")
	f.IntVar(&maxSqft, "max-sqft", 0, "maximum interior square feet")
	f.Float64Var(&minBaths, "min-baths", 0, "minimum bathrooms")
	f.Float64Var(&maxBaths, "max-baths", 0, "maximum bathrooms")
	f.StringSliceVar(&types, "type", nil, "property types (house, condo, townhome)")
	f.StringSliceVar(&hoods, "neighborhood", nil, "preferred neighborhoods")
	f.BoolVar(&garage, "garage", false, "require a garage")
	f.BoolVar(&pool, "pool", false, "require a pool")
	f.BoolVar(&fixer, "fixer-upper", false, "allow fixer-uppers")
	return cmd
}

func newAgentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "agent <id>",
		Short: "Show an agent profile and their listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := a.api.Agent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\n", ag.User.DisplayName)
			if ag.Brokerage != nil {
				fmt.Fprintf(a.out, "  %s\n", *ag.Brokerage)
			}
			if ag.Rating != nil {
				fmt.Fprintf(a.out, "  rating %.1f\n", *ag.Rating)
			}
			for _, h := range ag.Listings {
				fmt.Fprintf(a.out, "  - %s  $%d  %s, %s\n", h.Title, h.Price, h.City, h.State)
			}
			return nil
		},
	}
}
