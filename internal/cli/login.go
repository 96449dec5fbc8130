package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/ajar/internal/session"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in as a user from the data source",
	Long: `Log in with an email and password from the data source's "pengguna" list.

The session is kept in the state directory until 'ajar logout'.

Examples:
  ajar login rina@ut.ac.id --password rina123`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// sessionView is the JSON form of a session; the token stays private.
type sessionView struct {
	Email    string `json:"email"`
	Nama     string `json:"nama"`
	Role     string `json:"role"`
	Lokasi   string `json:"lokasi"`
	Greeting string `json:"greeting"`
}

func viewSession(s *session.Session) sessionView {
	return sessionView{
		Email:    s.Email,
		Nama:     s.Nama,
		Role:     s.Role,
		Lokasi:   s.Lokasi,
		Greeting: session.Greeting(now()),
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		HandleError(err)
		return nil
	}
	defer a.Close()

	s, err := a.sessions.Login(a.svc.Users(), args[0], loginPassword)
	if err != nil {
		HandleError(err)
		return nil
	}

	if GetJSONOutput() {
		return printJSON(viewSession(s))
	}
	fmt.Fprintf(stdout, "%s, %s!\n", session.Greeting(now()), s.Nama)
	if !IsQuiet() {
		fmt.Fprintf(stdout, "Logged in as %s (%s, %s)\n", s.Email, s.Role, s.Lokasi)
	}
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := session.NewManager(cfg.StateDir).Logout(); err != nil {
		HandleError(err)
		return nil
	}
	if GetJSONOutput() {
		return printJSON(map[string]bool{"loggedOut": true})
	}
	if !IsQuiet() {
		fmt.Fprintln(stdout, "Logged out.")
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	s, err := session.NewManager(cfg.StateDir).Current()
	if err != nil {
		HandleError(err)
		return nil
	}

	v := viewSession(s)
	if GetJSONOutput() {
		return printJSON(v)
	}
	fmt.Fprintf(stdout, "%s, %s!\n", v.Greeting, v.Nama)
	printField(stdout, "Email", v.Email)
	printField(stdout, "Role", v.Role)
	printField(stdout, "Lokasi", v.Lokasi)
	return nil
}
