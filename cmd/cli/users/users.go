package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/advcompro/songvault/cmd/cli/config"
)

// InitUsers registers user and authentication commands on the root command.
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users and authentication",
		Long: `Register or login a user to the SongVault API.
Stores the bearer token locally for future commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

func registerCmd() *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" || email == "" {
				return fmt.Errorf("username, password and email are required")
			}

			payload := map[string]string{
				"username": username,
				"password": password,
				"email":    email,
			}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/users/create", "application/json", bytes.NewBuffer(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var out map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("register failed: %v", out["detail"])
			}

			fmt.Printf("Registered user %v (id %v)\n", out["username"], out["user_id"])
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login an existing user",
		Long:  "Login and save the bearer token locally for future CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			payload := map[string]string{"email": email, "password": password}
			body, _ := json.Marshal(payload)

			resp, err := http.Post(config.APIURL()+"/users/login", "application/json", bytes.NewBuffer(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				var out map[string]interface{}
				json.NewDecoder(resp.Body).Decode(&out)
				return fmt.Errorf("login failed: %v", out["detail"])
			}

			var out struct {
				AccessToken string `json:"access_token"`
				Username    string `json:"username"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if out.AccessToken == "" {
				return fmt.Errorf("login succeeded but no token returned")
			}

			if err := config.SaveToken(out.AccessToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Printf("Logged in as %s. Token stored locally.\n", out.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout current user",
		Long:  "Remove the locally saved bearer token.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DeleteToken(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
