package songs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/advcompro/songvault/cmd/cli/config"
	"github.com/advcompro/songvault/cmd/cli/output"
)

// InitSongs registers song commands on the root command.
func InitSongs(rootCmd *cobra.Command) {
	songsCmd := &cobra.Command{
		Use:   "songs",
		Short: "Manage your song collection",
	}

	songsCmd.AddCommand(addCmd(), listCmd(), removeCmd())
	rootCmd.AddCommand(songsCmd)
}

func addCmd() *cobra.Command {
	var songname, songtype, language, keyword string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a song",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			payload := map[string]string{
				"songname": songname,
				"songtype": songtype,
				"language": language,
				"keyword":  keyword,
			}
			body, _ := json.Marshal(payload)

			req, _ := http.NewRequest("POST", config.APIURL()+"/songs/create", bytes.NewBuffer(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var out map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("add failed: %v", out["detail"])
			}

			fmt.Printf("Added song %v (id %v)\n", out["songname"], out["id"])
			return nil
		},
	}

	cmd.Flags().StringVar(&songname, "name", "", "song name")
	cmd.Flags().StringVar(&songtype, "type", "", "song type")
	cmd.Flags().StringVar(&language, "language", "", "language")
	cmd.Flags().StringVar(&keyword, "keyword", "", "keyword")

	return cmd
}

func listCmd() *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user is required")
			}

			resp, err := http.Get(fmt.Sprintf("%s/songs?user_id=%d", config.APIURL(), userID))
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				fmt.Println("No songs found for this user")
				return nil
			}
			if resp.StatusCode != http.StatusOK {
				var out map[string]interface{}
				json.NewDecoder(resp.Body).Decode(&out)
				return fmt.Errorf("list failed: %v", out["detail"])
			}

			var songs []struct {
				ID       int    `json:"id"`
				Songname string `json:"songname"`
				Songtype string `json:"songtype"`
				Language string `json:"language"`
				Keyword  string `json:"keyword"`
				AddedAt  string `json:"added_at"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&songs); err != nil {
				return err
			}

			rows := make([][]interface{}, 0, len(songs))
			for _, s := range songs {
				rows = append(rows, []interface{}{s.ID, s.Songname, s.Songtype, s.Language, s.Keyword, s.AddedAt})
			}
			output.RenderTable([]string{"ID", "Name", "Type", "Language", "Keyword", "Added"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "owner user id")

	return cmd
}

func removeCmd() *cobra.Command {
	var songname string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove one of your songs by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			if songname == "" {
				return fmt.Errorf("--name is required")
			}

			token, err := config.LoadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/songs/remove?songname="+url.QueryEscape(songname), nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var out map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("remove failed: %v", out["detail"])
			}

			fmt.Println(out["detail"])
			return nil
		},
	}

	cmd.Flags().StringVar(&songname, "name", "", "song name")

	return cmd
}
