package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerAddCmd(a))
	cmd.AddCommand(newPlayerUpdateCmd(a))
	cmd.AddCommand(newPlayerGetCmd(a))
	cmd.AddCommand(newPlayerListCmd(a))
	cmd.AddCommand(newPlayerDeleteCmd(a))

	return cmd
}

func playerPath(pseudo string) string {
	return "/api/v1/players/" + url.PathEscape(pseudo)
}

// playerBody builds a request body with only the flags the user set, so that
// omitted values reach the server as absent rather than zero
func playerBody(cmd *cobra.Command, pseudo *string, points int, rank string) map[string]any {
	body := map[string]any{}
	if pseudo != nil {
		body["pseudo"] = *pseudo
	}
	if cmd.Flags().Changed("points") {
		body["points"] = points
	}
	if cmd.Flags().Changed("rank") {
		body["rank"] = rank
	}
	return body
}

func newPlayerAddCmd(a *app) *cobra.Command {
	var (
		pseudo string
		points int
		rank   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *string
			if cmd.Flags().Changed("pseudo") {
				p = &pseudo
			}

			var result MessageResult
			if err := a.client.Post("/api/v1/players", playerBody(cmd, p, points, rank), &result); err != nil {
				return err
			}

			a.output(cmd.OutOrStdout()).PrintMessage(result.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&pseudo, "pseudo", "", "Player pseudo")
	cmd.Flags().IntVar(&points, "points", 0, "Player points")
	cmd.Flags().StringVar(&rank, "rank", "", "Player rank (optional)")

	return cmd
}

func newPlayerUpdateCmd(a *app) *cobra.Command {
	var (
		points      int
		rank        string
		forceCreate bool
	)

	cmd := &cobra.Command{
		Use:   "update <pseudo>",
		Short: "Replace a player's points and rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := playerPath(args[0])
			if forceCreate {
				path += "?forceCreate=true"
			}

			var result MessageResult
			if err := a.client.Put(path, playerBody(cmd, nil, points, rank), &result); err != nil {
				return err
			}

			a.output(cmd.OutOrStdout()).PrintMessage(result.Message)
			return nil
		},
	}

	cmd.Flags().IntVar(&points, "points", 0, "Player points")
	cmd.Flags().StringVar(&rank, "rank", "", "Player rank (optional)")
	cmd.Flags().BoolVar(&forceCreate, "force-create", false, "Create the player if it does not exist")

	return cmd
}

func newPlayerGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <pseudo>",
		Short: "Show a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := a.client.Get(playerPath(args[0]), &result); err != nil {
				return err
			}

			a.output(cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newPlayerListCmd(a *app) *cobra.Command {
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players in descending order",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players"
			if sortBy != "" {
				path += "?sortBy=" + url.QueryEscape(sortBy)
			}

			result := []Player{}
			if err := a.client.Get(path, &result); err != nil {
				return err
			}

			a.output(cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field: pseudo, points, rank (default points)")

	return cmd
}

func newPlayerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <pseudo>",
		Short: "Remove a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult
			if err := a.client.Delete(playerPath(args[0]), &result); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}

			a.output(cmd.OutOrStdout()).PrintMessage(result.Message)
			return nil
		},
	}
}
