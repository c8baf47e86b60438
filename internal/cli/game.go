package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameProposeCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGamePreviousCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameRankingCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var user string
	var age int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new game with a fresh secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"user": user, "age": age}
			var result CreateGameResult

			if err := client.Post("/game/create", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Player name")
	cmd.Flags().IntVar(&age, "age", 0, "Player age")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newGameProposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "propose <id> <combination>",
		Short: "Guess a four digit combination",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			req := map[string]string{"combination": args[1]}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/game/%d/propose", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game and its guesses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result GameView

			if err := client.Get(fmt.Sprintf("/game/%d", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePreviousCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "previous <id> <attempt>",
		Short: "Re-score the guess made at an attempt number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			attempt, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid attempt: %w", err)
			}

			var result PreviousResult

			if err := client.Get(fmt.Sprintf("/game/%d/previous-response/%d", id, attempt), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result struct {
				Message string `json:"message"`
			}

			if err := client.Delete(fmt.Sprintf("/game/%d/deleteGame", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(result.Message)
			return nil
		},
	}
}

func newGameRankingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ranking",
		Short: "Show the leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Ranking

			if err := client.Get("/game/ranking", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", s)
	}
	return id, nil
}
