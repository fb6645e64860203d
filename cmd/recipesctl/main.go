// Package main implements recipesctl, the command line client for the
// recipesai API.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recipesai/recipesai/internal/client/api"
	"github.com/recipesai/recipesai/internal/client/recipes"
	"github.com/recipesai/recipesai/internal/client/session"
	"github.com/recipesai/recipesai/internal/client/token"
	"github.com/recipesai/recipesai/pkg/logger"
)

type app struct {
	store   *token.Store
	client  *api.Client
	session *session.Controller
	sync    *recipes.Synchronizer
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		a        app
		server   string
		stateDir string
		verbose  bool
	)

	root := &cobra.Command{
		Use:           "recipesctl",
		Short:         "Command line client for the recipesai API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			v.SetEnvPrefix("RECIPESAI")
			v.AutomaticEnv()
			v.SetDefault("server", server)
			v.SetDefault("state_dir", stateDir)
			if cmd.Flags().Changed("server") {
				v.Set("server", server)
			}
			if cmd.Flags().Changed("state-dir") {
				v.Set("state_dir", stateDir)
			}

			level := "error"
			if verbose {
				level = "debug"
			}
			log, err := logger.New(logger.Config{Level: level, Format: "console", Development: true})
			if err != nil {
				return err
			}

			dir := v.GetString("state_dir")
			if dir == "" {
				base, err := os.UserConfigDir()
				if err != nil {
					return fmt.Errorf("cannot determine state directory: %w", err)
				}
				dir = filepath.Join(base, "recipesai")
			}

			a.logger = log
			a.store = token.NewStore(dir)
			a.client = api.NewClient(v.GetString("server"), a.store, log)
			a.session = session.NewController(a.client, a.store, log)
			a.sync = recipes.NewSynchronizer(a.client, a.store, a.session, log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "API server base URL")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "directory for session state (default: user config dir)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRegisterCmd(&a),
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newListCmd(&a),
		newCreateCmd(&a),
		newUpdateCmd(&a),
		newDeleteCmd(&a),
		newSuggestCmd(&a),
		newMealPlanCmd(&a),
	)
	return root
}

func newRegisterCmd(a *app) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(password)
			if err != nil {
				return err
			}
			if err := a.session.Register(cmd.Context(), username, email, pass); err != nil {
				return err
			}
			fmt.Printf("Registered and logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := resolvePassword(password)
			if err != nil {
				return err
			}
			if err := a.session.Login(cmd.Context(), username, pass); err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a.session.CurrentUser()
			if u == nil {
				return fmt.Errorf("not logged in")
			}
			fmt.Printf("%s (%s)\n", u.Username, u.ID)
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.sync.Refetch(cmd.Context()) {
			case recipes.SkippedUnauthenticated:
				return fmt.Errorf("not logged in")
			case recipes.Failed:
				return fmt.Errorf("failed to fetch recipes")
			}

			list := a.sync.Recipes()
			if len(list) == 0 {
				fmt.Println("No recipes yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tINGREDIENTS\tCREATED")
			for _, r := range list {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					r.ID, r.Title, len(r.Ingredients), r.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func recipeInputFlags(cmd *cobra.Command, input *recipes.Input) {
	cmd.Flags().StringVarP(&input.Title, "title", "t", "", "recipe title")
	cmd.Flags().StringSliceVarP(&input.Ingredients, "ingredient", "i", nil, "ingredient name (repeatable)")
	cmd.Flags().StringVarP(&input.Steps, "steps", "s", "", "preparation steps, one per line")
	cmd.Flags().StringVar(&input.ImageURL, "image-url", "", "image URL")
}

func newCreateCmd(a *app) *cobra.Command {
	var input recipes.Input
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a recipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sync.Create(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Println("Recipe created")
			return nil
		},
	}
	recipeInputFlags(cmd, &input)
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("steps")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var input recipes.Input
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Modify a recipe you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sync.Update(cmd.Context(), args[0], input); err != nil {
				return err
			}
			fmt.Println("Recipe updated")
			return nil
		},
	}
	recipeInputFlags(cmd, &input)
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("steps")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sync.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Recipe deleted")
			return nil
		},
	}
}

func newSuggestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <ingredient>...",
		Short: "Ask for meal ideas from a list of ingredients",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := a.client.Suggest(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Println(suggestions)
			return nil
		},
	}
}

func newMealPlanCmd(a *app) *cobra.Command {
	var days int
	var preferences string
	cmd := &cobra.Command{
		Use:   "meal-plan",
		Short: "Ask for a multi-day meal plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.client.MealPlan(cmd.Context(), days, preferences)
			if err != nil {
				return err
			}
			fmt.Println(plan)
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 7, "number of days to plan")
	cmd.Flags().StringVarP(&preferences, "preferences", "p", "", "dietary preferences")
	return cmd
}

// resolvePassword returns the flag value or prompts on stdin.
func resolvePassword(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
