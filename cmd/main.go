package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	cfg "github.com/Sharmil001/codula-app/internal/config"
	"github.com/Sharmil001/codula-app/internal/domain/models"
	"github.com/Sharmil001/codula-app/internal/domain/ports"
	"github.com/Sharmil001/codula-app/internal/i18n"
	"github.com/Sharmil001/codula-app/internal/infrastructure/ai/gemini"
	"github.com/Sharmil001/codula-app/internal/infrastructure/ai/groq"
	"github.com/Sharmil001/codula-app/internal/infrastructure/auth"
	"github.com/Sharmil001/codula-app/internal/infrastructure/persistence/postgres"
	token_repository "github.com/Sharmil001/codula-app/internal/infrastructure/persistence/postgres/token"
	"github.com/Sharmil001/codula-app/internal/infrastructure/vcs/github"
	"github.com/Sharmil001/codula-app/internal/logger"
	"github.com/Sharmil001/codula-app/internal/services"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	config, err := cfg.LoadConfig()
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(config.Language)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	ctx := context.Background()

	var store ports.CredentialStore
	if config.DatabaseURL != "" {
		if err := postgres.RunMigrations(config.DatabaseURL, "migrations"); err != nil {
			log.Printf("Warning: migrations failed: %v", err)
		}
		pool, err := postgres.NewPool(ctx, config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("error connecting to the database: %w", err)
		}
		store = token_repository.NewTokenRepository(pool)
	} else {
		store = auth.NewMemoryStore()
	}

	session := auth.NewEnvSession(config.UserID, config.GitHub.Token)
	tokenCache := auth.NewTokenCache(store, session)
	factory := github.NewClientFactory(tokenCache, config.GitHub.RequestTimeout, config.GitHub.MaxRetries)
	activityFetcher := github.NewActivityFetcher(factory)
	ingestion := github.NewPRIngestion(factory)

	analyzer := services.NewAnalyzerService(
		config.AI.Backends["gemini"].Timeout,
		gemini.NewStoryGenerator(config.AI.Backends["gemini"]),
		groq.NewStoryGenerator(config.AI.Backends["groq"], nil),
	)
	storyService := services.NewStoryService(ingestion, analyzer)

	logger.Initialize(os.Getenv("CODULA_DEBUG") != "", os.Getenv("CODULA_VERBOSE") != "")

	return &cli.Command{
		Name:        "codula",
		Usage:       "GitHub activity and pull request analysis",
		Description: "Fetches repository activity and turns pull requests into narrative stories",
		Commands: []*cli.Command{
			newConnectCommand(translations, config, tokenCache),
			newDisconnectCommand(translations, config, tokenCache),
			newActivityCommand(translations, activityFetcher),
			newAnalyzeCommand(translations, storyService),
			newReposCommand(translations, factory),
		},
	}, nil
}

func newConnectCommand(trans *i18n.Translations, config *cfg.Config, cache ports.TokenCache) *cli.Command {
	return &cli.Command{
		Name:  "connect",
		Usage: trans.GetMessage("connect_command_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Usage: "GitHub personal access token", Required: true},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := cache.Store(ctx, config.UserID, cmd.String("token")); err != nil {
				return err
			}
			fmt.Println(trans.GetMessage("token_stored", 0, map[string]interface{}{"User": config.UserID}))
			return nil
		},
	}
}

func newDisconnectCommand(trans *i18n.Translations, config *cfg.Config, cache ports.TokenCache) *cli.Command {
	return &cli.Command{
		Name:  "disconnect",
		Usage: trans.GetMessage("disconnect_command_description", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := cache.Invalidate(ctx); err != nil {
				return err
			}
			fmt.Println(trans.GetMessage("token_removed", 0, map[string]interface{}{"User": config.UserID}))
			return nil
		},
	}
}

func newActivityCommand(trans *i18n.Translations, fetcher *github.ActivityFetcher) *cli.Command {
	return &cli.Command{
		Name:      "activity",
		Usage:     trans.GetMessage("activity_command_description", 0, nil),
		ArgsUsage: "<owner/repo>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			repo := cmd.Args().First()
			if repo == "" {
				return cli.ShowAppHelp(cmd)
			}

			fmt.Println(trans.GetMessage("fetching_activity", 0, map[string]interface{}{"Repo": repo}))
			activity := fetcher.GetRepoActivity(ctx, repo)
			if activity == nil {
				fmt.Println(trans.GetMessage("activity_skipped", 0, map[string]interface{}{"Repo": repo}))
				return nil
			}

			renderActivity(trans, activity)
			return nil
		},
	}
}

func newAnalyzeCommand(trans *i18n.Translations, stories *services.StoryService) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     trans.GetMessage("analyze_command_description", 0, nil),
		ArgsUsage: "<pr-url>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			url := cmd.Args().First()
			if url == "" {
				return cli.ShowAppHelp(cmd)
			}

			ref := github.ParsePRURL(url)
			if ref == nil {
				return fmt.Errorf("%s", trans.GetMessage("invalid_pr_url", 0, map[string]interface{}{"URL": url}))
			}

			fmt.Println(trans.GetMessage("analyzing_pr", 0, map[string]interface{}{"URL": url}))
			data, analysis, err := stories.Analyze(ctx, *ref)
			if err != nil {
				return err
			}

			renderStory(trans, data, analysis)
			return nil
		},
	}
}

func newReposCommand(trans *i18n.Translations, provider github.ClientProvider) *cli.Command {
	return &cli.Command{
		Name:  "repos",
		Usage: trans.GetMessage("repos_command_description", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := provider.GetClient(ctx)
			if err != nil {
				return err
			}
			repos, err := client.ListRepos(ctx)
			if err != nil {
				return err
			}
			for _, r := range repos {
				visibility := "public"
				if r.Private {
					visibility = "private"
				}
				fmt.Printf("%s (%s, %s)\n", r.FullName, r.Language, visibility)
			}
			return nil
		},
	}
}

func renderActivity(trans *i18n.Translations, activity *models.Activity) {
	fmt.Println(trans.GetMessage("commits_found", len(activity.Commits), map[string]interface{}{"Count": len(activity.Commits)}))
	for _, c := range activity.Commits {
		fmt.Printf("  %.8s %s (%d files)\n", c.SHA, firstLine(c.Message), len(c.Files))
	}

	fmt.Println(trans.GetMessage("pull_requests_found", len(activity.PullRequests), map[string]interface{}{"Count": len(activity.PullRequests)}))
	for _, pr := range activity.PullRequests {
		fmt.Printf("  #%d [%s] %s\n", pr.Number, pr.State, pr.Title)
	}
}

func renderStory(trans *i18n.Translations, data models.PRData, analysis models.PRAnalysis) {
	story := analysis.Story

	fmt.Printf("\n%s\n", data.Title)
	fmt.Printf("%s\n\n", story.Summary)
	fmt.Printf("Impact: %s\n", story.Impact)
	fmt.Printf("Complexity: %s\n", story.Complexity)
	if len(story.KeyChanges) > 0 {
		fmt.Println("Key changes:")
		for _, kc := range story.KeyChanges {
			fmt.Printf("  - %s\n", kc)
		}
	}
	if len(story.Tags) > 0 {
		fmt.Printf("Tags: %v\n", story.Tags)
	}

	if analysis.Source == models.SourceModel {
		fmt.Println(trans.GetMessage("story_source_model", 0, map[string]interface{}{"Model": analysis.Model}))
	} else {
		fmt.Println(trans.GetMessage("story_source_rule_based", 0, nil))
	}
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
