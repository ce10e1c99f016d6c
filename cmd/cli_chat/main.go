package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"learning-advisor/internal/catalog"
	"learning-advisor/internal/config"
	"learning-advisor/internal/domain"
	"learning-advisor/internal/repository"
	"learning-advisor/internal/service"
)

var (
	catalogPath    string
	senderID       string
	verbose        bool
	planSkills     []string
	planCommitment string
	planGoal       string
)

var rootCmd = &cobra.Command{
	Use:   "cli_chat",
	Short: "Chat with the learning advisor from the terminal",
	Long: `Runs the profile form and recommendations over stdin/stdout.

Type "start my profile" to begin, "What should I learn next?" once the
profile is complete, and "exit" to quit.`,
	RunE: runChat,
}

var planCmd = &cobra.Command{
	Use:   "plan <domain>",
	Short: "Print a personalized timeline without going through the form",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "YAML catalog file (defaults to CATALOG_PATH or the built-in catalog)")
	rootCmd.Flags().StringVar(&senderID, "sender", "", "Sender id for the conversation (random when empty)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log service warnings to stderr")

	planCmd.Flags().StringSliceVar(&planSkills, "skills", nil, "Skills you already have (comma separated)")
	planCmd.Flags().StringVar(&planCommitment, "time", "", "Daily study time, e.g. \"2 hours\"")
	planCmd.Flags().StringVar(&planGoal, "goal", "", "Primary learning goal")
	rootCmd.AddCommand(planCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadAdvisor() (*config.Config, *service.AdvisorService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	path := catalogPath
	if path == "" {
		path = cfg.CatalogPath
	}
	cat := catalog.Default()
	if path != "" {
		if cat, err = catalog.LoadFile(path); err != nil {
			return nil, nil, err
		}
	}
	return cfg, service.NewAdvisorService(cat, cfg.DefaultTimeCommitment), nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, advisor, err := loadAdvisor()
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer logger.Sync()

	conversations := service.NewConversationService(
		logger,
		service.NewMemoryConversationStore(cfg.SessionTTL()),
		advisor,
		nil,
		repository.NoopProfileRepository{},
	)

	sender := strings.TrimSpace(senderID)
	if sender == "" {
		sender = uuid.NewString()
	}
	return chatLoop(cmd.Context(), conversations, sender, cmd.InOrStdin(), cmd.OutOrStdout())
}

func chatLoop(ctx context.Context, conversations *service.ConversationService, sender string, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Learning advisor. Type 'exit' to quit.")
	for {
		fmt.Fprint(out, "> ")
		text, err := reader.ReadString('\n')
		text = strings.TrimSpace(text)
		if text != "" && !strings.EqualFold(text, "exit") && !strings.EqualFold(text, "quit") {
			replies, herr := conversations.Handle(ctx, sender, text)
			if herr != nil {
				return herr
			}
			for _, r := range replies {
				fmt.Fprintln(out, r)
			}
		}
		if err == io.EOF || strings.EqualFold(text, "exit") || strings.EqualFold(text, "quit") {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func runPlan(cmd *cobra.Command, args []string) error {
	_, advisor, err := loadAdvisor()
	if err != nil {
		return err
	}
	profile := domain.Profile{
		TargetDomain:   strings.TrimSpace(args[0]),
		TimeCommitment: strings.TrimSpace(planCommitment),
		LearningGoal:   strings.TrimSpace(planGoal),
	}
	if len(planSkills) > 0 {
		profile.Skills = planSkills
	}
	text, _, ok := advisor.LearningPath(profile)
	if !ok {
		return fmt.Errorf("domain is required")
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
