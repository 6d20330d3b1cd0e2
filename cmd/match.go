package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/udem-connect/campus-connect/internal/ai"
	"github.com/udem-connect/campus-connect/internal/logger"
	"github.com/udem-connect/campus-connect/internal/store"
	"github.com/udem-connect/campus-connect/internal/student"
)

var errNoStudents = errors.New("no students registered, run the seed command first")

var matchCmd = &cobra.Command{
	Use:   "match [student name]",
	Short: "Compute the best matches for a student",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		defer logger.Sync()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		lang := ai.ParseLanguage(cmd.Flag("language").Value.String())
		if err := match(context.Background(), config, args, lang, os.Stdout, logger); err != nil {
			logger.Fatal("matching students", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("language", "l", "en", "language of explanations and activities (en or fr)")
}

// match closes the store before returning, so callers may exit on error.
func match(ctx context.Context, config *Config, args []string, lang ai.Language, out io.Writer, logger *zap.Logger) (err error) {
	db, err := openStore(config.Store, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	docs, err := db.Collection(store.Students).Find(ctx)
	if err != nil {
		return fmt.Errorf("loading students: %w", err)
	}

	profiles, err := student.ProfilesFromDocuments(docs)
	if err != nil {
		return fmt.Errorf("decoding students: %w", err)
	}

	subject, err := pickSubject(profiles, args)
	if err != nil {
		return err
	}

	candidates := make([]*student.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Name == subject.Name || (!config.Matching.IncludeInactive && !p.IsActive()) {
			continue
		}
		candidates = append(candidates, p)
	}

	logger.Info("computing matches",
		zap.String("student", subject.Name),
		zap.String("language", string(lang)),
		zap.Int("candidates", len(candidates)),
	)

	matches := newSelector(ctx, config, logger).FindBestMatches(ctx, subject, candidates, lang)
	if len(matches) == 0 {
		logger.Info("exiting", zap.String("reason", "no one to match with"))
		return nil
	}

	pretty, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding matches: %w", err)
	}
	_, err = fmt.Fprintln(out, string(pretty))
	return err
}

// pickSubject resolves the student named in args, or asks for one interactively.
func pickSubject(profiles []*student.Profile, args []string) (*student.Profile, error) {
	if len(profiles) == 0 {
		return nil, errNoStudents
	}

	if len(args) == 1 {
		return findProfile(profiles, args[0])
	}

	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}

	prompt := promptui.Select{
		Label: "Choose a student and press ENTER",
		Items: names,
		Size:  10,
	}

	_, name, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return findProfile(profiles, name)
}

func findProfile(profiles []*student.Profile, name string) (*student.Profile, error) {
	for _, p := range profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("student %q not found", name)
}
