package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/wortwerk/internal/assets"
	"codeberg.org/snonux/wortwerk/internal/audio"
	"codeberg.org/snonux/wortwerk/internal/batch"
	"codeberg.org/snonux/wortwerk/internal/cli"
	"codeberg.org/snonux/wortwerk/internal/dictionary"
	"codeberg.org/snonux/wortwerk/internal/image"
	"codeberg.org/snonux/wortwerk/internal/models"
	"codeberg.org/snonux/wortwerk/internal/processor"
	"codeberg.org/snonux/wortwerk/internal/store"
)

var log = logrus.New()

func main() {
	// Local .env is optional, real deployments use the environment.
	_ = godotenv.Load()

	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx)
	}

	if !dictionary.SupportedLanguage(flags.Language) {
		return fmt.Errorf("unsupported learner language: %s", flags.Language)
	}

	terms, err := collectTerms(args, flags)
	if err != nil {
		return err
	}

	db, err := store.Open(flags.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	proc, err := buildProcessor(ctx, db, flags)
	if err != nil {
		return err
	}

	results, err := proc.ProcessBatch(ctx, terms)
	if err != nil {
		return err
	}

	for _, res := range results {
		if res.Outcome == processor.OutcomeFailed {
			return fmt.Errorf("%d of %d terms failed", countFailed(results), len(results))
		}
	}
	return nil
}

func collectTerms(args []string, flags *cli.Flags) ([]string, error) {
	switch {
	case flags.BatchFile != "":
		return batch.ReadWordList(flags.BatchFile)
	case flags.ExcelFile != "":
		return batch.ReadExcelWordList(flags.ExcelFile)
	case len(args) > 0:
		return []string{args[0]}, nil
	default:
		return nil, fmt.Errorf("please provide a German term or use --batch / --excel")
	}
}

func buildProcessor(ctx context.Context, db *store.Store, flags *cli.Flags) (*processor.Processor, error) {
	cfg := &processor.Config{
		DB: db,
		Tasks: processor.Tasks{
			Text:           flags.WithText,
			Image:          flags.WithImage,
			WordAudio:      flags.WithWordAudio,
			Example1Audio:  flags.WithExample1,
			Example2Audio:  flags.WithExample2,
			NoteAudio:      flags.WithNoteAudio,
			OverwriteAudio: flags.OverwriteAudio,
		},
		Opts: processor.Options{
			Language:       flags.Language,
			ImageStyle:     flags.ImageStyle,
			InterTermDelay: flags.InterTermDelay,
		},
		Picker: image.NewPicker(flags.RandomSeed),
		Logf:   log.Infof,
	}

	if flags.WithText {
		generator, err := buildTextGenerator(flags)
		if err != nil {
			return nil, err
		}
		cfg.Text = generator
	}

	if flags.WithImage {
		cfg.Image = image.NewOpenAIGenerator(&image.OpenAIConfig{
			APIKey: cli.GetOpenAIKey(),
			Model:  flags.OpenAIImageModel,
		})
	}

	anyAudio := flags.WithWordAudio || flags.WithExample1 || flags.WithExample2 || flags.WithNoteAudio
	if anyAudio {
		provider, err := buildAudioProvider(flags)
		if err != nil {
			return nil, err
		}
		cfg.Audio = provider
	}

	if flags.WithImage || anyAudio {
		assetStore, err := assets.NewStore(ctx, &assets.Config{
			Backend:  flags.StorageBackend,
			LocalDir: flags.LocalAssetDir,
			Endpoint: flags.StorageEndpoint,
			Bucket:   flags.StorageBucket,
			BaseURL:  flags.StorageBaseURL,
			KeyID:    cli.GetStorageKeyID(),
			Key:      cli.GetStorageKey(),
		})
		if err != nil {
			return nil, err
		}
		cfg.Assets = assetStore
	}

	return processor.New(cfg), nil
}

func buildTextGenerator(flags *cli.Flags) (dictionary.Generator, error) {
	primary, err := dictionary.NewOpenAIGenerator(cli.GetOpenAIKey(), flags.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("text generation: %w", err)
	}

	// A configured Gemini key enables the fallback chain.
	if geminiKey := cli.GetGeminiKey(); geminiKey != "" {
		fallback, err := dictionary.NewGeminiGenerator(geminiKey, flags.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("text generation fallback: %w", err)
		}
		return dictionary.NewGeneratorWithFallback(primary, fallback, log.Warnf), nil
	}

	return primary, nil
}

func buildAudioProvider(flags *cli.Flags) (audio.Provider, error) {
	config := audio.DefaultProviderConfig()
	config.Provider = flags.AudioProvider
	config.OpenAIKey = cli.GetOpenAIKey()
	config.OpenAIModel = flags.OpenAITTSModel
	config.GeminiKey = cli.GetGeminiKey()
	config.GeminiModel = flags.GeminiTTSModel
	config.OpenAIVoices = map[audio.VoiceRole]string{
		audio.RoleWord:     flags.WordVoice,
		audio.RoleExample1: flags.Example1Voice,
		audio.RoleExample2: flags.Example2Voice,
	}

	primary, err := audio.NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("audio provider: %w", err)
	}

	// Build the cross-provider fallback when the other key is configured.
	var fallbackName string
	switch flags.AudioProvider {
	case "openai":
		if config.GeminiKey != "" {
			fallbackName = "gemini"
		}
	case "gemini":
		if config.OpenAIKey != "" {
			fallbackName = "openai"
		}
	}
	if fallbackName == "" {
		return primary, nil
	}

	fallbackConfig := *config
	fallbackConfig.Provider = fallbackName
	fallback, err := audio.NewProvider(&fallbackConfig)
	if err != nil {
		log.Warnf("Audio fallback provider unavailable: %v", err)
		return primary, nil
	}

	return audio.NewProviderWithFallback(primary, fallback, log.Warnf), nil
}

func countFailed(results []processor.Result) int {
	n := 0
	for _, res := range results {
		if res.Outcome == processor.OutcomeFailed {
			n++
		}
	}
	return n
}
