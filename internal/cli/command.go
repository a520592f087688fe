package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wortwerk/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wortwerk [term]",
		Short: "German Dictionary Content Pipeline",
		Long: `wortwerk enriches German vocabulary into full dictionary entries.

For each term it generates a structured entry (definition, grammar data,
usage note and two example sentences) with an LLM, an illustrative image,
and pronunciation audio, and stores everything in a local database plus
an asset store.

Examples:
  wortwerk Katze                       # Enrich a single term
  wortwerk --batch words.txt           # Process a word list
  wortwerk --batch words.txt -l zh     # Chinese learner content
  wortwerk --excel words.xlsx --text=false --overwrite-audio`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wortwerk.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Language, "language", "l", flags.Language, "Learner language code (en, zh, nl, ru, fr, es)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Process terms from a text file (one per line)")
	cmd.Flags().StringVar(&flags.ExcelFile, "excel", "", "Process terms from an .xlsx file (first column)")
	cmd.Flags().StringVar(&flags.DatabasePath, "database", flags.DatabasePath, "SQLite database path")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")

	// Task selection
	cmd.Flags().BoolVar(&flags.WithText, "text", flags.WithText, "Generate dictionary entry text")
	cmd.Flags().BoolVar(&flags.WithImage, "image", flags.WithImage, "Generate an illustration image")
	cmd.Flags().BoolVar(&flags.WithWordAudio, "word-audio", flags.WithWordAudio, "Generate word pronunciation audio")
	cmd.Flags().BoolVar(&flags.WithExample1, "example1-audio", flags.WithExample1, "Generate audio for the first example sentence")
	cmd.Flags().BoolVar(&flags.WithExample2, "example2-audio", flags.WithExample2, "Generate audio for the second example sentence")
	cmd.Flags().BoolVar(&flags.WithNoteAudio, "note-audio", false, "Generate audio for the usage note")
	cmd.Flags().BoolVar(&flags.OverwriteAudio, "overwrite-audio", false, "Regenerate audio even when a stored clip exists")
	cmd.Flags().StringVar(&flags.ImageStyle, "image-style", flags.ImageStyle, "Image style: flat, cartoon, anime-healing, watercolor, pixel, realistic")
	cmd.Flags().DurationVar(&flags.InterTermDelay, "delay", flags.InterTermDelay, "Pause between terms (provider rate-limit protection)")
	cmd.Flags().Int64Var(&flags.RandomSeed, "seed", 0, "Seed for image backdrop selection (0 = time-based)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for entry generation")
	cmd.Flags().StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-3 or gpt-image-1")
	cmd.Flags().StringVar(&flags.OpenAITTSModel, "openai-tts-model", flags.OpenAITTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")

	// Gemini flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini fallback chat model")
	cmd.Flags().StringVar(&flags.GeminiTTSModel, "gemini-tts-model", flags.GeminiTTSModel, "Gemini TTS model")

	// Audio provider and voices
	cmd.Flags().StringVar(&flags.AudioProvider, "audio-provider", flags.AudioProvider, "TTS provider: openai or gemini")
	cmd.Flags().StringVar(&flags.WordVoice, "word-voice", flags.WordVoice, "Voice for word pronunciation")
	cmd.Flags().StringVar(&flags.Example1Voice, "example1-voice", flags.Example1Voice, "Voice for the first example sentence")
	cmd.Flags().StringVar(&flags.Example2Voice, "example2-voice", flags.Example2Voice, "Voice for the second example sentence")

	// Storage flags
	cmd.Flags().StringVar(&flags.StorageBackend, "storage", flags.StorageBackend, "Asset storage backend: s3 or local")
	cmd.Flags().StringVar(&flags.StorageEndpoint, "storage-endpoint", "", "S3-compatible endpoint URL")
	cmd.Flags().StringVar(&flags.StorageBucket, "storage-bucket", flags.StorageBucket, "Storage bucket name")
	cmd.Flags().StringVar(&flags.StorageBaseURL, "storage-base-url", "", "Public base URL for uploaded assets")
	cmd.Flags().StringVar(&flags.LocalAssetDir, "asset-dir", flags.LocalAssetDir, "Directory for the local storage backend")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("database", cmd.Flags().Lookup("database"))
	viper.BindPFlag("pipeline.delay", cmd.Flags().Lookup("delay"))
	viper.BindPFlag("pipeline.image_style", cmd.Flags().Lookup("image-style"))
	viper.BindPFlag("text.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("text.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("image.openai_model", cmd.Flags().Lookup("openai-image-model"))
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("audio-provider"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-tts-model"))
	viper.BindPFlag("audio.gemini_model", cmd.Flags().Lookup("gemini-tts-model"))
	viper.BindPFlag("audio.word_voice", cmd.Flags().Lookup("word-voice"))
	viper.BindPFlag("audio.example1_voice", cmd.Flags().Lookup("example1-voice"))
	viper.BindPFlag("audio.example2_voice", cmd.Flags().Lookup("example2-voice"))
	viper.BindPFlag("storage.backend", cmd.Flags().Lookup("storage"))
	viper.BindPFlag("storage.endpoint", cmd.Flags().Lookup("storage-endpoint"))
	viper.BindPFlag("storage.bucket", cmd.Flags().Lookup("storage-bucket"))
	viper.BindPFlag("storage.base_url", cmd.Flags().Lookup("storage-base-url"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".wortwerk" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wortwerk")
	}

	// Environment variables
	viper.SetEnvPrefix("WORTWERK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("text.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("text.gemini_key")
}

// GetStorageKey retrieves the privileged storage write key
func GetStorageKey() string {
	if key := os.Getenv("WORTWERK_STORAGE_KEY"); key != "" {
		return key
	}
	return viper.GetString("storage.key")
}

// GetStorageKeyID retrieves the storage access key ID
func GetStorageKeyID() string {
	if key := os.Getenv("WORTWERK_STORAGE_KEY_ID"); key != "" {
		return key
	}
	return viper.GetString("storage.key_id")
}
