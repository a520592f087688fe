package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	Language     string // source (learner) language code: en, zh, nl, ...
	BatchFile    string // plain-text word list, one term per line
	ExcelFile    string // .xlsx word list, terms in the first column
	DatabasePath string
	ListModels   bool

	// Task selection
	WithText       bool
	WithImage      bool
	WithWordAudio  bool
	WithExample1   bool
	WithExample2   bool
	WithNoteAudio  bool
	OverwriteAudio bool
	ImageStyle     string
	InterTermDelay time.Duration
	RandomSeed     int64 // 0 means time-seeded backdrop selection

	// OpenAI flags
	OpenAIModel      string // chat model for dictionary entries
	OpenAIImageModel string
	OpenAITTSModel   string

	// Gemini flags
	GeminiModel    string // fallback chat model
	GeminiTTSModel string

	// Audio provider and voice roles
	AudioProvider string // "openai" or "gemini"
	WordVoice     string
	Example1Voice string
	Example2Voice string

	// Asset storage
	StorageBackend  string // "s3" or "local"
	StorageEndpoint string
	StorageBucket   string
	StorageBaseURL  string
	LocalAssetDir   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Language:         "en",
		DatabasePath:     "wortwerk.db",
		WithText:         true,
		WithImage:        true,
		WithWordAudio:    true,
		WithExample1:     true,
		WithExample2:     true,
		ImageStyle:       "cartoon",
		InterTermDelay:   8 * time.Second,
		OpenAIModel:      "gpt-4o",
		OpenAIImageModel: "dall-e-3",
		OpenAITTSModel:   "gpt-4o-mini-tts",
		GeminiModel:      "gemini-2.5-flash",
		GeminiTTSModel:   "gemini-2.5-flash-preview-tts",
		AudioProvider:    "openai",
		WordVoice:        "alloy",
		Example1Voice:    "nova",
		Example2Voice:    "onyx",
		StorageBackend:   "local",
		StorageBucket:    "wortwerk",
		LocalAssetDir:    "assets",
	}
}
