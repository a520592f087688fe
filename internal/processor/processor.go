package processor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/wortwerk/internal/assets"
	"codeberg.org/snonux/wortwerk/internal/audio"
	"codeberg.org/snonux/wortwerk/internal/dictionary"
	"codeberg.org/snonux/wortwerk/internal/guard"
	"codeberg.org/snonux/wortwerk/internal/image"
	"codeberg.org/snonux/wortwerk/internal/store"
)

// Outcome classifies how one term went through the pipeline.
type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomePartial  Outcome = "partial"
	OutcomeFailed   Outcome = "failed"
	OutcomeSkipped  Outcome = "skipped"
)

// Result is the per-term outcome record.
type Result struct {
	Term    string
	Outcome Outcome
	Err     error
}

// Tasks selects which pipeline phases run. Unselected phases are never
// attempted, not even partially.
type Tasks struct {
	Text          bool
	Image         bool
	WordAudio     bool
	Example1Audio bool
	Example2Audio bool
	NoteAudio     bool

	// OverwriteAudio regenerates audio even when a URL is already stored.
	OverwriteAudio bool
}

// anyAudio reports whether at least one audio role is selected.
func (t Tasks) anyAudio() bool {
	return t.WordAudio || t.Example1Audio || t.Example2Audio || t.NoteAudio
}

// Options tunes the batch run.
type Options struct {
	Language       string        // learner language code, e.g. "en"
	ImageStyle     string        // style keyword for the image phase
	InterTermDelay time.Duration // pause between terms
	RoleDelay      time.Duration // small buffer between audio role calls
	ImageTimeout   time.Duration // deadline for one image generation
}

// Config wires a Processor. Nil providers are allowed as long as no task
// needing them is selected.
type Config struct {
	DB     *store.Store
	Assets assets.Store
	Text   dictionary.Generator
	Image  image.Generator
	Audio  audio.Provider
	Picker *image.Picker
	Tasks  Tasks
	Opts   Options
	Logf   func(format string, args ...any)
	Now    func() time.Time
}

// Processor runs the enrichment pipeline over a word list, one term at a
// time. One bad term never stops the batch.
type Processor struct {
	db     *store.Store
	assets assets.Store
	text   dictionary.Generator
	image  image.Generator
	audio  audio.Provider
	picker *image.Picker
	tasks  Tasks
	opts   Options
	logf   func(format string, args ...any)
	now    func() time.Time

	textBreaker  *guard.Breaker
	imageBreaker *guard.Breaker
}

// New creates a new pipeline processor
func New(cfg *Config) *Processor {
	opts := cfg.Opts
	if opts.ImageTimeout == 0 {
		opts.ImageTimeout = 25 * time.Second
	}
	if opts.RoleDelay == 0 {
		opts.RoleDelay = time.Second
	}
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	picker := cfg.Picker
	if picker == nil {
		picker = image.NewPicker(0)
	}

	return &Processor{
		db:           cfg.DB,
		assets:       cfg.Assets,
		text:         cfg.Text,
		image:        cfg.Image,
		audio:        cfg.Audio,
		picker:       picker,
		tasks:        cfg.Tasks,
		opts:         opts,
		logf:         logf,
		now:          now,
		textBreaker:  guard.NewBreaker("text-generation", dictionary.ErrNotAWord),
		imageBreaker: guard.NewBreaker("image-generation"),
	}
}

// ProcessBatch runs the pipeline over all terms sequentially and returns
// the per-term results. The returned error is non-nil only for conditions
// that abort the whole batch (bad wiring, context cancellation).
func (p *Processor) ProcessBatch(ctx context.Context, terms []string) ([]Result, error) {
	if err := p.preflight(); err != nil {
		return nil, err
	}

	pacer := guard.NewPacer(p.opts.InterTermDelay)
	results := make([]Result, 0, len(terms))

	for i, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p.logf("Processing %d/%d: %s", i+1, len(terms), term)
		res := p.processTerm(ctx, term)
		results = append(results, res)

		switch res.Outcome {
		case OutcomeFailed:
			p.logf("  ✗ %s: %v", term, res.Err)
		case OutcomeSkipped:
			p.logf("  - %s skipped", term)
		default:
			p.logf("  ✓ %s %s", term, res.Outcome)
		}

		if i < len(terms)-1 {
			if err := pacer.Wait(ctx); err != nil {
				return results, err
			}
		}
	}

	p.logSummary(results)
	return results, nil
}

// ProcessSingleWord runs the pipeline for one term given on the command line.
func (p *Processor) ProcessSingleWord(ctx context.Context, term string) (Result, error) {
	results, err := p.ProcessBatch(ctx, []string{term})
	if err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{Term: term, Outcome: OutcomeSkipped}, nil
	}
	return results[0], nil
}

// preflight verifies that every selected task has its provider wired and
// credentialed before the first term runs.
func (p *Processor) preflight() error {
	if p.db == nil {
		return fmt.Errorf("database is required")
	}
	if p.tasks.Text && p.text == nil {
		return fmt.Errorf("text generation selected but no text generator configured")
	}
	if p.tasks.Image {
		if p.image == nil {
			return fmt.Errorf("image generation selected but no image generator configured")
		}
		if p.assets == nil {
			return fmt.Errorf("image generation selected but no asset store configured")
		}
	}
	if p.tasks.anyAudio() {
		if p.audio == nil {
			return fmt.Errorf("audio generation selected but no audio provider configured")
		}
		if err := p.audio.IsAvailable(); err != nil {
			return fmt.Errorf("audio provider unavailable: %w", err)
		}
		if p.assets == nil {
			return fmt.Errorf("audio generation selected but no asset store configured")
		}
	}
	return nil
}

// termState carries what later phases need from the word record, whether it
// was just generated or looked up.
type termState struct {
	wordID  int64
	article string
	content *store.LocalizedContent
	samples []store.Example
}

func (p *Processor) processTerm(ctx context.Context, term string) Result {
	var state *termState
	var err error

	if p.tasks.Text {
		state, err = p.runTextPhase(ctx, term)
		if err != nil {
			return Result{Term: term, Outcome: OutcomeFailed, Err: err}
		}
	} else if p.tasks.Image || p.tasks.anyAudio() {
		state, err = p.lookupWord(ctx, term)
		if err != nil {
			return Result{Term: term, Outcome: OutcomeFailed, Err: err}
		}
		if state == nil {
			p.logf("  Warning: %q is not in the dictionary yet, generate its text first", term)
			return Result{Term: term, Outcome: OutcomeSkipped}
		}
	} else {
		return Result{Term: term, Outcome: OutcomeSkipped}
	}

	succeeded := p.tasks.Text // text already done if selected
	var partial bool

	if p.tasks.Image {
		if err := ctx.Err(); err != nil {
			return Result{Term: term, Outcome: OutcomePartial, Err: err}
		}
		if err := p.runImagePhase(ctx, term, state); err != nil {
			p.logf("  Warning: image generation failed: %v", err)
			partial = true
		} else {
			succeeded = true
		}
	}

	if p.tasks.anyAudio() {
		if err := ctx.Err(); err != nil {
			return Result{Term: term, Outcome: OutcomePartial, Err: err}
		}
		failed, generated := p.runAudioPhase(ctx, term, state)
		if failed > 0 {
			partial = true
		}
		if generated > 0 || failed == 0 {
			succeeded = succeeded || generated > 0
		}
	}

	switch {
	case partial && succeeded:
		return Result{Term: term, Outcome: OutcomePartial}
	case partial:
		return Result{Term: term, Outcome: OutcomeFailed, Err: fmt.Errorf("all selected phases failed for %q", term)}
	default:
		return Result{Term: term, Outcome: OutcomeComplete}
	}
}

// runTextPhase generates the dictionary entry and persists it. Regenerated
// text invalidates all stored example audio URLs.
func (p *Processor) runTextPhase(ctx context.Context, term string) (*termState, error) {
	p.logf("  Generating dictionary entry...")

	var entry *dictionary.Entry
	err := p.textBreaker.Do(func() error {
		var genErr error
		entry, genErr = p.text.Generate(ctx, term, p.opts.Language)
		return genErr
	})
	if err != nil {
		return nil, err
	}

	grammarJSON, err := json.Marshal(entry.Grammar)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grammar data: %w", err)
	}

	wordID, err := p.db.UpsertWord(ctx, entry.Term, entry.PartOfSpeech, string(grammarJSON))
	if err != nil {
		return nil, err
	}
	if err := p.db.UpsertLocalizedContent(ctx, wordID, p.opts.Language, entry.Definition, entry.UsageNote); err != nil {
		return nil, err
	}
	for i, ex := range entry.Examples {
		// Explicit NULL: new sentences must never keep old pronunciations.
		if err := p.db.UpsertExample(ctx, wordID, p.opts.Language, i, ex.Sentence, ex.Translation, nil); err != nil {
			return nil, err
		}
	}

	state := &termState{wordID: wordID, article: entry.Grammar.Article}
	state.content, err = p.db.GetLocalizedContent(ctx, wordID, p.opts.Language)
	if err != nil {
		return nil, err
	}
	state.samples, err = p.db.GetExamples(ctx, wordID, p.opts.Language)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// lookupWord reconstructs the term state from stored rows. Returns nil
// without error when the word has never been generated.
func (p *Processor) lookupWord(ctx context.Context, term string) (*termState, error) {
	word, err := p.db.GetWordByTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, nil
	}

	var grammar dictionary.GrammarData
	if word.GrammarData != "" {
		// Tolerate older rows with malformed grammar blobs.
		_ = json.Unmarshal([]byte(word.GrammarData), &grammar)
	}

	state := &termState{wordID: word.ID, article: grammar.Article}
	state.content, err = p.db.GetLocalizedContent(ctx, word.ID, p.opts.Language)
	if err != nil {
		return nil, err
	}
	state.samples, err = p.db.GetExamples(ctx, word.ID, p.opts.Language)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// runImagePhase generates, post-processes, uploads and records one
// illustration for the term in the configured style.
func (p *Processor) runImagePhase(ctx context.Context, term string, state *termState) error {
	p.logf("  Generating image...")

	req := &image.Request{
		Term:     term,
		Style:    p.opts.ImageStyle,
		Backdrop: p.picker.Pick(),
	}
	if len(state.samples) > 0 {
		req.ContextSentence = state.samples[0].TargetSentence
	}

	var raw []byte
	err := guard.WithTimeout(ctx, p.opts.ImageTimeout, "image generation", func(ctx context.Context) error {
		return p.imageBreaker.Do(func() error {
			var genErr error
			raw, genErr = p.image.Generate(ctx, req)
			return genErr
		})
	})
	if err != nil {
		return err
	}

	processed, err := image.PostProcess(raw)
	if err != nil {
		return err
	}

	url, err := p.assets.Upload(ctx, assets.ImagePath(term, p.opts.ImageStyle, p.now()), "image/jpeg", processed)
	if err != nil {
		return err
	}

	return p.db.UpsertWordImage(ctx, state.wordID, p.opts.ImageStyle, url)
}

// runAudioPhase synthesizes the selected voice roles independently. A role
// with a stored URL is skipped unless overwrite is on; the provider must
// not be called for skipped roles.
func (p *Processor) runAudioPhase(ctx context.Context, term string, state *termState) (failed, generated int) {
	type roleJob struct {
		selected bool
		run      func() error
	}

	jobs := []roleJob{
		{p.tasks.WordAudio, func() error { return p.generateWordAudio(ctx, term, state) }},
		{p.tasks.Example1Audio, func() error { return p.generateExampleAudio(ctx, term, state, 0) }},
		{p.tasks.Example2Audio, func() error { return p.generateExampleAudio(ctx, term, state, 1) }},
		{p.tasks.NoteAudio, func() error { return p.generateNoteAudio(ctx, term, state) }},
	}

	needDelay := false
	for _, job := range jobs {
		if !job.selected {
			continue
		}
		if needDelay {
			if err := p.roleDelay(ctx); err != nil {
				return failed, generated
			}
		}

		switch err := job.run(); {
		case err == errRoleSkipped:
			// No provider call happened, no pacing needed.
		case err != nil:
			p.logf("  Warning: audio generation failed: %v", err)
			failed++
			needDelay = true
		default:
			generated++
			needDelay = true
		}
	}
	return failed, generated
}

// errRoleSkipped marks a role that kept its stored audio.
var errRoleSkipped = fmt.Errorf("audio already present")

func (p *Processor) generateWordAudio(ctx context.Context, term string, state *termState) error {
	word, err := p.db.GetWordByTerm(ctx, term)
	if err != nil {
		return err
	}
	if word == nil {
		return fmt.Errorf("word %q disappeared from the dictionary", term)
	}
	if hasURL(word.PronunciationAudioURL) && !p.tasks.OverwriteAudio {
		p.logf("  Word audio already present, skipping")
		return errRoleSkipped
	}

	// Nouns are spoken with their article so learners hear the gender.
	text := term
	if state.article != "" {
		text = state.article + " " + term
	}

	p.logf("  Generating word audio (%q)...", text)
	clip, err := p.audio.GenerateSpeech(ctx, text, audio.RoleWord)
	if err != nil {
		return err
	}

	url, err := p.assets.Upload(ctx, assets.WordAudioPath(term, clip.FileExt(), p.now()), clip.MIMEType, clip.Data)
	if err != nil {
		return err
	}
	return p.db.SetWordAudioURL(ctx, state.wordID, url)
}

func (p *Processor) generateExampleAudio(ctx context.Context, term string, state *termState, index int) error {
	var example *store.Example
	for i := range state.samples {
		if state.samples[i].SentenceIndex == index {
			example = &state.samples[i]
			break
		}
	}
	if example == nil {
		return fmt.Errorf("no example sentence %d stored for %q", index+1, term)
	}

	// Re-read so regenerated text in this run is seen with its nulled URL.
	current, err := p.db.GetExamples(ctx, state.wordID, p.opts.Language)
	if err != nil {
		return err
	}
	for i := range current {
		if current[i].SentenceIndex == index {
			example = &current[i]
			break
		}
	}

	if hasURL(example.AudioURL) && !p.tasks.OverwriteAudio {
		p.logf("  Example %d audio already present, skipping", index+1)
		return errRoleSkipped
	}

	role := audio.RoleExample1
	if index == 1 {
		role = audio.RoleExample2
	}

	p.logf("  Generating example %d audio...", index+1)
	clip, err := p.audio.GenerateSpeech(ctx, example.TargetSentence, role)
	if err != nil {
		return err
	}

	url, err := p.assets.Upload(ctx, assets.ExampleAudioPath(term, index, clip.FileExt(), p.now()), clip.MIMEType, clip.Data)
	if err != nil {
		return err
	}
	return p.db.SetExampleAudioURL(ctx, state.wordID, p.opts.Language, index, url)
}

func (p *Processor) generateNoteAudio(ctx context.Context, term string, state *termState) error {
	if state.content == nil || strings.TrimSpace(state.content.UsageNote) == "" {
		p.logf("  No usage note stored, skipping note audio")
		return errRoleSkipped
	}
	if hasURL(state.content.UsageNoteAudioURL) && !p.tasks.OverwriteAudio {
		p.logf("  Usage note audio already present, skipping")
		return errRoleSkipped
	}

	p.logf("  Generating usage note audio...")
	clip, err := p.audio.GenerateSpeech(ctx, state.content.UsageNote, audio.RoleWord)
	if err != nil {
		return err
	}

	url, err := p.assets.Upload(ctx, assets.NoteAudioPath(term, p.opts.Language, clip.FileExt(), p.now()), clip.MIMEType, clip.Data)
	if err != nil {
		return err
	}
	return p.db.SetUsageNoteAudioURL(ctx, state.wordID, p.opts.Language, url)
}

func (p *Processor) roleDelay(ctx context.Context) error {
	if p.opts.RoleDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.opts.RoleDelay):
		return nil
	}
}

func (p *Processor) logSummary(results []Result) {
	counts := map[Outcome]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}

	p.logf("=== Batch Processing Summary ===")
	p.logf("Total terms: %d", len(results))
	p.logf("Complete: %d", counts[OutcomeComplete])
	if counts[OutcomePartial] > 0 {
		p.logf("Partial: %d", counts[OutcomePartial])
	}
	if counts[OutcomeSkipped] > 0 {
		p.logf("Skipped: %d", counts[OutcomeSkipped])
	}
	if counts[OutcomeFailed] > 0 {
		p.logf("Failed: %d", counts[OutcomeFailed])
	}
	p.logf("================================")
}

func hasURL(s sql.NullString) bool {
	return s.Valid && strings.TrimSpace(s.String) != ""
}
