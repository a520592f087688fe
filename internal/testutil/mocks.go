package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/wortwerk/internal/audio"
	"codeberg.org/snonux/wortwerk/internal/dictionary"
	"codeberg.org/snonux/wortwerk/internal/image"
)

// MockEntryGenerator mocks the dictionary entry generator
type MockEntryGenerator struct {
	Entries map[string]*dictionary.Entry
	Errors  map[string]error
	Calls   []string
}

// Generate returns the canned entry for term
func (m *MockEntryGenerator) Generate(ctx context.Context, term, languageCode string) (*dictionary.Entry, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("generate %s (%s)", term, languageCode))

	if err, ok := m.Errors[term]; ok {
		return nil, err
	}
	if entry, ok := m.Entries[term]; ok {
		return entry, nil
	}
	return nil, fmt.Errorf("no canned entry for %q", term)
}

// Name returns the mock name
func (m *MockEntryGenerator) Name() string {
	return "mock"
}

// MockImageGenerator mocks the image generation provider
type MockImageGenerator struct {
	Data     []byte
	Err      error
	Requests []*image.Request
}

// Generate returns the canned image bytes
func (m *MockImageGenerator) Generate(ctx context.Context, req *image.Request) ([]byte, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Data, nil
}

// Name returns the mock name
func (m *MockImageGenerator) Name() string {
	return "mock"
}

// MockAudioProvider mocks the TTS provider
type MockAudioProvider struct {
	Clip         *audio.Clip
	Err          error
	AvailableErr error
	Calls        []string
}

// GenerateSpeech returns the canned clip
func (m *MockAudioProvider) GenerateSpeech(ctx context.Context, text string, role audio.VoiceRole) (*audio.Clip, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("%s: %s", role, text))
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Clip != nil {
		return m.Clip, nil
	}
	return &audio.Clip{Data: []byte("audio"), MIMEType: "audio/mpeg"}, nil
}

// Name returns the mock name
func (m *MockAudioProvider) Name() string {
	return "mock"
}

// IsAvailable reports the canned availability
func (m *MockAudioProvider) IsAvailable() error {
	return m.AvailableErr
}

// MockAssetStore collects uploads in memory
type MockAssetStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	Err     error
	Calls   []string
}

// NewMockAssetStore creates an empty in-memory asset store
func NewMockAssetStore() *MockAssetStore {
	return &MockAssetStore{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

// Upload records the object and returns a synthetic URL
func (m *MockAssetStore) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, path)
	if m.Err != nil {
		return "", m.Err
	}
	m.Objects[path] = data
	m.Types[path] = contentType
	return "https://assets.test/" + path, nil
}

// Name returns the mock name
func (m *MockAssetStore) Name() string {
	return "mock"
}
