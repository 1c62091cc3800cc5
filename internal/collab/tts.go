package collab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"otiyot/internal/models"
)

const ttsRequestTimeout = 10 * time.Second

// TTSService generates and caches spoken audio for prompts. Generated MP3s
// are cached on disk keyed by language and text so repeat prompts never
// refetch.
type TTSService struct {
	audioDir string
	client   *http.Client
}

// NewTTSService creates a TTS service caching into audioDir
func NewTTSService(audioDir string) *TTSService {
	return &TTSService{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// GenerateAudioFile converts text to speech and saves it as MP3.
// Returns the filename (not full path) on success.
func (s *TTSService) GenerateAudioFile(ctx context.Context, text string, language models.Language) (string, error) {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	filename := fmt.Sprintf("%s_%s.mp3", language, sanitized)
	outputPath := filepath.Join(s.audioDir, filename)

	// Already cached
	if _, err := os.Stat(outputPath); err == nil {
		return filename, nil
	}

	if err := s.generateUsingGoogleTTS(ctx, text, language, outputPath); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// Speak generates the audio file for the prompt. Errors are returned for
// logging but callers treat speech as best effort.
func (s *TTSService) Speak(ctx context.Context, text string, language models.Language) error {
	_, err := s.GenerateAudioFile(ctx, text, language)
	return err
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech endpoint,
// which needs no API key. The tl parameter selects Hebrew or English voice.
func (s *TTSService) generateUsingGoogleTTS(ctx context.Context, text string, language models.Language, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", string(language))
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := baseURL + "?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Required by the endpoint
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
