package tts

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
)

// ttsRequestTimeout bounds the outbound synthesis request; a stalled TTS
// backend must not hang the request-handling goroutine.
const ttsRequestTimeout = 10 * time.Second

// Service provides text-to-speech with on-disk mp3 caching. TTS failure is
// non-fatal to a session: the learner simply practices without audio.
type Service struct {
	audioDir string
	client   *http.Client
}

// NewService creates a TTS service caching files under audioDir.
func NewService(audioDir string) *Service {
	return &Service{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

// GenerateAudioFile converts text to speech for the given language code and
// saves it as an MP3, returning the filename (not full path). Cached files
// are reused.
func (s *Service) GenerateAudioFile(text, lang string) (string, error) {
	if lang == "" {
		lang = "en"
	}

	filename := audioFilename(text, lang)
	path := filepath.Join(s.audioDir, filename)

	// Already generated
	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	if err := s.generateUsingGoogleTTS(text, lang, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// audioFilename derives a stable cache filename from the text and language.
func audioFilename(text, lang string) string {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, sanitized)
	return fmt.Sprintf("say_%s_%s.mp3", lang, sanitized)
}

// generateUsingGoogleTTS uses Google Translate's text-to-speech API
// This is a simple, free option that doesn't require API keys
func (s *Service) generateUsingGoogleTTS(text, lang, outputPath string) error {
	baseURL := "https://translate.google.com/translate_tts"

	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(context.Background(), ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// Set user agent (required by Google)
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
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}
