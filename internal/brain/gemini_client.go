package brain

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/scottlepp/gen/internal/core/domain"
	"github.com/scottlepp/gen/internal/core/ports"
)

type modelConfig struct {
	Name string
	RPM  int
	RPD  int
}

// GeminiBrain implements ports.Brain on top of the Gemini API. Text
// generation falls back across models as free-tier quotas run out; image
// generation and analysis use fixed models.
type GeminiBrain struct {
	Client     *genai.Client
	TextModels []modelConfig
	ImageModel string

	dailyCount   map[string]int
	minuteCount  map[string]int
	lastResetDay time.Time
	lastResetMin time.Time
	mu           sync.Mutex
}

var _ ports.Brain = (*GeminiBrain)(nil)

func NewGeminiBrain(ctx context.Context, apiKey string) (*GeminiBrain, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiBrain{
		Client: client,
		TextModels: []modelConfig{
			{Name: "gemini-2.5-flash", RPM: 10, RPD: 250},
			{Name: "gemini-2.5-flash-lite", RPM: 15, RPD: 1000},
		},
		ImageModel:   "gemini-2.0-flash-preview-image-generation",
		dailyCount:   make(map[string]int),
		minuteCount:  make(map[string]int),
		lastResetDay: time.Now(),
		lastResetMin: time.Now(),
	}, nil
}

func (b *GeminiBrain) GenerateText(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, cfg := range b.TextModels {
		if !b.canUseModel(cfg) {
			continue
		}

		result, err := b.Client.Models.GenerateContent(ctx, cfg.Name, genai.Text(prompt), nil)
		if err != nil {
			errStr := strings.ToLower(err.Error())
			if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") ||
				strings.Contains(errStr, "exhausted") || strings.Contains(errStr, "not found") {
				lastErr = err
				continue
			}
			return "", err
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil &&
			len(result.Candidates[0].Content.Parts) > 0 {
			b.recordUsage(cfg)
			return result.Candidates[0].Content.Parts[0].Text, nil
		}
		lastErr = fmt.Errorf("model %s returned no candidates", cfg.Name)
	}
	return "", fmt.Errorf("all text models failed: %w", lastErr)
}

// GenerateImage asks the image model for both text and image modalities and
// returns whatever arrived. A response with no inline image yields an
// artifact with empty Data; the quality gate counts that as a failed
// attempt rather than an error.
func (b *GeminiBrain) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}

	result, err := b.Client.Models.GenerateContent(ctx, b.ImageModel, genai.Text(prompt), config)
	if err != nil {
		return nil, err
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, fmt.Errorf("image model returned no candidates")
	}

	img := &domain.GeneratedImage{}
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			img.Text = part.Text
		}
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			img.Data = part.InlineData.Data
		}
	}
	return img, nil
}

func (b *GeminiBrain) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, "image/png"),
		}, genai.RoleUser),
	}

	result, err := b.Client.Models.GenerateContent(ctx, b.TextModels[0].Name, contents, nil)
	if err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("analysis returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (b *GeminiBrain) canUseModel(cfg modelConfig) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	if now.YearDay() != b.lastResetDay.YearDay() {
		b.dailyCount = make(map[string]int)
		b.lastResetDay = now
	}
	if now.Sub(b.lastResetMin) >= time.Minute {
		b.minuteCount = make(map[string]int)
		b.lastResetMin = now
	}
	if b.dailyCount[cfg.Name] >= cfg.RPD {
		return false
	}
	if b.minuteCount[cfg.Name] >= cfg.RPM {
		return false
	}
	return true
}

func (b *GeminiBrain) recordUsage(cfg modelConfig) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dailyCount[cfg.Name]++
	b.minuteCount[cfg.Name]++
}
