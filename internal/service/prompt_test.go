package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

func scoredChunks(contents ...string) []domain.ScoredChunk {
	chunks := make([]domain.ScoredChunk, 0, len(contents))
	for _, c := range contents {
		chunks = append(chunks, domain.ScoredChunk{Chunk: domain.DocumentChunk{Content: c}})
	}
	return chunks
}

func TestBuildAnswerPrompt(t *testing.T) {
	chunks := scoredChunks("Cholera is notifiable.", "Report within 24 hours.")
	prompt := BuildAnswerPrompt(chunks, "How fast must cholera be reported?")

	assert.Contains(t, prompt, RefusalAnswer)
	assert.Contains(t, prompt, "Cholera is notifiable.\n\nReport within 24 hours.")
	assert.Contains(t, prompt, "Question: How fast must cholera be reported?")
	assert.Contains(t, prompt, "concise answer in 1-4 sentences")
}

func TestBuildAnswerPromptNoChunks(t *testing.T) {
	prompt := BuildAnswerPrompt(nil, "anything")
	assert.Contains(t, prompt, "Question: anything")
	assert.Contains(t, prompt, RefusalAnswer)
}

func TestBuildHandoutPrompt(t *testing.T) {
	chunks := scoredChunks("Case definitions for measles.")
	prompt := BuildHandoutPrompt(chunks, "Measles Surveillance")

	assert.Contains(t, prompt, "Topic: Measles Surveillance")
	assert.Contains(t, prompt, "Case definitions for measles.")
	assert.Contains(t, prompt, fmt.Sprintf("must be over %d", MinHandoutSlides))
	assert.Contains(t, prompt, `"\n\n---\n\n"`)
	assert.Contains(t, prompt, "Cont'd")
	assert.Contains(t, prompt, "# for heading 1")
}

func TestBuildTitlePrompt(t *testing.T) {
	chunks := scoredChunks("Vaccination schedules.", "Cold chain handling.")
	prompt := BuildTitlePrompt(chunks)

	assert.Contains(t, prompt, "Vaccination schedules.\n\nCold chain handling.")
	assert.Contains(t, prompt, "short, clear, and descriptive title")
	assert.Contains(t, prompt, "Do not enclose the title in quotes")
}

func TestSlideSeparator(t *testing.T) {
	// The separator instruction in the prompt must describe the actual
	// separator constant used by consumers.
	escaped := strings.ReplaceAll(SlideSeparator, "\n", `\n`)
	assert.Equal(t, `\n\n---\n\n`, escaped)
}
