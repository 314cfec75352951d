package service

import (
	"fmt"
	"strings"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

// RefusalAnswer is the fixed fallback returned when retrieval finds no
// sufficiently similar guideline text, or when the model declines to answer.
// Clients match on this string, so it must never change without coordination.
const RefusalAnswer = "Sorry, I am unable to give you that information"

// SlideSeparator delimits slides in a generated handout body.
const SlideSeparator = "\n\n---\n\n"

// MinHandoutSlides is the slide floor requested from the model. It is a
// prompt-level instruction only; bodies are stored as returned.
const MinHandoutSlides = 15

// BuildAnswerPrompt assembles the question-answering prompt from retrieved
// guideline chunks. The refusal instruction is embedded so the model itself
// falls back when the context does not cover the question.
func BuildAnswerPrompt(chunks []domain.ScoredChunk, question string) string {
	var b strings.Builder
	b.WriteString("Use the following pieces of context to answer the question at the end.\n")
	b.WriteString("If you don't know the answer, just say ")
	b.WriteString(RefusalAnswer)
	b.WriteString(". Don't try to make up an answer.\n\n")
	b.WriteString(joinChunkContents(chunks))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\nProvide a concise answer in 1-4 sentences:")
	return b.String()
}

// BuildHandoutPrompt assembles the long-form handout prompt. The structural
// rules (markdown heading levels, bullets, the slide separator, the Cont'd
// overflow policy and the slide floor) live entirely in this prompt.
func BuildHandoutPrompt(chunks []domain.ScoredChunk, topic string) string {
	var b strings.Builder
	b.WriteString("You are a highly skilled trainer tasked with creating a well-structured and detailed ")
	b.WriteString("teaching handout based on Malawian Technical Guidelines for Integrated Disease ")
	b.WriteString("Surveillance and Response that are used to train Public Health Surveillance Assistants ")
	b.WriteString("on the following Topic: ")
	b.WriteString(topic)
	b.WriteString(".\n\nUse the following reference material:\n\n")
	b.WriteString(joinChunkContents(chunks))
	b.WriteString("\n\nThe handout should contain:\n\n")
	b.WriteString("Slide 1. An introduction that outlines the topic.\n")
	b.WriteString("Slide 2. Key points that cover essential details about the topic.\n")
	b.WriteString("Slides 3-7. Detailed concepts, continued across slides as needed.\n")
	b.WriteString("Slide 8. Examples to illustrate the concepts.\n")
	b.WriteString("Slide 9. A conclusion summarizing the key takeaways.\n\n")
	b.WriteString("Generate a handout in the format described above.\n")
	b.WriteString("Do not include any word saying Detailed concept or Slide number. Rather, replace it with the appropriate slide title.\n")
	b.WriteString("Headings should be formatted as follows:\n")
	b.WriteString("# for heading 1\n")
	b.WriteString("## for heading 2\n")
	b.WriteString("### for heading 3\n")
	b.WriteString("#### for heading 4\n")
	b.WriteString("** ** for bullet points\n\n")
	b.WriteString("Each slide should only contain 2-3 subheadings, each with 3-4 sentences.\n")
	b.WriteString("If a slide has more bullet points, add the extra subheadings to a next new slide with the same heading but the slide title must have a Cont'd.\n")
	fmt.Fprintf(&b, "You are not limited to the provided number of slides but must be over %d.\n", MinHandoutSlides)
	b.WriteString("Use \"\\n\\n---\\n\\n\" to separate slides.\n")
	b.WriteString("Ensure that the handout is well-structured, easy to follow, and includes examples to illustrate the concepts.\n")
	b.WriteString("Ensure that the handout is free of any errors or inaccuracies.")
	return b.String()
}

// BuildTitlePrompt assembles the title prompt from the chunks retrieved for
// the handout topic. Titles are a separate, smaller retrieval round-trip.
func BuildTitlePrompt(chunks []domain.ScoredChunk) string {
	var b strings.Builder
	b.WriteString("You are tasked to create a handout title based on the following material for a training handout:\n\"")
	b.WriteString(joinChunkContents(chunks))
	b.WriteString("\"\n")
	b.WriteString("Provide a short, clear, and descriptive title.\n")
	b.WriteString("Must use normal grammar.\n")
	b.WriteString("Must be in line with the material.\n")
	b.WriteString("Do not enclose the title in quotes or any symbol or special characters.")
	return b.String()
}

func joinChunkContents(chunks []domain.ScoredChunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Chunk.Content)
	}
	return strings.Join(parts, "\n\n")
}
