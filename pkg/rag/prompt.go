package rag

import "strings"

// GroundedBuilder builds a prompt that keeps the model inside the retrieved
// material.
type GroundedBuilder struct {
	chunks   []string
	question string
}

func NewGroundedBuilder(chunks []string, question string) *GroundedBuilder {
	return &GroundedBuilder{
		chunks:   chunks,
		question: question,
	}
}

func (b *GroundedBuilder) Build() string {
	var prompt strings.Builder

	b.writeReferenceMaterial(&prompt)
	b.writeTask(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuestion(&prompt)

	return prompt.String()
}

func (b *GroundedBuilder) writeReferenceMaterial(prompt *strings.Builder) {
	prompt.WriteString("<reference_material>\n")
	for i, chunk := range b.chunks {
		if i > 0 {
			prompt.WriteString("\n---\n")
		}
		prompt.WriteString(chunk)
	}
	prompt.WriteString("\n</reference_material>\n\n")
}

func (b *GroundedBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a helpful assistant answering questions about a PDF document the user uploaded.\n")
	prompt.WriteString("Answer the user's question using only the reference material above.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *GroundedBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("1. Base your answer strictly on the reference material provided\n")
	prompt.WriteString("2. If the material does not contain the answer, say so honestly instead of guessing\n")
	prompt.WriteString("3. Never invent facts, numbers, or quotes that are not in the material\n")
	prompt.WriteString("4. Keep the answer concise and suitable for a chat message\n")
	prompt.WriteString("5. If the question needs calculations over the material, show your work\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *GroundedBuilder) writeUserQuestion(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now provide your answer based on the reference material:")
}
