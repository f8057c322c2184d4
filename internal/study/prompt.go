package study

import (
	"fmt"

	"study-buddy/internal/ai"
)

func explainPrompt(topic string) string {
	return fmt.Sprintf("Explain the topic \"%s\" in simple and clear terms, as if you were teaching it to a high school student. "+
		"Use analogies and examples where possible. Structure the explanation with headings and bullet points for readability.", topic)
}

func summarizePrompt(notes string) string {
	return "Summarize the following study notes concisely. Focus on extracting the key concepts, definitions, and main points. " +
		"Present the summary in a structured format using bullet points. \n\nNotes:\n" + notes
}

func quizPrompt(topicOrNotes string, questions int) string {
	return fmt.Sprintf("Generate a quiz with %d multiple-choice questions based on the following topic or notes: \"%s\". "+
		"The quiz should have a relevant title. Each question must have exactly %d options and one correct answer.",
		questions, topicOrNotes, OptionsPerQuestion)
}

// quizSchema is the structured output contract handed to the provider.
func quizSchema(questions int) *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"title": {
				Type:        ai.TypeString,
				Description: "A creative and relevant title for the quiz.",
			},
			"questions": {
				Type:        ai.TypeArray,
				Description: fmt.Sprintf("An array of %d quiz questions.", questions),
				Items: &ai.Schema{
					Type: ai.TypeObject,
					Properties: map[string]*ai.Schema{
						"question": {
							Type:        ai.TypeString,
							Description: "The text of the multiple-choice question.",
						},
						"options": {
							Type:        ai.TypeArray,
							Description: fmt.Sprintf("An array of exactly %d string options.", OptionsPerQuestion),
							Items:       &ai.Schema{Type: ai.TypeString},
						},
						"correctAnswer": {
							Type:        ai.TypeString,
							Description: "The correct answer, which must be one of the provided options.",
						},
					},
					Required: []string{"question", "options", "correctAnswer"},
				},
			},
		},
		Required: []string{"title", "questions"},
	}
}
