package service

import (
	"fmt"
	"strings"
)

const evaluationPromptTemplate = `You are a senior technical interviewer with more than ten years of hiring experience at large technology companies. Grade the candidate's answer strictly and realistically.

Question: %s
Answer: %s

Grading scale:
- 1-2: poor answer, major gaps, unclear communication
- 3-4: below average, key points missing
- 5-6: average, covers the basics without depth or examples
- 7-8: good, solid understanding backed by relevant examples
- 9-10: excellent, comprehensive, well structured, deep expertise

Weigh the answer on:
1. Technical accuracy and depth (40%%)
2. Clarity and structure of communication (25%%)
3. Relevant, specific examples (20%%)
4. Completeness (15%%)

Reply using exactly this layout:
<score>single number from 1 to 10</score>
<summary>one-line summary of the performance</summary>
<strengths>
- strength
- strength
</strengths>
<improvements>
- improvement tip
- improvement tip
</improvements>
<detailed_feedback>two or three sentences of specific, actionable feedback</detailed_feedback>`

const upstreamFallbackFeedback = `<score>4</score>
<summary>The answer could not be evaluated because the grading service was unavailable</summary>
<strengths>
- Attempted an answer
- Engaged with the question
</strengths>
<improvements>
- Submit again later for a full evaluation
- Make sure the answer is clear and complete
</improvements>
<detailed_feedback>The evaluation service did not respond, so a provisional score was recorded. Retry to receive detailed feedback on the quality of this answer.</detailed_feedback>`

func buildQuestionPrompt(role, level, company string, count int) string {
	builder := strings.Builder{}
	builder.WriteString(fmt.Sprintf("You are an experienced interviewer at %s. ", company))
	builder.WriteString(fmt.Sprintf("Write exactly %d interview questions for a %s %s. ", count, level, role))
	builder.WriteString("Cover both technical and behavioral skills and keep them challenging but appropriate for the experience level.\n\n")
	builder.WriteString("Mix the following areas:\n")
	builder.WriteString("- Technical knowledge\n")
	builder.WriteString("- Problem solving\n")
	builder.WriteString("- System design where it applies\n")
	builder.WriteString("- Behavioral scenarios\n")
	builder.WriteString("- Role-specific skills\n\n")
	builder.WriteString("Put each question on its own line as one complete sentence. Do not add any other text.")
	return builder.String()
}

func buildEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(evaluationPromptTemplate, question, answer)
}

func fallbackQuestions(role string, count int) []string {
	questions := []string{
		fmt.Sprintf("Tell me about your experience with %s technologies.", role),
		fmt.Sprintf("How would you approach solving a complex problem as a %s?", role),
		"Describe a challenging project you've worked on.",
		"How do you stay updated with the latest trends in your field?",
		fmt.Sprintf("What do you find most rewarding about working as a %s?", role),
	}
	if count < len(questions) {
		questions = questions[:count]
	}
	return questions
}
