package engine

import "strings"

// Prompt templates use {transcript}, {summary}, {chat_history} and
// {message} placeholders. Custom templates from configuration use the same
// placeholders; an empty template falls back to the default.

const defaultSummaryPrompt = `You are a meeting assistant. Summarize the following meeting transcript.

Rules:
- Drop small talk and filler
- Extract the conclusions reached in the meeting
- Keep the key arguments and discussion points that support each conclusion
- Write a business-oriented summary report
- Use Markdown format

Transcript:
{transcript}`

const defaultQuestionPrompt = `You are a meeting assistant helping the user understand and analyze a meeting.

Original meeting transcript:
{transcript}

Current meeting summary:
{summary}

Conversation history:
{chat_history}

User question:
{message}

Answer the question based on the meeting content. If the question is unrelated to the meeting, say so politely.`

const defaultEditPrompt = `You are a meeting assistant helping the user revise a meeting summary.

Original meeting transcript:
{transcript}

Current meeting summary:
{summary}

Conversation history:
{chat_history}

User edit request:
{message}

Revise the summary according to the request. Output ONLY the complete revised summary in Markdown format.`

// renderPrompt substitutes placeholder values into a template. Unknown
// placeholders are left untouched.
func renderPrompt(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

func buildSummaryPrompt(template, transcript string) string {
	if template == "" {
		template = defaultSummaryPrompt
	}
	return renderPrompt(template, map[string]string{
		"transcript": transcript,
	})
}

func buildChatPrompt(template, transcript, summary, chatHistory, message string) string {
	return renderPrompt(template, map[string]string{
		"transcript":   transcript,
		"summary":      summary,
		"chat_history": chatHistory,
		"message":      message,
	})
}
