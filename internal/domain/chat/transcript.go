package chat

import "strings"

// RenderTranscript renders turns into the transcript block fed to the
// persona template. Each turn contributes a "Human:" line and, when a
// response is attached, an "AI Friend:" line, in the order received,
// newline-terminated. An empty history renders as an empty string.
func RenderTranscript(history []*Turn) string {
	var sb strings.Builder
	for _, turn := range history {
		sb.WriteString("Human: ")
		sb.WriteString(turn.Message)
		sb.WriteString("\n")
		if turn.Response != nil {
			sb.WriteString("AI Friend: ")
			sb.WriteString(*turn.Response)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Assemble renders the prior turns and the new input into a single
// generation prompt. It is deterministic and performs no I/O.
func Assemble(tmpl *PersonaTemplate, history []*Turn, input string) (string, error) {
	return tmpl.Render(RenderTranscript(history), input)
}
