package promptstyle

import "strings"

const marker = "TRAINWISE_PROMPT_STYLE_V1"

// ApplySystem prepends a short guidance block to a system prompt. Prompts
// that already carry the block are returned unchanged.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}
	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou assist a strength and conditioning coach.")
	b.WriteString("\nFollow the instructions exactly and do not add commentary.")
	b.WriteString("\nOnly refer to items present in the input; never invent exercises.")
	if strings.EqualFold(strings.TrimSpace(mode), "json") {
		b.WriteString("\nReturn a single JSON object that conforms to the schema and contains no extra keys.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
