package domain

import "fmt"

// langNames maps supported language codes to display names for the prompt.
var langNames = map[string]string{
	"en": "English",
	"fi": "Finnish",
	"sv": "Swedish",
	"et": "Estonian",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
}

// SystemInstructions returns the system prompt for commit message generation
// in the requested language.
func SystemInstructions(langCode string) string {
	langLine := fmt.Sprintf("Write the commit message in language code %q.", langCode)
	if name, ok := langNames[langCode]; ok {
		langLine = fmt.Sprintf("Write the commit message in %s.", name)
	}

	return "You write excellent git commit messages.\n\n" +
		langLine + "\n" +
		"Rules:\n" +
		"- Output ONLY the commit message text (no quotes, no code fences, no commentary).\n" +
		"- First line: concise summary <= 72 characters.\n" +
		"- If useful, add a blank line then a short body (bullets allowed).\n" +
		"- Describe WHAT changed and WHY.\n" +
		"- Do not mention AI, LLMs, prompts, or tooling.\n"
}

// UserPrompt renders the user-role prompt from an assembled change context.
func UserPrompt(c ChangeContext) string {
	return "Generate a high-quality git commit message for these changes.\n\n" + c.Render()
}
