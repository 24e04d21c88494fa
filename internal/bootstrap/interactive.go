package bootstrap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LanguageChoices are offered when a project has no detectable stack.
var LanguageChoices = []string{"typescript", "javascript", "python", "go", "rust"}

// InteractiveConfig holds the terminal used for prompts.
type InteractiveConfig struct {
	Reader *bufio.Reader
	Writer io.Writer
}

// DefaultInteractiveConfig returns a default interactive configuration.
func DefaultInteractiveConfig() InteractiveConfig {
	return InteractiveConfig{
		Reader: bufio.NewReader(os.Stdin),
		Writer: os.Stdout,
	}
}

// ProjectAnswers are the details supplied for a brand-new project.
type ProjectAnswers struct {
	Description string
	Language    string // one of LanguageChoices, or ""
}

// PromptProjectDetails asks for a description and an intended language.
// Blank answers and end of input leave the field empty.
func PromptProjectDetails(config InteractiveConfig, name string) (ProjectAnswers, error) {
	var answers ProjectAnswers
	w := config.Writer

	fmt.Fprintf(w, "\nNo project files detected in %s.\n", name)
	fmt.Fprint(w, "Describe the project in one line (Enter to skip): ")
	desc, err := readInput(config.Reader)
	if err != nil {
		return answers, err
	}
	answers.Description = desc

	fmt.Fprintln(w, "\nPrimary language:")
	for i, lang := range LanguageChoices {
		fmt.Fprintf(w, "  %d. %s\n", i+1, lang)
	}
	for {
		fmt.Fprint(w, "Choose [1-5] or Enter to skip: ")
		input, err := readInput(config.Reader)
		if err != nil {
			return answers, err
		}
		if input == "" {
			return answers, nil
		}
		if lang, ok := parseLanguageChoice(input); ok {
			answers.Language = lang
			return answers, nil
		}
		fmt.Fprintf(w, "Unknown choice %q.\n", input)
	}
}

func parseLanguageChoice(input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(LanguageChoices) {
			return LanguageChoices[n-1], true
		}
		return "", false
	}
	input = strings.ToLower(input)
	for _, lang := range LanguageChoices {
		if input == lang {
			return lang, true
		}
	}
	return "", false
}

// readInput reads a line of input from the reader. End of input yields
// whatever was read, so a closed stdin answers every prompt with "".
func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
