package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"regexp"
	"strings"
)

// DemoDefinitions returns the stateless utility tools bundled with the agent.
func DemoDefinitions() []Definition {
	return []Definition{
		{
			Name:        "echo",
			Description: "Echo the input payload back to the caller.",
			InputSchema: GenerateSchema[struct{}](),
			Handler:     echo,
		},
		{
			Name:        "calculate",
			Description: "Perform a basic arithmetic operation on one or two numbers.",
			InputSchema: GenerateSchema[CalculateInput](),
			Handler:     calculate,
		},
		{
			Name:        "analyze_text",
			Description: "Return word, sentence, and paragraph statistics for a piece of text.",
			InputSchema: GenerateSchema[AnalyzeTextInput](),
			Handler:     analyzeText,
		},
		{
			Name:        "format_json",
			Description: "Validate and pretty-print a JSON string.",
			InputSchema: GenerateSchema[FormatJSONInput](),
			Handler:     formatJSON,
		},
		{
			Name:        "extract_info",
			Description: "Extract matches for named regular expressions from text. Defaults to email, phone, and URL patterns.",
			InputSchema: GenerateSchema[ExtractInfoInput](),
			Handler:     extractInfo,
		},
	}
}

func echo(_ context.Context, input json.RawMessage) *Result {
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	return Success("echo", json.RawMessage(input))
}

// CalculateInput is the payload for the calculate tool.
type CalculateInput struct {
	Operation string  `json:"operation" jsonschema_description:"One of add, subtract, multiply, divide, power, sqrt."`
	A         float64 `json:"a"`
	B         float64 `json:"b,omitempty" jsonschema_description:"Second operand; unused for sqrt."`
}

type calculateOutput struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Value     float64 `json:"result"`
}

func calculate(_ context.Context, input json.RawMessage) *Result {
	var in CalculateInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}

	var value float64
	switch in.Operation {
	case "add":
		value = in.A + in.B
	case "subtract":
		value = in.A - in.B
	case "multiply":
		value = in.A * in.B
	case "divide":
		if in.B == 0 {
			return Errorf("cannot divide by zero")
		}
		value = in.A / in.B
	case "power":
		value = math.Pow(in.A, in.B)
	case "sqrt":
		if in.A < 0 {
			return Errorf("cannot calculate square root of negative number")
		}
		value = math.Sqrt(in.A)
	default:
		return Errorf("invalid operation: %s (supported: add, subtract, multiply, divide, power, sqrt)", in.Operation)
	}

	return Success("calculation complete", calculateOutput{
		Operation: in.Operation,
		A:         in.A,
		B:         in.B,
		Value:     value,
	})
}

// AnalyzeTextInput is the payload for the analyze_text tool.
type AnalyzeTextInput struct {
	Text string `json:"text"`
}

type textStatistics struct {
	CharacterCount    int     `json:"character_count"`
	WordCount         int     `json:"word_count"`
	UniqueWordCount   int     `json:"unique_word_count"`
	SentenceCount     int     `json:"sentence_count"`
	ParagraphCount    int     `json:"paragraph_count"`
	AverageWordLength float64 `json:"average_word_length"`
	LongestWord       string  `json:"longest_word"`
}

func analyzeText(_ context.Context, input json.RawMessage) *Result {
	var in AnalyzeTextInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}

	words := strings.Fields(in.Text)

	unique := map[string]struct{}{}
	longest := ""
	totalLen := 0
	for _, w := range words {
		unique[strings.ToLower(w)] = struct{}{}
		totalLen += len(w)
		if len(w) > len(longest) {
			longest = w
		}
	}

	sentences := 0
	for _, s := range strings.Split(in.Text, ".") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(in.Text, "\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}

	stats := textStatistics{
		CharacterCount:  len(in.Text),
		WordCount:       len(words),
		UniqueWordCount: len(unique),
		SentenceCount:   sentences,
		ParagraphCount:  paragraphs,
		LongestWord:     longest,
	}
	if len(words) > 0 {
		stats.AverageWordLength = float64(totalLen) / float64(len(words))
	}

	return Success("text analyzed", stats)
}

// FormatJSONInput is the payload for the format_json tool.
type FormatJSONInput struct {
	JSONString string `json:"json_string"`
	Indent     int    `json:"indent,omitempty" jsonschema_description:"Indentation width, default 2."`
}

type formatJSONOutput struct {
	FormattedJSON string `json:"formatted_json"`
	IsValid       bool   `json:"is_valid"`
}

func formatJSON(_ context.Context, input json.RawMessage) *Result {
	var in FormatJSONInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}
	if in.Indent <= 0 {
		in.Indent = 2
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(in.JSONString), "", strings.Repeat(" ", in.Indent)); err != nil {
		return Errorf("invalid JSON: %v", err)
	}

	return Success("JSON formatted", formatJSONOutput{
		FormattedJSON: buf.String(),
		IsValid:       true,
	})
}

// ExtractInfoInput is the payload for the extract_info tool.
type ExtractInfoInput struct {
	Text     string            `json:"text"`
	Patterns map[string]string `json:"patterns,omitempty" jsonschema_description:"Pattern name to regular expression. Defaults to email, phone, and url."`
}

// defaultPatterns are applied when the caller supplies none.
var defaultPatterns = map[string]string{
	"email": `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
	"phone": `\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`,
	"url":   `https?://[^\s]+`,
}

func extractInfo(_ context.Context, input json.RawMessage) *Result {
	var in ExtractInfoInput
	if err := json.Unmarshal(input, &in); err != nil {
		return Errorf("invalid input: %v", err)
	}

	patterns := in.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	matches := map[string][]string{}
	for name, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Errorf("invalid pattern %q: %v", name, err)
		}
		found := re.FindAllString(in.Text, -1)
		if found == nil {
			found = []string{}
		}
		matches[name] = found
	}

	return Success("information extracted", matches)
}
