package transcript

import (
	"strings"
	"unicode"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
)

// BlockInput is one transcript block before it is persisted
type BlockInput struct {
	SpeakerLabel string  `json:"speakerLabel"`
	StartTime    float64 `json:"startTime"`
	EndTime      float64 `json:"endTime"`
	Text         string  `json:"text"`
}

// Utterance is a speaker turn as returned by a transcription provider
type Utterance struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
}

// Word is a single timed token as returned by a transcription provider
type Word struct {
	Text    string  `json:"text"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
}

// Source is the raw transcript content; exactly one shape must be set
type Source struct {
	Blocks     []BlockInput `json:"blocks,omitempty"`
	Utterances []Utterance  `json:"utterances,omitempty"`
	Words      []Word       `json:"words,omitempty"`
	Text       string       `json:"text,omitempty"`
}

// NormalizeBlocks turns any supported source shape into ordered blocks.
// It is pure: the same input always yields the same blocks.
func NormalizeBlocks(src Source) ([]BlockInput, error) {
	shapes := 0
	if len(src.Blocks) > 0 {
		shapes++
	}
	if len(src.Utterances) > 0 {
		shapes++
	}
	if len(src.Words) > 0 {
		shapes++
	}
	if strings.TrimSpace(src.Text) != "" {
		shapes++
	}
	switch shapes {
	case 0:
		return nil, apperrors.Validation("transcript content is required: blocks, utterances, words or text")
	case 1:
	default:
		return nil, apperrors.Validation("only one of blocks, utterances, words or text may be given")
	}

	var blocks []BlockInput
	switch {
	case len(src.Blocks) > 0:
		blocks = fromBlocks(src.Blocks)
	case len(src.Utterances) > 0:
		blocks = fromUtterances(src.Utterances)
	case len(src.Words) > 0:
		blocks = fromWords(src.Words)
	default:
		blocks = fromText(src.Text)
	}

	for i, b := range blocks {
		if b.StartTime < 0 || b.EndTime < b.StartTime {
			return nil, apperrors.Validation("block has an invalid time range").
				WithDetails(map[string]any{"index": i, "startTime": b.StartTime, "endTime": b.EndTime})
		}
	}
	if len(blocks) == 0 {
		return nil, apperrors.Validation("transcript has no text")
	}
	return blocks, nil
}

func fromBlocks(in []BlockInput) []BlockInput {
	out := make([]BlockInput, 0, len(in))
	for _, b := range in {
		text := collapseSpace(b.Text)
		if text == "" {
			continue
		}
		b.Text = text
		b.SpeakerLabel = strings.TrimSpace(b.SpeakerLabel)
		out = append(out, b)
	}
	return out
}

func fromUtterances(in []Utterance) []BlockInput {
	out := make([]BlockInput, 0, len(in))
	for _, u := range in {
		text := collapseSpace(u.Text)
		if text == "" {
			continue
		}
		out = append(out, BlockInput{
			SpeakerLabel: strings.TrimSpace(u.Speaker),
			StartTime:    u.Start,
			EndTime:      u.End,
			Text:         text,
		})
	}
	return out
}

// fromWords groups words into sentences, closing a block at terminal
// punctuation or when the speaker changes
func fromWords(in []Word) []BlockInput {
	var (
		out     []BlockInput
		current *BlockInput
		parts   []string
	)
	flush := func() {
		if current != nil && len(parts) > 0 {
			current.Text = strings.Join(parts, " ")
			out = append(out, *current)
		}
		current, parts = nil, nil
	}

	for _, w := range in {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		speaker := strings.TrimSpace(w.Speaker)
		if current != nil && speaker != current.SpeakerLabel {
			flush()
		}
		if current == nil {
			current = &BlockInput{SpeakerLabel: speaker, StartTime: w.Start}
		}
		parts = append(parts, text)
		current.EndTime = w.End
		if endsSentence(text) {
			flush()
		}
	}
	flush()
	return out
}

// fromText splits plain text on sentence boundaries; blocks carry no timing
func fromText(text string) []BlockInput {
	var out []BlockInput
	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		// Keep runs like "?!" or "..." together
		for i+1 < len(runes) && isTerminal(runes[i+1]) {
			i++
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		if sentence := collapseSpace(string(runes[start : i+1])); sentence != "" {
			out = append(out, BlockInput{Text: sentence})
		}
		start = i + 1
	}
	if rest := collapseSpace(string(runes[start:])); rest != "" {
		out = append(out, BlockInput{Text: rest})
	}
	return out
}

func endsSentence(word string) bool {
	word = strings.TrimRight(word, `"')]`)
	if word == "" {
		return false
	}
	r := []rune(word)
	return isTerminal(r[len(r)-1])
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
