package horoscope

import (
	"encoding/json"
	"fmt"
	"strings"

	domainhoroscope "starcast/internal/domain/horoscope"
)

// systemPrompt fixes the persona and the output contract. The tone line
// comes from the validated locale table, so an unsupported language can
// never reach the generator.
func systemPrompt(lang string) string {
	loc, ok := domainhoroscope.LocaleFor(lang)
	if !ok {
		loc, _ = domainhoroscope.LocaleFor(domainhoroscope.DefaultLanguage)
	}

	return fmt.Sprintf(
		"You are an astrologer writing short horoscope readings in %s. "+
			"Your voice is %s. "+
			"Respond with a single flat JSON object and nothing else. "+
			"Every value must be a short natural-language string in %s.",
		loc.Name, loc.Tone, loc.Name,
	)
}

type promptDescriptor struct {
	Kind   string `json:"request_type"`
	Sun    string `json:"sign"`
	Rising string `json:"rising,omitempty"`
	Day    string `json:"day"`
	Lang   string `json:"lang"`
}

// userPrompt embeds the JSON request descriptor and the required field list.
func userPrompt(req domainhoroscope.Request) (string, error) {
	descriptor, err := json.Marshal(promptDescriptor{
		Kind:   string(req.Kind),
		Sun:    req.Sun,
		Rising: req.Rising,
		Day:    req.Day,
		Lang:   req.Language,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write the %s horoscope reading for this request:\n%s\n", req.Kind, descriptor)
	if req.Rising != "" {
		b.WriteString("Blend the influence of the rising sign into the description.\n")
	}
	fmt.Fprintf(&b, "Return exactly these fields: %s.", strings.Join(domainhoroscope.GeneratedFields, ", "))

	return b.String(), nil
}
