package artifact

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
)

// Template is a script fragment with {{name}} placeholders.
type Template struct {
	ID   string
	Text string
}

type TemplateParams map[string]any

var placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)

func (t *Template) Render(params TemplateParams) (string, error) {
	result := placeholderRegex.ReplaceAllStringFunc(t.Text, func(match string) string {
		key := match[2 : len(match)-2]
		if val, ok := params[key]; ok {
			return formatValue(val)
		}
		return match
	})

	missing := findMissingPlaceholders(result)
	if len(missing) > 0 {
		return "", fmt.Errorf("template %q missing params: %v", t.ID, missing)
	}
	return result, nil
}

func (t *Template) RequiredParams() []string {
	return findMissingPlaceholders(t.Text)
}

// Validate rejects empty templates and placeholders outside known.
func (t *Template) Validate(known []string) error {
	if t.Text == "" {
		return fmt.Errorf("template %q is empty", t.ID)
	}
	for _, p := range t.RequiredParams() {
		if !slices.Contains(known, p) {
			return fmt.Errorf("template %q uses unknown placeholder {{%s}}", t.ID, p)
		}
	}
	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func findMissingPlaceholders(s string) []string {
	matches := placeholderRegex.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var missing []string
	for _, m := range matches {
		if len(m) > 1 && !seen[m[1]] {
			seen[m[1]] = true
			missing = append(missing, m[1])
		}
	}
	return missing
}
