package prompt

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	catalogx "github.com/tanpawarit/plan-advisor/agent/catalog"
	contractx "github.com/tanpawarit/plan-advisor/agent/contract"
)

// MaxPromptFeatures caps how many features per plan reach the prompt.
const MaxPromptFeatures = 3

const noFeatures = "No features listed"

//go:embed template/recommend.tmpl
var recommendRaw string

var recommendTmpl = template.Must(template.New("recommend").Funcs(template.FuncMap{
	"price":    FormatPrice,
	"features": FormatFeatures,
}).Parse(strings.TrimSpace(recommendRaw)))

type recommendData struct {
	UserText string
	Plans    catalogx.Catalog
}

// Recommendation renders the grounded prompt. Output is deterministic for a
// given input.
func Recommendation(userText string, plans catalogx.Catalog) (string, error) {
	return render(recommendTmpl, recommendData{UserText: userText, Plans: plans})
}

func render(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", contractx.ErrPromptRender, tmpl.Name(), err)
	}
	return b.String(), nil
}

func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func FormatFeatures(features []string) string {
	if len(features) == 0 {
		return noFeatures
	}
	if len(features) > MaxPromptFeatures {
		features = features[:MaxPromptFeatures]
	}
	return strings.Join(features, ", ")
}
