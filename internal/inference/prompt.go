package inference

import (
	"strings"

	"github.com/maxonary/LLM-Invoice-Sorter/pkg/api"
	"github.com/maxonary/LLM-Invoice-Sorter/pkg/config"
)

// buildPrompt renders the receipt-analysis prompt for one document. The
// model is asked for a strict three-key JSON object; response parsing
// tolerates deviations.
func buildPrompt(req api.InferenceRequest) string {
	var b strings.Builder

	b.WriteString("You are a tax assistant helping to analyze receipts.\n\n")
	b.WriteString("Task:\n")
	b.WriteString("1. Summarize the purpose of the expense in 5-10 words.\n")
	b.WriteString("2. Estimate one-way travel distance in kilometers if relevant, else return 0.\n")
	b.WriteString("3. Identify what category this amount belongs to (Parking, Hotel, Public Transport, Meal, Fee, etc.).\n\n")
	b.WriteString("Respond in JSON with keys: \"anlass\", \"distance_km\", and \"type\".\n")
	b.WriteString("Return ONLY valid raw JSON, no Markdown fences, no extra text.\n")

	if req.Language == config.LanguageGerman {
		b.WriteString("Write the \"anlass\" value in German.\n")
	}

	b.WriteString("\nExpense category: ")
	b.WriteString(string(req.Category))
	b.WriteString("\n\nInvoice content:\n")
	b.WriteString(req.Text)

	if req.Event != "" {
		b.WriteString("\n\nCalendar context: ")
		b.WriteString(req.Event)
	}

	return b.String()
}
