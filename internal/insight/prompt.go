package insight

import (
	"encoding/json"
	"fmt"

	"pocketledger/internal/core"
)

const promptTemplate = `Act as a friendly, expert personal finance assistant.
Analyze the following list of recent financial transactions (JSON format) and provide:
1. A brief 1-sentence summary of the current financial health.
2. Three actionable bullet points to improve spending habits or save money.
3. A positive, encouraging closing remark.

Keep the tone concise, motivating, and easy to read on a small screen.
Use plain text only. Write the bullet points as simple list lines starting with "- ".
Do not use markdown formatting like **bold** or # headers.

Transactions:
%s`

// BuildPrompt renders the fixed instruction template followed by the
// transactions as JSON.
func BuildPrompt(txns []core.Transaction) (string, error) {
	if txns == nil {
		txns = []core.Transaction{}
	}
	data, err := json.Marshal(txns)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}
	return fmt.Sprintf(promptTemplate, data), nil
}
