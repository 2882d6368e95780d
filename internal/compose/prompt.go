package compose

import "fmt"

const composeSystemPrompt = `You are a business development expert writing effective, personalized cold outreach emails. Emails must be professional, concise, and value-driven, avoiding generic language or templates.

Each email should:
- Reference the recipient's specific services/products.
- Clearly explain how the sender's company can provide value.
- Include a low-pressure, clear call-to-action.
- Maintain a professional yet conversational tone.
- Avoid bracket placeholders; use the real sender and recipient details you are given.
- Sign off with the sender company's actual name, never "[Your Name]" style placeholders.
- NEVER use the "|" character anywhere in the subject or body. It is reserved as a field delimiter in the output file.`

const composeUserTemplate = `Create a personalized cold email from %s to %s.

RECIPIENT COMPANY INFORMATION:
- Company Name: %s
- Services/Products they offer: %s

SENDER COMPANY INFORMATION:
- Company Name: %s
- Company Description: %s

ADDITIONAL INSTRUCTIONS:
%s

Output format should be a JSON object with these fields:
- subject: A compelling subject line that will increase open rates
- body: The personalized email body (keep it under 200 words)

The email should:
1. Specifically reference the recipient's services/products
2. Clearly articulate how your company can provide value to them
3. Include a clear, low-pressure call-to-action
4. Be professional but conversational in tone
5. Avoid generic phrases and sales-speak`

func composePrompt(companyName, companyServices string, sender Sender) string {
	return fmt.Sprintf(composeUserTemplate,
		sender.Name, companyName,
		companyName, companyServices,
		sender.Name, sender.Description,
		sender.Instructions,
	)
}
