package extract

import "fmt"

// systemPrompt is shared by both extraction calls.
const systemPrompt = "You are a precise data extraction system that returns only valid JSON."

// companyPromptTemplate asks for every on-criteria company on a page. The
// model is told to use empty strings rather than fabricating or passing
// through partially redacted contact details.
const companyPromptTemplate = `Extract company information from the following website content.

For each company found, extract:
1. Company name
2. Services or products they offer (summarize in under 50 words)
3. Phone number
4. Email address

Instructions:
- Return a JSON array of objects with the keys: "name", "services/products", "phone", "email".
- If a piece of information is not available, use an empty string for that field. Never make up information.
- If multiple companies are mentioned, extract each of them.
- Only include companies in the %s industry located in %s. Omit companies outside that industry or location.
- Do not include partial emails or phone numbers (e.g., "+1-303-699-****", "info@****.com"). If only partial info is found, return an empty string "" instead.

Example output:
[
{
    "name": "TechSolutions Inc.",
    "services/products": "Cloud computing services, IT infrastructure solutions, AI-driven analytics, custom software development, and enterprise IT management.",
    "phone": "(555) 123-4567",
    "email": "info@techsolutions-example.com"
},
{
    "name": "GreenGrow Agricultural Services",
    "services/products": "Sustainable farming solutions and organic crop management services.",
    "phone": "",
    "email": ""
}
]

Here is the content to analyze:

%s`

// contactPromptTemplate asks for one named company's contact pair.
const contactPromptTemplate = `Extract the business contact email and phone number for the company named "%s" using the provided search result snippets or full website content.

Instructions:
- Prioritize the official company website or links that look like legitimate company sources.
- If only partial info is found (e.g., "+1-303-699-****"), return an empty string "" instead.
- Do not generate or guess any contact details.
- Output only the business-relevant email and phone number for cold outreach.

Output format:
{
    "email": "example@company.com",
    "phone": "(555) 123-4567"
}

Here is the content to analyze:

%s`

func companyPrompt(content, industry, location string) string {
	return fmt.Sprintf(companyPromptTemplate, industry, location, content)
}

func contactPrompt(content, companyName string) string {
	return fmt.Sprintf(contactPromptTemplate, companyName, content)
}
