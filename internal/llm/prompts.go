package llm

import "fmt"

// Prompts instruct the model to copy source wording rather than paraphrase;
// downstream keyword highlighting depends on the original metric phrasing
// surviving extraction.

func extractResumePrompt(text string) string {
	return fmt.Sprintf(`You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Extract the resume below into JSON with this structure:
{
  "name": string,
  "email": string,
  "phone": string,
  "linkedin": string,
  "github": string,
  "summary": string,
  "skills": {"category": ["skill", ...]},
  "experience": [{"company": string, "location": string, "title": string, "date": string, "responsibilities": [string], "achievements": [string]}],
  "education": [{"institution": string, "degree": string, "major": string, "date": string, "details": [string]}],
  "projects": [{"name": string, "description": string, "technologies": [string], "date": string}]
}

IMPORTANT:
- Preserve the exact wording of responsibilities and achievements, including numbers and percentages.
- Omit keys you find no content for. Do not invent information.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Resume text:
"""
%s
"""
`, text)
}

func analyzeJobPrompt(title, description string) string {
	return fmt.Sprintf(`You are an expert job posting analyst.
Analyze the job posting below and return JSON with this structure:
{
  "title": string,
  "required_skills": [string],
  "preferred_skills": [string],
  "responsibilities": [string],
  "keywords": [string]
}

IMPORTANT:
- Copy requirements verbatim from the posting.
- "keywords" are the terms an applicant tracking system would match on.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Job title: %s

Job description:
"""
%s
"""
`, title, description)
}

func tailorResumePrompt(resumeJSON, jobJSON string) string {
	return fmt.Sprintf(`You are an expert resume writer.
Rewrite the resume record below so it targets the analyzed job. Keep the same
JSON structure and keys as the input resume.

Rules:
- Reorder and reword bullet points to emphasize the job's required skills and keywords.
- Never invent experience, employers, dates, or credentials.
- Keep every metric and number from the original wording.
- Return ONLY the JSON object, no markdown, no explanation, no code blocks.

Resume record:
%s

Job analysis:
%s
`, resumeJSON, jobJSON)
}

func repairPrompt(broken string) string {
	return fmt.Sprintf(`The following text was supposed to be a single valid JSON object but is malformed.
Fix it and return ONLY the corrected JSON object, with no markdown and no explanation.

%s
`, broken)
}
