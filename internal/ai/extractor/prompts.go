package extractor

import (
	"fmt"

	"github.com/SafalBhandari12/jd-cv-backend/pkg/kernel"
)

// Extraction instructions per category. Each instruction constrains the
// model to content explicitly present in the source document: extraction
// must never infer skills or experience the text does not state.

var cvInstructions = map[kernel.Category]string{
	kernel.CategorySkills: "Extract every skill explicitly listed in this CV: " +
		"technical skills, tools, frameworks, languages and soft skills. " +
		"Copy them as written. Do not infer skills that are not stated.",
	kernel.CategoryEducation: "Extract the education section of this CV: " +
		"institutions, degrees, fields of study, graduation dates, grades. " +
		"Only include education explicitly mentioned in the text.",
	kernel.CategoryResponsibilities: "Extract the responsibilities and duties " +
		"described in this CV across all roles. Copy the descriptions as " +
		"written. Do not add responsibilities that are not stated.",
	kernel.CategoryExperience: "Extract the work experience from this CV: " +
		"employers, titles, dates and what was done in each role. Only " +
		"include experience explicitly present in the text.",
}

var jdInstructions = map[kernel.Category]string{
	kernel.CategorySkills: "Extract every skill this job description asks for: " +
		"required and preferred technical skills, tools and soft skills. " +
		"Copy them as written. Do not infer requirements that are not stated.",
	kernel.CategoryEducation: "Extract the education requirements from this job " +
		"description: degrees, fields, certifications. Only include " +
		"requirements explicitly mentioned in the text.",
	kernel.CategoryResponsibilities: "Extract the responsibilities of the role " +
		"described in this job description. Copy them as written. Do not add " +
		"responsibilities that are not stated.",
	kernel.CategoryExperience: "Extract the experience requirements from this " +
		"job description: years of experience, seniority, domains. Only " +
		"include requirements explicitly present in the text.",
}

const extractorSystemPrompt = "You extract structured sections from recruiting documents. " +
	"Return only the extracted text, with no commentary. If the document " +
	"contains nothing for the requested section, return an empty response."

// instructionFor returns the category- and document-kind-specific
// extraction instruction.
func instructionFor(category kernel.Category, kind kernel.DocumentKind) (string, error) {
	instructions := cvInstructions
	if kind == kernel.DocumentKindJD {
		instructions = jdInstructions
	}

	instruction, ok := instructions[category]
	if !ok {
		return "", fmt.Errorf("unknown category: %s", category)
	}
	return instruction, nil
}
