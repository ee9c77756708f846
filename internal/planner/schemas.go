package planner

import "google.golang.org/genai"

var exerciseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"name": {Type: genai.TypeString, Description: "Name of the exercise."},
		"sets": {Type: genai.TypeString, Description: "Number of sets, e.g. 3 or 4."},
		"reps": {Type: genai.TypeString, Description: "Repetitions per set, e.g. 8-12."},
	},
	Required: []string{"name", "sets", "reps"},
}

var dailyExerciseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"day":       {Type: genai.TypeString, Description: "Day of the week."},
		"focus":     {Type: genai.TypeString, Description: "Main focus for the day, e.g. Chest & Triceps, Legs, Rest."},
		"exercises": {Type: genai.TypeArray, Items: exerciseSchema},
	},
	Required: []string{"day", "focus", "exercises"},
}

var dietPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":   {Type: genai.TypeString, Description: "General overview of the diet plan including nutritional advice."},
		"breakfast": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"lunch":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"dinner":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"snacks":    {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"summary", "breakfast", "lunch", "dinner", "snacks"},
}

var macrosSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"carbs":   {Type: genai.TypeNumber, Description: "Percentage of daily calories from carbohydrates."},
		"protein": {Type: genai.TypeNumber, Description: "Percentage of daily calories from protein."},
		"fat":     {Type: genai.TypeNumber, Description: "Percentage of daily calories from fat."},
	},
	Required: []string{"carbs", "protein", "fat"},
}

var structuredPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"exercisePlan": {Type: genai.TypeArray, Items: dailyExerciseSchema, Description: "Structured 7-day exercise plan."},
		"dietPlan":     dietPlanSchema,
		"macros":       macrosSchema,
		"safetyAdvice": {Type: genai.TypeString, Description: "Brief summary of the most important safety advice and contraindications."},
	},
	Required: []string{"exercisePlan", "dietPlan", "macros", "safetyAdvice"},
}

var adjustedPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"adjustedExercisePlan": {Type: genai.TypeArray, Items: dailyExerciseSchema, Description: "Adjusted 7-day exercise plan."},
		"adjustedDietPlan":     dietPlanSchema,
		"adjustedMacros":       macrosSchema,
		"safetyAdvice":         {Type: genai.TypeString, Description: "Updated safety advice for the adjusted plan."},
		"explanation":          {Type: genai.TypeString, Description: "Explanation of the adjustments made to both plans."},
	},
	Required: []string{"adjustedExercisePlan", "adjustedDietPlan", "adjustedMacros", "explanation"},
}

var highlightsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"highlights": {Type: genai.TypeString, Description: "Summary of key highlights: risks, conditions and important medical data."},
		"age":        {Type: genai.TypeInteger, Description: "Age of the person if found in the document."},
		"sex":        {Type: genai.TypeString, Enum: []string{"male", "female", "other"}},
		"height":     {Type: genai.TypeNumber, Description: "Height in centimeters if found."},
		"weight":     {Type: genai.TypeNumber, Description: "Weight in kilograms if found."},
	},
	Required: []string{"highlights"},
}

var riskAssessmentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"riskAssessment":    {Type: genai.TypeString, Description: "Detailed risk assessment based on the medical history."},
		"contraindications": {Type: genai.TypeString, Description: "Contraindications for exercise based on the medical history."},
	},
	Required: []string{"riskAssessment", "contraindications"},
}
