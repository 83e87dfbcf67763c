package models

// Goal is one fitness goal tag selected during onboarding.
type Goal struct {
	Meta string `json:"meta"`
}

// OnboardingProfile is the payload of the setup-completion call:
// demographics plus the selected goal tags.
type OnboardingProfile struct {
	Gender string
	Age    int
	Weight float64
	Height float64
	Goals  []Goal
}

// GoalCatalog lists the goal tags offered by the onboarding wizard.
var GoalCatalog = []Goal{
	{Meta: "Ganar músculo"},
	{Meta: "Perder peso"},
	{Meta: "Aumentar resistencia"},
	{Meta: "Correr 5 km"},
	{Meta: "Mejorar flexibilidad"},
	{Meta: "Mantener el equilibrio"},
	{Meta: "Hacer 20 dominadas"},
	{Meta: "Reducir grasa corporal"},
}
