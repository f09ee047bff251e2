package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Assistant serves the conversational features that sit beside itinerary
// generation: free-form travel chat, safety assessment, and post-trip
// summaries. All are Gemini-backed and degrade to canned replies on failure.
type Assistant struct {
	gemini *GeminiProvider
}

func NewAssistant(gemini *GeminiProvider) *Assistant {
	return &Assistant{gemini: gemini}
}

// SafetyReport is the structured result of a safety assessment.
type SafetyReport struct {
	Level  string `json:"level"`
	Advice string `json:"advice"`
}

// Chat answers a user message, optionally grounded in the trip being planned.
func (a *Assistant) Chat(ctx context.Context, message string, trip *TripParams) string {
	system := "You are Journey360 AI, a helpful and knowledgeable travel assistant. "
	if trip != nil {
		system += fmt.Sprintf("Context: The user is planning a trip to %s with a budget of %.0f and interests in %s. ",
			trip.Destination, trip.Budget, strings.Join(trip.Interests, ", "))
	}
	system += "Provide concise, helpful, and friendly advice."

	reply, err := a.gemini.InvokeWithSystem(ctx, message, system)
	if err != nil || reply == "" {
		log.Printf("assistant: chat error: %v", err)
		return "I'm having trouble connecting to my travel brain right now. Please try again in a moment!"
	}
	return reply
}

// AssessSafety returns a risk level and advice for a location.
func (a *Assistant) AssessSafety(ctx context.Context, location string) SafetyReport {
	prompt := fmt.Sprintf(`Analyze the safety and travel risks for %s. Provide a safety level (Low/Medium/High Risk) and brief advice. Return as RAW JSON: {"level": "...", "advice": "..."}`, location)

	raw, err := a.gemini.InvokeWithSystem(ctx, prompt,
		"You are a travel safety expert. Provide specific, actionable safety advice. Respond with RAW JSON only.")
	if err == nil && raw != "" {
		var report SafetyReport
		if jerr := json.Unmarshal([]byte(stripCodeFences(raw)), &report); jerr == nil {
			return report
		}
	}
	log.Printf("assistant: safety assessment error: %v", err)
	return SafetyReport{
		Level:  "Unknown",
		Advice: "Safety data temporarily unavailable. Please exercise standard caution.",
	}
}

// TripSummary produces a narrative highlight of a finished trip.
func (a *Assistant) TripSummary(ctx context.Context, trip TripParams) string {
	prompt := fmt.Sprintf(`
Create a beautiful, narrative travel summary based on this trip:
Destination: %s
Interests: %s
Budget: %.0f

The summary should look like a professional travel blog highlight or a 'memory' caption.
Keep it around 150 words.
`, trip.Destination, strings.Join(trip.Interests, ", "), trip.Budget)

	summary, err := a.gemini.InvokeWithSystem(ctx, prompt, "")
	if err != nil || summary == "" {
		log.Printf("assistant: post-trip summary error: %v", err)
		return "Your journey was filled with amazing memories. Take a moment to reflect on your adventures!"
	}
	return summary
}
