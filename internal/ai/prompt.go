package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildItineraryPrompt renders the generation instruction for a trip. It is a
// pure formatting function over already-fetched data: the day count is stated
// redundantly because models are unreliable about following counts, and the
// embedded schema is the wire contract the caller parses downstream.
func BuildItineraryPrompt(params TripParams, places []PlaceContext, weather WeatherContext, currencySymbol, currencyCode string) string {
	placesJSON, _ := json.MarshalIndent(places, "", "  ")
	weatherJSON, _ := json.MarshalIndent(weather, "", "  ")

	duration := params.Days
	if duration <= 0 {
		duration = 3
	}
	budgetLevel := params.BudgetLevel
	if budgetLevel == "" {
		budgetLevel = "Balanced"
	}
	pace := params.Pace
	if pace == "" {
		pace = "Balanced"
	}
	interests := strings.Join(params.Interests, ", ")

	return fmt.Sprintf(`
You are 'Journey360 AI', a premium, highly precise travel consultant.
Your goal is to create a masterpiece %[1]d-day itinerary.

CRITICAL REQUIREMENT:
You MUST generate exactly %[1]d days of activities. Each day must be a separate object in the "days" array.
If %[1]d is 5, I expect 5 objects in the "days" array. NEVER combine days or shorten the trip.
Do not skip any days.

TRIP CONTEXT:
- Destination: %[2]s
- Budget Level: %[3]s (%[4]s%.0[5]f total for all %[1]d days)
- Interests: %[6]s
- Duration: %[1]d days
- Pace: %[7]s
- Local Currency: %[4]s (You MUST use this symbol for ALL prices)
- PRICING GUIDANCE (VERY IMPORTANT):
  Since the currency is %[8]s (%[4]s), please provide realistic local costs.
  Example "Balanced" costs:
    * Hotel: %[4]s3,000 - %[4]s8,000 per night
    * Meal: %[4]s400 - %[4]s1,200 per person
    * Activity: %[4]s200 - %[4]s2,000
  DO NOT use USD-scaled numbers (like 10 or 50). Use realistic local thousands/hundreds.
- Current Weather: %[9]s

LOCAL KNOWLEDGE (Use these as primary suggestions where relevant, especially for Hotels and Dining):
%[10]s

STRICT JSON (Return ONLY raw JSON):
{
  "safetyAdvisory": "...", "travelTips": [],
  "topHotels": [
    {
      "name": "Hotel Name",
      "rating": 4.8,
      "vibe": "e.g., 8-min walk • Traditional luxury",
      "description": "Short catchy summary",
      "price": "%[4]s300",
      "imageUrl": "link",
      "bookingUrl": "official booking link",
      "lat": number,
      "lng": number
    }
  ],
  "days": [
    {
      "dayNumber": 1,
      "weatherNote": "How weather affects today's plans.",
      "totalDayCost": number,
      "places": [
        {
          "name": "Name",
          "category": "attraction" | "food" | "hotel",
          "estimatedCost": number,
          "timeSlot": "breakfast" | "morning" | "lunch" | "afternoon" | "dinner" | "evening",
          "duration": "e.g., 2 hours",
          "lat": number,
          "lng": number,
          "description": "Engaging detail about why this fits the user's interests.",
          "safetyRating": "High" | "Medium" | "Standard",
          "bookingUrl": "optional link"
        }
      ]
    }
  ]
}

GUIDELINES:
1. STRICT DURATION: You MUST generate exactly %[1]d days. No shortcuts, no skipping. If %[1]d is 4, you MUST have Days 1, 2, 3, and 4.
2. DENSITY: Include 5 items per day: Breakfast, Morning Activity, Lunch, Afternoon Activity, and Dinner.
3. THREE MEALS: Every single day MUST include 'breakfast', 'lunch', and 'dinner' slots.
4. CONCISENESS: Descriptions MUST be under 100 characters. No fluff.
5. REAL PLACES: Prioritize the provided LOCAL KNOWLEDGE. If you run out of unique suggestions from the list, you MAY use your internal general knowledge for well-known attractions in %[2]s.
6. BUDGET SPREADING: Distribute the %[4]s%.0[5]f budget logically across the %[1]d days.
7. SAFETY FIRST: Provide a comprehensive 'safetyAdvisory'.
8. HOTELS: Use a name from the 'topHotels' array for the final 'evening' slot in 'places' for EVERY day (category 'hotel'). DO NOT make up hotel names.
9. PRICING PRECISION: Use realistic, precise numbers.
10. LINKS & COORDINATES: For ALL places, you MUST include 'lat' and 'lng' values. Use coordinates from LOCAL KNOWLEDGE.
11. STRICT UNIQUENESS: EVERY suggestion must be unique. DO NOT repeat any restaurant or attraction across different days.
12. NO PLACEHOLDERS: BANNED names: "Landmark", "Generic", "Placeholder", "Public Park X", "Explore the local area at your own pace". Use full, real names of established places.
13. NO MARKDOWN: Return ONLY raw JSON.
`,
		duration,
		params.Destination,
		budgetLevel,
		currencySymbol,
		params.Budget,
		interests,
		pace,
		currencyCode,
		string(weatherJSON),
		string(placesJSON),
	)
}

// BuildRegenerationPrompt renders the instruction for modifying an existing
// itinerary. currentDays and currentHotels are the stored document fragments.
func BuildRegenerationPrompt(params TripParams, currentDays, currentHotels []map[string]any, instruction string, constraints map[string]any) string {
	daysJSON, _ := json.MarshalIndent(currentDays, "", "  ")
	hotelsJSON, _ := json.MarshalIndent(currentHotels, "", "  ")
	constraintsJSON, _ := json.Marshal(constraints)

	return fmt.Sprintf(`
You are 'Journey360 AI', an expert travel consultant.
You are helping a user modify their existing itinerary for %s.

Current Itinerary Days:
%s

Available Recommended Hotels (for selection):
%s

User Instruction: %s
Additional Constraints: %s

Task: Modify the existing itinerary based on the user's instruction.
Rules:
1. Preserve as much of the original structure as possible.
2. ONLY update parts that need changing to satisfy the instruction.
3. Keep the JSON structure identical to the input.
4. Ensure costs are updated if activities change.
5. HOTELS: If the user wants to change the hotel, strictly use one from the 'Available Recommended Hotels' list.
6. Strictly return JSON only.

JSON Structure:
{
  "topHotels": [
    {
      "name": "string",
      "rating": number,
      "vibe": "string",
      "description": "string",
      "price": "string",
      "bookingUrl": "string",
      "lat": number,
      "lng": number
    }
  ],
  "days": [
    {
      "dayNumber": 1,
      "weatherNote": "string",
      "places": [
        {
          "name": "string",
          "category": "attraction" | "food" | "hotel",
          "estimatedCost": number,
          "timeSlot": "breakfast" | "morning" | "lunch" | "afternoon" | "dinner" | "evening",
          "duration": "string"
        }
      ]
    }
  ]
}
`,
		params.Destination,
		string(daysJSON),
		string(hotelsJSON),
		instruction,
		string(constraintsJSON),
	)
}
