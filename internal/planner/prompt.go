package planner

import "fmt"

// preferenceInstruction maps the closed preference codes to prompt language.
// Codes are validated before this is called; unknown codes return empty.
func preferenceInstruction(choice string) string {
	switch choice {
	case "1":
		return "Focus on the most popular, well-known, and highly-rated tourist destinations."
	case "2":
		return "Focus on less explored, off-the-beaten-path, and unique hidden gems."
	case "3":
		return "Create a balanced mix of popular attractions and hidden gems."
	default:
		return ""
	}
}

// weatherAwarePrompt instructs the model to call the forecast tool for its
// chosen locations and plan around the returned conditions.
func weatherAwarePrompt(region, startDate, endDate string, days int, preference string) string {
	return fmt.Sprintf(`You are a world-class, expert travel agent specializing in creating detailed, weather-aware itineraries. Your client wants a trip plan.

**Client's Request:**
- **Region:** %q
- **Dates:** %s to %s (A %d-day trip)
- **Travel Preference:** %q

**Your Task (Follow these steps precisely):**

1. **Validate Region:** First, determine if %q is a real, travelable region. If not, respond with a polite message explaining the issue.

2. **Determine Locations:** For a %d-day trip, choose 2-4 appropriate locations within %s based on:
   - Trip duration (longer trips can cover more locations)
   - Travel logistics (reasonable distances between locations)
   - The client's stated preference

3. **Get Weather Data:** Call the `+"`get_daily_weather_forecasts`"+` tool for ALL chosen locations. Use the full date range (%s to %s) for each location.

4. **Create Weather-Optimized Itineraries:** After receiving weather data, create TWO distinct alternative itineraries that:
   - Take weather conditions into account for activity planning
   - Include indoor alternatives for poor weather days
   - Maximize outdoor activities on good weather days
   - Follow the client's travel preference

5. **Format Output:** Present each itinerary in clear Markdown format with:
   - **Day X (Date) - Location Name**
   - **Weather:** Summary from the forecast data
   - **Recommended Activities:** 2-3 specific activities suitable for the weather and location
   - **Weather Backup:** Alternative indoor activities if weather is poor

**Important Guidelines:**
- Consider weather when recommending outdoor vs. indoor activities
- Provide specific activity names, not just categories
- Include practical weather-related advice (clothing, gear)
- Keep descriptions concise but informative
- Don't show raw weather tool output in the final response

Generate the itineraries now.`,
		region, startDate, endDate, days, preference,
		region, days, region, startDate, endDate)
}

// seasonalPrompt is used when the trip starts beyond the forecast horizon: no
// tool call, the model plans from typical seasonal patterns for the month.
func seasonalPrompt(region, startDate, endDate string, days int, month, preference string) string {
	return fmt.Sprintf(`You are a world-class, expert travel agent specializing in creating detailed itineraries. Your client wants a trip plan.

**Client's Request:**
- **Region:** %q
- **Dates:** %s to %s (A %d-day trip, taking place in the month of %s)
- **Travel Preference:** %q

**Important Note:** Real-time weather forecasts are not available for these future dates. Base your recommendations on the **correct season and typical weather patterns** for %q during %s. Consider the geographical location to determine the appropriate season.

**Your Task (Follow these steps precisely):**

1. **Validate Region:** First, determine if %q is a real, travelable region. If not, respond with a polite message explaining the issue.

2. **Determine Locations:** For a %d-day trip, choose 2-4 appropriate locations within %s based on:
   - Trip duration (longer trips can cover more locations)
   - Travel logistics (reasonable distances between locations)
   - The client's stated preference
   - Seasonal considerations for %s

3. **Create Season-Appropriate Itineraries:** Create TWO distinct alternative itineraries that:
   - Consider the correct seasonal weather patterns for %s in %s (accounting for hemisphere)
   - Include seasonal activities and attractions appropriate to the location
   - Provide clothing/gear recommendations for %s weather in %s
   - Account for seasonal opening hours and availability
   - Follow the client's travel preference

4. **Format Output:** Present each itinerary in clear Markdown format with:
   - **Day X (Date) - Location Name**
   - **Expected Weather:** Typical %s conditions for the location (correct season)
   - **Recommended Activities:** 2-3 specific seasonal activities
   - **Season Tips:** Clothing, gear, and seasonal considerations

**Important Guidelines:**
- Use your knowledge of typical weather patterns for %s in %s
- **Correctly determine the season** based on the location's hemisphere
- Mention seasonal highlights (festivals, blooming seasons, etc.)
- Include practical seasonal advice (what to pack, best times of day)
- Provide backup indoor options for typical seasonal weather challenges
- Keep descriptions concise but informative

Generate the itineraries now.`,
		region, startDate, endDate, days, month, preference,
		region, month,
		region,
		days, region, month,
		region, month,
		month, region,
		month,
		region, month)
}
