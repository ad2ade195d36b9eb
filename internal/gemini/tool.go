package gemini

import (
	"google.golang.org/genai"

	"github.com/kjstillabower/trip-planner-service/internal/mediator"
)

// weatherTool declares get_daily_weather_forecasts for the model. The argument
// schema mirrors models.CityDateRange so tool arguments decode directly.
func weatherTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        mediator.ToolNameDailyWeatherForecasts,
				Description: "Get the day-by-day weather forecast for a list of cities.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"city_date_ranges": {
							Type:        genai.TypeArray,
							Description: "A list of cities and the date ranges to get weather for.",
							Items: &genai.Schema{
								Type: genai.TypeObject,
								Properties: map[string]*genai.Schema{
									"city": {
										Type:        genai.TypeString,
										Description: "The city name.",
									},
									"start_date": {
										Type:        genai.TypeString,
										Description: "Start date in YYYY-MM-DD format.",
									},
									"end_date": {
										Type:        genai.TypeString,
										Description: "End date in YYYY-MM-DD format.",
									},
								},
								Required: []string{"city", "start_date", "end_date"},
							},
						},
					},
					Required: []string{"city_date_ranges"},
				},
			},
		},
	}
}
