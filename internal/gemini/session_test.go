package gemini

import (
	"testing"

	"google.golang.org/genai"

	"github.com/kjstillabower/trip-planner-service/internal/mediator"
)

func TestToResponse_TextParts(t *testing.T) {
	in := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Day 1: "},
				{Text: "explore the old town."},
			}}},
		},
	}

	got := toResponse(in)
	if got.ToolCall() != nil {
		t.Error("text-only response should have no tool call")
	}
	if got.Text() != "Day 1: explore the old town." {
		t.Errorf("Text() = %q", got.Text())
	}
}

func TestToResponse_FunctionCall(t *testing.T) {
	in := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{
				{FunctionCall: &genai.FunctionCall{
					Name: mediator.ToolNameDailyWeatherForecasts,
					Args: map[string]any{"city_date_ranges": []any{}},
				}},
			}}},
		},
	}

	got := toResponse(in)
	call := got.ToolCall()
	if call == nil {
		t.Fatal("ToolCall() = nil, want the function call")
	}
	if call.Name != mediator.ToolNameDailyWeatherForecasts {
		t.Errorf("call name = %q", call.Name)
	}
	if _, ok := call.Args["city_date_ranges"]; !ok {
		t.Errorf("call args = %v", call.Args)
	}
}

func TestToResponse_Empty(t *testing.T) {
	tests := []struct {
		name string
		in   *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"nil part", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []*genai.Part{nil}}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toResponse(tt.in)
			if got == nil {
				t.Fatal("toResponse() must never return nil")
			}
			if len(got.Parts) != 0 {
				t.Errorf("parts = %+v, want none", got.Parts)
			}
			if got.Text() != "" {
				t.Errorf("Text() = %q, want empty", got.Text())
			}
		})
	}
}

func TestWeatherTool_Declaration(t *testing.T) {
	tool := weatherTool()
	if len(tool.FunctionDeclarations) != 1 {
		t.Fatalf("declarations = %d, want 1", len(tool.FunctionDeclarations))
	}
	decl := tool.FunctionDeclarations[0]
	if decl.Name != mediator.ToolNameDailyWeatherForecasts {
		t.Errorf("tool name = %q", decl.Name)
	}
	ranges, ok := decl.Parameters.Properties["city_date_ranges"]
	if !ok {
		t.Fatal("schema missing city_date_ranges")
	}
	for _, field := range []string{"city", "start_date", "end_date"} {
		if _, ok := ranges.Items.Properties[field]; !ok {
			t.Errorf("item schema missing %q", field)
		}
	}
}

func TestNewClient_RequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient(t.Context(), "", "gemini-2.5-pro"); err == nil {
		t.Error("NewClient() with empty key should fail")
	}
	if _, err := NewClient(t.Context(), "some-api-key", ""); err == nil {
		t.Error("NewClient() with empty model should fail")
	}
}
