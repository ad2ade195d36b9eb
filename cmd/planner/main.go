package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/trip-planner-service/internal/cache"
	"github.com/kjstillabower/trip-planner-service/internal/client"
	"github.com/kjstillabower/trip-planner-service/internal/config"
	"github.com/kjstillabower/trip-planner-service/internal/forecast"
	"github.com/kjstillabower/trip-planner-service/internal/gemini"
	"github.com/kjstillabower/trip-planner-service/internal/mediator"
	"github.com/kjstillabower/trip-planner-service/internal/models"
	"github.com/kjstillabower/trip-planner-service/internal/observability"
	"github.com/kjstillabower/trip-planner-service/internal/planner"
	"github.com/kjstillabower/trip-planner-service/internal/validation"
)

const maxInputAttempts = 3

func main() {
	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}

	ctx := context.Background()

	weatherClient, err := client.NewOpenWeatherClient(cfg.WeatherAPIKey, cfg.WeatherAPIURL, cfg.WeatherAPITimeout)
	if err != nil {
		logger.Fatal("weather client", zap.Error(err))
	}

	fetcher := forecast.NewFetcher(weatherClient, cache.NewInMemoryCache(), logger)
	orchestrator := forecast.NewOrchestrator(fetcher, cfg.MaxWorkers, cfg.FetchTimeout, logger)
	med := mediator.New(orchestrator, cfg.MaxToolCalls, logger)

	startCtx, startCancel := context.WithTimeout(ctx, 30*time.Second)
	geminiClient, err := gemini.NewClient(startCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		startCancel()
		logger.Fatal("gemini client", zap.Error(err))
	}

	tripPlanner, err := planner.New(startCtx, planner.Deps{
		Sessions:      geminiClient,
		Mediator:      med,
		WeatherClient: weatherClient,
		Logger:        logger,
	})
	startCancel()
	if err != nil {
		logger.Fatal("planner", zap.Error(err))
	}

	if err := run(ctx, tripPlanner); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, tripPlanner *planner.Planner) error {
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("\n--- Welcome to the AI Trip Planner ---")

	region, err := promptWithValidation(in, "Enter a region or state (e.g., Goa, Garhwal): ", func(s string) error {
		_, err := validation.ValidateRegion(s, 120)
		return err
	})
	if err != nil {
		return err
	}

	startDate, err := promptWithValidation(in, "Enter the start date (YYYY-MM-DD): ", func(s string) error {
		_, err := validation.ParseDate(s)
		return err
	})
	if err != nil {
		return err
	}

	endDate, err := promptWithValidation(in, "Enter the end date (YYYY-MM-DD): ", func(s string) error {
		_, _, _, err := validation.ValidateDateRange(startDate, s)
		return err
	})
	if err != nil {
		return err
	}

	_, _, days, err := validation.ValidateDateRange(startDate, endDate)
	if err != nil {
		return err
	}
	fmt.Printf("\nTrip duration: %d days\n", days)

	preference, err := promptPreference(in)
	if err != nil {
		return err
	}

	fmt.Println("\n...AI is thinking... This may take a moment...")

	result, err := tripPlanner.GeneratePlan(ctx, models.PlanRequest{
		Region:     region,
		StartDate:  startDate,
		EndDate:    endDate,
		Preference: preference,
	})
	if err != nil {
		if errors.Is(err, planner.ErrInvalidInput) {
			return fmt.Errorf("trip planning error: %w", err)
		}
		return fmt.Errorf("trip planning failed: %w", err)
	}

	fmt.Println("\n--- Here are your suggested itineraries, tailored to your preference and weather conditions ---")
	fmt.Println()
	fmt.Println(result)
	return nil
}

// promptWithValidation asks for one line of input, retrying up to
// maxInputAttempts on empty or invalid values.
func promptWithValidation(in *bufio.Scanner, prompt string, validate func(string) error) (string, error) {
	for attempt := 0; attempt < maxInputAttempts; attempt++ {
		fmt.Print(prompt)
		if !in.Scan() {
			return "", fmt.Errorf("input closed")
		}
		value := strings.TrimSpace(in.Text())
		if value == "" {
			fmt.Println("Input cannot be empty. Please try again.")
			continue
		}
		if err := validate(value); err != nil {
			fmt.Printf("Invalid input: %v. Please try again.\n", err)
			continue
		}
		return value, nil
	}
	return "", fmt.Errorf("maximum attempts exceeded for input validation")
}

func promptPreference(in *bufio.Scanner) (string, error) {
	for {
		fmt.Println("\nWhat is your travel style?")
		fmt.Println("  1: I want to visit the most popular and famous places.")
		fmt.Println("  2: I want to explore less-known, hidden gems.")
		fmt.Println("  3: I want a mix of both popular and hidden places.")
		fmt.Print("Enter your choice (1, 2, or 3): ")
		if !in.Scan() {
			return "", fmt.Errorf("input closed")
		}
		choice := strings.TrimSpace(in.Text())
		if validation.ValidatePreference(choice) == nil {
			return choice, nil
		}
		fmt.Println("Invalid choice. Please enter 1, 2, or 3.")
	}
}
