package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	championshipID int64
	poolID         int64
	runs           int
	dryRun         bool
	bodyFile       string
)

func init() {
	simulateCmd.Flags().Int64Var(&championshipID, "championship", 0, "ID of the championship to simulate")
	simulateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip notifications and events")
	simulateCmd.MarkFlagRequired("championship")

	simulatePoolCmd.Flags().Int64Var(&poolID, "pool", 0, "ID of the pool to simulate")
	simulatePoolCmd.Flags().IntVar(&runs, "runs", 1, "Number of simulation runs to aggregate")
	simulatePoolCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip notifications and events")
	simulatePoolCmd.MarkFlagRequired("pool")

	standingsCmd.Flags().Int64Var(&poolID, "pool", 0, "ID of the pool")
	standingsCmd.Flags().Int64Var(&championshipID, "championship", 0, "ID of the championship")

	bracketCmd.Flags().Int64Var(&championshipID, "championship", 0, "ID of the championship")
	bracketCmd.MarkFlagRequired("championship")

	simulationsCmd.Flags().Int64Var(&poolID, "pool", 0, "ID of the pool")
	simulationsCmd.MarkFlagRequired("pool")

	createChampionshipCmd.Flags().StringVar(&bodyFile, "file", "", "JSON file describing the championship")
	createChampionshipCmd.MarkFlagRequired("file")

	clearCmd.Flags().Int64Var(&poolID, "pool", 0, "Only purge this pool instead of clearing everything")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(championshipsCmd)
	rootCmd.AddCommand(createChampionshipCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(simulatePoolCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(simulationsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(clearCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var championshipsCmd = &cobra.Command{
	Use:   "championships",
	Short: "List the championships in the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/championships", nil)
	},
}

var createChampionshipCmd = &cobra.Command{
	Use:   "create-championship",
	Short: "Create a championship from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := os.ReadFile(bodyFile)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", bodyFile, err)
		}
		return performPostRequest("/championships/create", body)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a full championship",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("championshipID", strconv.FormatInt(championshipID, 10))
		if dryRun {
			params.Set("dry_run", "true")
		}
		return performGetRequest("/simulate", params)
	},
}

var simulatePoolCmd = &cobra.Command{
	Use:   "simulate-pool",
	Short: "Replay a single pool, optionally aggregating several runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("poolID", strconv.FormatInt(poolID, 10))
		if runs > 1 {
			params.Set("runs", strconv.Itoa(runs))
		}
		if dryRun {
			params.Set("dry_run", "true")
		}
		return performGetRequest("/simulate-pool", params)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings of a pool or a championship",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if poolID != 0 {
			params.Set("poolID", strconv.FormatInt(poolID, 10))
		} else if championshipID != 0 {
			params.Set("championshipID", strconv.FormatInt(championshipID, 10))
		} else {
			return fmt.Errorf("either --pool or --championship is required")
		}
		return performGetRequest("/standings", params)
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket",
	Short: "Show the final bracket seeding of a championship",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("championshipID", strconv.FormatInt(championshipID, 10))
		return performGetRequest("/bracket", params)
	},
}

var simulationsCmd = &cobra.Command{
	Use:   "simulations",
	Short: "List the saved batch simulations of a pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("poolID", strconv.FormatInt(poolID, 10))
		return performGetRequest("/simulations", params)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the store, or purge a single pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		if poolID != 0 {
			params.Set("poolID", strconv.FormatInt(poolID, 10))
		}
		return performGetRequest("/clear", params)
	},
}

func performGetRequest(endpoint string, params url.Values) error {
	requestURL := host + endpoint
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}
	fmt.Printf("Making request to %s\n", requestURL)

	resp, err := http.Get(requestURL)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, body []byte) error {
	requestURL := host + endpoint
	fmt.Printf("Making request to %s\n", requestURL)

	resp, err := http.Post(requestURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
