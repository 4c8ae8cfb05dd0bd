package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// concurrencyChoices are the fetch fan-out options offered by the wizard.
var concurrencyChoices = []string{
	"unbounded (one request per record)",
	"8",
	"16",
	"32",
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to dexview! Let's configure your catalog server.")
	fmt.Println()

	cfg := DefaultConfig()

	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the account database",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = strings.TrimSpace(dataDir)

	apiPrompt := promptui.Prompt{
		Label:   "Creature API base URL",
		Default: cfg.APIBaseURL,
	}
	baseURL, err := apiPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("api base url: %w", err)
	}
	cfg.APIBaseURL = strings.TrimSpace(baseURL)

	concurrencyPrompt := promptui.Select{
		Label: "Detail fetch concurrency per source",
		Items: concurrencyChoices,
	}
	idx, _, err := concurrencyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("fetch concurrency: %w", err)
	}
	cfg.FetchConcurrency = concurrencyFor(idx)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// concurrencyFor maps a wizard selection index to a fetch_concurrency value.
func concurrencyFor(idx int) int {
	if idx <= 0 || idx >= len(concurrencyChoices) {
		return 0
	}
	n, err := strconv.Atoi(concurrencyChoices[idx])
	if err != nil {
		return 0
	}
	return n
}

func validatePort(input string) error {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n < 0 || n > 65535 {
		return fmt.Errorf("port must be between 0 and 65535")
	}
	return nil
}
