package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pw-go/internal/app"
	"pw-go/internal/config"
	"pw-go/internal/pw"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a PWApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "generate", "shell").
func newApp(operation string) (*app.PWApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewPWApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "pw",
	Short:        "Password generator and credential store",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Encryption:  %s (key %s)\n", cfg.Encryption.Type, cfg.Encryption.KeyPath)
		fmt.Printf("Ledger:      %s %s\n", cfg.Ledger.Type, cfg.Ledger.Path)
		fmt.Printf("Length:      default %d, range %d-%d\n", cfg.Generator.DefaultLength, cfg.Generator.MinLength, cfg.Generator.MaxLength)
		fmt.Printf("Similarity:  %.2f\n", cfg.Policy.SimilarityThreshold)
		fmt.Printf("Expiry:      %d days\n", cfg.Policy.ExpiryDays)
		return nil
	},
}

// generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("generate")
		if err != nil {
			return err
		}
		defer a.Close()

		length, _ := cmd.Flags().GetInt("length")
		if !cmd.Flags().Changed("length") {
			length = a.Config().Generator.DefaultLength
		}
		save, _ := cmd.Flags().GetBool("save")

		result, err := a.Generate(length, policyFromFlags(cmd), save)
		if err != nil {
			return err
		}
		if result.Similar {
			return fmt.Errorf("generated password is too similar to a previous one")
		}

		fmt.Println(result.Password)
		fmt.Printf("Strength: %s\n", result.Strength)
		if result.Saved {
			fmt.Println("Saved.")
		}
		return nil
	},
}

func policyFromFlags(cmd *cobra.Command) pw.CharacterPolicy {
	noLower, _ := cmd.Flags().GetBool("no-lower")
	noUpper, _ := cmd.Flags().GetBool("no-upper")
	noDigits, _ := cmd.Flags().GetBool("no-digits")
	noSpecial, _ := cmd.Flags().GetBool("no-special")
	return pw.CharacterPolicy{
		Lowercase: !noLower,
		Uppercase: !noUpper,
		Digits:    !noDigits,
		Special:   !noSpecial,
	}
}

// score command
var scoreCmd = &cobra.Command{
	Use:   "score PASSWORD",
	Short: "Rate a password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(pw.Score(args[0]))
	},
}

// similar command
var similarCmd = &cobra.Command{
	Use:   "similar CANDIDATE PREVIOUS...",
	Short: "Check a password against previous ones",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		candidate, previous := args[0], args[1:]

		for _, p := range previous {
			fmt.Printf("%.3f  %s\n", pw.SimilarityRatio(candidate, p), p)
		}
		if pw.IsSimilar(candidate, previous, threshold) {
			return fmt.Errorf("%s is too similar (threshold %.2f)", candidate, threshold)
		}
		fmt.Println("not similar")
		return nil
	},
}

// shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("shell")
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println("pw shell; type help for commands")
		return app.NewShell(a, os.Stdin, os.Stdout).Run()
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("length", "l", 16, "Password length (default from config)")
	generateCmd.Flags().Bool("no-lower", false, "Exclude lowercase letters")
	generateCmd.Flags().Bool("no-upper", false, "Exclude uppercase letters")
	generateCmd.Flags().Bool("no-digits", false, "Exclude digits")
	generateCmd.Flags().Bool("no-special", false, "Exclude special characters")
	generateCmd.Flags().BoolP("save", "s", false, "Store the password in the ledger")
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().Float64P("threshold", "t", pw.DefaultSimilarityThreshold, "Similarity ratio above which passwords match")
	rootCmd.AddCommand(shellCmd)
}
