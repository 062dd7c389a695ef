package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/martinemde/anyllm"
)

func main() {
	var (
		provider    string
		model       string
		apiKey      string
		baseURL     string
		system      string
		temperature float64
		maxTokens   int
		stream      bool
		logLevel    string
		configPath  string
	)

	rootCmd := &cobra.Command{
		Use:   "anyllm <prompt>",
		Short: "Query any configured LLM provider through one interface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(configPath); err != nil {
				return err
			}
			applyLogLevel(logLevel)

			// Config file and ANYLLM_* environment values back unset flags.
			if !cmd.Flags().Changed("provider") && viper.GetString("provider") != "" {
				provider = viper.GetString("provider")
			}
			if !cmd.Flags().Changed("model") && viper.GetString("model") != "" {
				model = viper.GetString("model")
			}
			if !cmd.Flags().Changed("api-key") && viper.GetString("api_key") != "" {
				apiKey = viper.GetString("api_key")
			}
			if !cmd.Flags().Changed("base-url") && viper.GetString("base_url") != "" {
				baseURL = viper.GetString("base_url")
			}

			var opts []anyllm.Option
			if model != "" {
				opts = append(opts, anyllm.WithModel(model))
			}
			if apiKey != "" {
				opts = append(opts, anyllm.WithAPIKey(apiKey))
			}
			if baseURL != "" {
				opts = append(opts, anyllm.WithBaseURL(baseURL))
			}
			if system != "" {
				opts = append(opts, anyllm.WithSystemPrompt(system))
			}
			if cmd.Flags().Changed("temperature") {
				opts = append(opts, anyllm.WithTemperature(temperature))
			}
			if cmd.Flags().Changed("max-tokens") {
				opts = append(opts, anyllm.WithMaxTokens(maxTokens))
			}

			return query(anyllm.Provider(provider), args[0], stream, opts)
		},
	}

	rootCmd.Flags().StringVarP(&provider, "provider", "p", "openai", "Provider to use (openai, anthropic, ollama, huggingface)")
	rootCmd.Flags().StringVarP(&model, "model", "m", "", "Model to use (default: provider default)")
	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (default: provider environment variable)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Backend base URL (ollama, huggingface)")
	rootCmd.Flags().StringVarP(&system, "system", "s", "", "System prompt")
	rootCmd.Flags().Float64VarP(&temperature, "temperature", "t", 0.7, "Sampling temperature")
	rootCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Completion token limit")
	rootCmd.Flags().BoolVar(&stream, "stream", false, "Stream the response")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: $HOME/.anyllm.yaml)")

	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "List supported providers and their default models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range anyllm.Providers() {
				fmt.Printf("%s\n", p)
				for i, m := range anyllm.ListModels(p) {
					marker := " "
					if i == 0 {
						marker = "*" // default model
					}
					fmt.Printf("  %s %s\n", marker, m.ID)
				}
			}
		},
	}
	rootCmd.AddCommand(providersCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) error {
	viper.SetEnvPrefix("ANYLLM")
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		return viper.ReadInConfig()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.SetConfigName(".anyllm")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}
	return nil
}

func applyLogLevel(level string) {
	switch level {
	case "debug":
		anyllm.SetLogLevel(slog.LevelDebug)
	case "info":
		anyllm.SetLogLevel(slog.LevelInfo)
	case "error":
		anyllm.SetLogLevel(slog.LevelError)
	default:
		anyllm.SetLogLevel(slog.LevelWarn)
	}
}

func query(provider anyllm.Provider, prompt string, stream bool, opts []anyllm.Option) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := anyllm.New(provider, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	if stream {
		result, err := client.Generate(ctx, prompt, anyllm.WithStream(true))
		if err != nil {
			return err
		}
		defer result.Close()
		for chunk := range result.Chunks() {
			if chunk.Err != nil {
				fmt.Println()
				return chunk.Err
			}
			fmt.Print(chunk.Text)
		}
		fmt.Println()
		return nil
	}

	result, err := client.Generate(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Println(result.Text())
	return nil
}
