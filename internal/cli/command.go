package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/yiwen/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yiwen [text...]",
		Short: "Translator with pinyin for Chinese targets",
		Long: `yiwen translates text through a remote translation gateway.

When the target language is Chinese it also prints the pinyin of the
translation, taken from the gateway response or transcribed locally.

Examples:
  yiwen hello                     # Translate "hello" to Chinese
  yiwen --to de good morning      # Translate to German
  echo hello | yiwen              # Read the text from stdin
  yiwen --batch phrases.txt       # Translate every line of a file`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.yiwen.yaml)")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")

	// Local flags
	cmd.Flags().StringVarP(&flags.From, "from", "f", flags.From, "Source language code or 'auto'")
	cmd.Flags().StringVarP(&flags.To, "to", "t", flags.To, "Target language code")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (one per line, optional 'lang = text')")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "Print results as JSON")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List OpenAI chat models usable for pinyin transcription")

	// Gateway flags
	cmd.Flags().StringVar(&flags.ChineseRoute, "chinese-route", flags.ChineseRoute, "Gateway for Chinese targets: besteffort or generic")
	cmd.Flags().StringVar(&flags.GenericURL, "generic-url", flags.GenericURL, "Base URL of the Lingva-compatible gateway")
	cmd.Flags().StringVar(&flags.BestEffortURL, "besteffort-url", flags.BestEffortURL, "URL of the best-effort gateway")
	cmd.Flags().StringVar(&flags.Timeout, "timeout", flags.Timeout, "Gateway request timeout")

	// Pinyin flags
	cmd.Flags().StringVar(&flags.PinyinBackend, "pinyin-backend", flags.PinyinBackend, "Pinyin transcription backend: library, openai, gemini, none")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for the openai backend")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for the gemini backend")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.from", cmd.Flags().Lookup("from"))
	viper.BindPFlag("translate.to", cmd.Flags().Lookup("to"))
	viper.BindPFlag("output.json", cmd.Flags().Lookup("json"))
	viper.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("gateway.chinese_route", cmd.Flags().Lookup("chinese-route"))
	viper.BindPFlag("gateway.generic_url", cmd.Flags().Lookup("generic-url"))
	viper.BindPFlag("gateway.besteffort_url", cmd.Flags().Lookup("besteffort-url"))
	viper.BindPFlag("gateway.timeout", cmd.Flags().Lookup("timeout"))
	viper.BindPFlag("phonetic.backend", cmd.Flags().Lookup("pinyin-backend"))
	viper.BindPFlag("phonetic.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("phonetic.gemini_model", cmd.Flags().Lookup("gemini-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".yiwen" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".yiwen")
	}

	// Environment variables
	viper.SetEnvPrefix("YIWEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("phonetic.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("phonetic.gemini_key")
}
