package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"syndication-kit/internal/app"
)

func newAppService() app.Service {
	return app.NewService()
}

// documentFlags are the load options shared by every command that reads a
// document.
type documentFlags struct {
	Settings   string
	Extensions []string
	Isolate    bool
	Token      string
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.Settings, "settings", "", "Settings file path (syndkit.yaml)")
	cmd.Flags().StringSliceVar(&flags.Extensions, "extension", nil, "Candidate extension prefix or namespace URI (repeatable)")
	cmd.Flags().BoolVar(&flags.Isolate, "isolate-extension-failures", false, "Keep loading when an extension fails to read its markup")
	cmd.Flags().StringVar(&flags.Token, "token", "", "Correlation token reported when the document is loaded")
	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))
	_ = viper.BindPFlag("extensions", cmd.Flags().Lookup("extension"))
	_ = viper.BindPFlag("isolate_extension_failures", cmd.Flags().Lookup("isolate-extension-failures"))
}

func resolveDocumentOptions(cmd *cobra.Command, flags documentFlags) app.DocumentOptions {
	return app.DocumentOptions{
		SettingsPath:             resolveString(cmd, flags.Settings, "settings", "settings"),
		Extensions:               resolveStrings(cmd, flags.Extensions, "extensions", "extension"),
		IsolateExtensionFailures: resolveBool(cmd, flags.Isolate, "isolate_extension_failures", "isolate-extension-failures"),
		Token:                    flags.Token,
	}
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
