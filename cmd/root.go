package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "gd-showcase",
	Short: "Level showcase submission and moderation service",
	Long:  "A submission gallery backend: players submit levels with screenshots, moderators review them, and the accepted subset is served publicly.",
	Run: func(cmd *cobra.Command, args []string) {
		// 默认启动服务
		serveCmd.Run(cmd, args)
	},
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to a YAML config file (defaults to .env in the working directory)")
	if err := viper.BindPFlag("config_file_path", rootCmd.PersistentFlags().Lookup("config")); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: unable to bind config flag: %v\n", err)
		os.Exit(1)
	}
}
