package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/cli/client"
)

var (
	serverURL string
	sharedKey string
	account   string
)

var rootCmd = &cobra.Command{
	Use:   "tileland",
	Short: "tileland client and server",
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}

func newClient() *client.Client {
	return client.New(serverURL, sharedKey, account)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server-url", "", "http://localhost:8089", "server-url")
	rootCmd.PersistentFlags().StringVarP(&sharedKey, "shared-key", "", "", "shared key to use for authentication")
	rootCmd.PersistentFlags().StringVarP(&account, "account", "a", os.Getenv("TILELAND_ACCOUNT"), "account to act as")
}
