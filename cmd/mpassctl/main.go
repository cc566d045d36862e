package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	htmlInput   bool
	pageURL     string
	packageName string
	credentials []string
)

var rootCmd = &cobra.Command{
	Use:   "mpassctl",
	Short: "Inspect how the autofill engine reads a field tree",
	Long: `mpassctl runs the autofill classifier, domain extractor and response
builder over a captured field tree, without a credential store.

Input is a JSON field tree (an array of windows, or an object with a
"windows" array) or, with --html, a saved HTML page. Use "-" to read stdin.`,
	SilenceUsage: true,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "List the username and password fields in a tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Show the web domain and form URL of a tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var fillCmd = &cobra.Command{
	Use:   "fill [file]",
	Short: "Build the fill response for a tree",
	Long: `Builds the fill response the server would return for the tree, using
the credentials given with --credential instead of a store lookup.

Example:
  mpassctl fill --html --url https://example.com/login --credential c1=Work login.html`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

var tokenCmd = &cobra.Command{
	Use:   "token [caller]",
	Short: "Issue an access token for a platform bridge",
	Long: `Signs a caller access token with the configured token secret. Send it as
"Authorization: Bearer <token>" on every /api/v1 request.`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&htmlInput, "html", false, "treat input as an HTML page")
	rootCmd.PersistentFlags().StringVar(&pageURL, "url", "", "page URL for HTML input")
	rootCmd.PersistentFlags().StringVar(&packageName, "package", "com.android.chrome", "requesting package name")
	fillCmd.Flags().StringArrayVar(&credentials, "credential", nil, "credential summary as id=title (repeatable)")

	rootCmd.AddCommand(classifyCmd, extractCmd, fillCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
