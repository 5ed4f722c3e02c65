// Command get-token logs in to the dashboard API and prints the issued token.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/upb/dashboard-api/client"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("get-token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		baseURL = fs.String("base-url", "http://localhost:5000", "API base url")
		email   = fs.String("email", "parhanganteng@example.com", "email to log in with")
		timeout = fs.Duration("timeout", 10*time.Second, "request timeout")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	c, err := client.New(*baseURL, client.WithTimeout(*timeout))
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	tok, err := c.Login(ctx, *email)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Body != "" {
			fmt.Fprintln(stdout, "Error:", apiErr.Body)
		} else {
			fmt.Fprintln(stdout, "Error:", err)
		}
		return 1
	}

	fmt.Fprintln(stdout, "Token retrieved:")
	fmt.Fprintln(stdout, tok)
	return 0
}
