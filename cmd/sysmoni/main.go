package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Dicklesworthstone/sysmoni/internal/app"
)

func main() {
	application, err := app.New(os.Args[1:], os.Stderr)
	if err != nil {
		if !app.IsHelpError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(app.ExitCodeFor(err))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
