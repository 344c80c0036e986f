package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lugondev/solfleet/cmd/solfleet/cmd"
	ferrors "github.com/lugondev/solfleet/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, ferrors.ErrPartialFailure) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
