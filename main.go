package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/MrSimonC/SharpAlignment/pkg/cmd"
	apperrors "github.com/MrSimonC/SharpAlignment/pkg/errors"
	"github.com/MrSimonC/SharpAlignment/pkg/version"
)

func main() {
	info := version.Get()
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = version.FromBuildInfo(bi)
	}

	err := cmd.Execute(info)
	switch {
	case err == nil:
	case errors.Is(err, apperrors.ErrChangesFound):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
