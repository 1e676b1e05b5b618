package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: chatsheet <parentDirectory>")
		os.Exit(1)
	}

	root := expandPath(os.Args[1])
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		fmt.Fprintf(os.Stderr,
			"Error: '%s' is not a directory or cannot be accessed.\n",
			root)
		os.Exit(1)
	}

	exporter := &Exporter{Out: os.Stdout}
	if err := exporter.Run(root); err != nil {
		log.Fatalf("export failed: %v", err)
	}
}

// expandPath resolves a leading ~ against the home directory
// and makes the path absolute.
func expandPath(arg string) string {
	path := arg
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
