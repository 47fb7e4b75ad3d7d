package main

import (
	"flag"
	"os"

	"github.com/tatianab/portal-escape/internal/app"
)

func main() {
	exitsFile := flag.String("exits", "", "probability table to play (overrides ESCAPE_EXITS_FILE)")
	plain := flag.Bool("plain", false, "use the line-oriented console instead of the full-screen UI")
	flag.Parse()

	if *exitsFile != "" {
		os.Setenv("ESCAPE_EXITS_FILE", *exitsFile)
	}
	if *plain {
		os.Setenv("ESCAPE_PLAIN", "true")
	}
	os.Exit(app.Main())
}
