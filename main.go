package main

import (
	"os"

	"github.com/tatianab/portal-escape/internal/app"
)

func main() {
	os.Exit(app.Main())
}
