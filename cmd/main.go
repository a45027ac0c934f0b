package main

import (
	"context"
	"fmt"
	"os"

	"patient-records/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	ctx := context.Background()

	// Initialize application with all dependencies
	app, err := bootstrap.New(ctx)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	err = app.Run(ctx, os.Args[1:])
	closeApp(app, logrus.StandardLogger())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type closer interface {
	Close() error
}

// closeApp reports close failures to log. The app logger is closed by then.
func closeApp(app closer, log logrus.FieldLogger) {
	if err := app.Close(); err != nil {
		log.Errorf("Failed to close application: %v", err)
	}
}
