package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"flight-intent-service/internal/app"
	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/internal/infrastructure/config"
	"flight-intent-service/internal/usecase"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
)

const exitCommand = "salir"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Console output is for the user; keep the log to warnings
	log := logger.NewLogger("warn")
	defer log.Sync()

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize", "error", err)
	}
	defer application.Close(ctx)

	if err := run(ctx, application.Processor, os.Stdin, os.Stdout); err != nil {
		log.Fatal("Console error", "error", err)
	}
}

// run reads one message per line until EOF or the exit command and prints
// either the clarification prompts or the final record as JSON.
func run(ctx context.Context, processor usecase.Processor, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Escribe tu solicitud de vuelo (o '%s' para terminar).\n", exitCommand)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitCommand) {
			return nil
		}
		if line == "" {
			continue
		}

		entry, err := processor.Process(ctx, usecase.Submission{
			Source:     entity.SourceConsole,
			Message:    line,
			ReceivedAt: time.Now(),
		})

		var missing *intent.MissingFieldsError
		switch {
		case errors.As(err, &missing):
			for _, prompt := range intent.ClarificationPrompts(missing.Fields) {
				fmt.Fprintln(out, prompt)
			}
		case err != nil:
			return err
		case entry == nil || entry.Request == nil:
			fmt.Fprintln(out, "No se pudo construir la solicitud.")
		default:
			data, err := json.MarshalIndent(entry.Request, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		}
	}
}
