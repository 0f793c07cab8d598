package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/korbot/internal/bot"
	"github.com/example/korbot/internal/catalog"
	"github.com/example/korbot/internal/database"
	"github.com/example/korbot/internal/excel"
	"github.com/joho/godotenv"
)

func main() {
	importWords := flag.String("import-words", "", "import the vocabulary workbook and exit")
	importLetters := flag.String("import-letters", "", "import the alphabet sheet and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: unable to load .env: %v", err)
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if *importWords != "" || *importLetters != "" {
		runImport(*importWords, *importLetters)
		return
	}

	snapshot, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	cfg, err := bot.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	b, err := bot.New(cfg, snapshot)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Bot error: %v", err)
	}
	b.Stop()
	log.Println("Bot stopped successfully")
}

// runImport loads workbook content into the database
func runImport(wordsPath, lettersPath string) {
	if wordsPath != "" {
		result, err := excel.ImportWords(excel.DefaultWordImportConfig(wordsPath))
		if err != nil {
			log.Fatalf("Failed to import words: %v", err)
		}
		log.Printf("Words: processed %d, imported %d, skipped %d, errors %d",
			result.TotalProcessed, result.Imported, result.Skipped, len(result.Errors))
		for _, msg := range result.Errors {
			log.Printf("  %s", msg)
		}
	}
	if lettersPath != "" {
		result, err := excel.ImportLetters(excel.DefaultLetterImportConfig(lettersPath))
		if err != nil {
			log.Fatalf("Failed to import letters: %v", err)
		}
		log.Printf("Letters: processed %d, imported %d, skipped %d, errors %d",
			result.TotalProcessed, result.Imported, result.Skipped, len(result.Errors))
		for _, msg := range result.Errors {
			log.Printf("  %s", msg)
		}
	}
}
