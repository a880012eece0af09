package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"

	"storycue/pkg/extract"
	"storycue/pkg/mood"
	"storycue/pkg/oracle"
	"storycue/pkg/prompt"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer done()

	text := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if text == "" {
		in, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("failed to read stdin", "error", err)
		}
		text = strings.TrimSpace(string(in))
	}
	if text == "" {
		log.Fatal("no passage given; pass text as arguments or on stdin")
	}

	ner, emotion, parser := oracles()

	entities := extract.NewExtractor(ner)
	actions := extract.NewActionExtractor(parser)
	moods := mood.NewDetector(emotion)
	builder := prompt.New(entities, actions, moods)

	ents, err := entities.Entities(ctx, text)
	if err != nil {
		log.Fatal("entity extraction failed", "error", err)
	}
	fmt.Println("ENTITIES:")
	for _, ent := range ents {
		fmt.Printf("  %-14s %-5s %.3f\n", ent.Text, ent.Type, ent.Score)
	}

	scores, err := moods.Detect(ctx, text, 3, 0)
	if err != nil {
		log.Fatal("mood detection failed", "error", err)
	}
	fmt.Println("MOODS:")
	for _, s := range scores {
		fmt.Printf("  %-14s %.3f\n", s.Mood, s.Confidence)
	}

	action, ok, err := actions.Action(ctx, text)
	if err != nil {
		log.Fatal("action extraction failed", "error", err)
	}
	if ok {
		fmt.Println("ACTION:", action)
	}

	img, err := builder.ImagePrompt(ctx, text, prompt.Options{IncludeContext: true})
	if err != nil {
		log.Fatal("image prompt failed", "error", err)
	}
	audio, err := builder.AudioPrompt(ctx, text)
	if err != nil {
		log.Fatal("audio prompt failed", "error", err)
	}

	fmt.Println("\nIMAGE PROMPT:\n" + img)
	fmt.Println("\nAUDIO PROMPT:\n" + audio)
}

// oracles picks backends from the environment: a Gemini or OpenAI key takes
// the whole pipeline; otherwise hosted inference handles NER and emotion with
// a parse service alongside.
func oracles() (oracle.NER, oracle.Emotion, oracle.Parser) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		g, err := oracle.NewGemini(key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatal("failed to create gemini client", "error", err)
		}
		return g, g, g
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		o := oracle.NewOpenAI(key, os.Getenv("OPENAI_MODEL"))
		return o, o, o
	}

	hf := oracle.NewHuggingFace(os.Getenv("HF_API_TOKEN"))
	parserURL := os.Getenv("PARSER_URL")
	if parserURL == "" {
		parserURL = "http://localhost:8000"
	}
	return hf, hf, oracle.NewParserService(parserURL)
}
