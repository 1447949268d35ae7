package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	pandasai "github.com/Andromeda227799/pandas-ai"
	"github.com/Andromeda227799/pandas-ai/src/dataset"
	"github.com/Andromeda227799/pandas-ai/src/models"
)

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "save":
		err = runSave(os.Args[2:])
	case "push":
		err = runPush(ctx, os.Args[2:])
	case "chat":
		err = runChat(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("error: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: pandasai <save|push|chat> [flags]")
	fmt.Fprintln(os.Stderr, "  save -csv <file> -path <org/dataset> [-name n] [-description d]")
	fmt.Fprintln(os.Stderr, "  push -path <org/dataset>")
	fmt.Fprintln(os.Stderr, "  chat -path <org/dataset> -query <q> [-provider p] [-model m] [-follow-up q2]")
}

func runSave(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	csvPath := fs.String("csv", "", "CSV file to ingest")
	path := fs.String("path", "", "Dataset path (org/dataset)")
	name := fs.String("name", "", "Dataset name")
	description := fs.String("description", "", "Dataset description")
	_ = fs.Parse(args)

	if *csvPath == "" || *path == "" {
		return fmt.Errorf("save requires -csv and -path")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cols, err := dataset.ReadCSV(f)
	if err != nil {
		return err
	}
	series := make([]pandasai.Series, len(cols))
	for i, col := range cols {
		series[i] = pandasai.Series{Name: col.Name, Values: col.Values}
	}

	df, err := pandasai.NewDataFrame(series,
		pandasai.WithName(*name),
		pandasai.WithDescription(*description),
	)
	if err != nil {
		return err
	}
	if err := df.Save(*path); err != nil {
		return err
	}

	log.Printf("saved %s: %d rows, %d columns (hash %s)", *path, df.Len(), len(df.Columns()), df.ColumnHash())
	return nil
}

func runPush(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("push", flag.ExitOnError)
	path := fs.String("path", "", "Dataset path (org/dataset)")
	_ = fs.Parse(args)

	if *path == "" {
		return fmt.Errorf("push requires -path")
	}

	df, err := pandasai.Load(*path)
	if err != nil {
		return err
	}
	if err := df.Push(ctx); err != nil {
		return err
	}

	log.Printf("pushed %s", *path)
	return nil
}

func runChat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	path := fs.String("path", "", "Dataset path (org/dataset)")
	query := fs.String("query", "", "Question to ask")
	followUp := fs.String("follow-up", "", "Optional follow-up question")
	provider := fs.String("provider", "dummy", "LLM provider (openai|anthropic|gemini|ollama|dummy)")
	model := fs.String("model", "", "Model name for the provider")
	verbose := fs.Bool("verbose", false, "Log conversation details")
	_ = fs.Parse(args)

	if *path == "" || *query == "" {
		return fmt.Errorf("chat requires -path and -query")
	}

	llm, err := models.NewLLMProvider(ctx, *provider, *model, "")
	if err != nil {
		return err
	}

	df, err := pandasai.Load(*path)
	if err != nil {
		return err
	}

	answer, err := df.Chat(ctx, *query, &pandasai.Config{LLM: llm, Verbose: *verbose})
	if err != nil {
		return err
	}
	fmt.Println(answer)

	if *followUp != "" {
		answer, err = df.FollowUp(ctx, *followUp)
		if err != nil {
			return err
		}
		fmt.Println(answer)
	}
	return nil
}
