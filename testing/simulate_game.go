package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/tatianab/portal-escape/internal/app"
	"github.com/tatianab/portal-escape/internal/autoplay"
	"github.com/tatianab/portal-escape/internal/config"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/exits"
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/outcome"
)

func main() {
	games := flag.Int("games", 1000, "number of sessions to play")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	useGemini := flag.Bool("gemini", false, "let a Gemini model make the decisions")
	exitsFile := flag.String("exits", "", "probability table (defaults to ESCAPE_EXITS_FILE)")
	yesChance := flag.Float64("yes", 0.5, "chance the random player accepts an offer")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *exitsFile == "" {
		*exitsFile = cfg.ExitsFile
	}
	if *seed == 0 {
		*seed = cfg.Seed
	}
	src := app.SourceFor(*seed)

	var gemini *autoplay.GeminiPlayer
	if *useGemini {
		if err := cfg.RequireGemini(); err != nil {
			log.Fatal(err)
		}
		player, client, err := autoplay.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer client.Close()
		gemini = player
	}

	sink := &outcome.Memory{}
	for i := 0; i < *games; i++ {
		// Each session starts from the table on disk; drift is per session.
		table, warnings, err := exits.Load(*exitsFile)
		if err != nil {
			log.Fatalf("Failed to load exits: %v", err)
		}
		if i == 0 {
			for _, w := range warnings {
				fmt.Printf("warning: %s\n", w)
			}
		}

		var ch engine.Channel = autoplay.NewRandomPlayer("Simulant", *yesChance, src)
		if gemini != nil {
			ch = gemini
		}
		eng, err := engine.New(engine.Params{
			Table:   table,
			Channel: ch,
			Sink:    sink,
			Source:  src,
			Player:  models.NewPlayerState(fmt.Sprintf("Sim%03d", i%1000)),
		})
		if err != nil {
			log.Fatalf("Failed to create engine: %v", err)
		}
		if _, err := eng.Play(ctx); err != nil {
			log.Fatalf("Session %d failed: %v", i+1, err)
		}
		if gemini != nil {
			fmt.Printf("Session %d: %s\n", i+1, eng.Session().Message)
		}
	}

	var won, rounds int
	sessions := sink.Sessions()
	for _, s := range sessions {
		if s.Result == models.ResultWon {
			won++
		}
		rounds += s.Rounds
	}
	if len(sessions) == 0 {
		fmt.Println("No sessions played.")
		return
	}
	fmt.Printf("Sessions: %d\n", len(sessions))
	fmt.Printf("Escaped:  %d (%.1f%%)\n", won, 100*float64(won)/float64(len(sessions)))
	fmt.Printf("Average rounds: %.2f\n", float64(rounds)/float64(len(sessions)))

	weights := engine.ItemWeights()
	items := make([]string, 0, len(weights))
	for item := range weights {
		items = append(items, string(item))
	}
	sort.Strings(items)
	fmt.Print("Magic box odds:")
	for _, item := range items {
		fmt.Printf(" %s %.0f%%", item, 100*weights[engine.Item(item)])
	}
	fmt.Println()
}
