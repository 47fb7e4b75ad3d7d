// Package app wires configuration, the probability table, outcome sinks and
// a front end into a playable session.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tatianab/portal-escape/internal/config"
	"github.com/tatianab/portal-escape/internal/console"
	"github.com/tatianab/portal-escape/internal/engine"
	"github.com/tatianab/portal-escape/internal/exits"
	"github.com/tatianab/portal-escape/internal/logging"
	"github.com/tatianab/portal-escape/internal/models"
	"github.com/tatianab/portal-escape/internal/outcome"
	"github.com/tatianab/portal-escape/internal/random"
	"github.com/tatianab/portal-escape/internal/storage/sqlite"
	"github.com/tatianab/portal-escape/internal/tui"
)

// recentLimit is how many past escapes are shown before play.
const recentLimit = 5

// Game holds everything one session needs apart from the player channel.
type Game struct {
	Table   *models.ProbabilityTable
	Sink    engine.OutcomeSink
	Source  random.Source
	Notices []string

	store *sqlite.Store
}

// Prepare loads the table and opens the sinks named by cfg.
func Prepare(ctx context.Context, cfg *config.Config) (*Game, error) {
	table, warnings, err := exits.Load(cfg.ExitsFile)
	if err != nil {
		return nil, err
	}
	g := &Game{Table: table, Source: SourceFor(cfg.Seed)}
	for _, w := range warnings {
		logging.Warn("exits row skipped", logging.Fields{"file": cfg.ExitsFile, "line": w.Line, "reason": w.Msg})
		g.Notices = append(g.Notices, fmt.Sprintf("Warning: %s %s", cfg.ExitsFile, w))
	}
	if len(table.Present()) == 0 {
		g.Notices = append(g.Notices, "Warning: no portal directions were loaded.")
	}

	sinks := outcome.Multi{
		outcome.TextFile{Path: cfg.OutcomeFile},
		outcome.SaveDir{Dir: cfg.SaveDir},
	}
	if cfg.HistoryDB != "" {
		store, err := sqlite.Open(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		g.store = store
		sinks = append(sinks, store)
		g.Notices = append(g.Notices, g.history(ctx)...)
	} else {
		g.Notices = append(g.Notices, savedHistory(cfg.SaveDir)...)
	}
	g.Sink = sinks
	return g, nil
}

func (g *Game) history(ctx context.Context) []string {
	totals, err := g.store.Totals(ctx)
	if err != nil {
		logging.Error("read history totals", err, nil)
		return nil
	}
	if totals.Played == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("%d escapes attempted, %d succeeded.", totals.Played, totals.Won)}
	recent, err := g.store.Recent(ctx, recentLimit)
	if err != nil {
		logging.Error("read recent history", err, nil)
		return lines
	}
	for _, e := range recent {
		lines = append(lines, historyLine(e.FinishedAt, e.Player, e.Result, e.Rounds))
	}
	return lines
}

// savedHistory lists the newest session records in dir.
func savedHistory(dir string) []string {
	paths, err := models.ListSessions(dir)
	if err != nil {
		logging.Error("list saved sessions", err, logging.Fields{"dir": dir})
		return nil
	}
	if len(paths) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("%d escapes recorded.", len(paths))}
	for i := len(paths) - 1; i >= 0 && i >= len(paths)-recentLimit; i-- {
		s, err := models.LoadSession(paths[i])
		if err != nil {
			logging.Warn("skipping unreadable session", logging.Fields{"path": paths[i], "error": err.Error()})
			continue
		}
		lines = append(lines, historyLine(s.FinishedAt, s.Player.Name, s.Result, s.Rounds))
	}
	return lines
}

func historyLine(at time.Time, player string, result models.Result, rounds int) string {
	return fmt.Sprintf("  %s  %-12s %-5s after %d rounds", at.Local().Format("2006-01-02 15:04"), player, result, rounds)
}

// Close releases the history store.
func (g *Game) Close() error {
	if g.store == nil {
		return nil
	}
	return g.store.Close()
}

// NewEngine tells the channel any notices and builds a fresh engine.
func (g *Game) NewEngine(ch engine.Channel) (*engine.Engine, error) {
	for _, n := range g.Notices {
		ch.Tell(n)
	}
	return engine.New(engine.Params{
		Table:   g.Table,
		Channel: ch,
		Sink:    g.Sink,
		Source:  g.Source,
	})
}

// SourceFor returns a seeded source for non-zero seeds.
func SourceFor(seed uint64) random.Source {
	if seed != 0 {
		return random.NewSeeded(seed)
	}
	return random.New()
}

// Run plays one session with the front end cfg selects.
func Run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*models.Session, error) {
	g, err := Prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer g.Close()

	if cfg.Plain {
		eng, err := g.NewEngine(console.New(in, out))
		if err != nil {
			return nil, err
		}
		return eng.Play(ctx)
	}
	return tui.Run(ctx, g.NewEngine)
}

// Main is the shared body of the game binaries. It returns the process exit
// code.
func Main() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}

	if cfg.LogFile != "" {
		logFile, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			return 1
		}
		defer logFile.Close()
	}

	session, err := Run(context.Background(), cfg, os.Stdin, os.Stdout)
	if err != nil {
		logging.Error("session aborted", err, nil)
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if session != nil && !cfg.Plain {
		fmt.Println(session.Message)
	}
	return 0
}
