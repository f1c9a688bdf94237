// Copyright 2025 The tundra authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// uci.go implements the UCI protocol described at
// http://wbec-ridderkerk.nl/html/UCIProtocol.html.

package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tundrachess/tundra/board"
	"github.com/tundrachess/tundra/engine"
)

var errQuit = errors.New("quit")

const (
	maxThreads = 256
	maxHashMB  = 65536
	// maxSearchDepth bounds iterative deepening for timed searches.
	maxSearchDepth = 64
)

// UCI holds the engine state between commands.
type UCI struct {
	search *engine.MainSearch
	game   *board.Game
	tc     engine.TimeControl

	// buffer of 1; when empty the engine is idle.
	idle chan struct{}

	debug   bool
	printer *message.Printer
}

func NewUCI() *UCI {
	search := engine.NewMainSearch()
	if cfg, err := engine.LoadSearchConfig("tundra.toml"); err == nil {
		search.Config = cfg
	} else {
		log.Warningf("ignoring bad tundra.toml: %v", err)
	}
	return &UCI{
		search:  search,
		game:    board.NewGame(engine.PSTEvaluate),
		idle:    make(chan struct{}, 1),
		printer: message.NewPrinter(language.English),
	}
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

func (uci *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	// These commands do not expect the engine to be idle.
	switch cmd {
	case "isready":
		return uci.isready(line)
	case "quit":
		uci.stop(line)
		return errQuit
	case "stop":
		return uci.stop(line)
	case "uci":
		return uci.uci(line)
	case "debug":
		return uci.setDebug(line)
	case "ponderhit":
		// Pondering is treated as an infinite search; the GUI follows
		// up with stop when it wants the move.
		return nil
	}

	// Make sure that the engine is idle.
	uci.idle <- struct{}{}
	<-uci.idle

	// These commands expect the engine to be idle.
	switch cmd {
	case "ucinewgame":
		return uci.ucinewgame(line)
	case "position":
		return uci.position(line)
	case "go":
		return uci.go_(line)
	case "setoption":
		return uci.setoption(line)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (uci *UCI) uci(line string) error {
	fmt.Printf("id name tundra %v\n", buildVersion)
	fmt.Printf("id author The tundra authors\n")
	fmt.Printf("\n")
	fmt.Printf("option name Threads type spin default %d min 1 max %d\n",
		uci.search.Config.NHelpers+1, maxThreads)
	fmt.Printf("option name Hash type spin default %d min 0 max %d\n",
		engine.DefaultHashTableSizeMB, maxHashMB)
	fmt.Printf("option name Clear Hash type button\n")
	fmt.Printf("option name UCI_EngineAbout type string default tundra %v, a UCI chess engine\n",
		buildVersion)
	fmt.Println("uciok")
	return nil
}

func (uci *UCI) isready(line string) error {
	fmt.Println("readyok")
	return nil
}

func (uci *UCI) setDebug(line string) error {
	switch {
	case strings.HasSuffix(line, "on"):
		uci.debug = true
	case strings.HasSuffix(line, "off"):
		uci.debug = false
	default:
		return fmt.Errorf("expected debug on or off")
	}
	return nil
}

func (uci *UCI) ucinewgame(line string) error {
	uci.game = board.NewGame(engine.PSTEvaluate)
	uci.search.TT.Clear()
	return nil
}

func (uci *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var game *board.Game
	var err error

	i := 0
	switch args[i] {
	case "startpos":
		game = board.NewGame(engine.PSTEvaluate)
		i++
	case "fen":
		for i < len(args) && args[i] != "moves" {
			i++
		}
		game, err = board.GameFromFEN(strings.Join(args[1:i], " "), engine.PSTEvaluate)
	default:
		err = fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, err := board.MoveFromUCI(s)
			if err != nil {
				return err
			}
			// An illegal move aborts the whole command; the previous
			// game state stays in place.
			if err := game.TryMove(m, engine.PSTDelta(game.Board(), m)); err != nil {
				return err
			}
		}
	}

	uci.game = game
	return nil
}

func (uci *UCI) go_(line string) error {
	uci.search.Limit.SetMoveTime(0)
	uci.search.Limit.SetNodesCap(0)
	uci.tc = engine.TimeControl{}
	timed := false

	args := strings.Fields(line)[1:]
	// next returns the integer value following option i.
	next := func(i int) (int, error) {
		if i+1 >= len(args) {
			return 0, fmt.Errorf("missing value for %s", args[i])
		}
		return strconv.Atoi(args[i+1])
	}

	for i := 0; i < len(args); i++ {
		var v int
		var err error
		switch args[i] {
		case "infinite", "ponder":
			uci.search.SetDepth(maxSearchDepth)
			continue
		case "depth":
			if v, err = next(i); err == nil {
				uci.search.SetDepth(v)
			}
		case "nodes":
			if v, err = next(i); err == nil {
				uci.search.Limit.SetNodesCap(uint64(v))
				uci.search.SetDepth(maxSearchDepth)
			}
		case "movetime":
			if v, err = next(i); err == nil {
				uci.search.Limit.SetMoveTime(time.Duration(v) * time.Millisecond)
				uci.search.SetDepth(maxSearchDepth)
			}
		case "wtime":
			if v, err = next(i); err == nil {
				uci.tc.WTime = time.Duration(v) * time.Millisecond
				timed = true
			}
		case "btime":
			if v, err = next(i); err == nil {
				uci.tc.BTime = time.Duration(v) * time.Millisecond
				timed = true
			}
		case "winc":
			if v, err = next(i); err == nil {
				uci.tc.WInc = time.Duration(v) * time.Millisecond
			}
		case "binc":
			if v, err = next(i); err == nil {
				uci.tc.BInc = time.Duration(v) * time.Millisecond
			}
		case "movestogo":
			if v, err = next(i); err == nil {
				uci.tc.MovesToGo = v
			}
		default:
			return fmt.Errorf("invalid go option %s", args[i])
		}
		if err != nil {
			return err
		}
		i++
	}

	if timed {
		uci.search.Limit.SetMoveTime(uci.tc.ThinkingTime(uci.game.Board().SideToMove))
		uci.search.SetDepth(maxSearchDepth)
	}

	uci.idle <- struct{}{}
	go uci.play()
	return nil
}

func (uci *UCI) stop(line string) error {
	uci.search.Limit.Stop()
	// Wait until the engine becomes idle.
	uci.idle <- struct{}{}
	<-uci.idle
	return nil
}

// play runs the search. It runs in its own goroutine; the idle channel
// is full while it does.
func (uci *UCI) play() {
	start := time.Now()
	info := uci.search.Evaluate(uci.game, uci.printProgress)

	if uci.debug {
		elapsed := time.Since(start).Seconds()
		uci.debugInfo(uci.printer.Sprintf("searched %d nodes in %.2fs (%.0f nodes/sec)",
			info.Nodes, elapsed, float64(info.Nodes)/elapsed))
	}

	if info.BestMove == board.NullMove {
		fmt.Printf("bestmove (none)\n")
	} else if pv := uci.search.PrincipalVariation(uci.game, info.BestMove, 2); len(pv) >= 2 {
		fmt.Printf("bestmove %v ponder %v\n", pv[0].UCI(), pv[1].UCI())
	} else {
		fmt.Printf("bestmove %v\n", info.BestMove.UCI())
	}

	// Mark the engine as idle only after bestmove is printed, so a fast
	// stream of position/go commands cannot interleave the output.
	<-uci.idle
}

// printProgress emits one info line per completed depth.
func (uci *UCI) printProgress(info engine.SearchInfo, tt *engine.TTable, limit *engine.SearchLimit) {
	elapsed := limit.Elapsed()
	millis := elapsed.Milliseconds()
	nodes := limit.Nodes()
	nps := uint64(0)
	if elapsed > 0 {
		nps = nodes * uint64(time.Second) / uint64(elapsed)
	}

	score := fmt.Sprintf("cp %d", info.Score)
	if info.Score.IsMate() {
		n := info.Score.MovesToMate()
		if info.Score < 0 {
			n = -n
		}
		score = fmt.Sprintf("mate %d", n)
	}

	line := fmt.Sprintf("info depth %d seldepth %d score %s nodes %d time %d nps %d hashfull %d pv",
		info.Depth, info.SelDepth, score, nodes, millis, nps, tt.FillRatePermill())
	for _, m := range uci.search.PrincipalVariation(uci.game, info.BestMove, info.Depth) {
		line += " " + m.UCI()
	}
	fmt.Println(line)
}

var reOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (uci *UCI) setoption(line string) error {
	option := reOption.FindStringSubmatch(line)
	if option == nil {
		return fmt.Errorf("invalid setoption arguments")
	}

	// Buttons have no value.
	switch option[1] {
	case "Clear Hash":
		uci.search.TT.Clear()
		return nil
	}

	if len(option) < 4 {
		return fmt.Errorf("missing setoption value")
	}
	switch option[1] {
	case "Threads":
		n, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		if n < 1 || n > maxThreads {
			return fmt.Errorf("Threads must be between 1 and %d", maxThreads)
		}
		uci.search.SetNHelpers(n - 1)
		return nil
	case "Hash":
		mb, err := strconv.Atoi(option[3])
		if err != nil {
			return err
		}
		if mb < 0 || mb > maxHashMB {
			return fmt.Errorf("Hash must be between 0 and %d", maxHashMB)
		}
		uci.search.TT.Resize(mb)
		return nil
	case "UCI_EngineAbout":
		return nil
	default:
		return fmt.Errorf("unhandled option %s", option[1])
	}
}

// debugInfo mirrors a diagnostic both to the log and, in debug mode, to
// the GUI as an info string.
func (uci *UCI) debugInfo(s string) {
	log.Warning(s)
	if uci.debug {
		fmt.Printf("info string %s\n", s)
	}
}
