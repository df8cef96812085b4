package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
)

var (
	size       = flag.Int("size", domain.DefaultSize, "board size (5-25)")
	black      = flag.String("black", "hard", "difficulty playing first (medium/hard/expert)")
	white      = flag.String("white", "expert", "difficulty playing second (medium/hard/expert)")
	seed       = flag.Int64("seed", 0, "random seed (0 = time based)")
	maxMoves   = flag.Int("max-moves", 0, "stop after this many moves (0 = until the board is full)")
	games      = flag.Int("games", 1, "number of games; colours alternate after each game")
	quiet      = flag.Bool("quiet", false, "only print results, not boards")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *size < domain.MinSize || *size > domain.MaxSize {
		log.Fatalf("size must be between %d and %d", domain.MinSize, domain.MaxSize)
	}
	first, err := bot.ParseDifficulty(*black)
	if err != nil {
		log.Fatalf("-black: %v", err)
	}
	second, err := bot.ParseDifficulty(*white)
	if err != nil {
		log.Fatalf("-white: %v", err)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	engine := bot.NewEngine(bot.WithRand(rand.New(rand.NewSource(*seed))))
	log.Printf("Self-play: %s vs %s on %dx%d, seed %d", first, second, *size, *size, *seed)

	ratings := domain.Ratings{}
	firstName, secondName := string(first), string(second)
	if first == second {
		secondName += "#2"
	}
	sides := [2]bot.Difficulty{first, second}
	labels := [2]string{firstName, secondName}

	for g := 0; g < *games; g++ {
		if g > 0 {
			sides[0], sides[1] = sides[1], sides[0]
			labels[0], labels[1] = labels[1], labels[0]
		}

		game, elapsed := play(engine, sides, *size, *maxMoves, !*quiet)

		winner := ""
		result := "unfinished"
		switch game.Status {
		case domain.StatusWon:
			winner = labels[game.Winner-1]
			result = fmt.Sprintf("%s (player %d) wins", winner, game.Winner)
		case domain.StatusDraw:
			result = "draw"
		}
		if game.Status != domain.StatusActive {
			ratings.Record(labels[0], labels[1], winner)
		}

		fmt.Printf("Game %d: %s vs %s: %s after %d moves in %v\n",
			g+1, labels[0], labels[1], result, game.MoveCount, elapsed.Round(time.Millisecond))
	}

	if *games > 1 {
		fmt.Printf("Ratings: %s=%d %s=%d\n",
			firstName, ratings.Get(firstName), secondName, ratings.Get(secondName))
	}
}

// play runs one engine-vs-engine game. sides[0] holds Player1.
func play(engine *bot.Engine, sides [2]bot.Difficulty, size, maxMoves int, verbose bool) (*domain.Game, time.Duration) {
	game := domain.NewGame(size)
	start := time.Now()

	for !game.IsFinished() {
		if maxMoves > 0 && game.MoveCount >= maxMoves {
			break
		}
		player := game.CurrentPlayer
		difficulty := sides[player-1]

		pos, ok := engine.FindBestMove(game.Board, player, player.Opponent(), difficulty)
		if !ok {
			break
		}
		if err := game.MakeMove(player, pos); err != nil {
			log.Fatalf("engine produced an illegal move %+v for player %d: %v", pos, player, err)
		}

		if verbose {
			fmt.Printf("Move %d: player %d (%s) -> (%d,%d)\n%s\n", game.MoveCount, player, difficulty, pos.Row, pos.Col, game.Board)
		}
	}
	return game, time.Since(start)
}
