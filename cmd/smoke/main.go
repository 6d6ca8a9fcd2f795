// Command smoke plays the flashcard lifecycle against a running server
// for a handful of users and exits non-zero if any of them diverged.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lehrizihabiba/DriveQuiz/internal/domain/phase"
	"github.com/lehrizihabiba/DriveQuiz/internal/identity"
	"github.com/lehrizihabiba/DriveQuiz/internal/infrastructure/config"
	"github.com/lehrizihabiba/DriveQuiz/internal/simulation"
)

func main() {
	var baseURL string
	var phaseArg string
	var users, firstUser, workers, limit int
	var timeout time.Duration
	flag.StringVar(&baseURL, "url", "http://localhost:5000", "server base URL")
	flag.StringVar(&phaseArg, "phase", "1", "phase to quiz on (1-6)")
	flag.IntVar(&users, "users", 1, "number of simulated users")
	flag.IntVar(&firstUser, "first-user", 9000, "id of the first simulated user")
	flag.IntVar(&workers, "workers", 4, "users played in parallel")
	flag.IntVar(&limit, "questions", 0, "questions per quiz (0 = server default)")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall deadline")
	flag.Parse()

	p, err := phase.Parse(phaseArg)
	if err != nil {
		fmt.Printf("phase: %v\n", err)
		os.Exit(2)
	}

	secret, issuer := config.LoadIdentity()
	verifier := identity.NewVerifier(secret, issuer)

	ids := make([]int64, users)
	for i := range ids {
		ids[i] = int64(firstUser + i)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	runner := simulation.NewRunner(simulation.Config{
		BaseURL:   baseURL,
		Phase:     p,
		Questions: limit,
		Users:     ids,
		Workers:   workers,
		Token: func(userID int64) (string, error) {
			return verifier.Issue(userID, timeout)
		},
	}, nil, logger)

	failed := 0
	for _, o := range runner.Run(ctx) {
		status := "ok"
		if !o.OK() {
			status = "FAIL"
			failed++
		}
		fmt.Printf("%-4s user=%d wrong=%d/%d flashcards=%d removed=%d right=%d/%d remaining=%d",
			status, o.UserID, o.WrongScore, o.Total, o.FlashcardsAfter, o.Removed, o.RightScore, o.Total, o.Remaining)
		if o.Err != nil {
			fmt.Printf(" err=%v", o.Err)
		}
		fmt.Println()
	}

	if failed > 0 {
		fmt.Printf("%d of %d user(s) failed\n", failed, users)
		cancel()
		os.Exit(1)
	}
}
