package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/worklog/internal/adapters/turso"
	"github.com/emiliopalmerini/worklog/internal/domain"
	"github.com/emiliopalmerini/worklog/internal/ports"
	"github.com/emiliopalmerini/worklog/internal/productivity"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Store random demo logs",
	Long: `Generate random logs from the demo employee and task pools and store
them. Use --seed for a reproducible set.

Examples:
  worklog seed                      # 50 logs over the last 7 days
  worklog seed --count 200 --days 30
  worklog seed --seed 42`,
	RunE: runSeed,
}

var (
	seedCount int
	seedDays  int
	seedValue uint64
)

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 50, "Number of logs to generate")
	seedCmd.Flags().IntVar(&seedDays, "days", domain.TrendDays, "Spread logs over this many days ending today")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "Random seed (0 picks one)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedCount < 1 {
		return errors.New("--count must be at least 1")
	}
	return withApp(cmd, func(ctx context.Context, app *AppContext) error {
		n, err := seedLogs(ctx, app.Repos.Logs, newRand(seedValue), seedCount, seedDays, app.Logs.Today())
		if err != nil {
			return err
		}
		total, err := turso.NewLogRepository(app.DB).Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored %d logs (%d total)\n", n, total)
		return nil
	})
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func seedLogs(ctx context.Context, repo ports.LogRepository, rng *rand.Rand, n, days int, today time.Time) (int, error) {
	logs := productivity.NewGenerator(rng).Logs(n, days, today)
	if err := repo.AppendAll(ctx, logs); err != nil {
		return 0, fmt.Errorf("failed to store logs: %w", err)
	}
	return len(logs), nil
}
