package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/coinfall/game"
)

// stressPhysics is a headless physics stand-in. Blast queries return every
// live coin inside the radius based on registry positions; impulses are
// counted and discarded.
type stressPhysics struct {
	reg      *game.Registry
	impulses int64
}

func (p *stressPhysics) QueryNearby(center game.Vec3, radius float64) []game.Body {
	var out []game.Body
	for _, c := range p.reg.Coins() {
		if c.Pos.Sub(center).Len() < radius {
			out = append(out, game.Body{Coin: c.ID, Pos: c.Pos})
		}
	}
	return out
}

func (p *stressPhysics) ApplyImpulse(id game.CoinID, impulse game.Vec3) {
	p.impulses++
}

var spawnable = []game.CoinType{
	game.CoinPenny, game.CoinGold, game.CoinCopper, game.CoinZinc,
	game.CoinKey, game.CoinChest, game.CoinLucky, game.CoinMidas,
	game.CoinBomb,
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	coinCount := flag.Int("coins", 2000, "The coin population to maintain on the bed.")
	dupFactor := flag.Int("dup-factor", 8, "How many times each synthetic contact is reported per tick.")
	tuningPath := flag.String("tuning", "", "Optional YAML tuning override file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting coin-pusher stress test...")

	tun := game.DefaultTuning()
	if *tuningPath != "" {
		var err error
		if tun, err = game.LoadTuning(*tuningPath); err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
	}

	physics := &stressPhysics{}
	table := game.NewTable(tun, game.DefaultRules(), physics, rand.Uint64())
	physics.reg = table.Registry()
	table.Economy().StartRun()

	log.Printf("Seeding bed with %d coins...\n", *coinCount)
	seed(table, *coinCount, tun)
	log.Println("Seeding complete.")

	report := &Report{
		Duration:  *duration,
		Coins:     *coinCount,
		DupFactor: *dupFactor,

		GCPauseMetrics: *gcPauseMetrics,
		TickTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running contact storm for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalTicks int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			storm(table, *dupFactor)

			tickStart := time.Now()
			rep := table.Tick(1.0 / 60.0)
			tickDuration := time.Since(tickStart)

			report.TickTime.Samples = append(report.TickTime.Samples, tickDuration)
			report.Spawns += int64(len(rep.Spawned))
			report.Removals += int64(len(rep.Removed))
			report.Mutations += int64(len(rep.Mutated))
			totalTicks++

			// Keep the population stable and the registry honest.
			refill(table, *coinCount, tun)
			if totalTicks%60 == 0 && !table.Registry().Consistent() {
				log.Fatalf("Registry inconsistency detected at tick %d", totalTicks)
			}
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.TickTime.Finalize()
	report.Reducer = table.Reducer().Stats()
	report.Stages = table.Stats()
	report.Impulses = physics.impulses
	report.FinalScore = table.Economy().Score()
	report.FinalCash = table.Economy().Cash()
	report.BonusLevel = table.Economy().BonusLevel()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Contact storm finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func seed(table *game.Table, count int, tun *game.Tuning) {
	reg := table.Registry()
	for i := 0; i < count; i++ {
		reg.Spawn(spawnable[rand.IntN(len(spawnable))], randomPos(tun), game.Vec3{})
	}
	reg.DrainLog()
}

func refill(table *game.Table, target int, tun *game.Tuning) {
	reg := table.Registry()
	for reg.Len() < target {
		reg.Spawn(spawnable[rand.IntN(len(spawnable))], randomPos(tun), game.Vec3{})
	}
}

func randomPos(tun *game.Tuning) game.Vec3 {
	return game.Vec3{
		X: (rand.Float64()*2 - 1) * tun.Physics.BedWidth / 2,
		Z: rand.Float64() * tun.Physics.BedDepth,
	}
}

// storm emits one tick's worth of deliberately redundant callbacks: every
// synthetic contact is reported dupFactor times from each side, plus a
// scattering of pusher hits, hard bomb impacts and sensor entries.
func storm(table *game.Table, dupFactor int) {
	coins := table.Registry().Coins()
	if len(coins) < 2 {
		return
	}

	hard := game.Vec3{X: table.Tuning().Physics.BombImpactSpeed * 1.5}
	pairs := len(coins) / 4
	for i := 0; i < pairs; i++ {
		a := coins[rand.IntN(len(coins))]
		b := coins[rand.IntN(len(coins))]
		if a.ID == b.ID {
			continue
		}
		point := game.Mid(a.Pos, b.Pos)
		for d := 0; d < dupFactor; d++ {
			table.HandleContact(a.ID, game.Contact{Kind: game.BodyCoin, Coin: b.ID}, hard, point)
			table.HandleContact(b.ID, game.Contact{Kind: game.BodyCoin, Coin: a.ID}, hard, point)
		}
	}

	for i := 0; i < len(coins)/16; i++ {
		c := coins[rand.IntN(len(coins))]
		for d := 0; d < dupFactor; d++ {
			table.HandleContact(c.ID, game.Contact{Kind: game.BodyPusher}, game.Vec3{Z: 1}, c.Pos)
		}
	}

	for i := 0; i < len(coins)/32; i++ {
		c := coins[rand.IntN(len(coins))]
		for d := 0; d < dupFactor; d++ {
			table.HandleSensor(c.ID)
		}
	}
}
