// Command bench runs a synthetic Zipf workload against a Shared cache and
// exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/minicache/cache"
	pmet "github.com/IvanBrykalov/minicache/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		capacity = flag.Int("cap", 100_000, "cache capacity (entries)")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "number of worker goroutines")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr (e.g. :8080); empty = disabled")
	)
	flag.Parse()

	if *capacity <= 0 || *keys <= 0 {
		log.Fatalf("cap and keys must be > 0")
	}

	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Metrics (default registry, served on DefaultServeMux) ----
	metrics := pmet.New(nil, "minicache", "bench", nil)
	metrics.SetCapacity(*capacity)
	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	c := cache.NewShared(cache.Options{Capacity: *capacity, Metrics: metrics})

	// ---- Preload to get a realistic hit-rate ----
	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}
	for i := 0; i < pl; i++ {
		if err := c.Push([]byte("k:"+strconv.Itoa(i)), []byte("v"+strconv.Itoa(i))); err != nil {
			log.Fatalf("preload: %v", err)
		}
	}

	readPctVal := *readPct
	keysMax := uint64(*keys - 1)
	seedBase := *seed
	workersN := *workers
	if workersN <= 0 {
		workersN = 1
	}

	// ---- Load generation ----
	var reads, writes, total uint64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workersN; w++ {
		g.Go(func() error {
			// rand.Rand is not goroutine-safe: one RNG + Zipf per worker.
			r := rand.New(rand.NewSource(seedBase + int64(w)*9973))
			z := rand.NewZipf(r, *zipfS, *zipfV, keysMax)

			for gctx.Err() == nil {
				k := []byte("k:" + strconv.FormatUint(z.Uint64(), 10))
				atomic.AddUint64(&total, 1)
				if int(r.Int31n(100)) < readPctVal {
					atomic.AddUint64(&reads, 1)
					if _, _, err := c.Get(k); err != nil {
						return err
					}
				} else {
					atomic.AddUint64(&writes, 1)
					if err := c.Push(k, []byte("v"+strconv.Itoa(r.Int()))); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("workload: %v", err)
	}
	elapsed := time.Since(start)

	// ---- Report ----
	st := c.Stats()
	ops := atomic.LoadUint64(&total)
	hitRate := 0.0
	if lookups := st.Hits + st.Misses; lookups > 0 {
		hitRate = float64(st.Hits) / float64(lookups) * 100
	}

	fmt.Printf("cap=%d workers=%d keys=%d dur=%v seed=%d\n",
		*capacity, workersN, *keys, elapsed, seedBase)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		ops, float64(ops)/elapsed.Seconds(), atomic.LoadUint64(&reads), atomic.LoadUint64(&writes))
	fmt.Printf("hits=%d  misses=%d  evictions=%d  hit-rate=%.2f%%\n",
		st.Hits, st.Misses, st.Evictions, hitRate)
	fmt.Printf("Len()=%d\n", st.Len)
}
