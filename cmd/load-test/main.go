// Command load-test drives the user listing endpoint with concurrent virtual
// users and reports throughput and latency percentiles.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/upb/dashboard-api/client"
	"github.com/upb/dashboard-api/internal/observability"
	"github.com/upb/dashboard-api/models"
	"github.com/upb/dashboard-api/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	baseURL  string
	email    string
	users    int
	duration time.Duration
	minWait  time.Duration
	maxWait  time.Duration
	page     models.PageRequest
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("load-test", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.baseURL, "base-url", "http://localhost:5000", "API base url")
	fs.StringVar(&opts.email, "email", "parhanganteng@example.com", "email each virtual user logs in with")
	fs.IntVar(&opts.users, "users", 10, "number of virtual users")
	fs.DurationVar(&opts.duration, "duration", 30*time.Second, "test duration")
	fs.DurationVar(&opts.minWait, "min-wait", time.Second, "minimum wait between requests")
	fs.DurationVar(&opts.maxWait, "max-wait", 2*time.Second, "maximum wait between requests")
	fs.IntVar(&opts.page.Page, "page", models.DefaultPage, "page parameter")
	fs.IntVar(&opts.page.Limit, "limit", models.DefaultLimit, "limit parameter")
	logLevel := fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if err := opts.validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := observability.NewLogger(*logLevel, "console")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	c, err := client.New(opts.baseURL)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stdout, "running %d users against %s for %s\n", opts.users, opts.baseURL, opts.duration)
	s, err := runLoad(ctx, c, opts, logger)
	if err != nil {
		logger.Error("load test failed", zap.Error(err))
		return 1
	}

	fmt.Fprintln(stdout, "---- results ----")
	printStats(stdout, s)
	return 0
}

func (o options) validate() error {
	switch {
	case o.users <= 0:
		return errors.New("users must be > 0")
	case o.duration <= 0:
		return errors.New("duration must be > 0")
	case o.minWait < 0 || o.maxWait < o.minWait:
		return errors.New("wait bounds must satisfy 0 <= min-wait <= max-wait")
	case o.page.Page < 1 || o.page.Limit < 1:
		return errors.New("page and limit must be >= 1")
	}
	if err := utils.ValidateVar(o.email, "required,email"); err != nil {
		return fmt.Errorf("invalid email %q", o.email)
	}
	return nil
}

type recorder struct {
	mu            sync.Mutex
	latencies     []time.Duration
	failures      int64
	loginFailures int64
}

func (r *recorder) observe(d time.Duration, failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latencies = append(r.latencies, d)
	if failed {
		r.failures++
	}
}

func (r *recorder) loginFailed() {
	r.mu.Lock()
	r.loginFailures++
	r.mu.Unlock()
}

func runLoad(ctx context.Context, c *client.Client, opts options, logger *zap.Logger) (stats, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.duration)
	defer cancel()

	rec := &recorder{}
	g, ctx := errgroup.WithContext(ctx)

	start := time.Now()
	for i := 0; i < opts.users; i++ {
		worker := i
		g.Go(func() error {
			return virtualUser(ctx, worker, c, opts, rec, logger)
		})
	}
	if err := g.Wait(); err != nil {
		return stats{}, err
	}
	total := time.Since(start)

	s := computeStats(total, rec.latencies, rec.failures)
	s.loginFailures = rec.loginFailures
	return s, nil
}

// virtualUser logs in once and then lists users until ctx is done.
// A failed login skips the user's requests.
func virtualUser(ctx context.Context, worker int, c *client.Client, opts options, rec *recorder, logger *zap.Logger) error {
	tok, err := c.Login(ctx, opts.email)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		rec.loginFailed()
		logger.Warn("login failed, skipping user", zap.Int("worker", worker), zap.Error(err))
		return nil
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
	for {
		t0 := time.Now()
		_, err := c.ListUsers(ctx, tok, opts.page)
		d := time.Since(t0)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			logger.Debug("request failed", zap.Int("worker", worker), zap.Error(err))
		}
		rec.observe(d, err != nil)

		if !sleep(ctx, jitter(r, opts.minWait, opts.maxWait)) {
			return nil
		}
	}
}

func jitter(r *rand.Rand, lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(r.Int63n(int64(hi-lo)+1))
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type stats struct {
	total         time.Duration
	requests      int
	failures      int64
	loginFailures int64
	p50           time.Duration
	p95           time.Duration
	p99           time.Duration
	reqPerS       float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) stats {
	if len(samples) == 0 {
		return stats{total: total, failures: failures}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	s := stats{
		total:    total,
		requests: len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
	}
	if total > 0 {
		s.reqPerS = float64(len(samples)) / total.Seconds()
	}
	return s
}

// percentile expects sorted samples
func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(w io.Writer, s stats) {
	fmt.Fprintf(w, "requests=%d failures=%d login_failures=%d total=%s req/sec=%.1f p50=%s p95=%s p99=%s\n",
		s.requests,
		s.failures,
		s.loginFailures,
		s.total.Round(time.Millisecond),
		s.reqPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
