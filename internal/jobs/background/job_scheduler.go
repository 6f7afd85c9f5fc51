package background

import (
	"context"
	"log"
	"sync"
	"time"

	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/go-co-op/gocron/v2"
)

const jobTimeout = 2 * time.Minute

// JobScheduler runs the periodic maintenance jobs of the catalog server
type JobScheduler struct {
	scheduler gocron.Scheduler
	homeSvc   services.HomeService
	assetRepo repositories.AssetRepository
	store     services.ObjectStore
	warmEvery time.Duration
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers its jobs; warmEvery is usually half the home cache TTL
func NewJobScheduler(homeSvc services.HomeService, assetRepo repositories.AssetRepository,
	store services.ObjectStore, warmEvery time.Duration) (*JobScheduler, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	if warmEvery <= 0 {
		warmEvery = time.Minute
	}

	js := &JobScheduler{
		scheduler: scheduler,
		homeSvc:   homeSvc,
		assetRepo: assetRepo,
		store:     store,
		warmEvery: warmEvery,
		jobs:      make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("INFO: starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("INFO: stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) registerJobs() {
	js.register("home-cache-warm", js.warmEvery, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		js.warmHomeCache(ctx)
	})

	js.register("orphan-asset-report", time.Hour, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := js.reportOrphanAssets(ctx); err != nil {
			log.Printf("WARN: orphan asset report failed: %v", err)
		}
	})

	log.Printf("INFO: registered %d background jobs", len(js.jobs))
}

func (js *JobScheduler) register(name string, every time.Duration, task func()) {
	job, err := js.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("ERROR: failed to create %s job: %v", name, err)
		return
	}

	js.mu.Lock()
	js.jobs[name] = job
	js.mu.Unlock()
}

func (js *JobScheduler) warmHomeCache(ctx context.Context) {
	start := time.Now()
	if _, err := js.homeSvc.Refresh(ctx); err != nil {
		log.Printf("WARN: home cache warm failed: %v", err)
		return
	}
	log.Printf("DEBUG: home cache warmed in %v", time.Since(start))
}

// reportOrphanAssets counts stored objects no catalog record points at. Orphans are only logged, never removed.
func (js *JobScheduler) reportOrphanAssets(ctx context.Context) (int, error) {
	urls, err := js.assetRepo.ListReferencedURLs(ctx)
	if err != nil {
		return 0, err
	}
	referenced := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if key := services.ObjectKeyFromURL(js.store, u); key != "" {
			referenced[key] = struct{}{}
		}
	}

	keys, err := js.store.List(ctx, "")
	if err != nil {
		return 0, err
	}

	orphans := 0
	for _, key := range keys {
		if _, ok := referenced[key]; !ok {
			orphans++
		}
	}

	if orphans > 0 {
		log.Printf("INFO: bucket %s holds %d unreferenced assets out of %d", js.store.Bucket(), orphans, len(keys))
	} else {
		log.Printf("DEBUG: no unreferenced assets in bucket %s", js.store.Bucket())
	}
	return orphans, nil
}
