// Package sweep reconciles the upload tree against the set of files
// referenced by identities: unreferenced files are deleted and files left in
// the upload root are relocated into their purpose subdirectory.
package sweep

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/api/metrics"
	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const defaultGrace = 60 * time.Second

// Result holds the counts of one sweep run. Per-file errors never abort the
// sweep; they are counted here and logged.
type Result struct {
	Deleted   int
	Relocated int
	Skipped   int
	Errors    int
}

// PathLister yields every stored path referenced by an identity. Satisfied by
// the user repository.
type PathLister interface {
	ListUploadPaths(ctx context.Context) ([]string, error)
}

// Sweeper runs the reconciliation on a fixed interval.
type Sweeper struct {
	users PathLister
	store ports.FileStore
	cron  *cron.Cron
	every time.Duration
	grace time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

// New creates a Sweeper firing every interval. Files modified within grace of
// the sweep are left alone so an in-flight upload whose reference has not
// committed yet is never collected.
func New(users PathLister, store ports.FileStore, interval, grace time.Duration, log zerolog.Logger) *Sweeper {
	if grace <= 0 {
		grace = defaultGrace
	}
	return &Sweeper{
		users: users,
		store: store,
		cron:  cron.New(),
		every: interval,
		grace: grace,
		now:   time.Now,
		log:   log,
	}
}

// Start registers the cron job and runs one sweep immediately so a restart
// does not wait a full interval to reclaim orphans.
func (s *Sweeper) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.every)
	if _, err := s.cron.AddFunc(spec, func() { s.Run(ctx) }); err != nil {
		return fmt.Errorf("sweep: register cron: %w", err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", spec).Msg("sweeper started")

	go s.Run(ctx)
	return nil
}

// Stop shuts the scheduler down.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("sweeper stopped")
}

// Run executes one full sweep and reports its counts.
func (s *Sweeper) Run(ctx context.Context) Result {
	started := s.now()
	var res Result

	paths, err := s.users.ListUploadPaths(ctx)
	if err != nil {
		// Without the referenced set nothing may be deleted.
		s.log.Error().Err(err).Msg("sweep aborted: could not load referenced paths")
		res.Errors++
		metrics.SweepErrorsTotal.Inc()
		return res
	}

	referenced := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		referenced[path.Base(p)] = struct{}{}
	}

	for _, purpose := range []domain.Purpose{domain.PurposeAvatar, domain.PurposeResume} {
		s.sweepDir(purpose.Subdir(), referenced, &res)
	}
	s.relocateStrays(&res)

	metrics.SweepDuration.Observe(s.now().Sub(started).Seconds())
	s.log.Info().
		Int("deleted", res.Deleted).
		Int("relocated", res.Relocated).
		Int("skipped", res.Skipped).
		Int("errors", res.Errors).
		Dur("took", s.now().Sub(started)).
		Msg("sweep complete")

	return res
}

// sweepDir deletes unreferenced files in one purpose directory.
func (s *Sweeper) sweepDir(dir string, referenced map[string]struct{}, res *Result) {
	entries, err := s.store.ListDir(dir)
	if err != nil {
		s.log.Warn().Err(err).Str("dir", dir).Msg("sweep: cannot list directory")
		res.Errors++
		metrics.SweepErrorsTotal.Inc()
		return
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") || strings.HasSuffix(e.Name, ".part") {
			res.Skipped++
			continue
		}
		if _, ok := referenced[e.Name]; ok {
			continue
		}
		if s.now().Sub(e.ModTime) < s.grace {
			// Possibly an upload whose reference commit is in flight.
			res.Skipped++
			continue
		}

		if err := s.store.Remove(dir + "/" + e.Name); err != nil {
			s.log.Warn().Err(err).Str("file", e.Name).Msg("sweep: delete failed")
			res.Errors++
			metrics.SweepErrorsTotal.Inc()
			continue
		}
		res.Deleted++
		metrics.SweepDeletedTotal.Inc()
		s.log.Debug().Str("dir", dir).Str("file", e.Name).Msg("sweep: orphan deleted")
	}
}

// relocateStrays moves files sitting directly in the upload root into the
// purpose subdirectory their extension belongs to.
func (s *Sweeper) relocateStrays(res *Result) {
	entries, err := s.store.ListDir("")
	if err != nil {
		s.log.Warn().Err(err).Msg("sweep: cannot list upload root")
		res.Errors++
		metrics.SweepErrorsTotal.Inc()
		return
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") {
			res.Skipped++
			continue
		}

		dir, ok := subdirForExt(strings.ToLower(path.Ext(e.Name)))
		if !ok {
			res.Skipped++
			continue
		}
		if s.store.Exists(dir + "/" + e.Name) {
			// Same-named file already organized; leave the stray alone.
			res.Skipped++
			continue
		}

		if err := s.store.Relocate(e.Name, dir); err != nil {
			s.log.Warn().Err(err).Str("file", e.Name).Msg("sweep: relocate failed")
			res.Errors++
			metrics.SweepErrorsTotal.Inc()
			continue
		}
		res.Relocated++
		metrics.SweepRelocatedTotal.Inc()
		s.log.Debug().Str("file", e.Name).Str("dir", dir).Msg("sweep: stray relocated")
	}
}

func subdirForExt(ext string) (string, bool) {
	for _, purpose := range []domain.Purpose{domain.PurposeAvatar, domain.PurposeResume} {
		policy, _ := domain.PolicyFor(purpose)
		for _, allowed := range policy.Extensions {
			if ext == allowed {
				return purpose.Subdir(), true
			}
		}
	}
	return "", false
}
