package insight

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartScheduler runs the analyzer on a fixed interval, with a startup
// delay so the first pass does not race service boot. The returned
// scheduler should be shut down by the caller on exit.
func StartScheduler(a *Analyzer, interval, startupDelay time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			a.Run(context.Background())
		}),
		gocron.WithStartAt(gocron.WithStartDateTime(time.Now().Add(startupDelay))),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}
