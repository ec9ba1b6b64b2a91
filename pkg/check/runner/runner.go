package runner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/scimtools/scim-checker/pkg/build"
	"github.com/scimtools/scim-checker/pkg/check"
	"github.com/scimtools/scim-checker/pkg/check/catalog"
	"github.com/scimtools/scim-checker/pkg/config"
	"github.com/scimtools/scim-checker/pkg/logging"
	"github.com/scimtools/scim-checker/pkg/scim"
)

type Engine interface {
	Run(context.Context) (check.Accessor, error)
}

type runner struct {
	cfg    *config.Settings
	logger *logrus.Entry
	client *scim.Client
	reg    catalog.Registry

	plan []check.Provider
}

// New sequences the enabled checks in their canonical order. Checks run
// strictly one after another: discovery first (later checks consume what it
// finds), then the miscellaneous and resource phases.
func New(cfg *config.Settings, reg catalog.Registry, client *scim.Client) Engine {
	r := &runner{
		cfg:    cfg,
		reg:    reg,
		client: client,
		logger: logging.NewLogger().WithField(logging.OpField, "runner"),
	}

	for _, id := range config.AllChecks() {
		if !cfg.Checks.IsEnabled(id) {
			continue
		}
		r.AddStep(reg.Get(id)...)
	}
	return r
}

func (r *runner) AddStep(providers ...check.Provider) {
	r.plan = append(r.plan, providers...)
}

func (r *runner) Run(ctx context.Context) (check.Accessor, error) {
	accessor := check.NewAccessor(&check.Report{})

	accessor.WriteToReport(func(rep *check.Report) {
		rep.Host = r.cfg.Host
		rep.CheckerVersion = build.GetVersion()
		rep.StartedAt = time.Now().UTC()
	})

	if r.client == nil {
		return accessor, errors.New("no SCIM client configured")
	}

	for _, p := range r.plan {
		if err := p.Check(ctx, r.client, accessor); err != nil {
			return accessor, err
		}
	}

	accessor.ReadFromReport(func(rep *check.Report) {
		r.logger.WithFields(logrus.Fields{
			"host":    rep.Host,
			"results": len(rep.Results),
			"errors":  rep.HasErrors(),
		}).Info("run complete")
	})

	return accessor, nil
}
