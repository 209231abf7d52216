package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/enomcdcdash/enomdash/config"
	"github.com/enomcdcdash/enomdash/engine"
	"github.com/enomcdcdash/enomdash/loader"
	"github.com/enomcdcdash/enomdash/logger"
	"github.com/enomcdcdash/enomdash/metrics"
	"github.com/enomcdcdash/enomdash/schema"
	"github.com/enomcdcdash/enomdash/session"
)

// ============================================================================
// DASHBOARD: Session + cached datasets + engine, one call per interaction
// ============================================================================
// Render(view, request):
//   1. Resolve the view and its source from config
//   2. Load (or reuse) the dataset through the cache
//   3. Merge the request into the session's stored selection and search
//   4. engine.Execute with the session's picker and the reference year
//   5. Record metrics, remember the resolved selection
// ============================================================================

// ErrUnknownView is returned for a view name that is not configured.
var ErrUnknownView = errors.New("unknown view")

// Request carries the widget state of one interaction. Both maps are
// overrides: dimensions left out keep their stored values.
type Request struct {
	Selections engine.Selection  `json:"selections"`
	Search     map[string]string `json:"search"`
}

// Dashboard is safe for concurrent use.
type Dashboard struct {
	cfg     *config.Config
	cache   *loader.Cache
	session *session.Session
	log     logger.Logger
}

// Option configures a Dashboard.
type Option func(*Dashboard)

// WithCache replaces the dataset cache.
func WithCache(c *loader.Cache) Option {
	return func(d *Dashboard) { d.cache = c }
}

// WithSession replaces the session.
func WithSession(s *session.Session) Option {
	return func(d *Dashboard) { d.session = s }
}

// New wires a dashboard from configuration.
func New(cfg *config.Config, log logger.Logger, opts ...Option) *Dashboard {
	if log == nil {
		log = logger.NewNop()
	}
	d := &Dashboard{cfg: cfg, log: log}
	for _, opt := range opts {
		opt(d)
	}
	if d.cache == nil {
		d.cache = loader.NewCache(log, cfg.LoaderOptions()...)
	}
	if d.session == nil {
		d.session = session.New(cfg.Server.DefaultTab, cfg.Data.Seed)
	}
	return d
}

func (d *Dashboard) Config() *config.Config    { return d.cfg }
func (d *Dashboard) Session() *session.Session { return d.session }
func (d *Dashboard) Views() []schema.View      { return d.cfg.Views }

// View returns a configured view.
func (d *Dashboard) View(name string) (schema.View, error) {
	v, ok := d.cfg.View(name)
	if !ok {
		return schema.View{}, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Dataset returns the view and its cached dataset.
func (d *Dashboard) Dataset(name string) (schema.View, *engine.Dataset, error) {
	v, err := d.View(name)
	if err != nil {
		return schema.View{}, nil, err
	}
	src, ok := d.cfg.Source(name)
	if !ok {
		return v, nil, fmt.Errorf("view %q has no source", name)
	}
	ds, err := d.cache.Get(src)
	if err != nil {
		return v, nil, err
	}
	return v, ds, nil
}

// SetTab switches the session to a configured view.
func (d *Dashboard) SetTab(name string) error {
	if _, err := d.View(name); err != nil {
		return err
	}
	d.session.SetTab(name)
	return nil
}

// Render runs one interaction against a view and stores the resolved
// selection in the session. Empty results come back as a Result with
// Empty set and a nil error.
func (d *Dashboard) Render(name string, req Request) (*engine.Result, error) {
	start := time.Now()

	v, ds, err := d.Dataset(name)
	if err != nil {
		if !errors.Is(err, ErrUnknownView) {
			metrics.RecordRun(name, metrics.OutcomeError, time.Since(start))
		}
		return nil, err
	}

	sel := d.session.Selection(name, req.Selections)
	search := d.session.Search(name, req.Search)

	result, err := engine.Execute(v.Spec(), ds, sel, d.engineOptions(search)...)
	metrics.RecordRun(name, outcome(result, err), time.Since(start))
	if result == nil {
		return nil, err
	}

	metrics.RecordDropped(name, result.Dropped)
	for _, dim := range result.Cascade.Dimensions {
		if dim.Reset {
			metrics.RecordStale(name, dim.Key)
		}
	}

	d.session.SetTab(name)
	d.session.Remember(name, result.Selection, search)
	return result, err
}

// Options evaluates the cascade only, without storing anything. Random-reset
// dimensions draw from a preview of the session's random source, so they
// land on the member the next Render would pick.
func (d *Dashboard) Options(name string, req Request) (*engine.Cascade, error) {
	v, ds, err := d.Dataset(name)
	if err != nil {
		return nil, err
	}
	sel := d.session.Selection(name, req.Selections)
	search := d.session.Search(name, req.Search)
	opts := append(d.engineOptions(search), engine.WithPicker(d.session.PreviewPicker()))
	return engine.ComputeOptions(ds, v.Spec().Hierarchy, sel, opts...), nil
}

// Export renders the view and returns the table to write out: the KPI
// table itself, or the chart's points laid out one row per point.
// An empty render returns an error wrapping engine.ErrEmptyResult.
func (d *Dashboard) Export(name string, req Request) (*engine.TableData, error) {
	result, err := d.Render(name, req)
	if err != nil {
		return nil, err
	}
	if result.Empty {
		return nil, fmt.Errorf("%w: %s", engine.ErrEmptyResult, result.Reply)
	}
	if result.TableData != nil {
		return result.TableData, nil
	}
	v, _ := d.View(name)
	return engine.BuildSeriesTable(v.Spec(), result.Title, result.Points), nil
}

// Inspect checks a view's dataset against the view definition.
func (d *Dashboard) Inspect(name string) (*schema.Report, error) {
	v, ds, err := d.Dataset(name)
	if err != nil {
		return nil, err
	}
	return schema.Inspect(v, ds), nil
}

// Invalidate drops every cached dataset and returns how many were held.
func (d *Dashboard) Invalidate() int {
	n := d.cache.InvalidateAll()
	d.log.Info("dataset cache invalidated", "entries", n)
	return n
}

func (d *Dashboard) engineOptions(search map[string]string) []engine.Option {
	return []engine.Option{
		engine.WithSearch(search),
		engine.WithPicker(d.session.Picker()),
		engine.WithReferenceYear(d.cfg.Data.ReferenceYear),
		engine.WithLogger(d.log),
	}
}

func outcome(result *engine.Result, err error) string {
	var fe *engine.FormatError
	switch {
	case errors.As(err, &fe):
		return metrics.OutcomeFormatError
	case err != nil:
		return metrics.OutcomeError
	case result != nil && result.Empty:
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeOK
	}
}
