// Package app implements the application layer for cascade.
package app

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"go.trai.ch/cascade/internal/adapters/export" //nolint:depguard // Rendering is an app concern
	"go.trai.ch/cascade/internal/adapters/fingerprint"
	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/cascade/internal/core/ports"
	"go.trai.ch/cascade/internal/engine/lookup"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of checking one declared type.
type Status string

const (
	// StatusOK means the type was built and validated.
	StatusOK Status = "ok"
	// StatusCached means an unchanged declaration was already recorded as valid.
	StatusCached Status = "cached"
	// StatusInvalid means the declaration failed validation.
	StatusInvalid Status = "invalid"
)

// Result reports the check of one declared type.
type Result struct {
	TypeName string
	Status   Status
	Err      error
}

// App represents the main application logic.
type App struct {
	loader  ports.SpecLoader
	graphs  *lookup.Cache[uint64]
	hasher  ports.Hasher
	store   ports.CheckStore
	logger  ports.Logger
	workers int
	now     func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.SpecLoader,
	graphs *lookup.Cache[uint64],
	hasher ports.Hasher,
	store ports.CheckStore,
	logger ports.Logger,
) *App {
	return &App{
		loader:  loader,
		graphs:  graphs,
		hasher:  hasher,
		store:   store,
		logger:  logger,
		workers: runtime.NumCPU(),
		now:     time.Now,
	}
}

// WithWorkers bounds the number of types checked concurrently.
func (a *App) WithWorkers(n int) *App {
	if n > 0 {
		a.workers = n
	}
	return a
}

// Check builds and validates the declared types at path, or only the named ones.
// Results are returned in declaration order. If any type is invalid the results are
// still returned together with ErrCheckFailed.
func (a *App) Check(ctx context.Context, path string, typeNames []string) ([]Result, error) {
	specs, err := a.load(path)
	if err != nil {
		return nil, err
	}

	selected, err := selectSpecs(specs, typeNames)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(selected))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, spec := range selected {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := a.checkOne(spec)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "check aborted")
	}

	failed := 0
	for _, r := range results {
		if r.Status == StatusInvalid {
			failed++
		}
	}
	if failed > 0 {
		return results, zerr.With(zerr.Wrap(domain.ErrCheckFailed, "invalid declarations"), "failed", failed)
	}
	return results, nil
}

// checkOne returns an error only when the outcome cannot be recorded.
func (a *App) checkOne(spec domain.TypeSpec) (Result, error) {
	sum := a.hasher.Fingerprint(spec)
	fp := fingerprint.Format(sum)

	prev, err := a.store.Get(spec.Name)
	if err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, "failed to read check record"), "type", spec.Name)
	}
	if prev != nil && prev.Valid && prev.Fingerprint == fp {
		a.logger.Info(fmt.Sprintf("%s unchanged, skipping", spec.Name))
		return Result{TypeName: spec.Name, Status: StatusCached}, nil
	}

	record := domain.CheckRecord{
		TypeName:    spec.Name,
		Fingerprint: fp,
		Timestamp:   a.now(),
	}
	result := Result{TypeName: spec.Name, Status: StatusOK}

	if _, err := a.graphs.Get(sum, buildFor(spec)); err != nil {
		record.Error = err.Error()
		result.Status = StatusInvalid
		result.Err = err
	} else {
		record.Valid = true
	}

	if err := a.store.Put(record); err != nil {
		return Result{}, zerr.With(zerr.Wrap(err, "failed to write check record"), "type", spec.Name)
	}
	return result, nil
}

// Expand returns the notification cascade raised when property of typeName changes.
func (a *App) Expand(path, typeName, property string) ([]string, error) {
	g, err := a.graph(path, typeName)
	if err != nil {
		return nil, err
	}

	name := domain.NewPropertyName(property)
	if !g.HasProperty(name) {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownProperty, "cannot expand"), "type", typeName)
		return nil, zerr.With(err, "property", property)
	}

	var out []string
	for n := range g.Expand(name) {
		out = append(out, n.String())
	}
	return out, nil
}

// Graph renders the dependency graph of typeName to w.
func (a *App) Graph(path, typeName string, w io.Writer, format export.Format) error {
	g, err := a.graph(path, typeName)
	if err != nil {
		return err
	}
	return export.Write(w, g, format)
}

func (a *App) graph(path, typeName string) (*domain.DependencyGraph, error) {
	specs, err := a.load(path)
	if err != nil {
		return nil, err
	}

	selected, err := selectSpecs(specs, []string{typeName})
	if err != nil {
		return nil, err
	}
	spec := selected[0]

	return a.graphs.Get(a.hasher.Fingerprint(spec), buildFor(spec))
}

func (a *App) load(path string) ([]domain.TypeSpec, error) {
	specs, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return specs, nil
}

func buildFor(spec domain.TypeSpec) lookup.BuildFunc {
	return func() (*domain.DependencyGraph, error) {
		return domain.BuildGraph(spec)
	}
}

// selectSpecs returns every spec when names is empty, otherwise the named specs in
// declaration order.
func selectSpecs(specs []domain.TypeSpec, names []string) ([]domain.TypeSpec, error) {
	if len(names) == 0 {
		return specs, nil
	}

	for _, name := range names {
		if !slices.ContainsFunc(specs, func(s domain.TypeSpec) bool { return s.Name == name }) {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownType, "type not declared"), "type", name)
		}
	}

	return slices.DeleteFunc(slices.Clone(specs), func(s domain.TypeSpec) bool {
		return !slices.Contains(names, s.Name)
	}), nil
}
