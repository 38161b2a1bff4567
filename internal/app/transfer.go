package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nikbrunner/organitab/internal/culler"
	"github.com/nikbrunner/organitab/internal/exporter"
	"github.com/nikbrunner/organitab/internal/model"
	"github.com/nikbrunner/organitab/internal/storage"
	"github.com/nikbrunner/organitab/internal/view"
)

// ImportMode chooses how imported data is combined with the current store.
type ImportMode string

const (
	ImportMerge     ImportMode = "merge"
	ImportOverwrite ImportMode = "overwrite"
)

// ParseImportMode validates s.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case ImportMerge, ImportOverwrite:
		return ImportMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown import mode %q (want merge or overwrite)", model.ErrValidation, s)
}

// Export returns the backup document for the current store.
func (a *App) Export(ctx context.Context) ([]byte, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	return exporter.ExportJSON(store)
}

// ExportHTML returns the store as Netscape bookmark HTML.
func (a *App) ExportHTML(ctx context.Context) (string, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return "", err
	}
	if store.IsEmpty() {
		return "", fmt.Errorf("%w: no data found to export", model.ErrValidation)
	}
	return exporter.ExportHTML(store), nil
}

// Import merges imported into the store, or replaces the store with it. The
// result is computed in memory and written in one Set; on a write failure the
// stored data is unchanged.
func (a *App) Import(ctx context.Context, imported *model.Store, mode ImportMode) (model.MergeReport, error) {
	var report model.MergeReport
	err := a.update(ctx, storage.StateKeys, func(s *model.Store) error {
		switch mode {
		case ImportOverwrite:
			*s = *model.Overwrite(imported)
		case ImportMerge:
			var merged *model.Store
			merged, report = model.Merge(s, imported)
			*s = *merged
		default:
			return fmt.Errorf("%w: unknown import mode %q", model.ErrValidation, mode)
		}
		return nil
	})
	if err != nil {
		return model.MergeReport{}, err
	}

	log := a.log.WithField("mode", mode)
	for _, name := range report.RenamedNames() {
		log.WithFields(logrus.Fields{"imported": name, "stored": report.Renamed[name]}).Info("Renamed imported entry")
	}
	if n := len(report.SkippedBookmarks); n > 0 {
		log.WithField("count", n).Info("Skipped duplicate bookmarks")
	}
	if n := len(report.SkippedTodos); n > 0 {
		log.WithField("count", n).Info("Skipped duplicate todos")
	}
	return report, nil
}

// SortOrder returns the stored group sort order.
func (a *App) SortOrder(ctx context.Context) (view.SortOrder, error) {
	s, err := storage.LoadString(ctx, a.kv, storage.KeyGroupSortOrder, string(view.DefaultSortOrder))
	if err != nil {
		return "", storageErr(err)
	}
	order, err := view.ParseSortOrder(s)
	if err != nil {
		a.log.WithField("order", s).Warn("Unknown stored sort order, using default")
		return view.DefaultSortOrder, nil
	}
	return order, nil
}

// SetSortOrder validates and stores the group sort order.
func (a *App) SetSortOrder(ctx context.Context, s string) (view.SortOrder, error) {
	order, err := view.ParseSortOrder(s)
	if err != nil {
		return "", err
	}
	if err := storage.SaveString(ctx, a.kv, storage.KeyGroupSortOrder, string(order)); err != nil {
		return "", storageErr(err)
	}
	return order, nil
}

// View returns the sorted read view of the store.
func (a *App) View(ctx context.Context) (view.View, error) {
	order, err := a.SortOrder(ctx)
	if err != nil {
		return view.View{}, err
	}
	store, err := a.Load(ctx)
	if err != nil {
		return view.View{}, err
	}
	return view.Build(store, order), nil
}

// CheckOptions configures CheckLinks.
type CheckOptions struct {
	Concurrency    int
	Timeout        time.Duration
	ExcludeDomains []string
	OnProgress     culler.ProgressFunc
}

// CheckLinks checks every stored tab and bookmark URL.
func (a *App) CheckLinks(ctx context.Context, opts CheckOptions) ([]culler.Result, error) {
	store, err := a.Load(ctx)
	if err != nil {
		return nil, err
	}
	targets := culler.Targets(store)
	a.log.WithField("urls", len(targets)).Debug("Checking links")
	return culler.CheckURLs(ctx, targets, opts.Concurrency, opts.Timeout, opts.ExcludeDomains, opts.OnProgress), nil
}
