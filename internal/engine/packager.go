package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/piwi3910/StackFit/internal/model"
)

// ErrNoContainers is returned when no candidate container is large enough
// for the boxes.
var ErrNoContainers = errors.New("no container can hold the boxes")

// Packager picks the smallest container that the boxes stack into.
type Packager struct {
	Settings model.Settings
	Logger   *slog.Logger

	// Accept is handed to the brute force search for every candidate.
	Accept AcceptFunc
}

func New(settings model.Settings) *Packager {
	return &Packager{Settings: settings}
}

func (p *Packager) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Pack tries the candidate containers smallest first within the configured
// time budget.
//
// Containers smaller in volume than the boxes, or too small for any single
// box, are skipped. With BinarySearch set the remaining candidates are
// bisected by volume and the smallest one found to fit wins; otherwise they
// are tried in order and the first fit wins.
func (p *Packager) Pack(items []model.BoxItem, containers []model.Extent) (model.PackResult, error) {
	ctx := context.Background()
	if timeout := p.Settings.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return p.PackContext(ctx, items, containers)
}

// PackContext is Pack bounded by ctx instead of the configured time budget.
func (p *Packager) PackContext(ctx context.Context, items []model.BoxItem, containers []model.Extent) (model.PackResult, error) {
	started := time.Now()
	log := p.logger()

	items, err := normalizeItems(items)
	if err != nil {
		return model.PackResult{}, err
	}

	candidates := p.candidates(items, containers)
	result := model.PackResult{Candidates: candidates}
	if len(candidates) == 0 {
		return result, fmt.Errorf("%w: %d boxes, %d containers", ErrNoContainers, model.TotalBoxes(items), len(containers))
	}

	log.Info("packing",
		"boxes", model.TotalBoxes(items),
		"types", len(items),
		"candidates", len(candidates),
		"binary_search", p.Settings.BinarySearch,
		"rotate_3d", p.Settings.Rotate3D)

	bf := &BruteForcePackager{
		Accept:   p.Accept,
		Validate: p.Settings.ValidateLevels,
		Logger:   log,
	}

	try := func(e model.Extent) (*model.Container, error) {
		it, err := NewIterator(items, e, p.Settings.Rotate3D)
		if err != nil {
			return nil, err
		}
		result.Attempts++
		found, _, err := bf.search(ctx, model.NewContainer(e), it)
		return found, err
	}

	if p.Settings.BinarySearch {
		bs := NewBinarySearchIterator(0, len(candidates)-1)
		for bs.HasNext() && ctx.Err() == nil {
			found, err := try(candidates[bs.Mid])
			if err != nil {
				return result, err
			}
			if found != nil {
				result.Container = found
				bs.Lower()
			} else {
				bs.Higher()
			}
		}
	} else {
		for _, e := range candidates {
			if ctx.Err() != nil {
				break
			}
			found, err := try(e)
			if err != nil {
				return result, err
			}
			if found != nil {
				result.Container = found
				break
			}
		}
	}

	result.DeadlineReached = ctx.Err() != nil
	result.Elapsed = time.Since(started)

	if result.Container != nil {
		log.Info("packed",
			"container", result.Container.Extent().String(),
			"levels", len(result.Container.Levels),
			"fill", fmt.Sprintf("%.1f%%", result.Container.FillRatio()*100),
			"attempts", result.Attempts,
			"elapsed", result.Elapsed)
	} else {
		log.Warn("no fit found",
			"attempts", result.Attempts,
			"deadline_reached", result.DeadlineReached,
			"elapsed", result.Elapsed)
	}
	return result, nil
}

// candidates returns the containers that pass the volume and single box
// size checks, sorted by volume ascending.
func (p *Packager) candidates(items []model.BoxItem, containers []model.Extent) []model.Extent {
	volume := model.TotalVolume(items)

	var out []model.Extent
	for _, c := range containers {
		if c.Volume() < volume {
			continue
		}
		if !p.holdsEach(c, items) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Volume() < out[j].Volume()
	})
	return out
}

func (p *Packager) holdsEach(c model.Extent, items []model.BoxItem) bool {
	for _, item := range items {
		b := item.Box
		if p.Settings.Rotate3D {
			if !model.CanHold3D(c, b.Width, b.Depth, b.Height) {
				return false
			}
		} else if !model.CanHold2D(c, b.Width, b.Depth, b.Height) {
			return false
		}
	}
	return true
}

// normalizeItems drops items with no instances and rejects boxes with a
// non-positive side.
func normalizeItems(items []model.BoxItem) ([]model.BoxItem, error) {
	out := make([]model.BoxItem, 0, len(items))
	for _, item := range items {
		if item.Count <= 0 {
			continue
		}
		if !model.NonEmpty(item.Box) {
			return nil, fmt.Errorf("%w: %s", model.ErrInvalidExtent, item.Box)
		}
		out = append(out, item)
	}
	return out, nil
}
