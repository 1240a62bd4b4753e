package services

import (
	"context"
	"fmt"
	"time"

	"diskwarn/internal/models"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/shirou/gopsutil/v3/disk"
)

// DiskLister is the host capability the enumerator needs: list the
// mounted partitions and report usage for a single mount point. The
// rest of the pipeline never talks to the operating system directly.
type DiskLister interface {
	Partitions(ctx context.Context) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, path string) (*disk.UsageStat, error)
}

type gopsutilLister struct{}

func (gopsutilLister) Partitions(ctx context.Context) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, false)
}

func (gopsutilLister) Usage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

// HostDisks returns the gopsutil-backed lister for the running host.
func HostDisks() DiskLister {
	return gopsutilLister{}
}

// ListVolumes samples usage for the requested mount points, or for
// every physical partition when paths is empty. A volume whose usage
// cannot be read within timeout is recorded as a soft failure and the
// run continues; only a failure of partition discovery itself, or
// cancellation of ctx, aborts the whole run.
func ListVolumes(ctx context.Context, lister DiskLister, paths []string, timeout time.Duration, logger log.Logger) ([]models.Volume, []models.SoftFailure, error) {
	type target struct {
		mount  string
		device string
		fstype string
	}

	var targets []target
	if len(paths) > 0 {
		for _, p := range paths {
			targets = append(targets, target{mount: p})
		}
	} else {
		partitions, err := lister.Partitions(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("listing partitions: %w", err)
		}
		for _, p := range partitions {
			targets = append(targets, target{mount: p.Mountpoint, device: p.Device, fstype: p.Fstype})
		}
	}

	var volumes []models.Volume
	var failures []models.SoftFailure

	for _, t := range targets {
		usage, err := queryUsage(ctx, lister, t.mount, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			level.Warn(logger).Log("msg", "skipping volume", "path", t.mount, "err", err)
			failures = append(failures, models.SoftFailure{Path: t.mount, Reason: err.Error()})
			continue
		}
		if usage.Total == 0 {
			// Pseudo filesystems (proc, sysfs, ...) have no meaningful
			// capacity and must not count as healthy at 0%.
			level.Warn(logger).Log("msg", "skipping volume with no capacity", "path", t.mount)
			failures = append(failures, models.SoftFailure{Path: t.mount, Reason: "volume reports zero capacity"})
			continue
		}

		fstype := t.fstype
		if fstype == "" {
			fstype = usage.Fstype
		}
		volumes = append(volumes, models.Volume{
			Path:       t.mount,
			Device:     t.device,
			Filesystem: fstype,
			TotalBytes: usage.Total,
			UsedBytes:  usage.Used,
		})
	}

	return volumes, failures, nil
}

// queryUsage bounds a single usage query. Statfs on a dead network
// mount can hang for minutes; the goroutine is abandoned on timeout and
// the volume becomes a soft failure.
func queryUsage(ctx context.Context, lister DiskLister, path string, timeout time.Duration) (*disk.UsageStat, error) {
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		usage *disk.UsageStat
		err   error
	}
	done := make(chan answer, 1)
	go func() {
		usage, err := lister.Usage(qctx, path)
		done <- answer{usage, err}
	}()

	select {
	case a := <-done:
		return a.usage, a.err
	case <-qctx.Done():
		return nil, qctx.Err()
	}
}
