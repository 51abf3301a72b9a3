package metrics

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/log"
	"github.com/filecoin-project/go-clock"
	"github.com/prometheus/client_golang/prometheus"
)

// DiskSpaceCollector tracks the disk space used by the engine database.
type DiskSpaceCollector struct {
	dataDir  string
	interval time.Duration
	clock    clock.Clock
	logger   log.Logger

	diskSpaceBytes *prometheus.GaugeVec
}

// NewDiskSpaceCollector registers the disk space gauge with reg.
func NewDiskSpaceCollector(reg prometheus.Registerer, dataDir string, interval time.Duration, clk clock.Clock, logger log.Logger) (*DiskSpaceCollector, error) {
	c := &DiskSpaceCollector{
		dataDir:  dataDir,
		interval: interval,
		clock:    clk,
		logger:   logger.With("module", "disk_space_metrics"),
		diskSpaceBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "zxn_disk_space_bytes",
				Help: "Disk space used by the engine database directory in bytes",
			},
			[]string{"database"},
		),
	}

	if err := reg.Register(c.diskSpaceBytes); err != nil {
		return nil, err
	}
	return c, nil
}

// Run updates the gauge immediately and then once per interval until ctx is
// done.
func (c *DiskSpaceCollector) Run(ctx context.Context) {
	ticker := c.clock.Ticker(c.interval)
	defer ticker.Stop()

	c.Update()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Update()
		}
	}
}

// Update calculates the size of the database directory and updates the
// gauge.
func (c *DiskSpaceCollector) Update() {
	db := filepath.Base(c.dataDir)
	size, err := c.calculateDirSize(c.dataDir)
	if err != nil {
		// the directory might not exist yet, e.g. with the memdb backend
		c.logger.Debug("Failed to calculate disk space", "database", db, "error", err)
		c.diskSpaceBytes.WithLabelValues(db).Set(0)
		return
	}
	c.diskSpaceBytes.WithLabelValues(db).Set(float64(size))
}

// calculateDirSize recursively calculates the total size of a directory
func (c *DiskSpaceCollector) calculateDirSize(dirPath string) (int64, error) {
	if _, err := os.Stat(dirPath); err != nil {
		return 0, err
	}

	var size int64
	err := filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if !os.IsNotExist(err) {
				c.logger.Debug("Error accessing path during disk space calculation", "path", path, "error", err)
			}
			return nil
		}

		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})

	return size, err
}
