package database

import (
	"time"

	"affiliate_coupons/pkg/logger"
	"affiliate_coupons/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PoolMonitor 连接池监控器，周期性把连接池状态上报到指标
type PoolMonitor struct {
	db       *gorm.DB
	interval time.Duration
	stopCh   chan struct{}
}

// NewPoolMonitor 创建连接池监控器并启动采集
func NewPoolMonitor(db *gorm.DB, interval time.Duration) *PoolMonitor {
	pm := &PoolMonitor{
		db:       db,
		interval: interval,
		stopCh:   make(chan struct{}),
	}

	go pm.startMonitoring()

	return pm
}

func (pm *PoolMonitor) startMonitoring() {
	ticker := time.NewTicker(pm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.collectStats()
		case <-pm.stopCh:
			return
		}
	}
}

func (pm *PoolMonitor) collectStats() {
	sqlDB, err := pm.db.DB()
	if err != nil {
		logger.L().Warn("failed to get database connection for pool stats", zap.Error(err))
		return
	}

	stats := sqlDB.Stats()
	metrics.GetGlobalCollector().UpdateDBPoolStats(stats.InUse, stats.Idle)
}

// Close 关闭监控器
func (pm *PoolMonitor) Close() {
	close(pm.stopCh)
}
