package cache

import (
	"encoding/json"
	"strconv"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/entity/expense"
	"max.ks1230/expense-service/internal/logger"
)

const keyPrefix = "summary:"

type config interface {
	Hosts() []string
	SummaryTTLSeconds() int32
}

// MemcacheClient caches per-user expense summaries. Entries are written by
// Stats on a miss and by the worker after events; every mutation deletes
// the owner's entry first.
type MemcacheClient struct {
	client *memcache.Client
	ttl    int32
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{client: mc, ttl: config.SummaryTTLSeconds()}, mc.Ping()
}

func formatKey(ownerID int64) string {
	return keyPrefix + strconv.FormatInt(ownerID, 10)
}

func (mc *MemcacheClient) GetSummary(ownerID int64) (expense.Summary, bool) {
	item, err := mc.client.Get(formatKey(ownerID))
	if errors.Is(err, memcache.ErrCacheMiss) {
		return expense.Summary{}, false
	}
	if err != nil {
		logger.Warn("cannot read summary cache", zap.Int64("ownerID", ownerID), zap.Error(err))
		return expense.Summary{}, false
	}

	var summary expense.Summary
	if err = json.Unmarshal(item.Value, &summary); err != nil {
		logger.Warn("corrupt summary cache entry", zap.Int64("ownerID", ownerID), zap.Error(err))
		return expense.Summary{}, false
	}
	return summary, true
}

func (mc *MemcacheClient) SetSummary(ownerID int64, summary expense.Summary) error {
	value, err := json.Marshal(summary)
	if err != nil {
		return errors.Wrap(err, "cache summary")
	}
	return mc.client.Set(&memcache.Item{
		Key:        formatKey(ownerID),
		Value:      value,
		Expiration: mc.ttl,
	})
}

func (mc *MemcacheClient) InvalidateSummary(ownerID int64) error {
	err := mc.client.Delete(formatKey(ownerID))
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
