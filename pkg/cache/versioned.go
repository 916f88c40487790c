package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VersionedCache 按命名空间版本化的缓存
//
// 每个命名空间持有一个"版本号"（last_changed）。缓存键由
// 查询指纹和当前版本号拼接而成，命名空间下发生任何写操作时
// 调用 Bump 换一个新版本号，旧版本号下的所有条目从此不再被
// 查到，靠 TTL 自然过期，无需逐条清理。
type VersionedCache struct {
	cache CacheService
	ttl   time.Duration
}

// NewVersionedCache 创建版本化缓存，ttl 为查询结果条目的过期时长
func NewVersionedCache(cache CacheService, ttl time.Duration) *VersionedCache {
	return &VersionedCache{
		cache: cache,
		ttl:   ttl,
	}
}

func generationKey(namespace string) string {
	return namespace + ":last_changed"
}

// newGeneration 生成新版本号
// 纳秒时间戳加随机后缀：同一时间窗口内的并发 Bump 也能区分开。
// 版本号只是新鲜度标记，偶发的覆盖丢失不影响正确性。
func newGeneration() string {
	return fmt.Sprintf("%d.%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// Generation 返回命名空间的当前版本号，首次读取时惰性初始化
func (v *VersionedCache) Generation(ctx context.Context, namespace string) string {
	key := generationKey(namespace)

	var gen string
	if err := v.cache.Get(ctx, key, &gen); err == nil && gen != "" {
		return gen
	}

	// 未初始化：用 Add 写入，并发初始化时以先写入者为准
	gen = newGeneration()
	_ = v.cache.Add(ctx, key, gen, 0)

	var stored string
	if err := v.cache.Get(ctx, key, &stored); err == nil && stored != "" {
		return stored
	}
	return gen
}

// Bump 换新版本号，使命名空间下所有已缓存的查询结果失效
func (v *VersionedCache) Bump(ctx context.Context, namespace string) error {
	return v.cache.Set(ctx, generationKey(namespace), newGeneration(), 0)
}

// CurrentKey 返回指纹在当前版本下的完整缓存键
func (v *VersionedCache) CurrentKey(ctx context.Context, namespace, fingerprint string) string {
	return namespace + ":" + fingerprint + ":" + v.Generation(ctx, namespace)
}

// Get 按指纹读取当前版本下的缓存值
func (v *VersionedCache) Get(ctx context.Context, namespace, fingerprint string, dest interface{}) error {
	return v.cache.Get(ctx, v.CurrentKey(ctx, namespace, fingerprint), dest)
}

// Add 按指纹写入当前版本下的缓存值（不覆盖已有条目）
func (v *VersionedCache) Add(ctx context.Context, namespace, fingerprint string, value interface{}) error {
	return v.cache.Add(ctx, v.CurrentKey(ctx, namespace, fingerprint), value, v.ttl)
}

// Fingerprint 计算查询参数的稳定指纹
// 参数须先做归一化（填默认值），保证等价查询得到同一指纹。
func Fingerprint(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Marshal 失败只可能是不可序列化的参数类型，属编程错误
		return fmt.Sprintf("unhashable:%T", v)
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}
