package hooks

import "sync"

// 扩展点名称
const (
	// ActionCouponCreated 优惠券创建成功后触发，参数为新优惠券 ID (uint64)
	ActionCouponCreated = "coupon.created"
	// FilterTemplateID 返回模板 ID 前过滤，value 为 uint64，附加参数为集成标识
	FilterTemplateID = "coupon.template_id"
	// FilterEditURL 返回编辑链接前过滤，value 为 string，附加参数为集成标识
	FilterEditURL = "coupon.edit_url"
)

// ActionFunc 动作回调，无返回值
type ActionFunc func(args ...interface{})

// FilterFunc 过滤回调，返回（可能被改写的）值
type FilterFunc func(value interface{}, args ...interface{}) interface{}

// Registry 扩展点注册表
// 回调在注册顺序上同步执行；动作的失败不影响调用方。
type Registry struct {
	mu      sync.RWMutex
	actions map[string][]ActionFunc
	filters map[string][]FilterFunc
}

// NewRegistry 创建扩展点注册表
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string][]ActionFunc),
		filters: make(map[string][]FilterFunc),
	}
}

// AddAction 注册动作回调
func (r *Registry) AddAction(name string, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = append(r.actions[name], fn)
}

// DoAction 按注册顺序同步触发动作回调
func (r *Registry) DoAction(name string, args ...interface{}) {
	r.mu.RLock()
	callbacks := r.actions[name]
	r.mu.RUnlock()

	for _, fn := range callbacks {
		fn(args...)
	}
}

// AddFilter 注册过滤回调
func (r *Registry) AddFilter(name string, fn FilterFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[name] = append(r.filters[name], fn)
}

// ApplyFilters 把值依次交给各过滤回调，返回最终值
func (r *Registry) ApplyFilters(name string, value interface{}, args ...interface{}) interface{} {
	r.mu.RLock()
	callbacks := r.filters[name]
	r.mu.RUnlock()

	for _, fn := range callbacks {
		value = fn(value, args...)
	}
	return value
}
