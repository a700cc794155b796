package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/gin-contrib/sse"
)

// ==================== 变更广播 ====================

// Hub 设置变更的 SSE 广播中枢
// 广播只是缓存失效信号，订阅端收到后自己重新拉取，不直接信任载荷
type Hub struct {
	mu   sync.Mutex
	subs map[chan sse.Event]struct{}
}

// NewHub 创建广播中枢
func NewHub() *Hub {
	return &Hub{subs: make(map[chan sse.Event]struct{})}
}

// Subscribe 订阅变更事件
// 返回只读通道与取消函数；取消后通道关闭
func (h *Hub) Subscribe() (<-chan sse.Event, func()) {
	ch := make(chan sse.Event, 8)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish 向所有订阅端广播事件，慢订阅端直接丢弃不阻塞
func (h *Hub) Publish(event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- sse.Event{Event: event, Data: string(data)}:
		default:
		}
	}
}

// SubscriberCount 当前订阅数（测试与诊断用）
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
