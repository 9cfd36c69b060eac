package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook lọc log entry theo endpoint, HTTP method và log level, cấu hình
// qua LOG_FILTER_* (dùng khi debug để chỉ xem log của một nhóm route).
// Entry bị lọc được đánh dấu bằng field "_filtered"; AsyncHook bỏ qua các
// entry có dấu này thay vì ghi xuống.
type FilterHook struct {
	allowedEndpoints map[string]bool
	allowedMethods   map[string]bool
	allowedLogTypes  map[string]bool

	hasEndpointFilter bool
	hasMethodFilter   bool
	hasLogTypeFilter  bool

	mu sync.RWMutex
}

// NewFilterHook tạo filter hook từ cấu hình logging.
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}

	hook.mu.Lock()
	defer hook.mu.Unlock()

	hook.allowedEndpoints = parseFilter(cfg.FilterEndpoints)
	hook.hasEndpointFilter = len(hook.allowedEndpoints) > 0 && !hook.allowedEndpoints["*"]

	hook.allowedMethods = parseFilter(cfg.FilterMethods)
	hook.hasMethodFilter = len(hook.allowedMethods) > 0 && !hook.allowedMethods["*"]

	hook.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
	hook.hasLogTypeFilter = len(hook.allowedLogTypes) > 0 && !hook.allowedLogTypes["*"]

	return hook
}

// parseFilter tách chuỗi "value1,value2" thành set lowercase.
// Rỗng hoặc "*" nghĩa là cho phép tất cả.
func parseFilter(filterStr string) map[string]bool {
	result := make(map[string]bool)

	if filterStr == "" || filterStr == "*" {
		result["*"] = true
		return result
	}

	for _, v := range strings.Split(filterStr, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			result[strings.ToLower(v)] = true
		}
	}
	return result
}

// Levels trả về các level mà hook này xử lý.
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu "_filtered" lên entry không qua được filter.
// Entry thiếu field endpoint/method thì không bị lọc theo tiêu chí đó.
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.hasLogTypeFilter {
		if !h.allowedLogTypes[strings.ToLower(entry.Level.String())] {
			entry.Data["_filtered"] = true
			return nil
		}
	}

	if h.hasEndpointFilter {
		endpoint, ok := entry.Data["endpoint"].(string)
		if !ok || endpoint == "" {
			endpoint, ok = entry.Data["path"].(string)
		}
		if ok && endpoint != "" {
			endpointLower := strings.ToLower(endpoint)
			matched := false
			for allowed := range h.allowedEndpoints {
				if allowed == "*" || endpointLower == allowed || strings.HasPrefix(endpointLower, allowed) {
					matched = true
					break
				}
			}
			if !matched {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	if h.hasMethodFilter {
		if method, ok := entry.Data["method"].(string); ok && method != "" {
			if !h.allowedMethods[strings.ToLower(method)] {
				entry.Data["_filtered"] = true
				return nil
			}
		}
	}

	return nil
}
