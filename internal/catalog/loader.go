package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Loader 通过HTTP获取目录文档
type Loader struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewLoader 创建目录加载器；timeout 非正时使用10秒默认值。
func NewLoader(url string, timeout time.Duration, logger *zap.Logger) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load 获取并解析目录文档
func (l *Loader) Load(ctx context.Context) (*Catalog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return Parse(body)
}

// LoadOrEmpty 启动时的降级加载：失败只记日志，返回空目录，
// 商品列表为空但服务照常可用。
func (l *Loader) LoadOrEmpty(ctx context.Context) *Catalog {
	c, err := l.Load(ctx)
	if err != nil {
		l.logger.Warn("catalog load failed, serving empty catalog",
			zap.String("url", l.url),
			zap.Error(err))
		return Empty()
	}
	l.logger.Info("catalog loaded",
		zap.String("url", l.url),
		zap.Int("products", c.Len()))
	return c
}
