package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"affiliate_coupons/pkg/logger"

	"go.uber.org/zap"
)

// Notification 待投递的事件通知
type Notification struct {
	Event    string `json:"event"`
	CouponID uint64 `json:"couponId"`
	Retry    int    `json:"-"` // 重试次数
}

// Notifier 异步通知投递器
// 通知是 fire-and-forget 的：投递失败有限次重试，超限丢弃并记日志。
type Notifier struct {
	queue      chan Notification
	retryQueue chan Notification
	urls       []string
	client     *http.Client
	workerNum  int
	maxRetry   int
}

// NewNotifier 创建通知投递器
func NewNotifier(urls []string, workerNum, bufferSize int) *Notifier {
	return &Notifier{
		queue:      make(chan Notification, bufferSize),
		retryQueue: make(chan Notification, bufferSize/2),
		urls:       urls,
		client:     &http.Client{Timeout: time.Second * 10},
		workerNum:  workerNum,
		maxRetry:   3, // 最多重试3次
	}
}

// Start 启动投递协程
func (n *Notifier) Start() {
	for i := 0; i < n.workerNum; i++ {
		go n.worker(i)
	}
	// 启动重试处理协程
	go n.retryWorker()
	logger.L().Info("notifier started", zap.Int("workers", n.workerNum), zap.Int("webhooks", len(n.urls)))
}

func (n *Notifier) worker(id int) {
	for task := range n.queue {
		if err := n.deliver(task); err != nil {
			logger.L().Warn("notification delivery failed",
				zap.Int("worker", id),
				zap.Uint64("couponID", task.CouponID),
				zap.Error(err))

			// 未达到最大重试次数则进重试队列
			if task.Retry < n.maxRetry {
				task.Retry++
				select {
				case n.retryQueue <- task:
				default:
					n.logDropped(task, err)
				}
			} else {
				n.logDropped(task, err)
			}
		}
	}
}

func (n *Notifier) retryWorker() {
	for task := range n.retryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case n.queue <- task:
		default:
			n.logDropped(task, nil)
		}
	}
}

// deliver 把通知 POST 到所有配置的 webhook 地址
func (n *Notifier) deliver(task Notification) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	for _, url := range n.urls {
		resp, err := n.client.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("webhook %s returned status %d", url, resp.StatusCode)
		}
	}
	return nil
}

func (n *Notifier) logDropped(task Notification, err error) {
	logger.L().Error("notification dropped",
		zap.String("event", task.Event),
		zap.Uint64("couponID", task.CouponID),
		zap.Int("retries", task.Retry),
		zap.Error(err))
}

// Enqueue 非阻塞入队，队列满时丢弃
func (n *Notifier) Enqueue(task Notification) {
	if len(n.urls) == 0 {
		return
	}
	select {
	case n.queue <- task:
	default:
		n.logDropped(task, nil)
	}
}
