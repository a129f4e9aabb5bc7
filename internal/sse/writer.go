package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"career-coach-go/internal/model"
)

// HeartbeatInterval 心跳间隔
const HeartbeatInterval = 15 * time.Second

// ErrStreamingUnsupported ResponseWriter不支持Flush
var ErrStreamingUnsupported = errors.New("streaming not supported")

// Writer SSE写入器
type Writer struct {
	w         http.ResponseWriter
	flusher   http.Flusher
	mu        sync.Mutex
	state     model.AnalysisProgress
	closed    bool
	stopHeart chan struct{}
	heartDone chan struct{}
	stopOnce  sync.Once
}

// NewWriter 设置SSE响应头并启动心跳
func NewWriter(w http.ResponseWriter, username string) (*Writer, error) {
	return newWriter(w, username, HeartbeatInterval)
}

func newWriter(w http.ResponseWriter, username string, interval time.Duration) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	writer := &Writer{
		w:       w,
		flusher: flusher,
		state: model.AnalysisProgress{
			Status:   "analyzing",
			Username: username,
		},
		stopHeart: make(chan struct{}),
		heartDone: make(chan struct{}),
	}

	// 启动心跳
	go writer.heartbeat(interval)

	return writer, nil
}

// heartbeat 定期发送心跳保持连接
func (s *Writer) heartbeat(interval time.Duration) {
	defer close(s.heartDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.closed {
				s.mu.Unlock()
				return
			}
			// 保持当前进度但标记为heartbeat
			heartbeat := model.AnalysisProgress{
				Status:        "heartbeat",
				Username:      s.state.Username,
				Overall:       s.state.Overall,
				CurrentAction: s.state.CurrentAction,
			}
			s.write(heartbeat)
			s.mu.Unlock()
		case <-s.stopHeart:
			return
		}
	}
}

// Close 停止心跳并等待心跳goroutine退出，之后不再写入ResponseWriter；可重复调用
func (s *Writer) Close() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.stopHeart)
	})
	<-s.heartDone
}

func (s *Writer) write(event model.AnalysisProgress) error {
	if s.closed {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// SetAction 更新当前动作和进度并发送，进度只增不减
func (s *Writer) SetAction(progress int, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if progress > s.state.Overall {
		s.state.Overall = progress
	}
	s.state.CurrentAction = action
	return s.write(s.state)
}

// SendResult 发送最终结果
func (s *Writer) SendResult(result interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "completed"
	s.state.Overall = 100
	s.state.CurrentAction = "Analysis completed"
	s.state.Result = result
	return s.write(s.state)
}

// SendError 发送终止错误，status为等价的HTTP状态码
func (s *Writer) SendError(status int, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Status = "error"
	s.state.CurrentAction = "Analysis failed"
	s.state.ErrorStatus = status
	s.state.Error = errMsg
	return s.write(s.state)
}

// Progress 当前状态快照
func (s *Writer) Progress() model.AnalysisProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
