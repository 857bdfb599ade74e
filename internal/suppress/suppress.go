package suppress

import (
	"sync"
	"time"
)

// Controller は注入イベントと実ハードウェア入力の調停を行う
// PEN_DOWN/PEN_UPの注入時刻を記録し、一定時間内に届いた実入力を
// 破棄することで、注入中のストロークが実ペンのサンプルで乱れるのを防ぐ
type Controller struct {
	mu            sync.Mutex
	window        time.Duration
	lastInjection time.Time
	suppressing   bool
	now           func() time.Time // テストで差し替えるための時刻関数
}

// NewController は指定された抑制時間幅の調停器を作成する
func NewController(window time.Duration) *Controller {
	return newControllerWithClock(window, time.Now)
}

func newControllerWithClock(window time.Duration, now func() time.Time) *Controller {
	return &Controller{
		window: window,
		now:    now,
	}
}

// MarkInjection は注入が行われたことを記録し、抑制状態へ遷移する
func (c *Controller) MarkInjection() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastInjection = c.now()
	c.suppressing = true
}

// ShouldSuppress は実入力を破棄すべきかを返す
// 抑制期限の判定は実入力の読み出し完了時に遅延評価され、
// 期限切れなら静穏状態へ戻してfalseを返す
func (c *Controller) ShouldSuppress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.suppressing {
		return false
	}
	if c.now().Sub(c.lastInjection) > c.window {
		c.suppressing = false
		return false
	}
	return true
}

// Suppressing は現在抑制状態かを返す（状態遷移は行わない）
func (c *Controller) Suppressing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suppressing
}

// Window は設定された抑制時間幅を返す
func (c *Controller) Window() time.Duration {
	return c.window
}
