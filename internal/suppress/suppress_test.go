package suppress

import (
	"testing"
	"time"
)

// fakeClock はテスト用に時刻を手動で進める時計
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// TestQuietByDefault は初期状態では抑制しないことを確認する
func TestQuietByDefault(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	c := newControllerWithClock(150*time.Millisecond, clock.now)

	if c.ShouldSuppress() {
		t.Error("注入前なのに抑制されました")
	}
}

// TestSuppressWithinWindow は注入直後の実入力が破棄されることを確認する
func TestSuppressWithinWindow(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	c := newControllerWithClock(150*time.Millisecond, clock.now)

	c.MarkInjection()

	if !c.ShouldSuppress() {
		t.Error("注入直後なのに抑制されませんでした")
	}

	// 時間幅の内側では抑制が続く
	clock.advance(100 * time.Millisecond)
	if !c.ShouldSuppress() {
		t.Error("時間幅の内側で抑制が解除されました")
	}
}

// TestPassAfterWindow は時間幅を超えたら静穏状態へ戻ることを確認する
func TestPassAfterWindow(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	c := newControllerWithClock(150*time.Millisecond, clock.now)

	c.MarkInjection()
	clock.advance(151 * time.Millisecond)

	if c.ShouldSuppress() {
		t.Error("時間幅を超えても抑制されたままです")
	}

	// 遅延評価で静穏状態へ遷移済みのはず
	if c.Suppressing() {
		t.Error("期限切れ後も抑制状態のままです")
	}
}

// TestReArm は再注入で抑制期限が延長されることを確認する
func TestReArm(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1000, 0)}
	c := newControllerWithClock(150*time.Millisecond, clock.now)

	c.MarkInjection()
	clock.advance(100 * time.Millisecond)

	// 期限切れ前の再注入
	c.MarkInjection()
	clock.advance(100 * time.Millisecond)

	if !c.ShouldSuppress() {
		t.Error("再注入後の時間幅の内側で抑制が解除されました")
	}

	clock.advance(51 * time.Millisecond)
	if c.ShouldSuppress() {
		t.Error("再注入後の時間幅を超えても抑制されたままです")
	}
}
