package engine

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/Naivedya-sahu/rm2in2/internal/config"
	"github.com/Naivedya-sahu/rm2in2/internal/consts"
	"github.com/Naivedya-sahu/rm2in2/internal/device"
	"github.com/Naivedya-sahu/rm2in2/internal/queue"
	"github.com/Naivedya-sahu/rm2in2/internal/suppress"
	"github.com/Naivedya-sahu/rm2in2/internal/transform"
	"github.com/Naivedya-sahu/rm2in2/internal/types"

	"golang.org/x/sys/unix"
)

// ReadFunc はデバイス読み出しの下位プリミティブを表す関数型
type ReadFunc func(fd int, p []byte) (n int, err error)

// 対象デバイスの解決状態
const (
	targetUnresolved int32 = iota // 未解決
	targetResolving               // 判定中（1スレッドのみ）
	targetResolved                // 解決済み
)

// Classifier はファイルディスクリプタが対象デジタイザかを判定する
type Classifier interface {
	Classify(fd int) bool
}

// Engine はペン注入エンジン本体を表す構造体
// プロセスごとに1つ構築し、デバイス読み出し経路とコマンドチャネルで
// 参照を共有する。キュー・抑制・カーソルの各状態はプロセス全体で共有される
type Engine struct {
	cfg        *config.Config
	mapper     *transform.Mapper
	queue      *queue.Queue
	suppressor *suppress.Controller
	locator    Classifier
	cursor     cursorState

	state    atomic.Int32 // 対象デバイスの解決状態
	targetFd atomic.Int32 // 解決済みの対象ファイルディスクリプタ

	passthroughOnce sync.Once
	passthrough     ReadFunc
	readOverride    ReadFunc
}

// Status はエンジンの現在状態のスナップショットを表す構造体
type Status struct {
	TargetResolved bool  `json:"target_resolved"`
	TargetFd       int   `json:"target_fd"`
	QueueLength    int   `json:"queue_length"`
	QueueCapacity  int   `json:"queue_capacity"`
	Suppressing    bool  `json:"suppressing"`
	CursorX        int32 `json:"cursor_x"`
	CursorY        int32 `json:"cursor_y"`
}

// New は設定から注入エンジンを作成する
// 変換設定が縮退している場合はエラーを返す
func New(cfg *config.Config) (*Engine, error) {
	mapper, err := transform.NewMapper(cfg.Display, cfg.Digitizer)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		mapper:     mapper,
		queue:      queue.NewQueue(cfg.Injector.QueueCapacity),
		suppressor: suppress.NewController(cfg.Injector.SuppressionWindow),
		locator:    device.NewLocator(cfg.Digitizer.PathPrefix, cfg.Digitizer.NamePattern),
	}, nil
}

// SetReadFunc は下位の読み出しプリミティブを差し替える
// 最初のRead呼び出しより前に設定すること
func (e *Engine) SetReadFunc(fn ReadFunc) {
	e.readOverride = fn
}

// Read はホストのデバイス読み出しの代替となるエントリポイント
// 対象デジタイザのfdに対しては注入キューを優先的に排出し、
// それ以外は下位の読み出しへ委譲する
func (e *Engine) Read(fd int, buf []byte) (int, error) {
	read := e.readPrimitive()

	// 対象デバイスが未解決なら判定を試みる
	if e.state.Load() != targetResolved {
		e.tryClaim(fd)
	}

	isTarget := e.state.Load() == targetResolved && int(e.targetFd.Load()) == fd

	// 注入キューにイベントがあれば実デバイスには触れず排出する
	if isTarget && e.queue.HasEvents() {
		if n := e.drain(buf); n > 0 {
			return n, nil
		}
	}

	// 実デバイスからの読み出し
	n, err := read(fd, buf)
	if err != nil || n <= 0 || !isTarget {
		return n, err
	}

	// 注入直後の実サンプルは破棄する（0バイト＝再試行の合図）
	if e.suppressor.ShouldSuppress() {
		return 0, nil
	}

	// GET_CURSOR用に実ペン位置を追跡する
	e.trackCursor(buf[:n])
	return n, err
}

// tryClaim はfdの判定権を原子的に獲得し、対象であれば採用する
// 複数スレッドが同時に初回読み出しを行っても、コマンドチャネルを
// 起動するのは勝者の1スレッドのみになる
func (e *Engine) tryClaim(fd int) {
	if !e.state.CompareAndSwap(targetUnresolved, targetResolving) {
		return
	}

	if !e.locator.Classify(fd) {
		e.state.Store(targetUnresolved)
		return
	}

	e.targetFd.Store(int32(fd))
	e.state.Store(targetResolved)
	log.Printf("デジタイザを検出しました (fd=%d)", fd)

	go e.runCommandLoop()
}

// drain はキューのイベントをFIFO順でバッファへ書き出し、バイト数を返す
// バッファに収まる分だけの部分排出も正当で、残りは次回の読み出しで排出される
func (e *Engine) drain(buf []byte) int {
	max := len(buf) / types.EventSize
	if max == 0 {
		return 0
	}

	events := make([]types.Event, 0, max)
	for len(events) < max {
		ev, ok := e.queue.Dequeue()
		if !ok {
			break
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		return 0
	}

	data, err := types.MarshalEvents(events)
	if err != nil {
		log.Printf("イベントの変換に失敗しました: %v", err)
		return 0
	}
	copy(buf, data)
	return len(data)
}

// readPrimitive は下位の読み出しプリミティブを初回のみ解決する
func (e *Engine) readPrimitive() ReadFunc {
	e.passthroughOnce.Do(func() {
		if e.readOverride != nil {
			e.passthrough = e.readOverride
		} else {
			e.passthrough = unix.Read
		}
	})
	return e.passthrough
}

// trackCursor は実デバイスのサンプルから最新のペン位置を記録する
func (e *Engine) trackCursor(data []byte) {
	for _, ev := range types.ParseEvents(data) {
		if ev.Type != consts.Abs {
			continue
		}
		switch ev.Code {
		case consts.AbsX:
			e.cursor.setX(ev.Value)
		case consts.AbsY:
			e.cursor.setY(ev.Value)
		}
	}
}

// TargetResolved は対象デジタイザが採用済みかを返す
func (e *Engine) TargetResolved() bool {
	return e.state.Load() == targetResolved
}

// Cursor は実ハードウェアで最後に観測されたペン位置を返す
func (e *Engine) Cursor() (int32, int32) {
	return e.cursor.get()
}

// Status は現在のエンジン状態のスナップショットを返す
func (e *Engine) Status() Status {
	x, y := e.cursor.get()
	return Status{
		TargetResolved: e.TargetResolved(),
		TargetFd:       int(e.targetFd.Load()),
		QueueLength:    e.queue.Len(),
		QueueCapacity:  e.queue.Capacity(),
		Suppressing:    e.suppressor.Suppressing(),
		CursorX:        x,
		CursorY:        y,
	}
}
