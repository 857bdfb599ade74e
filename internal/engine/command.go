package engine

import (
	"errors"
	"io"
	"log"
	"os"
	"time"

	"github.com/Naivedya-sahu/rm2in2/internal/consts"
	"github.com/Naivedya-sahu/rm2in2/internal/protocol"
	"github.com/Naivedya-sahu/rm2in2/internal/types"

	"golang.org/x/sys/unix"
)

// runCommandLoop はコマンドチャネルの本体
// FIFOを開いてコマンドを読み続け、プロセスの生存期間中は決して終了しない
func (e *Engine) runCommandLoop() {
	path := e.cfg.Injector.FifoPath
	log.Printf("コマンドチャネルを開始します (FIFO: %s)", path)

	// FIFOがなければ作成する
	if err := unix.Mkfifo(path, 0666); err != nil && !errors.Is(err, unix.EEXIST) {
		log.Printf("FIFOの作成に失敗しました: %v", err)
	}

	for {
		// 書き込み側が現れるまでオープンはブロックする
		f, err := os.OpenFile(path, os.O_RDONLY, 0)
		if err != nil {
			time.Sleep(e.cfg.Injector.ReopenBackoff)
			continue
		}

		e.consume(f)
		_ = f.Close()
		// EOF後は開き直して同じループを続ける
	}
}

// consume はトランスポートからEOFまでコマンドを読み取り処理する
func (e *Engine) consume(r io.Reader) {
	buf := make([]byte, 4096)
	lines := protocol.NewLineBuffer(protocol.DefaultFragmentLimit)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range lines.Feed(buf[:n]) {
				cmd, perr := protocol.ParseLine(line)
				if perr != nil {
					log.Printf("不正なコマンドを読み飛ばします: %v", perr)
					continue
				}
				if cmd != nil {
					e.handleCommand(cmd)
				}
			}
		}
		if err != nil {
			return
		}
	}
}

// handleCommand は解析済みのコマンドを実行する
func (e *Engine) handleCommand(cmd *protocol.Command) {
	switch cmd.Kind {
	case protocol.CmdPenDown:
		rawX, rawY := e.mapPoint(cmd.X, cmd.Y)
		e.enqueueGesture([]types.Event{
			types.MakeEvent(consts.Key, consts.BtnToolPen, 1),
			types.MakeEvent(consts.Key, consts.BtnTouch, 1),
			types.MakeEvent(consts.Abs, consts.AbsX, rawX),
			types.MakeEvent(consts.Abs, consts.AbsY, rawY),
			types.MakeEvent(consts.Abs, consts.AbsPressure, e.cfg.Injector.DefaultPressure),
			types.MakeEvent(consts.Syn, consts.SynReport, 0),
		})
		e.suppressor.MarkInjection()

	case protocol.CmdPenMove:
		rawX, rawY := e.mapPoint(cmd.X, cmd.Y)
		e.enqueueGesture([]types.Event{
			types.MakeEvent(consts.Abs, consts.AbsX, rawX),
			types.MakeEvent(consts.Abs, consts.AbsY, rawY),
			types.MakeEvent(consts.Abs, consts.AbsPressure, e.cfg.Injector.DefaultPressure),
			types.MakeEvent(consts.Syn, consts.SynReport, 0),
		})

	case protocol.CmdPenUp:
		e.enqueueGesture([]types.Event{
			types.MakeEvent(consts.Key, consts.BtnTouch, 0),
			types.MakeEvent(consts.Key, consts.BtnToolPen, 0),
			types.MakeEvent(consts.Syn, consts.SynReport, 0),
		})
		e.suppressor.MarkInjection()

	case protocol.CmdDelay:
		// 待機するのはコマンドチャネル自身のループのみ
		if cmd.Duration > 0 && cmd.Duration <= e.cfg.Injector.DelayCap {
			time.Sleep(cmd.Duration)
		}

	case protocol.CmdQueryCursor:
		x, y := e.cursor.get()
		log.Printf("実ペン位置: X=%d Y=%d", x, y)
	}
}

// mapPoint はディスプレイ座標をセンサー座標へ変換し、範囲外なら警告して収める
func (e *Engine) mapPoint(x int32, y int32) (int32, int32) {
	rawX, rawY := e.mapper.Map(x, y)
	if !e.mapper.InBounds(rawX, rawY) {
		log.Printf("警告: 座標が使用可能範囲外です: (%d, %d)", rawX, rawY)
		rawX, rawY = e.mapper.Clamp(rawX, rawY)
	}
	return rawX, rawY
}

// enqueueGesture はジェスチャー単位のイベント列をまとめてキューへ追加する
func (e *Engine) enqueueGesture(events []types.Event) {
	added := e.queue.EnqueueBatch(events)
	if added < len(events) {
		log.Printf("警告: ジェスチャーの%d件中%d件しか追加できませんでした", len(events), added)
	}
}
