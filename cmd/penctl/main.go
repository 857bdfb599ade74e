package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/pkg/browser"
)

// ディスプレイ座標系の寸法（ポートレート）
const (
	displayWidth  = 1404
	displayHeight = 1872
)

// penctl は注入エンジンへコマンドプロトコルを送るテストクライアント
// 図形のストロークを生成してFIFOへ書き込むだけで、エンジン本体とは
// プロトコル以外の結合を持たない
func main() {
	fifoPath := flag.String("fifo", "/tmp/rm2_inject", "コマンド送信先のFIFOパス")
	shape := flag.String("shape", "", "描画する図形 (corners | cross | grid | circle)")
	stepDelay := flag.Int("delay", 10, "ストローク点間のDELAY (ミリ秒)")
	stdout := flag.Bool("stdout", false, "FIFOの代わりに標準出力へ書き込みます (ssh経由の転送用)")
	dashboard := flag.String("dashboard", "", "指定されたアドレスのステータスダッシュボードをブラウザで開きます (例: 10.11.99.1:8080)")
	flag.Parse()

	// ダッシュボードを開くだけのモード
	if *dashboard != "" {
		url := fmt.Sprintf("http://%s/api/status", *dashboard)
		if err := browser.OpenURL(url); err != nil {
			log.Fatalf("ブラウザを開くのに失敗しました: %v", err)
		}
		return
	}

	if *shape == "" {
		flag.Usage()
		os.Exit(2)
	}

	// 出力先の決定
	var out io.WriteCloser = os.Stdout
	if !*stdout {
		f, err := os.OpenFile(*fifoPath, os.O_WRONLY, 0)
		if err != nil {
			log.Fatalf("FIFOを開くのに失敗しました: %v", err)
		}
		out = f
		defer f.Close()
	}

	w := &strokeWriter{out: out, delay: *stepDelay}

	switch *shape {
	case "corners":
		w.corners()
	case "cross":
		w.cross()
	case "grid":
		w.grid()
	case "circle":
		w.circle()
	default:
		log.Fatalf("未知の図形です: %s", *shape)
	}

	if err := w.err; err != nil {
		log.Fatalf("コマンドの書き込みに失敗しました: %v", err)
	}
}

// strokeWriter はストロークをコマンドプロトコルの行として書き出す
type strokeWriter struct {
	out   io.Writer
	delay int
	err   error
}

func (w *strokeWriter) line(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format+"\n", args...)
}

// stroke は点列を1本のストロークとして描く
func (w *strokeWriter) stroke(points [][2]int) {
	if len(points) == 0 {
		return
	}
	w.line("PEN_DOWN %d %d", points[0][0], points[0][1])
	for _, p := range points[1:] {
		if w.delay > 0 {
			w.line("DELAY %d", w.delay)
		}
		w.line("PEN_MOVE %d %d", p[0], p[1])
	}
	w.line("PEN_UP")
}

// corners は画面の四隅に短い印を描く
func (w *strokeWriter) corners() {
	const m = 50 // 縁からのマージン
	marks := [][2]int{
		{m, m},
		{displayWidth - m, m},
		{m, displayHeight - m},
		{displayWidth - m, displayHeight - m},
	}
	w.line("# corners pattern")
	for _, c := range marks {
		w.stroke([][2]int{c, {c[0] + 20, c[1] + 20}})
		w.line("DELAY 100")
	}
}

// cross は画面中央に十字を描く
func (w *strokeWriter) cross() {
	cx, cy := displayWidth/2, displayHeight/2
	const arm = 300
	w.line("# cross pattern")
	w.stroke([][2]int{{cx - arm, cy}, {cx + arm, cy}})
	w.line("DELAY 100")
	w.stroke([][2]int{{cx, cy - arm}, {cx, cy + arm}})
}

// grid は3x3の格子を描く
func (w *strokeWriter) grid() {
	w.line("# grid pattern")
	for i := 1; i <= 3; i++ {
		x := displayWidth * i / 4
		w.stroke([][2]int{{x, 100}, {x, displayHeight - 100}})
		w.line("DELAY 100")
	}
	for i := 1; i <= 3; i++ {
		y := displayHeight * i / 4
		w.stroke([][2]int{{100, y}, {displayWidth - 100, y}})
		w.line("DELAY 100")
	}
}

// circle は画面中央に円を描く
func (w *strokeWriter) circle() {
	cx, cy := float64(displayWidth)/2, float64(displayHeight)/2
	const radius = 400.0
	const segments = 72

	points := make([][2]int, 0, segments+1)
	for i := 0; i <= segments; i++ {
		angle := 2 * math.Pi * float64(i) / segments
		points = append(points, [2]int{
			int(cx + radius*math.Cos(angle)),
			int(cy + radius*math.Sin(angle)),
		})
	}
	w.line("# circle pattern")
	w.stroke(points)
}
