package protocol

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CommandKind はコマンドの種類を表す
type CommandKind int

const (
	CmdPenDown     CommandKind = iota // ペンの接触開始
	CmdPenMove                        // ペンの移動
	CmdPenUp                          // ペンの接触終了
	CmdDelay                          // コマンドループの待機
	CmdQueryCursor                    // 実ペン位置の照会
)

// Command は1行のプロトコルを解析した結果を表す構造体
type Command struct {
	Kind     CommandKind
	X        int32         // PEN_DOWN / PEN_MOVEのディスプレイX座標
	Y        int32         // PEN_DOWN / PEN_MOVEのディスプレイY座標
	Duration time.Duration // DELAYの待機時間
}

// ParseLine は1行のコマンドを解析する
// 空行・コメント行・未知のキーワードはnilを返して無視する
// 引数が不正な場合のみエラーを返す
func ParseLine(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	fields := strings.Fields(line)
	keyword := fields[0]

	switch keyword {
	case "PEN_DOWN", "PEN_MOVE":
		if len(fields) < 3 {
			return nil, fmt.Errorf("%s には座標が2つ必要です: %q", keyword, line)
		}
		x, err := parseCoord(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s のX座標が不正です: %v", keyword, err)
		}
		y, err := parseCoord(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s のY座標が不正です: %v", keyword, err)
		}
		kind := CmdPenDown
		if keyword == "PEN_MOVE" {
			kind = CmdPenMove
		}
		return &Command{Kind: kind, X: x, Y: y}, nil

	case "PEN_UP":
		return &Command{Kind: CmdPenUp}, nil

	case "DELAY":
		if len(fields) < 2 {
			return nil, fmt.Errorf("DELAY には待機時間が必要です: %q", line)
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("DELAY の待機時間が不正です: %v", err)
		}
		return &Command{Kind: CmdDelay, Duration: time.Duration(ms) * time.Millisecond}, nil

	case "GET_CURSOR":
		return &Command{Kind: CmdQueryCursor}, nil
	}

	// 未知のキーワードは黙って読み飛ばす
	return nil, nil
}

func parseCoord(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}
