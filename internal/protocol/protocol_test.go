package protocol

import (
	"testing"
	"time"
)

// TestParseLineValid は正しいコマンドの解析を確認する
func TestParseLineValid(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"ペン接触", "PEN_DOWN 10 20", Command{Kind: CmdPenDown, X: 10, Y: 20}},
		{"ペン移動", "PEN_MOVE 702 936", Command{Kind: CmdPenMove, X: 702, Y: 936}},
		{"ペン解放", "PEN_UP", Command{Kind: CmdPenUp}},
		{"待機", "DELAY 100", Command{Kind: CmdDelay, Duration: 100 * time.Millisecond}},
		{"位置照会", "GET_CURSOR", Command{Kind: CmdQueryCursor}},
		{"前後の空白", "  PEN_DOWN 1 2  ", Command{Kind: CmdPenDown, X: 1, Y: 2}},
		{"タブ区切り", "PEN_MOVE\t30\t40", Command{Kind: CmdPenMove, X: 30, Y: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseLine(tt.line)
			if err != nil {
				t.Fatalf("解析に失敗しました: %v", err)
			}
			if cmd == nil {
				t.Fatal("コマンドが無視されました")
			}
			if *cmd != tt.want {
				t.Errorf("解析結果が一致しません: %+v != %+v", *cmd, tt.want)
			}
		})
	}
}

// TestParseLineIgnored は無視されるべき行の扱いを確認する
func TestParseLineIgnored(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"空行", ""},
		{"空白のみ", "   "},
		{"コメント", "# これはコメント"},
		{"未知のキーワード", "WIBBLE 1 2"},
		{"小文字は未知扱い", "pen_down 10 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseLine(tt.line)
			if err != nil {
				t.Errorf("無視されるべき行でエラーになりました: %v", err)
			}
			if cmd != nil {
				t.Errorf("無視されるべき行がコマンドになりました: %+v", *cmd)
			}
		})
	}
}

// TestParseLineMalformed は引数が不正な行でエラーになることを確認する
func TestParseLineMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"座標が足りない", "PEN_DOWN 10"},
		{"座標が数値でない", "PEN_DOWN abc def"},
		{"Y座標だけ不正", "PEN_MOVE 10 xyz"},
		{"待機時間がない", "DELAY"},
		{"待機時間が数値でない", "DELAY soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseLine(tt.line)
			if err == nil {
				t.Error("不正な行でエラーになりませんでした")
			}
			if cmd != nil {
				t.Errorf("不正な行がコマンドになりました: %+v", *cmd)
			}
		})
	}
}
