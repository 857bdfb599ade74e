package protocol

import (
	"log"
	"strings"
)

// DefaultFragmentLimit は持ち越す行断片の上限バイト数
const DefaultFragmentLimit = 256

// LineBuffer はトランスポートから届く断片を完全な行へ再構成する
// 改行で終わらない末尾の断片は次の読み出しまで保持される
type LineBuffer struct {
	rest  string
	limit int
}

// NewLineBuffer は断片上限を指定して行バッファを作成する
func NewLineBuffer(limit int) *LineBuffer {
	if limit <= 0 {
		limit = DefaultFragmentLimit
	}
	return &LineBuffer{limit: limit}
}

// Feed は読み出した断片を取り込み、完成した行の一覧を返す
// 持ち越し断片が上限を超える場合は際限なく成長させず破棄する
func (b *LineBuffer) Feed(chunk []byte) []string {
	combined := b.rest + string(chunk)
	b.rest = ""

	var lines []string
	for {
		idx := strings.IndexByte(combined, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, combined[:idx])
		combined = combined[idx+1:]
	}

	// 不完全な末尾を持ち越す
	if len(combined) > b.limit {
		log.Printf("警告: 行断片が上限(%dバイト)を超えたため破棄します", b.limit)
	} else {
		b.rest = combined
	}

	return lines
}

// Pending は現在持ち越している断片の長さを返す
func (b *LineBuffer) Pending() int {
	return len(b.rest)
}
