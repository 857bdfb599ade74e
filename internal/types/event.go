package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"syscall"
)

// Event は入力イベントを表す構造体
type Event struct {
	Time  syscall.Timeval // イベント発生時刻
	Type  uint16          // イベントタイプ
	Code  uint16          // イベントコード
	Value int32           // イベント値
}

// EventSize はカーネルのinput_event構造体1件分のバイト数
var EventSize = binary.Size(Event{})

// MakeEvent は時刻ゼロの入力イベントを作成する
func MakeEvent(typ uint16, code uint16, value int32) Event {
	return Event{Type: typ, Code: code, Value: value}
}

// MarshalEvents はイベント列をカーネルと同じバイナリ表現に変換する
func MarshalEvents(events []Event) ([]byte, error) {
	buf := new(bytes.Buffer)
	for _, ev := range events {
		if err := binary.Write(buf, binary.LittleEndian, ev); err != nil {
			return nil, fmt.Errorf("イベントをバッファに書き込むのに失敗しました: %v", err)
		}
	}
	return buf.Bytes(), nil
}

// ParseEvents はデバイスから読み出したバイト列をイベント列に復元する
// 末尾の不完全なレコードは無視される
func ParseEvents(data []byte) []Event {
	count := len(data) / EventSize
	events := make([]Event, 0, count)
	reader := bytes.NewReader(data)
	for i := 0; i < count; i++ {
		var ev Event
		if err := binary.Read(reader, binary.LittleEndian, &ev); err != nil {
			break
		}
		events = append(events, ev)
	}
	return events
}
