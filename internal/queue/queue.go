package queue

import (
	"log"
	"sync"

	"github.com/Naivedya-sahu/rm2in2/internal/types"
)

// Queue は注入イベントを保持する有限のFIFOキュー
// 生産者はコマンドチャネル、消費者はデバイス読み出しフックで、
// 1つのロックでリングバッファの添字を保護する
type Queue struct {
	mu       sync.Mutex
	ring     []types.Event
	head     int // 次に取り出す位置
	tail     int // 次に書き込む位置
	capacity int
}

// NewQueue は指定された容量のキューを作成する
func NewQueue(capacity int) *Queue {
	return &Queue{
		// 満杯判定のために1要素分余分に確保する
		ring:     make([]types.Event, capacity+1),
		capacity: capacity,
	}
}

// Enqueue はイベントをキューに追加する
// 満杯の場合は新しいイベントを破棄して警告を出し、決してブロックしない
func (q *Queue) Enqueue(ev types.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.enqueueLocked(ev)
}

// EnqueueBatch はジェスチャー単位のイベント列を1回のロック区間で追加する
// 追加できた件数を返す
func (q *Queue) EnqueueBatch(events []types.Event) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	added := 0
	for _, ev := range events {
		if !q.enqueueLocked(ev) {
			break
		}
		added++
	}
	return added
}

func (q *Queue) enqueueLocked(ev types.Event) bool {
	next := (q.tail + 1) % len(q.ring)
	if next == q.head {
		log.Println("警告: キューが満杯のためイベントを破棄します")
		return false
	}
	q.ring[q.tail] = ev
	q.tail = next
	return true
}

// Dequeue は先頭のイベントを取り出す
// 空の場合は第2戻り値がfalseになり、ブロックしない
func (q *Queue) Dequeue() (types.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == q.tail {
		return types.Event{}, false
	}
	ev := q.ring[q.head]
	q.head = (q.head + 1) % len(q.ring)
	return ev, true
}

// HasEvents はキューにイベントがあるかを返す
// 判定後に状態が変わり得るため、実際の取り出しはDequeueで行うこと
func (q *Queue) HasEvents() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head != q.tail
}

// Len は現在のイベント数を返す
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := q.tail - q.head
	if n < 0 {
		n += len(q.ring)
	}
	return n
}

// Capacity はキューの容量を返す
func (q *Queue) Capacity() int {
	return q.capacity
}
