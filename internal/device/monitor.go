package device

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Info は検出された入力デバイスを表す構造体
type Info struct {
	Name string // EVIOCGNAMEで取得したデバイス名
	Path string // デバイスノードのパス
	Pen  bool   // ペンツールの能力ビットを持つか
}

// デバイスノードを探索するディレクトリ
const inputDir = "/dev/input"

// ScanDevices は/dev/input配下のイベントデバイスを列挙する
// 各ノードを開いて名前とペン能力を問い合わせ、開けないノードは読み飛ばす
func ScanDevices() ([]Info, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var devices []Info
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "event") {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())

		f, err := os.OpenFile(path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0)
		if err != nil {
			continue
		}

		fd := int(f.Fd())
		name, err := QueryDeviceName(fd)
		if err != nil {
			name = entry.Name()
		}
		devices = append(devices, Info{
			Name: name,
			Path: path,
			Pen:  HasPenCapability(fd),
		})
		_ = f.Close()
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].Path < devices[j].Path })
	return devices, nil
}

// FindDigitizer は名前に識別文字列を含むデバイスを探す
func FindDigitizer(namePattern string) (*Info, error) {
	devices, err := ScanDevices()
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if strings.Contains(devices[i].Name, namePattern) {
			return &devices[i], nil
		}
	}
	return nil, nil
}

// MonitorCallback はデジタイザの接続状態が変化したときに呼び出される
type MonitorCallback func(devices []Info)

// Monitor は/dev/input配下のデバイスノードの増減を監視する構造体
type Monitor struct {
	watcher   *fsnotify.Watcher
	callbacks []MonitorCallback
	devices   []Info
	mutex     sync.RWMutex
	stopChan  chan struct{}
	isRunning bool
}

// NewMonitor は新しいデバイスモニターを作成する
func NewMonitor() (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Monitor{
		watcher:  watcher,
		stopChan: make(chan struct{}),
	}, nil
}

// Start はデバイスノードの監視を開始する
func (m *Monitor) Start() error {
	if m.isRunning {
		return nil // すでに実行中
	}
	m.isRunning = true

	if err := m.watcher.Add(inputDir); err != nil {
		log.Printf("ディレクトリの監視に失敗しました: %s - %v", inputDir, err)
	}

	// 初期デバイス一覧を取得
	devices, err := ScanDevices()
	if err != nil {
		log.Printf("初期デバイス一覧の取得に失敗しました: %v", err)
	} else {
		log.Printf("初期デバイス検出: %d 個のデバイスを検出", len(devices))
		m.updateDevices(devices)
	}

	go m.watchEvents()
	return nil
}

// Stop はデバイスノードの監視を停止する
func (m *Monitor) Stop() {
	if !m.isRunning {
		return
	}
	close(m.stopChan)
	m.watcher.Close()
	m.isRunning = false
}

// RegisterCallback はデバイス変更時のコールバック関数を登録する
func (m *Monitor) RegisterCallback(callback MonitorCallback) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Devices は現在のデバイス一覧のスナップショットを返す
func (m *Monitor) Devices() []Info {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	devices := make([]Info, len(m.devices))
	copy(devices, m.devices)
	return devices
}

func (m *Monitor) updateDevices(devices []Info) {
	m.mutex.Lock()
	m.devices = devices
	callbacks := append([]MonitorCallback(nil), m.callbacks...)
	m.mutex.Unlock()

	for _, cb := range callbacks {
		cb(devices)
	}
}

// watchEvents はファイルシステムイベントを監視し、短時間の連続イベントを
// まとめてから再スキャンする
func (m *Monitor) watchEvents() {
	const debounce = 500 * time.Millisecond
	timer := time.NewTimer(debounce)
	timer.Stop() // 初期状態では停止
	pendingRescan := false

	for {
		select {
		case <-m.stopChan:
			return

		case <-timer.C:
			if pendingRescan {
				pendingRescan = false
				devices, err := ScanDevices()
				if err != nil {
					log.Printf("デバイス再スキャンに失敗しました: %v", err)
					continue
				}
				m.updateDevices(devices)
			}

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			log.Printf("ファイルシステムイベント: %s %s", event.Op.String(), event.Name)
			if !pendingRescan {
				pendingRescan = true
				timer.Reset(debounce)
			}

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ファイルシステム監視エラー: %v", err)
		}
	}
}
