package device

import (
	"fmt"
	"os"
	"syscall"

	"github.com/Naivedya-sahu/rm2in2/internal/consts"
	"github.com/Naivedya-sahu/rm2in2/internal/utils"
)

// Source は読み出し対象の実デジタイザデバイスを扱うインターフェース
type Source interface {
	// ファイルディスクリプタを取得する
	Fd() int
	// デバイス操作を専有する
	Grab() error
	// デバイス操作の専有を解除する
	Release() error
	Close() error
}

type sourceDevice struct {
	file    *os.File
	grabbed bool
}

// OpenSource は指定されたパスのデジタイザを非ブロッキングモードで開く
func OpenSource(path string) (Source, error) {
	f, err := os.OpenFile(path, syscall.O_RDONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("デバイスファイルを開くのに失敗しました: %w", err)
	}
	return &sourceDevice{file: f}, nil
}

func (s *sourceDevice) Fd() int {
	return int(s.file.Fd())
}

func (s *sourceDevice) Grab() error {
	if s.grabbed {
		return nil
	}
	if err := utils.IOCtl(s.file, consts.EVIOCGRAB, 1); err != nil {
		return fmt.Errorf("failed to grab device: %w", err)
	}
	s.grabbed = true
	return nil
}

func (s *sourceDevice) Release() error {
	if !s.grabbed {
		return nil
	}
	if err := utils.IOCtl(s.file, consts.EVIOCGRAB, 0); err != nil {
		return fmt.Errorf("failed to release device: %w", err)
	}
	s.grabbed = false
	return nil
}

func (s *sourceDevice) Close() error {
	_ = s.Release()
	return s.file.Close()
}
