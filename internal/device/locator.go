package device

import (
	"fmt"
	"os"
	"strings"
	"unsafe"

	"github.com/Naivedya-sahu/rm2in2/internal/consts"

	"golang.org/x/sys/unix"
)

// Locator は開かれたファイルディスクリプタが対象デジタイザかを判定する
// 判定は読み取り専用で副作用を持たない
type Locator struct {
	pathPrefix  string
	namePattern string

	// テストで差し替えるための問い合わせ関数
	resolvePath func(fd int) (string, error)
	queryName   func(fd int) (string, error)
}

// NewLocator はデバイスパス接頭辞と名前の識別文字列から判定器を作成する
func NewLocator(pathPrefix string, namePattern string) *Locator {
	return &Locator{
		pathPrefix:  pathPrefix,
		namePattern: namePattern,
		resolvePath: resolveFdPath,
		queryName:   QueryDeviceName,
	}
}

// Classify はファイルディスクリプタが対象デジタイザである場合にtrueを返す
// バックエンドのパスが接頭辞に一致し、かつデバイス名が識別文字列を
// 含む場合のみ採用する。問い合わせの失敗は「対象ではない」として扱う
func (l *Locator) Classify(fd int) bool {
	path, err := l.resolvePath(fd)
	if err != nil {
		return false
	}
	if !strings.HasPrefix(path, l.pathPrefix) {
		return false
	}

	name, err := l.queryName(fd)
	if err != nil {
		return false
	}
	return strings.Contains(name, l.namePattern)
}

// resolveFdPath はファイルディスクリプタの実体パスを解決する
func resolveFdPath(fd int) (string, error) {
	return os.Readlink(fmt.Sprintf("/proc/self/fd/%d", fd))
}

// QueryDeviceName はevdevデバイスの名前を問い合わせる
func QueryDeviceName(fd int) (string, error) {
	var name [256]byte
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(consts.EVIOCGNAME),
		uintptr(unsafe.Pointer(&name[0])),
	)
	if errno != 0 {
		return "", errno
	}
	return strings.TrimRight(string(name[:]), "\x00"), nil
}

// HasPenCapability はデバイスがペンツールを報告できるかを能力ビットで調べる
// 名前での判定を補う診断用の問い合わせで、判定の主経路には使わない
func HasPenCapability(fd int) bool {
	keyBits := make([]byte, consts.KeyMax/8+1)
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(consts.EVIOCGKey),
		uintptr(unsafe.Pointer(&keyBits[0])),
	)
	if errno != 0 {
		return false
	}
	return keyBits[consts.BtnToolPen/8]&(1<<(consts.BtnToolPen%8)) != 0
}
