package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/Naivedya-sahu/rm2in2/internal/consts"
	"github.com/Naivedya-sahu/rm2in2/internal/utils"
)

// InputID はデバイス識別子を表す構造体
type InputID struct {
	Bustype uint16 // バスタイプ
	Vendor  uint16 // ベンダーID
	Product uint16 // 製品ID
	Version uint16 // バージョン
}

// UserDev はuinputユーザーデバイスの設定を表す構造体
type UserDev struct {
	Name       [consts.MaxNameSize]byte // デバイス名
	ID         InputID                  // デバイス識別子
	EffectsMax uint32                   // 最大エフェクト数
	Absmax     [consts.AbsSize]int32    // 絶対座標の最大値
	Absmin     [consts.AbsSize]int32    // 絶対座標の最小値
	Absfuzz    [consts.AbsSize]int32    // 絶対座標のファジー値
	Absflat    [consts.AbsSize]int32    // 絶対座標のフラット値
}

// VirtualPen はホストアプリケーションへ合成ストロークを届けるための
// 仮想ペンデバイスを表現するインターフェース
type VirtualPen interface {
	// 生のイベントバイト列をそのままデバイスへ書き込む
	Forward(data []byte) error
	io.Closer
}

type virtualPen struct {
	name       []byte
	deviceFile *os.File
}

// CreateVirtualPen は仮想ペンデバイスを作成する
// 座標・筆圧の範囲は実デジタイザと同じ値を登録する
func CreateVirtualPen(path string, name []byte, maxX int32, maxY int32, maxPressure int32) (VirtualPen, error) {
	deviceFile, err := os.OpenFile(path, syscall.O_WRONLY|syscall.O_NONBLOCK, 0660)
	if err != nil {
		return nil, fmt.Errorf("uinputデバイスファイルを開くのに失敗しました: %v", err)
	}

	// キー入力イベント(EV_KEY)を登録する
	if err := utils.IOCtl(deviceFile, consts.SetEvBit, uintptr(consts.Key)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("キー入力イベント(EV_KEY)の登録に失敗しました: %v", err)
	}

	// ペン関連のキー種別を登録する
	for _, ev := range []int{
		consts.BtnToolPen, // ペンツールの検出
		consts.BtnTouch,   // 接触の検出
		consts.BtnStylus,  // サイドボタン
	} {
		if err := utils.IOCtl(deviceFile, consts.SetKeyBit, uintptr(ev)); err != nil {
			_ = deviceFile.Close()
			return nil, fmt.Errorf("キー入力種別の登録に失敗しました %v: %v", ev, err)
		}
	}

	// 絶対座標入力イベント(EV_ABS)を登録する
	if err := utils.IOCtl(deviceFile, consts.SetEvBit, uintptr(consts.Abs)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("絶対座標入力イベント(EV_ABS)の登録に失敗しました: %v", err)
	}

	// 座標軸と筆圧を登録する
	for _, ev := range []int{consts.AbsX, consts.AbsY, consts.AbsPressure, consts.AbsDistance} {
		if err := utils.IOCtl(deviceFile, consts.SetAbsBit, uintptr(ev)); err != nil {
			_ = deviceFile.Close()
			return nil, fmt.Errorf("座標軸の登録に失敗しました %v: %v", ev, err)
		}
	}

	var absMin [consts.AbsSize]int32
	var absMax [consts.AbsSize]int32

	absMax[consts.AbsX] = maxX
	absMax[consts.AbsY] = maxY
	absMax[consts.AbsPressure] = maxPressure
	absMax[consts.AbsDistance] = 255

	userDev := UserDev{
		Name: toUinputName(name),
		ID: InputID{
			Bustype: consts.BusUsb,
			Vendor:  0x056a, // Wacom
			Product: 0x0001,
			Version: 1,
		},
		Absmin: absMin,
		Absmax: absMax,
	}

	// デバイス構造体を書き込んでからデバイスを作成する
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, userDev); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("ユーザーデバイスバッファの書き込みに失敗しました: %v", err)
	}
	if _, err := deviceFile.Write(buf.Bytes()); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("デバイス構造体をデバイスファイルに書き込むのに失敗しました: %v", err)
	}
	if err := utils.IOCtl(deviceFile, consts.DevCreate, uintptr(0)); err != nil {
		_ = deviceFile.Close()
		return nil, fmt.Errorf("デバイスの作成に失敗しました: %v", err)
	}

	return &virtualPen{name: name, deviceFile: deviceFile}, nil
}

// Forward はマージ済みのイベントバイト列をそのまま仮想デバイスへ書き込む
func (vp *virtualPen) Forward(data []byte) error {
	if _, err := vp.deviceFile.Write(data); err != nil {
		return fmt.Errorf("イベントの書き込みに失敗しました: %v", err)
	}
	return nil
}

func (vp *virtualPen) Close() error {
	_ = utils.IOCtl(vp.deviceFile, consts.DevDestroy, uintptr(0))
	return vp.deviceFile.Close()
}

// 名前をuinput用の固定長配列に変換する
func toUinputName(name []byte) (uinputName [consts.MaxNameSize]byte) {
	var fixedSizeName [consts.MaxNameSize]byte
	copy(fixedSizeName[:], name)
	return fixedSizeName
}
