package transform

import (
	"fmt"

	"github.com/Naivedya-sahu/rm2in2/internal/config"
)

// Mapper はディスプレイ座標をデジタイザの生座標へ変換する
// 変換は純粋な整数演算のみで、内部状態を持たない
type Mapper struct {
	width  int32 // ディスプレイ幅
	height int32 // ディスプレイ高さ
	minX   int32 // センサーX軸の使用可能下限
	maxX   int32 // センサーX軸の使用可能上限
	minY   int32 // センサーY軸の使用可能下限
	maxY   int32 // センサーY軸の使用可能上限
	swap   bool  // 表示Xをセンサー Y軸へ割り当てる
	invX   bool  // センサーX軸の反転
	invY   bool  // センサーY軸の反転
}

// NewMapper は設定から座標変換器を作成する
// 縮退した範囲（ゼロ除算になる設定）はエラーを返す
func NewMapper(display config.DisplayConfig, digitizer config.DigitizerConfig) (*Mapper, error) {
	if display.Width <= 0 || display.Height <= 0 {
		return nil, fmt.Errorf("ディスプレイ寸法が不正です: %dx%d", display.Width, display.Height)
	}
	if digitizer.UsableMaxX <= digitizer.UsableMinX || digitizer.UsableMaxY <= digitizer.UsableMinY {
		return nil, fmt.Errorf("センサー範囲が不正です: X[%d,%d] Y[%d,%d]",
			digitizer.UsableMinX, digitizer.UsableMaxX, digitizer.UsableMinY, digitizer.UsableMaxY)
	}

	return &Mapper{
		width:  display.Width,
		height: display.Height,
		minX:   digitizer.UsableMinX,
		maxX:   digitizer.UsableMaxX,
		minY:   digitizer.UsableMinY,
		maxY:   digitizer.UsableMaxY,
		swap:   digitizer.SwapAxes,
		invX:   digitizer.InvertX,
		invY:   digitizer.InvertY,
	}, nil
}

// Map はディスプレイ座標(x, y)をセンサー座標へ変換する
// 軸の入れ替えが有効な場合、センサーX軸は表示Yから、センサーY軸は表示Xから計算される
func (m *Mapper) Map(displayX int32, displayY int32) (rawX int32, rawY int32) {
	srcX, srcRangeX := displayX, m.width
	srcY, srcRangeY := displayY, m.height
	if m.swap {
		srcX, srcRangeX = displayY, m.height
		srcY, srcRangeY = displayX, m.width
	}

	rawX = scaleAxis(srcX, srcRangeX, m.minX, m.maxX, m.invX)
	rawY = scaleAxis(srcY, srcRangeY, m.minY, m.maxY, m.invY)
	return rawX, rawY
}

// scaleAxis は1軸分の比例変換を行う
// 反転時はセンサー上限から差し引く形で計算する
func scaleAxis(src int32, srcRange int32, rawMin int32, rawMax int32, invert bool) int32 {
	span := int64(rawMax - rawMin)
	scaled := int32(int64(src) * span / int64(srcRange))
	if invert {
		return rawMax - scaled
	}
	return rawMin + scaled
}

// Clamp はセンサー座標を使用可能範囲内に収める
// Map自体は演算のみを行うため、範囲制限は呼び出し側が必要に応じて適用する
func (m *Mapper) Clamp(rawX int32, rawY int32) (int32, int32) {
	return clampAxis(rawX, m.minX, m.maxX), clampAxis(rawY, m.minY, m.maxY)
}

// InBounds はセンサー座標が使用可能範囲内かを返す
func (m *Mapper) InBounds(rawX int32, rawY int32) bool {
	return rawX >= m.minX && rawX <= m.maxX && rawY >= m.minY && rawY <= m.maxY
}

func clampAxis(v int32, min int32, max int32) int32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
