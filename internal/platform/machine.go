package platform

import (
	"os"
	"strings"
)

// Generation はタブレットのハードウェア世代を表す列挙型
type Generation int

const (
	GenerationUnknown Generation = iota
	GenerationRM1
	GenerationRM2
)

// ハードウェア世代を公開しているsysfsのパス
const machinePath = "/sys/devices/soc0/machine"

// String は世代の表示名を返す
func (g Generation) String() string {
	switch g {
	case GenerationRM1:
		return "reMarkable 1"
	case GenerationRM2:
		return "reMarkable 2"
	default:
		return "unknown"
	}
}

// SupportsInjection はこの世代でペン注入が動作確認済みかを返す
// 座標変換の定数はRM2実機での実測値のため、他の世代では有効化しない
func (g Generation) SupportsInjection() bool {
	return g == GenerationRM2
}

// Detect は動作中のハードウェア世代を判定する
func Detect() Generation {
	return DetectFrom(machinePath)
}

// DetectFrom は指定されたファイルの内容からハードウェア世代を判定する
// 読み出しに失敗した場合はGenerationUnknownを返す
func DetectFrom(path string) Generation {
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationUnknown
	}

	machine := strings.TrimSpace(string(data))
	switch {
	case strings.Contains(machine, "reMarkable 2"):
		return GenerationRM2
	case strings.Contains(machine, "reMarkable"):
		return GenerationRM1
	default:
		return GenerationUnknown
	}
}
