package transform

import (
	"testing"

	"github.com/Naivedya-sahu/rm2in2/internal/config"
)

// RM2実測値の変換設定を返す
func rm2Config() (config.DisplayConfig, config.DigitizerConfig) {
	display := config.DisplayConfig{Width: 1404, Height: 1872}
	digitizer := config.DigitizerConfig{
		UsableMinX: 211,
		UsableMaxX: 20820,
		UsableMinY: 90,
		UsableMaxY: 15712,
		SwapAxes:   true,
		InvertX:    true,
	}
	return display, digitizer
}

// TestMapCorners は画面四隅の変換が実測値と厳密に一致することを確認する
func TestMapCorners(t *testing.T) {
	display, digitizer := rm2Config()
	mapper, err := NewMapper(display, digitizer)
	if err != nil {
		t.Fatalf("変換器の作成に失敗しました: %v", err)
	}

	tests := []struct {
		name               string
		displayX, displayY int32
		wantRawX, wantRawY int32
	}{
		{"左上", 0, 0, 20820, 90},
		{"右上", 1404, 0, 20820, 15712},
		{"左下", 0, 1872, 211, 90},
		{"右下", 1404, 1872, 211, 15712},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rawX, rawY := mapper.Map(tt.displayX, tt.displayY)
			if rawX != tt.wantRawX || rawY != tt.wantRawY {
				t.Errorf("Map(%d, %d) = (%d, %d); 期待値 (%d, %d)",
					tt.displayX, tt.displayY, rawX, rawY, tt.wantRawX, tt.wantRawY)
			}
		})
	}
}

// TestMapPlainScaling は軸入れ替えなしの比例変換を確認する
func TestMapPlainScaling(t *testing.T) {
	display := config.DisplayConfig{Width: 1000, Height: 2000}
	digitizer := config.DigitizerConfig{
		UsableMinX: 0,
		UsableMaxX: 10000,
		UsableMinY: 0,
		UsableMaxY: 20000,
	}
	mapper, err := NewMapper(display, digitizer)
	if err != nil {
		t.Fatalf("変換器の作成に失敗しました: %v", err)
	}

	rawX, rawY := mapper.Map(500, 1000)
	if rawX != 5000 || rawY != 10000 {
		t.Errorf("Map(500, 1000) = (%d, %d); 期待値 (5000, 10000)", rawX, rawY)
	}

	rawX, rawY = mapper.Map(1000, 2000)
	if rawX != 10000 || rawY != 20000 {
		t.Errorf("Map(1000, 2000) = (%d, %d); 期待値 (10000, 20000)", rawX, rawY)
	}
}

// TestMapSwapAndInvert は軸入れ替えと反転の組み合わせを確認する
func TestMapSwapAndInvert(t *testing.T) {
	display := config.DisplayConfig{Width: 100, Height: 200}
	digitizer := config.DigitizerConfig{
		UsableMinX: 0,
		UsableMaxX: 2000,
		UsableMinY: 0,
		UsableMaxY: 1000,
		SwapAxes:   true,
		InvertX:    true,
		InvertY:    true,
	}
	mapper, err := NewMapper(display, digitizer)
	if err != nil {
		t.Fatalf("変換器の作成に失敗しました: %v", err)
	}

	// センサーXは表示Yから計算され反転、センサーYは表示Xから計算され反転
	rawX, rawY := mapper.Map(0, 0)
	if rawX != 2000 || rawY != 1000 {
		t.Errorf("Map(0, 0) = (%d, %d); 期待値 (2000, 1000)", rawX, rawY)
	}

	rawX, rawY = mapper.Map(100, 200)
	if rawX != 0 || rawY != 0 {
		t.Errorf("Map(100, 200) = (%d, %d); 期待値 (0, 0)", rawX, rawY)
	}
}

// TestMapIsPure は同じ入力に対して常に同じ結果を返すことを確認する
func TestMapIsPure(t *testing.T) {
	display, digitizer := rm2Config()
	mapper, err := NewMapper(display, digitizer)
	if err != nil {
		t.Fatalf("変換器の作成に失敗しました: %v", err)
	}

	x1, y1 := mapper.Map(702, 936)
	for i := 0; i < 100; i++ {
		x2, y2 := mapper.Map(702, 936)
		if x1 != x2 || y1 != y2 {
			t.Fatalf("変換結果が安定していません: (%d, %d) != (%d, %d)", x1, y1, x2, y2)
		}
	}
}

// TestNewMapperDegenerate は縮退した設定でエラーになることを確認する
func TestNewMapperDegenerate(t *testing.T) {
	tests := []struct {
		name      string
		display   config.DisplayConfig
		digitizer config.DigitizerConfig
	}{
		{
			"幅ゼロ",
			config.DisplayConfig{Width: 0, Height: 1872},
			config.DigitizerConfig{UsableMinX: 0, UsableMaxX: 100, UsableMinY: 0, UsableMaxY: 100},
		},
		{
			"X範囲が空",
			config.DisplayConfig{Width: 1404, Height: 1872},
			config.DigitizerConfig{UsableMinX: 100, UsableMaxX: 100, UsableMinY: 0, UsableMaxY: 100},
		},
		{
			"Y範囲が逆転",
			config.DisplayConfig{Width: 1404, Height: 1872},
			config.DigitizerConfig{UsableMinX: 0, UsableMaxX: 100, UsableMinY: 200, UsableMaxY: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper(tt.display, tt.digitizer); err == nil {
				t.Error("縮退した設定でエラーになりませんでした")
			}
		})
	}
}

// TestClamp は範囲外の座標が使用可能範囲内へ収められることを確認する
func TestClamp(t *testing.T) {
	display, digitizer := rm2Config()
	mapper, err := NewMapper(display, digitizer)
	if err != nil {
		t.Fatalf("変換器の作成に失敗しました: %v", err)
	}

	x, y := mapper.Clamp(-100, 99999)
	if x != 211 || y != 15712 {
		t.Errorf("Clamp(-100, 99999) = (%d, %d); 期待値 (211, 15712)", x, y)
	}

	if mapper.InBounds(-100, 500) {
		t.Error("範囲外の座標がInBoundsでtrueになりました")
	}
	if !mapper.InBounds(10000, 8000) {
		t.Error("範囲内の座標がInBoundsでfalseになりました")
	}
}
