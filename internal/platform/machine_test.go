package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMachineFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "machine")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("テストファイルの作成に失敗しました: %v", err)
	}
	return path
}

// TestDetectFrom は世代判定を確認する
func TestDetectFrom(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Generation
	}{
		{"RM2", "reMarkable 2.0\n", GenerationRM2},
		{"RM1", "reMarkable 1.0\n", GenerationRM1},
		{"RM1表記ゆれ", "reMarkable Prototype 1\n", GenerationRM1},
		{"未知のハードウェア", "i.MX6 SoloLite\n", GenerationUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMachineFile(t, tt.content)
			if got := DetectFrom(path); got != tt.want {
				t.Errorf("DetectFrom(%q) = %v; 期待値 %v", tt.content, got, tt.want)
			}
		})
	}
}

// TestDetectFromMissingFile は読み出し失敗時にUnknownになることを確認する
func TestDetectFromMissingFile(t *testing.T) {
	if got := DetectFrom("/nonexistent/machine"); got != GenerationUnknown {
		t.Errorf("存在しないファイルでUnknownになりませんでした: %v", got)
	}
}

// TestSupportsInjection は注入の有効化がRM2に限定されることを確認する
func TestSupportsInjection(t *testing.T) {
	if !GenerationRM2.SupportsInjection() {
		t.Error("RM2で注入が有効になりません")
	}
	if GenerationRM1.SupportsInjection() {
		t.Error("RM1で注入が有効になっています")
	}
	if GenerationUnknown.SupportsInjection() {
		t.Error("未知の世代で注入が有効になっています")
	}
}
