package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfigIsValid はデフォルト設定が検証を通ることを確認する
func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("デフォルト設定が検証に失敗しました: %v", err)
	}

	// 実測値の確認
	if cfg.Display.Width != 1404 || cfg.Display.Height != 1872 {
		t.Errorf("ディスプレイ寸法が一致しません: %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Injector.QueueCapacity != 10000 {
		t.Errorf("キュー容量が一致しません: %d", cfg.Injector.QueueCapacity)
	}
	if cfg.Injector.SuppressionWindow != 150*time.Millisecond {
		t.Errorf("抑制時間幅が一致しません: %v", cfg.Injector.SuppressionWindow)
	}
}

// TestValidateRejectsDegenerate は不正な設定が弾かれることを確認する
func TestValidateRejectsDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"幅ゼロ", func(c *Config) { c.Display.Width = 0 }},
		{"X範囲が空", func(c *Config) { c.Digitizer.UsableMaxX = c.Digitizer.UsableMinX }},
		{"Y範囲が逆転", func(c *Config) { c.Digitizer.UsableMinY = c.Digitizer.UsableMaxY + 1 }},
		{"識別文字列なし", func(c *Config) { c.Digitizer.NamePattern = "" }},
		{"キュー容量ゼロ", func(c *Config) { c.Injector.QueueCapacity = 0 }},
		{"抑制時間幅ゼロ", func(c *Config) { c.Injector.SuppressionWindow = 0 }},
		{"FIFOパスなし", func(c *Config) { c.Injector.FifoPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("不正な設定が検証を通りました")
			}
		})
	}
}

// TestLoadConfigCreatesDefault は設定ファイルがない場合にデフォルトが
// 保存されることを確認する
func TestLoadConfigCreatesDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	if cfg.Digitizer.NamePattern != "Wacom" {
		t.Errorf("デフォルト値が一致しません: %s", cfg.Digitizer.NamePattern)
	}

	// ファイルが作成されているはず
	if _, err := os.Stat(configPath); err != nil {
		t.Errorf("設定ファイルが作成されていません: %v", err)
	}
}

// TestLoadConfigRoundTrip は保存した設定がそのまま読み戻せることを確認する
func TestLoadConfigRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")

	original := DefaultConfig()
	original.Injector.FifoPath = "/tmp/other_inject"
	original.Injector.SuppressionWindow = 200 * time.Millisecond
	original.Digitizer.InvertY = true

	if err := SaveConfig(configPath, original); err != nil {
		t.Fatalf("設定の保存に失敗しました: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("設定の読み込みに失敗しました: %v", err)
	}

	if loaded.Injector.FifoPath != original.Injector.FifoPath {
		t.Errorf("FIFOパスが一致しません: %s", loaded.Injector.FifoPath)
	}
	if loaded.Injector.SuppressionWindow != original.Injector.SuppressionWindow {
		t.Errorf("抑制時間幅が一致しません: %v", loaded.Injector.SuppressionWindow)
	}
	if !loaded.Digitizer.InvertY {
		t.Error("InvertYが保存されていません")
	}
}
