package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Display   DisplayConfig   `toml:"display"`
	Digitizer DigitizerConfig `toml:"digitizer"`
	Injector  InjectorConfig  `toml:"injector"`
	API       APIConfig       `toml:"api"`
}

// DisplayConfig は表示パネルの論理座標系の設定
type DisplayConfig struct {
	Width  int32 `toml:"width"`
	Height int32 `toml:"height"`
}

// DigitizerConfig はデジタイザセンサーの設定
// センサーはパネルに対して90度回転して取り付けられているため、
// swap_axesとinvert_xで座標変換の向きを指定する
type DigitizerConfig struct {
	NamePattern string `toml:"name_pattern"` // デバイス名に含まれる識別文字列
	PathPrefix  string `toml:"path_prefix"`  // 対象デバイスノードのパス接頭辞
	MaxX        int32  `toml:"max_x"`        // ハードウェアのX軸最大値
	MaxY        int32  `toml:"max_y"`        // ハードウェアのY軸最大値
	UsableMinX  int32  `toml:"usable_min_x"` // 実測で使用可能なX軸下限
	UsableMaxX  int32  `toml:"usable_max_x"` // 実測で使用可能なX軸上限
	UsableMinY  int32  `toml:"usable_min_y"` // 実測で使用可能なY軸下限
	UsableMaxY  int32  `toml:"usable_max_y"` // 実測で使用可能なY軸上限
	SwapAxes    bool   `toml:"swap_axes"`    // 表示XとセンサーY軸の入れ替え
	InvertX     bool   `toml:"invert_x"`     // センサーX軸の反転
	InvertY     bool   `toml:"invert_y"`     // センサーY軸の反転
}

// InjectorConfig は注入エンジンの設定
type InjectorConfig struct {
	FifoPath          string        `toml:"fifo_path"`          // コマンド受信用FIFOのパス
	QueueCapacity     int           `toml:"queue_capacity"`     // イベントキューの容量
	SuppressionWindow time.Duration `toml:"suppression_window"` // 実入力を抑制する時間幅
	DelayCap          time.Duration `toml:"delay_cap"`          // DELAYコマンドの上限
	ReopenBackoff     time.Duration `toml:"reopen_backoff"`     // FIFOオープン失敗時の待機時間
	DefaultPressure   int32         `toml:"default_pressure"`   // 注入ストロークの筆圧
}

// APIConfig はステータスAPIサーバーの設定
type APIConfig struct {
	Port int `toml:"port"`
}

// DefaultConfig はデフォルト設定を返す
// デジタイザの定数はRM2実機でのペンイベントキャプチャから実測した値
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  1404,
			Height: 1872,
		},
		Digitizer: DigitizerConfig{
			NamePattern: "Wacom",
			PathPrefix:  "/dev/input/event",
			MaxX:        20966,
			MaxY:        15725,
			UsableMinX:  211,
			UsableMaxX:  20820,
			UsableMinY:  90,
			UsableMaxY:  15712,
			SwapAxes:    true,
			InvertX:     true,
			InvertY:     false,
		},
		Injector: InjectorConfig{
			FifoPath:          "/tmp/rm2_inject",
			QueueCapacity:     10000,
			SuppressionWindow: 150 * time.Millisecond,
			DelayCap:          1000 * time.Millisecond,
			ReopenBackoff:     1 * time.Second,
			DefaultPressure:   2000,
		},
		API: APIConfig{
			Port: 8080,
		},
	}
}

// Validate は設定値の整合性を検証する
// 変換が成立しない設定は起動時に弾く
func (c *Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("ディスプレイ寸法が不正です: %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Digitizer.UsableMaxX <= c.Digitizer.UsableMinX {
		return fmt.Errorf("X軸の使用可能範囲が不正です: [%d, %d]", c.Digitizer.UsableMinX, c.Digitizer.UsableMaxX)
	}
	if c.Digitizer.UsableMaxY <= c.Digitizer.UsableMinY {
		return fmt.Errorf("Y軸の使用可能範囲が不正です: [%d, %d]", c.Digitizer.UsableMinY, c.Digitizer.UsableMaxY)
	}
	if c.Digitizer.NamePattern == "" {
		return fmt.Errorf("デバイス名の識別文字列が指定されていません")
	}
	if c.Injector.QueueCapacity <= 0 {
		return fmt.Errorf("キュー容量が不正です: %d", c.Injector.QueueCapacity)
	}
	if c.Injector.SuppressionWindow <= 0 {
		return fmt.Errorf("抑制時間幅が不正です: %v", c.Injector.SuppressionWindow)
	}
	if c.Injector.FifoPath == "" {
		return fmt.Errorf("FIFOパスが指定されていません")
	}
	return nil
}

// GetDefaultConfigDir はデフォルトの設定ディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "rm2in2"), nil
}

// LoadConfig は設定ファイルから設定を読み込む
func LoadConfig(configPath string) (*Config, error) {
	// デフォルト設定を用意
	config := DefaultConfig()

	// ファイルが存在しない場合はデフォルト設定を保存して返す
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// 設定ディレクトリの作成
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config, err
		}

		// デフォルト設定の保存
		if err := SaveConfig(configPath, config); err != nil {
			return config, err
		}

		return config, nil
	}

	// 設定ファイルの読み込み
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// ファイルを開く（なければ作成）
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// TOML形式でエンコードして書き込み
	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}
