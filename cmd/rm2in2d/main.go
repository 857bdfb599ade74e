package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Naivedya-sahu/rm2in2/internal/api"
	"github.com/Naivedya-sahu/rm2in2/internal/config"
	"github.com/Naivedya-sahu/rm2in2/internal/device"
	"github.com/Naivedya-sahu/rm2in2/internal/engine"
	"github.com/Naivedya-sahu/rm2in2/internal/platform"

	"golang.org/x/sys/unix"
)

func main() {
	// コマンドライン引数の解析
	useApi := flag.Bool("api", false, "ステータスAPIサーバーを起動します")
	configPath := flag.String("config", "", "設定ファイルのパス (指定しない場合はデフォルトパスを使用)")
	port := flag.Int("port", 0, "APIサーバーのポート番号 (0の場合は設定ファイルの値を使用)")
	devicePath := flag.String("device", "", "デジタイザのデバイスパス (指定しない場合は自動検出)")
	force := flag.Bool("force", false, "未対応のハードウェア世代でも起動します")
	flag.Parse()

	// デフォルト設定ファイルパスの設定
	defaultConfigPath := ""
	configDir, err := config.GetDefaultConfigDir()
	if err == nil {
		defaultConfigPath = filepath.Join(configDir, "config.toml")
	}

	// 設定ファイルパスの決定
	cfgPath := defaultConfigPath
	if *configPath != "" {
		cfgPath = *configPath
	}

	// 設定ファイルの読み込み
	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("設定ファイルの読み込みに失敗しました: %v\nデフォルト設定を使用します\n", err)
			cfg = config.DefaultConfig()
		} else {
			fmt.Printf("設定ファイルを読み込みました: %s\n", cfgPath)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	// 設定の検証（不正な変換設定はここで落とす）
	if err := cfg.Validate(); err != nil {
		log.Fatalf("設定が不正です: %v", err)
	}

	// ハードウェア世代の確認
	generation := platform.Detect()
	log.Printf("ハードウェア世代: %s", generation)
	if !generation.SupportsInjection() && !*force {
		log.Fatalf("この世代ではペン注入は未検証です (-force で強制起動できます)")
	}

	// シグナルハンドラの設定
	handleSignals()

	// 注入エンジンの作成
	eng, err := engine.New(cfg)
	if err != nil {
		log.Fatalf("注入エンジンの作成に失敗しました: %v", err)
	}

	// デバイスモニターの起動（APIのデバイス一覧用）
	var monitor *device.Monitor
	if *useApi {
		monitor, err = device.NewMonitor()
		if err != nil {
			log.Printf("デバイスモニターの作成に失敗しました: %v", err)
		} else if err := monitor.Start(); err != nil {
			log.Printf("デバイスモニターの起動に失敗しました: %v", err)
		}
	}

	// APIサーバーの起動
	if *useApi {
		apiPort := cfg.API.Port
		if *port != 0 {
			apiPort = *port
		}
		server := api.NewServer(cfg, eng, monitor, apiPort)
		go func() {
			if err := server.Start(); err != nil {
				log.Printf("APIサーバーが停止しました: %v", err)
			}
		}()
	}

	// ブリッジループの実行
	if err := runBridge(cfg, eng, *devicePath); err != nil {
		log.Fatalf("ブリッジの実行に失敗しました: %v", err)
	}
}

// runBridge は実デジタイザを専有し、合成イベントと実イベントを
// エンジン経由でマージして仮想ペンデバイスへ転送し続ける
func runBridge(cfg *config.Config, eng *engine.Engine, devicePath string) error {
	// デジタイザの検出
	path := devicePath
	if path == "" {
		info, err := device.FindDigitizer(cfg.Digitizer.NamePattern)
		if err != nil {
			return fmt.Errorf("デバイスのスキャンに失敗しました: %v", err)
		}
		if info == nil {
			return fmt.Errorf("デジタイザが見つかりませんでした (name_pattern=%s)", cfg.Digitizer.NamePattern)
		}
		log.Printf("デジタイザを使用します: %s (%s)", info.Name, info.Path)
		path = info.Path
	}

	// 実デバイスを開いて専有する
	source, err := device.OpenSource(path)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Grab(); err != nil {
		return fmt.Errorf("デバイスの専有に失敗しました: %v", err)
	}

	// ホストアプリケーションが読むための仮想ペンデバイスを作成する
	pen, err := device.CreateVirtualPen("/dev/uinput", []byte("rm2in2 virtual pen"),
		cfg.Digitizer.MaxX, cfg.Digitizer.MaxY, cfg.Injector.DefaultPressure)
	if err != nil {
		return fmt.Errorf("仮想ペンデバイスの作成に失敗しました: %v", err)
	}
	defer pen.Close()

	log.Println("ブリッジを開始します")

	// 読み出し→転送のループ
	// 実デバイスは非ブロッキングで開いているため、データがない間は
	// 短い待機を挟んで注入キューの排出機会を作る
	buf := make([]byte, 4096)
	for {
		n, err := eng.Read(source.Fd(), buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				time.Sleep(2 * time.Millisecond)
				continue
			}
			return fmt.Errorf("デバイス読み出しに失敗しました: %v", err)
		}
		if n == 0 {
			// 抑制による破棄、または読み出すものがない
			continue
		}
		if err := pen.Forward(buf[:n]); err != nil {
			log.Printf("仮想ペンへの転送に失敗しました: %v", err)
		}
	}
}

func handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("シャットダウンします...")
		os.Exit(0)
	}()
}
