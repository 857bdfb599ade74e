package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/Naivedya-sahu/rm2in2/internal/config"
	"github.com/Naivedya-sahu/rm2in2/internal/device"
	"github.com/Naivedya-sahu/rm2in2/internal/engine"
)

// Server は注入エンジンの状態を公開するAPIサーバーを表す構造体
type Server struct {
	server  *http.Server
	cfg     *config.Config
	engine  *engine.Engine
	monitor *device.Monitor
	port    int
}

// NewServer は新しいAPIサーバーを作成する
// monitorはnilでもよく、その場合デバイス一覧は都度スキャンされる
func NewServer(cfg *config.Config, eng *engine.Engine, monitor *device.Monitor, port int) *Server {
	return &Server{
		cfg:     cfg,
		engine:  eng,
		monitor: monitor,
		port:    port,
	}
}

// Start はAPIサーバーを開始する
func (s *Server) Start() error {
	// ルーターの設定
	router := http.NewServeMux()
	s.setupRoutes(router)

	// HTTPサーバーの設定
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: router,
	}

	// サーバーの起動
	log.Printf("APIサーバーを開始します: http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop はAPIサーバーを停止する
func (s *Server) Stop() error {
	if s.server != nil {
		log.Println("APIサーバーを停止します...")
		return s.server.Shutdown(context.Background())
	}
	return nil
}

// writeJSON はJSONレスポンスを書き込む
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("JSONエンコードエラー: %v", err)
		}
	}
}

// writeError はエラーレスポンスを書き込む
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
