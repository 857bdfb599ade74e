package api

import (
	"net/http"

	"github.com/Naivedya-sahu/rm2in2/internal/device"
	"github.com/Naivedya-sahu/rm2in2/internal/platform"
)

// ルートの設定
func (s *Server) setupRoutes(router *http.ServeMux) {
	// 注入エンジン関連のエンドポイント
	router.HandleFunc("GET /api/status", s.handleStatus)
	router.HandleFunc("GET /api/cursor", s.handleCursor)

	// 設定・デバイス関連のエンドポイント
	router.HandleFunc("GET /api/config", s.handleGetConfig)
	router.HandleFunc("GET /api/devices", s.handleGetDevices)

	// ヘルスチェック用エンドポイント
	router.HandleFunc("GET /api/health", s.handleHealthCheck)
}

// エンジン状態の取得ハンドラ
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := struct {
		Generation string      `json:"generation"`
		FifoPath   string      `json:"fifo_path"`
		Engine     interface{} `json:"engine"`
	}{
		Generation: platform.Detect().String(),
		FifoPath:   s.cfg.Injector.FifoPath,
		Engine:     s.engine.Status(),
	}
	writeJSON(w, http.StatusOK, status)
}

// 実ペン位置の取得ハンドラ
func (s *Server) handleCursor(w http.ResponseWriter, r *http.Request) {
	x, y := s.engine.Cursor()
	writeJSON(w, http.StatusOK, map[string]int32{"x": x, "y": y})
}

// 設定取得ハンドラ
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg)
}

// デバイス一覧の取得ハンドラ
func (s *Server) handleGetDevices(w http.ResponseWriter, r *http.Request) {
	var devices []device.Info
	var err error

	if s.monitor != nil {
		devices = s.monitor.Devices()
	} else {
		devices, err = device.ScanDevices()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "デバイス一覧の取得に失敗しました")
			return
		}
	}
	writeJSON(w, http.StatusOK, devices)
}

// ヘルスチェックハンドラ
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
