package consts

// 入力イベントタイプの定数（input-event-codes.hより）
const (
	Syn = 0x00 // 同期イベント
	Key = 0x01 // キーイベント
	Abs = 0x03 // 絶対座標イベント

	AbsX        = 0x00 // X軸の絶対座標
	AbsY        = 0x01 // Y軸の絶対座標
	AbsPressure = 0x18 // ペン圧力
	AbsDistance = 0x19 // ペンとセンサーの距離
	AbsTiltX    = 0x1a // ペンのX軸傾き
	AbsTiltY    = 0x1b // ペンのY軸傾き

	SynReport = 0 // イベント報告の同期

	BtnToolPen = 0x140 // ペンツールの検出
	BtnTouch   = 0x14a // 接触の検出
	BtnStylus  = 0x14b // スタイラスのサイドボタン
)
