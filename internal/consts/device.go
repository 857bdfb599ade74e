package consts

// evdevデバイス制御用のIOCTL定数（input.hから）
const (
	EVIOCGNAME = 0x81004506 // デバイス名の取得（256バイトバッファ）
	EVIOCGKey  = 0x80604521 // EV_KEYの能力ビット取得（96バイトバッファ）
	EVIOCGRAB  = 0x40044590 // デバイスの排他制御用のIOCTL

	KeyMax = 0x2ff // キーコードの最大値
)

// uinputデバイスの定数（uinput.hから）
const (
	MaxNameSize = 80         // デバイス名の最大サイズ
	DevCreate   = 0x5501     // デバイス作成用のIOCTL
	DevDestroy  = 0x5502     // デバイス破棄用のIOCTL
	SetEvBit    = 0x40045564 // イベントビット設定用のIOCTL
	SetKeyBit   = 0x40045565 // キービット設定用のIOCTL
	SetAbsBit   = 0x40045567 // 絶対座標ビット設定用のIOCTL
	BusUsb      = 0x03       // USBバスタイプ

	AbsSize = 64 // 絶対座標の配列サイズ
)
