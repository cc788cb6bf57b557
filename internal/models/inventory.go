package models

// Size codes for rack stock. These are the only sizes the inventory
// endpoint accepts.
const (
	SizeS  = "S"
	SizeM  = "M"
	SizeL  = "L"
	SizeXL = "XL"
)

// SizeColumns maps a size code to its stock column. Used by the
// repository to build the atomic increment.
var SizeColumns = map[string]string{
	SizeS:  "stock_s",
	SizeM:  "stock_m",
	SizeL:  "stock_l",
	SizeXL: "stock_xl",
}

// ValidSize reports whether code is one of the four accepted size codes
func ValidSize(code string) bool {
	_, ok := SizeColumns[code]
	return ok
}

// InventoryItem tracks per-size stock counts for a product. Counters are
// only ever changed through atomic increments; no lower bound is enforced
// server-side.
type InventoryItem struct {
	Model
	ProductName string `json:"product_name" gorm:"uniqueIndex;Column:product_name"`
	StockS      int    `json:"S" gorm:"Column:stock_s"`
	StockM      int    `json:"M" gorm:"Column:stock_m"`
	StockL      int    `json:"L" gorm:"Column:stock_l"`
	StockXL     int    `json:"XL" gorm:"Column:stock_xl"`
}

// Stock returns the counter for a size code
func (i *InventoryItem) Stock(code string) int {
	switch code {
	case SizeS:
		return i.StockS
	case SizeM:
		return i.StockM
	case SizeL:
		return i.StockL
	case SizeXL:
		return i.StockXL
	}
	return 0
}
