package cart

import (
	"sort"
	"strconv"

	"github.com/hopbarley/internal/logger"

	"github.com/shopspring/decimal"
)

// StoredLine 会话中保存的购物车行，价格以字符串保存
type StoredLine struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// Snapshot 购物车的纯数据副本，键为商品 ID
type Snapshot map[string]StoredLine

// encodeLines 唯一的写出边界：decimal 在这里转为字符串
func encodeLines(lines map[uint]Line) Snapshot {
	snapshot := make(Snapshot, len(lines))
	for id, line := range lines {
		snapshot[strconv.FormatUint(uint64(id), 10)] = StoredLine{
			Quantity: line.Quantity,
			Price:    line.UnitPrice.StringFixed(2),
		}
	}
	return snapshot
}

// decodeSnapshot 唯一的读入边界：非法行丢弃并记录
func decodeSnapshot(snapshot Snapshot) map[uint]Line {
	lines := make(map[uint]Line, len(snapshot))
	for key, stored := range snapshot {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil || id == 0 {
			logger.Warnw("cart_decode_drop_line", "key", key, "reason", "invalid_product_id")
			continue
		}
		if stored.Quantity <= 0 {
			logger.Warnw("cart_decode_drop_line", "key", key, "reason", "invalid_quantity", "quantity", stored.Quantity)
			continue
		}
		price, err := decimal.NewFromString(stored.Price)
		if err != nil || price.IsNegative() {
			logger.Warnw("cart_decode_drop_line", "key", key, "reason", "invalid_price", "price", stored.Price)
			continue
		}
		lines[uint(id)] = Line{ProductID: uint(id), Quantity: stored.Quantity, UnitPrice: price}
	}
	return lines
}

// Lines 按商品 ID 升序解码快照
func (s Snapshot) Lines() []Line {
	return sortedLines(decodeSnapshot(s))
}

// Count 快照中的商品件数
func (s Snapshot) Count() int {
	total := 0
	for _, line := range decodeSnapshot(s) {
		total += line.Quantity
	}
	return total
}

func sortedLines(lines map[uint]Line) []Line {
	result := make([]Line, 0, len(lines))
	for _, line := range lines {
		result = append(result, line)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID < result[j].ProductID
	})
	return result
}
