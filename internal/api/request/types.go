package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount 金额，接受 JSON 数字或字符串；字符串中的逗号小数点会被替换为句点（"5,50" → 5.50）
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}
	if s, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(s)
	}
	raw = strings.Replace(raw, ",", ".", 1)

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid amount %s", data)
	}
	a.Decimal = d
	return nil
}

// Quantity 数量，接受 JSON 整数或数字字符串
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid quantity %s", data)
	}
	v, err := strconv.Atoi(strings.TrimSpace(n.String()))
	if err != nil {
		return fmt.Errorf("invalid quantity %s", data)
	}
	*q = Quantity(v)
	return nil
}
